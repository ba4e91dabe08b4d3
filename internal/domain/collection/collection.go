package collection

import (
	"fmt"
	"strings"
)

// MaxNameBytes is the engine limit on index name length.
const MaxNameBytes = 255

const forbiddenChars = `\/*?"<>|,#: `

// Collection identifies a logical collection (an engine index) by name.
// It carries no state of its own; existence lives in the engine.
type Collection struct {
	name string
}

// New validates name against the engine's index naming rules.
// Lowercase only, 1-255 bytes, not "." or "..", no leading '-', '_' or '+',
// none of \ / * ? " < > | , # : or space.
func New(name string) (Collection, error) {
	if err := ValidateName(name); err != nil {
		return Collection{}, err
	}
	return Collection{name: name}, nil
}

// Reconstruct creates a Collection without validation.
func Reconstruct(name string) Collection { return Collection{name: name} }

// Name returns the collection name.
func (c *Collection) Name() string { return c.name }

// ValidateName reports why name cannot be used as an index name, or nil.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("collection name is required")
	}
	if len(name) > MaxNameBytes {
		return fmt.Errorf("collection name too long (max %d bytes)", MaxNameBytes)
	}
	if name == "." || name == ".." {
		return fmt.Errorf("collection name %q is reserved", name)
	}
	switch name[0] {
	case '-', '_', '+':
		return fmt.Errorf("collection name must not start with %q", name[0])
	}
	if strings.ToLower(name) != name {
		return fmt.Errorf("collection name must be lowercase")
	}
	if i := strings.IndexAny(name, forbiddenChars); i >= 0 {
		return fmt.Errorf("collection name contains forbidden character %q", name[i])
	}
	return nil
}
