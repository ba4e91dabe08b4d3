package document

import (
	"encoding/json"
	"fmt"
)

// MaxIDBytes is the engine limit on document id length.
const MaxIDBytes = 512

// Document is an arbitrary keyed payload destined for one collection.
// Fields are not validated against any schema.
type Document struct {
	collection string
	id         string
	fields     map[string]any
}

// New creates a Document. id may be empty, in which case the engine assigns one.
func New(collection, id string, fields map[string]any) (Document, error) {
	if len(id) > MaxIDBytes {
		return Document{}, fmt.Errorf("document ID too long (max %d bytes)", MaxIDBytes)
	}
	return Document{
		collection: collection,
		id:         id,
		fields:     cloneFields(fields),
	}, nil
}

// FromTyped builds a Document from any JSON-encodable struct, giving
// callers compile-time field checking on their side of the boundary.
func FromTyped[T any](collection, id string, v T) (Document, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Document{}, fmt.Errorf("encode typed document: %w", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return Document{}, fmt.Errorf("typed document must encode to a JSON object: %w", err)
	}
	return New(collection, id, fields)
}

// Collection returns the target collection name.
func (d *Document) Collection() string { return d.collection }

// ID returns the caller-supplied document id, or "".
func (d *Document) ID() string { return d.id }

// Fields returns the document payload.
func (d *Document) Fields() map[string]any { return d.fields }

// Body encodes the payload for the engine. A nil payload encodes as {}.
func (d *Document) Body() (json.RawMessage, error) {
	if d.fields == nil {
		return json.RawMessage(`{}`), nil
	}
	data, err := json.Marshal(d.fields)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}

func cloneFields(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	c := make(map[string]any, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
