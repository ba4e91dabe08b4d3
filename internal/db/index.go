package db

// Existence is the outcome of an index existence check.
// Only a definite answer from the engine maps to a value; anything else is an error.
type Existence int

const (
	// Absent means the engine answered 404 for the index.
	Absent Existence = iota
	// Present means the engine answered 200 for the index.
	Present
)

func (e Existence) String() string {
	if e == Present {
		return "present"
	}
	return "absent"
}

// Ack is the acknowledgment flag returned by mutating index operations.
type Ack struct {
	Acknowledged bool `json:"acknowledged"`
}

// Shards is the replication report attached to document writes.
type Shards struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

// WriteAck is the engine response to a single document write or delete.
type WriteAck struct {
	Index  string `json:"_index"`
	ID     string `json:"_id"`
	Result string `json:"result"` // created, updated, deleted, not_found, noop
	Shards Shards `json:"_shards"`
}

// Applied reports whether the write reached at least one shard copy
// and the engine classified it as a change.
func (w WriteAck) Applied() bool {
	switch w.Result {
	case "created", "updated", "deleted":
	default:
		return false
	}
	return w.Shards.Total == 0 || w.Shards.Successful > 0
}
