package result

import "encoding/json"

// Hits is the "hits" section of an engine search response.
// Timing, shard counts and aggregations of the envelope are not carried.
type Hits struct {
	Total    Total    `json:"total"`
	MaxScore *float64 `json:"max_score"`
	Hits     []Hit    `json:"hits"`
}

// Total is the hit count; Relation is "eq" or "gte" when the engine stopped counting.
type Total struct {
	Value    int64  `json:"value"`
	Relation string `json:"relation,omitempty"`
}

// Hit is a single matched record. Source is kept as raw JSON, unmodified.
type Hit struct {
	Index  string          `json:"_index"`
	ID     string          `json:"_id"`
	Score  *float64        `json:"_score"`
	Source json.RawMessage `json:"_source,omitempty"`
}

// Empty returns a Hits value with no matches and a non-nil slice,
// so it serializes as "hits": [] instead of null.
func Empty() Hits {
	return Hits{Total: Total{Value: 0, Relation: "eq"}, Hits: []Hit{}}
}

// Len returns the number of hits on this page.
func (h *Hits) Len() int { return len(h.Hits) }

// IDs returns the document identifiers in ranking order.
func (h *Hits) IDs() []string {
	ids := make([]string, len(h.Hits))
	for i, hit := range h.Hits {
		ids[i] = hit.ID
	}
	return ids
}
