package elastic

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/kailas-cloud/esgate/internal/db"
	"github.com/kailas-cloud/esgate/internal/domain/search/result"
)

type searchEnvelope struct {
	Hits result.Hits `json:"hits"`
}

// Search sends one _search request spanning all targets and returns the
// hits section of the response.
func (s *Store) Search(ctx context.Context, targets []string, query json.RawMessage) (result.Hits, error) {
	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(targets...),
		s.client.Search.WithBody(bytes.NewReader(query)),
	)
	if err != nil {
		return result.Hits{}, transportError(db.OpSearch, err)
	}
	defer closeBody(res)

	if res.IsError() {
		return result.Hits{}, responseError(db.OpSearch, res)
	}

	var env searchEnvelope
	if err := decodeBody(db.OpSearch, res, &env); err != nil {
		return result.Hits{}, err
	}
	if env.Hits.Hits == nil {
		env.Hits.Hits = []result.Hit{}
	}
	return env.Hits, nil
}
