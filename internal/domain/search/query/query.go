// Package query builds the engine query body for gateway searches.
package query

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kailas-cloud/esgate/internal/domain/collection"
)

// Searchable fields. No other field takes part in matching.
const (
	FieldTitle = "title"
	FieldDesc  = "desc"
)

// Request is a normalized search over an ordered list of target collections.
type Request struct {
	term    string
	targets []string
}

// New normalizes text and copies targets. Targets may be empty. Each target
// must be a single valid collection name, so patterns like "*", "_all" or
// "a,b" cannot widen the search.
func New(text string, targets []string) (Request, error) {
	for i, t := range targets {
		if err := collection.ValidateName(t); err != nil {
			return Request{}, fmt.Errorf("target %d: %w", i, err)
		}
	}
	return Request{
		term:    Normalize(text),
		targets: append([]string(nil), targets...),
	}, nil
}

// Term returns the normalized search term.
func (r *Request) Term() string { return r.term }

// Targets returns the collections searched, in caller order.
func (r *Request) Targets() []string { return r.targets }

// HasTargets reports whether the request names at least one collection.
func (r *Request) HasTargets() bool { return len(r.targets) > 0 }

// Body returns the JSON query body for the request.
func (r *Request) Body() json.RawMessage { return Build(r.term) }

// Normalize trims surrounding whitespace and lower-cases text.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// Wildcard wraps term in leading and trailing multi-character wildcards.
// Wildcard characters inside term are passed through to the engine.
func Wildcard(term string) string {
	return "*" + term + "*"
}

type body struct {
	Query boolQuery `json:"query"`
}

type boolQuery struct {
	Bool should `json:"bool"`
}

type should struct {
	Should []wildcardClause `json:"should"`
}

type wildcardClause struct {
	Wildcard map[string]string `json:"wildcard"`
}

// Build returns a bool query whose should-clauses substring-match an
// already normalized term against title and desc.
func Build(term string) json.RawMessage {
	pattern := Wildcard(term)
	b := body{Query: boolQuery{Bool: should{Should: []wildcardClause{
		{Wildcard: map[string]string{FieldTitle: pattern}},
		{Wildcard: map[string]string{FieldDesc: pattern}},
	}}}}
	// Marshal of string-only maps and structs cannot fail.
	data, _ := json.Marshal(b)
	return data
}
