package db

import (
	"errors"
	"strconv"
)

// Sentinel errors for backend operations.
var (
	ErrIndexNotFound    = errors.New("db: index not found")
	ErrIndexExists      = errors.New("db: index already exists")
	ErrDocumentNotFound = errors.New("db: document not found")
	ErrUnexpectedStatus = errors.New("db: unexpected status")
	// ErrConnectivity covers an unreachable cluster and rejected credentials.
	ErrConnectivity = errors.New("db: cluster unreachable or credentials rejected")
)

// Op constants name the engine API endpoints for error context.
const (
	OpPing           = "ping"
	OpSearch         = "search"
	OpIndexExists    = "indices.exists"
	OpCreateIndex    = "indices.create"
	OpDeleteIndex    = "indices.delete"
	OpPutDocument    = "index"
	OpDeleteDocument = "delete"
)

// Error wraps an underlying error with the operation name and, when the
// engine answered, its HTTP status.
type Error struct {
	Op     string
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + " [" + strconv.Itoa(e.Status) + "]: " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }
