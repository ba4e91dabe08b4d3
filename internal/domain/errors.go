package domain

import "errors"

var (
	// ErrInvalidCollection signals a collection name the engine would reject.
	ErrInvalidCollection = errors.New("invalid collection name")
	// ErrInvalidDocument signals a document that cannot be encoded for storage.
	ErrInvalidDocument = errors.New("invalid document")
	// ErrInvalidQuery signals malformed search input.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidConfig signals connection settings the engine client cannot use.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrNotFound signals a missing collection or document.
	ErrNotFound = errors.New("not found")
	// ErrExistenceUnknown signals that the engine gave no definite answer
	// to an existence check (neither present nor absent).
	ErrExistenceUnknown = errors.New("collection existence unknown")
	// ErrBackendUnavailable signals that the search engine could not be reached
	// or rejected the gateway's credentials.
	ErrBackendUnavailable = errors.New("search backend unavailable")
	// ErrBackendRejected signals that the engine answered with an error status.
	ErrBackendRejected = errors.New("search backend rejected the request")
)
