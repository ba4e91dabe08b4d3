package esgate

import "github.com/kailas-cloud/esgate/internal/domain"

// Sentinel errors. Match with errors.Is; the engine error stays in the chain.
var (
	ErrInvalidCollection  = domain.ErrInvalidCollection
	ErrInvalidDocument    = domain.ErrInvalidDocument
	ErrInvalidQuery       = domain.ErrInvalidQuery
	ErrInvalidConfig      = domain.ErrInvalidConfig
	ErrNotFound           = domain.ErrNotFound
	ErrExistenceUnknown   = domain.ErrExistenceUnknown
	ErrBackendUnavailable = domain.ErrBackendUnavailable
	ErrBackendRejected    = domain.ErrBackendRejected
)
