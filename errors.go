package pokedex

import "github.com/kailas-cloud/pokedex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound        = domain.ErrNotFound
	ErrInvalidCriteria = domain.ErrInvalidCriteria
	ErrNetwork         = domain.ErrNetwork
	ErrData            = domain.ErrData
)
