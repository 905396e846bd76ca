package domain

import "errors"

var (
	// ErrNotFound signals a missing creature.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCriteria signals filter criteria that cannot be evaluated.
	ErrInvalidCriteria = errors.New("invalid criteria")
	// ErrNetwork signals that the roster source is unreachable or answered with a transport failure.
	ErrNetwork = errors.New("roster source unavailable")
	// ErrData signals a malformed payload from the roster source.
	ErrData = errors.New("malformed roster data")
)

// KeyPrefix is the default key prefix for cached entries.
const KeyPrefix = "pokedex:"
