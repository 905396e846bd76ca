package health

import "context"

// CachePinger checks cache server availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// SourceChecker checks upstream roster source availability.
type SourceChecker interface {
	HealthCheck(ctx context.Context) error
}
