package roster

import (
	"context"

	"github.com/kailas-cloud/pokedex/internal/domain/creature"
)

// Source provides the read-only creature roster.
type Source interface {
	FetchRoster(ctx context.Context) ([]creature.Creature, error)
	FetchCreature(ctx context.Context, id string) (creature.Creature, error)
}
