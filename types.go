package pokedex

import (
	"github.com/kailas-cloud/pokedex/internal/domain/creature"
	"github.com/kailas-cloud/pokedex/internal/domain/roster/bucket"
	"github.com/kailas-cloud/pokedex/internal/domain/stats"
)

// Roster record types.
type (
	Pokemon              = creature.Creature
	Interval             = creature.Interval
	Attack               = creature.Attack
	Evolution            = creature.Evolution
	EvolutionRequirement = creature.EvolutionRequirement
)

// View types.
type (
	Gauge   = stats.Gauge
	Axis    = stats.Axis
	Summary = stats.Summary
	Bucket  = bucket.Bucket
)

// Page is one page of a roster query.
type Page struct {
	Items      []Pokemon
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// Detail is a single creature with its stat gauges.
type Detail struct {
	Pokemon Pokemon
	Gauges  []Gauge
}

// Facets lists the values the roster can be filtered by.
type Facets struct {
	Types      []string
	Weaknesses []string
	Heights    []Bucket
	Weights    []Bucket
}

// Dashboard is one carousel entry with its radar profile.
type Dashboard struct {
	Pokemon Pokemon
	Index   int
	Prev    int
	Next    int
	Total   int
	Axes    []Axis
	Summary Summary
}

// HealthStatus represents the aggregated source and cache health.
type HealthStatus struct {
	Status string            // "ok", "degraded", "error"
	Checks map[string]string // component → "ok"/"error"
}

// TypeColor returns the badge colour (hex) for a type tag.
func TypeColor(tag string) string {
	return creature.TypeColor(tag)
}
