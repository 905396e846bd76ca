package chi

import (
	"github.com/kailas-cloud/pokedex/internal/domain/creature"
	"github.com/kailas-cloud/pokedex/internal/domain/roster/bucket"
	"github.com/kailas-cloud/pokedex/internal/domain/stats"
	rosteruc "github.com/kailas-cloud/pokedex/internal/usecase/roster"
)

// ErrorCode is a machine-readable error identifier.
type ErrorCode string

// Error codes returned in ErrorResponse.
const (
	CodeBadRequest        ErrorCode = "bad_request"
	CodeValidationFailed  ErrorCode = "validation_failed"
	CodeNotFound          ErrorCode = "not_found"
	CodeUnauthorized      ErrorCode = "unauthorized"
	CodeSourceUnavailable ErrorCode = "source_unavailable"
	CodeSourceInvalid     ErrorCode = "source_invalid"
	CodeInternalError     ErrorCode = "internal_error"
)

// ErrorResponse is the JSON body of every non-2xx API response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Tag is a type or weakness label with its badge colour.
type Tag struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// PokemonItem is a roster entry with badge colours attached.
type PokemonItem struct {
	creature.Creature
	TypeBadges []Tag `json:"type_badges"`
}

// ListResponse is the body of GET /pokemon.
type ListResponse struct {
	Items      []PokemonItem `json:"items"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
}

// DetailResponse is the body of GET /pokemon/{id}.
type DetailResponse struct {
	Pokemon PokemonItem   `json:"pokemon"`
	Gauges  []stats.Gauge `json:"gauges"`
}

// FacetsResponse is the body of GET /facets.
type FacetsResponse struct {
	Types      []Tag           `json:"types"`
	Weaknesses []Tag           `json:"weaknesses"`
	Heights    []bucket.Bucket `json:"heights"`
	Weights    []bucket.Bucket `json:"weights"`
}

// DashboardResponse is the body of GET /dashboard.
type DashboardResponse struct {
	Pokemon        PokemonItem  `json:"pokemon"`
	Index          int          `json:"index"`
	Prev           int          `json:"prev"`
	Next           int          `json:"next"`
	Total          int          `json:"total"`
	Axes           []stats.Axis `json:"axes"`
	Strongest      stats.Axis   `json:"strongest"`
	Weakest        stats.Axis   `json:"weakest"`
	Recommendation string       `json:"recommendation"`
}

func tags(names []string) []Tag {
	out := make([]Tag, len(names))
	for i, n := range names {
		out[i] = Tag{Name: n, Color: creature.TypeColor(n)}
	}
	return out
}

func pokemonToItem(c creature.Creature) PokemonItem {
	return PokemonItem{Creature: c, TypeBadges: tags(c.Types)}
}

func listingToResponse(l rosteruc.Listing) ListResponse {
	items := make([]PokemonItem, len(l.Items))
	for i, c := range l.Items {
		items[i] = pokemonToItem(c)
	}
	return ListResponse{
		Items:      items,
		Total:      l.Total,
		Page:       l.Criteria.Page(),
		PageSize:   l.Criteria.PageSize(),
		TotalPages: l.TotalPages,
	}
}

func detailToResponse(d rosteruc.Detail) DetailResponse {
	return DetailResponse{Pokemon: pokemonToItem(d.Creature), Gauges: d.Gauges}
}

func facetsToResponse(f rosteruc.Facets) FacetsResponse {
	return FacetsResponse{
		Types:      tags(f.Types),
		Weaknesses: tags(f.Weaknesses),
		Heights:    f.Heights,
		Weights:    f.Weights,
	}
}

func dashboardToResponse(d rosteruc.Dashboard) DashboardResponse {
	return DashboardResponse{
		Pokemon:        pokemonToItem(d.Creature),
		Index:          d.Index,
		Prev:           d.Prev,
		Next:           d.Next,
		Total:          d.Total,
		Axes:           d.Axes,
		Strongest:      d.Summary.Strongest,
		Weakest:        d.Summary.Weakest,
		Recommendation: d.Summary.Recommendation,
	}
}
