package roster

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/pokedex/internal/domain"
	"github.com/kailas-cloud/pokedex/internal/domain/creature"
	"github.com/kailas-cloud/pokedex/internal/domain/roster/bucket"
	"github.com/kailas-cloud/pokedex/internal/domain/roster/criteria"
	"github.com/kailas-cloud/pokedex/internal/domain/roster/pipeline"
	"github.com/kailas-cloud/pokedex/internal/domain/stats"
)

// Listing is one page of the filtered, sorted roster.
type Listing struct {
	Items      []creature.Creature
	Total      int
	TotalPages int
	Criteria   criteria.Criteria
}

// Detail is a single creature with its stat bars.
type Detail struct {
	Creature creature.Creature
	Gauges   []stats.Gauge
}

// Facets lists the values the roster can be filtered by.
type Facets struct {
	Types      []string
	Weaknesses []string
	Heights    []bucket.Bucket
	Weights    []bucket.Bucket
}

// Dashboard is the carousel view of one creature with its radar profile.
type Dashboard struct {
	Creature creature.Creature
	Index    int
	Prev     int
	Next     int
	Total    int
	Axes     []stats.Axis
	Summary  stats.Summary
}

// Service answers roster queries.
type Service struct {
	source          Source
	defaultPageSize int
	maxPageSize     int
}

// New creates a roster service.
func New(source Source) *Service {
	return &Service{
		source:          source,
		defaultPageSize: criteria.DefaultPageSize,
		maxPageSize:     criteria.MaxPageSize,
	}
}

// WithPagination configures page size limits.
func (s *Service) WithPagination(defaultPageSize, maxPageSize int) *Service {
	if defaultPageSize > 0 {
		s.defaultPageSize = defaultPageSize
	}
	if maxPageSize > 0 {
		s.maxPageSize = maxPageSize
	}
	return s
}

// List validates params and runs the filter, sort and paginate pipeline over the roster.
func (s *Service) List(ctx context.Context, p criteria.Params) (Listing, error) {
	if p.PageSize == 0 {
		p.PageSize = s.defaultPageSize
	}
	if p.PageSize > s.maxPageSize {
		p.PageSize = s.maxPageSize
	}
	c, err := criteria.New(p)
	if err != nil {
		return Listing{}, err //nolint:wrapcheck // already wraps ErrInvalidCriteria
	}
	return s.Query(ctx, c)
}

// Query runs the pipeline for already validated criteria.
func (s *Service) Query(ctx context.Context, c criteria.Criteria) (Listing, error) {
	roster, err := s.source.FetchRoster(ctx)
	if err != nil {
		return Listing{}, fmt.Errorf("load roster: %w", err)
	}

	page := pipeline.Run(roster, c)
	return Listing{
		Items:      page.Items,
		Total:      page.Total,
		TotalPages: pipeline.TotalPages(page.Total, c.PageSize()),
		Criteria:   c,
	}, nil
}

// Get returns one creature by id together with its detail gauges.
func (s *Service) Get(ctx context.Context, id string) (Detail, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Detail{}, fmt.Errorf("empty pokemon id: %w", domain.ErrNotFound)
	}
	c, err := s.source.FetchCreature(ctx, id)
	if err != nil {
		return Detail{}, fmt.Errorf("get pokemon: %w", err)
	}
	return Detail{Creature: c, Gauges: stats.DetailGauges(&c)}, nil
}

// Facets returns the distinct type and weakness tags plus the size buckets.
func (s *Service) Facets(ctx context.Context) (Facets, error) {
	roster, err := s.source.FetchRoster(ctx)
	if err != nil {
		return Facets{}, fmt.Errorf("load roster: %w", err)
	}
	f := pipeline.CollectFacets(roster)
	return Facets{
		Types:      f.Types,
		Weaknesses: f.Weaknesses,
		Heights:    bucket.All(bucket.Height),
		Weights:    bucket.All(bucket.Weight),
	}, nil
}

// Dashboard returns the carousel entry at index. Indexes outside [0, n) wrap around.
func (s *Service) Dashboard(ctx context.Context, index int) (Dashboard, error) {
	roster, err := s.source.FetchRoster(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("load roster: %w", err)
	}
	n := len(roster)
	if n == 0 {
		return Dashboard{}, fmt.Errorf("empty roster: %w", domain.ErrNotFound)
	}

	i := stats.Step(index, n, 0)
	c := roster[i]
	axes := stats.Profile(&c)
	return Dashboard{
		Creature: c,
		Index:    i,
		Prev:     stats.Step(i, n, -1),
		Next:     stats.Step(i, n, 1),
		Total:    n,
		Axes:     axes,
		Summary:  stats.Summarize(axes),
	}, nil
}
