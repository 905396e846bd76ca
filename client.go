package pokedex

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/pokedex/internal/db"
	dbRedis "github.com/kailas-cloud/pokedex/internal/db/redis"
	"github.com/kailas-cloud/pokedex/internal/domain/roster/criteria"
	"github.com/kailas-cloud/pokedex/internal/repository/rostercache"
	"github.com/kailas-cloud/pokedex/internal/transport/graphql"
	healthuc "github.com/kailas-cloud/pokedex/internal/usecase/health"
	rosteruc "github.com/kailas-cloud/pokedex/internal/usecase/roster"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces for substitution in tests.
type rosterUseCase interface {
	List(ctx context.Context, p criteria.Params) (rosteruc.Listing, error)
	Get(ctx context.Context, id string) (rosteruc.Detail, error)
	Facets(ctx context.Context) (rosteruc.Facets, error)
	Dashboard(ctx context.Context, index int) (rosteruc.Dashboard, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

type purger interface {
	Purge()
}

// Client is the pokedex SDK entry point.
type Client struct {
	store     db.Store // nil without WithRedis/WithValkey
	cache     purger
	rosterSvc rosterUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client. With WithRedis or WithValkey the context bounds the
// initial readiness check of the cache server.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{endpoint: graphql.DefaultEndpoint}
	for _, o := range opts {
		o.apply(cfg)
	}

	source, err := graphql.NewClient(&graphql.Config{
		Endpoint:   cfg.endpoint,
		Timeout:    cfg.timeout,
		RosterSize: cfg.rosterSize,
		UserAgent:  "pokedex-go",
		HTTPClient: cfg.httpClient,
		Logger:     cfg.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("pokedex: create source: %w", err)
	}

	var store db.Store
	if cfg.driver != "" {
		store, err = createStore(cfg)
		if err != nil {
			return nil, err
		}
		if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			store.Close()
			return nil, fmt.Errorf("pokedex: cache not ready: %w", err)
		}
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, err
	}
	return wireClient(source, store, cfg, obs), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "valkey", "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("pokedex: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("pokedex: unknown driver %q", cfg.driver)
	}
}

func wireClient(source *graphql.Client, store db.Store, cfg *clientConfig, obs *observer) *Client {
	opts := rostercache.Options{
		TTL:        cfg.cacheTTL,
		RosterSize: source.RosterSize(),
		Logger:     cfg.logger,
	}
	// A typed nil *Store must not reach the cache as a non-nil interface.
	var pinger healthuc.CachePinger
	if store != nil {
		opts.Store = store
		pinger = store
	}
	cached := rostercache.New(source, opts)

	return &Client{
		store:     store,
		cache:     cached,
		rosterSvc: rosteruc.New(cached).WithPagination(cfg.pageSize, 0),
		healthSvc: healthuc.New(source, pinger),
		obs:       obs,
	}
}

// Close releases the cache connection, if any.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Refresh drops the in-process roster so the next call refetches it
// (or reloads it from the shared cache).
func (c *Client) Refresh() {
	if c.cache != nil {
		c.cache.Purge()
	}
}

// Query starts a roster query with default criteria.
func (c *Client) Query() *QueryBuilder {
	return &QueryBuilder{client: c}
}

// Get returns one Pokémon by its upstream id together with its gauges.
func (c *Client) Get(ctx context.Context, id string) (_ Detail, err error) {
	start := time.Now()
	defer func() { c.obs.observe("get", start, err) }()

	d, err := c.rosterSvc.Get(ctx, id)
	if err != nil {
		return Detail{}, fmt.Errorf("get %q: %w", id, err)
	}
	return Detail{Pokemon: d.Creature.Clone(), Gauges: d.Gauges}, nil
}

// Facets returns the distinct type and weakness tags and the size buckets.
func (c *Client) Facets(ctx context.Context) (_ Facets, err error) {
	start := time.Now()
	defer func() { c.obs.observe("facets", start, err) }()

	f, err := c.rosterSvc.Facets(ctx)
	if err != nil {
		return Facets{}, fmt.Errorf("facets: %w", err)
	}
	return Facets{
		Types:      f.Types,
		Weaknesses: f.Weaknesses,
		Heights:    f.Heights,
		Weights:    f.Weights,
	}, nil
}

// Dashboard returns the carousel entry at index; out-of-range indexes wrap.
func (c *Client) Dashboard(ctx context.Context, index int) (_ Dashboard, err error) {
	start := time.Now()
	defer func() { c.obs.observe("dashboard", start, err) }()

	d, err := c.rosterSvc.Dashboard(ctx, index)
	if err != nil {
		return Dashboard{}, fmt.Errorf("dashboard: %w", err)
	}
	return Dashboard{
		Pokemon: d.Creature.Clone(),
		Index:   d.Index,
		Prev:    d.Prev,
		Next:    d.Next,
		Total:   d.Total,
		Axes:    d.Axes,
		Summary: d.Summary,
	}, nil
}

// Health checks the GraphQL source and, when configured, the cache server.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}
