// Package graphql fetches the creature roster from the public Pokémon GraphQL API.
package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/pokedex/internal/domain"
	"github.com/kailas-cloud/pokedex/internal/domain/creature"
	"github.com/kailas-cloud/pokedex/internal/metrics"
)

const (
	// DefaultEndpoint is the public Pokémon GraphQL API.
	DefaultEndpoint = "https://graphql-pokemon2.vercel.app/"
	// DefaultRosterSize is the first-generation roster.
	DefaultRosterSize = 151

	maxResponseBytes = 16 << 20

	opRoster   = "roster"
	opCreature = "creature"
	opHealth   = "health"
)

// Config holds the GraphQL source settings.
type Config struct {
	Endpoint   string
	Timeout    time.Duration
	RosterSize int
	UserAgent  string
	HTTPClient *http.Client // optional; Timeout is ignored when set
	Logger     *zap.Logger
}

// Client is the roster source backed by a GraphQL endpoint.
type Client struct {
	endpoint   string
	rosterSize int
	userAgent  string
	http       *http.Client
	logger     *zap.Logger
}

// NewClient creates a GraphQL roster source.
func NewClient(cfg *Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("endpoint is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	size := cfg.RosterSize
	if size <= 0 {
		size = DefaultRosterSize
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		endpoint:   cfg.Endpoint,
		rosterSize: size,
		userAgent:  cfg.UserAgent,
		http:       httpClient,
		logger:     logger,
	}, nil
}

// RosterSize returns the number of records requested per roster fetch.
func (c *Client) RosterSize() int { return c.rosterSize }

// FetchRoster returns the first RosterSize creatures in upstream order.
func (c *Client) FetchRoster(ctx context.Context) ([]creature.Creature, error) {
	var data rosterData
	err := c.do(ctx, opRoster, rosterQuery, map[string]any{"first": c.rosterSize}, &data)
	if err != nil {
		return nil, err
	}

	roster := make([]creature.Creature, 0, len(data.Pokemons))
	seen := make(map[string]struct{}, len(data.Pokemons))
	for i := range data.Pokemons {
		cr, err := data.Pokemons[i].toDomain()
		if err != nil {
			c.observe(opRoster, "data")
			return nil, err
		}
		if _, dup := seen[cr.ID]; dup {
			c.observe(opRoster, "data")
			return nil, fmt.Errorf("duplicate id %q: %w", cr.ID, domain.ErrData)
		}
		seen[cr.ID] = struct{}{}
		roster = append(roster, cr)
	}

	c.observe(opRoster, "ok")
	metrics.RosterSize.Set(float64(len(roster)))
	c.logger.Debug("roster fetched", zap.Int("size", len(roster)))
	return roster, nil
}

// FetchCreature returns one creature by its opaque upstream id.
func (c *Client) FetchCreature(ctx context.Context, id string) (creature.Creature, error) {
	var data creatureData
	if err := c.do(ctx, opCreature, creatureQuery, map[string]any{"id": id}, &data); err != nil {
		return creature.Creature{}, err
	}
	if data.Pokemon == nil {
		c.observe(opCreature, "not_found")
		return creature.Creature{}, fmt.Errorf("pokemon %q: %w", id, domain.ErrNotFound)
	}
	cr, err := data.Pokemon.toDomain()
	if err != nil {
		c.observe(opCreature, "data")
		return creature.Creature{}, err
	}
	c.observe(opCreature, "ok")
	return cr, nil
}

// HealthCheck runs a one-record query against the endpoint.
func (c *Client) HealthCheck(ctx context.Context) error {
	var data healthData
	if err := c.do(ctx, opHealth, healthQuery, nil, &data); err != nil {
		return err
	}
	c.observe(opHealth, "ok")
	return nil
}

// do posts one GraphQL request and decodes data into out.
// Transport failures wrap domain.ErrNetwork; bad payloads wrap domain.ErrData.
func (c *Client) do(ctx context.Context, op, query string, vars map[string]any, out any) error {
	body, err := json.Marshal(request{Query: query, Variables: vars})
	if err != nil {
		return fmt.Errorf("encode %s request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.SourceRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		c.observe(op, "network")
		c.logger.Warn("graphql request failed", zap.String("operation", op), zap.Error(err))
		return fmt.Errorf("%s request: %w: %w", op, err, domain.ErrNetwork)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		c.observe(op, "network")
		return fmt.Errorf("read %s response: %w: %w", op, err, domain.ErrNetwork)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.observe(op, "network")
		c.logger.Warn("graphql endpoint returned non-2xx",
			zap.String("operation", op),
			zap.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("%s request: status %d: %w", op, resp.StatusCode, domain.ErrNetwork)
	}

	var envelope response[json.RawMessage]
	if err := json.Unmarshal(payload, &envelope); err != nil {
		c.observe(op, "data")
		return fmt.Errorf("decode %s response: %w: %w", op, err, domain.ErrData)
	}
	if len(envelope.Errors) > 0 {
		c.observe(op, "data")
		return fmt.Errorf("%s query: %s: %w", op, joinMessages(envelope.Errors), domain.ErrData)
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		c.observe(op, "data")
		return fmt.Errorf("%s query: empty data: %w", op, domain.ErrData)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		c.observe(op, "data")
		return fmt.Errorf("decode %s data: %w: %w", op, err, domain.ErrData)
	}
	return nil
}

func (c *Client) observe(op, status string) {
	metrics.SourceRequestsTotal.WithLabelValues(op, status).Inc()
}

func joinMessages(errs []remoteError) string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}
