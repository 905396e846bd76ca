// Package rostercache decorates a roster source with a two-tier cache:
// an in-process expirable LRU and an optional Redis/Valkey key-value store.
package rostercache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/kailas-cloud/pokedex/internal/db"
	"github.com/kailas-cloud/pokedex/internal/domain"
	"github.com/kailas-cloud/pokedex/internal/domain/creature"
)

// Cache tiers, used as the "tier" metric label.
const (
	TierLocal  = "local"
	TierRemote = "remote"
)

const (
	defaultTTL       = time.Hour
	defaultLocalSize = 256
)

// source is the decorated roster source (ISP).
type source interface {
	FetchRoster(ctx context.Context) ([]creature.Creature, error)
	FetchCreature(ctx context.Context, id string) (creature.Creature, error)
}

// store is the consumer interface for the remote tier (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Options configures the cache. A nil Store disables the remote tier.
type Options struct {
	Store      store
	TTL        time.Duration
	KeyPrefix  string
	RosterSize int // part of the roster key so differently sized rosters never collide
	LocalSize  int
	// CacheTotal is a counter vec with labels "tier" and "result" ("hit"/"miss"/"error").
	CacheTotal *prometheus.CounterVec
	Logger     *zap.Logger
}

// CachedSource serves rosters and creatures from cache, falling through to the inner source.
// Cache failures are logged and never surface to the caller.
// Returned slices are shared between callers and must be treated as read-only.
type CachedSource struct {
	inner      source
	store      store
	ttl        time.Duration
	rosterKey  string
	prefix     string
	rosters    *expirable.LRU[string, []creature.Creature]
	creatures  *expirable.LRU[string, creature.Creature]
	flight     singleflight.Group
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
func New(inner source, opts Options) *CachedSource {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	size := opts.LocalSize
	if size <= 0 {
		size = defaultLocalSize
	}
	prefix := opts.KeyPrefix
	if prefix == "" {
		prefix = domain.KeyPrefix
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedSource{
		inner:      inner,
		store:      opts.Store,
		ttl:        ttl,
		rosterKey:  prefix + "roster:" + strconv.Itoa(opts.RosterSize),
		prefix:     prefix,
		rosters:    expirable.NewLRU[string, []creature.Creature](1, nil, ttl),
		creatures:  expirable.NewLRU[string, creature.Creature](size, nil, ttl),
		cacheTotal: opts.CacheTotal,
		logger:     logger,
	}
}

// FetchRoster returns the cached roster or fetches it once, even under concurrent misses.
func (c *CachedSource) FetchRoster(ctx context.Context) ([]creature.Creature, error) {
	if roster, ok := c.rosters.Get(c.rosterKey); ok {
		c.inc(TierLocal, "hit")
		return roster, nil
	}
	c.inc(TierLocal, "miss")

	// The shared fetch outlives any single caller; the source's own timeout bounds it.
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.flight.DoChan(c.rosterKey, func() (any, error) {
		// a flight that finished between the miss above and this call already filled the tier
		if roster, ok := c.rosters.Peek(c.rosterKey); ok {
			return roster, nil
		}
		var roster []creature.Creature
		if c.getRemote(fetchCtx, c.rosterKey, &roster) {
			c.rosters.Add(c.rosterKey, roster)
			return roster, nil
		}

		roster, err := c.inner.FetchRoster(fetchCtx)
		if err != nil {
			return nil, fmt.Errorf("fetch roster: %w", err)
		}
		c.rosters.Add(c.rosterKey, roster)
		c.putRemote(fetchCtx, c.rosterKey, roster)
		return roster, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err //nolint:wrapcheck // wrapped inside the flight
		}
		return res.Val.([]creature.Creature), nil
	case <-ctx.Done():
		return nil, fmt.Errorf("fetch roster: %w", ctx.Err())
	}
}

// FetchCreature returns one creature, preferring a cached roster over a per-id lookup.
func (c *CachedSource) FetchCreature(ctx context.Context, id string) (creature.Creature, error) {
	if cr, ok := c.creatures.Get(id); ok {
		c.inc(TierLocal, "hit")
		return cr, nil
	}
	if roster, ok := c.rosters.Peek(c.rosterKey); ok {
		for i := range roster {
			if roster[i].ID == id {
				c.inc(TierLocal, "hit")
				c.creatures.Add(id, roster[i])
				return roster[i], nil
			}
		}
	}
	c.inc(TierLocal, "miss")

	key := c.prefix + "creature:" + id
	var cr creature.Creature
	if c.getRemote(ctx, key, &cr) {
		c.creatures.Add(id, cr)
		return cr, nil
	}

	cr, err := c.inner.FetchCreature(ctx, id)
	if err != nil {
		return creature.Creature{}, fmt.Errorf("fetch creature: %w", err)
	}
	c.creatures.Add(id, cr)
	c.putRemote(ctx, key, cr)
	return cr, nil
}

// Purge drops every entry of the local tier. Remote entries expire by TTL.
func (c *CachedSource) Purge() {
	c.rosters.Purge()
	c.creatures.Purge()
}

func (c *CachedSource) getRemote(ctx context.Context, key string, dst any) bool {
	if c.store == nil {
		return false
	}
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			c.inc(TierRemote, "miss")
			return false
		}
		c.inc(TierRemote, "error")
		c.logger.Warn("Roster cache get failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		c.inc(TierRemote, "error")
		c.logger.Warn("Roster cache entry is corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	c.inc(TierRemote, "hit")
	return true
}

func (c *CachedSource) putRemote(ctx context.Context, key string, v any) {
	if c.store == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn("Failed to encode roster cache entry", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache roster entry", zap.String("key", key), zap.Error(err))
	}
}

func (c *CachedSource) inc(tier, result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(tier, result).Inc()
	}
}
