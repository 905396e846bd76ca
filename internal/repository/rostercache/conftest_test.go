package rostercache

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/pokedex/internal/db"
	"github.com/kailas-cloud/pokedex/internal/domain"
	"github.com/kailas-cloud/pokedex/internal/domain/creature"
)

type fakeSource struct {
	roster       []creature.Creature
	err          error
	rosterCalls  atomic.Int32
	creatureCall atomic.Int32
	// block, when set, is waited on inside FetchRoster after entered is closed.
	block   chan struct{}
	entered chan struct{}
	once    sync.Once
	// ctxErr is ctx.Err() as seen by FetchRoster once it is unblocked.
	ctxErr error
}

func (f *fakeSource) FetchRoster(ctx context.Context) ([]creature.Creature, error) {
	f.rosterCalls.Add(1)
	if f.block != nil {
		f.once.Do(func() { close(f.entered) })
		<-f.block
		f.ctxErr = ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.roster, nil
}

func (f *fakeSource) FetchCreature(_ context.Context, id string) (creature.Creature, error) {
	f.creatureCall.Add(1)
	if f.err != nil {
		return creature.Creature{}, f.err
	}
	for _, c := range f.roster {
		if c.ID == id {
			return c, nil
		}
	}
	return creature.Creature{}, fmt.Errorf("pokemon %q: %w", id, domain.ErrNotFound)
}

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	mu    sync.Mutex
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	sets  []string
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	m.sets = append(m.sets, key)
	m.mu.Unlock()
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

func testRoster() []creature.Creature {
	return []creature.Creature{
		{ID: "UG9rZW1vbjowMDE=", Ordinal: 1, Name: "Bulbasaur", Types: []string{"Grass", "Poison"}},
		{ID: "UG9rZW1vbjowMDQ=", Ordinal: 4, Name: "Charmander", Types: []string{"Fire"}},
		{ID: "UG9rZW1vbjowMDc=", Ordinal: 7, Name: "Squirtle", Types: []string{"Water"}},
	}
}

func newTestCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "test_roster_cache_total"},
		[]string{"tier", "result"},
	)
}

func newTestCache(
	t *testing.T, inner *fakeSource, kv *mockKVStore,
) (*CachedSource, *prometheus.CounterVec) {
	t.Helper()
	counter := newTestCounter()
	opts := Options{
		TTL:        time.Minute,
		RosterSize: 151,
		CacheTotal: counter,
		Logger:     zap.NewNop(),
	}
	if kv != nil {
		opts.Store = kv
	}
	return New(inner, opts), counter
}
