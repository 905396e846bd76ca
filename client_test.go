package pokedex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/pokedex/internal/domain"
	"github.com/kailas-cloud/pokedex/internal/domain/creature"
	"github.com/kailas-cloud/pokedex/internal/domain/roster/criteria"
	healthuc "github.com/kailas-cloud/pokedex/internal/usecase/health"
	rosteruc "github.com/kailas-cloud/pokedex/internal/usecase/roster"
)

func pokemonJSON(id, number, name string, types []string, height [2]string) map[string]any {
	return map[string]any{
		"id":         id,
		"number":     number,
		"name":       name,
		"types":      types,
		"weaknesses": []string{"Water"},
		"maxHP":      1000,
		"maxCP":      900,
		"fleeRate":   0.1,
		"height":     map[string]string{"minimum": height[0], "maximum": height[1]},
		"weight":     map[string]string{"minimum": "6kg", "maximum": "8kg"},
		"attacks": map[string]any{
			"fast":    []map[string]any{{"name": "Scratch", "type": "Normal", "damage": 6}},
			"special": []map[string]any{{"name": "Flamethrower", "type": "Fire", "damage": 55}},
		},
	}
}

var testRoster = []map[string]any{
	pokemonJSON("p1", "001", "Bulbasaur", []string{"Grass", "Poison"}, [2]string{"0.61m", "0.79m"}),
	pokemonJSON("p4", "004", "Charmander", []string{"Fire"}, [2]string{"0.53m", "0.68m"}),
	pokemonJSON("p6", "006", "Charizard", []string{"Fire", "Flying"}, [2]string{"1.49m", "1.91m"}),
}

// newGraphQLServer answers roster queries with testRoster and creature
// queries by id. calls counts every request.
func newGraphQLServer(t *testing.T, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		var req struct {
			Query     string         `json:"query"`
			Variables map[string]any `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")

		if id, ok := req.Variables["id"].(string); ok {
			var found map[string]any
			for _, p := range testRoster {
				if p["id"] == id {
					found = p
				}
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"pokemon": found}})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"pokemons": testRoster}})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, opts ...Option) (*Client, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := newGraphQLServer(t, &calls)
	opts = append([]Option{WithEndpoint(srv.URL), WithHTTPClient(srv.Client())}, opts...)
	c, err := New(context.Background(), opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(c.Close)
	return c, &calls
}

func TestNew_EmptyEndpoint(t *testing.T) {
	_, err := New(context.Background(), WithEndpoint(""))
	if err == nil {
		t.Fatal("expected error for empty endpoint")
	}
}

func TestNew_UnknownDriver(t *testing.T) {
	cfg := &clientConfig{driver: "memcached", addrs: []string{"localhost:1234"}}
	_, err := createStore(cfg)
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestClientOptions(t *testing.T) {
	cfg := &clientConfig{}

	WithValkey("localhost:6379", "secret").apply(cfg)
	if cfg.driver != "valkey" {
		t.Errorf("driver = %q, want valkey", cfg.driver)
	}
	if len(cfg.addrs) != 1 || cfg.addrs[0] != "localhost:6379" {
		t.Errorf("addrs = %v", cfg.addrs)
	}
	if cfg.password != "secret" {
		t.Errorf("password = %q", cfg.password)
	}

	WithRedis("redis:6379", "").apply(cfg)
	if cfg.driver != "redis" {
		t.Errorf("driver = %q, want redis", cfg.driver)
	}

	WithPageSize(20).apply(cfg)
	WithRosterSize(3).apply(cfg)
	if cfg.pageSize != 20 || cfg.rosterSize != 3 {
		t.Errorf("pageSize = %d, rosterSize = %d", cfg.pageSize, cfg.rosterSize)
	}
}

func TestQuery_FiltersAndPaginates(t *testing.T) {
	c, _ := newTestClient(t, WithPageSize(2))

	page, err := c.Query().Type("Fire").Descending().Do(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Total != 2 || page.TotalPages != 1 {
		t.Fatalf("total = %d, pages = %d", page.Total, page.TotalPages)
	}
	if page.Items[0].Name != "Charizard" || page.Items[1].Name != "Charmander" {
		t.Errorf("order = %s, %s", page.Items[0].Name, page.Items[1].Name)
	}
	if page.PageSize != 2 || page.Page != 1 {
		t.Errorf("page = %d, size = %d", page.Page, page.PageSize)
	}
}

func TestQuery_SecondPage(t *testing.T) {
	c, _ := newTestClient(t, WithPageSize(2))

	page, err := c.Query().Page(2).Do(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Total != 3 || page.TotalPages != 2 {
		t.Fatalf("total = %d, pages = %d", page.Total, page.TotalPages)
	}
	if len(page.Items) != 1 || page.Items[0].Name != "Charizard" {
		t.Errorf("items = %+v", page.Items)
	}
}

func TestQuery_HeightBucketAndRange(t *testing.T) {
	c, _ := newTestClient(t)

	page, err := c.Query().Height("tall").Range(1, 151).Do(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Charizard's 1.49–1.91 m touches neither [2,100] bound; nothing is tall.
	if page.Total != 0 {
		t.Errorf("total = %d, want 0", page.Total)
	}

	page, err = c.Query().Height("medium").Name("CHAR").Do(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Total != 1 || page.Items[0].Name != "Charizard" {
		t.Errorf("items = %+v", page.Items)
	}
}

func TestQuery_InvalidCriteria(t *testing.T) {
	c, _ := newTestClient(t)

	_, err := c.Query().Height("gigantic").Do(context.Background())
	if !errors.Is(err, ErrInvalidCriteria) {
		t.Fatalf("err = %v, want ErrInvalidCriteria", err)
	}
}

func TestClient_RosterFetchedOnce(t *testing.T) {
	c, calls := newTestClient(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := c.Query().Do(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if _, err := c.Facets(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("upstream calls = %d, want 1", got)
	}

	c.Refresh()
	if _, err := c.Query().Do(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("upstream calls after Refresh = %d, want 2", got)
	}
}

func TestClient_ResultsDoNotAliasCachedRoster(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	first, err := c.Query().Type("Fire").Do(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Total != 2 {
		t.Fatalf("total = %d, want 2", first.Total)
	}
	first.Items[0].Types[0] = "Mutated"
	first.Items[0].FastAttacks[0].Name = "Mutated"

	d, err := c.Get(ctx, "p6")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d.Pokemon.Types[0] = "Mutated"

	dash, err := c.Dashboard(ctx, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dash.Pokemon.Weaknesses[0] = "Mutated"

	second, err := c.Query().Type("Fire").Do(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Total != 2 {
		t.Errorf("total after caller edits = %d, want 2", second.Total)
	}
	if got := second.Items[0].FastAttacks[0].Name; got != "Scratch" {
		t.Errorf("fast attack = %q, want Scratch", got)
	}
	if w, err := c.Query().Weakness("Water").Do(ctx); err != nil || w.Total != 3 {
		t.Errorf("weakness total = %d (err %v), want 3", w.Total, err)
	}
}

func TestClient_Get(t *testing.T) {
	c, _ := newTestClient(t)

	d, err := c.Get(context.Background(), "p4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Pokemon.Name != "Charmander" || d.Pokemon.Ordinal != 4 {
		t.Errorf("pokemon = %s #%d", d.Pokemon.Name, d.Pokemon.Ordinal)
	}
	if len(d.Gauges) != 4 {
		t.Errorf("gauges = %d, want 4", len(d.Gauges))
	}
}

func TestClient_GetNotFound(t *testing.T) {
	c, _ := newTestClient(t)

	_, err := c.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestClient_Facets(t *testing.T) {
	c, _ := newTestClient(t)

	f, err := c.Facets(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Grass", "Poison", "Fire", "Flying"}
	if strings.Join(f.Types, ",") != strings.Join(want, ",") {
		t.Errorf("types = %v, want %v", f.Types, want)
	}
	if len(f.Heights) != 3 || len(f.Weights) != 3 {
		t.Errorf("buckets = %d/%d", len(f.Heights), len(f.Weights))
	}
}

func TestClient_DashboardWraps(t *testing.T) {
	c, _ := newTestClient(t)

	d, err := c.Dashboard(context.Background(), -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Index != 2 || d.Pokemon.Name != "Charizard" {
		t.Errorf("index = %d, pokemon = %s", d.Index, d.Pokemon.Name)
	}
	if d.Prev != 1 || d.Next != 0 || d.Total != 3 {
		t.Errorf("prev = %d, next = %d, total = %d", d.Prev, d.Next, d.Total)
	}
	if len(d.Axes) != 8 {
		t.Errorf("axes = %d, want 8", len(d.Axes))
	}
	if d.Summary.Recommendation == "" {
		t.Error("empty recommendation")
	}
}

func TestClient_Health(t *testing.T) {
	c, _ := newTestClient(t)

	h := c.Health(context.Background())
	if h.Status != "ok" {
		t.Errorf("status = %q, want ok", h.Status)
	}
	if h.Checks["source"] != "ok" {
		t.Errorf("checks = %v", h.Checks)
	}
	if _, ok := h.Checks["cache"]; ok {
		t.Error("cache check must be absent without a cache server")
	}
}

func TestClient_Prometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, _ := newTestClient(t, WithPrometheus(reg))

	if _, err := c.Query().Do(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, _ = c.Get(context.Background(), "missing")

	if got := testutil.ToFloat64(c.obs.metrics.operations.WithLabelValues("query", "ok")); got != 1 {
		t.Errorf("query ok = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.obs.metrics.operations.WithLabelValues("get", "error")); got != 1 {
		t.Errorf("get error = %v, want 1", got)
	}

	// A second client on the same registry reuses the collectors.
	if _, err := newObserver(nil, reg); err != nil {
		t.Fatalf("re-register: %v", err)
	}
}

// --- rosterUseCase fake ---

type fakeRoster struct {
	listFn      func(ctx context.Context, p criteria.Params) (rosteruc.Listing, error)
	getFn       func(ctx context.Context, id string) (rosteruc.Detail, error)
	facetsFn    func(ctx context.Context) (rosteruc.Facets, error)
	dashboardFn func(ctx context.Context, index int) (rosteruc.Dashboard, error)
}

func (f *fakeRoster) List(ctx context.Context, p criteria.Params) (rosteruc.Listing, error) {
	return f.listFn(ctx, p)
}

func (f *fakeRoster) Get(ctx context.Context, id string) (rosteruc.Detail, error) {
	return f.getFn(ctx, id)
}

func (f *fakeRoster) Facets(ctx context.Context) (rosteruc.Facets, error) {
	return f.facetsFn(ctx)
}

func (f *fakeRoster) Dashboard(ctx context.Context, index int) (rosteruc.Dashboard, error) {
	return f.dashboardFn(ctx, index)
}

type fakeHealth struct{ report healthuc.Report }

func (f fakeHealth) Check(context.Context) healthuc.Report { return f.report }

func TestQueryBuilder_PassesParams(t *testing.T) {
	var got criteria.Params
	c := &Client{rosterSvc: &fakeRoster{
		listFn: func(_ context.Context, p criteria.Params) (rosteruc.Listing, error) {
			got = p
			return rosteruc.Listing{Criteria: criteria.Default()}, nil
		},
	}}

	_, err := c.Query().
		Name("saur").Type("Grass").Weakness("Fire").
		Height("0-1").Weight("light").
		Range(10, 20).Descending().Page(3).PageSize(5).
		Do(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "saur" || got.Type != "Grass" || got.Weakness != "Fire" {
		t.Errorf("tags = %+v", got)
	}
	if got.Height != "0-1" || got.Weight != "light" {
		t.Errorf("buckets = %q/%q", got.Height, got.Weight)
	}
	if got.From == nil || *got.From != 10 || got.To == nil || *got.To != 20 {
		t.Errorf("range = %v..%v", got.From, got.To)
	}
	if got.Direction != criteria.Descending || got.Page != 3 || got.PageSize != 5 {
		t.Errorf("paging = %+v", got)
	}
}

func TestClient_WrapsUseCaseErrors(t *testing.T) {
	upstream := fmt.Errorf("load roster: %w", domain.ErrNetwork)
	c := &Client{rosterSvc: &fakeRoster{
		facetsFn: func(context.Context) (rosteruc.Facets, error) {
			return rosteruc.Facets{}, upstream
		},
		dashboardFn: func(context.Context, int) (rosteruc.Dashboard, error) {
			return rosteruc.Dashboard{}, upstream
		},
		getFn: func(context.Context, string) (rosteruc.Detail, error) {
			return rosteruc.Detail{Creature: creature.Creature{}}, upstream
		},
	}}
	ctx := context.Background()

	if _, err := c.Facets(ctx); !errors.Is(err, ErrNetwork) {
		t.Errorf("Facets err = %v", err)
	}
	if _, err := c.Dashboard(ctx, 0); !errors.Is(err, ErrNetwork) {
		t.Errorf("Dashboard err = %v", err)
	}
	if _, err := c.Get(ctx, "x"); !errors.Is(err, ErrNetwork) {
		t.Errorf("Get err = %v", err)
	}
}

func TestClient_HealthDegraded(t *testing.T) {
	c := &Client{healthSvc: fakeHealth{report: healthuc.Report{
		Status: healthuc.Degraded,
		Checks: map[string]healthuc.CheckResult{"source": healthuc.CheckOK, "cache": healthuc.CheckError},
	}}}

	h := c.Health(context.Background())
	if h.Status != "degraded" || h.Checks["cache"] != "error" {
		t.Errorf("health = %+v", h)
	}
}
