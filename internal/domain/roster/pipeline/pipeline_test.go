package pipeline

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kailas-cloud/pokedex/internal/domain/creature"
	"github.com/kailas-cloud/pokedex/internal/domain/roster/criteria"
)

var starters = map[int]string{
	1: "Bulbasaur", 2: "Ivysaur", 3: "Venusaur",
	4: "Charmander", 5: "Charmeleon", 6: "Charizard",
	7: "Squirtle", 8: "Wartortle", 9: "Blastoise",
}

// testRoster builds n creatures with ordinals 1..n in shuffled order.
func testRoster(n int) []creature.Creature {
	out := make([]creature.Creature, 0, n)
	for i := 1; i <= n; i++ {
		name, ok := starters[i]
		if !ok {
			name = fmt.Sprintf("Creature%03d", i)
		}
		var types []string
		switch i % 3 {
		case 0:
			types = []string{"Water"}
		case 1:
			types = []string{"Grass", "Poison"}
		default:
			types = []string{"Fire"}
		}
		weak := []string{"Psychic"}
		if i%2 == 0 {
			weak = []string{"Electric", "Ground"}
		}
		base := float64(i%4) * 0.5
		out = append(out, creature.Creature{
			ID:         fmt.Sprintf("id-%03d", i),
			Ordinal:    i,
			Name:       name,
			Types:      types,
			Weaknesses: weak,
			Height:     creature.Interval{Min: base, Max: base + 0.4},
			Weight:     creature.Interval{Min: base * 20, Max: base*20 + 5},
		})
	}
	rnd := rand.New(rand.NewSource(7))
	rnd.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func mustCriteria(t *testing.T, p criteria.Params) criteria.Criteria {
	t.Helper()
	c, err := criteria.New(p)
	if err != nil {
		t.Fatalf("criteria.New: %v", err)
	}
	return c
}

func intPtr(v int) *int { return &v }

func ordinals(items []creature.Creature) []int {
	out := make([]int, len(items))
	for i := range items {
		out[i] = items[i].Ordinal
	}
	return out
}

// allPages walks every page of c and concatenates the items.
func allPages(roster []creature.Creature, c criteria.Criteria) ([]creature.Creature, int) {
	first := Run(roster, c.WithPage(1))
	all := append([]creature.Creature{}, first.Items...)
	for p := 2; p <= TotalPages(first.Total, c.PageSize()); p++ {
		all = append(all, Run(roster, c.WithPage(p)).Items...)
	}
	return all, first.Total
}

func TestRun_DefaultFirstPage(t *testing.T) {
	roster := testRoster(151)

	page := Run(roster, criteria.Default())

	if page.Total != 151 {
		t.Errorf("Total = %d, want 151", page.Total)
	}
	want := []int{1, 2, 3, 4, 5, 6, 7, 8, 9}
	if diff := cmp.Diff(want, ordinals(page.Items)); diff != "" {
		t.Errorf("ordinals mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_NameCaseInsensitive(t *testing.T) {
	roster := testRoster(151)

	for _, q := range []string{"char", "CHAR", "Char", "cHaRmAnDeR"} {
		t.Run(q, func(t *testing.T) {
			page := Run(roster, mustCriteria(t, criteria.Params{Name: q}))
			found := false
			for _, c := range page.Items {
				if c.Name == "Charmander" {
					found = true
				}
			}
			if !found {
				t.Errorf("Charmander not matched by %q, got %v", q, ordinals(page.Items))
			}
		})
	}

	page := Run(roster, mustCriteria(t, criteria.Params{Name: "char"}))
	if diff := cmp.Diff([]int{4, 5, 6}, ordinals(page.Items)); diff != "" {
		t.Errorf("char matches (-want +got):\n%s", diff)
	}
}

func TestRun_HeightOverlapNotContainment(t *testing.T) {
	roster := []creature.Creature{
		{ID: "a", Ordinal: 1, Name: "Straddler", Height: creature.Interval{Min: 0.6, Max: 1.5}},
		{ID: "b", Ordinal: 2, Name: "Giant", Height: creature.Interval{Min: 3, Max: 4}},
	}

	short := Run(roster, mustCriteria(t, criteria.Params{Height: "0-1"}))
	if diff := cmp.Diff([]int{1}, ordinals(short.Items)); diff != "" {
		t.Errorf("short bucket (-want +got):\n%s", diff)
	}

	medium := Run(roster, mustCriteria(t, criteria.Params{Height: "medium"}))
	if diff := cmp.Diff([]int{1}, ordinals(medium.Items)); diff != "" {
		t.Errorf("straddling creature must match the adjacent bucket too (-want +got):\n%s", diff)
	}
}

func TestRun_WeightOverlap(t *testing.T) {
	roster := []creature.Creature{
		{Ordinal: 1, Weight: creature.Interval{Min: 6, Max: 12}},
		{Ordinal: 2, Weight: creature.Interval{Min: 60, Max: 90}},
		{Ordinal: 3, Weight: creature.Interval{Min: 0.1, Max: 4}},
	}

	light := Run(roster, mustCriteria(t, criteria.Params{Weight: "light"}))
	if diff := cmp.Diff([]int{1, 3}, ordinals(light.Items)); diff != "" {
		t.Errorf("light (-want +got):\n%s", diff)
	}
	heavy := Run(roster, mustCriteria(t, criteria.Params{Weight: "heavy"}))
	if diff := cmp.Diff([]int{2}, ordinals(heavy.Items)); diff != "" {
		t.Errorf("heavy (-want +got):\n%s", diff)
	}
}

func TestRun_RangeOutsideRoster(t *testing.T) {
	page := Run(testRoster(151), mustCriteria(t, criteria.Params{From: intPtr(200), To: intPtr(300)}))

	if page.Total != 0 {
		t.Errorf("Total = %d, want 0", page.Total)
	}
	if page.Items == nil || len(page.Items) != 0 {
		t.Errorf("Items = %v, want empty non-nil slice", page.Items)
	}
}

func TestRun_PageBeyondRange(t *testing.T) {
	c := mustCriteria(t, criteria.Params{From: intPtr(1), To: intPtr(17), Page: 99})

	page := Run(testRoster(151), c)

	if page.Total != 17 {
		t.Errorf("Total = %d, want 17", page.Total)
	}
	if len(page.Items) != 0 {
		t.Errorf("Items = %v, want empty", ordinals(page.Items))
	}
}

func TestRun_NonPositivePageIsEmpty(t *testing.T) {
	roster := testRoster(20)
	for _, p := range []int{0, -3} {
		page := Run(roster, criteria.Default().WithPage(p))
		if len(page.Items) != 0 || page.Total != 20 {
			t.Errorf("page %d: items=%d total=%d", p, len(page.Items), page.Total)
		}
	}
}

func TestRun_HugePageDoesNotOverflow(t *testing.T) {
	page := Run(testRoster(30), criteria.Default().WithPage(int(^uint(0)>>1)))
	if len(page.Items) != 0 || page.Total != 30 {
		t.Errorf("items=%d total=%d", len(page.Items), page.Total)
	}
}

func TestRun_LastPartialPage(t *testing.T) {
	c := mustCriteria(t, criteria.Params{To: intPtr(17), Page: 2})
	page := Run(testRoster(151), c)

	want := []int{10, 11, 12, 13, 14, 15, 16, 17}
	if diff := cmp.Diff(want, ordinals(page.Items)); diff != "" {
		t.Errorf("last page (-want +got):\n%s", diff)
	}
}

func TestRun_EdgeCases(t *testing.T) {
	roster := testRoster(151)
	tests := []struct {
		name string
		r    []creature.Creature
		p    criteria.Params
	}{
		{"empty roster", nil, criteria.Params{}},
		{"inverted range", roster, criteria.Params{From: intPtr(50), To: intPtr(10)}},
		{"unknown type", roster, criteria.Params{Type: "Shadow"}},
		{"unknown weakness", roster, criteria.Params{Weakness: "Light"}},
		{"type is case-sensitive", roster, criteria.Params{Type: "fire"}},
		{"name matches nothing", roster, criteria.Params{Name: "missingno"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Run(tt.r, mustCriteria(t, tt.p))
			if page.Total != 0 || len(page.Items) != 0 {
				t.Errorf("Total=%d Items=%v, want empty", page.Total, ordinals(page.Items))
			}
		})
	}
}

func TestRun_TagFilters(t *testing.T) {
	roster := testRoster(12)

	fire := Run(roster, mustCriteria(t, criteria.Params{Type: "Fire"}))
	if diff := cmp.Diff([]int{2, 5, 8, 11}, ordinals(fire.Items)); diff != "" {
		t.Errorf("Fire (-want +got):\n%s", diff)
	}

	poison := Run(roster, mustCriteria(t, criteria.Params{Type: "Poison", Weakness: "Electric"}))
	if diff := cmp.Diff([]int{4, 10}, ordinals(poison.Items)); diff != "" {
		t.Errorf("Poison+Electric (-want +got):\n%s", diff)
	}
}

func TestRun_Descending(t *testing.T) {
	page := Run(testRoster(151), mustCriteria(t, criteria.Params{Direction: criteria.Descending, PageSize: 3}))

	if diff := cmp.Diff([]int{151, 150, 149}, ordinals(page.Items)); diff != "" {
		t.Errorf("descending (-want +got):\n%s", diff)
	}
}

func TestRun_StableOnDuplicateOrdinals(t *testing.T) {
	roster := []creature.Creature{
		{ID: "first", Ordinal: 2},
		{ID: "x", Ordinal: 1},
		{ID: "second", Ordinal: 2},
		{ID: "third", Ordinal: 2},
	}
	for _, dir := range []criteria.Direction{criteria.Ascending, criteria.Descending} {
		page := Run(roster, mustCriteria(t, criteria.Params{Direction: dir}))
		var ids []string
		for _, c := range page.Items {
			if c.Ordinal == 2 {
				ids = append(ids, c.ID)
			}
		}
		if diff := cmp.Diff([]string{"first", "second", "third"}, ids); diff != "" {
			t.Errorf("%s: tie order (-want +got):\n%s", dir, diff)
		}
	}
}

func TestRun_DoesNotMutateInput(t *testing.T) {
	roster := testRoster(40)
	before := make([]creature.Creature, len(roster))
	copy(before, roster)
	c := mustCriteria(t, criteria.Params{Direction: criteria.Descending, Type: "Fire"})
	cBefore := c

	page := Run(roster, c)
	page.Items[0].Name = "changed"

	if diff := cmp.Diff(before, roster); diff != "" {
		t.Errorf("roster mutated (-before +after):\n%s", diff)
	}
	if c != cBefore {
		t.Error("criteria mutated")
	}
}

func TestRun_Idempotent(t *testing.T) {
	roster := testRoster(151)
	c := mustCriteria(t, criteria.Params{Name: "creature", Height: "short", Page: 2})

	first := Run(roster, c)
	second := Run(roster, c)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("non-deterministic output (-first +second):\n%s", diff)
	}
}

// propertyCriteria is a spread of criteria used by the property tests below.
func propertyCriteria() []criteria.Params {
	var out []criteria.Params
	for _, dir := range []criteria.Direction{criteria.Ascending, criteria.Descending} {
		for _, size := range []int{1, 4, 9, 50} {
			out = append(out,
				criteria.Params{Direction: dir, PageSize: size},
				criteria.Params{Direction: dir, PageSize: size, From: intPtr(30), To: intPtr(77)},
				criteria.Params{Direction: dir, PageSize: size, Type: "Water", Height: "short"},
				criteria.Params{Direction: dir, PageSize: size, Weakness: "Ground", Weight: "10-50"},
				criteria.Params{Direction: dir, PageSize: size, Name: "0"},
			)
		}
	}
	return out
}

func TestRun_Properties(t *testing.T) {
	roster := testRoster(151)

	for i, p := range propertyCriteria() {
		t.Run(fmt.Sprintf("case-%02d", i), func(t *testing.T) {
			c := mustCriteria(t, p)
			all, total := allPages(roster, c)

			if len(all) != total {
				t.Fatalf("concatenated pages = %d items, Total = %d", len(all), total)
			}

			seen := make(map[string]bool, len(all))
			for j := range all {
				cr := all[j]
				if seen[cr.ID] {
					t.Errorf("%s appears on more than one page", cr.ID)
				}
				seen[cr.ID] = true

				if cr.Ordinal < c.From() || cr.Ordinal > c.To() {
					t.Errorf("ordinal %d outside [%d,%d]", cr.Ordinal, c.From(), c.To())
				}
				if j == 0 {
					continue
				}
				prev := all[j-1].Ordinal
				if c.Direction() == criteria.Ascending && prev > cr.Ordinal {
					t.Errorf("ascending order broken: %d before %d", prev, cr.Ordinal)
				}
				if c.Direction() == criteria.Descending && prev < cr.Ordinal {
					t.Errorf("descending order broken: %d before %d", prev, cr.Ordinal)
				}
			}

			for page := 1; page <= TotalPages(total, c.PageSize())+1; page++ {
				got := Run(roster, c.WithPage(page))
				if got.Total < len(got.Items) {
					t.Errorf("page %d: Total %d < len(Items) %d", page, got.Total, len(got.Items))
				}
				if len(got.Items) > c.PageSize() {
					t.Errorf("page %d: %d items exceed page size %d", page, len(got.Items), c.PageSize())
				}
			}
		})
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, size, want int
	}{
		{151, 9, 17},
		{153, 9, 17},
		{154, 9, 18},
		{0, 9, 0},
		{5, 0, 0},
		{1, 1, 1},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.total, tt.size); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.size, got, tt.want)
		}
	}
}

func TestCollectFacets_FirstSeenOrder(t *testing.T) {
	roster := []creature.Creature{
		{Types: []string{"Grass", "Poison"}, Weaknesses: []string{"Fire", "Ice"}},
		{Types: []string{"Fire"}, Weaknesses: []string{"Water", "Ice"}},
		{Types: []string{"Poison"}, Weaknesses: nil},
	}

	f := CollectFacets(roster)

	if diff := cmp.Diff([]string{"Grass", "Poison", "Fire"}, f.Types); diff != "" {
		t.Errorf("types (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Fire", "Ice", "Water"}, f.Weaknesses); diff != "" {
		t.Errorf("weaknesses (-want +got):\n%s", diff)
	}
}

func TestCollectFacets_Empty(t *testing.T) {
	f := CollectFacets(nil)
	if f.Types == nil || f.Weaknesses == nil {
		t.Error("facets must be empty slices, not nil")
	}
}
