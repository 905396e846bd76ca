package bucket

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/pokedex/internal/domain/creature"
)

// Kind selects the measurement a bucket applies to.
type Kind string

// Bucket kinds.
const (
	Height Kind = "height"
	Weight Kind = "weight"
)

// Bucket is a named numeric sub-range used for coarse filtering.
type Bucket struct {
	Name  string            `json:"name"`
	Label string            `json:"label"`
	Range creature.Interval `json:"range"`
}

var tables = map[Kind][]Bucket{
	Height: {
		{Name: "short", Label: "Short (0 - 1 m)", Range: creature.Interval{Min: 0, Max: 1}},
		{Name: "medium", Label: "Medium (1 - 2 m)", Range: creature.Interval{Min: 1, Max: 2}},
		{Name: "tall", Label: "Tall (2+ m)", Range: creature.Interval{Min: 2, Max: 100}},
	},
	Weight: {
		{Name: "light", Label: "Light (0 - 10 kg)", Range: creature.Interval{Min: 0, Max: 10}},
		{Name: "medium", Label: "Medium (10 - 50 kg)", Range: creature.Interval{Min: 10, Max: 50}},
		{Name: "heavy", Label: "Heavy (50+ kg)", Range: creature.Interval{Min: 50, Max: 999}},
	},
}

// All returns the predefined buckets of a kind in display order.
func All(k Kind) []Bucket {
	src := tables[k]
	out := make([]Bucket, len(src))
	copy(out, src)
	return out
}

// Lookup finds a predefined bucket by name (case-insensitive).
func Lookup(k Kind, name string) (Bucket, bool) {
	for _, b := range tables[k] {
		if strings.EqualFold(b.Name, name) {
			return b, true
		}
	}
	return Bucket{}, false
}

// Parse resolves a bucket expression: either a predefined name ("short")
// or a numeric "min-max" pair ("0-1").
func Parse(k Kind, s string) (creature.Interval, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return creature.Interval{}, fmt.Errorf("%s bucket is empty", k)
	}
	if b, ok := Lookup(k, s); ok {
		return b.Range, nil
	}

	lo, hi, found := strings.Cut(s, "-")
	if !found {
		return creature.Interval{}, fmt.Errorf("unknown %s bucket %q", k, s)
	}
	minV, err := strconv.ParseFloat(strings.TrimSpace(lo), 64)
	if err != nil {
		return creature.Interval{}, fmt.Errorf("invalid %s bucket minimum %q", k, lo)
	}
	maxV, err := strconv.ParseFloat(strings.TrimSpace(hi), 64)
	if err != nil {
		return creature.Interval{}, fmt.Errorf("invalid %s bucket maximum %q", k, hi)
	}
	if minV > maxV {
		return creature.Interval{}, fmt.Errorf("%s bucket minimum %g exceeds maximum %g", k, minV, maxV)
	}
	return creature.Interval{Min: minV, Max: maxV}, nil
}
