package stats

import "github.com/kailas-cloud/pokedex/internal/domain/creature"

// Radar axis subjects.
const (
	SubjectHP         = "HP"
	SubjectCP         = "CP"
	SubjectWeight     = "Weight"
	SubjectHeight     = "Height"
	SubjectFleeRate   = "Flee Rate"
	SubjectFastDMG    = "Fast DMG"
	SubjectSpecialDMG = "Special DMG"
	SubjectWeaknesses = "Weaknesses"
)

// Scale is the reference range an axis value is normalized against.
type Scale struct {
	Min float64
	Max float64
}

var scales = map[string]Scale{
	SubjectHP:         {0, 500},
	SubjectCP:         {0, 5000},
	SubjectWeight:     {0, 500},
	SubjectHeight:     {0, 20},
	SubjectFleeRate:   {0, 100},
	SubjectFastDMG:    {0, 100},
	SubjectSpecialDMG: {0, 200},
	SubjectWeaknesses: {0, 10},
}

// Axis is one spoke of the radar chart.
type Axis struct {
	Subject    string  `json:"subject"`
	Value      float64 `json:"value"`
	Normalized float64 `json:"normalized"` // percent of the axis scale, not clamped
}

// Profile computes the eight radar axes of a creature in display order.
func Profile(c *creature.Creature) []Axis {
	raw := []Axis{
		{Subject: SubjectHP, Value: float64(c.MaxHP)},
		{Subject: SubjectCP, Value: float64(c.MaxCP)},
		{Subject: SubjectWeight, Value: c.Weight.Midpoint()},
		{Subject: SubjectHeight, Value: c.Height.Midpoint()},
		{Subject: SubjectFleeRate, Value: c.FleeRate * 100},
		{Subject: SubjectFastDMG, Value: meanDamage(c.FastAttacks)},
		{Subject: SubjectSpecialDMG, Value: meanDamage(c.SpecialAttacks)},
		{Subject: SubjectWeaknesses, Value: float64(len(c.Weaknesses))},
	}
	for i := range raw {
		raw[i].Normalized = Normalize(raw[i].Subject, raw[i].Value)
	}
	return raw
}

// Normalize maps value onto 0..100 of the subject's scale. Unknown subjects pass through.
func Normalize(subject string, value float64) float64 {
	s, ok := scales[subject]
	if !ok || s.Max == s.Min {
		return value
	}
	return (value - s.Min) / (s.Max - s.Min) * 100
}

// Strongest returns the axis with the highest normalized value; the first one wins ties.
func Strongest(axes []Axis) (Axis, bool) {
	return pick(axes, func(a, b float64) bool { return a > b })
}

// Weakest returns the axis with the lowest normalized value; the first one wins ties.
func Weakest(axes []Axis) (Axis, bool) {
	return pick(axes, func(a, b float64) bool { return a < b })
}

func pick(axes []Axis, better func(a, b float64) bool) (Axis, bool) {
	if len(axes) == 0 {
		return Axis{}, false
	}
	best := axes[0]
	for _, a := range axes[1:] {
		if better(a.Normalized, best.Normalized) {
			best = a
		}
	}
	return best, true
}

func meanDamage(attacks []creature.Attack) float64 {
	if len(attacks) == 0 {
		return 0
	}
	sum := 0
	for _, a := range attacks {
		sum += a.Damage
	}
	return float64(sum) / float64(len(attacks))
}
