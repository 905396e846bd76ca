package creature

import "slices"

// Interval is a closed numeric range [Min, Max].
type Interval struct {
	Min float64 `json:"minimum"`
	Max float64 `json:"maximum"`
}

// Overlaps reports whether i and other share at least one point.
// Touching bounds count as overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Max >= other.Min && i.Min <= other.Max
}

// Midpoint returns the arithmetic mean of the bounds.
func (i Interval) Midpoint() float64 {
	return (i.Min + i.Max) / 2
}

// Attack is a single fast or special move.
type Attack struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Damage int    `json:"damage"`
}

// Evolution is one step of a forward evolution chain.
type Evolution struct {
	ID          string   `json:"id"`
	Ordinal     int      `json:"number"`
	Name        string   `json:"name"`
	CombatPower int      `json:"max_cp"`
	Types       []string `json:"types"`
	Image       string   `json:"image,omitempty"`
}

// EvolutionRequirement is the candy cost of the next evolution.
type EvolutionRequirement struct {
	Amount int    `json:"amount"`
	Name   string `json:"name"`
}

// Creature is a read-only roster record.
type Creature struct {
	ID                    string                `json:"id"`
	Ordinal               int                   `json:"number"`
	Name                  string                `json:"name"`
	Classification        string                `json:"classification,omitempty"`
	Image                 string                `json:"image,omitempty"`
	Types                 []string              `json:"types"`
	Weaknesses            []string              `json:"weaknesses"`
	Height                Interval              `json:"height"`
	Weight                Interval              `json:"weight"`
	MaxHP                 int                   `json:"max_hp"`
	MaxCP                 int                   `json:"max_cp"`
	FleeRate              float64               `json:"flee_rate"`
	FastAttacks           []Attack              `json:"fast_attacks"`
	SpecialAttacks        []Attack              `json:"special_attacks"`
	EvolutionRequirements *EvolutionRequirement `json:"evolution_requirements,omitempty"`
	Evolutions            []Evolution           `json:"evolutions"`
}

// HasType reports whether tag is one of the creature's elemental types (case-sensitive).
func (c *Creature) HasType(tag string) bool {
	return slices.Contains(c.Types, tag)
}

// HasWeakness reports whether tag is one of the creature's weaknesses (case-sensitive).
func (c *Creature) HasWeakness(tag string) bool {
	return slices.Contains(c.Weaknesses, tag)
}

// MaxEvolutionCP returns the highest CP across the evolution chain, 0 when there is none.
func (c *Creature) MaxEvolutionCP() int {
	best := 0
	for _, e := range c.Evolutions {
		if e.CombatPower > best {
			best = e.CombatPower
		}
	}
	return best
}

// Clone returns a deep copy that shares no storage with c.
func (c *Creature) Clone() Creature {
	out := *c
	out.Types = slices.Clone(c.Types)
	out.Weaknesses = slices.Clone(c.Weaknesses)
	out.FastAttacks = slices.Clone(c.FastAttacks)
	out.SpecialAttacks = slices.Clone(c.SpecialAttacks)
	if c.EvolutionRequirements != nil {
		r := *c.EvolutionRequirements
		out.EvolutionRequirements = &r
	}
	if c.Evolutions != nil {
		out.Evolutions = make([]Evolution, len(c.Evolutions))
		for i, e := range c.Evolutions {
			e.Types = slices.Clone(e.Types)
			out.Evolutions[i] = e
		}
	}
	return out
}
