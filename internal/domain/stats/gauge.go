package stats

import "github.com/kailas-cloud/pokedex/internal/domain/creature"

// Gauge colours.
const (
	ColorHigh = "#8DC540"
	ColorLow  = "#ff6384"
)

// DefaultGaugeMax is the scale of a gauge when none is given.
const DefaultGaugeMax = 100

// Gauge is a horizontal stacked bar: value plus the remaining headroom.
type Gauge struct {
	Label     string  `json:"label"`
	Value     float64 `json:"value"`
	Max       float64 `json:"max"`
	Percent   float64 `json:"percent"`
	Remaining float64 `json:"remaining"`
	Color     string  `json:"color"`
}

// NewGauge builds a gauge. A non-positive maxValue falls back to DefaultGaugeMax.
func NewGauge(label string, value, maxValue float64) Gauge {
	if maxValue <= 0 {
		maxValue = DefaultGaugeMax
	}
	pct := value / maxValue * 100
	color := ColorLow
	if pct > 50 {
		color = ColorHigh
	}
	remaining := maxValue - value
	if remaining < 0 {
		remaining = 0
	}
	return Gauge{
		Label:     label,
		Value:     value,
		Max:       maxValue,
		Percent:   pct,
		Remaining: remaining,
		Color:     color,
	}
}

// DetailGauges returns the stat bars shown on a creature's detail view.
func DetailGauges(c *creature.Creature) []Gauge {
	return []Gauge{
		NewGauge("HP", float64(c.MaxHP), DefaultGaugeMax),
		NewGauge("CP", float64(c.MaxCP), DefaultGaugeMax),
		NewGauge("Flee Rate", c.FleeRate, DefaultGaugeMax),
		NewGauge("Max Evolution CP", float64(c.MaxEvolutionCP()), DefaultGaugeMax),
	}
}

// Step moves a carousel index by delta, wrapping in both directions. Returns 0 when n <= 0.
func Step(index, n, delta int) int {
	if n <= 0 {
		return 0
	}
	i := (index + delta) % n
	if i < 0 {
		i += n
	}
	return i
}
