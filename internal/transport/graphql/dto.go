package graphql

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/pokedex/internal/domain"
	"github.com/kailas-cloud/pokedex/internal/domain/creature"
)

type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type response[T any] struct {
	Data   T             `json:"data"`
	Errors []remoteError `json:"errors"`
}

type remoteError struct {
	Message string `json:"message"`
}

type rosterData struct {
	Pokemons []creatureDTO `json:"pokemons"`
}

type creatureData struct {
	Pokemon *creatureDTO `json:"pokemon"`
}

type healthData struct {
	Pokemons []struct {
		ID string `json:"id"`
	} `json:"pokemons"`
}

// measure decodes "0.61m", "6.04kg", "0.61" or a bare JSON number.
type measure float64

func (m *measure) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] != '"' {
		var f float64
		if err := json.Unmarshal(b, &f); err != nil {
			return fmt.Errorf("measure: %w", err)
		}
		*m = measure(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("measure: %w", err)
	}
	f, err := parseMeasure(s)
	if err != nil {
		return err
	}
	*m = measure(f)
	return nil
}

// parseMeasure reads the leading decimal of s and ignores a trailing unit.
func parseMeasure(s string) (float64, error) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || s[end] == '.' || (end == 0 && s[end] == '-')) {
		end++
	}
	if end == 0 {
		return 0, fmt.Errorf("measure %q: no numeric prefix", s)
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, fmt.Errorf("measure %q: %w", s, err)
	}
	return f, nil
}

type intervalDTO struct {
	Minimum measure `json:"minimum"`
	Maximum measure `json:"maximum"`
}

type attackDTO struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Damage int    `json:"damage"`
}

type evolutionDTO struct {
	ID     string   `json:"id"`
	Number string   `json:"number"`
	Name   string   `json:"name"`
	Image  string   `json:"image"`
	MaxCP  int      `json:"maxCP"`
	Types  []string `json:"types"`
}

type creatureDTO struct {
	ID             string       `json:"id"`
	Number         string       `json:"number"`
	Name           string       `json:"name"`
	Classification string       `json:"classification"`
	Image          string       `json:"image"`
	Types          []string     `json:"types"`
	Weaknesses     []string     `json:"weaknesses"`
	MaxHP          int          `json:"maxHP"`
	MaxCP          int          `json:"maxCP"`
	FleeRate       float64      `json:"fleeRate"`
	Height         *intervalDTO `json:"height"`
	Weight         *intervalDTO `json:"weight"`
	Attacks        *struct {
		Fast    []attackDTO `json:"fast"`
		Special []attackDTO `json:"special"`
	} `json:"attacks"`
	EvolutionRequirements *struct {
		Amount int    `json:"amount"`
		Name   string `json:"name"`
	} `json:"evolutionRequirements"`
	Evolutions []evolutionDTO `json:"evolutions"`
}

func parseOrdinal(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("number %q: %w", s, err)
	}
	if n < 1 {
		return 0, fmt.Errorf("number %q: must be positive", s)
	}
	return n, nil
}

func toInterval(field string, dto *intervalDTO) (creature.Interval, error) {
	if dto == nil {
		return creature.Interval{}, fmt.Errorf("%s: missing", field)
	}
	iv := creature.Interval{Min: float64(dto.Minimum), Max: float64(dto.Maximum)}
	if iv.Min > iv.Max {
		return creature.Interval{}, fmt.Errorf("%s: minimum %v exceeds maximum %v", field, iv.Min, iv.Max)
	}
	return iv, nil
}

func toAttacks(in []attackDTO) []creature.Attack {
	out := make([]creature.Attack, len(in))
	for i, a := range in {
		out[i] = creature.Attack{Name: a.Name, Type: a.Type, Damage: a.Damage}
	}
	return out
}

func nonNil(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

// toDomain validates a record and converts it. Every failure wraps domain.ErrData.
func (d *creatureDTO) toDomain() (creature.Creature, error) {
	fail := func(err error) (creature.Creature, error) {
		return creature.Creature{}, fmt.Errorf("pokemon %q: %w: %w", d.Name, err, domain.ErrData)
	}
	if d.ID == "" {
		return fail(errors.New("empty id"))
	}
	ordinal, err := parseOrdinal(d.Number)
	if err != nil {
		return fail(err)
	}
	height, err := toInterval("height", d.Height)
	if err != nil {
		return fail(err)
	}
	weight, err := toInterval("weight", d.Weight)
	if err != nil {
		return fail(err)
	}
	if len(d.Types) == 0 {
		return fail(errors.New("no elemental types"))
	}

	c := creature.Creature{
		ID:             d.ID,
		Ordinal:        ordinal,
		Name:           d.Name,
		Classification: d.Classification,
		Image:          d.Image,
		Types:          nonNil(d.Types),
		Weaknesses:     nonNil(d.Weaknesses),
		Height:         height,
		Weight:         weight,
		MaxHP:          d.MaxHP,
		MaxCP:          d.MaxCP,
		FleeRate:       d.FleeRate,
		FastAttacks:    []creature.Attack{},
		SpecialAttacks: []creature.Attack{},
		Evolutions:     make([]creature.Evolution, 0, len(d.Evolutions)),
	}
	if d.Attacks != nil {
		c.FastAttacks = toAttacks(d.Attacks.Fast)
		c.SpecialAttacks = toAttacks(d.Attacks.Special)
	}
	if r := d.EvolutionRequirements; r != nil {
		c.EvolutionRequirements = &creature.EvolutionRequirement{Amount: r.Amount, Name: r.Name}
	}
	for _, e := range d.Evolutions {
		n, err := parseOrdinal(e.Number)
		if err != nil {
			return fail(fmt.Errorf("evolution %q: %w", e.Name, err))
		}
		c.Evolutions = append(c.Evolutions, creature.Evolution{
			ID:          e.ID,
			Ordinal:     n,
			Name:        e.Name,
			CombatPower: e.MaxCP,
			Types:       nonNil(e.Types),
			Image:       e.Image,
		})
	}
	return c, nil
}
