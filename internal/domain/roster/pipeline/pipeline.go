// Package pipeline evaluates filter criteria against an in-memory roster.
//
// Run is a pure function: it never mutates its inputs and always returns
// freshly allocated slices.
package pipeline

import (
	"slices"
	"strings"

	"github.com/kailas-cloud/pokedex/internal/domain/creature"
	"github.com/kailas-cloud/pokedex/internal/domain/roster/criteria"
)

// Page is one page of a filtered, sorted roster.
type Page struct {
	Items []creature.Creature
	Total int // matches before pagination
}

type predicate func(*creature.Creature) bool

// Run filters, sorts and paginates roster according to c.
// A page beyond the last one yields no items while Total still reports every match.
func Run(roster []creature.Creature, c criteria.Criteria) Page {
	preds := predicates(c)

	matched := make([]creature.Creature, 0, len(roster))
	for i := range roster {
		if matchesAll(&roster[i], preds) {
			matched = append(matched, roster[i])
		}
	}

	sortByOrdinal(matched, c.Direction())

	return Page{
		Items: paginate(matched, c.Page(), c.PageSize()),
		Total: len(matched),
	}
}

// TotalPages returns ceil(total / pageSize); 0 for a non-positive page size.
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

func predicates(c criteria.Criteria) []predicate {
	from, to := c.From(), c.To()
	preds := []predicate{func(cr *creature.Creature) bool {
		return cr.Ordinal >= from && cr.Ordinal <= to
	}}

	if name := strings.ToLower(c.Name()); name != "" {
		preds = append(preds, func(cr *creature.Creature) bool {
			return strings.Contains(strings.ToLower(cr.Name), name)
		})
	}
	if tag := c.Type(); tag != "" {
		preds = append(preds, func(cr *creature.Creature) bool { return cr.HasType(tag) })
	}
	if tag := c.Weakness(); tag != "" {
		preds = append(preds, func(cr *creature.Creature) bool { return cr.HasWeakness(tag) })
	}
	if h, ok := c.Height(); ok {
		preds = append(preds, func(cr *creature.Creature) bool { return cr.Height.Overlaps(h) })
	}
	if w, ok := c.Weight(); ok {
		preds = append(preds, func(cr *creature.Creature) bool { return cr.Weight.Overlaps(w) })
	}
	return preds
}

func matchesAll(cr *creature.Creature, preds []predicate) bool {
	for _, p := range preds {
		if !p(cr) {
			return false
		}
	}
	return true
}

func sortByOrdinal(items []creature.Creature, dir criteria.Direction) {
	slices.SortStableFunc(items, func(a, b creature.Creature) int {
		if dir == criteria.Descending {
			return b.Ordinal - a.Ordinal
		}
		return a.Ordinal - b.Ordinal
	})
}

func paginate(items []creature.Creature, page, size int) []creature.Creature {
	if page < 1 || size <= 0 || page-1 >= TotalPages(len(items), size) {
		return []creature.Creature{}
	}
	start := (page - 1) * size
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	out := make([]creature.Creature, end-start)
	copy(out, items[start:end])
	return out
}
