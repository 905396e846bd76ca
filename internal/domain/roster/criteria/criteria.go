package criteria

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/pokedex/internal/domain"
	"github.com/kailas-cloud/pokedex/internal/domain/creature"
	"github.com/kailas-cloud/pokedex/internal/domain/roster/bucket"
)

// Criteria defaults and limits.
const (
	DefaultFrom     = 1
	DefaultTo       = 151
	DefaultPageSize = 9
	MaxPageSize     = 100
	MaxNameLength   = 128
)

// Direction is the ordinal sort order.
type Direction string

// Sort directions.
const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// IsValid checks if the direction is one of the supported values.
func (d Direction) IsValid() bool {
	return d == Ascending || d == Descending
}

// Params is the raw, unvalidated input for New. Zero values mean "use the default".
type Params struct {
	Name      string
	Type      string
	Weakness  string
	Height    string // bucket name or "min-max"
	Weight    string // bucket name or "min-max"
	From      *int
	To        *int
	Direction Direction
	Page      int
	PageSize  int
}

// Criteria is a validated, immutable set of roster filters plus the requested page.
type Criteria struct {
	name      string
	typeTag   string
	weakness  string
	height    creature.Interval
	hasHeight bool
	weight    creature.Interval
	hasWeight bool
	from      int
	to        int
	direction Direction
	page      int
	pageSize  int
}

// New validates and normalizes criteria parameters.
// Defaults: range [1,151], ascending, page 1, page size 9. Page size is clamped to MaxPageSize.
// An inverted range is accepted: it simply matches nothing.
func New(p Params) (Criteria, error) {
	c := Criteria{
		name:      strings.TrimSpace(p.Name),
		typeTag:   strings.TrimSpace(p.Type),
		weakness:  strings.TrimSpace(p.Weakness),
		from:      DefaultFrom,
		to:        DefaultTo,
		direction: p.Direction,
		page:      p.Page,
		pageSize:  p.PageSize,
	}

	if len(c.name) > MaxNameLength {
		return Criteria{}, fmt.Errorf("%w: name too long (max %d chars)", domain.ErrInvalidCriteria, MaxNameLength)
	}
	if p.From != nil {
		c.from = *p.From
	}
	if p.To != nil {
		c.to = *p.To
	}
	if c.direction == "" {
		c.direction = Ascending
	}
	if !c.direction.IsValid() {
		return Criteria{}, fmt.Errorf("%w: invalid sort direction %q", domain.ErrInvalidCriteria, p.Direction)
	}
	if c.page < 0 {
		return Criteria{}, fmt.Errorf("%w: page must be positive, got %d", domain.ErrInvalidCriteria, p.Page)
	}
	if c.page == 0 {
		c.page = 1
	}
	if c.pageSize < 0 {
		return Criteria{}, fmt.Errorf("%w: page size must be positive, got %d", domain.ErrInvalidCriteria, p.PageSize)
	}
	if c.pageSize == 0 {
		c.pageSize = DefaultPageSize
	}
	if c.pageSize > MaxPageSize {
		c.pageSize = MaxPageSize
	}

	if p.Height != "" {
		r, err := bucket.Parse(bucket.Height, p.Height)
		if err != nil {
			return Criteria{}, fmt.Errorf("%w: %w", domain.ErrInvalidCriteria, err)
		}
		c.height, c.hasHeight = r, true
	}
	if p.Weight != "" {
		r, err := bucket.Parse(bucket.Weight, p.Weight)
		if err != nil {
			return Criteria{}, fmt.Errorf("%w: %w", domain.ErrInvalidCriteria, err)
		}
		c.weight, c.hasWeight = r, true
	}

	return c, nil
}

// Default returns the criteria of a freshly loaded or reset view.
func Default() Criteria {
	return Criteria{
		from:      DefaultFrom,
		to:        DefaultTo,
		direction: Ascending,
		page:      1,
		pageSize:  DefaultPageSize,
	}
}

// WithPage returns a copy of c pointing at another page. The page is not bounds-checked.
func (c Criteria) WithPage(page int) Criteria {
	c.page = page
	return c
}

// Name returns the case-insensitive name substring ("" = no constraint).
func (c Criteria) Name() string { return c.name }

// Type returns the required elemental type tag ("" = no constraint).
func (c Criteria) Type() string { return c.typeTag }

// Weakness returns the required weakness tag ("" = no constraint).
func (c Criteria) Weakness() string { return c.weakness }

// Height returns the height bucket and whether it is set.
func (c Criteria) Height() (creature.Interval, bool) { return c.height, c.hasHeight }

// Weight returns the weight bucket and whether it is set.
func (c Criteria) Weight() (creature.Interval, bool) { return c.weight, c.hasWeight }

// From returns the inclusive lower ordinal bound.
func (c Criteria) From() int { return c.from }

// To returns the inclusive upper ordinal bound.
func (c Criteria) To() int { return c.to }

// Direction returns the sort direction.
func (c Criteria) Direction() Direction { return c.direction }

// Page returns the 1-indexed page number.
func (c Criteria) Page() int { return c.page }

// PageSize returns the number of items per page.
func (c Criteria) PageSize() int { return c.pageSize }
