package pokedex

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/pokedex/internal/domain/roster/criteria"
)

// QueryBuilder is a fluent builder for roster queries.
// Unset criteria use the defaults: ordinals 1–151, ascending, page 1.
type QueryBuilder struct {
	client *Client
	params criteria.Params
}

// Name keeps Pokémon whose name contains s, ignoring case.
func (b *QueryBuilder) Name(s string) *QueryBuilder {
	b.params.Name = s
	return b
}

// Type keeps Pokémon that have the elemental type tag (case-sensitive, e.g. "Fire").
func (b *QueryBuilder) Type(tag string) *QueryBuilder {
	b.params.Type = tag
	return b
}

// Weakness keeps Pokémon weak to tag.
func (b *QueryBuilder) Weakness(tag string) *QueryBuilder {
	b.params.Weakness = tag
	return b
}

// Height keeps Pokémon whose height range overlaps the bucket.
// Accepts a bucket name ("short", "medium", "tall") or "min-max" in metres.
func (b *QueryBuilder) Height(bucket string) *QueryBuilder {
	b.params.Height = bucket
	return b
}

// Weight keeps Pokémon whose weight range overlaps the bucket.
// Accepts a bucket name ("light", "medium", "heavy") or "min-max" in kilograms.
func (b *QueryBuilder) Weight(bucket string) *QueryBuilder {
	b.params.Weight = bucket
	return b
}

// Range keeps Pokémon whose ordinal is within [from, to].
func (b *QueryBuilder) Range(from, to int) *QueryBuilder {
	b.params.From = &from
	b.params.To = &to
	return b
}

// Descending sorts by ordinal, highest first.
func (b *QueryBuilder) Descending() *QueryBuilder {
	b.params.Direction = criteria.Descending
	return b
}

// Page selects the 1-based page.
func (b *QueryBuilder) Page(n int) *QueryBuilder {
	b.params.Page = n
	return b
}

// PageSize overrides the client's default page size.
func (b *QueryBuilder) PageSize(n int) *QueryBuilder {
	b.params.PageSize = n
	return b
}

// Do runs the query. Invalid criteria fail with ErrInvalidCriteria.
func (b *QueryBuilder) Do(ctx context.Context) (_ Page, err error) {
	start := time.Now()
	defer func() { b.client.obs.observe("query", start, err) }()

	l, err := b.client.rosterSvc.List(ctx, b.params)
	if err != nil {
		return Page{}, fmt.Errorf("query: %w", err)
	}
	items := make([]Pokemon, len(l.Items))
	for i := range l.Items {
		items[i] = l.Items[i].Clone()
	}
	return Page{
		Items:      items,
		Total:      l.Total,
		Page:       l.Criteria.Page(),
		PageSize:   l.Criteria.PageSize(),
		TotalPages: l.TotalPages,
	}, nil
}
