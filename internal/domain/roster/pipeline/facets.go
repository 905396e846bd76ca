package pipeline

import "github.com/kailas-cloud/pokedex/internal/domain/creature"

// Facets lists the distinct filter values present in a roster.
type Facets struct {
	Types      []string
	Weaknesses []string
}

// CollectFacets returns the distinct type and weakness tags in first-seen order.
func CollectFacets(roster []creature.Creature) Facets {
	f := Facets{Types: []string{}, Weaknesses: []string{}}
	seenTypes := make(map[string]struct{})
	seenWeak := make(map[string]struct{})

	for i := range roster {
		f.Types = appendUnique(f.Types, seenTypes, roster[i].Types)
		f.Weaknesses = appendUnique(f.Weaknesses, seenWeak, roster[i].Weaknesses)
	}
	return f
}

func appendUnique(dst []string, seen map[string]struct{}, tags []string) []string {
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		dst = append(dst, t)
	}
	return dst
}
