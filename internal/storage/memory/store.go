package memory

import (
	"context"
	_ "embed"
	"sort"
	"strings"

	"itinerate/internal/domain"
)

// DemoCatalog is the built-in catalog: one destination, seven attractions.
//
//go:embed demo_catalog.json
var DemoCatalog []byte

// Store is an immutable in-memory catalog. Safe for concurrent reads.
type Store struct {
	byKey map[string][]domain.Attraction
	names []string
}

// New copies catalog; later changes to it are not seen by the store.
// Destination keys match case-insensitively.
func New(catalog map[string][]domain.Attraction) *Store {
	s := &Store{byKey: make(map[string][]domain.Attraction, len(catalog))}
	for dest, as := range catalog {
		s.byKey[key(dest)] = cloneAll(as)
		s.names = append(s.names, dest)
	}
	sort.Strings(s.names)
	return s
}

func key(destination string) string { return strings.ToLower(strings.TrimSpace(destination)) }

func (s *Store) Attractions(_ context.Context, destination string) ([]domain.Attraction, error) {
	as, ok := s.byKey[key(destination)]
	if !ok {
		return []domain.Attraction{}, nil
	}
	return cloneAll(as), nil
}

func (s *Store) Destinations(context.Context) ([]string, error) {
	return append([]string(nil), s.names...), nil
}

func cloneAll(in []domain.Attraction) []domain.Attraction {
	out := make([]domain.Attraction, len(in))
	for i, a := range in {
		a.Tags = append([]string(nil), a.Tags...)
		out[i] = a
	}
	return out
}
