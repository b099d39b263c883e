package app

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"itinerate/internal/domain"
)

// CatalogQueries serves catalog reads through the cache. It satisfies
// domain.CatalogStore so the pipeline can sit on top of it.
type CatalogQueries struct {
	store    domain.CatalogStore
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewCatalogQueries(s domain.CatalogStore, c domain.Cache, ttl time.Duration) *CatalogQueries {
	return &CatalogQueries{store: s, cache: c, cacheTTL: ttl}
}

func catalogKey(destination string) string {
	return "catalog:" + strings.ToLower(strings.TrimSpace(destination))
}

const destinationsKey = "catalog:_destinations"

func (s *CatalogQueries) Attractions(ctx context.Context, destination string) ([]domain.Attraction, error) {
	key := catalogKey(destination)
	var out []domain.Attraction
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &out); ok {
			return out, nil
		}
	}

	as, err := s.store.Attractions(ctx, destination)
	if err != nil {
		return nil, err
	}

	// copy so callers never share the store's backing array
	out = copyAttractions(as)

	// unknown destinations are not cached; a later seed would be hidden otherwise
	if s.cache != nil && len(out) > 0 {
		if b, _ := json.Marshal(out); len(b) < 1_000_000 {
			_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
		}
	}
	return out, nil
}

func (s *CatalogQueries) Destinations(ctx context.Context) ([]string, error) {
	var out []string
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, destinationsKey, &out); ok {
			return out, nil
		}
	}
	ds, err := s.store.Destinations(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, destinationsKey, ds, int(s.cacheTTL.Seconds()))
	}
	return ds, nil
}

func copyAttractions(in []domain.Attraction) []domain.Attraction {
	out := make([]domain.Attraction, len(in))
	for i, a := range in {
		a.Tags = append([]string(nil), a.Tags...)
		out[i] = a
	}
	return out
}
