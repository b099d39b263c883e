package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"itinerate/internal/domain"
)

var ErrInvalidCatalog = errors.New("invalid catalog")

// CatalogLoader writes a destination's attractions to the store and evicts
// the cached copies.
type CatalogLoader struct {
	repo  domain.CatalogWriter
	cache domain.Cache
}

func NewCatalogLoader(r domain.CatalogWriter, cache domain.Cache) *CatalogLoader {
	return &CatalogLoader{repo: r, cache: cache}
}

// ValidateCatalog checks one destination's attractions. Names must be unique
// ignoring case, matching the store's unique key.
func ValidateCatalog(destination string, as []domain.Attraction) error {
	if strings.TrimSpace(destination) == "" {
		return fmt.Errorf("%w: empty destination", ErrInvalidCatalog)
	}
	names := make(map[string]domain.Attraction, len(as))
	ids := make(map[int64]string, len(as))
	for _, a := range as {
		if strings.TrimSpace(a.Name) == "" {
			return fmt.Errorf("%w: %s: attraction %d has no name", ErrInvalidCatalog, destination, a.ID)
		}
		key := strings.ToLower(strings.TrimSpace(a.Name))
		if prev, dup := names[key]; dup {
			return fmt.Errorf("%w: %s: duplicate name %q (ids %d and %d, as %q)", ErrInvalidCatalog, destination, a.Name, prev.ID, a.ID, prev.Name)
		}
		names[key] = a
		if prev, dup := ids[a.ID]; dup {
			return fmt.Errorf("%w: %s: duplicate id %d (%q and %q)", ErrInvalidCatalog, destination, a.ID, prev, a.Name)
		}
		ids[a.ID] = a.Name
		if a.EntryFee < 0 {
			return fmt.Errorf("%w: %s: %q has negative entry fee", ErrInvalidCatalog, destination, a.Name)
		}
		if a.EffortScore < 1 || a.EffortScore > 5 {
			return fmt.Errorf("%w: %s: %q effort score %d outside 1..5", ErrInvalidCatalog, destination, a.Name, a.EffortScore)
		}
	}
	return nil
}

// LoadAttraction upserts one attraction. Callers validate the whole
// destination first with ValidateCatalog.
func (s *CatalogLoader) LoadAttraction(ctx context.Context, destination string, a domain.Attraction) error {
	if err := s.repo.UpsertAttraction(ctx, destination, a); err != nil {
		return fmt.Errorf("upsert %q for %s failed: %w", a.Name, destination, err)
	}
	return nil
}

// LoadDestination validates and upserts a destination sequentially, then
// evicts its cache entries.
func (s *CatalogLoader) LoadDestination(ctx context.Context, destination string, as []domain.Attraction) error {
	if err := ValidateCatalog(destination, as); err != nil {
		return err
	}
	for _, a := range as {
		if err := s.LoadAttraction(ctx, destination, a); err != nil {
			return err
		}
	}
	s.Invalidate(ctx, destination)
	return nil
}

// Invalidate drops cached listings for destination and the destination index.
func (s *CatalogLoader) Invalidate(ctx context.Context, destination string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, catalogKey(destination))
	_ = s.cache.Del(ctx, destinationsKey)
}
