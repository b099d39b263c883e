package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"itinerate/internal/app"
	"itinerate/internal/domain"
	"itinerate/internal/storage/memory"
)

// ---- fakes ----

// fakeCache round-trips values through JSON like the Redis adapter does.
type fakeCache struct {
	mu    sync.Mutex
	store map[string][]byte
	sets  int
	dels  []string
}

func (c *fakeCache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(_ context.Context, key string, v any, _ int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	c.store[key] = b
	c.sets++
	return nil
}

func (c *fakeCache) Del(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	c.dels = append(c.dels, key)
	return nil
}

func (c *fakeCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.store[key]
	return ok
}

// fakeStore is a catalog store and writer that counts reads.
type fakeStore struct {
	mu      sync.Mutex
	data    map[string][]domain.Attraction
	reads   int
	err     error
	upserts []string
}

func (s *fakeStore) Attractions(_ context.Context, destination string) ([]domain.Attraction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	if s.err != nil {
		return nil, s.err
	}
	return s.data[destination], nil
}

func (s *fakeStore) Destinations(context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	if s.err != nil {
		return nil, s.err
	}
	out := make([]string, 0, len(s.data))
	for d := range s.data {
		out = append(out, d)
	}
	return out, nil
}

func (s *fakeStore) UpsertAttraction(_ context.Context, destination string, a domain.Attraction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.upserts = append(s.upserts, destination+"/"+a.Name)
	return nil
}

type genFunc func(ctx context.Context, req domain.NarrativeRequest) ([]byte, error)

func (f genFunc) Generate(ctx context.Context, req domain.NarrativeRequest) ([]byte, error) {
	return f(ctx, req)
}

var errBoom = errors.New("boom")

// ---- helpers ----

func demoAttractions(t *testing.T) []domain.Attraction {
	t.Helper()
	cat, err := app.ParseCatalog(memory.DemoCatalog)
	require.NoError(t, err)
	as := cat["Singapore"]
	require.Len(t, as, 7)
	return as
}

func demoStore(t *testing.T) *memory.Store {
	t.Helper()
	cat, err := app.ParseCatalog(memory.DemoCatalog)
	require.NoError(t, err)
	return memory.New(cat)
}

func names(as []domain.Attraction) []string {
	out := make([]string, len(as))
	for i, a := range as {
		out[i] = a.Name
	}
	return out
}

func attraction(id int64, name string, fee float64, tags ...string) domain.Attraction {
	return domain.Attraction{ID: id, Name: name, EntryFee: fee, Tags: tags, EffortScore: 2}
}
