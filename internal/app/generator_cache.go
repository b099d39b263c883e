package app

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"time"

	"itinerate/internal/domain"
)

// CachedGenerator memoizes generator output per prompt+schema. Identical
// trips produce identical prompts, so repeat requests skip the text service.
type CachedGenerator struct {
	next  domain.NarrativeGenerator
	cache domain.Cache
	ttl   time.Duration
}

func NewCachedGenerator(next domain.NarrativeGenerator, c domain.Cache, ttl time.Duration) *CachedGenerator {
	return &CachedGenerator{next: next, cache: c, ttl: ttl}
}

func narrativeKey(req domain.NarrativeRequest) string {
	h := sha1.New()
	h.Write([]byte(req.Prompt))
	if req.Schema != nil {
		b, _ := json.Marshal(req.Schema)
		h.Write(b)
	}
	return "narrative:" + hex.EncodeToString(h.Sum(nil))
}

func (g *CachedGenerator) Generate(ctx context.Context, req domain.NarrativeRequest) ([]byte, error) {
	key := narrativeKey(req)
	var cached string
	if ok, _ := g.cache.Get(ctx, key, &cached); ok && cached != "" {
		return []byte(cached), nil
	}
	raw, err := g.next.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	// only remember output that will reconcile
	if _, derr := DecodeGeneratedPlan(raw); derr == nil {
		_ = g.cache.Set(ctx, key, string(raw), int(g.ttl.Seconds()))
	}
	return raw, nil
}
