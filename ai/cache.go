package ai

import (
	"context"
	"encoding/hex"
	"slices"
	"time"

	"github.com/go-crypt/x/blake2b"
	"github.com/patrickmn/go-cache"
)

// CachingRefiner memoizes another refiner's successful answers for
// identical (name, description, tags) input. Failed calls are not cached.
type CachingRefiner struct {
	next  TagRefiner
	cache *cache.Cache
}

var _ TagRefiner = (*CachingRefiner)(nil)

// NewCachingRefiner wraps next with a cache whose entries expire after ttl.
func NewCachingRefiner(next TagRefiner, ttl time.Duration) (*CachingRefiner, error) {
	if next == nil {
		return nil, ErrRefinerRequired
	}
	cleanup := ttl
	if cleanup <= 0 {
		cleanup = time.Minute
	}
	return &CachingRefiner{
		next:  next,
		cache: cache.New(ttl, cleanup),
	}, nil
}

// Refine returns the cached answer for this input if present, otherwise
// delegates and caches the result.
func (c *CachingRefiner) Refine(ctx context.Context, name, description string, tags []string) ([]string, error) {
	key := cacheKey(name, description, tags)
	if cached, found := c.cache.Get(key); found {
		return slices.Clone(cached.([]string)), nil
	}

	refined, err := c.next.Refine(ctx, name, description, tags)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, slices.Clone(refined), cache.DefaultExpiration)
	return refined, nil
}

// Len returns the number of cached answers, expired ones included until
// the janitor removes them.
func (c *CachingRefiner) Len() int {
	return c.cache.ItemCount()
}

// Flush drops every cached answer.
func (c *CachingRefiner) Flush() {
	c.cache.Flush()
}

// cacheKey digests the input so entries hold a fixed-size key rather than
// a copy of the grant text.
func cacheKey(name, description string, tags []string) string {
	h, _ := blake2b.New(16, nil)
	h.Write([]byte(name))
	h.Write([]byte{0})
	h.Write([]byte(description))
	for _, tag := range tags {
		h.Write([]byte{0})
		h.Write([]byte(tag))
	}
	return hex.EncodeToString(h.Sum(nil))
}
