package transcript

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// DefaultCacheTTL is how long a fetched transcript stays cached.
const DefaultCacheTTL = 30 * time.Minute

// Cached memoizes a Provider in process, keyed by video id. Failures are
// not cached.
type Cached struct {
	next  Provider
	cache *cache.Cache
}

// NewCached wraps next with a TTL cache. A ttl <= 0 uses DefaultCacheTTL.
func NewCached(next Provider, ttl time.Duration) *Cached {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cached{next: next, cache: cache.New(ttl, 2*ttl)}
}

// Fetch implements Provider.
func (c *Cached) Fetch(ctx context.Context, videoID string) ([]Segment, error) {
	if v, found := c.cache.Get(videoID); found {
		return v.([]Segment), nil
	}
	segments, err := c.next.Fetch(ctx, videoID)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(videoID, segments)
	return segments, nil
}

// Forget drops a cached transcript.
func (c *Cached) Forget(videoID string) {
	c.cache.Delete(videoID)
}
