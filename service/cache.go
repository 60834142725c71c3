package service

import (
	"context"
	"sync"
	"time"

	"github.com/golang/groupcache/lru"
	"github.com/pacahon/slideshare"
	"github.com/pacahon/slideshare/library/log"
)

const (
	defaultCacheTTL     = 1 * time.Hour
	defaultCacheEntries = 512
)

type cacheEntry struct {
	slide   *slideshare.Slideshow
	expires time.Time
}

// CachedSlideShareService keeps fetched slideshow metadata for an hour so
// repeated downloads of the same deck skip the API round trip.
type CachedSlideShareService struct {
	SlideShareService

	ttl time.Duration
	now func() time.Time

	mu    sync.Mutex
	cache *lru.Cache
}

func NewCachedSlideShareService(svc SlideShareService, ttl time.Duration) *CachedSlideShareService {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CachedSlideShareService{
		SlideShareService: svc,
		ttl:               ttl,
		now:               time.Now,
		cache:             lru.New(defaultCacheEntries),
	}
}

func (c *CachedSlideShareService) Fetch(ctx context.Context, url string) (*slideshare.Slideshow, error) {
	if slide, ok := c.get(url); ok {
		log.Debugf(ctx, "cache hit: %v", url)
		return slide, nil
	}

	slide, err := c.SlideShareService.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cache.Add(url, cacheEntry{slide: slide, expires: c.now().Add(c.ttl)})
	c.mu.Unlock()
	return slide, nil
}

func (c *CachedSlideShareService) get(url string) (*slideshare.Slideshow, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.cache.Get(url)
	if !ok {
		return nil, false
	}
	entry := v.(cacheEntry)
	if !c.now().Before(entry.expires) {
		c.cache.Remove(url)
		return nil, false
	}
	return entry.slide, true
}
