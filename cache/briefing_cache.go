package cache

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// CachedBriefing is the stored briefing payload along with when it was built.
type CachedBriefing struct {
	Briefing    string    `json:"briefing"`
	GeneratedAt time.Time `json:"generatedAt"`
}

type memoryEntry struct {
	value     CachedBriefing
	expiresAt time.Time
}

// BriefingCache caches AI briefings per brand. It writes through to Redis
// when available and falls back to an in-process map otherwise, so the
// briefing endpoint keeps its cost ceiling even without Redis.
type BriefingCache struct {
	redis *RedisClient
	ttl   time.Duration

	mu     sync.Mutex
	memory map[string]memoryEntry
}

// NewBriefingCache creates a briefing cache with the given TTL. redis may be
// nil, in which case only the in-memory fallback is used.
func NewBriefingCache(redis *RedisClient, ttl time.Duration) *BriefingCache {
	return &BriefingCache{
		redis:  redis,
		ttl:    ttl,
		memory: make(map[string]memoryEntry),
	}
}

func briefingKey(brandID string) string {
	return fmt.Sprintf("briefing:%s", brandID)
}

// Get returns the cached briefing for a brand and whether one was found.
func (c *BriefingCache) Get(ctx context.Context, brandID string) (*CachedBriefing, bool) {
	key := briefingKey(brandID)

	if c.redis != nil {
		var cached CachedBriefing
		if err := c.redis.Get(ctx, key, &cached); err == nil {
			return &cached, true
		}
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.memory[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		delete(c.memory, key)
		return nil, false
	}
	return &entry.value, true
}

// Set stores a freshly generated briefing for a brand.
func (c *BriefingCache) Set(ctx context.Context, brandID, briefing string) {
	key := briefingKey(brandID)
	cached := CachedBriefing{Briefing: briefing, GeneratedAt: time.Now()}

	if c.redis != nil {
		if err := c.redis.Set(ctx, key, cached, c.ttl); err == nil {
			return
		}
		// Redis write failed, keep the memory copy as backup
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.memory[key] = memoryEntry{value: cached, expiresAt: time.Now().Add(c.ttl)}
}

// Invalidate drops the cached briefing for a brand.
func (c *BriefingCache) Invalidate(ctx context.Context, brandID string) {
	key := briefingKey(brandID)
	if c.redis != nil {
		c.redis.Delete(ctx, key)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.memory, key)
}
