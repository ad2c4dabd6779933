package cache

import (
	"context"
	"testing"
	"time"
)

func TestBriefingCacheMemoryRoundTrip(t *testing.T) {
	c := NewBriefingCache(nil, time.Hour)
	ctx := context.Background()

	if _, ok := c.Get(ctx, "brand-1"); ok {
		t.Fatal("expected miss on empty cache")
	}

	c.Set(ctx, "brand-1", "Focus on scaling Meta campaigns.")

	cached, ok := c.Get(ctx, "brand-1")
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if cached.Briefing != "Focus on scaling Meta campaigns." {
		t.Errorf("briefing = %q", cached.Briefing)
	}
	if cached.GeneratedAt.IsZero() {
		t.Error("generatedAt not set")
	}
}

func TestBriefingCacheKeysAreIndependent(t *testing.T) {
	c := NewBriefingCache(nil, time.Hour)
	ctx := context.Background()

	c.Set(ctx, "brand-1", "briefing one")
	c.Set(ctx, "brand-2", "briefing two")

	if cached, _ := c.Get(ctx, "brand-1"); cached.Briefing != "briefing one" {
		t.Errorf("brand-1 briefing = %q", cached.Briefing)
	}
	if cached, _ := c.Get(ctx, "brand-2"); cached.Briefing != "briefing two" {
		t.Errorf("brand-2 briefing = %q", cached.Briefing)
	}
}

func TestBriefingCacheExpiry(t *testing.T) {
	c := NewBriefingCache(nil, time.Hour)
	ctx := context.Background()

	c.Set(ctx, "brand-1", "stale briefing")

	// Age the entry past its TTL directly rather than sleeping
	c.mu.Lock()
	entry := c.memory[briefingKey("brand-1")]
	entry.expiresAt = time.Now().Add(-time.Minute)
	c.memory[briefingKey("brand-1")] = entry
	c.mu.Unlock()

	if _, ok := c.Get(ctx, "brand-1"); ok {
		t.Error("expected expired entry to miss")
	}
	c.mu.Lock()
	_, stillThere := c.memory[briefingKey("brand-1")]
	c.mu.Unlock()
	if stillThere {
		t.Error("expired entry should be evicted on read")
	}
}

func TestBriefingCacheInvalidate(t *testing.T) {
	c := NewBriefingCache(nil, time.Hour)
	ctx := context.Background()

	c.Set(ctx, "brand-1", "old briefing")
	c.Invalidate(ctx, "brand-1")

	if _, ok := c.Get(ctx, "brand-1"); ok {
		t.Error("expected miss after Invalidate")
	}
}
