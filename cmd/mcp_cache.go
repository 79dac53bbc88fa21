package cmd

import (
	"context"
	"sync"
	"time"

	"github.com/droidrun/droid-cli/internal/adb"
	"github.com/droidrun/droid-cli/internal/model"
)

// mcpCacheKey identifies a unique tree read scope.
type mcpCacheKey struct {
	Full bool
	All  bool
}

// mcpCacheEntry holds a cached snapshot with its timestamp.
type mcpCacheEntry struct {
	tree      []model.Node
	flat      []*model.Node
	timestamp time.Time
}

// mcpTreeCache provides a TTL-based cache for accessibility snapshots.
// Input tools invalidate it so the next read reflects the new UI state.
type mcpTreeCache struct {
	mu      sync.Mutex
	entries map[mcpCacheKey]mcpCacheEntry
	ttl     time.Duration
}

// newMCPTreeCache creates a new cache. A ttl of 0 disables caching.
func newMCPTreeCache(ttl time.Duration) *mcpTreeCache {
	return &mcpTreeCache{
		entries: make(map[mcpCacheKey]mcpCacheEntry),
		ttl:     ttl,
	}
}

// snapshot returns a cached snapshot if within TTL, otherwise reads fresh.
func (c *mcpTreeCache) snapshot(ctx context.Context, client *adb.Client, full, all bool) ([]model.Node, []*model.Node, error) {
	if c.ttl == 0 {
		return querySnapshot(ctx, client, full, all)
	}

	key := mcpCacheKey{Full: full, All: all}

	c.mu.Lock()
	if entry, ok := c.entries[key]; ok && time.Since(entry.timestamp) < c.ttl {
		tree, flat := entry.tree, entry.flat
		c.mu.Unlock()
		return tree, flat, nil
	}
	c.mu.Unlock()

	tree, flat, err := querySnapshot(ctx, client, full, all)
	if err != nil {
		return nil, nil, err
	}

	c.mu.Lock()
	c.entries[key] = mcpCacheEntry{tree: tree, flat: flat, timestamp: time.Now()}
	c.mu.Unlock()

	return tree, flat, nil
}

// invalidateAll clears the entire cache.
func (c *mcpTreeCache) invalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[mcpCacheKey]mcpCacheEntry)
}
