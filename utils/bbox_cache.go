package utils

import (
	"sync"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// BBoxCacheEntry represents a cached bounding box lookup result
type BBoxCacheEntry struct {
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	BBoxes   []cube.BBox
	Tick     int64
}

// BBoxCache caches the result of a broad phase collider lookup so that a body moving slowly does not query
// its world on every physics tick.
type BBoxCache struct {
	mu                  sync.RWMutex
	entry               *BBoxCacheEntry
	invalidateThreshold float32
	maxAge              int64

	stats BBoxCacheStats
}

// BBoxCacheStats counts cache lookups.
type BBoxCacheStats struct {
	Hits   int64
	Misses int64
}

// NewBBoxCache creates a cache whose entries stay valid for maxAge ticks, as long as neither position nor
// velocity moved further than threshold from the cached values.
func NewBBoxCache(threshold float32, maxAge int64) *BBoxCache {
	return &BBoxCache{
		invalidateThreshold: threshold,
		maxAge:              maxAge,
	}
}

// Get retrieves cached bounding boxes if valid. The boolean is false on a cache miss.
func (c *BBoxCache) Get(pos, vel mgl32.Vec3, tick int64) ([]cube.BBox, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.entry == nil ||
		tick-c.entry.Tick > c.maxAge ||
		pos.Sub(c.entry.Position).Len() > c.invalidateThreshold ||
		vel.Sub(c.entry.Velocity).Len() > c.invalidateThreshold {
		c.stats.Misses++
		return nil, false
	}
	c.stats.Hits++
	return c.entry.BBoxes, true
}

// Set stores bounding boxes in the cache. The slice is copied.
func (c *BBoxCache) Set(pos, vel mgl32.Vec3, bboxes []cube.BBox, tick int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	bboxesCopy := make([]cube.BBox, len(bboxes))
	copy(bboxesCopy, bboxes)
	c.entry = &BBoxCacheEntry{
		Position: pos,
		Velocity: vel,
		BBoxes:   bboxesCopy,
		Tick:     tick,
	}
}

// Invalidate clears the cache
func (c *BBoxCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = nil
}

// Stats returns the lookup statistics of the cache.
func (c *BBoxCache) Stats() BBoxCacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}
