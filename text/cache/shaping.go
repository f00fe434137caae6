// Package cache memoizes shaping results.
package cache

import (
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/textlayout/text"
)

// ShapingKey identifies a shaped substring within one font.
type ShapingKey struct {
	Text string
	RTL  bool
}

// ShapingCache memoizes shaping results per font, keyed by exact text and
// direction. Every distinct key reaches the underlying Shaper exactly once;
// later requests return the same *text.ShapingResult instance.
//
// Entries live until Clear. ShapingCache is not safe for concurrent use.
type ShapingCache struct {
	shaper text.Shaper
	fonts  map[text.Font]map[ShapingKey]*text.ShapingResult
	log    *slog.Logger

	// Statistics (atomic for zero-allocation reads)
	hits   atomic.Uint64
	misses atomic.Uint64
}

// New creates an empty cache in front of shaper.
func New(shaper text.Shaper) *ShapingCache {
	return &ShapingCache{
		shaper: shaper,
		fonts:  make(map[text.Font]map[ShapingKey]*text.ShapingResult),
		log:    slog.New(slog.DiscardHandler),
	}
}

// SetLogger sets the logger used for cache diagnostics.
// Nil restores the silent default.
func (c *ShapingCache) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	c.log = l
}

// Shaper returns the shaper behind the cache.
func (c *ShapingCache) Shaper() text.Shaper {
	return c.shaper
}

// Get implements text.ShapingProvider. On a miss the text is shaped as a
// single run in the requested direction.
func (c *ShapingCache) Get(font text.Font, str string, rtl bool) (*text.ShapingResult, error) {
	key := ShapingKey{Text: str, RTL: rtl}
	entries := c.fonts[font]
	if res, ok := entries[key]; ok {
		c.hits.Add(1)
		return res, nil
	}
	c.misses.Add(1)

	if c.shaper == nil {
		return nil, text.ErrNoShapingProvider
	}
	res, err := text.ShapeString(c.shaper, font, str, rtl)
	if err != nil {
		return nil, err
	}

	if entries == nil {
		entries = make(map[ShapingKey]*text.ShapingResult)
		c.fonts[font] = entries
		c.log.Debug("cache: new font", "font", fontName(font))
	}
	entries[key] = res
	return res, nil
}

// Peek returns a cached result without shaping or touching statistics.
func (c *ShapingCache) Peek(font text.Font, str string, rtl bool) (*text.ShapingResult, bool) {
	res, ok := c.fonts[font][ShapingKey{Text: str, RTL: rtl}]
	return res, ok
}

// Clear removes all entries. Results handed out earlier stay valid.
func (c *ShapingCache) Clear() {
	n := c.Len()
	c.fonts = make(map[text.Font]map[ShapingKey]*text.ShapingResult)
	c.log.Debug("cache: cleared", "entries", n)
}

// Len returns the total number of entries across all fonts.
func (c *ShapingCache) Len() int {
	total := 0
	for _, entries := range c.fonts {
		total += len(entries)
	}
	return total
}

// CacheStats contains cache statistics for monitoring.
type CacheStats struct {
	// Len is the current number of entries.
	Len int
	// Fonts is the number of fonts with at least one entry.
	Fonts int
	// Hits is the number of cache hits.
	Hits uint64
	// Misses is the number of cache misses.
	Misses uint64
	// HitRate is the cache hit rate (0.0 to 1.0).
	HitRate float64
}

// Stats returns current cache statistics.
func (c *ShapingCache) Stats() CacheStats {
	hits := c.hits.Load()
	misses := c.misses.Load()
	var rate float64
	if total := hits + misses; total > 0 {
		rate = float64(hits) / float64(total)
	}
	return CacheStats{
		Len:     c.Len(),
		Fonts:   len(c.fonts),
		Hits:    hits,
		Misses:  misses,
		HitRate: rate,
	}
}

// ResetStats resets hit and miss counters to zero.
func (c *ShapingCache) ResetStats() {
	c.hits.Store(0)
	c.misses.Store(0)
}

func fontName(f text.Font) string {
	if f == nil {
		return "<nil>"
	}
	return f.Name()
}
