// Package reflectcache memoises point-through-surface reflections so
// that reflecting a point twice through the same surface returns the
// exact Vec2 value previously produced, not a numerically close copy.
// The shape follows the precomputed-table pattern in the teacher's
// pkg/core/weighted_light_sampler.go: build once, key by value
// identity, and expose simple hit/miss stats for tuning.
package reflectcache

import (
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/geom"
)

// SurfaceID identifies a surface for cache-keying purposes.
type SurfaceID string

type key struct {
	p  geom.Vec2
	id SurfaceID
}

// Reflector is anything that can reflect a point through its own
// supporting line and report its own id — satisfied by surface.Surface,
// kept here as a narrow interface to avoid an import cycle between
// pkg/surface and pkg/reflectcache.
type Reflector interface {
	ID() SurfaceID
	ReflectPoint(p geom.Vec2) geom.Vec2
}

// Stats reports cache effectiveness.
type Stats struct {
	Hits, Misses int
}

// Cache is a per-query memoisation table. It is not safe for
// concurrent use by multiple queries unless the caller synchronises
// access externally (spec.md §5).
type Cache struct {
	table map[key]geom.Vec2
	stats Stats
}

// New creates an empty ReflectionCache.
func New() *Cache {
	return &Cache{table: make(map[key]geom.Vec2)}
}

// Reflect returns the reflection of p through s, memoised. Contract
// (spec.md §4.2): reflect(reflect(p,s),s) must return the identical
// Vec2 previously stored for p — so reflecting q=reflect(p,s) again
// looks up the cache rather than recomputing, to avoid a numerically
// close but non-identical value when the geometry is degenerate.
func (c *Cache) Reflect(p geom.Vec2, s Reflector) geom.Vec2 {
	k := key{p: p, id: s.ID()}
	if q, ok := c.table[k]; ok {
		c.stats.Hits++
		return q
	}
	c.stats.Misses++
	q := s.ReflectPoint(p)
	c.table[k] = q
	c.table[key{p: q, id: s.ID()}] = p
	return q
}

// Stats returns a snapshot of the cache's hit/miss counters.
func (c *Cache) Stats() Stats {
	return c.stats
}
