// Package propagator implements RayPropagator: the immutable
// image-space state a trace carries between reflections. Reflecting
// always moves two points (an origin image and a target image) rather
// than a direction + normal, which the teacher's path tracer does for
// a single throughput vector in pkg/integrator/path_tracing.go's
// rayColorRecursive — here we thread two Vec2 images instead of one
// Vec3 throughput, preserving exactness across reflection chains
// (spec.md §4.3, §9).
package propagator

import (
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/geom"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/reflectcache"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/surface"
)

// Propagator is an immutable tuple {origin_image, target_image, depth,
// last_surface, start_line}. All of its methods return a new value;
// none mutate the receiver.
type Propagator struct {
	OriginImage geom.Vec2
	TargetImage geom.Vec2
	Depth       int
	LastSurface *surface.Surface // nil before the first reflection
	StartLine   *geom.Segment    // nil before the first reflection
	cache       *reflectcache.Cache
}

// New creates the initial propagator for a player->target query,
// depth 0, no last surface or start line.
func New(origin, target geom.Vec2, cache *reflectcache.Cache) Propagator {
	return Propagator{OriginImage: origin, TargetImage: target, Depth: 0, cache: cache}
}

// Cache returns the propagator's shared ReflectionCache.
func (p Propagator) Cache() *reflectcache.Cache {
	return p.cache
}

// GetRay returns the current image-space ray: from the origin image
// toward the target image.
func (p Propagator) GetRay() geom.Ray {
	return geom.NewRay(p.OriginImage, p.TargetImage)
}

// ReflectThrough returns a new propagator with both images reflected
// through s via the shared cache, depth incremented, last surface set
// to s, and start_line set to s's segment so that subsequent hit
// detection only accepts hits strictly past this reflector
// (spec.md §3, Propagator invariant).
func (p Propagator) ReflectThrough(s *surface.Surface) Propagator {
	line := s.Segment
	return Propagator{
		OriginImage: p.cache.Reflect(p.OriginImage, s),
		TargetImage: p.cache.Reflect(p.TargetImage, s),
		Depth:       p.Depth + 1,
		LastSurface: s,
		StartLine:   &line,
		cache:       p.cache,
	}
}

// Fork returns an independent propagator sharing the same
// ReflectionCache — useful when a calculator (e.g. MergedPathCalculator)
// needs to advance two strategies from the same state without one
// mutating the other (propagators are value types, so this is mostly
// documentation of intent: Go's copy semantics already give this for
// free).
func (p Propagator) Fork() Propagator {
	return p
}
