// Package surface models the opaque reflective/absorbing line segments
// a scene is built from, and the chains that group segments sharing
// endpoints. It is the 2D analogue of the teacher's pkg/geometry
// Shape interface (see shape.go's HitRecord/Shape) generalized from a
// ray-hit-returns-normal model to a side-orientated capability model,
// since reflection here is always "through the supporting line", never
// a per-hit computed normal bounce.
package surface

import (
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/geom"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/reflectcache"
)

// Classification is a surface's optical behavior.
type Classification int

const (
	Reflective Classification = iota
	Absorbing
)

// Side names which half-plane of a segment (oriented Start->End) is
// the reflective side.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

// Surface is an immutable, identity-bearing line segment. Surfaces are
// borrowed by every query and never mutated (spec.md §3, Ownership).
type Surface struct {
	id             reflectcache.SurfaceID
	Segment        geom.Segment
	Orientation    Side
	Classification Classification
}

// New creates a Surface. id must be stable and unique within a scene —
// it is the cache key and the tie-break key in hit detection.
func New(id string, segment geom.Segment, orientation Side, class Classification) *Surface {
	return &Surface{id: reflectcache.SurfaceID(id), Segment: segment, Orientation: orientation, Classification: class}
}

// ID returns the surface's stable identity.
func (s *Surface) ID() reflectcache.SurfaceID {
	return s.id
}

// Normal returns the unit normal pointing into the reflective
// half-plane, per Orientation.
func (s *Surface) Normal() geom.Vec2 {
	d := s.Segment.Direction().Normalize()
	left := geom.New(-d.Y, d.X)
	if s.Orientation == SideLeft {
		return left
	}
	return left.Scale(-1)
}

// CanReflectFrom reports whether a ray travelling in direction would
// strike this surface's reflective face (spec.md §2 item 3,
// §4.1/§4.4). Absorbing surfaces never reflect. Grounded on the
// front-face test in the teacher's HitRecord.SetFaceNormal
// (ray.Direction.Dot(outwardNormal) < 0 means approaching the face the
// normal points away from).
func (s *Surface) CanReflectFrom(direction geom.Vec2) bool {
	if s.Classification == Absorbing {
		return false
	}
	return direction.Dot(s.Normal()) < 0
}

// ReflectPoint reflects p through this surface's supporting line.
// Satisfies reflectcache.Reflector.
func (s *Surface) ReflectPoint(p geom.Vec2) geom.Vec2 {
	return geom.Reflect(p, s.Segment)
}

// Side returns which side of the supporting line p lies on (sign
// matches SegmentSide: positive = left of Start->End).
func (s *Surface) Side(p geom.Vec2) float64 {
	return geom.SegmentSide(s.Segment, p)
}

// OnReflectiveSide reports whether p lies on this surface's
// reflective half-plane (or exactly on the line).
func (s *Surface) OnReflectiveSide(p geom.Vec2) bool {
	side := s.Side(p)
	if s.Orientation == SideLeft {
		return side >= 0
	}
	return side <= 0
}
