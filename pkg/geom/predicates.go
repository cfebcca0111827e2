package geom

import "math"

// AngularTolerance is the normalised-cross-product threshold (≈0.06°)
// used everywhere two directions must be treated as collinear "from
// the origin" — e.g. when deciding whether a visibility-cone boundary
// ray is parallel to a reference direction. Named per spec.md §9 so
// every predicate that needs it uses the same constant.
const AngularTolerance = 1e-3

// Side returns the signed side of point p relative to the line through
// a in direction dir: positive if p is to the left of dir, negative if
// to the right, zero if p is exactly on the line.
func Side(a, dir, p Vec2) float64 {
	return dir.Cross(p.Sub(a))
}

// SegmentSide returns the signed side of p relative to segment s's
// supporting line, oriented from Start to End.
func SegmentSide(s Segment, p Vec2) float64 {
	return Side(s.Start, s.Direction(), p)
}

// IsCollinearFromOrigin reports whether two directions, both taken
// relative to a common origin, are collinear within AngularTolerance.
// Axis-aligned inputs (where either vector is identically zero in one
// axis after forming the cross product) are compared exactly; all
// other inputs use the normalised cross-product tolerance from
// spec.md §4.1.
func IsCollinearFromOrigin(a, b Vec2) bool {
	cross := a.Cross(b)
	if cross == 0 {
		return true
	}
	denom := a.Length() * b.Length()
	if denom == 0 {
		return true
	}
	return math.Abs(cross)/denom < AngularTolerance
}

// LineIntersectResult is the outcome of intersecting the supporting
// lines of two rays/segments expressed parametrically.
type LineIntersectResult struct {
	Point Vec2
	T, U  float64 // parametric position along line 1 and line 2
	Valid bool    // false if the lines are parallel (or coincident)
}

// LineIntersect intersects the infinite line through (p1,d1) with the
// infinite line through (p2,d2), returning the parametric position on
// each. This is the standard line∩line solver referenced throughout
// spec.md §4 (image-chain reflection points, hit detection, cone
// boundary intersection with range-limit arcs).
func LineIntersect(p1, d1, p2, d2 Vec2) LineIntersectResult {
	denom := d1.Cross(d2)
	if denom == 0 {
		return LineIntersectResult{Valid: false}
	}
	diff := p2.Sub(p1)
	t := diff.Cross(d2) / denom
	u := diff.Cross(d1) / denom
	return LineIntersectResult{
		Point: p1.Add(d1.Scale(t)),
		T:     t,
		U:     u,
		Valid: true,
	}
}

// SegmentIntersect intersects ray (source,dir) with segment s,
// returning t along the ray and u along the segment (u in [0,1] means
// the hit lies on the segment itself, as opposed to its extended
// line).
func SegmentIntersect(source, dir Vec2, s Segment) LineIntersectResult {
	return LineIntersect(source, dir, s.Start, s.Direction())
}

// Reflect computes the exact affine reflection of point p through
// segment s's supporting line.
func Reflect(p Vec2, s Segment) Vec2 {
	d := s.Direction()
	lenSq := d.LengthSq()
	if lenSq == 0 {
		return p
	}
	rel := p.Sub(s.Start)
	// Projection of rel onto d, then reflect rel across that projection.
	t := rel.Dot(d) / lenSq
	proj := d.Scale(t)
	return s.Start.Add(proj.Scale(2).Sub(rel))
}
