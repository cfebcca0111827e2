// Package invariant collects pure geometric predicates the test
// harness checks against, rather than anything the engine calls at
// query time. Every function here takes already-computed results and
// answers a yes/no question; none of them mutate or recompute a trace.
// The shape follows the teacher's property-style tests
// (pkg/core/vec3_test.go's statistical checks over many samples,
// pkg/core/bvh_test.go's structural checks on a built tree) lifted out
// of _test.go files into first-class predicates so both the test suite
// and, if a caller ever wants it, a runtime sanity check can share one
// implementation (spec.md §8).
package invariant

import (
	"math"
	"strings"

	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/geom"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/hit"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/imagechain"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/merged"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/reflectcache"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/surface"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/tracepath"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/visibility"
)

// ReflectionIdentity checks reflect(reflect(p,s),s) == p through cache,
// relying on the cache's dual-keyed memoisation (pkg/reflectcache) to
// return the exact stored value rather than a numerically close
// recomputation (spec.md §8, Reflection identity).
func ReflectionIdentity(cache *reflectcache.Cache, p geom.Vec2, s *surface.Surface) bool {
	once := cache.Reflect(p, s)
	twice := cache.Reflect(once, s)
	return twice.Equal(p)
}

// ImageChainDuality checks that every reflection point Build derived
// for chain is self-consistent: it actually lies on the line crossed
// by its defining ray (player_image[i] -> cursor_image[n-i]), and a
// surface reflects its own crossing point to itself (spec.md §8,
// Image-chain duality).
func ImageChainDuality(chain imagechain.Chain) bool {
	n := len(chain.Surfaces)
	for i := 0; i < n; i++ {
		a := chain.PlayerImages[i]
		b := chain.CursorImages[n-i]
		seg := chain.Surfaces[i].Segment
		rp := chain.ReflectionPoints[i]

		res := geom.LineIntersect(a, b.Sub(a), seg.Start, seg.Direction())
		if !res.Valid {
			if !rp.Degenerate || !rp.Point.Equal(seg.Midpoint()) {
				return false
			}
			continue
		}
		if rp.Degenerate {
			return false
		}
		if res.Point.Distance(rp.Point) > 1e-9 {
			return false
		}
		if geom.Reflect(rp.Point, seg).Distance(rp.Point) > 1e-9 {
			return false
		}
	}
	return true
}

// trimAtCursor returns the prefix of segs ending at the first segment
// whose End lands within eps of cursor (inclusive), or segs unchanged
// if the cursor never appears.
func trimAtCursor(segs []tracepath.Segment, cursor geom.Vec2, eps float64) []tracepath.Segment {
	for i, s := range segs {
		if s.End.Distance(cursor) <= eps {
			return segs[:i+1]
		}
	}
	return segs
}

func segmentsApproxEqual(a, b []tracepath.Segment, eps float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Start.Distance(b[i].Start) > eps || a[i].End.Distance(b[i].End) > eps {
			return false
		}
		var aID, bID reflectcache.SurfaceID
		if a[i].Surface != nil {
			aID = a[i].Surface.ID()
		}
		if b[i].Surface != nil {
			bID = b[i].Surface.ID()
		}
		if aID != bID {
			return false
		}
	}
	return true
}

// MergedEqualsIndependent checks that merged's segments spliced with
// its continuation match an independently-traced run of the same
// strategy, up through the cursor (spec.md §8, Merged equals
// independent). Callers pass the independent trace's segments — a
// pure PhysicalStrategy trace from (player, preReflectedCursor) to
// check the physical side, or a pure PlannedStrategy trace to check
// the planned side.
func MergedEqualsIndependent(result merged.Result, pureSegments []tracepath.Segment, cursor geom.Vec2) bool {
	combined := append(append([]tracepath.Segment{}, result.Segments...), result.ContinuationSegments...)
	const eps = 1e-6
	return segmentsApproxEqual(trimAtCursor(combined, cursor, eps), trimAtCursor(pureSegments, cursor, eps), eps)
}

// CursorReachable implements is_cursor_reachable's defining equation:
// true iff there was no divergence and no planned surface was
// bypassed (spec.md §8, Cursor reachability; §6's is_cursor_reachable).
func CursorReachable(diverged bool, bypassed []bool) bool {
	if diverged {
		return false
	}
	for _, b := range bypassed {
		if b {
			return false
		}
	}
	return true
}

func isSurfaceKind(k visibility.PointKind) bool {
	return k == visibility.EndpointPoint || k == visibility.HitPointKind || k == visibility.JunctionPoint
}

func isArcKind(k visibility.PointKind) bool {
	return k == visibility.ArcHitPointKind || k == visibility.ArcJunctionPoint
}

// PolygonVerticesOnSources checks that every vertex carries one of the
// closed set of provenances the procedure can produce (spec.md §8,
// Polygon vertices on sources).
func PolygonVerticesOnSources(points []visibility.SourcePoint) bool {
	for _, p := range points {
		switch p.Kind {
		case visibility.OriginPoint, visibility.EndpointPoint, visibility.HitPointKind,
			visibility.JunctionPoint, visibility.ArcHitPointKind, visibility.ArcJunctionPoint:
		default:
			return false
		}
	}
	return true
}

// edgeFollowsSource reports whether the edge a->b lies along a surface
// segment, a screen-boundary edge, a ray from origin, or an arc of the
// range circle.
func edgeFollowsSource(a, b visibility.SourcePoint, origin geom.Vec2, rl *hit.RangeLimit) bool {
	if isSurfaceKind(a.Kind) && isSurfaceKind(b.Kind) && a.SurfaceID != "" && a.SurfaceID == b.SurfaceID {
		return true
	}
	if a.SurfaceID != "" && a.SurfaceID == b.SurfaceID && strings.HasPrefix(string(a.SurfaceID), "bounds:") {
		return true
	}
	if a.Kind == visibility.OriginPoint || b.Kind == visibility.OriginPoint {
		return true
	}
	if a.Continuation != nil && b.Continuation != nil && a.Continuation == b.Continuation {
		return true
	}
	if geom.IsCollinearFromOrigin(a.Point.Sub(origin), b.Point.Sub(origin)) {
		return true
	}
	if rl != nil && isArcKind(a.Kind) && isArcKind(b.Kind) {
		ra, rb := a.Point.Distance(rl.Center), b.Point.Distance(rl.Center)
		if math.Abs(ra-rl.Radius) < 1e-6 && math.Abs(rb-rl.Radius) < 1e-6 {
			return true
		}
	}
	return false
}

// PolygonEdgesFollowSources checks every consecutive pair of vertices
// in an (open, non-wrapping) projection list against edgeFollowsSource
// (spec.md §8, Polygon edges follow sources).
func PolygonEdgesFollowSources(points []visibility.SourcePoint, origin geom.Vec2, rl *hit.RangeLimit) bool {
	for i := 0; i+1 < len(points); i++ {
		if !edgeFollowsSource(points[i], points[i+1], origin, rl) {
			return false
		}
	}
	return true
}

func orientation(a, b, c geom.Vec2) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

// segmentsProperlyIntersect reports whether (a1,a2) and (b1,b2) cross
// at an interior point of both, not merely touch at a shared endpoint.
func segmentsProperlyIntersect(a1, a2, b1, b2 geom.Vec2) bool {
	d1 := orientation(b1, b2, a1)
	d2 := orientation(b1, b2, a2)
	d3 := orientation(a1, a2, b1)
	d4 := orientation(a1, a2, b2)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) && ((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

// NoSelfIntersection checks that no two non-adjacent edges of the
// closed polygon formed by points properly cross (spec.md §8, No
// self-intersection).
func NoSelfIntersection(points []visibility.SourcePoint) bool {
	n := len(points)
	if n < 4 {
		return true
	}
	for i := 0; i < n; i++ {
		a1, a2 := points[i].Point, points[(i+1)%n].Point
		for j := i + 1; j < n; j++ {
			if j == i || (i+1)%n == j || (j+1)%n == i {
				continue
			}
			b1, b2 := points[j].Point, points[(j+1)%n].Point
			if segmentsProperlyIntersect(a1, a2, b1, b2) {
				return false
			}
		}
	}
	return true
}

// AdjacencyProvenance checks that every adjacent vertex pair either
// shares a surface, shares a ContinuationRay, or has the Origin on one
// side (spec.md §8, Adjacency provenance).
func AdjacencyProvenance(points []visibility.SourcePoint) bool {
	for i := 0; i+1 < len(points); i++ {
		a, b := points[i], points[i+1]
		if a.Kind == visibility.OriginPoint || b.Kind == visibility.OriginPoint {
			continue
		}
		if isSurfaceKind(a.Kind) && isSurfaceKind(b.Kind) && a.SurfaceID != "" && a.SurfaceID == b.SurfaceID {
			continue
		}
		if a.Continuation != nil && b.Continuation != nil && a.Continuation == b.Continuation {
			continue
		}
		return false
	}
	return true
}

// DedupIsTotal checks that no two consecutive vertices still share
// both a surface id and a continuation-ray id after dedup (spec.md §8,
// Dedup is total).
func DedupIsTotal(points []visibility.SourcePoint) bool {
	for i := 0; i+1 < len(points); i++ {
		a, b := points[i], points[i+1]
		sameSurface := a.SurfaceID != "" && a.SurfaceID == b.SurfaceID
		sameContinuation := a.Continuation != nil && a.Continuation == b.Continuation
		if sameSurface && sameContinuation {
			return false
		}
	}
	return true
}
