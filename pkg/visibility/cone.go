// Package visibility implements cone projection: casting rays from an
// origin toward every chain endpoint, junction, cone boundary, and (for
// range-limited queries) arc junction, to build the angularly sorted,
// provenance-preserving polygon a player's field of view actually
// sees. Grounded on the teacher's pkg/geometry/cone.go (angular
// frustum construction from an apex and a pair of boundary directions)
// and pkg/core/sampling.go's cross-product-based angular comparisons
// (never atan2, for the same numerical-stability reasons the teacher
// avoids it in its solid-angle sampling code).
package visibility

import (
	"sort"

	"github.com/google/uuid"

	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/geom"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/hit"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/reflectcache"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/surface"
)

// fullConeAxis is the scene-stable reference direction for unbounded
// (full) cones. spec.md §9 leaves the source's full-cone reference
// direction ambiguous; this module fixes it to the canonical +X axis
// so angular sort and ArcJunction placement are deterministic
// regardless of scene content (documented as an explicit invariant
// per spec.md §9's design note).
var fullConeAxis = geom.New(1, 0)

// Cone is either a full (unbounded) cone from Origin, or a windowed
// cone whose angular bounds are the two rays toward Window's
// endpoints and whose segment is the start line for every downstream
// hit (spec.md §4.9).
type Cone struct {
	Origin geom.Vec2
	Window *surface.Surface // nil for a full cone
}

// NewFullCone builds an unbounded cone from origin.
func NewFullCone(origin geom.Vec2) Cone {
	return Cone{Origin: origin}
}

// NewWindowedCone builds a cone bounded by window's two endpoints.
func NewWindowedCone(origin geom.Vec2, window *surface.Surface) Cone {
	return Cone{Origin: origin, Window: window}
}

// ReferenceDirection is the ref used for junction-blocking and angular
// sort: origin - window-midpoint for windowed cones, or the canonical
// axis for full cones (spec.md §4.9 item 3).
func (c Cone) ReferenceDirection() geom.Vec2 {
	if c.Window != nil {
		return c.Origin.Sub(c.Window.Segment.Midpoint())
	}
	return fullConeAxis
}

// Scene is the subset of scene state a cone projection needs.
type Scene struct {
	Chains      []*surface.Chain
	AllSurfaces []*surface.Surface
	RangeLimit  *hit.RangeLimit
	Bounds      *Bounds
}

// Bounds is the screen rectangle collaborators supply alongside a
// visibility query (spec.md §6's {minX,minY,maxX,maxY}). It closes the
// polygon for full cones with no blocking surfaces and clips any
// continuation ray that would otherwise run to infinity.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// surfaces renders the rectangle as four absorbing edges, so bounds
// clipping reuses the same find_next_hit traversal as every other
// obstruction instead of a separate rectangle-clip code path.
func (b Bounds) surfaces() []*surface.Surface {
	tl, tr := geom.New(b.MinX, b.MinY), geom.New(b.MaxX, b.MinY)
	br, bl := geom.New(b.MaxX, b.MaxY), geom.New(b.MinX, b.MaxY)
	return []*surface.Surface{
		surface.New("bounds:top", geom.NewSegment(tl, tr), surface.SideRight, surface.Absorbing),
		surface.New("bounds:right", geom.NewSegment(tr, br), surface.SideRight, surface.Absorbing),
		surface.New("bounds:bottom", geom.NewSegment(br, bl), surface.SideRight, surface.Absorbing),
		surface.New("bounds:left", geom.NewSegment(bl, tl), surface.SideRight, surface.Absorbing),
	}
}

// corners returns the rectangle's four vertices, screen-boundary
// targets a full cone always has something to reach even when the
// scene has no surfaces of its own.
func (b Bounds) corners() []geom.Vec2 {
	return []geom.Vec2{
		geom.New(b.MinX, b.MinY), geom.New(b.MaxX, b.MinY),
		geom.New(b.MaxX, b.MaxY), geom.New(b.MinX, b.MaxY),
	}
}

// PointKind tags which of spec.md §4.9's SourcePoint variants a point
// is.
type PointKind int

const (
	OriginPoint PointKind = iota
	EndpointPoint
	HitPointKind
	JunctionPoint
	ArcHitPointKind
	ArcJunctionPoint
)

// ContinuationRay groups every SourcePoint cast along one angular
// direction from the cone's origin (spec.md glossary), so dedup can
// collapse a run to its source and its farther hit. ID is a uuid
// rather than a per-call counter so a continuation ray stays
// identifiable if a collaborator logs or replays it outside the
// Project call that produced it.
type ContinuationRay struct {
	ID uuid.UUID
}

// SourcePoint is one vertex of a projected visibility polygon.
type SourcePoint struct {
	Kind         PointKind
	Point        geom.Vec2
	SurfaceID    reflectcache.SurfaceID // set for EndpointPoint/HitPointKind; empty for JunctionPoint and the arc kinds
	Continuation *ContinuationRay       // non-nil when part of a continuation ray
}

func isSurfaceProvenance(k PointKind) bool {
	return k == EndpointPoint || k == HitPointKind || k == JunctionPoint
}

// targetKind distinguishes the four ray-target families of spec.md
// §4.9 item 1.
type targetKind int

const (
	targetEndpoint targetKind = iota
	targetJunction
	targetBoundary
	targetArcJunction
)

type target struct {
	kind      targetKind
	point     geom.Vec2
	surfaceID reflectcache.SurfaceID
	junction  *surface.Junction
}

// Project runs the cone projection procedure of spec.md §4.9 and
// returns the angularly sorted, deduplicated list of SourcePoints
// (not including the cone's own Origin — callers that want a closed
// polygon prepend it themselves via Polygon).
func Project(cone Cone, scene Scene) []SourcePoint {
	targets := collectTargets(cone, scene)

	castSurfaces := scene.AllSurfaces
	if scene.Bounds != nil {
		castSurfaces = append(append([]*surface.Surface{}, scene.AllSurfaces...), scene.Bounds.surfaces()...)
	}

	excludeWindow := map[reflectcache.SurfaceID]bool{}
	var startLine *geom.Segment
	if cone.Window != nil {
		excludeWindow[cone.Window.ID()] = true
		seg := cone.Window.Segment
		startLine = &seg
	}

	ref := cone.ReferenceDirection()
	var points []SourcePoint

	for _, tgt := range targets {
		ray := geom.NewRay(cone.Origin, tgt.point)
		if ray.IsDegenerate() {
			continue
		}

		opts := hit.Options{Mode: hit.Physical, RangeLimit: scene.RangeLimit, ExcludeSurfaces: excludeWindow, StartLine: startLine}
		res, found := hit.FindNextHit(ray, castSurfaces, opts)

		const targetT = 1.0
		reached := !found || res.T >= targetT-1e-9
		if !reached {
			points = append(points, obstructionPoint(*res))
			continue
		}

		sp := targetReachedPoint(tgt)
		points = append(points, sp)

		if !isNonBlocking(tgt, ref) {
			continue
		}

		cr := &ContinuationRay{ID: uuid.New()}
		points[len(points)-1].Continuation = cr

		contOpts := opts
		contOpts.HasMinT = true
		contOpts.MinT = targetT + 1e-9
		if cres, cfound := hit.FindNextHit(ray, castSurfaces, contOpts); cfound {
			p := obstructionPoint(*cres)
			p.Continuation = cr
			points = append(points, p)
		}
	}

	sortAngular(points, cone.Origin, ref)
	return dedup(points)
}

// Polygon is Project with the cone's own Origin prepended, forming a
// closed visibility polygon fan.
func Polygon(cone Cone, scene Scene) []SourcePoint {
	pts := Project(cone, scene)
	out := make([]SourcePoint, 0, len(pts)+1)
	out = append(out, SourcePoint{Kind: OriginPoint, Point: cone.Origin})
	return append(out, pts...)
}

func obstructionPoint(res hit.Result) SourcePoint {
	if res.IsArcHit {
		return SourcePoint{Kind: ArcHitPointKind, Point: res.Point}
	}
	return SourcePoint{Kind: HitPointKind, Point: res.Point, SurfaceID: res.Surface.ID()}
}

func targetReachedPoint(tgt target) SourcePoint {
	switch tgt.kind {
	case targetEndpoint:
		return SourcePoint{Kind: EndpointPoint, Point: tgt.point, SurfaceID: tgt.surfaceID}
	case targetJunction:
		return SourcePoint{Kind: JunctionPoint, Point: tgt.point}
	case targetArcJunction:
		return SourcePoint{Kind: ArcJunctionPoint, Point: tgt.point}
	default: // targetBoundary
		return SourcePoint{Kind: EndpointPoint, Point: tgt.point, SurfaceID: tgt.surfaceID}
	}
}

// isNonBlocking reports whether reaching this target should spawn a
// continuation ray (spec.md §4.9 item 2): every target is non-blocking
// except a junction for which surface.Junction.Blocking(ref) is true.
func isNonBlocking(tgt target, ref geom.Vec2) bool {
	if tgt.kind != targetJunction || tgt.junction == nil {
		return true
	}
	return !tgt.junction.Blocking(ref)
}

func collectTargets(cone Cone, scene Scene) []target {
	var targets []target
	for _, chain := range scene.Chains {
		for _, e := range chain.Endpoints() {
			targets = append(targets, target{kind: targetEndpoint, point: e.Point, surfaceID: e.Surface.ID()})
		}
		junctions := chain.Junctions()
		for i := range junctions {
			j := junctions[i]
			targets = append(targets, target{kind: targetJunction, point: j.Point, junction: &j})
		}
	}

	if cone.Window != nil {
		targets = append(targets,
			target{kind: targetBoundary, point: cone.Window.Segment.Start, surfaceID: cone.Window.ID()},
			target{kind: targetBoundary, point: cone.Window.Segment.End, surfaceID: cone.Window.ID()},
		)
	}

	if scene.RangeLimit != nil {
		for _, p := range arcJunctions(cone, *scene.RangeLimit) {
			targets = append(targets, target{kind: targetArcJunction, point: p})
		}
	} else if scene.Bounds != nil {
		for i, c := range scene.Bounds.corners() {
			targets = append(targets, target{kind: targetBoundary, point: c, surfaceID: boundsCornerID(i)})
		}
	}

	return targets
}

func boundsCornerID(i int) reflectcache.SurfaceID {
	names := []string{"bounds:corner-tl", "bounds:corner-tr", "bounds:corner-br", "bounds:corner-bl"}
	return reflectcache.SurfaceID(names[i])
}

// arcJunctions returns the two points where the range-limit circle
// meets the cone's boundaries (spec.md §4.10): the window's two
// endpoint directions for a windowed cone, or two diametrically
// opposite points along the canonical axis for a full cone.
func arcJunctions(cone Cone, rl hit.RangeLimit) []geom.Vec2 {
	if cone.Window != nil {
		return []geom.Vec2{
			circleAlong(cone.Origin, cone.Window.Segment.Start, rl),
			circleAlong(cone.Origin, cone.Window.Segment.End, rl),
		}
	}
	return []geom.Vec2{
		rl.Center.Add(fullConeAxis.Scale(rl.Radius)),
		rl.Center.Add(fullConeAxis.Scale(-rl.Radius)),
	}
}

func circleAlong(origin, through geom.Vec2, rl hit.RangeLimit) geom.Vec2 {
	ray := geom.NewRay(origin, through)
	if t, ok := hit.CircleIntersect(ray, rl); ok {
		return ray.At(t)
	}
	return through
}

// sortAngular orders points by signed angular position from origin
// relative to ref, using only cross-product comparisons (spec.md
// §4.9 item 4): points on opposite sides of ref are ordered by which
// side is positive; points on the same side are ordered by their
// mutual cross product.
func sortAngular(points []SourcePoint, origin, ref geom.Vec2) {
	sort.SliceStable(points, func(i, j int) bool {
		return angularLess(origin, ref, points[i].Point, points[j].Point)
	})
}

func angularLess(origin, ref, a, b geom.Vec2) bool {
	pa := a.Sub(origin)
	pb := b.Sub(origin)
	crossA := pa.Cross(ref)
	crossB := pb.Cross(ref)
	sideA := crossA >= 0
	sideB := crossB >= 0
	if sideA != sideB {
		return sideA
	}
	return pa.Cross(pb) > 0
}

// dedup collapses maximal runs of consecutive points that share
// either a surface id (for Endpoint/HitPoint/Junction kinds) or a
// ContinuationRay, keeping only each run's first and last point
// (spec.md §4.9 item 5).
func dedup(points []SourcePoint) []SourcePoint {
	if len(points) == 0 {
		return points
	}
	var result []SourcePoint
	i := 0
	for i < len(points) {
		j := i
		for j+1 < len(points) && sameRun(points[j], points[j+1]) {
			j++
		}
		if j > i {
			result = append(result, points[i], points[j])
		} else {
			result = append(result, points[i])
		}
		i = j + 1
	}
	return result
}

func sameRun(a, b SourcePoint) bool {
	if a.Continuation != nil && b.Continuation != nil && a.Continuation == b.Continuation {
		return true
	}
	if isSurfaceProvenance(a.Kind) && isSurfaceProvenance(b.Kind) && a.SurfaceID != "" && a.SurfaceID == b.SurfaceID {
		return true
	}
	return false
}
