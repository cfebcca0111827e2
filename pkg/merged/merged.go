// Package merged implements MergedPathCalculator: it walks the
// physical and planned strategies side by side from the same
// propagator and reports where they agree, where the player's aim
// reaches the cursor, and where they diverge. It is the 2D analogue of
// the teacher's bidirectional path tracer in
// pkg/integrator/bdpt.go, which also advances two independent walks
// (a camera subpath and a light subpath) from a shared starting point
// and combines them step by step rather than tracing either one blind.
package merged

import (
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/geom"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/hit"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/propagator"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/reflectcache"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/surface"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/tracepath"
)

// safetyIterationCap mirrors tracepath's: degenerate geometry must
// not spin the dual walk forever.
const safetyIterationCap = 10000

// Result is the outcome of one MergedPathCalculator run.
type Result struct {
	// Segments is the merged prefix: the run of steps where both
	// strategies agreed (or the final segment to the cursor).
	Segments []tracepath.Segment

	ReachedCursor bool
	FullyAligned  bool

	// ContinuationSegments holds the physical-strategy trace spliced
	// on past the cursor when ReachedCursor is true (the "aligned
	// plan" yellow/red-dashed continuation of spec.md §4.6).
	ContinuationSegments []tracepath.Segment

	// Diverged is true when the two strategies parted ways before
	// either reached the cursor. DivergencePropagator is the state
	// *before* either side reflected through its respective
	// divergence surface; DivergencePhysicalSurface and
	// DivergencePlannedSurface are nil when that side had no hit.
	Diverged                     bool
	DivergencePropagator         propagator.Propagator
	DivergencePoint              geom.Vec2
	DivergencePhysicalSurface    *surface.Surface
	DivergencePhysicalCanReflect bool
	DivergencePlannedSurface     *surface.Surface

	FinalPropagator propagator.Propagator
}

// InitialTarget pre-reflects the cursor backward through the ordered
// planned surfaces (spec.md §4.6, §4.8's cursor_image construction)
// to obtain the virtual aim point that, traced straight from the
// player, bends through every planned surface in order and arrives at
// the real cursor.
func InitialTarget(cursor geom.Vec2, planned []*surface.Surface) geom.Vec2 {
	target := cursor
	for i := len(planned) - 1; i >= 0; i-- {
		target = planned[i].ReflectPoint(target)
	}
	return target
}

// sameHit reports whether two find_next_hit outcomes name the same
// surface, treating "no hit" as equal to itself and matching
// range-limit arc hits only to other arc hits (spec.md §4.6).
func sameHit(a *hit.Result, aOK bool, b *hit.Result, bOK bool) bool {
	if !aOK && !bOK {
		return true
	}
	if aOK != bOK {
		return false
	}
	if a.IsArcHit != b.IsArcHit {
		return false
	}
	if a.IsArcHit {
		return true
	}
	return a.Surface.ID() == b.Surface.ID()
}

// Trace runs MergedPathCalculator: a propagator seeded at
// (player, InitialTarget(cursor, planned)) is advanced one step at a
// time, querying both the physical and planned strategies, until the
// two agree all the way to the cursor, the cursor is reached early by
// both, or they diverge.
func Trace(player, cursor geom.Vec2, physical hit.PhysicalStrategy, planned hit.PlannedStrategy, cache *reflectcache.Cache, maxReflections int) Result {
	prop := propagator.New(player, InitialTarget(cursor, planned.Planned), cache)
	result := Result{}

	for iter := 0; iter < safetyIterationCap; iter++ {
		ray := prop.GetRay()
		segStart := tracepath.CurrentPosition(prop, ray)

		physOpts, plannedOpts := hit.Options{}, hit.Options{}
		if prop.StartLine != nil {
			physOpts.StartLine = prop.StartLine
			plannedOpts.StartLine = prop.StartLine
		}

		physRes, physOK := physical.FindNextHit(ray, physOpts)
		plannedRes, plannedOK := planned.FindNextHit(ray, plannedOpts)

		_, physCursor := tracepath.CursorOnSegment(ray, segStart, physRes, physOK, cursor)
		_, plannedCursor := tracepath.CursorOnSegment(ray, segStart, plannedRes, plannedOK, cursor)
		if physCursor && plannedCursor {
			result.Segments = append(result.Segments, tracepath.Segment{Start: segStart, End: cursor})
			result.ReachedCursor = true
			result.FullyAligned = true
			result.FinalPropagator = prop

			pos := cursor
			continuation := tracepath.Trace(prop, physical, tracepath.Options{ContinueFromPosition: &pos, MaxReflections: maxReflections})
			result.ContinuationSegments = continuation.Segments
			return result
		}

		if sameHit(physRes, physOK, plannedRes, plannedOK) {
			if !physOK {
				far := ray.At(tracepath.FarSentinelT)
				result.Segments = append(result.Segments, tracepath.Segment{Start: segStart, End: far})
				result.FinalPropagator = prop
				return result
			}

			seg := tracepath.Segment{
				Start:      segStart,
				End:        physRes.Point,
				Surface:    physRes.Surface,
				OnSegment:  physRes.OnSegment,
				CanReflect: physRes.CanReflect,
				IsArcHit:   physRes.IsArcHit,
			}
			result.Segments = append(result.Segments, seg)

			if physRes.IsArcHit || !physRes.CanReflect {
				result.FinalPropagator = prop
				return result
			}
			if maxReflections > 0 && prop.Depth+1 >= maxReflections {
				result.FinalPropagator = prop.ReflectThrough(physRes.Surface)
				return result
			}
			prop = prop.ReflectThrough(physRes.Surface)
			continue
		}

		// Divergence: the merged prefix runs up to the earlier of the
		// two pending hits.
		var divPoint geom.Vec2
		switch {
		case physOK && plannedOK && physRes.T <= plannedRes.T:
			divPoint = physRes.Point
		case physOK && plannedOK:
			divPoint = plannedRes.Point
		case physOK:
			divPoint = physRes.Point
		default:
			divPoint = plannedRes.Point
		}

		result.Segments = append(result.Segments, tracepath.Segment{Start: segStart, End: divPoint})
		result.Diverged = true
		result.DivergencePropagator = prop
		result.DivergencePoint = divPoint
		if physOK {
			result.DivergencePhysicalSurface = physRes.Surface
			result.DivergencePhysicalCanReflect = physRes.CanReflect
		}
		if plannedOK {
			result.DivergencePlannedSurface = plannedRes.Surface
		}
		result.FinalPropagator = prop
		return result
	}

	result.FinalPropagator = prop
	return result
}
