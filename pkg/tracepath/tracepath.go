// Package tracepath implements TracePath: the single loop that
// consumes a propagator and a hit.Strategy and emits ordered trace
// segments, shared by every trace in the engine (physical, planned,
// and the continuations spliced onto a merged result). It is the 2D,
// reflection-chain analogue of the teacher's bounce loop in
// pkg/integrator/path_tracing.go's rayColorRecursive: there, depth
// counts down and a material either absorbs or scatters the ray; here
// depth counts reflections and a surface either blocks ("wall") or
// reflects, with the cursor itself able to terminate the walk early.
package tracepath

import (
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/geom"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/hit"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/propagator"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/surface"
)

// TerminationKind names why a trace stopped.
type TerminationKind int

const (
	Cursor TerminationKind = iota
	Wall
	OffSegment
	NoHit
	MaxReflections
)

// Segment is one ordered piece of a traced path.
type Segment struct {
	Start, End geom.Vec2
	Surface    *surface.Surface // nil for the final no-hit / arc / cursor segment
	OnSegment  bool
	CanReflect bool
	IsArcHit   bool
}

// Result is the full output of one TracePath call.
type Result struct {
	Segments           []Segment
	FinalPropagator    propagator.Propagator
	CursorSegmentIndex int // -1 if the cursor was not reached
	CursorT            float64
	Termination        TerminationKind
}

// Options configures a single TracePath call.
type Options struct {
	StopAtCursor         bool
	Cursor               geom.Vec2
	ContinueFromPosition *geom.Vec2
	MaxReflections       int
}

// FarSentinelT extends a no-hit ray far enough to be useful to a
// renderer without pretending to know the scene's true extent.
const FarSentinelT = 1e6

// safetyIterationCap bounds iterations so that degenerate geometry
// cannot spin forever; reaching it is an internal fault, never
// surfaced as a distinct Termination (spec.md §4.5, §7).
const safetyIterationCap = 10000

// Trace runs the shared TracePath loop.
func Trace(prop propagator.Propagator, strategy hit.Strategy, opts Options) Result {
	result := Result{CursorSegmentIndex: -1}

	first := true
	for iter := 0; iter < safetyIterationCap; iter++ {
		ray := prop.GetRay()

		var segStart geom.Vec2
		if first && opts.ContinueFromPosition != nil {
			segStart = *opts.ContinueFromPosition
		} else {
			segStart = CurrentPosition(prop, ray)
		}

		hitOpts := hit.Options{}
		if prop.StartLine != nil {
			hitOpts.StartLine = prop.StartLine
		}
		if first && opts.ContinueFromPosition != nil {
			hitOpts.HasMinT = true
			hitOpts.MinT = paramT(ray, *opts.ContinueFromPosition)
		}

		res, found := strategy.FindNextHit(ray, hitOpts)

		if opts.StopAtCursor {
			if t, ok := CursorOnSegment(ray, segStart, res, found, opts.Cursor); ok {
				result.Segments = append(result.Segments, Segment{Start: segStart, End: opts.Cursor})
				result.CursorSegmentIndex = len(result.Segments) - 1
				result.CursorT = t
				result.FinalPropagator = prop
				result.Termination = Cursor
				return result
			}
		}

		if !found {
			far := ray.At(FarSentinelT)
			result.Segments = append(result.Segments, Segment{Start: segStart, End: far})
			result.FinalPropagator = prop
			result.Termination = NoHit
			return result
		}

		seg := Segment{
			Start:      segStart,
			End:        res.Point,
			Surface:    res.Surface,
			OnSegment:  res.OnSegment,
			CanReflect: res.CanReflect,
			IsArcHit:   res.IsArcHit,
		}
		result.Segments = append(result.Segments, seg)

		if res.IsArcHit || !res.CanReflect {
			result.FinalPropagator = prop
			result.Termination = Wall
			return result
		}
		if strategy.Mode() == hit.Physical && !res.OnSegment {
			result.FinalPropagator = prop
			result.Termination = OffSegment
			return result
		}

		if opts.MaxReflections > 0 && prop.Depth+1 >= opts.MaxReflections {
			result.FinalPropagator = prop.ReflectThrough(res.Surface)
			result.Termination = MaxReflections
			return result
		}

		prop = prop.ReflectThrough(res.Surface)
		first = false
	}

	// Safety cap reached: an internal fault, not user-visible. Return
	// whatever was emitted so far as a no-hit trace.
	result.FinalPropagator = prop
	result.Termination = NoHit
	return result
}

// CurrentPosition recovers the true real-space position of the
// propagator's current ray: ray.Source directly at depth 0, or the
// intersection of the ray with start_line after any reflection, since
// origin_image stops being a real point the moment it has been
// reflected even once (spec.md §4.5 step 1).
func CurrentPosition(prop propagator.Propagator, ray geom.Ray) geom.Vec2 {
	if prop.StartLine != nil {
		sl := *prop.StartLine
		return geom.LineIntersect(ray.Source, ray.Direction(), sl.Start, sl.Direction()).Point
	}
	return ray.Source
}

// paramT returns the parametric position of p along ray (p is assumed
// collinear with the ray).
func paramT(ray geom.Ray, p geom.Vec2) float64 {
	dir := ray.Direction()
	lenSq := dir.LengthSq()
	if lenSq == 0 {
		return 0
	}
	return p.Sub(ray.Source).Dot(dir) / lenSq
}

// CursorOnSegment reports whether the cursor lies on [segStart, hitEnd]
// parametrically within [0,1] (spec.md §4.5 step 3). hitEnd is the
// pending hit point if one was found, or unbounded (no upper limit) if
// the strategy reported no hit for this iteration. Exported so that
// MergedPathCalculator can apply the same test independently to each
// of its two strategies.
func CursorOnSegment(ray geom.Ray, segStart geom.Vec2, res *hit.Result, found bool, cursor geom.Vec2) (float64, bool) {
	if !geom.IsCollinearFromOrigin(ray.Direction(), cursor.Sub(ray.Source)) {
		return 0, false
	}
	tCursor := paramT(ray, cursor)
	tStart := paramT(ray, segStart)
	if tCursor < tStart-1e-9 {
		return 0, false
	}
	if found && tCursor > res.T+1e-9 {
		return 0, false
	}
	return tCursor, true
}
