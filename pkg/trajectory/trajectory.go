// Package trajectory implements FullTrajectoryCalculator: the
// top-level composition that turns a merged-path result into the four
// sections a player actually sees — the merged prefix, what the shot
// really does once it diverges from the plan, and what the plan
// would have done all the way to the cursor and beyond. Grounded on
// the teacher's top-level pkg/renderer/raytracer.go, which likewise
// composes several already-built pieces (camera, scene, integrator)
// into one entry point rather than doing any tracing itself.
package trajectory

import (
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/geom"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/hit"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/merged"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/reflectcache"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/tracepath"
)

// Result is the full four-section trajectory of spec.md §4.7.
type Result struct {
	Merged merged.Result

	// PhysicalDivergent is the real path the shot takes once it parts
	// from the plan, if the physical surface at the divergence point
	// was reflective. Nil when there was no divergence, or the
	// physical side hit a wall (can't-reflect) there.
	PhysicalDivergent *tracepath.Result

	// PlannedToCursor replays the plan from the divergence point as if
	// the obstruction weren't there, to show where the plan intended
	// to go. Nil when there was no divergence.
	PlannedToCursor *tracepath.Result

	// PhysicalFromCursor continues physically from the cursor once
	// PlannedToCursor reaches it, matching the continuation spliced
	// onto a fully aligned merged path. Nil unless PlannedToCursor
	// reached the cursor.
	PhysicalFromCursor *tracepath.Result

	// ArrowWaypoints is Merged ∪ PhysicalDivergent only (spec.md §4.7).
	ArrowWaypoints []geom.Vec2
}

// Calculate runs MergedPathCalculator and, on divergence, the three
// additional traces spec.md §4.7 composes on top of it.
func Calculate(player, cursor geom.Vec2, physical hit.PhysicalStrategy, planned hit.PlannedStrategy, cache *reflectcache.Cache, maxReflections int) Result {
	m := merged.Trace(player, cursor, physical, planned, cache, maxReflections)
	result := Result{Merged: m, ArrowWaypoints: waypoints(m.Segments)}

	if !m.Diverged {
		return result
	}

	if m.DivergencePhysicalSurface != nil && m.DivergencePhysicalCanReflect {
		divergedProp := m.DivergencePropagator.ReflectThrough(m.DivergencePhysicalSurface)
		physTrace := tracepath.Trace(divergedProp, physical, tracepath.Options{MaxReflections: maxReflections})
		result.PhysicalDivergent = &physTrace
		result.ArrowWaypoints = append(result.ArrowWaypoints, waypoints(physTrace.Segments)...)
	}

	divPoint := m.DivergencePoint
	plannedTrace := tracepath.Trace(m.DivergencePropagator, planned, tracepath.Options{
		ContinueFromPosition: &divPoint,
		StopAtCursor:         true,
		Cursor:               cursor,
		MaxReflections:       maxReflections,
	})
	result.PlannedToCursor = &plannedTrace

	if plannedTrace.Termination == tracepath.Cursor {
		cursorPos := cursor
		physFromCursor := tracepath.Trace(plannedTrace.FinalPropagator, physical, tracepath.Options{
			ContinueFromPosition: &cursorPos,
			MaxReflections:       maxReflections,
		})
		result.PhysicalFromCursor = &physFromCursor
	}

	return result
}

// waypoints flattens a segment run into its ordered vertex list.
func waypoints(segments []tracepath.Segment) []geom.Vec2 {
	if len(segments) == 0 {
		return nil
	}
	pts := make([]geom.Vec2, 0, len(segments)+1)
	pts = append(pts, segments[0].Start)
	for _, s := range segments {
		pts = append(pts, s.End)
	}
	return pts
}
