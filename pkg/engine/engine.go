// Package engine implements the public façade of spec.md §6: the
// mutable, collaborator-facing state (player, cursor, planned/all
// surfaces, chains) and the two read operations derived from it
// (get_full_trajectory, get_visibility), with a synchronous
// on_results_changed push after every mutation. Grounded on the
// teacher's top-level Raytracer (pkg/renderer/raytracer.go), which
// likewise holds scene state behind setters and derives a fresh
// traversal structure (there a BVH, here an ImageChain/bypass pair)
// whenever the scene changes rather than rebuilding it ad hoc inside
// every query.
package engine

import (
	"sync"

	"github.com/google/uuid"

	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/geom"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/hit"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/imagechain"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/reflectcache"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/surface"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/trajectory"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/visibility"
)

// Engine holds one query's worth of mutable scene state and the
// trajectory result derived from it. It is safe for concurrent use:
// every setter and getter takes the same lock, and on_results_changed
// listeners are invoked outside it so a listener calling back into the
// engine cannot deadlock.
type Engine struct {
	mu sync.Mutex

	id uuid.UUID

	player, cursor  geom.Vec2
	plannedSurfaces []*surface.Surface
	allSurfaces     []*surface.Surface
	chains          []*surface.Chain
	rangeLimit      *hit.RangeLimit
	maxReflections  int

	bypass trajectoryInputs
	result trajectory.Result

	listeners []func()
}

// trajectoryInputs caches the bypass-filtered planned surfaces so
// ActivePlannedSurfaces can report which planned surfaces are actually
// active without recomputing ImageChain itself.
type trajectoryInputs struct {
	active []*surface.Surface
}

// New creates an Engine with empty scene state and a fresh session id.
func New() *Engine {
	return &Engine{id: uuid.New()}
}

// ID returns the engine's session identifier, stable for the life of
// the Engine value. Collaborators (pkg/tracelog, web/server) use it to
// correlate log lines and push-channel traffic with one query session.
func (e *Engine) ID() uuid.UUID {
	return e.id
}

// SetPlayer sets the player position and recomputes.
func (e *Engine) SetPlayer(p geom.Vec2) { e.apply(func() { e.player = p }) }

// SetCursor sets the cursor position and recomputes.
func (e *Engine) SetCursor(p geom.Vec2) { e.apply(func() { e.cursor = p }) }

// SetPlannedSurfaces sets the ordered reflection plan and recomputes.
func (e *Engine) SetPlannedSurfaces(s []*surface.Surface) {
	e.apply(func() { e.plannedSurfaces = s })
}

// SetAllSurfaces sets the full scene surface set and recomputes.
func (e *Engine) SetAllSurfaces(s []*surface.Surface) {
	e.apply(func() { e.allSurfaces = s })
}

// SetChains stores the surface chains and recomputes (chains do not
// feed the trajectory pipeline directly, but spec.md §6 groups the
// invalidation together). GetVisibility does not read the stored
// chains; it uses the chains passed to it.
func (e *Engine) SetChains(c []*surface.Chain) { e.apply(func() { e.chains = c }) }

// SetRangeLimit sets the optional range-limit circle and recomputes.
func (e *Engine) SetRangeLimit(rl *hit.RangeLimit) { e.apply(func() { e.rangeLimit = rl }) }

// SetMaxReflections sets the reflection depth cap and recomputes.
func (e *Engine) SetMaxReflections(n int) { e.apply(func() { e.maxReflections = n }) }

// apply mutates state under lock, recomputes the trajectory while
// still holding it, then delivers on_results_changed synchronously
// after releasing it (spec.md §6).
func (e *Engine) apply(mutate func()) {
	e.mu.Lock()
	mutate()
	e.recomputeLocked()
	listeners := append([]func(){}, e.listeners...)
	e.mu.Unlock()

	for _, cb := range listeners {
		cb()
	}
}

// recomputeLocked rebuilds ImageChain, runs the bypass evaluator, and
// recalculates the full trajectory. Per spec.md §9's pre-reflection
// surface-set decision (see DESIGN.md), the bypass-filtered Active
// surfaces are used as both the PlannedStrategy and the InitialTarget
// pre-reflection plan, so the two always agree.
func (e *Engine) recomputeLocked() {
	chain := imagechain.Build(e.player, e.cursor, e.plannedSurfaces)
	bypassResult := imagechain.Evaluate(chain)
	e.bypass = trajectoryInputs{active: bypassResult.Active}

	physical := hit.PhysicalStrategy{All: e.allSurfaces, RangeLimit: e.rangeLimit}
	planned := hit.PlannedStrategy{Planned: bypassResult.Active}

	cache := reflectcache.New()
	e.result = trajectory.Calculate(e.player, e.cursor, physical, planned, cache, e.maxReflections)
}

// GetFullTrajectory returns the most recently computed trajectory.
func (e *Engine) GetFullTrajectory() trajectory.Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.result
}

// IsCursorReachable is is_cursor_reachable ≡
// get_full_trajectory().fully_aligned (spec.md §6).
func (e *Engine) IsCursorReachable() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.result.Merged.FullyAligned
}

// ActivePlannedSurfaces returns the bypass-filtered planned surfaces
// from the most recent recompute, for callers that want to show which
// of the original plan actually took part.
func (e *Engine) ActivePlannedSurfaces() []*surface.Surface {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bypass.active
}

// OnResultsChanged registers cb to be called synchronously after every
// recomputation (spec.md §6).
func (e *Engine) OnResultsChanged(cb func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, cb)
}

// GetVisibility runs the independent cone-projection data flow of
// spec.md §6 (origin, chains, bounds, excludeSurfaceId?, window?,
// rangeLimit?) -> cone -> projection -> polygon. It reads the engine's
// current all-surfaces set but takes every other input as an explicit
// argument, since a visibility query's origin need not be the player.
func (e *Engine) GetVisibility(origin geom.Vec2, chains []*surface.Chain, bounds *visibility.Bounds, excludeSurfaceID reflectcache.SurfaceID, window *surface.Surface, rangeLimit *hit.RangeLimit) []visibility.SourcePoint {
	e.mu.Lock()
	all := e.allSurfaces
	e.mu.Unlock()

	var cone visibility.Cone
	if window != nil {
		cone = visibility.NewWindowedCone(origin, window)
	} else {
		cone = visibility.NewFullCone(origin)
	}
	scene := visibility.Scene{
		Chains:      chains,
		AllSurfaces: excludeSurface(all, excludeSurfaceID),
		RangeLimit:  rangeLimit,
		Bounds:      bounds,
	}
	return visibility.Polygon(cone, scene)
}

func excludeSurface(all []*surface.Surface, id reflectcache.SurfaceID) []*surface.Surface {
	if id == "" {
		return all
	}
	out := make([]*surface.Surface, 0, len(all))
	for _, s := range all {
		if s.ID() != id {
			out = append(out, s)
		}
	}
	return out
}
