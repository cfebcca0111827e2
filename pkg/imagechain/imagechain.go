// Package imagechain builds the forward/backward image chain for an
// ordered plan of surfaces and evaluates which of those surfaces a
// shot would actually bypass. It is the 2D analogue of the teacher's
// multiple-importance-sampling weight combination in
// pkg/integrator/bdpt_mis.go: there, a full light path is built from
// two independently-grown subpaths and then a per-vertex weight
// decides which ones count; here a full reflection path is built from
// two independently-grown image chains and then a per-surface rule
// decides which ones actually take part.
package imagechain

import (
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/geom"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/surface"
)

// ReflectionPoint is where a planned chain's i-th surface is expected
// to be struck, given the images of everything before and after it.
type ReflectionPoint struct {
	Point      geom.Vec2
	Degenerate bool // true if player_image[i] and cursor_image[n-i] were parallel to s_i
}

// Chain holds the forward player images, backward cursor images, and
// the per-surface reflection points derived from them (spec.md §4.8).
type Chain struct {
	Player   geom.Vec2
	Cursor   geom.Vec2
	Surfaces []*surface.Surface

	// PlayerImages has length len(Surfaces)+1: PlayerImages[0] is the
	// player itself, PlayerImages[i] is the player reflected forward
	// through Surfaces[0..i-1].
	PlayerImages []geom.Vec2

	// CursorImages has length len(Surfaces)+1: CursorImages[0] is the
	// cursor itself, CursorImages[i] is the cursor reflected backward
	// through Surfaces[n-1..n-i].
	CursorImages []geom.Vec2

	// ReflectionPoints has length len(Surfaces).
	ReflectionPoints []ReflectionPoint
}

// Build constructs the image chain for a plan of surfaces taken in
// play order (the order a shot would actually strike them).
func Build(player, cursor geom.Vec2, surfaces []*surface.Surface) Chain {
	n := len(surfaces)

	playerImages := make([]geom.Vec2, n+1)
	playerImages[0] = player
	for i := 1; i <= n; i++ {
		playerImages[i] = surfaces[i-1].ReflectPoint(playerImages[i-1])
	}

	cursorImages := make([]geom.Vec2, n+1)
	cursorImages[0] = cursor
	for i := 1; i <= n; i++ {
		cursorImages[i] = surfaces[n-i].ReflectPoint(cursorImages[i-1])
	}

	reflectionPoints := make([]ReflectionPoint, n)
	for i := 0; i < n; i++ {
		a := playerImages[i]
		b := cursorImages[n-i]
		seg := surfaces[i].Segment
		res := geom.LineIntersect(a, b.Sub(a), seg.Start, seg.Direction())
		if !res.Valid {
			reflectionPoints[i] = ReflectionPoint{Point: seg.Midpoint(), Degenerate: true}
			continue
		}
		reflectionPoints[i] = ReflectionPoint{Point: res.Point}
	}

	return Chain{
		Player:           player,
		Cursor:           cursor,
		Surfaces:         surfaces,
		PlayerImages:     playerImages,
		CursorImages:     cursorImages,
		ReflectionPoints: reflectionPoints,
	}
}

// BypassResult reports, per surface index in the original plan order,
// whether that surface is bypassed, plus the resulting active subset
// in order.
type BypassResult struct {
	Bypassed []bool
	Active   []*surface.Surface
}

// Evaluate applies the two bypass passes of spec.md §4.8 to chain.
func Evaluate(chain Chain) BypassResult {
	n := len(chain.Surfaces)
	bypassed := make([]bool, n)
	if n == 0 {
		return BypassResult{Bypassed: bypassed}
	}

	if !chain.Surfaces[0].OnReflectiveSide(chain.Player) {
		bypassed[0] = true
	}
	if !chain.Surfaces[n-1].OnReflectiveSide(chain.Cursor) {
		bypassed[n-1] = true
	}
	for i := 0; i < n-1; i++ {
		if !chain.Surfaces[i+1].OnReflectiveSide(chain.ReflectionPoints[i].Point) {
			bypassed[i+1] = true
		}
	}

	for {
		last := lastActive(bypassed)
		if last < 0 {
			break
		}
		if chain.Surfaces[last].OnReflectiveSide(chain.Cursor) {
			break
		}
		bypassed[last] = true
	}

	result := BypassResult{Bypassed: bypassed}
	for i, b := range bypassed {
		if !b {
			result.Active = append(result.Active, chain.Surfaces[i])
		}
	}
	return result
}

func lastActive(bypassed []bool) int {
	for i := len(bypassed) - 1; i >= 0; i-- {
		if !bypassed[i] {
			return i
		}
	}
	return -1
}
