package main

import (
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/engine"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/sceneio"
)

// buildEngine applies a resolved scene to a fresh Engine, the same
// setter sequence pkg/engine/engine_test.go exercises by hand.
func buildEngine(scene *sceneio.Scene) *engine.Engine {
	e := engine.New()
	e.SetAllSurfaces(scene.Surfaces)
	e.SetChains(scene.Chains)
	e.SetPlannedSurfaces(scene.PlannedSurfaces)
	e.SetRangeLimit(scene.RangeLimit)
	maxReflections := scene.MaxReflections
	if maxReflections == 0 {
		maxReflections = 8
	}
	e.SetMaxReflections(maxReflections)
	e.SetPlayer(scene.Player)
	e.SetCursor(scene.Cursor)
	return e
}
