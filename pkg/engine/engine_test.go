package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/geom"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/surface"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/visibility"
)

func TestEngine_DirectShot_IsCursorReachable(t *testing.T) {
	e := New()
	e.SetPlayer(geom.New(0, 0))
	e.SetCursor(geom.New(100, 0))

	assert.True(t, e.IsCursorReachable())
	result := e.GetFullTrajectory()
	assert.True(t, result.Merged.FullyAligned)
	assert.Equal(t, []geom.Vec2{geom.New(0, 0), geom.New(100, 0)}, result.ArrowWaypoints)
}

func TestEngine_BlockedByWall_IsNotCursorReachable(t *testing.T) {
	wall := surface.New("wall", geom.NewSegment(geom.New(50, -50), geom.New(50, 50)), surface.SideLeft, surface.Absorbing)

	e := New()
	e.SetAllSurfaces([]*surface.Surface{wall})
	e.SetPlayer(geom.New(0, 0))
	e.SetCursor(geom.New(100, 0))

	assert.False(t, e.IsCursorReachable())
	result := e.GetFullTrajectory()
	require.Len(t, result.Merged.Segments, 1)
	assert.InDelta(t, 50, result.Merged.Segments[0].End.X, 1e-6)
}

func TestEngine_OnResultsChanged_FiresSynchronouslyAfterEverySetter(t *testing.T) {
	e := New()
	fired := 0
	e.OnResultsChanged(func() { fired++ })

	e.SetPlayer(geom.New(0, 0))
	e.SetCursor(geom.New(100, 0))

	assert.Equal(t, 2, fired)
}

func TestEngine_PlannedSurfaceBypassedByPlayerSide_IsNotActive(t *testing.T) {
	mirror := surface.New("mirror", geom.NewSegment(geom.New(100, -50), geom.New(100, 50)), surface.SideRight, surface.Reflective)

	e := New()
	e.SetPlannedSurfaces([]*surface.Surface{mirror})
	e.SetPlayer(geom.New(0, 0))
	e.SetCursor(geom.New(200, 0))

	assert.Empty(t, e.ActivePlannedSurfaces(), "player sits on mirror's non-reflective side, so it must be bypassed")
}

func TestEngine_GetVisibility_ExcludesRequestedSurface(t *testing.T) {
	obstruction := surface.New("obstruction", geom.NewSegment(geom.New(50, -1000), geom.New(50, 1000)), surface.SideLeft, surface.Absorbing)
	far := surface.New("far", geom.NewSegment(geom.New(200, -10), geom.New(200, 10)), surface.SideLeft, surface.Reflective)
	chain := surface.NewChain("c", []*surface.Surface{far}, false)

	e := New()
	e.SetAllSurfaces([]*surface.Surface{obstruction, far})

	withObstruction := e.GetVisibility(geom.New(0, 0), []*surface.Chain{chain}, nil, "", nil, nil)
	require.NotEmpty(t, withObstruction)
	for _, p := range withObstruction {
		if p.Point.X > 60 {
			t.Fatalf("expected every point to be stopped at the obstruction (x<=50), got %v", p.Point)
		}
	}

	excluded := e.GetVisibility(geom.New(0, 0), []*surface.Chain{chain}, nil, obstruction.ID(), nil, nil)
	var sawFarEndpoint bool
	for _, p := range excluded {
		if p.Kind == visibility.EndpointPoint && p.SurfaceID == far.ID() {
			sawFarEndpoint = true
		}
	}
	assert.True(t, sawFarEndpoint, "excluding the obstruction should let a target ray reach far's own endpoint")
}
