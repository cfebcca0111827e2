package imagechain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/geom"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/surface"
)

func TestBuild_ReflectionPointMatchesPlayerCursorImageIntersection(t *testing.T) {
	mirror := surface.New("mirror", geom.NewSegment(geom.New(200, -1000), geom.New(200, 1000)), surface.SideLeft, surface.Reflective)
	player := geom.New(100, 100)
	cursor := geom.New(150, 300)

	chain := Build(player, cursor, []*surface.Surface{mirror})
	require.Len(t, chain.ReflectionPoints, 1)
	assert.False(t, chain.ReflectionPoints[0].Degenerate)
	assert.InDelta(t, 200, chain.ReflectionPoints[0].Point.X, 1e-6)
	assert.InDelta(t, 233.333333, chain.ReflectionPoints[0].Point.Y, 1e-5)
	assert.Equal(t, geom.New(300, 100), chain.PlayerImages[1])
	assert.Equal(t, geom.New(250, 300), chain.CursorImages[1])

	result := Evaluate(chain)
	assert.False(t, result.Bypassed[0])
	assert.Equal(t, []*surface.Surface{mirror}, result.Active)
}

func TestBuild_DegenerateFallsBackToMidpoint(t *testing.T) {
	mirror := surface.New("mirror", geom.NewSegment(geom.New(-100, 0), geom.New(100, 0)), surface.SideLeft, surface.Reflective)
	player := geom.New(0, 10)
	cursor := geom.New(50, -10)

	chain := Build(player, cursor, []*surface.Surface{mirror})
	require.True(t, chain.ReflectionPoints[0].Degenerate)
	assert.Equal(t, geom.New(0, 0), chain.ReflectionPoints[0].Point)
}

func TestEvaluate_BypassesWhenPlayerOnNonReflectiveSide(t *testing.T) {
	mirror := surface.New("mirror", geom.NewSegment(geom.New(-100, 0), geom.New(100, 0)), surface.SideLeft, surface.Reflective)
	player := geom.New(0, -10) // below the line; reflective side faces +Y
	cursor := geom.New(0, 10)

	chain := Build(player, cursor, []*surface.Surface{mirror})
	result := Evaluate(chain)
	assert.True(t, result.Bypassed[0])
	assert.Empty(t, result.Active)
}

func TestEvaluate_CascadingBypass_AllSurfacesBypassed(t *testing.T) {
	s0 := surface.New("s0", geom.NewSegment(geom.New(-100, 0), geom.New(0, 0)), surface.SideLeft, surface.Reflective)
	s1 := surface.New("s1", geom.NewSegment(geom.New(100, 0), geom.New(300, 0)), surface.SideLeft, surface.Reflective)
	player := geom.New(-50, 10)
	cursor := geom.New(0, -50) // below the shared line: non-reflective for both

	chain := Build(player, cursor, []*surface.Surface{s0, s1})
	result := Evaluate(chain)
	assert.True(t, result.Bypassed[1])
	assert.True(t, result.Bypassed[0])
	assert.Empty(t, result.Active)
}
