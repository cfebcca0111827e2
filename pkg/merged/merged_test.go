package merged

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/geom"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/hit"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/reflectcache"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/surface"
)

func TestTrace_NoSurfaces_FullyAligned(t *testing.T) {
	cache := reflectcache.New()
	physical := hit.PhysicalStrategy{}
	planned := hit.PlannedStrategy{}

	result := Trace(geom.New(0, 0), geom.New(100, 0), physical, planned, cache, 0)
	require.Len(t, result.Segments, 1)
	assert.True(t, result.ReachedCursor)
	assert.True(t, result.FullyAligned)
	assert.False(t, result.Diverged)
	require.Len(t, result.ContinuationSegments, 1)
	assert.Equal(t, geom.New(100, 0), result.ContinuationSegments[0].Start)
}

func TestTrace_SingleMirror_FullyAligned(t *testing.T) {
	cache := reflectcache.New()
	mirror := surface.New("mirror", geom.NewSegment(geom.New(200, -1000), geom.New(200, 1000)), surface.SideLeft, surface.Reflective)
	physical := hit.PhysicalStrategy{All: []*surface.Surface{mirror}}
	planned := hit.PlannedStrategy{Planned: []*surface.Surface{mirror}}

	player := geom.New(100, 100)
	cursor := geom.New(150, 300)

	result := Trace(player, cursor, physical, planned, cache, 0)
	require.Len(t, result.Segments, 2)
	assert.True(t, result.ReachedCursor)
	assert.True(t, result.FullyAligned)
	assert.Equal(t, cursor, result.Segments[1].End)
	assert.Len(t, result.ContinuationSegments, 1)
}

func TestTrace_Diverges_WhenPhysicalObstructionPrecedesPlannedMirror(t *testing.T) {
	cache := reflectcache.New()
	mirrorA := surface.New("mirrorA", geom.NewSegment(geom.New(100, -1000), geom.New(100, 1000)), surface.SideLeft, surface.Reflective)
	wallB := surface.New("wallB", geom.NewSegment(geom.New(50, -1000), geom.New(50, 1000)), surface.SideLeft, surface.Absorbing)

	physical := hit.PhysicalStrategy{All: []*surface.Surface{mirrorA, wallB}}
	planned := hit.PlannedStrategy{Planned: []*surface.Surface{mirrorA}}

	player := geom.New(0, 0)
	cursor := geom.New(50, 100)

	result := Trace(player, cursor, physical, planned, cache, 0)
	require.True(t, result.Diverged)
	assert.False(t, result.ReachedCursor)
	require.NotNil(t, result.DivergencePhysicalSurface)
	require.NotNil(t, result.DivergencePlannedSurface)
	assert.Equal(t, wallB.ID(), result.DivergencePhysicalSurface.ID())
	assert.Equal(t, mirrorA.ID(), result.DivergencePlannedSurface.ID())
	assert.InDelta(t, 50, result.DivergencePoint.X, 1e-6)
}
