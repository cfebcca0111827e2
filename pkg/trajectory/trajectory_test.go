package trajectory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/geom"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/hit"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/reflectcache"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/surface"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/tracepath"
)

func TestCalculate_NoDivergence_OnlyMerged(t *testing.T) {
	cache := reflectcache.New()
	physical := hit.PhysicalStrategy{}
	planned := hit.PlannedStrategy{}

	result := Calculate(geom.New(0, 0), geom.New(100, 0), physical, planned, cache, 0)
	assert.False(t, result.Merged.Diverged)
	assert.Nil(t, result.PhysicalDivergent)
	assert.Nil(t, result.PlannedToCursor)
	assert.Nil(t, result.PhysicalFromCursor)
	assert.Equal(t, []geom.Vec2{geom.New(0, 0), geom.New(100, 0)}, result.ArrowWaypoints)
}

// An absorbing wall sits between the player and a mirror the plan
// expects to bounce off; the physical shot dies at the wall while the
// plan, replayed as if the wall weren't there, keeps going and reaches
// the cursor via the mirror.
func TestCalculate_DivergesAtAbsorbingWall_PlannedStillReachesCursor(t *testing.T) {
	cache := reflectcache.New()
	mirrorA := surface.New("mirrorA", geom.NewSegment(geom.New(100, -1000), geom.New(100, 1000)), surface.SideLeft, surface.Reflective)
	wallB := surface.New("wallB", geom.NewSegment(geom.New(50, -1000), geom.New(50, 1000)), surface.SideLeft, surface.Absorbing)

	physical := hit.PhysicalStrategy{All: []*surface.Surface{mirrorA, wallB}}
	planned := hit.PlannedStrategy{Planned: []*surface.Surface{mirrorA}}

	player := geom.New(0, 0)
	cursor := geom.New(50, 100)

	result := Calculate(player, cursor, physical, planned, cache, 0)
	require.True(t, result.Merged.Diverged)
	assert.Nil(t, result.PhysicalDivergent, "wallB is absorbing, so there is no physical continuation to reflect")

	require.NotNil(t, result.PlannedToCursor)
	assert.Equal(t, tracepath.Cursor, result.PlannedToCursor.Termination)
	assert.Len(t, result.PlannedToCursor.Segments, 2)

	require.NotNil(t, result.PhysicalFromCursor)
	assert.Equal(t, tracepath.NoHit, result.PhysicalFromCursor.Termination)

	require.Len(t, result.ArrowWaypoints, 2)
	assert.Equal(t, geom.New(0, 0), result.ArrowWaypoints[0])
	assert.InDelta(t, 50, result.ArrowWaypoints[1].X, 1e-6)
}
