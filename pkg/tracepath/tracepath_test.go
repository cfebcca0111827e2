package tracepath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/geom"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/hit"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/propagator"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/reflectcache"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/surface"
)

func TestTrace_DirectShot_NoSurfaces(t *testing.T) {
	cache := reflectcache.New()
	prop := propagator.New(geom.New(0, 0), geom.New(100, 0), cache)
	strategy := hit.PhysicalStrategy{}

	result := Trace(prop, strategy, Options{StopAtCursor: true, Cursor: geom.New(100, 0)})
	require.Len(t, result.Segments, 1)
	assert.Equal(t, Cursor, result.Termination)
	assert.Equal(t, geom.New(100, 0), result.Segments[0].End)

	continuation := Trace(result.FinalPropagator, strategy, Options{ContinueFromPosition: &result.Segments[0].End})
	require.Len(t, continuation.Segments, 1)
	assert.Equal(t, NoHit, continuation.Termination)
}

func TestTrace_BlockedByAbsorbingWall(t *testing.T) {
	cache := reflectcache.New()
	wall := surface.New("wall", geom.NewSegment(geom.New(50, -50), geom.New(50, 50)), surface.SideLeft, surface.Absorbing)
	prop := propagator.New(geom.New(0, 0), geom.New(100, 0), cache)
	strategy := hit.PhysicalStrategy{All: []*surface.Surface{wall}}

	result := Trace(prop, strategy, Options{StopAtCursor: true, Cursor: geom.New(100, 0)})
	require.Len(t, result.Segments, 1)
	assert.Equal(t, Wall, result.Termination)
	assert.InDelta(t, 50, result.Segments[0].End.X, 1e-9)
}

// TestTrace_SinglePlanarReflection bounces a shot off one mirror into a
// cursor that is not in the mirror's direct line of sight. Reaching a
// real point through one reflection requires aiming at that point's
// image reflected back through the mirror (the same technique
// MergedPathCalculator uses to seed a planned-surface propagator), not
// at the real point itself: a direct aim at the real cursor would send
// the bounce back toward the player's own side instead.
func TestTrace_SinglePlanarReflection(t *testing.T) {
	cache := reflectcache.New()
	mirror := surface.New("mirror", geom.NewSegment(geom.New(200, -1000), geom.New(200, 1000)), surface.SideLeft, surface.Reflective)
	strategy := hit.PhysicalStrategy{All: []*surface.Surface{mirror}}

	player := geom.New(100, 100)
	cursor := geom.New(150, 300)
	initialTarget := geom.Reflect(cursor, mirror.Segment)
	prop := propagator.New(player, initialTarget, cache)

	result := Trace(prop, strategy, Options{StopAtCursor: true, Cursor: cursor})
	require.Len(t, result.Segments, 2)
	assert.InDelta(t, 200, result.Segments[0].End.X, 1e-6)
	assert.InDelta(t, 233.333333, result.Segments[0].End.Y, 1e-5)
	assert.Equal(t, Cursor, result.Termination)
	assert.Equal(t, cursor, result.Segments[1].End)
}
