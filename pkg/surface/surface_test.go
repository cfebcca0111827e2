package surface

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/geom"
)

func verticalWall(orientation Side) *Surface {
	return New("wall", geom.NewSegment(geom.New(200, 0), geom.New(200, 200)), orientation, Reflective)
}

func TestCanReflectFrom_RespectsOrientation(t *testing.T) {
	wall := verticalWall(SideLeft)
	// Travelling in +X (toward the wall from the left) should reflect.
	assert.True(t, wall.CanReflectFrom(geom.New(1, 0)))
	// Travelling in -X (from the right, away from the reflective side) should not.
	assert.False(t, wall.CanReflectFrom(geom.New(-1, 0)))
}

func TestCanReflectFrom_AbsorbingNeverReflects(t *testing.T) {
	wall := New("wall", geom.NewSegment(geom.New(200, 0), geom.New(200, 200)), SideLeft, Absorbing)
	assert.False(t, wall.CanReflectFrom(geom.New(1, 0)))
	assert.False(t, wall.CanReflectFrom(geom.New(-1, 0)))
}

func TestChain_Junctions_Open(t *testing.T) {
	s0 := New("s0", geom.NewSegment(geom.New(598.04, 280), geom.New(650, 250)), SideLeft, Reflective)
	s1 := New("s1", geom.NewSegment(geom.New(650, 250), geom.New(701.96, 280)), SideLeft, Reflective)
	chain := NewChain("vchain", []*Surface{s0, s1}, false)

	junctions := chain.Junctions()
	if assert.Len(t, junctions, 1) {
		assert.Equal(t, geom.New(650, 250), junctions[0].Point)
		assert.Same(t, s0, junctions[0].Before)
		assert.Same(t, s1, junctions[0].After)
	}

	endpoints := chain.Endpoints()
	if assert.Len(t, endpoints, 2) {
		assert.Equal(t, geom.New(598.04, 280), endpoints[0].Point)
		assert.Equal(t, geom.New(701.96, 280), endpoints[1].Point)
	}
}

func TestChain_Junctions_Closed(t *testing.T) {
	a := New("a", geom.NewSegment(geom.New(0, 0), geom.New(10, 0)), SideLeft, Reflective)
	b := New("b", geom.NewSegment(geom.New(10, 0), geom.New(10, 10)), SideLeft, Reflective)
	c := New("c", geom.NewSegment(geom.New(10, 10), geom.New(0, 0)), SideLeft, Reflective)
	chain := NewChain("tri", []*Surface{a, b, c}, true)

	assert.Len(t, chain.Junctions(), 3)
	assert.Empty(t, chain.Endpoints())
}
