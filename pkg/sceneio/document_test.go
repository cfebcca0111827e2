package sceneio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/geom"
)

const directShotYAML = `
name: direct-shot
player: [0, 0]
cursor: [100, 0]
`

func TestParse_DirectShot(t *testing.T) {
	doc, err := Parse(strings.NewReader(directShotYAML))
	require.NoError(t, err)
	assert.Equal(t, "direct-shot", doc.Name)
	assert.Equal(t, point2{0, 0}, doc.Player)
	assert.Equal(t, point2{100, 0}, doc.Cursor)
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse(strings.NewReader("player: [0, 0]\n  bad indent: - -\n"))
	assert.Error(t, err)
}

const mirrorYAML = `
name: one-mirror
surfaces:
  - id: mirror
    start: [200, 0]
    end: [200, 200]
    orientation: left
    classification: reflective
chains:
  - id: wall-chain
    surfaces: [mirror]
player: [100, 100]
cursor: [150, 300]
plannedSurfaces: [mirror]
maxReflections: 4
`

func TestBuild_ResolvesSurfacesAndChains(t *testing.T) {
	doc, err := Parse(strings.NewReader(mirrorYAML))
	require.NoError(t, err)

	scene, err := Build(doc)
	require.NoError(t, err)

	require.Len(t, scene.Surfaces, 1)
	assert.Equal(t, geom.New(200, 0), scene.Surfaces[0].Segment.Start)
	require.Len(t, scene.Chains, 1)
	assert.Same(t, scene.Surfaces[0], scene.Chains[0].Surfaces[0])
	require.Len(t, scene.PlannedSurfaces, 1)
	assert.Equal(t, geom.New(100, 100), scene.Player)
	assert.Equal(t, 4, scene.MaxReflections)
}

func TestBuild_UnknownChainSurfaceIsError(t *testing.T) {
	doc := &Document{
		Chains: []ChainDoc{{ID: "c", Surfaces: []string{"missing"}}},
	}
	_, err := Build(doc)
	assert.Error(t, err)
}

func TestBuild_DuplicateSurfaceIDIsError(t *testing.T) {
	doc := &Document{
		Surfaces: []SurfaceDoc{
			{ID: "s", Start: point2{0, 0}, End: point2{1, 0}},
			{ID: "s", Start: point2{0, 1}, End: point2{1, 1}},
		},
	}
	_, err := Build(doc)
	assert.Error(t, err)
}

func TestBuiltin_EveryScenarioResolves(t *testing.T) {
	for _, name := range BuiltinNames() {
		doc, ok := Builtin(name)
		require.True(t, ok, name)
		_, err := Build(doc)
		assert.NoError(t, err, name)
	}
}

func TestBuiltin_UnknownNameReturnsFalse(t *testing.T) {
	_, ok := Builtin("does-not-exist")
	assert.False(t, ok)
}
