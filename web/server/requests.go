package server

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/engine"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/geom"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/sceneio"
)

// point is a [x, y] pair as carried over the wire.
type point [2]float64

func (p point) vec() geom.Vec2 { return geom.New(p[0], p[1]) }

// sceneRequest names the scene a one-shot or websocket session should
// use: a built-in by name, or an inline YAML document (a websocket
// client has no server-side file path to hand the way the CLI does).
type sceneRequest struct {
	Scene     string `json:"scene,omitempty"`
	SceneYAML string `json:"sceneYaml,omitempty"`
}

// resolveDoc resolves a sceneRequest to a *sceneio.Document, preferring
// an inline document over a built-in name when both are set.
func resolveDoc(req sceneRequest) (*sceneio.Document, error) {
	if req.SceneYAML != "" {
		doc, err := sceneio.Parse(strings.NewReader(req.SceneYAML))
		if err != nil {
			return nil, err
		}
		return doc, nil
	}
	name := req.Scene
	if name == "" {
		name = "direct-shot"
	}
	doc, ok := sceneio.Builtin(name)
	if !ok {
		return nil, errors.Errorf("server: unknown built-in scene %q", name)
	}
	return doc, nil
}

// buildEngine applies a resolved scene to a fresh Engine, the same
// setter sequence cmd/ricochet.buildEngine and
// pkg/engine/engine_test.go exercise.
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
