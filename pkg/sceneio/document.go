// Package sceneio parses YAML scene documents into the engine's native
// types, the 2D analogue of the teacher's pkg/loaders/pbrt.go (a text
// scene format parsed into the renderer's scene types). Surfaces and
// chains are authored by string id and cross-referenced by id, the
// same "name things, resolve later" shape PBRT's material/shape
// indices use.
package sceneio

import (
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/geom"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/hit"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/surface"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/visibility"
)

// point2 is a [x, y] pair as written in YAML.
type point2 [2]float64

func (p point2) vec() geom.Vec2 { return geom.New(p[0], p[1]) }

// SurfaceDoc is one surface as authored in a scene document.
type SurfaceDoc struct {
	ID             string `yaml:"id"`
	Start          point2 `yaml:"start"`
	End            point2 `yaml:"end"`
	Orientation    string `yaml:"orientation"`    // "left" or "right"
	Classification string `yaml:"classification"` // "reflective" or "absorbing"
}

// ChainDoc is one chain of endpoint-adjacent surfaces, referenced by id.
type ChainDoc struct {
	ID       string   `yaml:"id"`
	Closed   bool     `yaml:"closed"`
	Surfaces []string `yaml:"surfaces"`
}

// BoundsDoc is the optional screen rectangle (spec.md §6).
type BoundsDoc struct {
	MinX float64 `yaml:"minX"`
	MinY float64 `yaml:"minY"`
	MaxX float64 `yaml:"maxX"`
	MaxY float64 `yaml:"maxY"`
}

// RangeLimitDoc is the optional range-limit circle (spec.md §4.10).
type RangeLimitDoc struct {
	Center point2  `yaml:"center"`
	Radius float64 `yaml:"radius"`
}

// Document is a complete scene: the scene-wide surface/chain geometry
// plus the player/cursor/plan of one query against it.
type Document struct {
	Name            string         `yaml:"name"`
	Surfaces        []SurfaceDoc   `yaml:"surfaces"`
	Chains          []ChainDoc     `yaml:"chains"`
	Bounds          *BoundsDoc     `yaml:"bounds,omitempty"`
	RangeLimit      *RangeLimitDoc `yaml:"rangeLimit,omitempty"`
	Window          string         `yaml:"window,omitempty"`
	Player          point2         `yaml:"player"`
	Cursor          point2         `yaml:"cursor"`
	PlannedSurfaces []string       `yaml:"plannedSurfaces,omitempty"`
	MaxReflections  int            `yaml:"maxReflections"`
}

// Parse decodes a scene document from r.
func Parse(r io.Reader) (*Document, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "sceneio: decode scene document")
	}
	return &doc, nil
}

// Scene is a Document resolved into the engine's native surface/chain
// graph, ready to be applied to a pkg/engine.Engine.
type Scene struct {
	Surfaces        []*surface.Surface
	Chains          []*surface.Chain
	Bounds          *visibility.Bounds
	RangeLimit      *hit.RangeLimit
	Window          *surface.Surface
	Player, Cursor  geom.Vec2
	PlannedSurfaces []*surface.Surface
	MaxReflections  int
}

// Build resolves doc's string-id cross-references into a Scene,
// returning a wrapped, stack-carrying error (spec.md §7 — a malformed
// scene document is a fatal-class error, not represented as data) on
// any unknown id or duplicate surface id.
func Build(doc *Document) (*Scene, error) {
	byID := make(map[string]*surface.Surface, len(doc.Surfaces))
	surfaces := make([]*surface.Surface, 0, len(doc.Surfaces))
	for _, sd := range doc.Surfaces {
		if _, dup := byID[sd.ID]; dup {
			return nil, errors.Errorf("sceneio: duplicate surface id %q", sd.ID)
		}
		orientation, err := parseOrientation(sd.Orientation)
		if err != nil {
			return nil, errors.Wrapf(err, "sceneio: surface %q", sd.ID)
		}
		class, err := parseClassification(sd.Classification)
		if err != nil {
			return nil, errors.Wrapf(err, "sceneio: surface %q", sd.ID)
		}
		s := surface.New(sd.ID, geom.NewSegment(sd.Start.vec(), sd.End.vec()), orientation, class)
		byID[sd.ID] = s
		surfaces = append(surfaces, s)
	}

	resolve := func(id string) (*surface.Surface, error) {
		s, ok := byID[id]
		if !ok {
			return nil, errors.Errorf("sceneio: unknown surface id %q", id)
		}
		return s, nil
	}

	chains := make([]*surface.Chain, 0, len(doc.Chains))
	for _, cd := range doc.Chains {
		members := make([]*surface.Surface, 0, len(cd.Surfaces))
		for _, id := range cd.Surfaces {
			s, err := resolve(id)
			if err != nil {
				return nil, errors.Wrapf(err, "sceneio: chain %q", cd.ID)
			}
			members = append(members, s)
		}
		chains = append(chains, surface.NewChain(cd.ID, members, cd.Closed))
	}

	scene := &Scene{
		Surfaces:       surfaces,
		Chains:         chains,
		Player:         doc.Player.vec(),
		Cursor:         doc.Cursor.vec(),
		MaxReflections: doc.MaxReflections,
	}

	if doc.Bounds != nil {
		scene.Bounds = &visibility.Bounds{MinX: doc.Bounds.MinX, MinY: doc.Bounds.MinY, MaxX: doc.Bounds.MaxX, MaxY: doc.Bounds.MaxY}
	}
	if doc.RangeLimit != nil {
		scene.RangeLimit = &hit.RangeLimit{Center: doc.RangeLimit.Center.vec(), Radius: doc.RangeLimit.Radius}
	}
	if doc.Window != "" {
		w, err := resolve(doc.Window)
		if err != nil {
			return nil, errors.Wrap(err, "sceneio: window")
		}
		scene.Window = w
	}
	for _, id := range doc.PlannedSurfaces {
		s, err := resolve(id)
		if err != nil {
			return nil, errors.Wrap(err, "sceneio: plannedSurfaces")
		}
		scene.PlannedSurfaces = append(scene.PlannedSurfaces, s)
	}

	return scene, nil
}

func parseOrientation(s string) (surface.Side, error) {
	switch s {
	case "", "left":
		return surface.SideLeft, nil
	case "right":
		return surface.SideRight, nil
	default:
		return 0, errors.Errorf("unknown orientation %q", s)
	}
}

func parseClassification(s string) (surface.Classification, error) {
	switch s {
	case "", "reflective":
		return surface.Reflective, nil
	case "absorbing":
		return surface.Absorbing, nil
	default:
		return 0, errors.Errorf("unknown classification %q", s)
	}
}
