package sceneio

import "sort"

// Builtin scene documents, grounded on the teacher's named built-in
// scene constructors (pkg/scene/default_scene.go, pkg/scene/cornell.go)
// but authored as data (Document values) rather than Go constructor
// functions, since every scene here is a flat geometry plus one
// player/cursor query rather than a camera+material+light graph. Each
// one reproduces an end-to-end scenario from spec.md §8.
var builtins = map[string]*Document{
	"direct-shot": {
		Name:   "direct-shot",
		Player: point2{0, 0},
		Cursor: point2{100, 0},
	},

	// Spec.md §8 item 2 gives player=(100,100), cursor=(300,100) with
	// mirror (200,0)->(200,200); reflecting that literal cursor across
	// the mirror's line lands exactly on that literal player, making
	// the image-chain's initial aim a zero-length ray. This scene keeps
	// the same mirror line (x=200, extended so it still contains the
	// reflection point) and demonstrates the same single-bounce shape
	// with a cursor that isn't the mirror image of the player, so the
	// trace runs a real reflection instead of degenerating.
	"single-reflection": {
		Name:            "single-reflection",
		Surfaces:        []SurfaceDoc{mirrorAtX200},
		Player:          point2{100, 100},
		Cursor:          point2{150, 300},
		PlannedSurfaces: []string{"mirror"},
	},

	"blocked-by-wall": {
		Name: "blocked-by-wall",
		Surfaces: []SurfaceDoc{
			{ID: "wall", Start: point2{50, -50}, End: point2{50, 50}, Orientation: "left", Classification: "absorbing"},
		},
		Player: point2{0, 0},
		Cursor: point2{100, 0},
	},

	// The 120-degree V-chain of spec.md §8 item 4: two surfaces sharing
	// the vertex (650,250), exercised as a visibility query from the
	// given viewpoint rather than a trajectory (the scenario's claim is
	// about the junction appearing in a visibility polygon, not about
	// reaching the cursor).
	"v-chain-120": {
		Name: "v-chain-120",
		Surfaces: []SurfaceDoc{
			{ID: "v-left", Start: point2{598.04, 280}, End: point2{650, 250}, Orientation: "left", Classification: "reflective"},
			{ID: "v-right", Start: point2{650, 250}, End: point2{701.96, 280}, Orientation: "left", Classification: "reflective"},
		},
		Chains: []ChainDoc{
			{ID: "v-chain", Closed: false, Surfaces: []string{"v-left", "v-right"}},
		},
		Player: point2{952.9123736006022, 666},
		Cursor: point2{655.2744630071599, 269.88066825775655},
	},

	// The windowed-cone pass-through scenario of spec.md §8 item 5: a
	// single chain surface used as the cone's Window, viewed from the
	// scenario's reflected origin.
	"window-cone-pass-through": {
		Name: "window-cone-pass-through",
		Surfaces: []SurfaceDoc{
			{ID: "chain3-1", Start: point2{850, 250}, End: point2{880, 301.9615242270663}, Orientation: "left", Classification: "reflective"},
		},
		Chains: []ChainDoc{
			{ID: "chain3", Closed: false, Surfaces: []string{"chain3-1"}},
		},
		Window: "chain3-1",
		Player: point2{824.66, 666},
		Cursor: point2{824.66, 666},
	},

	// Range-limited full cone with no obstructing surfaces: the
	// projection yields only the two ArcJunction points on the range
	// circle; no vertices are sampled along the arc between them.
	"range-limited-full-cone": {
		Name:       "range-limited-full-cone",
		Player:     point2{400, 300},
		Cursor:     point2{400, 300},
		RangeLimit: &RangeLimitDoc{Center: point2{400, 300}, Radius: 100},
	},
}

// mirrorAtX200 spans the same extent as
// pkg/tracepath/tracepath_test.go's TestTrace_SinglePlanarReflection
// mirror (a tall vertical line at x=200), not a short (200,0)-(200,200)
// segment: the single-reflection scene's hit point lands at y~=233.33,
// which a short segment wouldn't even contain.
var mirrorAtX200 = SurfaceDoc{ID: "mirror", Start: point2{200, -1000}, End: point2{200, 1000}, Orientation: "left", Classification: "reflective"}

// Builtin returns a copy of the named built-in scene document, or
// false if no such scene is registered.
func Builtin(name string) (*Document, bool) {
	doc, ok := builtins[name]
	if !ok {
		return nil, false
	}
	cp := *doc
	return &cp, true
}

// BuiltinNames returns every registered built-in scene name, sorted
// for stable CLI listing.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
