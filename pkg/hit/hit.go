// Package hit implements find_next_hit and the Physical/Planned
// strategies that wrap it (spec.md §4.4). Both strategies share one
// traversal function, the same way the teacher's BVH.Hit (pkg/core/bvh.go)
// is one traversal reused regardless of what material a shape carries —
// here what varies between strategies is the surface set and the
// on-segment/range-limit rules, not the walk itself.
package hit

import (
	"math"
	"sort"

	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/geom"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/reflectcache"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/surface"
)

// Mode selects which set of acceptance rules find_next_hit applies.
type Mode int

const (
	Physical Mode = iota
	Planned
)

// RangeLimit bounds how far a ray may travel before the scene's range
// circle is treated as an obstruction (spec.md §4.10).
type RangeLimit struct {
	Center geom.Vec2
	Radius float64
}

// Options configures a single find_next_hit call.
type Options struct {
	Mode            Mode
	StartLine       *geom.Segment
	HasMinT         bool
	MinT            float64
	ExcludeSurfaces map[reflectcache.SurfaceID]bool
	RangeLimit      *RangeLimit
}

// Result is the outcome of one find_next_hit call.
type Result struct {
	T          float64
	S          float64 // parametric position along the surface's segment
	Surface    *surface.Surface
	CanReflect bool
	OnSegment  bool
	IsArcHit   bool
	Point      geom.Vec2
}

// Strategy wraps find_next_hit with a fixed surface set and mode
// (spec.md §4.4, §9 — "re-express as an explicit strategy.surfaces()
// accessor").
type Strategy interface {
	Mode() Mode
	Surfaces() []*surface.Surface
	FindNextHit(ray geom.Ray, opts Options) (*Result, bool)
}

// PhysicalStrategy hits all scene surfaces on-segment only, respecting
// CanReflectFrom and an optional scene-wide range limit.
type PhysicalStrategy struct {
	All        []*surface.Surface
	RangeLimit *RangeLimit
}

func (p PhysicalStrategy) Mode() Mode                   { return Physical }
func (p PhysicalStrategy) Surfaces() []*surface.Surface { return p.All }
func (p PhysicalStrategy) FindNextHit(ray geom.Ray, opts Options) (*Result, bool) {
	opts.Mode = Physical
	opts.RangeLimit = p.RangeLimit
	return FindNextHit(ray, p.All, opts)
}

// PlannedStrategy hits only the planned surfaces on their extended
// lines; it always reports CanReflect=true and ignores range limits.
type PlannedStrategy struct {
	Planned []*surface.Surface
}

func (p PlannedStrategy) Mode() Mode                    { return Planned }
func (p PlannedStrategy) Surfaces() []*surface.Surface { return p.Planned }
func (p PlannedStrategy) FindNextHit(ray geom.Ray, opts Options) (*Result, bool) {
	opts.Mode = Planned
	opts.RangeLimit = nil
	return FindNextHit(ray, p.Planned, opts)
}

// FindNextHit finds the nearest accepted hit among surfaces, applying
// the exclusion/min-t/start-line/range-limit rules of spec.md §4.4.
func FindNextHit(ray geom.Ray, surfaces []*surface.Surface, opts Options) (*Result, bool) {
	if ray.IsDegenerate() {
		return nil, false
	}
	dir := ray.Direction()

	minT := 0.0
	if opts.HasMinT && opts.MinT > minT {
		minT = opts.MinT
	}
	if opts.StartLine != nil {
		sl := *opts.StartLine
		startT := geom.LineIntersect(ray.Source, dir, sl.Start, sl.Direction()).T
		if startT > minT {
			minT = startT
		}
	}

	var candidates []Result
	for _, surf := range surfaces {
		if opts.ExcludeSurfaces != nil && opts.ExcludeSurfaces[surf.ID()] {
			continue
		}
		res := geom.SegmentIntersect(ray.Source, dir, surf.Segment)
		if !res.Valid {
			continue
		}
		if res.T <= minT {
			continue
		}
		onSegment := res.U >= 0 && res.U <= 1
		if opts.Mode == Physical && !onSegment {
			continue
		}
		canReflect := true
		if opts.Mode == Physical {
			canReflect = surf.CanReflectFrom(dir)
		}
		candidates = append(candidates, Result{
			T:          res.T,
			S:          res.U,
			Surface:    surf,
			CanReflect: canReflect,
			OnSegment:  onSegment,
			Point:      res.Point,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].T != candidates[j].T {
			return candidates[i].T < candidates[j].T
		}
		if candidates[i].Surface.ID() != candidates[j].Surface.ID() {
			return candidates[i].Surface.ID() < candidates[j].Surface.ID()
		}
		return candidates[i].S < candidates[j].S
	})

	var surfaceHit *Result
	if len(candidates) > 0 {
		best := candidates[0]
		surfaceHit = &best
	}

	if opts.Mode == Physical && opts.RangeLimit != nil {
		arcT, hasArc := circleCrossing(ray, minT, *opts.RangeLimit)
		if hasArc && (surfaceHit == nil || arcT < surfaceHit.T) {
			return &Result{
				T:        arcT,
				IsArcHit: true,
				Point:    ray.At(arcT),
			}, true
		}
	}

	if surfaceHit != nil {
		return surfaceHit, true
	}
	return nil, false
}

// CircleIntersect finds the nearest t > 0 at which ray crosses the
// boundary circle (center, radius). Exported for callers outside
// FindNextHit, such as visibility cone projection's ArcJunction points
// (spec.md §4.9 item 1, §4.10).
func CircleIntersect(ray geom.Ray, rl RangeLimit) (float64, bool) {
	return circleCrossing(ray, 0, rl)
}

// circleCrossing finds the smallest t > minT at which the ray crosses
// the range-limit circle.
func circleCrossing(ray geom.Ray, minT float64, rl RangeLimit) (float64, bool) {
	dir := ray.Direction()
	oc := ray.Source.Sub(rl.Center)
	a := dir.Dot(dir)
	b := 2 * oc.Dot(dir)
	c := oc.Dot(oc) - rl.Radius*rl.Radius
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, false
	}
	sqrtDisc := math.Sqrt(disc)
	t1 := (-b - sqrtDisc) / (2 * a)
	t2 := (-b + sqrtDisc) / (2 * a)
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	if t1 > minT {
		return t1, true
	}
	if t2 > minT {
		return t2, true
	}
	return 0, false
}
