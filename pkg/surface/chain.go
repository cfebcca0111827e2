package surface

import "github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/geom"

// Junction is a shared endpoint between two consecutive surfaces of a
// chain (spec.md §3). Index i is the junction between Surfaces[i-1]
// and Surfaces[i] (wrapping for closed chains); it carries the chain
// and index rather than back-pointers from the surfaces themselves,
// per spec.md §9's re-architecture note ("store chains as arrays of
// surfaces + an auxiliary index; junctions carry chain handle and
// index, not back-pointers").
type Junction struct {
	Chain  *Chain
	Index  int
	Before *Surface
	After  *Surface
	Point  geom.Vec2
}

// Endpoint is a non-shared end of an open chain.
type Endpoint struct {
	Surface *Surface
	Which   EndpointWhich
	Point   geom.Vec2
}

// EndpointWhich names which end of a surface's segment an Endpoint is.
type EndpointWhich int

const (
	Start EndpointWhich = iota
	End
)

// Chain is an ordered sequence of surfaces sharing endpoints; it may
// be open or closed.
type Chain struct {
	ID       string
	Surfaces []*Surface
	Closed   bool
}

// NewChain creates a chain from ordered, endpoint-adjacent surfaces.
func NewChain(id string, surfaces []*Surface, closed bool) *Chain {
	return &Chain{ID: id, Surfaces: surfaces, Closed: closed}
}

// Junctions returns every shared-endpoint junction in the chain, in
// order. For an open chain of n surfaces there are n-1 junctions; for
// a closed chain there are n (the last wraps to the first).
func (c *Chain) Junctions() []Junction {
	n := len(c.Surfaces)
	if n < 2 {
		return nil
	}
	count := n - 1
	if c.Closed {
		count = n
	}
	junctions := make([]Junction, 0, count)
	for i := 0; i < count; i++ {
		before := c.Surfaces[i]
		after := c.Surfaces[(i+1)%n]
		junctions = append(junctions, Junction{
			Chain:  c,
			Index:  i + 1,
			Before: before,
			After:  after,
			Point:  before.Segment.End,
		})
	}
	return junctions
}

// Endpoints returns the two non-shared ends of an open chain. Closed
// chains have none.
func (c *Chain) Endpoints() []Endpoint {
	if c.Closed || len(c.Surfaces) == 0 {
		return nil
	}
	first := c.Surfaces[0]
	last := c.Surfaces[len(c.Surfaces)-1]
	return []Endpoint{
		{Surface: first, Which: Start, Point: first.Segment.Start},
		{Surface: last, Which: End, Point: last.Segment.End},
	}
}

// Blocking reports whether a junction blocks a ray cast toward it
// along ref (spec.md §4.9 item 3): the junction blocks iff its two
// adjacent surfaces lie on opposite sides of ref with respect to the
// incoming ray direction — i.e. the corner at the junction is concave
// toward ref rather than convex away from it. Screen-boundary corner
// junctions are represented with a nil Chain and are always
// non-blocking.
func (j Junction) Blocking(ref geom.Vec2) bool {
	if j.Chain == nil {
		return false
	}
	beforeCross := j.Before.Segment.Direction().Cross(ref)
	afterCross := j.After.Segment.Direction().Cross(ref)
	return (beforeCross > 0 && afterCross < 0) || (beforeCross < 0 && afterCross > 0)
}
