package circuit

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrLocked indicates wiring was attempted after the circuit was verified.
	ErrLocked = errors.New("circuit: wiring locked after verification")

	// ErrUnknownComponent indicates a neighbour id outside the component list.
	ErrUnknownComponent = errors.New("circuit: unknown component")

	// ErrAsymmetric indicates a neighbour relation declared on one side only.
	ErrAsymmetric = errors.New("circuit: neighbour relation is not symmetric")

	// ErrComponentID indicates a component whose ID is not its list index.
	ErrComponentID = errors.New("circuit: component id does not match position")
)

// Rect is an axis-aligned catchment area. Both corners are inclusive.
type Rect struct {
	Min mgl64.Vec2
	Max mgl64.Vec2
}

func (r Rect) Contains(p mgl64.Vec2) bool {
	return p.X() >= r.Min.X() && p.X() <= r.Max.X() &&
		p.Y() >= r.Min.Y() && p.Y() <= r.Max.Y()
}

func (r Rect) Centre() mgl64.Vec2 {
	return r.Min.Add(r.Max).Mul(0.5)
}

// Component is one node of the wiring graph.
type Component struct {
	ID          int
	Name        string
	Region      Rect
	Neighbors   []int
	Connections int
	Required    int
}

func (c Component) Satisfied() bool { return c.Connections >= c.Required }

// Wire is a drawn line segment in scene coordinates.
type Wire struct {
	From mgl64.Vec2
	To   mgl64.Vec2
}

// Graph holds the fixed components and the wires drawn between them.
type Graph struct {
	comps   []Component
	wires   []Wire
	begin   mgl64.Vec2
	drawing bool
	preview *Wire
	locked  bool
}

// New validates the component list and returns an empty graph over it.
func New(components []Component) (*Graph, error) {
	comps := make([]Component, len(components))
	for i, c := range components {
		if c.ID != i {
			return nil, fmt.Errorf("%w: %q has id %d at %d", ErrComponentID, c.Name, c.ID, i)
		}
		c.Neighbors = append([]int(nil), c.Neighbors...)
		c.Connections = 0
		comps[i] = c
	}
	for _, c := range comps {
		for _, n := range c.Neighbors {
			if n < 0 || n >= len(comps) {
				return nil, fmt.Errorf("%w: %q lists %d", ErrUnknownComponent, c.Name, n)
			}
			if !contains(comps[n].Neighbors, c.ID) {
				return nil, fmt.Errorf("%w: %q -> %q", ErrAsymmetric, c.Name, comps[n].Name)
			}
		}
	}
	return &Graph{comps: comps}, nil
}

// BeginWire records the start of a wire.
func (g *Graph) BeginWire(p mgl64.Vec2) error {
	if g.locked {
		return ErrLocked
	}
	g.begin = p
	g.drawing = true
	g.preview = nil
	return nil
}

// UpdateWire replaces the live preview with a segment from the recorded
// start to p.
func (g *Graph) UpdateWire(p mgl64.Vec2) {
	if !g.drawing {
		return
	}
	g.preview = &Wire{From: g.begin, To: p}
}

// EndWire persists the segment from the recorded start to p and credits
// any connection it makes. It reports false when no wire was in progress.
func (g *Graph) EndWire(p mgl64.Vec2) (Wire, bool) {
	if !g.drawing {
		return Wire{}, false
	}
	w := Wire{From: g.begin, To: p}
	g.drawing = false
	g.preview = nil
	g.Register(w)
	return w, true
}

// Register stores w and credits connections. For every component whose
// region holds w.From, the first declared neighbour whose region holds w.To
// is matched and both ends gain one connection. It returns the number of
// matches.
func (g *Graph) Register(w Wire) int {
	g.wires = append(g.wires, w)
	matched := 0
	for i := range g.comps {
		src := &g.comps[i]
		if !src.Region.Contains(w.From) {
			continue
		}
		for _, n := range src.Neighbors {
			dst := &g.comps[n]
			if dst.Region.Contains(w.To) {
				src.Connections++
				dst.Connections++
				matched++
				break
			}
		}
	}
	return matched
}

func (g *Graph) Preview() (Wire, bool) {
	if g.preview == nil {
		return Wire{}, false
	}
	return *g.preview, true
}

func (g *Graph) Drawing() bool { return g.drawing }

func (g *Graph) Wires() []Wire {
	return append([]Wire(nil), g.wires...)
}

// IsClosed reports whether every component has its required connections.
func (g *Graph) IsClosed() bool {
	for _, c := range g.comps {
		if !c.Satisfied() {
			return false
		}
	}
	return true
}

// Missing returns the ids of components short of their required connections.
func (g *Graph) Missing() []int {
	var ids []int
	for _, c := range g.comps {
		if !c.Satisfied() {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// Clear removes every wire and preview, zeroes the connection counts and
// permits drawing again.
func (g *Graph) Clear() {
	g.wires = nil
	g.preview = nil
	g.drawing = false
	g.locked = false
	for i := range g.comps {
		g.comps[i].Connections = 0
	}
}

// Lock stops further wiring. A verified circuit is locked.
func (g *Graph) Lock() {
	g.locked = true
	g.drawing = false
	g.preview = nil
}

func (g *Graph) Locked() bool { return g.locked }

// Components returns a copy of the component records.
func (g *Graph) Components() []Component {
	out := make([]Component, len(g.comps))
	for i, c := range g.comps {
		c.Neighbors = append([]int(nil), c.Neighbors...)
		out[i] = c
	}
	return out
}

func (g *Graph) Component(id int) (Component, bool) {
	if id < 0 || id >= len(g.comps) {
		return Component{}, false
	}
	c := g.comps[id]
	c.Neighbors = append([]int(nil), c.Neighbors...)
	return c, true
}

// Edges returns each declared neighbour pair once, lower id first.
func (g *Graph) Edges() [][2]int {
	var edges [][2]int
	for _, c := range g.comps {
		for _, n := range c.Neighbors {
			if c.ID < n {
				edges = append(edges, [2]int{c.ID, n})
			}
		}
	}
	return edges
}

// WireFor returns a wire between the centres of two components.
func (g *Graph) WireFor(from, to int) Wire {
	return Wire{From: g.comps[from].Region.Centre(), To: g.comps[to].Region.Centre()}
}

func contains(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
