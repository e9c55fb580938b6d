package circuit_test

import (
	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/virtuallab/internal/circuit"
)

func connections(g *circuit.Graph) []int {
	var out []int
	for _, c := range g.Components() {
		out = append(out, c.Connections)
	}
	return out
}

func centre(g *circuit.Graph, id int) mgl64.Vec2 {
	c, ok := g.Component(id)
	Expect(ok).To(BeTrue())
	return c.Region.Centre()
}

func draw(g *circuit.Graph, from, to mgl64.Vec2) circuit.Wire {
	Expect(g.BeginWire(from)).To(Succeed())
	g.UpdateWire(from.Add(to).Mul(0.5))
	w, ok := g.EndWire(to)
	Expect(ok).To(BeTrue())
	return w
}

var _ = Describe("Graph", func() {
	var g *circuit.Graph

	BeforeEach(func() {
		g = circuit.Default()
	})

	It("starts open with ten components and eleven neighbour pairs", func() {
		Expect(g.Components()).To(HaveLen(10))
		Expect(g.Edges()).To(HaveLen(11))
		Expect(g.IsClosed()).To(BeFalse())
		Expect(g.Missing()).To(HaveLen(10))
	})

	It("credits a wire from a component to its first neighbour", func() {
		draw(g, centre(g, circuit.Supply), centre(g, circuit.NodeTopLeft))

		want := make([]int, 10)
		want[circuit.Supply] = 1
		want[circuit.NodeTopLeft] = 1
		Expect(connections(g)).To(Equal(want))
		Expect(g.Wires()).To(HaveLen(1))
	})

	It("keeps a wire that touches no region without crediting it", func() {
		draw(g, mgl64.Vec2{1000, 1000}, mgl64.Vec2{2000, 2000})

		Expect(connections(g)).To(Equal(make([]int, 10)))
		Expect(g.Wires()).To(HaveLen(1))
	})

	It("does not credit a wire between components that are not neighbours", func() {
		draw(g, centre(g, circuit.Supply), centre(g, circuit.Bulb))
		Expect(connections(g)).To(Equal(make([]int, 10)))
	})

	It("credits a wire drawn in either direction", func() {
		draw(g, centre(g, circuit.NodeTopLeft), centre(g, circuit.Supply))
		c, _ := g.Component(circuit.Supply)
		Expect(c.Connections).To(Equal(1))
	})

	It("keeps a single live preview", func() {
		Expect(g.BeginWire(mgl64.Vec2{0, 0})).To(Succeed())
		g.UpdateWire(mgl64.Vec2{1, 1})
		g.UpdateWire(mgl64.Vec2{2, 2})

		w, ok := g.Preview()
		Expect(ok).To(BeTrue())
		Expect(w.To).To(Equal(mgl64.Vec2{2, 2}))

		g.EndWire(mgl64.Vec2{3, 3})
		_, ok = g.Preview()
		Expect(ok).To(BeFalse())
	})

	It("ignores EndWire without BeginWire", func() {
		_, ok := g.EndWire(mgl64.Vec2{0, 0})
		Expect(ok).To(BeFalse())
		Expect(g.Wires()).To(BeEmpty())
	})

	Context("with every neighbour pair wired", func() {
		BeforeEach(func() {
			for _, e := range g.Edges() {
				draw(g, centre(g, e[0]), centre(g, e[1]))
			}
		})

		It("is closed", func() {
			Expect(g.IsClosed()).To(BeTrue())
			Expect(g.Missing()).To(BeEmpty())
		})

		It("reopens when any single wire is missing", func() {
			edges := g.Edges()
			for skip := range edges {
				h := circuit.Default()
				for i, e := range edges {
					if i != skip {
						h.Register(h.WireFor(e[0], e[1]))
					}
				}
				Expect(h.IsClosed()).To(BeFalse(), "without %v", edges[skip])
			}
		})

		It("clears back to an open circuit", func() {
			g.Lock()
			g.Clear()

			Expect(g.IsClosed()).To(BeFalse())
			Expect(g.Wires()).To(BeEmpty())
			Expect(connections(g)).To(Equal(make([]int, 10)))
			Expect(g.BeginWire(mgl64.Vec2{0, 0})).To(Succeed())
		})
	})

	It("refuses new wires once locked", func() {
		g.Lock()
		Expect(g.BeginWire(mgl64.Vec2{0, 0})).To(MatchError(circuit.ErrLocked))
	})

	It("hands out copies of its components", func() {
		cs := g.Components()
		cs[0].Connections = 99
		cs[0].Neighbors[0] = 7

		c, _ := g.Component(0)
		Expect(c.Connections).To(Equal(0))
		Expect(c.Neighbors[0]).To(Equal(circuit.NodeTopLeft))
	})
})

var _ = Describe("New", func() {
	square := func(x float64) circuit.Rect {
		return circuit.Rect{Min: mgl64.Vec2{x, 0}, Max: mgl64.Vec2{x + 10, 10}}
	}

	It("credits only the first neighbour when regions overlap", func() {
		g, err := circuit.New([]circuit.Component{
			{ID: 0, Name: "a", Region: square(0), Neighbors: []int{1, 2}, Required: 1},
			{ID: 1, Name: "b", Region: square(100), Neighbors: []int{0}, Required: 1},
			{ID: 2, Name: "c", Region: square(100), Neighbors: []int{0}, Required: 1},
		})
		Expect(err).NotTo(HaveOccurred())

		n := g.Register(circuit.Wire{From: mgl64.Vec2{5, 5}, To: mgl64.Vec2{105, 5}})
		Expect(n).To(Equal(1))
		Expect(connections(g)).To(Equal([]int{1, 1, 0}))
	})

	It("rejects neighbours outside the list", func() {
		_, err := circuit.New([]circuit.Component{
			{ID: 0, Name: "a", Neighbors: []int{3}},
		})
		Expect(err).To(MatchError(circuit.ErrUnknownComponent))
	})

	It("rejects one-sided neighbour relations", func() {
		_, err := circuit.New([]circuit.Component{
			{ID: 0, Name: "a", Neighbors: []int{1}},
			{ID: 1, Name: "b"},
		})
		Expect(err).To(MatchError(circuit.ErrAsymmetric))
	})

	It("rejects ids that do not match their position", func() {
		_, err := circuit.New([]circuit.Component{{ID: 4, Name: "a"}})
		Expect(err).To(MatchError(circuit.ErrComponentID))
	})
})
