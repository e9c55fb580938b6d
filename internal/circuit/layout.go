package circuit

import "github.com/go-gl/mathgl/mgl64"

// Component ids of the LED practical's circuit.
const (
	Supply = iota
	Bulb
	Voltmeter
	Rheostat
	NodeTopLeft
	NodeTopRight
	NodeMidLeft
	NodeMidRight
	NodeBottomLeft
	NodeBottomRight
)

func rect(x0, y0, x1, y1 float64) Rect {
	return Rect{Min: mgl64.Vec2{x0, y0}, Max: mgl64.Vec2{x1, y1}}
}

// Layout returns the ten components of the LED practical. The supply feeds
// the rheostat and the LED in series; the voltmeter sits across the LED
// through the two mid junctions, which each take three wires.
func Layout() []Component {
	return []Component{
		{ID: Supply, Name: "supply", Region: rect(-1, -301, 184, -197), Neighbors: []int{NodeTopLeft, NodeTopRight}, Required: 2},
		{ID: Bulb, Name: "led", Region: rect(49, -41, 137, 47), Neighbors: []int{NodeMidLeft, NodeMidRight}, Required: 2},
		{ID: Voltmeter, Name: "voltmeter", Region: rect(50, 100, 137, 201), Neighbors: []int{NodeBottomLeft, NodeBottomRight}, Required: 2},
		{ID: Rheostat, Name: "rheostat", Region: rect(-200, -170, -1, -84), Neighbors: []int{NodeTopLeft, NodeMidLeft}, Required: 2},
		{ID: NodeTopLeft, Name: "node1", Region: rect(-131, -251, -119, -239), Neighbors: []int{Supply, Rheostat}, Required: 2},
		{ID: NodeTopRight, Name: "node2", Region: rect(299, -251, 311, -239), Neighbors: []int{Supply, NodeMidRight}, Required: 2},
		{ID: NodeMidLeft, Name: "node3", Region: rect(-131, -1, -119, 11), Neighbors: []int{Rheostat, Bulb, NodeBottomLeft}, Required: 3},
		{ID: NodeMidRight, Name: "node4", Region: rect(299, -1, 311, 11), Neighbors: []int{NodeTopRight, Bulb, NodeBottomRight}, Required: 3},
		{ID: NodeBottomLeft, Name: "node5", Region: rect(-131, 149, -119, 161), Neighbors: []int{NodeMidLeft, Voltmeter}, Required: 2},
		{ID: NodeBottomRight, Name: "node6", Region: rect(299, 149, 311, 161), Neighbors: []int{NodeMidRight, Voltmeter}, Required: 2},
	}
}

// Default returns an empty graph over Layout.
func Default() *Graph {
	g, err := New(Layout())
	if err != nil {
		panic(err)
	}
	return g
}
