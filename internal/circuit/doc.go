// Package circuit models the LED practical's breadboard: a fixed set of
// components with declared neighbours, wires drawn between them by the user,
// and the lamp the circuit lights.
//
// A wire earns credit when it starts inside a component's region and ends
// inside one of that component's neighbours. Neighbours are tried in the
// order they are declared and only the first match is credited. The circuit
// is closed once every component holds its required number of connections.
//
// # Example
//
//	g := circuit.Default()
//	for _, e := range g.Edges() {
//		g.Register(g.WireFor(e[0], e[1]))
//	}
//	g.IsClosed() // true
package circuit
