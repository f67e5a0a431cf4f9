// Package graph implements the graph domain model: vertices, edges,
// captions and the graph that owns them.
//
// # Overview
//
// A [Graph] owns three observable lists, [Graph.Vertices], [Graph.Edges]
// and [Graph.Captions]. Every field of every element is an
// [observable.Property], and every change anywhere below the graph reaches
// the graph's subscribers as a single [observable.Event]:
//
//	g := graph.New("K2", graph.Rules{Loops: true, MultipleEdges: true, Cycles: true}, nil)
//	g.Subscribe(func(ev observable.Event) { fmt.Println("changed") })
//	a := g.AddVertex(0, 0)
//	b := g.AddVertex(100, 0)
//	g.Connect(a, b)
//
// # Rules
//
// The four [Rules] flags are fixed when the graph is created. An edge that
// would break one of them is rejected by the edge list: it is silently not
// added, and [Graph.Connect] returns nil.
//
// # Vertex Arena
//
// Edges do not point at vertices. Each vertex that joins a graph receives a
// [Ref], a handle into the graph's vertex arena, and edges store the refs of
// their endpoints. Removing a vertex removes its arena entry and every edge
// whose endpoint no longer resolves, in one coalesced notification.
//
// # Edge Geometry
//
// Every edge has a handle point. When the handle lies on the straight line
// between the endpoints (within [settings.Geometry.SnapMarginRatio] of the
// edge length) the edge is linear; otherwise it is drawn as the circular arc
// through both endpoints and the handle. Loops are always arcs. Moving an
// endpoint of a curved edge moves the handle along, keeping its angle and
// relative distance to the edge's midpoint.
//
// The model is not safe for concurrent use.
package graph
