// Package analysis answers structural and geometric questions about a
// [graph.Graph]: how many edges cross, how the vertices split into weakly
// or strongly connected components, and a handful of derived metrics.
//
// # Crossings
//
// [Crossings] dispatches on the shape of both edges. Straight edges use
// segment intersection, curved edges use their arcs. Edges sharing an
// endpoint never cross; meeting at the shared vertex is not a crossing.
// [CountCrossings] considers the selected edges, or every edge when fewer
// than two are selected, and sums all pairs:
//
//	n := analysis.CountCrossings(g)
//
// # Connectivity
//
// [WeaklyConnectedComponents] ignores edge direction and is backed by a
// union-find forest. [StronglyConnectedComponents] runs Tarjan's algorithm
// over outgoing edges; for graphs without directed edges it falls back to
// weak connectivity, since both notions coincide there.
//
// Components are returned in the order their first vertex appears in
// g.Vertices, and the members of a component keep that order too, so two
// runs over an unchanged graph produce identical output.
//
// # Metrics
//
// [Diameter] and [Radius] are computed from all-pairs shortest paths over a
// gonum view of the graph. [AverageDegree], [IsCyclic], [IsConnected] and
// [IsEulerian] are cheap traversals. [TwoColor] and [ColorComponents]
// write their result into the vertices' color indices.
package analysis
