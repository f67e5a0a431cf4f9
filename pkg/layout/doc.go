// Package layout places and transforms the vertices of a [graph.Graph].
//
// # Targets
//
// Every operation acts on a target set chosen by [Select]: the selected
// vertices (and selected edges, whose handles move along), or the whole
// graph when nothing at all is selected. A selection holding only edges
// or captions is not a request to lay out the whole graph; operations
// return false and leave the graph alone.
//
// # Placement
//
// [Grid], [Circle] and [Tree] compute fresh positions. [Simulation] runs
// a force-directed relaxation one step at a time:
//
//	sim := layout.NewSimulation(g)
//	for sim.Step(1) > g.Settings().Force.Threshold {
//	}
//
// The velocity of every vertex persists across steps, so a driver can stop
// and resume the relaxation at will.
//
// # Transforms
//
// [AlignHorizontal], [DistributeVertical], [FlipHorizontal], [RotateLeft],
// [Scale] and friends move the targets rigidly. Target edges are suspended
// while their endpoints and handles move and are re-derived once at the
// end, so each transform reaches observers as a single event.
package layout
