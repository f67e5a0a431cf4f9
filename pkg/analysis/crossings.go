package analysis

import (
	"github.com/matzehuels/visigraph/pkg/geometry"
	"github.com/matzehuels/visigraph/pkg/graph"
)

// Crossings returns the points where e0 and e1 cross. Adjacent edges never
// cross. The result does not depend on the argument order.
func Crossings(e0, e1 *graph.Edge) []geometry.Point {
	if e0.IsAdjacent(e1) {
		return nil
	}
	tolerance := e0.Graph().Settings().Geometry.CloseDistance
	switch {
	case e0.IsLinear() && e1.IsLinear():
		return geometry.LineLineCrossings(e0.Line(), e1.Line())
	case e0.IsLinear():
		return geometry.LineArcCrossings(e0.Line(), e1.Arc(), tolerance)
	case e1.IsLinear():
		return geometry.LineArcCrossings(e1.Line(), e0.Arc(), tolerance)
	default:
		return geometry.ArcArcCrossings(e0.Arc(), e1.Arc())
	}
}

// CrossingEdges returns the edges crossings are counted over: the selected
// edges, or all edges when fewer than two are selected.
func CrossingEdges(g *graph.Graph) []*graph.Edge {
	edges := g.SelectedEdges()
	if len(edges) < 2 {
		edges = g.Edges.Items()
	}
	return edges
}

// CrossingPoints returns every crossing between pairs of [CrossingEdges].
// A pair meeting twice contributes two points.
func CrossingPoints(g *graph.Graph) []geometry.Point {
	edges := CrossingEdges(g)
	var out []geometry.Point
	for i := range edges {
		for j := i + 1; j < len(edges); j++ {
			out = append(out, Crossings(edges[i], edges[j])...)
		}
	}
	return out
}

// CountCrossings returns the number of crossing points between pairs of
// [CrossingEdges].
func CountCrossings(g *graph.Graph) int {
	return len(CrossingPoints(g))
}
