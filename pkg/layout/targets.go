package layout

import (
	"github.com/matzehuels/visigraph/pkg/geometry"
	"github.com/matzehuels/visigraph/pkg/graph"
)

// Targets are the elements a layout operation moves.
type Targets struct {
	Vertices []*graph.Vertex
	Edges    []*graph.Edge
}

// Select returns the targets of g. ok is false when there is nothing to
// move: the graph has no vertices, or the selection holds no vertex.
func Select(g *graph.Graph) (t Targets, ok bool) {
	if g.HasSelection() {
		t = Targets{Vertices: g.SelectedVertices(), Edges: g.SelectedEdges()}
	} else {
		t = Targets{Vertices: g.Vertices.Items(), Edges: g.Edges.Items()}
	}
	return t, len(t.Vertices) > 0
}

// centroid returns the mean vertex position, including the handles of the
// target edges when withHandles is set.
func (t Targets) centroid(withHandles bool) geometry.Point {
	var sum geometry.Point
	n := len(t.Vertices)
	for _, v := range t.Vertices {
		sum = sum.Add(v.Position())
	}
	if withHandles {
		for _, e := range t.Edges {
			sum = sum.Add(e.Handle.Get())
		}
		n += len(t.Edges)
	}
	return sum.Scale(1 / float64(n))
}

// bounds returns the corners of the box around the target vertices.
func (t Targets) bounds() (lo, hi geometry.Point) {
	lo, hi = t.Vertices[0].Position(), t.Vertices[0].Position()
	for _, v := range t.Vertices[1:] {
		p := v.Position()
		lo.X, lo.Y = min(lo.X, p.X), min(lo.Y, p.Y)
		hi.X, hi.Y = max(hi.X, p.X), max(hi.Y, p.Y)
	}
	return lo, hi
}

// apply moves every target vertex and every target edge handle through fn.
// Target edge geometry stays frozen until all moves are done.
func (t Targets) apply(g *graph.Graph, fn func(geometry.Point) geometry.Point) {
	batch(g, t.Vertices, func() {
		for _, e := range t.Edges {
			e.Suspend()
		}
		for _, v := range t.Vertices {
			v.SetPosition(fn(v.Position()))
		}
		for _, e := range t.Edges {
			e.Handle.Set(fn(e.Handle.Get()))
			e.Resume()
		}
	})
}

// place moves the target vertices to the given positions, index by index.
func place(g *graph.Graph, vertices []*graph.Vertex, at func(i int) geometry.Point) {
	batch(g, vertices, func() {
		for i, v := range vertices {
			v.SetPosition(at(i))
		}
	})
}

// batch runs fn with g and every edge touching vertices holding back their
// notifications. g emits one event and each of those edges at most one.
// Edge geometry keeps following the endpoints meanwhile.
func batch(g *graph.Graph, vertices []*graph.Vertex, fn func()) {
	var edges []*graph.Edge
	seen := make(map[*graph.Edge]bool)
	for _, v := range vertices {
		for _, e := range g.EdgesOf(v) {
			if !seen[e] {
				seen[e] = true
				edges = append(edges, e)
			}
		}
	}

	g.Suspend()
	defer g.Resume()
	for _, e := range edges {
		e.Base.Suspend()
	}
	defer func() {
		for _, e := range edges {
			e.Base.Resume()
		}
	}()
	fn()
}
