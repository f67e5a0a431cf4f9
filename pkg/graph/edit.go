package graph

import (
	"github.com/matzehuels/visigraph/pkg/errors"
)

// editTargets returns the selected edges, or every edge when none is
// selected. Loops are left out.
func (g *Graph) editTargets() []*Edge {
	edges := g.SelectedEdges()
	if len(edges) == 0 {
		edges = g.Edges.Items()
	}
	out := edges[:0]
	for _, e := range edges {
		if !e.IsLoop() {
			out = append(out, e)
		}
	}
	return out
}

// ReverseEdges swaps the endpoints of the selected edges, or of every edge
// when none is selected. Reversed edges keep their id, handle and other
// properties. An edge whose reversal the rules reject stays as it was.
// It returns the number of reversed edges.
func (g *Graph) ReverseEdges() (int, error) {
	if !g.rules.DirectedEdges {
		return 0, errors.New(errors.ErrCodeUnsupported, "cannot reverse undirected edges")
	}
	g.Suspend()
	defer g.Resume()

	n := 0
	for _, e := range g.editTargets() {
		r := g.newEdge(e.Directed, e.To(), e.From())
		r.copyFrom(e)
		r.ID.Set(e.ID.Get())
		g.Edges.Remove(e)
		if !g.Edges.Add(r) {
			g.Edges.Add(e)
			continue
		}
		n++
	}
	return n, nil
}

// SubdivideEdges splits the selected edges, or every edge when none is
// selected, at their handle. Each split edge is replaced by a new vertex
// and two edges that share its weight equally. It returns the number of
// vertices added.
func (g *Graph) SubdivideEdges() int {
	g.Suspend()
	defer g.Resume()

	n := 0
	for _, e := range g.editTargets() {
		from, to := e.From(), e.To()
		h := e.Handle.Get()
		mid := g.NewVertex(h.X, h.Y)
		mid.Color.Set(e.Color.Get())
		mid.Selected.Set(e.Selected.Get())
		g.Vertices.Add(mid)
		g.Edges.Remove(e)
		for i, ends := range [][2]*Vertex{{from, mid}, {mid, to}} {
			half := g.newEdge(e.Directed, ends[0], ends[1])
			half.Label.Set(e.Label.Get() + [...]string{" (1)", " (2)"}[i])
			half.Color.Set(e.Color.Get())
			half.Weight.Set(e.Weight.Get() / 2)
			half.Thickness.Set(e.Thickness.Get())
			half.Selected.Set(e.Selected.Get())
			g.Edges.Add(half)
		}
		n++
	}
	return n
}
