package layout

import (
	"cmp"
	"slices"

	"github.com/matzehuels/visigraph/pkg/geometry"
	"github.com/matzehuels/visigraph/pkg/graph"
)

// =============================================================================
// Alignment
// =============================================================================

// AlignHorizontal moves the targets onto the horizontal line through their
// mean y.
func AlignHorizontal(g *graph.Graph) bool {
	t, ok := Select(g)
	if !ok {
		return false
	}
	y := t.centroid(false).Y
	place(g, t.Vertices, func(i int) geometry.Point { return geometry.Pt(t.Vertices[i].X.Get(), y) })
	return true
}

// AlignVertical moves the targets onto the vertical line through their
// mean x.
func AlignVertical(g *graph.Graph) bool {
	t, ok := Select(g)
	if !ok {
		return false
	}
	x := t.centroid(false).X
	place(g, t.Vertices, func(i int) geometry.Point { return geometry.Pt(x, t.Vertices[i].Y.Get()) })
	return true
}

// DistributeHorizontal spaces the targets evenly between the leftmost and
// the rightmost one, keeping their left-to-right order. It needs at least
// two targets.
func DistributeHorizontal(g *graph.Graph) bool {
	return distribute(g, func(p geometry.Point) float64 { return p.X }, func(p geometry.Point, x float64) geometry.Point {
		return geometry.Pt(x, p.Y)
	})
}

// DistributeVertical spaces the targets evenly between the topmost and the
// bottommost one. It needs at least two targets.
func DistributeVertical(g *graph.Graph) bool {
	return distribute(g, func(p geometry.Point) float64 { return p.Y }, func(p geometry.Point, y float64) geometry.Point {
		return geometry.Pt(p.X, y)
	})
}

func distribute(g *graph.Graph, axis func(geometry.Point) float64, with func(geometry.Point, float64) geometry.Point) bool {
	t, ok := Select(g)
	if !ok || len(t.Vertices) < 2 {
		return false
	}
	sorted := slices.Clone(t.Vertices)
	slices.SortStableFunc(sorted, func(a, b *graph.Vertex) int {
		return cmp.Compare(axis(a.Position()), axis(b.Position()))
	})
	first := axis(sorted[0].Position())
	spacing := (axis(sorted[len(sorted)-1].Position()) - first) / float64(len(sorted)-1)
	place(g, sorted, func(i int) geometry.Point {
		return with(sorted[i].Position(), first+float64(i)*spacing)
	})
	return true
}

// =============================================================================
// Rigid transforms
// =============================================================================

// FlipHorizontal mirrors the targets and their edge handles across the
// vertical line through their centroid.
func FlipHorizontal(g *graph.Graph) bool {
	t, ok := Select(g)
	if !ok {
		return false
	}
	c := t.centroid(true)
	t.apply(g, func(p geometry.Point) geometry.Point { return geometry.Pt(2*c.X-p.X, p.Y) })
	return true
}

// FlipVertical mirrors the targets and their edge handles across the
// horizontal line through their centroid.
func FlipVertical(g *graph.Graph) bool {
	t, ok := Select(g)
	if !ok {
		return false
	}
	c := t.centroid(true)
	t.apply(g, func(p geometry.Point) geometry.Point { return geometry.Pt(p.X, 2*c.Y-p.Y) })
	return true
}

// RotateLeft turns the targets a quarter turn counterclockwise on screen
// around their centroid.
func RotateLeft(g *graph.Graph) bool {
	t, ok := Select(g)
	if !ok {
		return false
	}
	c := t.centroid(true)
	t.apply(g, func(p geometry.Point) geometry.Point {
		return geometry.Pt(c.X-(c.Y-p.Y), c.Y+(c.X-p.X))
	})
	return true
}

// RotateRight turns the targets a quarter turn clockwise on screen around
// their centroid.
func RotateRight(g *graph.Graph) bool {
	t, ok := Select(g)
	if !ok {
		return false
	}
	c := t.centroid(true)
	t.apply(g, func(p geometry.Point) geometry.Point {
		return geometry.Pt(c.X+(c.Y-p.Y), c.Y-(c.X-p.X))
	})
	return true
}

// Scale multiplies the distance of every target to the vertex centroid by
// factor. Handles of target edges scale along.
func Scale(g *graph.Graph, factor float64) bool {
	t, ok := Select(g)
	if !ok {
		return false
	}
	c := t.centroid(false)
	t.apply(g, func(p geometry.Point) geometry.Point { return p.Sub(c).Scale(factor).Add(c) })
	return true
}

// Contract scales the targets by the configured contract factor.
func Contract(g *graph.Graph) bool {
	return Scale(g, g.Settings().Arrange.ContractFactor)
}

// Expand scales the targets by the configured expand factor.
func Expand(g *graph.Graph) bool {
	return Scale(g, g.Settings().Arrange.ExpandFactor)
}

// StraightenEdges turns the selected edges, or every edge when none is
// selected, into straight segments.
func StraightenEdges(g *graph.Graph) bool {
	edges := g.SelectedEdges()
	if len(edges) == 0 {
		edges = g.Edges.Items()
	}
	if len(edges) == 0 {
		return false
	}
	g.Batch(func() {
		for _, e := range edges {
			e.Straighten()
		}
	})
	return true
}
