package layout

import (
	"math"

	"github.com/matzehuels/visigraph/pkg/geometry"
	"github.com/matzehuels/visigraph/pkg/graph"
)

// Grid arranges the targets row by row in a grid of round(sqrt(n)) rows,
// centered on the middle of their bounding box.
func Grid(g *graph.Graph) bool {
	t, ok := Select(g)
	if !ok {
		return false
	}
	n := len(t.Vertices)
	rows := int(math.Round(math.Sqrt(float64(n))))
	cols := int(math.Ceil(float64(n) / float64(rows)))
	spacing := g.Settings().Arrange.GridSpacing

	lo, hi := t.bounds()
	center := geometry.Midpoint(lo, hi)
	origin := center.Sub(geometry.Pt(float64(cols-1)*spacing/2, float64(rows-1)*spacing/2))

	place(g, t.Vertices, func(i int) geometry.Point {
		return origin.Add(geometry.Pt(float64(i%cols)*spacing, float64(i/cols)*spacing))
	})
	return true
}

// Circle places the targets clockwise around their mean position, starting
// at the top. The radius grows with the number of vertices.
func Circle(g *graph.Graph) bool {
	t, ok := Select(g)
	if !ok {
		return false
	}
	n := float64(len(t.Vertices))
	center := t.centroid(false)
	radius := g.Settings().Arrange.CircleRadiusMultiplier * n
	step := 2 * math.Pi / n

	place(g, t.Vertices, func(i int) geometry.Point {
		a := step*float64(i) - math.Pi/2
		return center.Add(geometry.Pt(radius*math.Cos(a), radius*math.Sin(a)))
	})
	return true
}

// Tree lays the graph out in breadth-first levels starting from the target
// vertices. Vertices the search does not reach share one trailing level.
// Levels are centered on x = 0 and start at y = 0.
func Tree(g *graph.Graph) bool {
	t, ok := Select(g)
	if !ok {
		return false
	}
	spacing := g.Settings().Arrange.TreeSpacing

	placed := make(map[*graph.Vertex]bool, g.Vertices.Len())
	levels := [][]*graph.Vertex{nil}
	for _, v := range t.Vertices {
		levels[0] = append(levels[0], v)
		placed[v] = true
	}
	for {
		var next []*graph.Vertex
		for _, v := range levels[len(levels)-1] {
			for _, n := range g.Neighbors(v) {
				if !placed[n] {
					placed[n] = true
					next = append(next, n)
				}
			}
		}
		if len(next) == 0 {
			break
		}
		levels = append(levels, next)
	}
	var rest []*graph.Vertex
	for _, v := range g.Vertices.Items() {
		if !placed[v] {
			rest = append(rest, v)
		}
	}
	if len(rest) > 0 {
		levels = append(levels, rest)
	}

	width := 0.0
	for _, level := range levels {
		width = max(width, float64(len(level))*spacing)
	}

	batch(g, g.Vertices.Items(), func() {
		for row, level := range levels {
			col := width / float64(len(level))
			for i, v := range level {
				v.SetPosition(geometry.Pt((float64(i)+0.5)*col-width/2, float64(row)*spacing))
			}
		}
	})
	return true
}
