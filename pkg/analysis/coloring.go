package analysis

import "github.com/matzehuels/visigraph/pkg/graph"

// Uncolored is the vertex color index meaning "no color".
const Uncolored = -1

// TwoColor tries to color every vertex with index 0 or 1 so that adjacent
// vertices differ. It reports whether that succeeded; on failure every
// vertex is left uncolored. The graph emits a single event.
func TwoColor(g *graph.Graph) bool {
	if g.Vertices.Len() == 0 {
		return true
	}

	side := make(map[*graph.Vertex]int, g.Vertices.Len())
	ok := true
search:
	for _, start := range g.Vertices.Items() {
		if _, seen := side[start]; seen {
			continue
		}
		side[start] = 0
		queue := []*graph.Vertex{start}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			for _, e := range g.EdgesOf(v) {
				if e.IsLoop() {
					ok = false
					break search
				}
				w := e.To()
				if w == v {
					w = e.From()
				}
				s, seen := side[w]
				switch {
				case !seen:
					side[w] = 1 - side[v]
					queue = append(queue, w)
				case s == side[v]:
					ok = false
					break search
				}
			}
		}
	}

	g.Batch(func() {
		for _, v := range g.Vertices.Items() {
			if ok {
				v.Color.Set(side[v])
			} else {
				v.Color.Set(Uncolored)
			}
		}
	})
	return ok
}

// ColorComponents sets each vertex's color index to the index of its weakly
// connected component and returns the number of components.
func ColorComponents(g *graph.Graph) int {
	components := WeaklyConnectedComponents(g)
	g.Batch(func() {
		for i, c := range components {
			for _, v := range c {
				v.Color.Set(i)
			}
		}
	})
	return len(components)
}
