package analysis

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/matzehuels/visigraph/pkg/graph"
)

// ErrNegativeCycle is returned by distance metrics when edge weights form a
// negative cycle, which leaves shortest paths undefined.
var ErrNegativeCycle = errors.New("graph has a negative cycle")

// weightedView builds a gonum graph over g's vertices, numbered by their
// position in g.Vertices. Parallel edges collapse to the lightest one and
// loops are dropped. Undirected edges become a pair of arcs. When weighted
// is false every edge weighs 1.
func weightedView(g *graph.Graph, weighted bool) *simple.WeightedDirectedGraph {
	wg := simple.NewWeightedDirectedGraph(0, math.Inf(1))
	ids := make(map[*graph.Vertex]int64, g.Vertices.Len())
	for i, v := range g.Vertices.Items() {
		ids[v] = int64(i)
		wg.AddNode(simple.Node(i))
	}

	set := func(from, to int64, w float64) {
		if old := wg.WeightedEdge(from, to); old != nil && old.Weight() <= w {
			return
		}
		wg.SetWeightedEdge(wg.NewWeightedEdge(simple.Node(from), simple.Node(to), w))
	}
	for _, e := range g.Edges.Items() {
		if e.IsLoop() {
			continue
		}
		w := 1.0
		if weighted {
			w = e.Weight.Get()
		}
		from, to := ids[e.From()], ids[e.To()]
		set(from, to, w)
		if !e.Directed {
			set(to, from, w)
		}
	}
	return wg
}

// eccentricities returns, per vertex in graph order, the largest shortest
// path distance to any other vertex. Unreachable vertices give +Inf.
func eccentricities(g *graph.Graph, weighted bool) ([]float64, error) {
	n := g.Vertices.Len()
	paths, ok := path.FloydWarshall(weightedView(g, weighted))
	if !ok {
		return nil, ErrNegativeCycle
	}
	out := make([]float64, n)
	for i := range n {
		for j := range n {
			if i != j {
				out[i] = max(out[i], paths.Weight(int64(i), int64(j)))
			}
		}
	}
	return out, nil
}

// Diameter returns the greatest distance between any two vertices, +Inf
// when some vertex cannot reach another, and 0 for an empty graph.
func Diameter(g *graph.Graph, weighted bool) (float64, error) {
	ecc, err := eccentricities(g, weighted)
	if err != nil {
		return 0, err
	}
	d := 0.0
	for _, e := range ecc {
		d = max(d, e)
	}
	return d, nil
}

// Radius returns the smallest eccentricity over all vertices, and 0 for an
// empty graph.
func Radius(g *graph.Graph, weighted bool) (float64, error) {
	ecc, err := eccentricities(g, weighted)
	if err != nil || len(ecc) == 0 {
		return 0, err
	}
	r := math.Inf(1)
	for _, e := range ecc {
		r = min(r, e)
	}
	return r, nil
}

// Degree returns the number of edge ends at v. A loop counts once.
func Degree(g *graph.Graph, v *graph.Vertex) int {
	return len(g.EdgesOf(v))
}

// AverageDegree returns the mean degree of the selected vertices, or of all
// vertices when none is selected. Edges count toward both endpoints that
// are part of the set. It returns 0 for an empty graph.
func AverageDegree(g *graph.Graph) float64 {
	set := g.SelectedVertices()
	if len(set) == 0 {
		set = g.Vertices.Items()
	}
	if len(set) == 0 {
		return 0
	}
	total := 0
	for _, v := range set {
		total += Degree(g, v)
	}
	return float64(total) / float64(len(set))
}

// IsCyclic reports whether g contains a cycle. A loop is a cycle. In a
// directed graph a cycle is a strong component with more than one vertex;
// otherwise a breadth-first search looks for a vertex reached twice.
func IsCyclic(g *graph.Graph) bool {
	if g.Edges.Len() == 0 || !g.Rules().Cycles {
		return false
	}
	for _, e := range g.Edges.Items() {
		if e.IsLoop() {
			return true
		}
	}
	if g.Rules().DirectedEdges {
		for _, c := range StronglyConnectedComponents(g) {
			if len(c) > 1 {
				return true
			}
		}
		return false
	}

	unvisited := make(map[*graph.Vertex]bool, g.Vertices.Len())
	for _, v := range g.Vertices.Items() {
		unvisited[v] = true
	}
	usedEdges := make(map[*graph.Edge]bool)
	for _, start := range g.Vertices.Items() {
		if !unvisited[start] {
			continue
		}
		queue := []*graph.Vertex{start}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			if !unvisited[v] {
				return true
			}
			delete(unvisited, v)
			for _, e := range g.EdgesOf(v) {
				if usedEdges[e] {
					continue
				}
				usedEdges[e] = true
				next := e.To()
				if next == v {
					next = e.From()
				}
				queue = append(queue, next)
			}
		}
	}
	return false
}

// IsEulerian reports whether g is connected and every vertex has even
// degree.
func IsEulerian(g *graph.Graph) bool {
	for _, v := range g.Vertices.Items() {
		if Degree(g, v)%2 == 1 {
			return false
		}
	}
	return IsConnected(g)
}
