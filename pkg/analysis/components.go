package analysis

import (
	"math/rand/v2"
	"slices"

	"github.com/matzehuels/visigraph/pkg/graph"
)

// Component is a set of vertices in graph order.
type Component []*graph.Vertex

// =============================================================================
// Weak connectivity
// =============================================================================

// node is a union-find forest entry.
type node struct {
	parent *node
	rank   int
	index  int
}

func (n *node) root() *node {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	for n.parent != nil {
		next := n.parent
		n.parent = r
		n = next
	}
	return r
}

func union(a, b *node) {
	ra, rb := a.root(), b.root()
	if ra == rb {
		return
	}
	switch {
	case ra.rank < rb.rank:
		ra.parent = rb
	case ra.rank > rb.rank:
		rb.parent = ra
	case rand.IntN(2) == 0:
		ra.parent = rb
		rb.rank++
	default:
		rb.parent = ra
		ra.rank++
	}
}

// WeaklyConnectedComponents partitions the vertices of g by reachability,
// ignoring edge direction. Loops do not connect anything.
func WeaklyConnectedComponents(g *graph.Graph) []Component {
	vertices := g.Vertices.Items()
	if len(vertices) == 0 {
		return nil
	}

	nodes := make(map[*graph.Vertex]*node, len(vertices))
	for i, v := range vertices {
		nodes[v] = &node{index: i}
	}
	for _, e := range g.Edges.Items() {
		if e.IsLoop() {
			continue
		}
		a, b := nodes[e.From()], nodes[e.To()]
		if a != nil && b != nil {
			union(a, b)
		}
	}

	groups := make(map[*node]int)
	var out []Component
	for _, v := range vertices {
		r := nodes[v].root()
		i, ok := groups[r]
		if !ok {
			i = len(out)
			groups[r] = i
			out = append(out, nil)
		}
		out[i] = append(out[i], v)
	}
	return out
}

// =============================================================================
// Strong connectivity
// =============================================================================

// tarjan holds the per-run state of Tarjan's algorithm.
type tarjan struct {
	g       *graph.Graph
	order   map[*graph.Vertex]int
	index   map[*graph.Vertex]int
	low     map[*graph.Vertex]int
	onStack map[*graph.Vertex]bool
	stack   []*graph.Vertex
	next    int
	out     []Component
}

func (t *tarjan) visit(v *graph.Vertex) {
	t.index[v] = t.next
	t.low[v] = t.next
	t.next++
	t.stack = append(t.stack, v)
	t.onStack[v] = true

	for _, e := range t.g.EdgesFrom(v) {
		w := e.To()
		if _, seen := t.index[w]; !seen {
			t.visit(w)
			t.low[v] = min(t.low[v], t.low[w])
		} else if t.onStack[w] {
			t.low[v] = min(t.low[v], t.index[w])
		}
	}

	if t.low[v] != t.index[v] {
		return
	}
	var c Component
	for {
		w := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		t.onStack[w] = false
		c = append(c, w)
		if w == v {
			break
		}
	}
	t.out = append(t.out, c)
}

// StronglyConnectedComponents partitions the vertices of g into sets of
// mutually reachable vertices following edge direction. In a graph without
// directed edges this is the same as [WeaklyConnectedComponents].
func StronglyConnectedComponents(g *graph.Graph) []Component {
	if !g.Rules().DirectedEdges {
		return WeaklyConnectedComponents(g)
	}

	vertices := g.Vertices.Items()
	t := &tarjan{
		g:       g,
		order:   make(map[*graph.Vertex]int, len(vertices)),
		index:   make(map[*graph.Vertex]int, len(vertices)),
		low:     make(map[*graph.Vertex]int, len(vertices)),
		onStack: make(map[*graph.Vertex]bool, len(vertices)),
	}
	for i, v := range vertices {
		t.order[v] = i
	}
	for _, v := range vertices {
		if _, seen := t.index[v]; !seen {
			t.visit(v)
		}
	}

	byOrder := func(a, b *graph.Vertex) int { return t.order[a] - t.order[b] }
	for _, c := range t.out {
		slices.SortFunc(c, byOrder)
	}
	slices.SortFunc(t.out, func(a, b Component) int { return byOrder(a[0], b[0]) })
	return t.out
}

// IsConnected reports whether g has at most one weakly connected component.
func IsConnected(g *graph.Graph) bool {
	return len(WeaklyConnectedComponents(g)) <= 1
}
