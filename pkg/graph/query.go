package graph

// Vertex returns the vertex with the given id, or nil.
func (g *Graph) Vertex(id string) *Vertex {
	for _, v := range g.Vertices.Items() {
		if v.ID.Get() == id {
			return v
		}
	}
	return nil
}

// Contains reports whether v is a vertex of g.
func (g *Graph) Contains(v *Vertex) bool {
	_, ok := g.refs[v]
	return ok
}

// EdgesOf returns every edge incident to v, each once.
func (g *Graph) EdgesOf(v *Vertex) []*Edge {
	r, ok := g.refs[v]
	if !ok {
		return nil
	}
	return append([]*Edge(nil), g.incidence[r]...)
}

// EdgesBetween returns the edges from one vertex to another. Undirected
// edges match in either direction.
func (g *Graph) EdgesBetween(from, to *Vertex) []*Edge {
	rf, ok := g.refs[from]
	if !ok {
		return nil
	}
	rt := g.refs[to]
	var out []*Edge
	for _, e := range g.incidence[rf] {
		if (e.from == rf && e.to == rt) || (!e.Directed && e.from == rt && e.to == rf) {
			out = append(out, e)
		}
	}
	return out
}

// EdgesFrom returns the edges leaving v. In a graph without directed edges
// every incident edge leaves v.
func (g *Graph) EdgesFrom(v *Vertex) []*Edge {
	if !g.rules.DirectedEdges {
		return g.EdgesOf(v)
	}
	r := g.refs[v]
	var out []*Edge
	for _, e := range g.EdgesOf(v) {
		if e.from == r {
			out = append(out, e)
		}
	}
	return out
}

// EdgesTo returns the edges entering v. In a graph without directed edges
// every incident edge enters v.
func (g *Graph) EdgesTo(v *Vertex) []*Edge {
	if !g.rules.DirectedEdges {
		return g.EdgesOf(v)
	}
	r := g.refs[v]
	var out []*Edge
	for _, e := range g.EdgesOf(v) {
		if e.to == r {
			out = append(out, e)
		}
	}
	return out
}

// Neighbors returns the vertices reachable from v over one edge, each once,
// in edge order. A loop makes v its own neighbor.
func (g *Graph) Neighbors(v *Vertex) []*Vertex {
	r := g.refs[v]
	seen := make(map[*Vertex]bool)
	var out []*Vertex
	for _, e := range g.EdgesFrom(v) {
		n := e.To()
		if e.to == r {
			n = e.From()
		}
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

// AreConnected reports whether from can be reached from to by following
// edges leaving each vertex. A vertex is connected to itself.
func (g *Graph) AreConnected(from, to *Vertex) bool {
	visited := make(map[*Vertex]bool)
	stack := []*Vertex{to}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if v == from {
			return true
		}
		visited[v] = true
		for _, n := range g.Neighbors(v) {
			if !visited[n] {
				stack = append(stack, n)
			}
		}
	}
	return false
}

// =============================================================================
// Selection
// =============================================================================

// SelectedVertices returns the selected vertices in list order.
func (g *Graph) SelectedVertices() []*Vertex {
	var out []*Vertex
	for _, v := range g.Vertices.Items() {
		if v.Selected.Get() {
			out = append(out, v)
		}
	}
	return out
}

// SelectedEdges returns the selected edges in list order.
func (g *Graph) SelectedEdges() []*Edge {
	var out []*Edge
	for _, e := range g.Edges.Items() {
		if e.Selected.Get() {
			out = append(out, e)
		}
	}
	return out
}

// SelectedCaptions returns the selected captions in list order.
func (g *Graph) SelectedCaptions() []*Caption {
	var out []*Caption
	for _, c := range g.Captions.Items() {
		if c.Selected.Get() {
			out = append(out, c)
		}
	}
	return out
}

func (g *Graph) HasSelectedVertices() bool { return len(g.SelectedVertices()) > 0 }

func (g *Graph) HasSelectedEdges() bool { return len(g.SelectedEdges()) > 0 }

func (g *Graph) HasSelectedCaptions() bool { return len(g.SelectedCaptions()) > 0 }

// HasSelection reports whether any element is selected.
func (g *Graph) HasSelection() bool {
	return g.HasSelectedVertices() || g.HasSelectedEdges() || g.HasSelectedCaptions()
}

// SelectAll sets the selection flag of every element, emitting one event.
func (g *Graph) SelectAll(selected bool) {
	g.Batch(func() {
		for _, e := range g.Edges.Items() {
			e.Selected.Set(selected)
		}
		for _, v := range g.Vertices.Items() {
			v.Selected.Set(selected)
		}
		for _, c := range g.Captions.Items() {
			c.Selected.Set(selected)
		}
	})
}
