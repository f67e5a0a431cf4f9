package graph

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/matzehuels/visigraph/pkg/geometry"
	"github.com/matzehuels/visigraph/pkg/observable"
	"github.com/matzehuels/visigraph/pkg/settings"
)

// Ref is a vertex handle in a graph's arena. The zero Ref resolves to no
// vertex.
type Ref uint32

// Rules are the structural constraints of a graph.
type Rules struct {
	Loops         bool
	DirectedEdges bool
	MultipleEdges bool
	Cycles        bool
}

// Graph is a collection of vertices, edges and captions under fixed rules.
type Graph struct {
	observable.Base

	Name     *observable.Property[string]
	Tag      *observable.Property[string]
	Vertices *observable.List[*Vertex]
	Edges    *observable.List[*Edge]
	Captions *observable.List[*Caption]

	rules     Rules
	cfg       *settings.Settings
	arena     map[Ref]*Vertex
	refs      map[*Vertex]Ref
	incidence map[Ref][]*Edge
	nextRef   Ref
}

// New creates an empty graph. A nil cfg uses [settings.Default].
func New(name string, rules Rules, cfg *settings.Settings) *Graph {
	g := &Graph{
		Name:      observable.NewProperty(name),
		Tag:       observable.NewProperty(""),
		rules:     rules,
		cfg:       settings.OrDefault(cfg),
		arena:     make(map[Ref]*Vertex),
		refs:      make(map[*Vertex]Ref),
		incidence: make(map[Ref][]*Edge),
	}
	g.Vertices = observable.NewList(observable.WithGuard(g.acceptVertex))
	g.Edges = observable.NewList(observable.WithGuard(g.acceptEdge))
	g.Captions = observable.NewList(observable.WithGuard(g.acceptCaption))

	relay(&g.Base, g, g.Name, g.Tag, g.Captions)
	g.Vertices.Subscribe(g.onVertices)
	g.Edges.Subscribe(g.onEdges)
	return g
}

// NewDefault creates an empty graph with the name and rules configured in
// cfg.Graph.
func NewDefault(cfg *settings.Settings) *Graph {
	cfg = settings.OrDefault(cfg)
	return New(cfg.Graph.Name, Rules{
		Loops:         cfg.Graph.AllowLoops,
		DirectedEdges: cfg.Graph.AllowDirected,
		MultipleEdges: cfg.Graph.AllowMultiple,
		Cycles:        cfg.Graph.AllowCycles,
	}, cfg)
}

// Rules returns the graph's structural constraints.
func (g *Graph) Rules() Rules { return g.rules }

// Settings returns the configuration the graph creates elements with.
func (g *Graph) Settings() *settings.Settings { return g.cfg }

// relay forwards every event of the given observables as an event of b.
func relay(b *observable.Base, source any, from ...observable.Observable) {
	for _, o := range from {
		o.Subscribe(func(ev observable.Event) {
			b.Emit(observable.Event{Source: source, Origin: ev.Origin, Item: ev.Item})
		})
	}
}

// =============================================================================
// List guards
// =============================================================================

func (g *Graph) acceptVertex(v *Vertex) bool {
	return v != nil && !g.Vertices.Contains(v)
}

func (g *Graph) acceptCaption(c *Caption) bool {
	return c != nil && !g.Captions.Contains(c)
}

// acceptEdge enforces the graph rules. Accepted edges are entered into the
// incidence index right away so that later edges of the same bulk insert
// are checked against them.
func (g *Graph) acceptEdge(e *Edge) bool {
	if e == nil || e.graph != g {
		return false
	}
	from, to := g.arena[e.from], g.arena[e.to]
	switch {
	case from == nil || to == nil:
		return false
	case e.IsLoop() && !g.rules.Loops:
		return false
	case e.Directed != g.rules.DirectedEdges:
		return false
	case g.Edges.Contains(e):
		return false
	case !g.rules.MultipleEdges && len(g.EdgesBetween(from, to)) > 0:
		return false
	case !g.rules.Cycles && g.AreConnected(from, to):
		return false
	}
	g.index(e)
	return true
}

// =============================================================================
// Change propagation
// =============================================================================

func (g *Graph) onVertices(ev observable.Event) {
	if ev.Origin == any(g.Vertices) {
		g.Suspend()
		g.syncArena()
		g.Emit(observable.Event{Source: g, Origin: g.Vertices})
		g.Resume()
		return
	}
	if v, ok := ev.Item.(*Vertex); ok && (ev.Origin == any(v.X) || ev.Origin == any(v.Y)) {
		g.vertexMoved(v)
	}
	g.Emit(observable.Event{Source: g, Origin: ev.Origin, Item: ev.Item})
}

func (g *Graph) onEdges(ev observable.Event) {
	if ev.Origin == any(g.Edges) {
		g.reindex()
	}
	g.Emit(observable.Event{Source: g, Origin: ev.Origin, Item: ev.Item})
}

// syncArena assigns refs to new vertices, forgets removed ones and prunes
// every edge left with an unresolved endpoint.
func (g *Graph) syncArena() {
	present := make(map[*Vertex]bool, g.Vertices.Len())
	for _, v := range g.Vertices.Items() {
		present[v] = true
		if _, ok := g.refs[v]; !ok {
			g.nextRef++
			g.refs[v] = g.nextRef
			g.arena[g.nextRef] = v
		}
	}
	for v, r := range g.refs {
		if !present[v] {
			delete(g.refs, v)
			delete(g.arena, r)
		}
	}
	g.Edges.RemoveFunc(func(e *Edge) bool {
		return g.arena[e.from] == nil || g.arena[e.to] == nil
	})
}

func (g *Graph) index(e *Edge) {
	g.incidence[e.from] = append(g.incidence[e.from], e)
	if !e.IsLoop() {
		g.incidence[e.to] = append(g.incidence[e.to], e)
	}
}

func (g *Graph) reindex() {
	clear(g.incidence)
	for _, e := range g.Edges.Items() {
		g.index(e)
	}
}

func (g *Graph) vertexMoved(v *Vertex) {
	for _, e := range g.incidence[g.refs[v]] {
		e.endpointMoved()
	}
}

// =============================================================================
// Factories
// =============================================================================

// NextVertexID returns the id the next vertex receives: the current number
// of vertices.
func (g *Graph) NextVertexID() string { return strconv.Itoa(g.Vertices.Len()) }

// NextEdgeID returns the id the next edge receives: the current number of
// edges.
func (g *Graph) NextEdgeID() string { return strconv.Itoa(g.Edges.Len()) }

// NewVertex creates a vertex at (x, y) with the next positional id. The
// vertex is not added to the graph.
func (g *Graph) NewVertex(x, y float64) *Vertex {
	return NewVertex(g.cfg, g.NextVertexID(), x, y)
}

// AddVertex creates a vertex at (x, y) and adds it.
func (g *Graph) AddVertex(x, y float64) *Vertex {
	v := g.NewVertex(x, y)
	g.Vertices.Add(v)
	return v
}

// NewEdge creates an edge between two vertices of g. Its direction follows
// the graph rules. The edge is not added to the graph; adding fails if
// either endpoint is not a member of g.
func (g *Graph) NewEdge(from, to *Vertex) *Edge {
	return g.newEdge(g.rules.DirectedEdges, from, to)
}

// NewDirectedEdge is like NewEdge with an explicit direction flag.
func (g *Graph) NewDirectedEdge(directed bool, from, to *Vertex) *Edge {
	return g.newEdge(directed, from, to)
}

// Connect creates an edge between from and to and adds it. It returns nil
// if the graph rules reject the edge.
func (g *Graph) Connect(from, to *Vertex) *Edge {
	e := g.NewEdge(from, to)
	if !g.Edges.Add(e) {
		return nil
	}
	return e
}

// NewCaption creates a caption. The caption is not added to the graph.
func (g *Graph) NewCaption(x, y float64, text string) *Caption {
	return NewCaption(g.cfg, x, y, text)
}

// AddCaption creates a caption and adds it.
func (g *Graph) AddCaption(x, y float64, text string) *Caption {
	c := g.NewCaption(x, y, text)
	g.Captions.Add(c)
	return c
}

// =============================================================================
// Bulk operations
// =============================================================================

// TranslateSelected moves every selected vertex and caption by (dx, dy).
// Handles of selected edges move along unless the edge is linear and one
// of its endpoints moves with the selection, in which case the handle is
// re-derived from the endpoints.
func (g *Graph) TranslateSelected(dx, dy float64) {
	g.Suspend()
	defer g.Resume()

	delta := geometry.Pt(dx, dy)
	handles := make(map[*Edge]geometry.Point)
	for _, e := range g.SelectedEdges() {
		from, to := e.From(), e.To()
		if !(from.Selected.Get() || to.Selected.Get()) || !e.IsLinear() {
			handles[e] = e.Handle.Get().Add(delta)
		}
	}
	for _, v := range g.SelectedVertices() {
		v.Translate(dx, dy)
	}
	for _, e := range g.SelectedEdges() {
		if h, ok := handles[e]; ok {
			e.Handle.Set(h)
		}
	}
	for _, c := range g.SelectedCaptions() {
		c.X.Set(c.X.Get() + dx)
		c.Y.Set(c.Y.Get() + dy)
	}
}

// Union copies every vertex, edge and caption of other into g. Copied
// vertices receive fresh UUIDs so they cannot collide with existing ids.
// Edges that g's rules reject are dropped.
func (g *Graph) Union(other *Graph) {
	g.Suspend()
	defer g.Resume()

	copies := make(map[*Vertex]*Vertex, other.Vertices.Len())
	vertices := make([]*Vertex, 0, other.Vertices.Len())
	for _, v := range other.Vertices.Items() {
		c := v.Clone()
		c.ID.Set(uuid.NewString())
		copies[v] = c
		vertices = append(vertices, c)
	}
	g.Vertices.AddAll(vertices...)

	edges := make([]*Edge, 0, other.Edges.Len())
	for _, e := range other.Edges.Items() {
		c := g.newEdge(e.Directed, copies[e.From()], copies[e.To()])
		c.copyFrom(e)
		edges = append(edges, c)
	}
	g.Edges.AddAll(edges...)

	captions := make([]*Caption, 0, other.Captions.Len())
	for _, c := range other.Captions.Items() {
		captions = append(captions, c.Clone())
	}
	g.Captions.AddAll(captions...)
}

// Bounds returns the smallest rectangle containing every vertex disc, every
// curved edge's handle and every caption anchor. ok is false for a graph
// without elements.
func (g *Graph) Bounds() (lo, hi geometry.Point, ok bool) {
	grow := func(p geometry.Point, r float64) {
		if !ok {
			lo, hi, ok = p.Sub(geometry.Pt(r, r)), p.Add(geometry.Pt(r, r)), true
			return
		}
		lo.X, lo.Y = min(lo.X, p.X-r), min(lo.Y, p.Y-r)
		hi.X, hi.Y = max(hi.X, p.X+r), max(hi.Y, p.Y+r)
	}
	for _, v := range g.Vertices.Items() {
		grow(v.Position(), v.Radius.Get())
	}
	for _, e := range g.Edges.Items() {
		if !e.IsLinear() {
			grow(e.Handle.Get(), 0)
		}
	}
	for _, c := range g.Captions.Items() {
		grow(c.Position(), 0)
	}
	return lo, hi, ok
}
