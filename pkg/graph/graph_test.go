package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/visigraph/pkg/geometry"
	"github.com/matzehuels/visigraph/pkg/observable"
)

var permissive = Rules{Loops: true, MultipleEdges: true, Cycles: true}

func countEvents(o observable.Observable) *int {
	n := new(int)
	o.Subscribe(func(observable.Event) { *n++ })
	return n
}

func TestNewDefault(t *testing.T) {
	g := NewDefault(nil)
	assert.Equal(t, "Untitled", g.Name.Get())
	assert.Equal(t, Rules{Loops: true, DirectedEdges: false, MultipleEdges: true, Cycles: true}, g.Rules())
	assert.NotNil(t, g.Settings())
}

func TestPositionalIDs(t *testing.T) {
	g := New("ids", permissive, nil)
	a := g.AddVertex(0, 0)
	b := g.AddVertex(1, 1)
	assert.Equal(t, "0", a.ID.Get())
	assert.Equal(t, "1", b.ID.Get())
	assert.Equal(t, "v1", b.Label.Get())
	assert.Equal(t, "2", g.NextVertexID())

	e := g.Connect(a, b)
	require.NotNil(t, e)
	assert.Equal(t, "0", e.ID.Get())
	assert.Equal(t, "e0", e.Label.Get())

	g.Vertices.Remove(a)
	assert.Equal(t, "1", g.NextVertexID(), "ids follow the current size")
	assert.Same(t, b, g.Vertex("1"))
	assert.Nil(t, g.Vertex("0"))
}

func TestEdgeRules(t *testing.T) {
	tests := []struct {
		name    string
		rules   Rules
		connect func(g *Graph, a, b, c *Vertex) *Edge
		want    bool
	}{
		{
			name:    "plain edge",
			rules:   Rules{},
			connect: func(g *Graph, a, b, _ *Vertex) *Edge { return g.NewEdge(a, b) },
			want:    true,
		},
		{
			name:    "loop forbidden",
			rules:   Rules{Cycles: true},
			connect: func(g *Graph, a, _, _ *Vertex) *Edge { return g.NewEdge(a, a) },
			want:    false,
		},
		{
			name:    "loop allowed",
			rules:   Rules{Loops: true, Cycles: true},
			connect: func(g *Graph, a, _, _ *Vertex) *Edge { return g.NewEdge(a, a) },
			want:    true,
		},
		{
			name:    "direction mismatch",
			rules:   permissive,
			connect: func(g *Graph, a, b, _ *Vertex) *Edge { return g.NewDirectedEdge(true, a, b) },
			want:    false,
		},
		{
			name:  "parallel forbidden",
			rules: Rules{Cycles: true},
			connect: func(g *Graph, a, b, _ *Vertex) *Edge {
				g.Connect(a, b)
				return g.NewEdge(b, a)
			},
			want: false,
		},
		{
			name:  "parallel allowed",
			rules: Rules{MultipleEdges: true, Cycles: true},
			connect: func(g *Graph, a, b, _ *Vertex) *Edge {
				g.Connect(a, b)
				return g.NewEdge(b, a)
			},
			want: true,
		},
		{
			name:  "opposite directed edges are not parallel",
			rules: Rules{DirectedEdges: true, Cycles: true},
			connect: func(g *Graph, a, b, _ *Vertex) *Edge {
				g.Connect(a, b)
				return g.NewEdge(b, a)
			},
			want: true,
		},
		{
			name:  "cycle forbidden",
			rules: Rules{},
			connect: func(g *Graph, a, b, c *Vertex) *Edge {
				g.Connect(a, b)
				g.Connect(b, c)
				return g.NewEdge(c, a)
			},
			want: false,
		},
		{
			name:  "missing endpoint",
			rules: permissive,
			connect: func(g *Graph, a, _, _ *Vertex) *Edge {
				return g.NewEdge(a, NewVertex(nil, "x", 0, 0))
			},
			want: false,
		},
		{
			name:  "duplicate edge",
			rules: permissive,
			connect: func(g *Graph, a, b, _ *Vertex) *Edge {
				return g.Connect(a, b)
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New("rules", tt.rules, nil)
			a, b, c := g.AddVertex(0, 0), g.AddVertex(10, 0), g.AddVertex(0, 10)
			e := tt.connect(g, a, b, c)
			assert.Equal(t, tt.want, g.Edges.Add(e))
		})
	}
}

func TestBulkEdgeInsertChecksEarlierEdges(t *testing.T) {
	g := New("bulk", Rules{Cycles: true}, nil)
	a, b := g.AddVertex(0, 0), g.AddVertex(10, 0)
	added := g.Edges.AddAll(g.NewEdge(a, b), g.NewEdge(a, b), g.NewEdge(b, a))
	assert.Equal(t, 1, added)
	assert.Len(t, g.EdgesOf(a), 1)
}

func TestCascadingDelete(t *testing.T) {
	g := New("triangle", permissive, nil)
	a, b, c := g.AddVertex(0, 0), g.AddVertex(10, 0), g.AddVertex(0, 10)
	g.Connect(a, b)
	g.Connect(b, c)
	ca := g.Connect(c, a)
	g.Connect(b, b)

	events := countEvents(g)
	require.True(t, g.Vertices.Remove(b))

	assert.Equal(t, 1, *events, "one coalesced notification")
	require.Equal(t, 1, g.Edges.Len())
	assert.Same(t, ca, g.Edges.At(0))
	for _, e := range g.Edges.Items() {
		assert.NotNil(t, e.From())
		assert.NotNil(t, e.To())
	}
	assert.Empty(t, g.EdgesOf(b))
	assert.False(t, g.Contains(b))

	g.Vertices.Clear()
	assert.Equal(t, 0, g.Edges.Len())
	assert.Equal(t, 2, *events)
}

func TestReaddedVertexGetsNoEdges(t *testing.T) {
	g := New("readd", permissive, nil)
	a, b := g.AddVertex(0, 0), g.AddVertex(10, 0)
	g.Connect(a, b)
	g.Vertices.Remove(a)
	g.Vertices.Add(a)
	assert.Equal(t, 0, g.Edges.Len())
	assert.NotNil(t, g.Connect(a, b))
}

func TestQueries(t *testing.T) {
	g := New("directed", Rules{DirectedEdges: true, Loops: true, Cycles: true, MultipleEdges: true}, nil)
	a, b, c := g.AddVertex(0, 0), g.AddVertex(10, 0), g.AddVertex(0, 10)
	ab := g.Connect(a, b)
	bc := g.Connect(b, c)
	cc := g.Connect(c, c)

	assert.ElementsMatch(t, []*Edge{ab}, g.EdgesFrom(a))
	assert.Empty(t, g.EdgesTo(a))
	assert.ElementsMatch(t, []*Edge{cc}, g.EdgesFrom(c))
	assert.ElementsMatch(t, []*Edge{bc, cc}, g.EdgesTo(c))
	assert.Equal(t, []*Vertex{b}, g.Neighbors(a))
	assert.Equal(t, []*Vertex{c}, g.Neighbors(c))
	assert.Equal(t, []*Edge{ab}, g.EdgesBetween(a, b))
	assert.Empty(t, g.EdgesBetween(b, a))

	assert.True(t, g.AreConnected(c, a), "c reachable from a")
	assert.False(t, g.AreConnected(a, c))
}

func TestUndirectedNeighbors(t *testing.T) {
	g := New("undirected", permissive, nil)
	a, b, c := g.AddVertex(0, 0), g.AddVertex(10, 0), g.AddVertex(0, 10)
	g.Connect(a, b)
	g.Connect(c, a)
	assert.Equal(t, []*Vertex{b, c}, g.Neighbors(a))
	assert.Len(t, g.EdgesBetween(b, a), 1)
	assert.True(t, g.AreConnected(c, b))
}

func TestEdgeGeometry(t *testing.T) {
	g := New("geometry", permissive, nil)
	a, b := g.AddVertex(0, 0), g.AddVertex(100, 0)
	e := g.Connect(a, b)
	require.NotNil(t, e)

	assert.True(t, e.IsLinear())
	assert.Equal(t, geometry.Pt(50, 0), e.Handle.Get())

	e.Handle.Set(geometry.Pt(50, 2))
	assert.True(t, e.IsLinear(), "within snap margin")

	e.Handle.Set(geometry.Pt(50, -50))
	require.False(t, e.IsLinear())
	arc := e.Arc()
	assert.InDelta(t, 50, arc.Center.X, 1e-9)
	assert.InDelta(t, 0, arc.Center.Y, 1e-9)
	assert.InDelta(t, 50, arc.Radius, 1e-9)
	assert.True(t, arc.ContainsAngle(arc.AngleOf(e.Handle.Get())))
	assert.InDelta(t, 180, arc.Extent, 1e-9)

	b.X.Set(200)
	h := e.Handle.Get()
	assert.InDelta(t, 100, h.X, 1e-9)
	assert.InDelta(t, -100, h.Y, 1e-9)
	assert.False(t, e.IsLinear())

	e.Straighten()
	assert.True(t, e.IsLinear())
	assert.Equal(t, geometry.Pt(100, 0), e.Handle.Get())

	b.SetPosition(geometry.Pt(0, 40))
	assert.Equal(t, geometry.Pt(0, 20), e.Handle.Get(), "linear handle follows the midpoint")
}

func TestEdgeLinearity(t *testing.T) {
	tests := []struct {
		name   string
		handle geometry.Point
		linear bool
	}{
		{"midpoint", geometry.Pt(50, 0), true},
		{"near the segment", geometry.Pt(30, 2), true},
		{"near an endpoint", geometry.Pt(-3, 1), true},
		{"beside the line past an endpoint", geometry.Pt(200, 3), false},
		{"on the line past an endpoint", geometry.Pt(200, 0), true},
		{"off the segment", geometry.Pt(50, 20), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New("linearity", permissive, nil)
			e := g.Connect(g.AddVertex(0, 0), g.AddVertex(100, 0))
			e.Handle.Set(tt.handle)
			assert.Equal(t, tt.linear, e.IsLinear())
			assert.Equal(t, tt.handle, e.Handle.Get(), "setting the handle never moves it")
		})
	}
}

func TestLoopGeometry(t *testing.T) {
	g := New("loop", permissive, nil)
	a := g.AddVertex(10, 10)
	e := g.Connect(a, a)
	require.NotNil(t, e)

	assert.True(t, e.IsLoop())
	assert.False(t, e.IsLinear())
	assert.Equal(t, geometry.Pt(60, 10), e.Handle.Get())
	assert.InDelta(t, 25, e.Arc().Radius, 1e-9)
	assert.Equal(t, geometry.Pt(35, 10), e.Center())
	assert.InDelta(t, 360, e.Arc().Extent, 1e-9)

	a.Translate(5, 5)
	assert.Equal(t, geometry.Pt(65, 15), e.Handle.Get())
}

func TestEdgeSuspendReplaysOnce(t *testing.T) {
	g := New("suspend", permissive, nil)
	a, b := g.AddVertex(0, 0), g.AddVertex(100, 0)
	e := g.Connect(a, b)
	e.Handle.Set(geometry.Pt(50, -50))

	events := countEvents(e)
	e.Suspend()
	e.Suspend()
	a.Translate(0, 10)
	b.Translate(0, 10)
	e.Handle.Set(geometry.Pt(50, -40))
	e.Weight.Set(3)
	e.Resume()
	assert.Equal(t, 0, *events)
	e.Resume()
	assert.Equal(t, 1, *events)

	assert.Equal(t, geometry.Pt(50, -40), e.Handle.Get(), "handle not re-projected while suspended")
	assert.InDelta(t, 50, e.Arc().Radius, 1e-9)
}

func TestPropertyChangesReachGraph(t *testing.T) {
	g := New("events", permissive, nil)
	a := g.AddVertex(0, 0)
	var last observable.Event
	g.Subscribe(func(ev observable.Event) { last = ev })

	a.Label.Set("start")
	assert.Same(t, a.Label, last.Origin)
	assert.Same(t, a, last.Item)
	assert.Same(t, g, last.Source)

	g.Name.Set("renamed")
	assert.Same(t, g.Name, last.Origin)

	c := g.AddCaption(1, 2, "note")
	c.Text.Set("edited")
	assert.Same(t, c.Text, last.Origin)
	assert.Same(t, c, last.Item)
}

func TestSelectionAndTranslate(t *testing.T) {
	g := New("select", permissive, nil)
	a, b, c := g.AddVertex(0, 0), g.AddVertex(100, 0), g.AddVertex(0, 100)
	ab := g.Connect(a, b)
	bc := g.Connect(b, c)
	bc.Handle.Set(geometry.Pt(80, 80))
	note := g.AddCaption(5, 5, "x")

	assert.False(t, g.HasSelection())
	a.Selected.Set(true)
	b.Selected.Set(true)
	ab.Selected.Set(true)
	note.Selected.Set(true)

	events := countEvents(g)
	g.TranslateSelected(10, 20)
	assert.Equal(t, 1, *events)

	assert.Equal(t, geometry.Pt(10, 20), a.Position())
	assert.Equal(t, geometry.Pt(110, 20), b.Position())
	assert.Equal(t, geometry.Pt(0, 100), c.Position())
	assert.Equal(t, geometry.Pt(60, 20), ab.Handle.Get())
	assert.Equal(t, geometry.Pt(15, 25), note.Position())

	assert.Len(t, g.SelectedVertices(), 2)
	assert.Len(t, g.SelectedEdges(), 1)
	assert.Len(t, g.SelectedCaptions(), 1)

	g.SelectAll(false)
	assert.False(t, g.HasSelection())
	g.SelectAll(true)
	assert.True(t, g.HasSelectedEdges())
	assert.Len(t, g.SelectedVertices(), 3)
}

func TestTranslateCurvedEdgeWithoutEndpoints(t *testing.T) {
	g := New("curve", permissive, nil)
	a, b := g.AddVertex(0, 0), g.AddVertex(100, 0)
	e := g.Connect(a, b)
	e.Handle.Set(geometry.Pt(50, -50))
	e.Selected.Set(true)

	g.TranslateSelected(0, -10)
	assert.Equal(t, geometry.Pt(50, -60), e.Handle.Get())
	assert.Equal(t, geometry.Pt(0, 0), a.Position())
}

func TestUnion(t *testing.T) {
	src := New("src", permissive, nil)
	a, b := src.AddVertex(0, 0), src.AddVertex(10, 0)
	e := src.Connect(a, b)
	e.Handle.Set(geometry.Pt(5, -5))
	e.Weight.Set(2)
	src.AddCaption(1, 1, "hello")

	dst := New("dst", permissive, nil)
	dst.AddVertex(50, 50)
	events := countEvents(dst)
	dst.Union(src)

	assert.Equal(t, 1, *events)
	require.Equal(t, 3, dst.Vertices.Len())
	require.Equal(t, 1, dst.Edges.Len())
	assert.Equal(t, 1, dst.Captions.Len())

	ids := map[string]bool{}
	for _, v := range dst.Vertices.Items()[1:] {
		assert.Len(t, v.ID.Get(), 36)
		ids[v.ID.Get()] = true
	}
	assert.Len(t, ids, 2)

	ce := dst.Edges.At(0)
	assert.True(t, dst.Contains(ce.From()))
	assert.NotSame(t, a, ce.From())
	assert.Equal(t, 2.0, ce.Weight.Get())
	assert.Equal(t, geometry.Pt(5, -5), ce.Handle.Get())
	assert.Equal(t, 2, src.Vertices.Len(), "source untouched")

	e.Handle.Set(geometry.Pt(3, 0.2))
	require.True(t, e.IsLinear())
	other := New("other", permissive, nil)
	other.Union(src)
	assert.Equal(t, geometry.Pt(3, 0.2), other.Edges.At(0).Handle.Get(), "linear handle copied exactly")
}

func TestBounds(t *testing.T) {
	g := New("bounds", permissive, nil)
	_, _, ok := g.Bounds()
	assert.False(t, ok)

	g.AddVertex(0, 0)
	g.AddVertex(100, 50)
	lo, hi, ok := g.Bounds()
	require.True(t, ok)
	assert.Equal(t, geometry.Pt(-5, -5), lo)
	assert.Equal(t, geometry.Pt(105, 55), hi)
}
