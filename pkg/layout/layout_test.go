package layout

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/visigraph/pkg/errors"
	"github.com/matzehuels/visigraph/pkg/geometry"
	"github.com/matzehuels/visigraph/pkg/graph"
	"github.com/matzehuels/visigraph/pkg/observable"
)

var rules = graph.Rules{Loops: true, MultipleEdges: true, Cycles: true}

func withVertices(pts ...geometry.Point) (*graph.Graph, []*graph.Vertex) {
	g := graph.New("layout", rules, nil)
	vs := make([]*graph.Vertex, len(pts))
	for i, p := range pts {
		vs[i] = g.AddVertex(p.X, p.Y)
	}
	return g, vs
}

func countEvents(o observable.Observable) *int {
	n := new(int)
	o.Subscribe(func(observable.Event) { *n++ })
	return n
}

func assertAt(t *testing.T, want geometry.Point, v *graph.Vertex) {
	t.Helper()
	assert.InDelta(t, want.X, v.X.Get(), 1e-9, "x of %s", v.Label.Get())
	assert.InDelta(t, want.Y, v.Y.Get(), 1e-9, "y of %s", v.Label.Get())
}

// =============================================================================
// Targets
// =============================================================================

func TestSelect(t *testing.T) {
	g, vs := withVertices(geometry.Pt(0, 0), geometry.Pt(10, 0), geometry.Pt(20, 0))
	e := g.Connect(vs[0], vs[1])
	note := g.AddCaption(0, 0, "note")

	tg, ok := Select(g)
	require.True(t, ok)
	assert.Len(t, tg.Vertices, 3)
	assert.Len(t, tg.Edges, 1)

	vs[2].Selected.Set(true)
	tg, ok = Select(g)
	require.True(t, ok)
	assert.Equal(t, []*graph.Vertex{vs[2]}, tg.Vertices)
	assert.Empty(t, tg.Edges)
	vs[2].Selected.Set(false)

	note.Selected.Set(true)
	_, ok = Select(g)
	assert.False(t, ok, "caption-only selection")
	assert.False(t, Grid(g))
	assertAt(t, geometry.Pt(0, 0), vs[0])
	note.Selected.Set(false)

	e.Selected.Set(true)
	_, ok = Select(g)
	assert.False(t, ok, "edge-only selection")
	assert.False(t, RotateLeft(g))

	_, ok = Select(graph.New("empty", rules, nil))
	assert.False(t, ok)
}

// =============================================================================
// Placement
// =============================================================================

func TestGrid(t *testing.T) {
	g, vs := withVertices(geometry.Pt(0, 0), geometry.Pt(10, 0), geometry.Pt(0, 10), geometry.Pt(10, 10))
	events := countEvents(g)
	require.True(t, Grid(g))
	assert.Equal(t, 1, *events)

	assertAt(t, geometry.Pt(-45, -45), vs[0])
	assertAt(t, geometry.Pt(55, -45), vs[1])
	assertAt(t, geometry.Pt(-45, 55), vs[2])
	assertAt(t, geometry.Pt(55, 55), vs[3])
}

func TestGridUnevenCount(t *testing.T) {
	g, vs := withVertices(geometry.Pt(0, 0), geometry.Pt(0, 0), geometry.Pt(0, 0), geometry.Pt(0, 0), geometry.Pt(0, 0))
	require.True(t, Grid(g))
	// 2 rows of 3 columns around the origin.
	assertAt(t, geometry.Pt(-100, -50), vs[0])
	assertAt(t, geometry.Pt(100, -50), vs[2])
	assertAt(t, geometry.Pt(-100, 50), vs[3])
	assertAt(t, geometry.Pt(0, 50), vs[4])
}

func TestCircle(t *testing.T) {
	g, vs := withVertices(geometry.Pt(0, 0), geometry.Pt(20, 0), geometry.Pt(20, 20), geometry.Pt(0, 20))
	require.True(t, Circle(g))

	assertAt(t, geometry.Pt(10, -30), vs[0])
	assertAt(t, geometry.Pt(50, 10), vs[1])
	assertAt(t, geometry.Pt(10, 50), vs[2])
	assertAt(t, geometry.Pt(-30, 10), vs[3])
}

func TestTree(t *testing.T) {
	g, vs := withVertices(geometry.Pt(0, 0), geometry.Pt(1, 1), geometry.Pt(2, 2), geometry.Pt(3, 3), geometry.Pt(4, 4))
	hub := vs[0]
	for _, leaf := range vs[1:4] {
		g.Connect(hub, leaf)
	}
	hub.Selected.Set(true)

	require.True(t, Tree(g))
	assertAt(t, geometry.Pt(0, 0), hub)
	assertAt(t, geometry.Pt(-150, 150), vs[1])
	assertAt(t, geometry.Pt(0, 150), vs[2])
	assertAt(t, geometry.Pt(150, 150), vs[3])
	assertAt(t, geometry.Pt(0, 300), vs[4])
}

func TestTreeAllRoots(t *testing.T) {
	g, vs := withVertices(geometry.Pt(5, 5), geometry.Pt(9, 9))
	g.Connect(vs[0], vs[1])
	require.True(t, Tree(g))
	assertAt(t, geometry.Pt(-75, 0), vs[0])
	assertAt(t, geometry.Pt(75, 0), vs[1])
}

// =============================================================================
// Force-directed relaxation
// =============================================================================

func overlappingCycle(n int) *graph.Graph {
	g := graph.New("relax", rules, nil)
	vs := make([]*graph.Vertex, n)
	for i := range vs {
		a := 2 * math.Pi * float64(i) / float64(n)
		vs[i] = g.AddVertex(math.Cos(a), math.Sin(a))
	}
	for i := range vs {
		g.Connect(vs[i], vs[(i+1)%n])
	}
	return g
}

func TestSimulationConverges(t *testing.T) {
	g := overlappingCycle(5)
	cfg := g.Settings().Force
	sim := NewSimulation(g)

	peak, energy := 0.0, math.Inf(1)
	for sim.Steps() < cfg.MaxSteps && energy >= cfg.Threshold {
		energy = sim.Step(cfg.Speed)
		peak = max(peak, energy)
	}
	assert.Less(t, energy, cfg.Threshold)
	assert.Less(t, energy, peak)
	assert.Less(t, sim.Steps(), cfg.MaxSteps)

	vs := g.Vertices.Items()
	for i := range vs {
		for j := i + 1; j < len(vs); j++ {
			assert.Greater(t, vs[i].Position().Distance(vs[j].Position()), 10.0, "vertices spread apart")
		}
	}
}

func TestSimulationRun(t *testing.T) {
	g := overlappingCycle(4)
	energy, settled, err := NewSimulation(g).Run(context.Background())
	require.NoError(t, err)
	assert.True(t, settled)
	assert.Less(t, energy, g.Settings().Force.Threshold)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, settled, err = NewSimulation(overlappingCycle(4)).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, settled)
}

func TestSimulationKeepsVelocities(t *testing.T) {
	g, vs := withVertices(geometry.Pt(0, 0), geometry.Pt(1, 0))
	sim := NewSimulation(g)
	sim.Step(0)
	assert.Equal(t, geometry.Pt(0, 0), vs[0].Position(), "zero speed does not move")
	v := sim.Velocity(vs[1])
	assert.Greater(t, v.X, 0.0, "repelled to the right")

	sim.Step(0)
	assert.Greater(t, sim.Velocity(vs[1]).X, v.X, "velocity accumulates")
	assert.Zero(t, NewSimulation(graph.New("empty", rules, nil)).Step(1))
}

// =============================================================================
// Transforms
// =============================================================================

func TestAlignAndDistribute(t *testing.T) {
	g, vs := withVertices(geometry.Pt(0, 0), geometry.Pt(50, 20), geometry.Pt(10, 40))
	require.True(t, AlignHorizontal(g))
	for _, v := range vs {
		assert.InDelta(t, 20, v.Y.Get(), 1e-9)
	}
	require.True(t, DistributeHorizontal(g))
	assertAt(t, geometry.Pt(0, 20), vs[0])
	assertAt(t, geometry.Pt(50, 20), vs[1])
	assertAt(t, geometry.Pt(25, 20), vs[2])

	require.True(t, AlignVertical(g))
	for _, v := range vs {
		assert.InDelta(t, 25, v.X.Get(), 1e-9)
	}

	single, _ := withVertices(geometry.Pt(3, 3))
	assert.False(t, DistributeVertical(single))
}

func TestAlignEmitsOneEventPerEdge(t *testing.T) {
	tests := []struct {
		name     string
		align    func(*graph.Graph) bool
		selected bool
	}{
		{"horizontal", AlignHorizontal, false},
		{"vertical", AlignVertical, false},
		{"horizontal selected", AlignHorizontal, true},
		{"vertical selected", AlignVertical, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, vs := withVertices(geometry.Pt(0, 0), geometry.Pt(100, 40))
			e := g.Connect(vs[0], vs[1])
			if tt.selected {
				vs[0].Selected.Set(true)
				vs[1].Selected.Set(true)
			}
			edgeEvents, graphEvents := countEvents(e), countEvents(g)
			require.True(t, tt.align(g))
			assert.Equal(t, 1, *edgeEvents)
			assert.Equal(t, 1, *graphEvents)
			assert.True(t, e.IsLinear())
		})
	}
}

func TestTransformsEmitAtMostOneEventPerEdge(t *testing.T) {
	tests := []struct {
		name string
		run  func(*graph.Graph) bool
	}{
		{"align horizontal", AlignHorizontal},
		{"align vertical", AlignVertical},
		{"distribute horizontal", DistributeHorizontal},
		{"distribute vertical", DistributeVertical},
		{"flip horizontal", FlipHorizontal},
		{"flip vertical", FlipVertical},
		{"rotate left", RotateLeft},
		{"rotate right", RotateRight},
		{"contract", Contract},
		{"expand", Expand},
		{"grid", Grid},
		{"circle", Circle},
		{"tree", Tree},
		{"straighten", StraightenEdges},
		{"force step", func(g *graph.Graph) bool { return NewSimulation(g).Step(1) > 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, vs := withVertices(geometry.Pt(0, 0), geometry.Pt(100, 30), geometry.Pt(40, 90))
			curved := g.Connect(vs[0], vs[1])
			curved.Handle.Set(geometry.Pt(50, -40))
			require.False(t, curved.IsLinear())
			edges := []*graph.Edge{curved, g.Connect(vs[1], vs[2]), g.Connect(vs[2], vs[0])}

			counts := make([]*int, len(edges))
			for i, e := range edges {
				counts[i] = countEvents(e)
			}
			graphEvents := countEvents(g)

			require.True(t, tt.run(g))
			assert.Equal(t, 1, *graphEvents)
			total := 0
			for i, n := range counts {
				assert.LessOrEqual(t, *n, 1, "edge %d", i)
				total += *n
			}
			assert.Positive(t, total)
		})
	}
}

func TestRotate(t *testing.T) {
	g, vs := withVertices(geometry.Pt(0, 0), geometry.Pt(100, 0))
	e := g.Connect(vs[0], vs[1])

	events := countEvents(g)
	require.True(t, RotateLeft(g))
	assert.Equal(t, 1, *events)

	assertAt(t, geometry.Pt(50, 50), vs[0])
	assertAt(t, geometry.Pt(50, -50), vs[1])
	assert.True(t, e.IsLinear())
	assert.InDelta(t, 50, e.Handle.Get().X, 1e-9)
	assert.InDelta(t, 0, e.Handle.Get().Y, 1e-9)

	require.True(t, RotateRight(g))
	assertAt(t, geometry.Pt(0, 0), vs[0])
	assertAt(t, geometry.Pt(100, 0), vs[1])
}

func TestRotateCurvedEdge(t *testing.T) {
	g, vs := withVertices(geometry.Pt(0, 0), geometry.Pt(100, 0))
	e := g.Connect(vs[0], vs[1])
	e.Handle.Set(geometry.Pt(50, -50))
	before := e.Arc()

	edgeEvents := countEvents(e)
	require.True(t, RotateRight(g))
	assert.Equal(t, 1, *edgeEvents)
	require.False(t, e.IsLinear())
	assert.InDelta(t, before.Radius, e.Arc().Radius, 1e-9)
	assert.True(t, e.Arc().ContainsAngle(e.Arc().AngleOf(e.Handle.Get())))

	require.True(t, RotateLeft(g))
	assert.InDelta(t, 50, e.Handle.Get().X, 1e-9)
	assert.InDelta(t, -50, e.Handle.Get().Y, 1e-9)
}

func TestFlip(t *testing.T) {
	g, vs := withVertices(geometry.Pt(0, 0), geometry.Pt(100, 20))
	e := g.Connect(vs[0], vs[1])

	require.True(t, FlipHorizontal(g))
	assertAt(t, geometry.Pt(100, 0), vs[0])
	assertAt(t, geometry.Pt(0, 20), vs[1])
	assert.True(t, e.IsLinear())

	require.True(t, FlipVertical(g))
	assertAt(t, geometry.Pt(100, 20), vs[0])
	assertAt(t, geometry.Pt(0, 0), vs[1])
}

func TestScale(t *testing.T) {
	g, vs := withVertices(geometry.Pt(0, 0), geometry.Pt(100, 0))
	require.True(t, Scale(g, 2))
	assertAt(t, geometry.Pt(-50, 0), vs[0])
	assertAt(t, geometry.Pt(150, 0), vs[1])

	require.True(t, Contract(g))
	assertAt(t, geometry.Pt(-30, 0), vs[0])
	assertAt(t, geometry.Pt(130, 0), vs[1])

	require.True(t, Expand(g))
	assertAt(t, geometry.Pt(-50, 0), vs[0])
}

func TestSelectedEdgeHandleMovesWithoutEndpoints(t *testing.T) {
	g, vs := withVertices(geometry.Pt(0, 0), geometry.Pt(100, 0), geometry.Pt(300, 0))
	e := g.Connect(vs[0], vs[1])
	e.Handle.Set(geometry.Pt(50, -50))
	vs[2].Selected.Set(true)
	e.Selected.Set(true)

	// centroid of vertex 2 and the handle is (175, -25)
	require.True(t, FlipVertical(g))
	assertAt(t, geometry.Pt(300, -50), vs[2])
	assert.InDelta(t, 0, e.Handle.Get().Y, 1e-9)
	assert.True(t, e.IsLinear())
}

func TestStraightenEdges(t *testing.T) {
	g, vs := withVertices(geometry.Pt(0, 0), geometry.Pt(100, 0), geometry.Pt(0, 100))
	e0 := g.Connect(vs[0], vs[1])
	e1 := g.Connect(vs[0], vs[2])
	e0.Handle.Set(geometry.Pt(50, -50))
	e1.Handle.Set(geometry.Pt(-50, 50))

	e1.Selected.Set(true)
	require.True(t, StraightenEdges(g))
	assert.False(t, e0.IsLinear())
	assert.True(t, e1.IsLinear())

	e1.Selected.Set(false)
	require.True(t, StraightenEdges(g))
	assert.True(t, e0.IsLinear())

	assert.False(t, StraightenEdges(graph.New("empty", rules, nil)))
}

// =============================================================================
// Registry
// =============================================================================

func TestRegistry(t *testing.T) {
	assert.Contains(t, Names(), "grid")
	assert.Contains(t, Names(), "force")

	_, err := Lookup("spiral")
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))

	g, vs := withVertices(geometry.Pt(0, 0), geometry.Pt(0, 0))
	ok, err := Apply(g, "circle")
	require.NoError(t, err)
	assert.True(t, ok)
	assertAt(t, geometry.Pt(0, -20), vs[0])
}

func TestRunCancelledForce(t *testing.T) {
	g, _ := withVertices(geometry.Pt(0, 0), geometry.Pt(1, 0))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, g, "force")
	assert.ErrorIs(t, err, context.Canceled)

	moved, err := Run(context.Background(), g, "grid")
	require.NoError(t, err)
	assert.True(t, moved)

	_, err = Run(context.Background(), g, "spiral")
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
}
