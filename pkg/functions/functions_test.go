package functions

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/visigraph/pkg/errors"
	"github.com/matzehuels/visigraph/pkg/generator"
	"github.com/matzehuels/visigraph/pkg/graph"
)

func generate(t *testing.T, name, params string) *graph.Graph {
	t.Helper()
	g, err := generator.Builtin().Run(context.Background(), name, params, generator.Overrides{}, nil)
	require.NoError(t, err)
	return g
}

func TestEvaluate(t *testing.T) {
	g := generate(t, "cycle", "6")

	tests := []struct {
		name string
		want any
	}{
		{"vertex-count", 6},
		{"edge-count", 6},
		{"crossing-count", 0},
		{"connected", true},
		{"weak-components", 1},
		{"strong-components", 1},
		{"cyclic", true},
		{"eulerian", true},
		{"average-degree", 2.0},
		{"diameter", 3.0},
		{"radius", 3.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(g, tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompleteGraphCrossings(t *testing.T) {
	g := generate(t, "complete", "5")
	got, err := Evaluate(g, "crossing-count")
	require.NoError(t, err)
	assert.Equal(t, 5, got)
}

func TestMutatingFunctions(t *testing.T) {
	g := generate(t, "complete-bipartite", "2 2")

	ok, err := Evaluate(g, "two-coloring")
	require.NoError(t, err)
	assert.Equal(t, true, ok)
	for _, v := range g.Vertices.Items() {
		assert.GreaterOrEqual(t, v.Color.Get(), 0)
	}

	n, err := Evaluate(g, "color-components")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	f, err := Lookup("straighten-edges")
	require.NoError(t, err)
	assert.True(t, f.Mutates())
}

func TestEdgeEditFunctions(t *testing.T) {
	g := generate(t, "cycle", "4")

	n, err := Evaluate(g, "subdivide-edges")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, 8, g.Vertices.Len())
	assert.Equal(t, 8, g.Edges.Len())

	_, err = Evaluate(g, "reverse-edges")
	assert.True(t, errors.Is(err, errors.ErrCodeUnsupported), "cycles are undirected")

	for _, name := range []string{"reverse-edges", "subdivide-edges"} {
		f, err := Lookup(name)
		require.NoError(t, err)
		assert.True(t, f.Mutates(), name)
	}
}

func TestEvaluateAllSkipsMutating(t *testing.T) {
	g := graph.New("split", graph.Rules{}, nil)
	g.AddVertex(0, 0)
	g.AddVertex(100, 0)

	results := EvaluateAll(g)
	byName := map[string]Result{}
	for _, r := range results {
		byName[r.Name] = r
	}
	assert.NotContains(t, byName, "two-coloring")
	assert.NotContains(t, byName, "straighten-edges")
	assert.NotContains(t, byName, "subdivide-edges")
	assert.Equal(t, false, byName["connected"].Value)
	assert.Equal(t, "inf", byName["diameter"].Value)
	assert.Empty(t, byName["diameter"].Error)
}

func TestLookupUnknown(t *testing.T) {
	_, err := Evaluate(graph.New("x", graph.Rules{}, nil), "girth")
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "inf", Format(math.Inf(1)))
	assert.Equal(t, "1.5", Format(1.5))
	assert.Equal(t, "3", Format(3))
	assert.Equal(t, "true", Format(true))
	assert.Equal(t, "", Format(nil))
}
