package dot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/matzehuels/visigraph/pkg/graph"
	"github.com/matzehuels/visigraph/pkg/palette"
)

func TestToDOTUndirected(t *testing.T) {
	g := graph.New("pair", graph.Rules{}, nil)
	a := g.AddVertex(10, 20)
	b := g.AddVertex(-30.5, 0)
	g.Connect(a, b)

	out := ToDOT(g, Options{})
	assert.True(t, strings.HasPrefix(out, "graph \"pair\" {\n"), out)
	assert.Contains(t, out, "layout=neato;")
	assert.Contains(t, out, "inputscale=72;")
	assert.Contains(t, out, `"0" [pos="10,-20!"`)
	assert.Contains(t, out, `"1" [pos="-30.5,0!"`)
	assert.Contains(t, out, `"0" -- "1" [`)
	assert.NotContains(t, out, "xlabel")
}

func TestToDOTDirected(t *testing.T) {
	g := graph.New("arrows", graph.Rules{DirectedEdges: true}, nil)
	a, b := g.AddVertex(0, 0), g.AddVertex(50, 0)
	g.Connect(a, b)

	out := ToDOT(g, Options{})
	assert.True(t, strings.HasPrefix(out, "digraph \"arrows\" {"))
	assert.Contains(t, out, `"0" -> "1" [`)
	assert.NotContains(t, out, "dir=none")
}

func TestToDOTLabels(t *testing.T) {
	g := graph.New("labels", graph.Rules{}, nil)
	a, b := g.AddVertex(0, 0), g.AddVertex(50, 0)
	a.Label.Set(`say "hi"`)
	e := g.Connect(a, b)
	e.Weight.Set(2.5)

	out := ToDOT(g, Options{Labels: true, Weights: true})
	assert.Contains(t, out, `xlabel="say \"hi\" 1"`)
	assert.Contains(t, out, `label="e0 2.5"`)

	out = ToDOT(g, Options{Weights: true})
	assert.Contains(t, out, `label="2.5"`)
}

func TestToDOTPalette(t *testing.T) {
	g := graph.New("colors", graph.Rules{}, nil)
	v := g.AddVertex(0, 0)
	v.Color.Set(1)
	p := palette.Default()
	p.Background = palette.RGB(0, 0, 0)

	out := ToDOT(g, Options{Palette: &p})
	assert.Contains(t, out, `bgcolor="#000000FF"`)
	assert.Contains(t, out, `fillcolor="`+p.VertexFill(1).Hex()+`"`)
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="44pt" viewBox="0.00 0.00 62.00 44.00" xmlns="x"><g/></svg>`)
	out := string(normalizeViewBox(in))
	assert.Equal(t, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 44.00" width="62" height="44"><g/></svg>`, out)

	plain := []byte(`<svg><g/></svg>`)
	assert.Equal(t, plain, normalizeViewBox(plain))
}
