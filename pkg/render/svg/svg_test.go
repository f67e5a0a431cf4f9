package svg

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/visigraph/pkg/geometry"
	"github.com/matzehuels/visigraph/pkg/graph"
	"github.com/matzehuels/visigraph/pkg/palette"
	"github.com/matzehuels/visigraph/pkg/settings"
)

func wellFormed(t *testing.T, data []byte) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(string(data)))
	for {
		_, err := dec.Token()
		if err != nil {
			require.Equal(t, "EOF", err.Error(), "invalid XML:\n%s", data)
			return
		}
	}
}

func TestRenderViewBox(t *testing.T) {
	g := graph.New("pair", graph.Rules{}, nil)
	a := g.AddVertex(0, 0)
	b := g.AddVertex(100, 0)
	g.Connect(a, b)

	out := string(Render(g))
	wellFormed(t, []byte(out))
	assert.Contains(t, out, `viewBox="-25 -25 150 50"`)
	assert.Contains(t, out, `width="150" height="50"`)
	assert.Contains(t, out, `<title>pair</title>`)
	assert.Contains(t, out, `<line class="edge" id="edge-0" x1="0" y1="0" x2="100" y2="0"`)
	assert.Equal(t, 2, strings.Count(out, `class="vertex"`))
}

func TestRenderEmptyGraph(t *testing.T) {
	out := Render(graph.New("empty", graph.Rules{}, nil), WithPadding(10))
	wellFormed(t, out)
	assert.Contains(t, string(out), `viewBox="-10 -10 20 20"`)
}

func TestRenderEdgeShapes(t *testing.T) {
	g := graph.New("shapes", graph.Rules{Loops: true, MultipleEdges: true, Cycles: true, DirectedEdges: true}, nil)
	a := g.AddVertex(0, 0)
	b := g.AddVertex(100, 0)
	g.Connect(a, a)
	curved := g.Connect(a, b)
	require.NotNil(t, curved)
	curved.Handle.Set(geometry.Pt(50, 40))
	require.False(t, curved.IsLinear())

	out := string(Render(g))
	wellFormed(t, []byte(out))
	assert.Contains(t, out, `<circle class="edge" id="edge-0"`)
	assert.Contains(t, out, `<path class="edge" id="edge-1" d="M `)
	assert.Contains(t, out, " A ")
	assert.Equal(t, 1, strings.Count(out, `class="arrow"`), "loops carry no arrowhead")
}

func TestArcPathFlags(t *testing.T) {
	c := geometry.Pt(0, 0)
	assert.Equal(t, "M 10 0 A 10 10 0 0 0 0 -10", arcPath(geometry.Arc{Center: c, Radius: 10, Start: 0, Extent: 90}))
	assert.Equal(t, "M 10 0 A 10 10 0 1 0 0 10", arcPath(geometry.Arc{Center: c, Radius: 10, Start: 0, Extent: 270}))
	assert.Equal(t, "M 10 0 A 10 10 0 0 1 0 10", arcPath(geometry.Arc{Center: c, Radius: 10, Start: 0, Extent: -90}))
}

func TestRenderDisplayOptions(t *testing.T) {
	g := graph.New("labels", graph.Rules{}, nil)
	v := g.AddVertex(0, 0)
	v.Label.Set("a<b")
	v.Weight.Set(2.5)
	g.AddCaption(10, 10, "first\nsecond")

	out := string(Render(g, WithDisplay(settings.Display{VertexLabels: true, VertexWeights: true, Captions: true})))
	wellFormed(t, []byte(out))
	assert.Contains(t, out, ">a&lt;b 2.5</text>")
	assert.Contains(t, out, `<tspan x="10" dy="0">first</tspan>`)
	assert.Contains(t, out, `<tspan x="10" dy="16.8">second</tspan>`)

	bare := string(Render(g, WithDisplay(settings.Display{})))
	assert.NotContains(t, bare, "a&lt;b")
	assert.NotContains(t, bare, "tspan")
}

func TestRenderColors(t *testing.T) {
	g := graph.New("colors", graph.Rules{}, nil)
	v := g.AddVertex(0, 0)
	v.Color.Set(0)
	p := palette.Default()
	p.Background = palette.RGB(1, 2, 3)

	out := string(Render(g, WithPalette(p)))
	assert.Contains(t, out, `fill="`+p.Background.CSS()+`"`)
	assert.Contains(t, out, `fill="`+p.VertexFill(0).CSS()+`"`)

	out = string(Render(g, WithTransparentBackground()))
	assert.NotContains(t, out, "<rect")
}

func TestRenderCrossings(t *testing.T) {
	g := graph.New("x", graph.Rules{}, nil)
	a, b := g.AddVertex(0, 0), g.AddVertex(100, 100)
	c, d := g.AddVertex(100, 0), g.AddVertex(0, 100)
	g.Connect(a, b)
	g.Connect(c, d)

	out := string(Render(g, WithDisplay(settings.Display{Crossings: true})))
	assert.Equal(t, 1, strings.Count(out, `class="crossing"`))
	assert.Contains(t, out, `cx="50" cy="50"`)
}

func TestNum(t *testing.T) {
	assert.Equal(t, "0", num(-0.001))
	assert.Equal(t, "1.5", num(1.5))
	assert.Equal(t, "3", num(3))
	assert.Equal(t, "-2.25", num(-2.25))
}
