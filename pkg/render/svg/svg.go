// Package svg renders graphs as SVG documents.
package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/visigraph/pkg/analysis"
	"github.com/matzehuels/visigraph/pkg/geometry"
	"github.com/matzehuels/visigraph/pkg/graph"
	"github.com/matzehuels/visigraph/pkg/palette"
	"github.com/matzehuels/visigraph/pkg/settings"
)

const fontFamily = "Helvetica, Arial, sans-serif"

// Option configures Render.
type Option func(*renderer)

type renderer struct {
	palette    palette.Palette
	display    settings.Display
	padding    float64
	background bool
	arrowRatio float64
}

// WithPalette sets the colors. The default is the graph's configured
// palette.
func WithPalette(p palette.Palette) Option { return func(r *renderer) { r.palette = p } }

// WithDisplay selects the optional elements to draw. The default is the
// graph's configured display settings.
func WithDisplay(d settings.Display) Option { return func(r *renderer) { r.display = d } }

// WithPadding sets the margin around the drawing. The default is 20.
func WithPadding(p float64) Option { return func(r *renderer) { r.padding = p } }

// WithTransparentBackground leaves out the background rectangle.
func WithTransparentBackground() Option { return func(r *renderer) { r.background = false } }

// Render draws g. An empty graph yields an empty drawing of the padding
// size.
func Render(g *graph.Graph, opts ...Option) []byte {
	cfg := g.Settings()
	r := renderer{
		palette:    cfg.Palette,
		display:    cfg.Display,
		padding:    20,
		background: true,
		arrowRatio: cfg.Edge.ArrowRatio,
	}
	for _, opt := range opts {
		opt(&r)
	}

	lo, hi, ok := g.Bounds()
	if !ok {
		lo, hi = geometry.Point{}, geometry.Point{}
	}
	x, y := lo.X-r.padding, lo.Y-r.padding
	w, h := hi.X-lo.X+2*r.padding, hi.Y-lo.Y+2*r.padding

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s" width="%.0f" height="%.0f">`+"\n",
		num(x), num(y), num(w), num(h), w, h)
	fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(g.Name.Get()))
	if r.background {
		fmt.Fprintf(&buf, `  <rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
			num(x), num(y), num(w), num(h), r.palette.Background.CSS())
	}

	for _, e := range g.Edges.Items() {
		r.renderEdge(&buf, e)
	}
	for _, v := range g.Vertices.Items() {
		r.renderVertex(&buf, v)
	}
	if r.display.Captions {
		for _, c := range g.Captions.Items() {
			r.renderCaption(&buf, c)
		}
	}
	if r.display.Crossings {
		for _, p := range analysis.CrossingPoints(g) {
			fmt.Fprintf(&buf, `  <circle class="crossing" cx="%s" cy="%s" r="3" fill="%s"/>`+"\n",
				num(p.X), num(p.Y), r.palette.Crossing.CSS())
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// =============================================================================
// Edges
// =============================================================================

func (r *renderer) renderEdge(buf *bytes.Buffer, e *graph.Edge) {
	stroke := r.palette.EdgeLine(e.Color.Get())
	if e.Selected.Get() {
		stroke = r.palette.SelectedEdge
	}
	attrs := fmt.Sprintf(`stroke="%s" stroke-width="%s" fill="none"`, stroke.CSS(), num(e.Thickness.Get()))
	from, to := e.From().Position(), e.To().Position()

	switch {
	case e.IsLinear():
		fmt.Fprintf(buf, `  <line class="edge" id="edge-%s" x1="%s" y1="%s" x2="%s" y2="%s" %s/>`+"\n",
			escapeXML(e.ID.Get()), num(from.X), num(from.Y), num(to.X), num(to.Y), attrs)
	case e.IsLoop():
		a := e.Arc()
		fmt.Fprintf(buf, `  <circle class="edge" id="edge-%s" cx="%s" cy="%s" r="%s" %s/>`+"\n",
			escapeXML(e.ID.Get()), num(a.Center.X), num(a.Center.Y), num(a.Radius), attrs)
	default:
		fmt.Fprintf(buf, `  <path class="edge" id="edge-%s" d="%s" %s/>`+"\n",
			escapeXML(e.ID.Get()), arcPath(e.Arc()), attrs)
	}

	if e.Directed && !e.IsLoop() {
		r.renderArrow(buf, e, stroke)
	}
	if r.display.EdgeHandles && e.Selected.Get() {
		h := e.Handle.Get()
		fmt.Fprintf(buf, `  <circle class="handle" cx="%s" cy="%s" r="3" fill="%s"/>`+"\n",
			num(h.X), num(h.Y), r.palette.EdgeHandle.CSS())
	}

	var text []string
	if r.display.EdgeLabels {
		text = append(text, e.Label.Get())
	}
	if r.display.EdgeWeights {
		text = append(text, num(e.Weight.Get()))
	}
	if len(text) > 0 {
		h := e.Handle.Get()
		fmt.Fprintf(buf, `  <text x="%s" y="%s" font-family="%s" font-size="10" text-anchor="middle" fill="%s">%s</text>`+"\n",
			num(h.X), num(h.Y-6), fontFamily, stroke.CSS(), escapeXML(strings.Join(text, " ")))
	}
}

// arcPath draws an arc from its start to its end point. Positive extents
// sweep counter-clockwise on screen, which is SVG's negative direction.
func arcPath(a geometry.Arc) string {
	p0, p1 := a.StartPoint(), a.EndPoint()
	large, sweep := 0, 0
	if math.Abs(a.Extent) > 180 {
		large = 1
	}
	if a.Extent < 0 {
		sweep = 1
	}
	return fmt.Sprintf("M %s %s A %s %s 0 %d %d %s %s",
		num(p0.X), num(p0.Y), num(a.Radius), num(a.Radius), large, sweep, num(p1.X), num(p1.Y))
}

// renderArrow draws an arrowhead whose tip touches the target vertex disc.
func (r *renderer) renderArrow(buf *bytes.Buffer, e *graph.Edge, color palette.Color) {
	to := e.To().Position()
	dir := arrivalDirection(e)
	if dir == (geometry.Point{}) {
		return
	}
	tip := to.Sub(dir.Scale(e.To().Radius.Get()))
	size := r.arrowRatio * e.Thickness.Get() * 2
	back := tip.Sub(dir.Scale(size))
	normal := geometry.Pt(-dir.Y, dir.X).Scale(size / 2)
	l, rt := back.Add(normal), back.Sub(normal)
	fmt.Fprintf(buf, `  <polygon class="arrow" points="%s,%s %s,%s %s,%s" fill="%s"/>`+"\n",
		num(tip.X), num(tip.Y), num(l.X), num(l.Y), num(rt.X), num(rt.Y), color.CSS())
}

// arrivalDirection returns the unit direction in which the edge enters its
// target vertex.
func arrivalDirection(e *graph.Edge) geometry.Point {
	to := e.To().Position()
	before := e.From().Position()
	if !e.IsLinear() {
		a := e.Arc()
		step := math.Copysign(1, a.Extent)
		if to.DistanceSq(a.EndPoint()) <= to.DistanceSq(a.StartPoint()) {
			before = geometry.Arc{Center: a.Center, Radius: a.Radius, Start: a.Start + a.Extent - step}.StartPoint()
		} else {
			before = geometry.Arc{Center: a.Center, Radius: a.Radius, Start: a.Start + step}.StartPoint()
		}
	}
	d := to.Sub(before)
	n := math.Hypot(d.X, d.Y)
	if n == 0 {
		return geometry.Point{}
	}
	return d.Scale(1 / n)
}

// =============================================================================
// Vertices and captions
// =============================================================================

func (r *renderer) renderVertex(buf *bytes.Buffer, v *graph.Vertex) {
	fill, line := r.palette.VertexFill(v.Color.Get()), r.palette.VertexLine
	if v.Selected.Get() {
		fill, line = palette.Blend(fill, r.palette.SelectedFill), r.palette.SelectedLine
	}
	p := v.Position()
	fmt.Fprintf(buf, `  <circle class="vertex" id="vertex-%s" cx="%s" cy="%s" r="%s" fill="%s" stroke="%s"/>`+"\n",
		escapeXML(v.ID.Get()), num(p.X), num(p.Y), num(v.Radius.Get()), fill.CSS(), line.CSS())

	var text []string
	if r.display.VertexLabels {
		text = append(text, v.Label.Get())
	}
	if r.display.VertexWeights {
		text = append(text, num(v.Weight.Get()))
	}
	if len(text) > 0 {
		fmt.Fprintf(buf, `  <text x="%s" y="%s" font-family="%s" font-size="12" text-anchor="middle" fill="%s">%s</text>`+"\n",
			num(p.X), num(p.Y-v.Radius.Get()-4), fontFamily, r.palette.CaptionText.CSS(), escapeXML(strings.Join(text, " ")))
	}
}

func (r *renderer) renderCaption(buf *bytes.Buffer, c *graph.Caption) {
	size := c.Size.Get()
	fmt.Fprintf(buf, `  <text class="caption" x="%s" y="%s" font-family="%s" font-size="%s" fill="%s">`,
		num(c.X.Get()), num(c.Y.Get()), fontFamily, num(size), r.palette.CaptionText.CSS())
	for i, line := range strings.Split(c.Text.Get(), "\n") {
		dy := "0"
		if i > 0 {
			dy = num(size * 1.2)
		}
		fmt.Fprintf(buf, `<tspan x="%s" dy="%s">%s</tspan>`, num(c.X.Get()), dy, escapeXML(line))
	}
	buf.WriteString("</text>\n")
}

// num formats a coordinate with at most two decimals.
func num(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" {
		return "0"
	}
	return s
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
