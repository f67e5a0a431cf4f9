// Package dot exports graphs as Graphviz DOT and renders them through
// Graphviz with every vertex pinned to its model position.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/visigraph/pkg/errors"
	"github.com/matzehuels/visigraph/pkg/graph"
	"github.com/matzehuels/visigraph/pkg/observability"
	"github.com/matzehuels/visigraph/pkg/palette"
)

// Options configures DOT export.
type Options struct {
	// Labels shows vertex labels next to the vertices and edge labels at
	// the edges.
	Labels bool

	// Weights appends weights to the labels.
	Weights bool

	// Palette colors vertices and edges. A nil palette uses the graph's
	// configured palette.
	Palette *palette.Palette
}

// With inputscale=72 one model unit is one Graphviz point.
const pointsPerInch = 72

// ToDOT converts g to DOT source. The graph keyword follows the graph
// rules. Vertex positions are pinned (pos="x,y!") with y negated because
// Graphviz y grows upwards.
func ToDOT(g *graph.Graph, opts Options) string {
	p := g.Settings().Palette
	if opts.Palette != nil {
		p = *opts.Palette
	}
	directed := g.Rules().DirectedEdges
	kind, arrow := "graph", "--"
	if directed {
		kind, arrow = "digraph", "->"
	}
	text := opts.Labels || opts.Weights

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s %s {\n", kind, strconv.Quote(g.Name.Get()))
	buf.WriteString("  layout=neato;\n")
	fmt.Fprintf(&buf, "  inputscale=%d;\n", pointsPerInch)
	fmt.Fprintf(&buf, "  bgcolor=%q;\n", p.Background.Hex())
	buf.WriteString("  node [shape=circle, style=filled, fixedsize=true, label=\"\", fontsize=10];\n")
	buf.WriteString("\n")

	for _, v := range g.Vertices.Items() {
		pos := v.Position()
		size := fmtNum(2 * v.Radius.Get() / pointsPerInch)
		attrs := []string{
			fmt.Sprintf("pos=\"%s,%s!\"", fmtNum(pos.X), fmtNum(-pos.Y)),
			"width=" + size,
			"height=" + size,
			fmt.Sprintf("fillcolor=%q", p.VertexFill(v.Color.Get()).Hex()),
			fmt.Sprintf("color=%q", p.VertexLine.Hex()),
		}
		if text {
			attrs = append(attrs, fmt.Sprintf("xlabel=%q", fmtLabel(v.Label.Get(), v.Weight.Get(), opts)))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", v.ID.Get(), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges.Items() {
		attrs := []string{
			fmt.Sprintf("color=%q", p.EdgeLine(e.Color.Get()).Hex()),
			"penwidth=" + fmtNum(e.Thickness.Get()),
		}
		if directed && !e.Directed {
			attrs = append(attrs, "dir=none")
		}
		if text {
			attrs = append(attrs, fmt.Sprintf("label=%q", fmtLabel(e.Label.Get(), e.Weight.Get(), opts)))
		}
		fmt.Fprintf(&buf, "  %q %s %q [%s];\n", e.From().ID.Get(), arrow, e.To().ID.Get(), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(label string, weight float64, opts Options) string {
	var parts []string
	if opts.Labels {
		parts = append(parts, label)
	}
	if opts.Weights {
		parts = append(parts, fmtNum(weight))
	}
	return strings.Join(parts, " ")
}

func fmtNum(f float64) string {
	s := strconv.FormatFloat(f, 'f', 2, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" {
		return "0"
	}
	return s
}

// RenderSVG renders DOT source to SVG using the Graphviz neato engine,
// which honors pinned positions.
func RenderSVG(ctx context.Context, dot string) (data []byte, err error) {
	start := time.Now()
	observability.Workbench().OnExportStart(ctx, "graphviz")
	defer func() {
		observability.Workbench().OnExportComplete(ctx, "graphviz", len(data), time.Since(start), err)
	}()

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "parse DOT")
	}
	defer g.Close()

	gv.SetLayout(graphviz.NEATO)
	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's svg element, which carries point
// units and a transform-dependent origin, with a plain one of the same
// size.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
