// Package render turns graphs into pictures.
//
// Rendering is a one-way projection: the output is not a storage format
// and cannot be read back. Use package codec to persist graphs.
//
// Two renderers are available:
//
//   - [svg]: draws the graph exactly as placed, with arcs for curved
//     edges, arrowheads for directed edges and optional labels, weights,
//     captions and crossing markers. No external tools are needed.
//   - [dot]: emits Graphviz DOT source with every vertex pinned to its
//     position and renders it through Graphviz (neato), for users who
//     want Graphviz styling or further processing with Graphviz tools.
//
// Both renderers use the same coordinate space as the graph model, with
// y growing downwards.
//
//	data := svg.Render(g, svg.WithPalette(cfg.Palette), svg.WithDisplay(cfg.Display))
//
//	src := dot.ToDOT(g, dot.Options{Labels: true})
//	data, err := dot.RenderSVG(ctx, src)
//
// [svg]: github.com/matzehuels/visigraph/pkg/render/svg
// [dot]: github.com/matzehuels/visigraph/pkg/render/dot
package render
