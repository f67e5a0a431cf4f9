// Package pkg holds the libraries of the visigraph graph workbench.
//
// # Overview
//
// Visigraph edits, arranges and analyzes drawings of graphs. The packages
// build on each other in layers:
//
//  1. [observable] - properties and lists that notify listeners of changes
//  2. [geometry] - points, circles, arcs and segment intersections
//  3. [graph] - vertices, edges and captions on top of observable values
//  4. [analysis], [layout], [generator], [functions] - algorithms on graphs
//  5. [codec], [io], [render] - documents and drawings
//  6. [store], [cache] - persistence of documents and rendered exports
//
// Ambient concerns live in [settings] (koanf-backed configuration),
// [errors] (coded errors), [observability] (hooks) and [buildinfo].
//
// # Quick Start
//
// Generate a wheel graph, arrange it on a circle and render it:
//
//	import (
//	    "context"
//
//	    "github.com/matzehuels/visigraph/pkg/generator"
//	    "github.com/matzehuels/visigraph/pkg/layout"
//	    "github.com/matzehuels/visigraph/pkg/render/svg"
//	)
//
//	g, err := generator.Builtin().Run(ctx, "wheel", "8", generator.Overrides{}, nil)
//	if err != nil {
//	    return err
//	}
//	if _, err := layout.Run(ctx, g, "circle"); err != nil {
//	    return err
//	}
//	drawing := svg.Render(g)
//
// # Documents
//
// Graphs are saved as .vsg documents, a JSON dialect written and read by
// [codec]. [io] adds node-link JSON for exchange with other tools and picks
// the format from the file extension.
package pkg
