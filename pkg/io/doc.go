// Package io reads and writes graph files.
//
// # Formats
//
// Two file formats are supported, chosen by extension:
//
//   - .vsg: the native graph document of package codec. It stores every
//     property of every vertex, edge and caption and round-trips losslessly.
//   - .json: a plain node-link interchange format for external tools.
//     Only ids, labels, positions, weights and colors survive. Nodes
//     without a position are arranged on a circle after import.
//
// The node-link format looks like this:
//
//	{
//	  "nodes": [{"id": "a", "x": 0, "y": 0}, {"id": "b"}],
//	  "edges": [{"from": "a", "to": "b"}]
//	}
//
// # Import
//
// Use [Import] to read a graph from a file path, or [Read] to read from any
// io.Reader in a given [Format]:
//
//	g, err := io.Import("cycle.vsg", cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// A failed read never returns a partial graph.
//
// # Export
//
// Use [Export] to write a graph to a file, or [Write] to write to any
// io.Writer:
//
//	err := io.Export(g, "cycle.json")
package io
