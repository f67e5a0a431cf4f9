// Package codec reads and writes graph documents.
//
// A graph document is a JSON object holding the graph name, its four rule
// flags and arrays of vertices, edges and captions. Documents are the
// contents of .vsg files:
//
//	{ "name" : "Untitled Cycle graph", "allowLoops" : false, ...,
//	  "vertices" : [ { "id" : "0", "x" : 0, "y" : -30, ... }, ... ],
//	  "edges" : [ { "from" : "0", "to" : "1", "isLinear" : true, ... } ] }
//
// The scanner is a small character reader with a single step of lookahead
// ([Tokenizer.MoveBack]). It accepts a few things strict JSON does not:
// single-quoted strings, trailing commas, empty array slots (read as null),
// ';' between members and case-insensitive true, false and null.
// Documents written by older versions use "vertexes", "from.id" and
// "areLoopsAllowed" style keys; those are read as well.
//
// Decoding builds a fresh graph and returns it only when the whole
// document was read without error.
package codec
