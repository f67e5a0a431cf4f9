// Package functions exposes graph analyses and edits as named functions.
//
// Each [Function] evaluates to a single value: a count, a flag or a
// distance. Functions that edit the graph, such as the colorings, report
// [Function.Mutates] so that read-only callers can skip them:
//
//	for _, r := range functions.EvaluateAll(g) {
//	    fmt.Println(r.Name, functions.Format(r.Value))
//	}
package functions

import (
	"maps"
	"math"
	"slices"
	"strconv"

	"github.com/matzehuels/visigraph/pkg/analysis"
	"github.com/matzehuels/visigraph/pkg/errors"
	"github.com/matzehuels/visigraph/pkg/graph"
	"github.com/matzehuels/visigraph/pkg/layout"
)

// Function is a named evaluation over a graph.
type Function interface {
	Name() string
	Description() string
	// Mutates reports whether Evaluate edits the graph.
	Mutates() bool
	// Evaluate computes the value: an int, float64 or bool.
	Evaluate(g *graph.Graph) (any, error)
}

// Result is the outcome of one evaluation.
type Result struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
	Error string `json:"error,omitempty"`
}

type function struct {
	name        string
	description string
	mutates     bool
	eval        func(g *graph.Graph) (any, error)
}

func (f function) Name() string                         { return f.name }
func (f function) Description() string                  { return f.description }
func (f function) Mutates() bool                        { return f.mutates }
func (f function) Evaluate(g *graph.Graph) (any, error) { return f.eval(g) }

func pure[T any](fn func(*graph.Graph) T) func(*graph.Graph) (any, error) {
	return func(g *graph.Graph) (any, error) { return fn(g), nil }
}

func distance(fn func(*graph.Graph, bool) (float64, error), weighted bool) func(*graph.Graph) (any, error) {
	return func(g *graph.Graph) (any, error) { return fn(g, weighted) }
}

var registry = map[string]Function{}

func register(f function) {
	registry[f.name] = f
}

func init() {
	register(function{"vertex-count", "Number of vertices", false, pure(func(g *graph.Graph) int { return g.Vertices.Len() })})
	register(function{"edge-count", "Number of edges", false, pure(func(g *graph.Graph) int { return g.Edges.Len() })})
	register(function{"crossing-count", "Number of edge crossings among the selected edges, or all edges", false, pure(analysis.CountCrossings)})
	register(function{"connected", "Whether the graph is weakly connected", false, pure(analysis.IsConnected)})
	register(function{"weak-components", "Number of weakly connected components", false,
		pure(func(g *graph.Graph) int { return len(analysis.WeaklyConnectedComponents(g)) })})
	register(function{"strong-components", "Number of strongly connected components", false,
		pure(func(g *graph.Graph) int { return len(analysis.StronglyConnectedComponents(g)) })})
	register(function{"cyclic", "Whether the graph contains a cycle", false, pure(analysis.IsCyclic)})
	register(function{"eulerian", "Whether the graph has an Eulerian circuit", false, pure(analysis.IsEulerian)})
	register(function{"average-degree", "Mean degree of the selected vertices, or all vertices", false, pure(analysis.AverageDegree)})
	register(function{"diameter", "Greatest hop distance between two vertices", false, distance(analysis.Diameter, false)})
	register(function{"radius", "Smallest hop eccentricity", false, distance(analysis.Radius, false)})
	register(function{"weighted-diameter", "Greatest weighted distance between two vertices", false, distance(analysis.Diameter, true)})
	register(function{"weighted-radius", "Smallest weighted eccentricity", false, distance(analysis.Radius, true)})
	register(function{"two-coloring", "Colors the graph with two colors if it is bipartite", true, pure(analysis.TwoColor)})
	register(function{"color-components", "Colors each weakly connected component", true, pure(analysis.ColorComponents)})
	register(function{"straighten-edges", "Straightens the selected edges, or all edges", true, pure(layout.StraightenEdges)})
	register(function{"reverse-edges", "Reverses the selected edges, or all edges", true,
		func(g *graph.Graph) (any, error) { return g.ReverseEdges() }})
	register(function{"subdivide-edges", "Splits the selected edges, or all edges, at their handle", true,
		pure((*graph.Graph).SubdivideEdges)})
}

// Names returns the registered function names in sorted order.
func Names() []string {
	return slices.Sorted(maps.Keys(registry))
}

// Lookup returns the function registered under name.
func Lookup(name string) (Function, error) {
	f, ok := registry[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "unknown function %q (available: %v)", name, Names())
	}
	return f, nil
}

// Evaluate runs the named function on g.
func Evaluate(g *graph.Graph, name string) (any, error) {
	f, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return f.Evaluate(g)
}

// EvaluateAll runs every function that leaves the graph untouched, in name
// order. Failures are reported in the result rather than aborting.
func EvaluateAll(g *graph.Graph) []Result {
	var out []Result
	for _, name := range Names() {
		f := registry[name]
		if f.Mutates() {
			continue
		}
		r := Result{Name: name}
		if v, err := f.Evaluate(g); err != nil {
			r.Error = errors.UserMessage(err)
		} else {
			r.Value = jsonSafe(v)
		}
		out = append(out, r)
	}
	return out
}

// jsonSafe replaces infinite distances, which JSON cannot carry, with the
// string "inf".
func jsonSafe(v any) any {
	if f, ok := v.(float64); ok && math.IsInf(f, 0) {
		return Format(f)
	}
	return v
}

// Format renders a function value for display.
func Format(v any) string {
	switch v := v.(type) {
	case float64:
		if math.IsInf(v, 1) {
			return "inf"
		}
		return strconv.FormatFloat(v, 'g', 6, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	case string:
		return v
	case nil:
		return ""
	default:
		return "?"
	}
}
