package layout

import (
	"context"
	"maps"
	"slices"
	"time"

	"github.com/matzehuels/visigraph/pkg/errors"
	"github.com/matzehuels/visigraph/pkg/graph"
	"github.com/matzehuels/visigraph/pkg/observability"
)

// Algorithm is a named layout operation. It reports whether it moved
// anything.
type Algorithm func(g *graph.Graph) bool

var algorithms = map[string]Algorithm{
	"grid":                  Grid,
	"circle":                Circle,
	"tree":                  Tree,
	"align-horizontal":      AlignHorizontal,
	"align-vertical":        AlignVertical,
	"distribute-horizontal": DistributeHorizontal,
	"distribute-vertical":   DistributeVertical,
	"flip-horizontal":       FlipHorizontal,
	"flip-vertical":         FlipVertical,
	"rotate-left":           RotateLeft,
	"rotate-right":          RotateRight,
	"contract":              Contract,
	"expand":                Expand,
	"straighten":            StraightenEdges,
	"force": func(g *graph.Graph) bool {
		_, _, err := NewSimulation(g).Run(context.Background())
		return err == nil
	},
}

// Names returns the registered algorithm names in sorted order.
func Names() []string {
	return slices.Sorted(maps.Keys(algorithms))
}

// Lookup returns the algorithm registered under name.
func Lookup(name string) (Algorithm, error) {
	a, ok := algorithms[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "unknown layout algorithm %q (available: %v)", name, Names())
	}
	return a, nil
}

// Apply runs the named algorithm on g.
func Apply(g *graph.Graph, name string) (bool, error) {
	a, err := Lookup(name)
	if err != nil {
		return false, err
	}
	return a(g), nil
}

// Run is like Apply but honors ctx for the force simulation and reports
// the operation to the workbench hooks.
func Run(ctx context.Context, g *graph.Graph, name string) (moved bool, err error) {
	a, err := Lookup(name)
	if err != nil {
		return false, err
	}
	start := time.Now()
	observability.Workbench().OnLayoutStart(ctx, name, g.Vertices.Len())
	defer func() {
		observability.Workbench().OnLayoutComplete(ctx, name, time.Since(start), err)
	}()

	if name == "force" {
		if _, _, err := NewSimulation(g).Run(ctx); err != nil {
			return true, err
		}
		return true, nil
	}
	return a(g), nil
}
