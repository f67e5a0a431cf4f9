package generator

import (
	"math"
	"regexp"
	"strconv"

	"github.com/matzehuels/visigraph/pkg/errors"
	"github.com/matzehuels/visigraph/pkg/graph"
	"github.com/matzehuels/visigraph/pkg/settings"
)

// Parameters describe the argument string a generator accepts.
type Parameters struct {
	// Description is a short usage line, e.g. "[levels] [fan-out]".
	Description string
	// Pattern validates the argument string. Its capture groups hold the
	// individual arguments. A nil pattern accepts anything.
	Pattern *regexp.Regexp
}

// Generator constructs graphs of one family.
type Generator interface {
	// Name is the registry key, e.g. "complete-bipartite".
	Name() string
	// Description is the display name of the family, e.g. "Cycle graph".
	Description() string
	Rules() Rules
	Parameters() Parameters
	// Generate builds a graph under the given rules. params must match the
	// parameter pattern.
	Generate(params string, rules graph.Rules, cfg *settings.Settings) (*graph.Graph, error)
}

// Sizer is implemented by generators that can tell how large a graph will
// be before building it.
type Sizer interface {
	// Size returns the vertex count and an upper bound on the edge count
	// Generate builds for params. Edges the graph rules reject are not
	// subtracted. Counts too large for an int saturate at math.MaxInt.
	Size(params string) (vertices, edges int, err error)
}

// builder adds the vertices and edges of one family member to g. args
// holds one entry per capture group; absent optional groups are -1.
type builder func(g *graph.Graph, args []int)

// family is a Generator backed by a builder function.
type family struct {
	name        string
	description string
	rules       Rules
	params      Parameters
	build       builder
	// size counts the vertices and edges build adds for args.
	size func(args []int) (vertices, edges float64)
	// args, if set, converts the capture groups into builder arguments in
	// place of the default one-integer-per-group parsing.
	args func(groups []string) ([]int, error)
}

func (f *family) Name() string           { return f.name }
func (f *family) Description() string    { return f.description }
func (f *family) Rules() Rules           { return f.rules }
func (f *family) Parameters() Parameters { return f.params }

func (f *family) Generate(params string, rules graph.Rules, cfg *settings.Settings) (*graph.Graph, error) {
	args, err := f.parse(params)
	if err != nil {
		return nil, err
	}
	cfg = settings.OrDefault(cfg)
	g := graph.New(cfg.Graph.Name+" "+f.description, rules, cfg)
	g.Batch(func() { f.build(g, args) })
	return g, nil
}

func (f *family) Size(params string) (vertices, edges int, err error) {
	args, err := f.parse(params)
	if err != nil {
		return 0, 0, err
	}
	v, e := f.size(args)
	return saturate(v), saturate(e), nil
}

func saturate(n float64) int {
	if n >= math.MaxInt {
		return math.MaxInt
	}
	return int(n)
}

func (f *family) parse(params string) ([]int, error) {
	m := f.params.Pattern.FindStringSubmatch(params)
	if m == nil {
		return nil, errors.New(errors.ErrCodeInvalidParameters,
			"%s expects %s, got %q", f.name, f.params.Description, params)
	}
	if f.args != nil {
		return f.args(m[1:])
	}
	args := make([]int, 0, len(m)-1)
	for _, s := range m[1:] {
		if s == "" {
			args = append(args, -1)
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidParameters, err, "%s: parameter %q", f.name, s)
		}
		args = append(args, n)
	}
	return args, nil
}
