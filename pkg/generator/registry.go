package generator

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/visigraph/pkg/errors"
	"github.com/matzehuels/visigraph/pkg/graph"
	"github.com/matzehuels/visigraph/pkg/observability"
	"github.com/matzehuels/visigraph/pkg/settings"
)

// Registry holds generators by name. It is safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	generators map[string]Generator
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{generators: make(map[string]Generator)}
}

// Register adds gen. It fails with ErrCodeInvalidGenerator if the name is
// empty or taken, or if the declared rules are inconsistent.
func (r *Registry) Register(gen Generator) error {
	name := gen.Name()
	if strings.TrimSpace(name) == "" {
		return errors.New(errors.ErrCodeInvalidGenerator, "generator has no name")
	}
	if err := gen.Rules().Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidGenerator, err, "register %s", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.generators[name]; ok {
		return errors.New(errors.ErrCodeInvalidGenerator, "generator %q already registered", name)
	}
	r.generators[name] = gen
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(gen Generator) {
	if err := r.Register(gen); err != nil {
		panic(err)
	}
}

// Get returns the generator registered under name.
func (r *Registry) Get(name string) (Generator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	gen, ok := r.generators[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeGeneratorNotFound, "unknown generator %q", name)
	}
	return gen, nil
}

// List returns all generators sorted by name.
func (r *Registry) List() []Generator {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Generator, 0, len(r.generators))
	for _, gen := range r.generators {
		out = append(out, gen)
	}
	slices.SortFunc(out, func(a, b Generator) int { return strings.Compare(a.Name(), b.Name()) })
	return out
}

// CheckSize rejects params that would make the named generator build more
// than maxVertices vertices or maxEdges edges. A limit of zero or less is
// no limit. Generators that cannot tell their size in advance pass.
func (r *Registry) CheckSize(name, params string, maxVertices, maxEdges int) error {
	gen, err := r.Get(name)
	if err != nil {
		return err
	}
	sizer, ok := gen.(Sizer)
	if !ok {
		return nil
	}
	vertices, edges, err := sizer.Size(params)
	if err != nil {
		return err
	}
	if maxVertices > 0 && vertices > maxVertices {
		return errors.New(errors.ErrCodeInvalidParameters,
			"%s %q has %d vertices, more than the limit of %d", name, params, vertices, maxVertices)
	}
	if maxEdges > 0 && edges > maxEdges {
		return errors.New(errors.ErrCodeInvalidParameters,
			"%s %q has %d edges, more than the limit of %d", name, params, edges, maxEdges)
	}
	return nil
}

// Run validates params against the generator's pattern, resolves the
// rules against the caller's overrides and generates the graph.
func (r *Registry) Run(ctx context.Context, name, params string, o Overrides, cfg *settings.Settings) (*graph.Graph, error) {
	gen, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	if err := errors.ValidateParameters(params, gen.Parameters().Pattern); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidParameters, err, "%s expects %s", name, gen.Parameters().Description)
	}

	hooks := observability.Workbench()
	hooks.OnGenerateStart(ctx, name, params)
	start := time.Now()

	g, err := gen.Generate(params, gen.Rules().Resolve(o), cfg)
	if err != nil {
		hooks.OnGenerateComplete(ctx, name, 0, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnGenerateComplete(ctx, name, g.Vertices.Len(), g.Edges.Len(), time.Since(start), nil)
	return g, nil
}
