package generator

import (
	"github.com/matzehuels/visigraph/pkg/errors"
	"github.com/matzehuels/visigraph/pkg/graph"
)

// BooleanRule is a rule value together with its enforcement policy.
type BooleanRule int

const (
	ForcedTrue BooleanRule = iota
	DefaultTrue
	ForcedFalse
	DefaultFalse
)

// IsTrue reports the rule value.
func (r BooleanRule) IsTrue() bool { return r == ForcedTrue || r == DefaultTrue }

// IsForced reports whether callers are bound to the rule value.
func (r BooleanRule) IsForced() bool { return r == ForcedTrue || r == ForcedFalse }

func (r BooleanRule) String() string {
	switch r {
	case ForcedTrue:
		return "forced true"
	case DefaultTrue:
		return "default true"
	case ForcedFalse:
		return "forced false"
	case DefaultFalse:
		return "default false"
	default:
		return "unknown"
	}
}

// choose applies a caller choice unless the rule is forced.
func (r BooleanRule) choose(override *bool) bool {
	if override == nil || r.IsForced() {
		return r.IsTrue()
	}
	return *override
}

// Rules are the structural rules a generator declares.
type Rules struct {
	Loops         BooleanRule
	MultipleEdges BooleanRule
	DirectedEdges BooleanRule
	Cycles        BooleanRule
}

// Validate rejects rules that forbid cycles while allowing loops or
// multiple edges. With cycles forced off, loops and multiple edges must be
// forced off too; with cycles off by default, they must at least be off by
// default.
func (r Rules) Validate() error {
	switch r.Cycles {
	case ForcedFalse:
		if r.Loops != ForcedFalse || r.MultipleEdges != ForcedFalse {
			return errors.New(errors.ErrCodeInvalidGenerator,
				"cycles are forced off but loops are %s and multiple edges are %s", r.Loops, r.MultipleEdges)
		}
	case DefaultFalse:
		if r.Loops.IsTrue() || r.MultipleEdges.IsTrue() {
			return errors.New(errors.ErrCodeInvalidGenerator,
				"cycles are off by default but loops are %s and multiple edges are %s", r.Loops, r.MultipleEdges)
		}
	}
	return nil
}

// Defaults returns the rule values without caller input.
func (r Rules) Defaults() graph.Rules {
	return r.Resolve(Overrides{})
}

// Overrides are caller choices for non-forced rules. A nil field keeps the
// generator's default.
type Overrides struct {
	Loops         *bool
	MultipleEdges *bool
	DirectedEdges *bool
	Cycles        *bool
}

// Resolve combines the declared rules with caller choices. Forced rules
// always win. A graph without cycles cannot hold loops or parallel edges,
// so resolving cycles off turns both off as well.
func (r Rules) Resolve(o Overrides) graph.Rules {
	out := graph.Rules{
		Loops:         r.Loops.choose(o.Loops),
		MultipleEdges: r.MultipleEdges.choose(o.MultipleEdges),
		DirectedEdges: r.DirectedEdges.choose(o.DirectedEdges),
		Cycles:        r.Cycles.choose(o.Cycles),
	}
	if !out.Cycles {
		out.Loops = false
		out.MultipleEdges = false
	}
	return out
}
