// Package generator builds parameterized families of graphs.
//
// A [Generator] declares the structural rules its graphs obey as
// [BooleanRule] values. A forced rule cannot be changed by the caller; a
// default rule is a preference the caller may override through
// [Overrides]. [Rules.Resolve] reconciles the two into [graph.Rules].
//
// Generators live in a [Registry]. Registration checks that the declared
// rules are consistent: a generator that forbids cycles must not allow
// loops or multiple edges, since either one is a cycle. An inconsistent
// generator is a programming error and fails at registration, not when it
// is first run.
//
// # Usage
//
//	reg := generator.Builtin()
//	g, err := reg.Run(ctx, "cycle", "6", generator.Overrides{}, cfg)
//	if errors.Is(err, errors.ErrCodeInvalidParameters) {
//	    // show the generator's parameter description
//	}
//
// # Built-in generators
//
//	empty               [order (optional)]
//	cycle               [order]
//	complete            [order]
//	complete-bipartite  [order of set A] [order of set B]
//	symmetric-tree      [levels] [fan-out]
//	star                [order]
//	wheel               [order]
//	ladder              [rungs]
package generator
