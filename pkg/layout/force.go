package layout

import (
	"context"
	"math"

	"github.com/matzehuels/visigraph/pkg/geometry"
	"github.com/matzehuels/visigraph/pkg/graph"
	"github.com/matzehuels/visigraph/pkg/settings"
)

// Simulation is a resumable force-directed relaxation. Vertices repel each
// other like charges and edges pull their endpoints like springs.
type Simulation struct {
	g          *graph.Graph
	cfg        settings.Force
	velocities map[*graph.Vertex]geometry.Point
	steps      int
}

// NewSimulation starts a relaxation of g at rest, using the force constants
// of g's settings.
func NewSimulation(g *graph.Graph) *Simulation {
	return &Simulation{
		g:          g,
		cfg:        g.Settings().Force,
		velocities: make(map[*graph.Vertex]geometry.Point),
	}
}

// Steps returns the number of steps taken so far.
func (s *Simulation) Steps() int { return s.steps }

// Velocity returns the current velocity of v.
func (s *Simulation) Velocity(v *graph.Vertex) geometry.Point { return s.velocities[v] }

// Step advances the simulation once and returns the total kinetic energy,
// the sum of weight times squared speed over the moved vertices. Positions
// advance by velocity times speed. A graph without targets returns 0.
func (s *Simulation) Step(speed float64) float64 {
	t, ok := Select(s.g)
	if !ok {
		return 0
	}
	c := s.cfg
	forces := make(map[*graph.Vertex]geometry.Point, len(t.Vertices))
	for _, v := range t.Vertices {
		forces[v] = geometry.Point{}
	}

	for i, a := range t.Vertices {
		for _, b := range t.Vertices[:i] {
			diff := a.Position().Sub(b.Position())
			distSq := max(c.MinDistanceSq, diff.X*diff.X+diff.Y*diff.Y)
			f := c.Coulomb * c.Repulsive * a.Weight.Get() * c.Repulsive * b.Weight.Get() / distSq
			push := unit(diff).Scale(f)
			forces[a] = forces[a].Add(push)
			forces[b] = forces[b].Sub(push)
		}
	}

	for _, e := range s.g.Edges.Items() {
		if e.IsLoop() {
			continue
		}
		from, to := e.From(), e.To()
		_, fromMoves := forces[from]
		_, toMoves := forces[to]
		if !fromMoves && !toMoves {
			continue
		}
		diff := from.Position().Sub(to.Position())
		dist := math.Sqrt(max(c.MinDistanceSq, diff.X*diff.X+diff.Y*diff.Y))
		pull := unit(diff).Scale(c.Attractive * (dist - e.Weight.Get()*c.RestScale))
		if fromMoves {
			forces[from] = forces[from].Sub(pull)
		}
		if toMoves {
			forces[to] = forces[to].Add(pull)
		}
	}

	energy := 0.0
	for _, v := range t.Vertices {
		vel := s.velocities[v].Add(forces[v]).Scale(c.Damping)
		s.velocities[v] = vel
		energy += v.Weight.Get() * (vel.X*vel.X + vel.Y*vel.Y)
	}

	batch(s.g, t.Vertices, func() {
		for _, v := range t.Vertices {
			v.Translate(speed*s.velocities[v].X, speed*s.velocities[v].Y)
		}
	})
	s.steps++
	return energy
}

// Run steps the simulation at the configured speed until the kinetic energy
// falls below the configured threshold or the step limit is reached. It
// returns the last energy and whether the threshold was reached.
func (s *Simulation) Run(ctx context.Context) (energy float64, settled bool, err error) {
	for range max(s.cfg.MaxSteps, 1) {
		if err := ctx.Err(); err != nil {
			return energy, false, err
		}
		energy = s.Step(s.cfg.Speed)
		if energy < s.cfg.Threshold {
			return energy, true, nil
		}
	}
	return energy, false, nil
}

// unit returns p scaled to length 1, or the x axis for the zero vector.
func unit(p geometry.Point) geometry.Point {
	a := math.Atan2(p.Y, p.X)
	return geometry.Pt(math.Cos(a), math.Sin(a))
}
