package graph

import (
	"math"

	"github.com/matzehuels/visigraph/pkg/geometry"
	"github.com/matzehuels/visigraph/pkg/observable"
)

// Edge connects two vertices of the same graph.
type Edge struct {
	observable.Base

	ID        *observable.Property[string]
	Directed  bool
	Handle    *observable.Property[geometry.Point]
	Label     *observable.Property[string]
	Color     *observable.Property[int] // palette index, -1 for uncolored
	Weight    *observable.Property[float64]
	Thickness *observable.Property[float64]
	Selected  *observable.Property[bool]
	Tag       *observable.Property[string]

	graph    *Graph
	from, to Ref

	line   geometry.Line
	linear bool
	arc    geometry.Arc
	frozen int
}

func (g *Graph) newEdge(directed bool, from, to *Vertex) *Edge {
	d := g.cfg.Edge
	id := g.NextEdgeID()
	e := &Edge{
		ID:        observable.NewProperty(id),
		Directed:  directed,
		Handle:    observable.NewProperty(geometry.Point{}),
		Label:     observable.NewProperty(d.Prefix + id),
		Color:     observable.NewProperty(d.Color),
		Weight:    observable.NewProperty(d.Weight),
		Thickness: observable.NewProperty(d.Thickness),
		Selected:  observable.NewProperty(false),
		Tag:       observable.NewProperty(""),
		graph:     g,
		from:      g.refs[from],
		to:        g.refs[to],
		linear:    true,
	}
	e.Handle.Subscribe(func(observable.Event) {
		if e.frozen == 0 {
			e.refresh()
		}
	})
	relay(&e.Base, e, e.ID, e.Handle, e.Label, e.Color, e.Weight, e.Thickness, e.Selected, e.Tag)
	e.FixHandle()
	return e
}

// copyFrom takes over every property value of o except the id.
func (e *Edge) copyFrom(o *Edge) {
	e.Label.Set(o.Label.Get())
	e.Color.Set(o.Color.Get())
	e.Weight.Set(o.Weight.Get())
	e.Thickness.Set(o.Thickness.Get())
	e.Selected.Set(o.Selected.Get())
	e.Tag.Set(o.Tag.Get())
	e.Handle.Set(o.Handle.Get())
}

// Graph returns the graph the edge was created for.
func (e *Edge) Graph() *Graph { return e.graph }

// From returns the source vertex, or nil if it is not in the graph.
func (e *Edge) From() *Vertex { return e.graph.arena[e.from] }

// To returns the target vertex, or nil if it is not in the graph.
func (e *Edge) To() *Vertex { return e.graph.arena[e.to] }

// IsLoop reports whether both endpoints are the same vertex.
func (e *Edge) IsLoop() bool { return e.from == e.to }

// IsLinear reports whether the edge is drawn as a straight segment.
func (e *Edge) IsLinear() bool { return e.linear }

// Line returns the segment between the endpoints.
func (e *Edge) Line() geometry.Line { return e.line }

// Arc returns the arc a curved edge is drawn as. It is meaningless for
// linear edges.
func (e *Edge) Arc() geometry.Arc { return e.arc }

// Center returns the center of the edge's arc.
func (e *Edge) Center() geometry.Point { return e.arc.Center }

// IsAdjacent reports whether e and o share an endpoint.
func (e *Edge) IsAdjacent(o *Edge) bool {
	f, t := e.From(), e.To()
	of, ot := o.From(), o.To()
	if f == nil || t == nil || of == nil || ot == nil {
		return false
	}
	return f == of || f == ot || t == of || t == ot
}

// Suspend freezes the edge geometry and holds back notifications. Callers
// moving both endpoints and the handle of an edge wrap the moves in
// Suspend and Resume so the handle is not re-projected halfway.
func (e *Edge) Suspend() {
	e.frozen++
	e.Base.Suspend()
}

// Resume ends one level of suspension. Leaving the outermost level
// re-derives the geometry and emits at most one event.
func (e *Edge) Resume() {
	if e.frozen == 0 {
		return
	}
	e.frozen--
	if e.frozen == 0 {
		e.refresh()
	}
	e.Base.Resume()
}

// FixHandle snaps the handle of loops to the configured loop diameter and
// of linear edges to the midpoint, then re-derives the geometry.
func (e *Edge) FixHandle() {
	from, to := e.From(), e.To()
	if from == nil || to == nil {
		return
	}
	switch {
	case e.IsLoop():
		e.Handle.Set(from.Position().Add(geometry.Pt(e.graph.cfg.Edge.LoopDiameter, 0)))
	case e.linear:
		e.Handle.Set(geometry.Midpoint(from.Position(), to.Position()))
	}
	e.refresh()
}

// Straighten turns the edge into a straight segment. Loops keep their
// default shape.
func (e *Edge) Straighten() {
	e.linear = true
	e.FixHandle()
}

// endpointMoved keeps a curved edge's handle at the same angle and relative
// distance to the midpoint after an endpoint moved.
func (e *Edge) endpointMoved() {
	if e.frozen > 0 {
		return
	}
	from, to := e.From(), e.To()
	if from == nil || to == nil {
		return
	}

	old := e.line
	dist := old.Length()
	if !e.linear && !e.IsLoop() && dist > 0 {
		mid := old.Midpoint()
		h := e.Handle.Get()
		lineAngle := geometry.Angle(old.P2.Y-old.P1.Y, old.P2.X-old.P1.X)
		handleAngle := geometry.Angle(h.Y-mid.Y, h.X-mid.X) - lineAngle
		ratio := mid.Distance(h) / dist

		p0, p1 := from.Position(), to.Position()
		newMid := geometry.Midpoint(p0, p1)
		angle := handleAngle + geometry.Angle(p1.Y-p0.Y, p1.X-p0.X)
		radius := ratio * p0.Distance(p1)

		e.frozen++
		e.Handle.Set(newMid.Add(geometry.Pt(radius*math.Cos(angle), radius*math.Sin(angle))))
		e.frozen--
	}
	e.FixHandle()
}

// refresh recomputes the straight line, the linearity and the arc from the
// endpoints and the handle.
func (e *Edge) refresh() {
	from, to := e.From(), e.To()
	if from == nil || to == nil {
		return
	}
	p0, p1 := from.Position(), to.Position()
	h := e.Handle.Get()
	e.line = geometry.Ln(p0, p1)

	if e.IsLoop() {
		e.linear = false
	} else {
		dist := p0.Distance(p1)
		margin := e.graph.cfg.Geometry.SnapMarginRatio * dist
		e.linear = dist == 0 || geometry.PtSegDistSq(e.line, h) <= margin*margin
	}
	if e.linear {
		return
	}

	var center geometry.Point
	if e.IsLoop() {
		center = geometry.Midpoint(p0, h)
	} else {
		center = geometry.Circumcenter(p0, h, p1)
		if math.IsInf(center.X, 0) || math.IsNaN(center.X) || math.IsInf(center.Y, 0) || math.IsNaN(center.Y) {
			// A handle on the line past an endpoint: no circle, draw straight.
			e.linear = true
			return
		}
	}
	radius := center.Distance(p0)
	arc := geometry.ArcFromTo(center, radius, p0, p1)
	if !arc.ContainsAngle(arc.AngleOf(h)) {
		arc = geometry.ArcFromTo(center, radius, p1, p0)
	}
	e.arc = arc
}
