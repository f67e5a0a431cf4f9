package geometry

import "math"

// LineLineCrossings returns the point where segments l0 and l1 cross, or
// nil when they do not. Parallel segments, including collinear overlapping
// ones, have no single crossing point and yield nil.
func LineLineCrossings(l0, l1 Line) []Point {
	if !Intersects(l0, l1) {
		return nil
	}

	dx0, dy0 := l0.P2.X-l0.P1.X, l0.P2.Y-l0.P1.Y
	dx1, dy1 := l1.P2.X-l1.P1.X, l1.P2.Y-l1.P1.Y
	dx2, dy2 := l0.P1.X-l1.P1.X, l0.P1.Y-l1.P1.Y

	div := dy1*dx0 - dx1*dy0
	if div == 0 {
		return nil
	}
	u := (dx1*dy2 - dy1*dx2) / div
	return []Point{{l0.P1.X + u*dx0, l0.P1.Y + u*dy0}}
}

// LineArcCrossings returns the points where segment l meets arc a.
//
// The circle equation is solved in coordinates relative to the arc center.
// Each candidate must lie within tolerance (squared distance) of the
// segment and inside the arc's angular span.
func LineArcCrossings(l Line, a Arc, tolerance float64) []Point {
	c := a.Center
	x0, y0 := l.P1.X-c.X, l.P1.Y-c.Y
	x1, y1 := l.P2.X-c.X, l.P2.Y-c.Y
	dx, dy := x1-x0, y1-y0

	// sign(dy) must be 1 for horizontal segments, not 0.
	sign := 1.0
	if dy < 0 {
		sign = -1
	}

	rSq := a.Radius * a.Radius
	drSq := dx*dx + dy*dy
	det := x0*y1 - x1*y0
	disc := rSq*drSq - det*det
	if disc < 0 || drSq == 0 {
		return nil
	}
	root := math.Sqrt(disc)

	var out []Point
	keep := func(rel Point) {
		p := rel.Add(c)
		if AreClose(p, l, tolerance) && a.ContainsAngle(a.AngleOf(p)) {
			out = append(out, p)
		}
	}

	keep(Point{
		X: (det*dy + sign*dx*root) / drSq,
		Y: (-det*dx + math.Abs(dy)*root) / drSq,
	})
	if disc > 0 {
		keep(Point{
			X: (det*dy - sign*dx*root) / drSq,
			Y: (-det*dx - math.Abs(dy)*root) / drSq,
		})
	}
	return out
}

// ArcArcCrossings returns the points where arcs a0 and a1 meet. Separate,
// nested and coincident circles yield nil. Tangent circles yield at most one
// point.
func ArcArcCrossings(a0, a1 Arc) []Point {
	c0, c1 := a0.Center, a1.Center
	r0, r1 := a0.Radius, a1.Radius
	d := c0.Distance(c1)

	switch {
	case d > r0+r1:
		return nil
	case d < math.Abs(r0-r1):
		return nil
	case d == 0 && r0 == r1:
		return nil
	}

	a := (r0*r0 - r1*r1 + d*d) / (2 * d)
	h := math.Sqrt(math.Max(r0*r0-a*a, 0))
	mid := Point{
		X: c0.X + a*(c1.X-c0.X)/d,
		Y: c0.Y + a*(c1.Y-c0.Y)/d,
	}
	ox, oy := h*(c1.Y-c0.Y)/d, h*(c1.X-c0.X)/d

	var out []Point
	keep := func(p Point) {
		if a0.ContainsAngle(a0.AngleOf(p)) && a1.ContainsAngle(a1.AngleOf(p)) {
			out = append(out, p)
		}
	}

	keep(Point{mid.X + ox, mid.Y - oy})
	if d != r0+r1 {
		keep(Point{mid.X - ox, mid.Y + oy})
	}
	return out
}
