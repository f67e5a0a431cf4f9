package geometry

// Line is a segment from P1 to P2.
type Line struct {
	P1, P2 Point
}

// Ln is shorthand for Line{p1, p2}.
func Ln(p1, p2 Point) Line { return Line{P1: p1, P2: p2} }

// Length returns the length of the segment.
func (l Line) Length() float64 { return l.P1.Distance(l.P2) }

// Midpoint returns the point halfway along the segment.
func (l Line) Midpoint() Point { return Midpoint(l.P1, l.P2) }

// PtSegDistSq returns the squared distance from p to the closest point of
// the segment l.
func PtSegDistSq(l Line, p Point) float64 {
	x2, y2 := l.P2.X-l.P1.X, l.P2.Y-l.P1.Y
	px, py := p.X-l.P1.X, p.Y-l.P1.Y

	var projLenSq float64
	dot := px*x2 + py*y2
	if dot > 0 {
		// Measure from the far end so points beyond P2 project to zero.
		px, py = x2-px, y2-py
		dot = px*x2 + py*y2
		if dot > 0 {
			projLenSq = dot * dot / (x2*x2 + y2*y2)
		}
	}

	lenSq := px*px + py*py - projLenSq
	if lenSq < 0 {
		lenSq = 0
	}
	return lenSq
}

// PtLineDist returns the distance from p to the infinite line through l.
// A zero-length segment defines no line and yields NaN.
func PtLineDist(l Line, p Point) float64 {
	x2, y2 := l.P2.X-l.P1.X, l.P2.Y-l.P1.Y
	px, py := p.X-l.P1.X, p.Y-l.P1.Y

	dot := px*x2 + py*y2
	projLenSq := dot * dot / (x2*x2 + y2*y2)
	lenSq := px*px + py*py - projLenSq
	if lenSq < 0 {
		lenSq = 0
	}
	return sqrt(lenSq)
}

// AreClose reports whether p lies within tolerance of the segment l.
// The tolerance is compared against the squared distance.
func AreClose(p Point, l Line, tolerance float64) bool {
	return PtSegDistSq(l, p) <= tolerance
}

// relativeCCW reports on which side of the directed segment l the point p
// lies: -1, 0 or 1. Collinear points beyond either end are classified so
// that segments touching only at their extensions do not intersect.
func relativeCCW(l Line, p Point) int {
	x2, y2 := l.P2.X-l.P1.X, l.P2.Y-l.P1.Y
	px, py := p.X-l.P1.X, p.Y-l.P1.Y

	ccw := px*y2 - py*x2
	if ccw == 0 {
		ccw = px*x2 + py*y2
		if ccw > 0 {
			px -= x2
			py -= y2
			ccw = px*x2 + py*y2
			if ccw < 0 {
				ccw = 0
			}
		}
	}

	switch {
	case ccw < 0:
		return -1
	case ccw > 0:
		return 1
	default:
		return 0
	}
}

// Intersects reports whether segments l0 and l1 share at least one point.
func Intersects(l0, l1 Line) bool {
	return relativeCCW(l0, l1.P1)*relativeCCW(l0, l1.P2) <= 0 &&
		relativeCCW(l1, l0.P1)*relativeCCW(l1, l0.P2) <= 0
}
