package geometry

import "math"

// Point is a location in the plane.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

func (p Point) Scale(k float64) Point { return Point{p.X * k, p.Y * k} }

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 { return math.Hypot(q.X-p.X, q.Y-p.Y) }

// DistanceSq returns the squared Euclidean distance between p and q.
func (p Point) DistanceSq(q Point) float64 {
	dx, dy := q.X-p.X, q.Y-p.Y
	return dx*dx + dy*dy
}

// IsFinite reports whether both coordinates are finite numbers.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Midpoint returns the point halfway between p and q.
func Midpoint(p, q Point) Point {
	return Point{(p.X + q.X) / 2, (p.Y + q.Y) / 2}
}

// Angle returns the direction of the vector (x, y) in radians, with the
// arguments swapped the way callers pass (dy, dx) pairs:
//
//	Angle(dy, dx) == atan2(dy, dx) modulo 2π
//
// The result lies in [-π/2, 3π/2).
func Angle(x, y float64) float64 {
	return -(math.Atan2(y, x) - math.Pi/2)
}

// AngleBetween returns the signed sweep from angle0 to angle1 in degrees,
// going counter-clockwise.
func AngleBetween(angle0, angle1 float64) float64 {
	if angle0 < angle1 {
		return angle1 - (angle0 + 360)
	}
	return angle1 - angle0
}

// Determinant computes the determinant of a square matrix by cofactor
// expansion along the first row. An empty matrix has determinant 1.
func Determinant(m [][]float64) float64 {
	switch len(m) {
	case 0:
		return 1
	case 1:
		return m[0][0]
	case 2:
		return m[0][0]*m[1][1] - m[0][1]*m[1][0]
	}

	n := len(m)
	var det float64
	sign := 1.0
	for i := 0; i < n; i++ {
		minor := make([][]float64, n-1)
		for j := 1; j < n; j++ {
			row := make([]float64, 0, n-1)
			row = append(row, m[j][:i]...)
			row = append(row, m[j][i+1:]...)
			minor[j-1] = row
		}
		det += sign * m[0][i] * Determinant(minor)
		sign = -sign
	}
	return det
}

// Circumcenter returns the center of the circle through p0, p1 and p2.
// Collinear points have no circumcenter; the result then has non-finite
// coordinates.
func Circumcenter(p0, p1, p2 Point) Point {
	sq := func(p Point) float64 { return p.X*p.X + p.Y*p.Y }
	d := 2 * Determinant([][]float64{
		{p0.X, p0.Y, 1},
		{p1.X, p1.Y, 1},
		{p2.X, p2.Y, 1},
	})
	h := Determinant([][]float64{
		{sq(p0), p0.Y, 1},
		{sq(p1), p1.Y, 1},
		{sq(p2), p2.Y, 1},
	}) / d
	k := Determinant([][]float64{
		{p0.X, sq(p0), 1},
		{p1.X, sq(p1), 1},
		{p2.X, sq(p2), 1},
	}) / d
	return Point{h, k}
}
