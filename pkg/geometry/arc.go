package geometry

import "math"

// Arc is a portion of a circle. Start and Extent are in degrees; a positive
// extent sweeps counter-clockwise on screen.
type Arc struct {
	Center Point
	Radius float64
	Start  float64
	Extent float64
}

// ArcFromTo builds the arc around center that starts at the direction of
// from and sweeps counter-clockwise to the direction of to. Identical
// directions produce a full circle.
func ArcFromTo(center Point, radius float64, from, to Point) Arc {
	start := math.Atan2(center.Y-from.Y, from.X-center.X)
	extent := math.Atan2(center.Y-to.Y, to.X-center.X) - start
	if extent <= 0 {
		extent += 2 * math.Pi
	}
	return Arc{
		Center: center,
		Radius: radius,
		Start:  degrees(start),
		Extent: degrees(extent),
	}
}

// AngleOf returns the on-screen direction of p as seen from the arc's
// center, in degrees.
func (a Arc) AngleOf(p Point) float64 {
	return degrees(math.Atan2(-(p.Y - a.Center.Y), p.X-a.Center.X))
}

// ContainsAngle reports whether the direction angle (degrees) falls within
// the arc's angular span. Angles wrap, so 370 and -350 both mean 10.
func (a Arc) ContainsAngle(angle float64) bool {
	ext := a.Extent
	backwards := ext < 0
	if backwards {
		ext = -ext
	}
	if ext >= 360 {
		return true
	}

	angle = normalizeDegrees(angle) - normalizeDegrees(a.Start)
	if backwards {
		angle = -angle
	}
	if angle < 0 {
		angle += 360
	}
	return angle >= 0 && angle < ext
}

// StartPoint returns the point where the arc begins.
func (a Arc) StartPoint() Point { return a.pointAt(a.Start) }

// EndPoint returns the point where the arc ends.
func (a Arc) EndPoint() Point { return a.pointAt(a.Start + a.Extent) }

func (a Arc) pointAt(deg float64) Point {
	rad := radians(-deg)
	return Point{
		X: a.Center.X + math.Cos(rad)*a.Radius,
		Y: a.Center.Y + math.Sin(rad)*a.Radius,
	}
}

// normalizeDegrees maps angle into (-180, 180].
func normalizeDegrees(angle float64) float64 {
	if angle > 180 {
		if angle <= 540 {
			angle -= 360
		} else {
			angle = math.Remainder(angle, 360)
			if angle == -180 {
				angle = 180
			}
		}
	} else if angle <= -180 {
		if angle > -540 {
			angle += 360
		} else {
			angle = math.Remainder(angle, 360)
			if angle == -180 {
				angle = 180
			}
		}
	}
	return angle
}

func degrees(rad float64) float64 { return rad * 180 / math.Pi }

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func sqrt(x float64) float64 { return math.Sqrt(x) }
