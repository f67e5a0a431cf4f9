package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func TestLineLineCrossings(t *testing.T) {
	tests := []struct {
		name string
		l0   Line
		l1   Line
		want []Point
	}{
		{
			name: "unit square diagonals",
			l0:   Ln(Pt(0, 0), Pt(1, 1)),
			l1:   Ln(Pt(1, 0), Pt(0, 1)),
			want: []Point{{0.5, 0.5}},
		},
		{
			name: "disjoint",
			l0:   Ln(Pt(0, 0), Pt(1, 0)),
			l1:   Ln(Pt(0, 1), Pt(1, 2)),
		},
		{
			name: "parallel",
			l0:   Ln(Pt(0, 0), Pt(1, 0)),
			l1:   Ln(Pt(0, 1), Pt(1, 1)),
		},
		{
			name: "collinear overlap",
			l0:   Ln(Pt(0, 0), Pt(2, 0)),
			l1:   Ln(Pt(1, 0), Pt(3, 0)),
		},
		{
			name: "touching at endpoint",
			l0:   Ln(Pt(0, 0), Pt(1, 1)),
			l1:   Ln(Pt(1, 1), Pt(2, 0)),
			want: []Point{{1, 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LineLineCrossings(tt.l0, tt.l1)
			require.Len(t, got, len(tt.want))
			for i := range got {
				assert.InDelta(t, tt.want[i].X, got[i].X, eps)
				assert.InDelta(t, tt.want[i].Y, got[i].Y, eps)
			}
			assert.Len(t, LineLineCrossings(tt.l1, tt.l0), len(tt.want), "symmetric")
		})
	}
}

func TestArcFromToContainsAngle(t *testing.T) {
	c := Pt(0, 0)
	// Right (0°) to top (90° on screen, y up means negative y).
	arc := ArcFromTo(c, 1, Pt(1, 0), Pt(0, -1))
	assert.InDelta(t, 0, arc.Start, eps)
	assert.InDelta(t, 90, arc.Extent, eps)

	assert.True(t, arc.ContainsAngle(45))
	assert.True(t, arc.ContainsAngle(405))
	assert.True(t, arc.ContainsAngle(-315))
	assert.False(t, arc.ContainsAngle(135))
	assert.False(t, arc.ContainsAngle(-45))

	// Sweep across the 0°/360° seam.
	wrap := ArcFromTo(c, 1, Pt(0, 1), Pt(0, -1))
	assert.InDelta(t, -90, wrap.Start, eps)
	assert.InDelta(t, 180, wrap.Extent, eps)
	assert.True(t, wrap.ContainsAngle(0))
	assert.True(t, wrap.ContainsAngle(359))
	assert.True(t, wrap.ContainsAngle(-30))
	assert.False(t, wrap.ContainsAngle(180))

	full := ArcFromTo(c, 1, Pt(1, 0), Pt(1, 0))
	assert.InDelta(t, 360, full.Extent, eps)
	assert.True(t, full.ContainsAngle(123))
}

func TestArcPoints(t *testing.T) {
	arc := ArcFromTo(Pt(10, 10), 5, Pt(15, 10), Pt(10, 5))
	s, e := arc.StartPoint(), arc.EndPoint()
	assert.InDelta(t, 15, s.X, eps)
	assert.InDelta(t, 10, s.Y, eps)
	assert.InDelta(t, 10, e.X, eps)
	assert.InDelta(t, 5, e.Y, eps)
	assert.InDelta(t, 90, arc.AngleOf(Pt(10, 0)), eps)
}

func TestLineArcCrossings(t *testing.T) {
	// Upper half of the unit circle (screen y negative).
	upper := ArcFromTo(Pt(0, 0), 1, Pt(1, 0), Pt(-1, 0))

	t.Run("secant through both sides", func(t *testing.T) {
		got := LineArcCrossings(Ln(Pt(-2, -0.5), Pt(2, -0.5)), upper, 0.01)
		require.Len(t, got, 2)
		for _, p := range got {
			assert.InDelta(t, 1, math.Hypot(p.X, p.Y), 1e-6)
			assert.InDelta(t, -0.5, p.Y, 1e-6)
		}
	})

	t.Run("filtered by span", func(t *testing.T) {
		got := LineArcCrossings(Ln(Pt(-2, 0.5), Pt(2, 0.5)), upper, 0.01)
		assert.Empty(t, got)
	})

	t.Run("filtered by segment", func(t *testing.T) {
		got := LineArcCrossings(Ln(Pt(-0.2, -0.5), Pt(0.2, -0.5)), upper, 0.01)
		assert.Empty(t, got)
	})

	t.Run("vertical through top", func(t *testing.T) {
		got := LineArcCrossings(Ln(Pt(0, -2), Pt(0, 2)), upper, 0.01)
		require.Len(t, got, 1)
		assert.InDelta(t, 0, got[0].X, 1e-6)
		assert.InDelta(t, -1, got[0].Y, 1e-6)
	})

	t.Run("miss", func(t *testing.T) {
		assert.Empty(t, LineArcCrossings(Ln(Pt(-2, -3), Pt(2, -3)), upper, 0.01))
	})
}

func TestArcArcCrossings(t *testing.T) {
	full := func(c Point, r float64) Arc {
		p := c.Add(Pt(r, 0))
		return ArcFromTo(c, r, p, p)
	}

	t.Run("two points", func(t *testing.T) {
		got := ArcArcCrossings(full(Pt(0, 0), 1), full(Pt(1, 0), 1))
		require.Len(t, got, 2)
		for _, p := range got {
			assert.InDelta(t, 0.5, p.X, eps)
			assert.InDelta(t, math.Sqrt(3)/2, math.Abs(p.Y), eps)
		}
		back := ArcArcCrossings(full(Pt(1, 0), 1), full(Pt(0, 0), 1))
		assert.Len(t, back, 2)
	})

	t.Run("tangent", func(t *testing.T) {
		got := ArcArcCrossings(full(Pt(0, 0), 1), full(Pt(2, 0), 1))
		require.Len(t, got, 1)
		assert.InDelta(t, 1, got[0].X, eps)
	})

	t.Run("separate", func(t *testing.T) {
		assert.Empty(t, ArcArcCrossings(full(Pt(0, 0), 1), full(Pt(5, 0), 1)))
	})

	t.Run("nested", func(t *testing.T) {
		assert.Empty(t, ArcArcCrossings(full(Pt(0, 0), 5), full(Pt(1, 0), 1)))
	})

	t.Run("coincident", func(t *testing.T) {
		assert.Empty(t, ArcArcCrossings(full(Pt(0, 0), 1), full(Pt(0, 0), 1)))
	})

	t.Run("filtered by span", func(t *testing.T) {
		upper := ArcFromTo(Pt(0, 0), 1, Pt(1, 0), Pt(-1, 0))
		got := ArcArcCrossings(upper, full(Pt(1, 0), 1))
		require.Len(t, got, 1)
		assert.Less(t, got[0].Y, 0.0)
	})
}

func TestDistances(t *testing.T) {
	l := Ln(Pt(0, 0), Pt(10, 0))
	assert.InDelta(t, 9, PtSegDistSq(l, Pt(5, 3)), eps)
	assert.InDelta(t, 4, PtSegDistSq(l, Pt(12, 0)), eps)
	assert.InDelta(t, 3, PtLineDist(l, Pt(50, 3)), eps)
	assert.True(t, math.IsNaN(PtLineDist(Ln(Pt(1, 1), Pt(1, 1)), Pt(2, 2))))
	assert.True(t, AreClose(Pt(5, 0.05), l, 0.01))
	assert.False(t, AreClose(Pt(5, 0.2), l, 0.01))
}

func TestDeterminantAndCircumcenter(t *testing.T) {
	assert.InDelta(t, -2, Determinant([][]float64{{1, 2}, {3, 4}}), eps)
	assert.InDelta(t, 1, Determinant([][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}), eps)
	assert.InDelta(t, -306, Determinant([][]float64{{6, 1, 1}, {4, -2, 5}, {2, 8, 7}}), eps)

	c := Circumcenter(Pt(1, 0), Pt(0, 1), Pt(-1, 0))
	assert.InDelta(t, 0, c.X, eps)
	assert.InDelta(t, 0, c.Y, eps)

	assert.False(t, Circumcenter(Pt(0, 0), Pt(1, 1), Pt(2, 2)).IsFinite())
}

func TestAngle(t *testing.T) {
	assert.InDelta(t, math.Atan2(1, 1), Angle(1, 1), eps)
	assert.InDelta(t, math.Pi, Angle(0, -1), eps)
	assert.InDelta(t, -270, AngleBetween(10, 100), eps)
	assert.InDelta(t, -90, AngleBetween(100, 10), eps)
}
