// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestCubicInterpolate_Endpoints(t *testing.T) {
	t.Parallel()

	y0, y1, y2, y3 := 0.1, 0.4, 0.8, 0.2

	// At x=0 the interpolant must pass through y1, at x=1 through y2.
	if got := CubicInterpolate(y0, y1, y2, y3, 0); math.Abs(got-y1) > 1e-12 {
		t.Errorf("CubicInterpolate(x=0) = %v, want %v", got, y1)
	}
	if got := CubicInterpolate(y0, y1, y2, y3, 1); math.Abs(got-y2) > 1e-12 {
		t.Errorf("CubicInterpolate(x=1) = %v, want %v", got, y2)
	}
}

func TestCubicInterpolate_Linear(t *testing.T) {
	t.Parallel()

	// Four collinear points: the spline reproduces the line exactly.
	for _, x := range []float64{0, 0.25, 0.5, 0.75, 1} {
		got := CubicInterpolate(1, 2, 3, 4, x)
		want := 2 + x
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("CubicInterpolate(linear, x=%v) = %v, want %v", x, got, want)
		}
	}
}

func TestCubicInterpolate_Constant(t *testing.T) {
	t.Parallel()

	for _, x := range []float64{0, 0.3, 0.7, 1} {
		got := CubicInterpolate(0.5, 0.5, 0.5, 0.5, x)
		if math.Abs(got-0.5) > 1e-12 {
			t.Errorf("CubicInterpolate(constant, x=%v) = %v, want 0.5", x, got)
		}
	}
}

func BenchmarkCubicInterpolate(b *testing.B) {
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = CubicInterpolate(0.1, 0.4, 0.8, 0.2, 0.37)
	}
}
