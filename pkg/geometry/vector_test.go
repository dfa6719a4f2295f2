package geometry

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= epsilon
}

func vectorsAlmostEqual(a, b Vector2D) bool {
	return almostEqual(a.X, b.X) && almostEqual(a.Y, b.Y)
}

func TestVectorArithmetic(t *testing.T) {
	a := Vector2D{X: 3, Y: 4}
	b := Vector2D{X: -1, Y: 2}

	tests := []struct {
		name string
		got  Vector2D
		want Vector2D
	}{
		{"add", a.Add(b), Vector2D{X: 2, Y: 6}},
		{"sub", a.Sub(b), Vector2D{X: 4, Y: 2}},
		{"scale", a.Scale(2), Vector2D{X: 6, Y: 8}},
		{"scale by zero", a.Scale(0), Vector2D{}},
		{"div", a.Div(2), Vector2D{X: 1.5, Y: 2}},
		{"neg", a.Neg(), Vector2D{X: -3, Y: -4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !vectorsAlmostEqual(tt.got, tt.want) {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestVectorDotCross(t *testing.T) {
	a := Vector2D{X: 3, Y: 4}
	b := Vector2D{X: -1, Y: 2}

	if got := a.Dot(b); !almostEqual(got, 5) {
		t.Errorf("Dot = %v, want 5", got)
	}
	if got := a.Cross(b); !almostEqual(got, 10) {
		t.Errorf("Cross = %v, want 10", got)
	}
	// Cross of parallel vectors is zero.
	if got := a.Cross(a.Scale(3)); !almostEqual(got, 0) {
		t.Errorf("Cross(parallel) = %v, want 0", got)
	}
}

func TestVectorMagnitude(t *testing.T) {
	v := Vector2D{X: 3, Y: 4}

	if got := v.Magnitude(); !almostEqual(got, 5) {
		t.Errorf("Magnitude = %v, want 5", got)
	}
	if got := v.MagnitudeSquared(); !almostEqual(got, 25) {
		t.Errorf("MagnitudeSquared = %v, want 25", got)
	}
}

func TestVectorNormalized(t *testing.T) {
	tests := []struct {
		name string
		v    Vector2D
	}{
		{"axis aligned", Vector2D{X: 10}},
		{"diagonal", Vector2D{X: 3, Y: 4}},
		{"tiny", Vector2D{X: 1e-12, Y: -1e-12}},
		{"negative", Vector2D{X: -7, Y: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Normalized().Magnitude(); !almostEqual(got, 1) {
				t.Errorf("Normalized().Magnitude() = %v, want 1", got)
			}
		})
	}

	// The zero vector is returned unchanged, never divided by zero.
	if got := (Vector2D{}).Normalized(); got != (Vector2D{}) {
		t.Errorf("zero.Normalized() = %v, want zero vector", got)
	}
}

func TestVectorRotated(t *testing.T) {
	tests := []struct {
		name    string
		v       Vector2D
		degrees float64
		want    Vector2D
	}{
		{"90 CCW", Vector2D{X: 1}, 90, Vector2D{Y: 1}},
		{"180", Vector2D{X: 1}, 180, Vector2D{X: -1}},
		{"270", Vector2D{X: 1}, 270, Vector2D{Y: -1}},
		{"360 is identity", Vector2D{X: 2, Y: 3}, 360, Vector2D{X: 2, Y: 3}},
		{"negative angle is CW", Vector2D{X: 1}, -90, Vector2D{Y: -1}},
		{"45", Vector2D{X: 1}, 45, Vector2D{X: math.Sqrt2 / 2, Y: math.Sqrt2 / 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Rotated(tt.degrees); !vectorsAlmostEqual(got, tt.want) {
				t.Errorf("Rotated(%v) = %v, want %v", tt.degrees, got, tt.want)
			}
		})
	}
}

func TestVectorPerpendicular(t *testing.T) {
	vectors := []Vector2D{
		{X: 1},
		{Y: -3},
		{X: 5, Y: 7},
		{X: -2.5, Y: 0.1},
	}

	for _, v := range vectors {
		perp := v.Perpendicular()
		if got := v.Dot(perp); !almostEqual(got, 0) {
			t.Errorf("%v.Dot(Perpendicular()) = %v, want 0", v, got)
		}
		// Perpendicular is a 90° CCW rotation.
		if want := v.Rotated(90); !vectorsAlmostEqual(perp, want) {
			t.Errorf("%v.Perpendicular() = %v, want %v", v, perp, want)
		}
	}
}

func TestVectorLimit(t *testing.T) {
	tests := []struct {
		name    string
		v       Vector2D
		max     float64
		wantMag float64
	}{
		{"under limit unchanged", Vector2D{X: 3, Y: 4}, 10, 5},
		{"over limit clamped", Vector2D{X: 30, Y: 40}, 10, 10},
		{"exactly at limit", Vector2D{X: 3, Y: 4}, 5, 5},
		{"zero vector", Vector2D{}, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.Limit(tt.max)
			if !almostEqual(got.Magnitude(), tt.wantMag) {
				t.Errorf("Limit(%v).Magnitude() = %v, want %v", tt.max, got.Magnitude(), tt.wantMag)
			}
			// Direction is preserved.
			if tt.v.Magnitude() > 0 && !vectorsAlmostEqual(got.Normalized(), tt.v.Normalized()) {
				t.Errorf("Limit changed direction: %v -> %v", tt.v, got)
			}
		})
	}
}

func TestVectorDistance(t *testing.T) {
	a := Vector2D{X: 1, Y: 1}
	b := Vector2D{X: 4, Y: 5}

	if got := a.Distance(b); !almostEqual(got, 5) {
		t.Errorf("Distance = %v, want 5", got)
	}
	if got := a.Distance(a); !almostEqual(got, 0) {
		t.Errorf("Distance(self) = %v, want 0", got)
	}
}
