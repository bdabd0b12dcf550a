package physics

import (
	"math"
	"testing"
)

func TestVector2D_Add(t *testing.T) {
	tests := []struct {
		name     string
		v1       Vector2D
		v2       Vector2D
		expected Vector2D
	}{
		{"positive_vectors", Vector2D{X: 3, Y: 4}, Vector2D{X: 1, Y: 2}, Vector2D{X: 4, Y: 6}},
		{"mixed_signs", Vector2D{X: 5, Y: -3}, Vector2D{X: -2, Y: 7}, Vector2D{X: 3, Y: 4}},
		{"zero_vector", Vector2D{}, Vector2D{X: 5, Y: -3}, Vector2D{X: 5, Y: -3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.v1.Add(tt.v2)
			if result != tt.expected {
				t.Errorf("Add() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestVector2D_Sub(t *testing.T) {
	tests := []struct {
		name     string
		v1       Vector2D
		v2       Vector2D
		expected Vector2D
	}{
		{"positive_result", Vector2D{X: 5, Y: 7}, Vector2D{X: 2, Y: 3}, Vector2D{X: 3, Y: 4}},
		{"negative_result", Vector2D{X: 2, Y: 3}, Vector2D{X: 5, Y: 7}, Vector2D{X: -3, Y: -4}},
		{"same_vectors", Vector2D{X: 4, Y: 6}, Vector2D{X: 4, Y: 6}, Vector2D{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.v1.Sub(tt.v2)
			if result != tt.expected {
				t.Errorf("Sub() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestVector2D_Scale(t *testing.T) {
	v := Vector2D{X: 4, Y: 8}
	if got := v.Scale(0.5); got != (Vector2D{X: 2, Y: 4}) {
		t.Errorf("Scale(0.5) = %v", got)
	}
	if got := v.Scale(-1); got != (Vector2D{X: -4, Y: -8}) {
		t.Errorf("Scale(-1) = %v", got)
	}
}

func TestVector2D_Length(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vector2D
		expected float64
	}{
		{"three_four_five", Vector2D{X: 3, Y: 4}, 5},
		{"zero", Vector2D{}, 0},
		{"negative_components", Vector2D{X: -6, Y: -8}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.vector.Length(); got != tt.expected {
				t.Errorf("Length() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestVector2D_DotAndCross(t *testing.T) {
	tests := []struct {
		name  string
		v1    Vector2D
		v2    Vector2D
		dot   float64
		cross float64
	}{
		{"parallel", Vector2D{X: 2, Y: 0}, Vector2D{X: 3, Y: 0}, 6, 0},
		{"perpendicular", Vector2D{X: 1, Y: 0}, Vector2D{X: 0, Y: 1}, 0, 1},
		{"perpendicular_reversed", Vector2D{X: 0, Y: 1}, Vector2D{X: 1, Y: 0}, 0, -1},
		{"downward_against_velocity", Vector2D{X: 3, Y: 4}, Vector2D{X: 0, Y: -2}, -8, -6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v1.Dot(tt.v2); got != tt.dot {
				t.Errorf("Dot() = %v, expected %v", got, tt.dot)
			}
			if got := tt.v1.Cross(tt.v2); got != tt.cross {
				t.Errorf("Cross() = %v, expected %v", got, tt.cross)
			}
		})
	}
}

func TestVector2D_IsFinite(t *testing.T) {
	if !(Vector2D{X: 1, Y: -1}).IsFinite() {
		t.Error("expected finite vector")
	}
	if (Vector2D{X: math.NaN(), Y: 0}).IsFinite() {
		t.Error("NaN component reported as finite")
	}
	if (Vector2D{X: 0, Y: math.Inf(-1)}).IsFinite() {
		t.Error("infinite component reported as finite")
	}
}

func TestFromAngle(t *testing.T) {
	const epsilon = 1e-12
	tests := []struct {
		name      string
		angle     float64
		magnitude float64
		expected  Vector2D
	}{
		{"zero_angle", 0, 10, Vector2D{X: 10, Y: 0}},
		{"right_angle", math.Pi / 2, 2, Vector2D{X: 0, Y: 2}},
		{"forty_five", math.Pi / 4, math.Sqrt2, Vector2D{X: 1, Y: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromAngle(tt.angle, tt.magnitude)
			if math.Abs(got.X-tt.expected.X) > epsilon || math.Abs(got.Y-tt.expected.Y) > epsilon {
				t.Errorf("FromAngle() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestRadians(t *testing.T) {
	if got := Radians(180); math.Abs(got-math.Pi) > 1e-15 {
		t.Errorf("Radians(180) = %v, expected pi", got)
	}
	if got := Radians(0); got != 0 {
		t.Errorf("Radians(0) = %v", got)
	}
}
