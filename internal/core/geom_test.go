package core

import (
	"math"
	"testing"
)

func TestBoxIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{
			name:     "overlapping boxes",
			a:        Box{0, 0, 10, 10},
			b:        Box{5, 5, 15, 15},
			expected: true,
		},
		{
			name:     "separated horizontally",
			a:        Box{0, 0, 10, 10},
			b:        Box{15, 0, 25, 10},
			expected: false,
		},
		{
			name:     "separated vertically",
			a:        Box{0, 0, 10, 10},
			b:        Box{0, 15, 10, 25},
			expected: false,
		},
		{
			name:     "shared edge does not count",
			a:        Box{0, 0, 32, 32},
			b:        Box{32, 0, 64, 32},
			expected: false,
		},
		{
			name:     "contained box",
			a:        Box{0, 0, 32, 32},
			b:        Box{6, 6, 26, 26},
			expected: true,
		},
		{
			name:     "sub-pixel overlap",
			a:        Box{0, 0, 10, 10},
			b:        Box{9.5, 9.5, 20, 20},
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() reversed = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestBoxAround(t *testing.T) {
	b := BoxAround(Vec{X: 48, Y: 48}, 20, 20)
	if b.MinX != 38 || b.MaxX != 58 || b.MinY != 38 || b.MaxY != 58 {
		t.Errorf("BoxAround() = %+v, expected {38 38 58 58}", b)
	}
	if c := b.Center(); c.X != 48 || c.Y != 48 {
		t.Errorf("Center() = %+v, expected {48 48}", c)
	}
}

func TestVecNormalize(t *testing.T) {
	v := Vec{X: 3, Y: 4}.Normalize()
	if math.Abs(v.Len()-1) > 1e-9 {
		t.Errorf("Normalize().Len() = %v, expected 1", v.Len())
	}
	zero := Vec{}.Normalize()
	if zero.X != 0 || zero.Y != 0 {
		t.Errorf("Normalize() of zero = %+v, expected zero", zero)
	}
	if d := (Vec{X: 0, Y: 0}).Dist(Vec{X: 3, Y: 4}); d != 5 {
		t.Errorf("Dist() = %v, expected 5", d)
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(2, 3, 4, 5)
	tests := []struct {
		x, y     int
		expected bool
	}{
		{2, 3, true},
		{5, 7, true},
		{6, 3, false},
		{2, 8, false},
		{1, 3, false},
	}
	for _, tc := range tests {
		if got := r.Contains(tc.x, tc.y); got != tc.expected {
			t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}
	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}
	if got := ClampF(320, 0, 300); got != 300 {
		t.Errorf("ClampF(320, 0, 300) = %v, expected 300", got)
	}
}
