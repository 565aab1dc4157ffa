package core

import (
	"math"
	"testing"
)

func TestVec3_CrossOrthogonality(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vec3
		expected Vec3
	}{
		{
			name:     "X cross Y is Z",
			a:        NewVec3(1, 0, 0),
			b:        NewVec3(0, 1, 0),
			expected: NewVec3(0, 0, 1),
		},
		{
			name:     "Y cross Z is X",
			a:        NewVec3(0, 1, 0),
			b:        NewVec3(0, 0, 1),
			expected: NewVec3(1, 0, 0),
		},
		{
			name:     "parallel vectors give zero",
			a:        NewVec3(2, -1, 3),
			b:        NewVec3(4, -2, 6),
			expected: NewVec3(0, 0, 0),
		},
		{
			name:     "anti-commutative",
			a:        NewVec3(0, 1, 0),
			b:        NewVec3(1, 0, 0),
			expected: NewVec3(0, 0, -1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.a.Cross(tt.b)

			const tolerance = 1e-9
			if result.Subtract(tt.expected).Length() > tolerance {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestVec3_NormalizeLength(t *testing.T) {
	vectors := []Vec3{
		NewVec3(3, 4, 0),
		NewVec3(-1, 2, -3),
		NewVec3(1e-3, 0, 1e-3),
		NewVec3(100, 100, 100),
	}

	for _, v := range vectors {
		normalized := v.Normalize()
		if math.Abs(normalized.Length()-1.0) > 1e-9 {
			t.Errorf("Normalize(%v) has length %f, want 1", v, normalized.Length())
		}
	}

	// Zero vector normalizes to zero rather than NaN
	zero := NewVec3(0, 0, 0).Normalize()
	if zero.Length() != 0 {
		t.Errorf("Normalize of zero vector should be zero, got %v", zero)
	}
}

func TestVec3_Lerp(t *testing.T) {
	a := NewVec3(0, 0, 0)
	b := NewVec3(2, 4, 6)

	mid := a.Lerp(b, 0.5)
	expected := NewVec3(1, 2, 3)
	if mid.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Lerp(0.5) = %v, want %v", mid, expected)
	}

	// t is clamped outside [0,1]
	over := a.Lerp(b, 1.5)
	if over.Subtract(b).Length() > 1e-9 {
		t.Errorf("Lerp(1.5) should clamp to %v, got %v", b, over)
	}
	under := a.Lerp(b, -0.5)
	if under.Subtract(a).Length() > 1e-9 {
		t.Errorf("Lerp(-0.5) should clamp to %v, got %v", a, under)
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1))

	p := ray.At(5)
	if p.Subtract(NewVec3(0, 0, 0)).Length() > 1e-9 {
		t.Errorf("Ray.At(5) = %v, want origin", p)
	}
}
