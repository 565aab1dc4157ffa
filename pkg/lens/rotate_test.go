package lens

import (
	"math"
	"testing"

	"github.com/DCha2001/blackhole/pkg/core"
)

func TestRotateAroundKnownRotations(t *testing.T) {
	tests := []struct {
		name     string
		v        core.Vec3
		axis     core.Vec3
		angle    float64
		expected core.Vec3
	}{
		{
			name:     "90 degrees around Z",
			v:        core.NewVec3(1, 0, 0),
			axis:     core.NewVec3(0, 0, 1),
			angle:    math.Pi / 2,
			expected: core.NewVec3(0, 1, 0),
		},
		{
			name:     "180 degrees around Y",
			v:        core.NewVec3(1, 0, 0),
			axis:     core.NewVec3(0, 1, 0),
			angle:    math.Pi,
			expected: core.NewVec3(-1, 0, 0),
		},
		{
			name:     "rotation about parallel axis is identity",
			v:        core.NewVec3(0, 1, 0),
			axis:     core.NewVec3(0, 1, 0),
			angle:    1.234,
			expected: core.NewVec3(0, 1, 0),
		},
		{
			name:     "unnormalized axis is handled",
			v:        core.NewVec3(1, 0, 0),
			axis:     core.NewVec3(0, 0, 10),
			angle:    math.Pi / 2,
			expected: core.NewVec3(0, 1, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RotateAround(tt.v, tt.axis, tt.angle)

			const tolerance = 1e-9
			if result.Subtract(tt.expected).Length() > tolerance {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestRotateAroundInvertibility(t *testing.T) {
	vectors := []core.Vec3{
		core.NewVec3(1, 0, 0),
		core.NewVec3(0.3, -0.5, 0.8).Normalize(),
		core.NewVec3(-0.7, 0.7, 0.1).Normalize(),
	}
	axes := []core.Vec3{
		core.NewVec3(0, 1, 0),
		core.NewVec3(1, 1, 1).Normalize(),
	}
	angles := []float64{0.1, 1.0, math.Pi / 3, 2.9}

	for _, v := range vectors {
		for _, axis := range axes {
			for _, angle := range angles {
				forward := RotateAround(v, axis, angle)
				back := RotateAround(forward, axis, -angle)

				if back.Subtract(v).Length() > 1e-9 {
					t.Errorf("rotate(%v, %v, %f) then back gave %v", v, axis, angle, back)
				}
			}
		}
	}
}

func TestRotateAroundPreservesLength(t *testing.T) {
	v := core.NewVec3(0.2, -0.9, 0.4)
	axis := core.NewVec3(1, 2, -1)

	for _, angle := range []float64{0.01, 0.5, 1.7, 3.0, 5.5} {
		rotated := RotateAround(v, axis, angle)
		if math.Abs(rotated.Length()-v.Length()) > 1e-9 {
			t.Errorf("rotation by %f changed length from %f to %f", angle, v.Length(), rotated.Length())
		}
	}
}

func TestRotateAroundDegenerateAxis(t *testing.T) {
	v := core.NewVec3(0, 0, -1)

	// An axis too short to normalize leaves the vector untouched
	result := RotateAround(v, core.NewVec3(0, 0, 0), 1.5)
	if result != v {
		t.Errorf("degenerate axis should return input unchanged, got %v", result)
	}

	tiny := RotateAround(v, core.NewVec3(1e-9, 0, 0), 1.5)
	if tiny != v {
		t.Errorf("near-zero axis should return input unchanged, got %v", tiny)
	}
}
