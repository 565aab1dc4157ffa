package lens

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/DCha2001/blackhole/pkg/core"
)

func TestRayDirectionUnitLength(t *testing.T) {
	frame := NewFrameContext(400, 225, core.NewVec3(0, 0, 5))

	pixels := [][2]float64{
		{0, 0},
		{399, 0},
		{0, 224},
		{399, 224},
		{200, 112},
	}

	for _, p := range pixels {
		dir := frame.RayDirection(p[0], p[1])
		if math.Abs(dir.Length()-1) > 1e-9 {
			t.Errorf("RayDirection(%v) has length %f, want 1", p, dir.Length())
		}
	}
}

func TestRayDirectionCenterLooksForward(t *testing.T) {
	// Odd resolution puts a pixel center exactly on the optical axis
	frame := NewFrameContext(101, 101, core.NewVec3(0, 0, 5))

	dir := frame.RayDirection(50, 50)
	expected := core.NewVec3(0, 0, -1)

	if dir.Subtract(expected).Length() > 1e-9 {
		t.Errorf("center ray = %v, want %v", dir, expected)
	}
}

func TestRayDirectionAspectCorrection(t *testing.T) {
	frame := NewFrameContext(200, 100, core.NewVec3(0, 0, 5))

	left := frame.RayDirection(0, 49.5)
	right := frame.RayDirection(199, 49.5)

	if left.X >= 0 {
		t.Errorf("leftmost ray should point left, got %v", left)
	}
	if right.X <= 0 {
		t.Errorf("rightmost ray should point right, got %v", right)
	}

	// Wide aspect spreads the horizontal axis wider than the vertical one
	top := frame.RayDirection(99.5, 0)
	if math.Abs(left.X) <= math.Abs(top.Y) {
		t.Errorf("horizontal extent %f should exceed vertical extent %f at 2:1 aspect", math.Abs(left.X), math.Abs(top.Y))
	}
}

func TestRayDirectionAppliesViewRotation(t *testing.T) {
	frame := NewFrameContext(101, 101, core.NewVec3(0, 0, 5))
	frame.InvView = mgl64.HomogRotate3DY(math.Pi / 2)

	dir := frame.RayDirection(50, 50)
	expected := core.NewVec3(-1, 0, 0)

	if dir.Subtract(expected).Length() > 1e-9 {
		t.Errorf("rotated center ray = %v, want %v", dir, expected)
	}
}

func TestRayDirectionIgnoresTranslation(t *testing.T) {
	frame := NewFrameContext(101, 101, core.NewVec3(0, 0, 5))
	pure := frame.RayDirection(50, 50)

	frame.InvView = mgl64.Translate3D(100, -50, 3)
	translated := frame.RayDirection(50, 50)

	if translated.Subtract(pure).Length() > 1e-9 {
		t.Errorf("translation must not affect directions: %v vs %v", translated, pure)
	}
}
