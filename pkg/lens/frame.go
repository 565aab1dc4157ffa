package lens

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/DCha2001/blackhole/pkg/core"
)

// FrameContext carries the per-frame inputs supplied by the camera subsystem:
// output resolution, the camera's world position, and the inverse view
// transform. It must be treated as immutable while a frame is being shaded so
// that pixel evaluations can run unordered and in parallel.
type FrameContext struct {
	Width, Height  int
	CameraPosition core.Vec3
	InvView        mgl64.Mat4
}

// NewFrameContext builds a frame context with an identity view transform
func NewFrameContext(width, height int, cameraPosition core.Vec3) FrameContext {
	return FrameContext{
		Width:          width,
		Height:         height,
		CameraPosition: cameraPosition,
		InvView:        mgl64.Ident4(),
	}
}

// RayDirection builds the world-space unit ray direction for a pixel. Pixel
// coordinates are normalized to [-1,1] with the horizontal axis corrected by
// aspect ratio, assembled into the camera-space direction (u, v, -1), then
// rotated into world space by the inverse view transform. Only the rotation
// part applies; the translation column is ignored for directions.
func (f FrameContext) RayDirection(px, py float64) core.Vec3 {
	w := float64(f.Width)
	h := float64(f.Height)
	aspect := w / h

	u := (2*(px+0.5)/w - 1) * aspect
	v := 1 - 2*(py+0.5)/h

	camDir := core.NewVec3(u, v, -1).Normalize()
	world := f.InvView.Mul4x1(mgl64.Vec4{camDir.X, camDir.Y, camDir.Z, 0})

	return core.NewVec3(world.X(), world.Y(), world.Z()).Normalize()
}
