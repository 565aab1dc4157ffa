package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/DCha2001/blackhole/pkg/core"
	"github.com/DCha2001/blackhole/pkg/lens"
)

// pitchLimit keeps the camera just short of straight up/down so the
// look-at basis never degenerates against the world up vector.
const pitchLimit = math.Pi/2 - 0.01

// FlyCamera is a free-flying first-person camera. Yaw zero looks down
// the negative Z axis; positive yaw turns right, positive pitch looks up.
type FlyCamera struct {
	Position core.Vec3
	Yaw      float64 // Radians around world Y
	Pitch    float64 // Radians, clamped to avoid gimbal lock
}

// NewFlyCamera creates a camera at the given position looking toward -Z
func NewFlyCamera(position core.Vec3) *FlyCamera {
	return &FlyCamera{Position: position}
}

// Forward returns the unit view direction for the current yaw and pitch
func (c *FlyCamera) Forward() core.Vec3 {
	cosPitch := math.Cos(c.Pitch)
	return core.Vec3{
		X: math.Sin(c.Yaw) * cosPitch,
		Y: math.Sin(c.Pitch),
		Z: -math.Cos(c.Yaw) * cosPitch,
	}
}

// Right returns the unit right vector, always parallel to the ground plane
func (c *FlyCamera) Right() core.Vec3 {
	return core.Vec3{X: math.Cos(c.Yaw), Y: 0, Z: math.Sin(c.Yaw)}
}

// Move translates the camera in its own frame: forward along the view
// direction, right along the ground-parallel right vector, up along world Y.
func (c *FlyCamera) Move(forward, right, up float64) {
	c.Position = c.Position.
		Add(c.Forward().Multiply(forward)).
		Add(c.Right().Multiply(right)).
		Add(core.Vec3{Y: up})
}

// Rotate adjusts yaw and pitch by the given deltas, clamping pitch
func (c *FlyCamera) Rotate(deltaYaw, deltaPitch float64) {
	c.Yaw += deltaYaw
	c.Pitch += deltaPitch
	if c.Pitch > pitchLimit {
		c.Pitch = pitchLimit
	}
	if c.Pitch < -pitchLimit {
		c.Pitch = -pitchLimit
	}
}

// Dolly moves the camera along its view direction (positive = forward)
func (c *FlyCamera) Dolly(distance float64) {
	c.Position = c.Position.Add(c.Forward().Multiply(distance))
}

// ViewMatrix returns the world-to-camera transform
func (c *FlyCamera) ViewMatrix() mgl64.Mat4 {
	eye := mgl64.Vec3{c.Position.X, c.Position.Y, c.Position.Z}
	fwd := c.Forward()
	center := mgl64.Vec3{eye[0] + fwd.X, eye[1] + fwd.Y, eye[2] + fwd.Z}
	return mgl64.LookAtV(eye, center, mgl64.Vec3{0, 1, 0})
}

// InverseView returns the camera-to-world transform used to map
// camera-space ray directions into the scene.
func (c *FlyCamera) InverseView() mgl64.Mat4 {
	return c.ViewMatrix().Inv()
}

// Frame builds the per-frame shading context for the camera's current pose
func (c *FlyCamera) Frame(width, height int) lens.FrameContext {
	return lens.FrameContext{
		Width:          width,
		Height:         height,
		CameraPosition: c.Position,
		InvView:        c.InverseView(),
	}
}
