package lens

import (
	"math"

	"github.com/DCha2001/blackhole/pkg/core"
)

// Ring palette: warm at low impact parameters shading into a redshifted tone
// approaching the critical impact parameter
var (
	ringWarmColor     = core.NewVec3(1.0, 0.85, 0.55)
	ringRedshiftColor = core.NewVec3(0.75, 0.25, 0.12)
)

// ShadePixel evaluates the full pipeline for one pixel: ray generation,
// impact parameter, marching, and compositing. It is a pure function of the
// frame context and pixel coordinate and is safe to call concurrently for
// different pixels of the same frame.
func ShadePixel(frame FrameContext, px, py float64, cfg MarchConfig) (core.Vec3, MarchResult) {
	dir := frame.RayDirection(px, py)
	b := ImpactParameter(frame.CameraPosition, dir)

	result := March(core.NewRay(frame.CameraPosition, dir), cfg)

	// A ray that geometrically reaches the horizon is black, regardless of
	// its impact parameter. Exhausted marches render like escapes.
	if result.Outcome == OutcomeCaptured {
		return core.Vec3{}, result
	}

	background := SampleLensedSky(frame.CameraPosition, result.Direction, b)

	ring := ringProximity(b)
	blend := smoothstep(0, 0.85, ring)

	return background.Lerp(lensedRingColor(b), blend), result
}

// ringProximity peaks at 1 when the impact parameter sits exactly on the
// critical value and falls off as a narrow Gaussian
func ringProximity(b float64) float64 {
	x := (b - CriticalImpact) / (0.03 * CriticalImpact)
	return math.Exp(-x * x)
}

// lensedRingColor is the warm-to-redshift gradient drawn near the photon
// ring, brightened where the impact parameter crosses the critical value and
// again near the photon sphere radius.
func lensedRingColor(b float64) core.Vec3 {
	mix := clamp(b/CriticalImpact, 0, 1)
	col := ringWarmColor.Lerp(ringRedshiftColor, mix)

	crit := (b - CriticalImpact) / (0.05 * CriticalImpact)
	ph := (b - PhotonSphereRadius) / (0.05 * CriticalImpact)
	boost := 1 + 1.5*math.Exp(-crit*crit) + 0.5*math.Exp(-ph*ph)

	return col.Multiply(boost)
}
