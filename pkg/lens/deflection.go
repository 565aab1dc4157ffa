package lens

import (
	"math"

	"github.com/DCha2001/blackhole/pkg/core"
)

// ImpactParameter returns the perpendicular distance from the hole's center
// (the world origin) to the straight line carried by a ray. direction is
// assumed to be a unit vector.
func ImpactParameter(origin, direction core.Vec3) float64 {
	return origin.Cross(direction).Length()
}

// DeflectionAngle maps an impact parameter to a bending angle in radians.
// The curve is a tuned approximation, not derived physics: a 2rs/b weak-field
// term, a Gaussian enhancement near the critical impact parameter, and an
// arctangent saturation capped at 6 radians so a single application can never
// reverse the ray.
func DeflectionAngle(b float64) float64 {
	weak := 2 * SchwarzschildRadius / max(b, epsilon)

	db := b - CriticalImpact
	scale := 0.08 * CriticalImpact
	nearFactor := 1 + 3*math.Exp(-(db*db)/(scale*scale))

	return clamp(2*math.Atan(weak*nearFactor), 0, 6)
}
