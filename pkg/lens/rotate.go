package lens

import (
	"math"

	"github.com/DCha2001/blackhole/pkg/core"
)

// RotateAround rotates v about the given axis by angle radians using the
// Rodrigues formula. The axis does not need to be normalized; if it is too
// short to normalize safely the input vector is returned unrotated.
func RotateAround(v, axis core.Vec3, angle float64) core.Vec3 {
	if axis.Length() < epsilon {
		return v
	}
	a := axis.Normalize()

	cosA := math.Cos(angle)
	sinA := math.Sin(angle)

	return v.Multiply(cosA).
		Add(a.Cross(v).Multiply(sinA)).
		Add(a.Multiply(a.Dot(v) * (1 - cosA)))
}
