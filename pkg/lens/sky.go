package lens

import (
	"math"

	"github.com/DCha2001/blackhole/pkg/core"
)

// Sky palette: dark blue-violet toward the poles, lighter blue at the horizon
var (
	skyPoleColor    = core.NewVec3(0.04, 0.02, 0.10)
	skyHorizonColor = core.NewVec3(0.10, 0.16, 0.30)
)

// Starfield tuning. Presence is decided on a coarse UV grid, brightness on a
// finer one, both from the same seed-free hash so the sky never flickers.
const (
	starGridU    = 256.0
	starGridV    = 128.0
	starFineU    = 1024.0
	starFineV    = 512.0
	starCutoff   = 0.9995
	starFalloff  = 10.0
	lensedOrders = 5 // highest lensed image order sampled
)

// hash2 is the classic fract(sin(dot(p, k)) * 43758.5453) screen hash.
// Deterministic and seed-free: identical inputs always give identical output.
func hash2(x, y float64) float64 {
	s := math.Sin(x*12.9898+y*78.233) * 43758.5453
	return s - math.Floor(s)
}

// SkyColor returns the procedural background color for a view direction: a
// vertical gradient plus a hashed starfield on the direction's spherical UV.
func SkyColor(dir core.Vec3) core.Vec3 {
	d := dir.Normalize()

	u := math.Atan2(d.Z, d.X)/(2*math.Pi) + 0.5
	v := math.Acos(clamp(d.Y, -1, 1)) / math.Pi

	col := skyHorizonColor.Lerp(skyPoleColor, math.Abs(d.Y))

	if hash2(math.Floor(u*starGridU), math.Floor(v*starGridV)) > starCutoff {
		brightness := math.Pow(hash2(math.Floor(u*starFineU), math.Floor(v*starFineV)), starFalloff)
		col = col.Add(core.NewVec3(brightness, brightness, brightness))
	}

	return col
}

// SampleLensedSky accumulates the repeated background images a strongly
// deflected ray produces: order n is the sky seen after n extra full turns
// around the photon sphere, weighted down exponentially in n and in distance
// from the critical impact parameter. Rays at or below the critical impact
// parameter are captured by construction and sample pure black; callers
// handle those through the capture path instead.
func SampleLensedSky(origin, dir core.Vec3, b float64) core.Vec3 {
	if b <= CriticalImpact {
		return core.Vec3{}
	}

	axis := dir.Cross(origin)
	if axis.Length() < epsilon {
		return SkyColor(dir)
	}

	theta := DeflectionAngle(b)
	proximity := math.Exp(-math.Abs(b-CriticalImpact) / (0.1 * CriticalImpact))

	var accum core.Vec3
	total := 0.0
	for n := 0; n <= lensedOrders; n++ {
		alpha := theta + float64(n)*2*math.Pi
		weight := math.Exp(-4*float64(n)) * proximity

		sample := SkyColor(RotateAround(dir, axis, alpha))
		accum = accum.Add(sample.Multiply(weight))
		total += weight
	}

	if total < epsilon {
		return SkyColor(dir)
	}
	return accum.Multiply(1 / total)
}
