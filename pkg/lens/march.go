package lens

import (
	"math"

	"github.com/DCha2001/blackhole/pkg/core"
)

// Outcome classifies how a marched ray terminated
type Outcome int

const (
	// OutcomeEscaped means the ray left the maximum march distance
	OutcomeEscaped Outcome = iota
	// OutcomeCaptured means the ray reached the event horizon
	OutcomeCaptured
	// OutcomeExhausted means the step budget ran out; rendered like an escape
	OutcomeExhausted
)

// BendingPolicy selects how gravitational bending is applied to a ray
type BendingPolicy int

const (
	// BendOnce applies a single deflection before marching a straight path
	BendOnce BendingPolicy = iota
	// BendDuringMarch re-bends the direction continuously while marching
	BendDuringMarch
)

// MarchConfig contains the march loop limits and the bending policy
type MarchConfig struct {
	MaxSteps    int           // Hard step ceiling
	MaxDistance float64       // Total path length bound, in horizon radii
	MinStep     float64       // Floor for the sphere-tracing step
	HitDistance float64       // Capture threshold on the distance field
	BendEvery   int           // Apply an incremental bend every k-th step
	MaxBendStep float64       // Cap on a single incremental rotation, radians
	Policy      BendingPolicy // Bending policy
}

// DefaultMarchConfig returns the tuning used by the renderer
func DefaultMarchConfig() MarchConfig {
	return MarchConfig{
		MaxSteps:    500,
		MaxDistance: 100.0,
		MinStep:     0.01,
		HitDistance: 0.001,
		BendEvery:   2,
		MaxBendStep: 1.2,
		Policy:      BendDuringMarch,
	}
}

// MarchResult is the terminal state of a marched ray
type MarchResult struct {
	Outcome   Outcome
	T         float64   // Accumulated path length
	Point     core.Vec3 // Final position
	Direction core.Vec3 // Final (possibly re-bent) unit direction
	Steps     int
}

// HorizonDistance is the signed distance from a point to the event horizon
// sphere centered at the origin. Negative inside the horizon.
func HorizonDistance(p core.Vec3) float64 {
	return p.Length() - SchwarzschildRadius
}

// March advances a ray through the distance field until it is captured by the
// horizon or escapes. Sphere tracing: each step advances by the distance to
// the horizon, floored at MinStep. Under BendDuringMarch the direction is
// incrementally rotated toward the hole every BendEvery steps, which
// approximates continuous geodesic curvature; under BendOnce the full
// deflection is applied up front and the path marched straight.
func March(ray core.Ray, cfg MarchConfig) MarchResult {
	p := ray.Origin
	dir := ray.Direction.Normalize()

	if cfg.Policy == BendOnce {
		dir = bendOnce(ray.Origin, dir)
	}

	t := 0.0
	for step := 0; step < cfg.MaxSteps; step++ {
		dist := HorizonDistance(p)
		if dist < cfg.HitDistance {
			return MarchResult{Outcome: OutcomeCaptured, T: t, Point: p, Direction: dir, Steps: step}
		}
		if t > cfg.MaxDistance {
			return MarchResult{Outcome: OutcomeEscaped, T: t, Point: p, Direction: dir, Steps: step}
		}

		if cfg.Policy == BendDuringMarch && step%cfg.BendEvery == 0 && step > 0 {
			dir = bendStep(p, dir, cfg)
		}

		advance := math.Max(dist, cfg.MinStep)
		p = p.Add(dir.Multiply(advance))
		t += advance
	}

	return MarchResult{Outcome: OutcomeExhausted, T: t, Point: p, Direction: dir, Steps: cfg.MaxSteps}
}

// bendOnce applies the full deflection for the ray's impact parameter as a
// single rotation toward the hole. The rotation plane is spanned by the ray
// direction and the closest-approach vector from the hole's center to the
// unbent line; if the ray points straight at the center that plane degenerates
// and the direction is left alone.
func bendOnce(origin, dir core.Vec3) core.Vec3 {
	closest := origin.Add(dir.Multiply(-origin.Dot(dir)))
	axis := closest.Cross(dir)
	if axis.Length() < epsilon {
		return dir
	}

	theta := DeflectionAngle(ImpactParameter(origin, dir))
	return RotateAround(dir, axis, theta)
}

// bendGain tunes how much curvature the incremental bends accumulate; large
// enough that photon-sphere-grazing rays visibly wind, small enough that the
// per-increment clamp rarely engages away from the hole.
const bendGain = 40.0

// bendStep applies one incremental rotation during marching. The angle comes
// from the deflection curve evaluated at the local impact parameter, scaled by
// a 1/r falloff and normalized against the step budget so the accumulated
// rotation stays bounded over a full march.
func bendStep(p, dir core.Vec3, cfg MarchConfig) core.Vec3 {
	axis := p.Cross(dir)
	if axis.Length() < epsilon {
		return dir
	}

	r := p.Length()
	localB := p.Cross(dir).Length()
	falloff := clamp(PhotonSphereRadius/max(r, epsilon), 0, 4)

	angle := DeflectionAngle(localB) * falloff * bendGain * float64(cfg.BendEvery) / float64(cfg.MaxSteps)
	angle = min(angle, cfg.MaxBendStep)

	return RotateAround(dir, axis, angle)
}
