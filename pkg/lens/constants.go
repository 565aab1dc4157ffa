package lens

// Black hole constants in Schwarzschild units. The event horizon radius is the
// unit of length; the photon sphere and critical impact parameter follow from
// it and must satisfy SchwarzschildRadius < PhotonSphereRadius < CriticalImpact.
const (
	SchwarzschildRadius = 1.0
	PhotonSphereRadius  = 1.5 * SchwarzschildRadius
	CriticalImpact      = 2.598 * SchwarzschildRadius
)

// epsilon guards divisions and normalizations of near-degenerate vectors
const epsilon = 1e-6

func clamp(x, minVal, maxVal float64) float64 {
	return max(minVal, min(maxVal, x))
}

// smoothstep is the standard cubic Hermite ramp between edge0 and edge1
func smoothstep(edge0, edge1, x float64) float64 {
	t := clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}
