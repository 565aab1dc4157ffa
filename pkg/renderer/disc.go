package renderer

import (
	"math"

	"github.com/DCha2001/blackhole/pkg/core"
)

// DiscMesh is a flat triangle-fan disc in the XZ plane, centered on the
// origin. It is a purely decorative accretion-disc stand-in for the
// interactive viewer; it does not participate in ray marching.
type DiscMesh struct {
	Vertices []core.Vec3 // Vertices[0] is the center, then the rim loop
	Radius   float64
}

// NewDiscMesh builds a fan disc with the given rim radius. vertexCount
// includes the center vertex; the first and last rim vertices coincide so
// the fan closes. Counts below 4 are raised to 4 (center plus a degenerate
// triangle).
func NewDiscMesh(radius float64, vertexCount int) *DiscMesh {
	if vertexCount < 4 {
		vertexCount = 4
	}

	vertices := make([]core.Vec3, vertexCount)
	vertices[0] = core.Vec3{}
	for i := 1; i < vertexCount; i++ {
		angle := 2 * math.Pi * float64(i-1) / float64(vertexCount-2)
		vertices[i] = core.Vec3{
			X: radius * math.Cos(angle),
			Z: radius * math.Sin(angle),
		}
	}

	return &DiscMesh{Vertices: vertices, Radius: radius}
}

// Triangles returns the fan's vertex indices as consecutive triangles
// (center, rim i, rim i+1).
func (d *DiscMesh) Triangles() [][3]int {
	tris := make([][3]int, 0, len(d.Vertices)-2)
	for i := 1; i < len(d.Vertices)-1; i++ {
		tris = append(tris, [3]int{0, i, i + 1})
	}
	return tris
}
