package planet

import (
	"math"

	"planetgen/internal/noise"
	pcore "planetgen/pkg/core"
)

// boundaryShift decorrelates the second boundary sample from the first.
const boundaryShift = 100

// Shape describes the planet's base radius and how its boundary wobbles with
// the angle around the centre.
type Shape struct {
	Radius               float64    `json:"radius"`
	Deformation          float64    `json:"deformation"`
	DeformationFrequency float64    `json:"deformation_freq"`
	Kind                 noise.Kind `json:"boundary_noise"`
}

// MapSize is the side of the square grid that holds the deformed planet.
func (s Shape) MapSize() int {
	return int(math.Floor(2*s.Radius + 2*s.Deformation))
}

// SurfaceRadius returns the distance from the centre to the planet boundary
// along angle. It derives the view point from seed on every call, so it does
// not depend on any other draw made for the same seed.
func (s Shape) SurfaceRadius(seed uint32, angle float64) float64 {
	vx, vy := pcore.ViewPoint(seed)
	return s.surfaceAt(vx, vy, angle)
}

func (s Shape) surfaceAt(vx, vy, angle float64) float64 {
	r := s.Radius * s.DeformationFrequency / 100
	sx := vx + math.Cos(angle)*r
	sy := vy + math.Sin(angle)*r

	n1 := noise.Sample(s.Kind, sx, sy)
	n2 := noise.Sample(s.Kind, sx+boundaryShift, sy+boundaryShift)
	n := n1 * n2
	n *= n

	return s.Radius + s.Deformation*n
}

// Angle returns the direction from origin to (px, py) in [0, 2π), with 0
// along +x. A point on the origin yields 0.
func Angle(ox, oy, px, py float64) float64 {
	a := math.Atan2(py-oy, px-ox)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi {
		a = 0
	}
	return a
}
