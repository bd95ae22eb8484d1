package noise

import "math"

// cellular returns Worley F1 noise: the distance from (x, y) to the nearest
// feature point, one jittered point per unit cell, searched over the 3x3
// neighbourhood. Distances are capped at 1.
func cellular(x, y float64) float64 {
	fx := math.Floor(x)
	fy := math.Floor(y)
	ix := int32(int64(fx))
	iy := int32(int64(fy))

	best := 1.0
	for dy := int32(-1); dy <= 1; dy++ {
		for dx := int32(-1); dx <= 1; dx++ {
			cx := ix + dx
			cy := iy + dy
			h := hash2(primitiveSeed, cx, cy)
			px := fx + float64(dx) + unitFloat(h)
			py := fy + float64(dy) + unitFloat(hash32(h))
			d := math.Hypot(px-x, py-y)
			if d < best {
				best = d
			}
		}
	}
	return best
}

// hash32 mixes 32-bit input into a well-distributed 32-bit output.
func hash32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16
	return x
}

// hash2 returns a stable hash for integer cell coordinates.
func hash2(seed uint32, x, y int32) uint32 {
	h := seed
	h ^= uint32(x) * 0x9e3779b1
	h ^= uint32(y) * 0x85ebca6b
	return hash32(h)
}

// unitFloat maps a hash to [0, 1).
func unitFloat(h uint32) float64 {
	return float64(h&0xffffff) / (1 << 24)
}
