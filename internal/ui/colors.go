package ui

import (
	"image/color"
	"math"
)

// fillFieldRGBA tints noise field values through fieldColor. Negative values
// are left transparent.
func fillFieldRGBA(buf []byte, values []float64) {
	for i, v := range values {
		base := i * 4
		if v < 0 || math.IsNaN(v) {
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
			continue
		}
		col := fieldColor(v)
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

func fieldColor(t float64) color.RGBA {
	t = clamp01(t)
	stops := []struct {
		t   float64
		col color.RGBA
	}{
		{0.0, color.RGBA{R: 20, G: 24, B: 60, A: 200}},
		{0.25, color.RGBA{R: 60, G: 40, B: 130, A: 205}},
		{0.5, color.RGBA{R: 180, G: 60, B: 110, A: 210}},
		{0.75, color.RGBA{R: 240, G: 140, B: 60, A: 215}},
		{1.0, color.RGBA{R: 250, G: 245, B: 180, A: 220}},
	}
	for i := 1; i < len(stops); i++ {
		curr := stops[i]
		if t <= curr.t {
			prev := stops[i-1]
			span := curr.t - prev.t
			var local float64
			if span > 0 {
				local = (t - prev.t) / span
			}
			return lerpRGBA(prev.col, curr.col, clamp01(local))
		}
	}
	return stops[len(stops)-1].col
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	t = clamp01(t)
	return color.RGBA{
		R: lerpComponent(a.R, b.R, t),
		G: lerpComponent(a.G, b.G, t),
		B: lerpComponent(a.B, b.B, t),
		A: lerpComponent(a.A, b.A, t),
	}
}

func lerpComponent(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
