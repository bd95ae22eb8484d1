package render

import (
	"image/color"
	"math"
)

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black. Values past
// the end of the palette use its last entry.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// fillGrayRGBA lerps field values from black (0) to white (1). Negative
// values, such as excluded cells, become transparent.
func fillGrayRGBA(buf []byte, values []float64) {
	for i, f := range values {
		base := i * 4
		if f < 0 || math.IsNaN(f) {
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
			continue
		}
		v := uint8(math.Round(math.Min(f, 1) * 255))
		buf[base+0] = v
		buf[base+1] = v
		buf[base+2] = v
		buf[base+3] = 255
	}
}
