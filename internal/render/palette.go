package render

import (
	"image/color"

	"planetgen/internal/core"
	"planetgen/internal/planet"
)

// TerrainSource is implemented by generators whose cells are terrain tags.
type TerrainSource interface {
	Descriptors() []planet.Descriptor
	Background() planet.Color
}

type grayscaleSource interface {
	Grayscale() bool
}

// Palette builds the colour table for a planet map, indexed by tag. Empty
// cells are fully transparent and caves use the background colour. When two
// descriptors share a tag the later one wins.
func Palette(descs []planet.Descriptor, background planet.Color) []color.RGBA {
	pal := make([]color.RGBA, planet.TagCount)
	pal[planet.TagBackground] = color.RGBA(background)
	for _, d := range descs {
		if d.Tag >= planet.TagCount || d.Tag == planet.TagEmpty {
			continue
		}
		pal[d.Tag] = color.RGBA(d.Color)
	}
	return pal
}

// GrayPalette maps the levels of a planet.NoiseView to a black to white ramp.
// Level 0 is transparent.
func GrayPalette() []color.RGBA {
	pal := make([]color.RGBA, planet.GrayLevels)
	for i := 1; i < len(pal); i++ {
		v := uint8((i - 1) * 255 / (planet.GrayLevels - 2))
		pal[i] = color.RGBA{R: v, G: v, B: v, A: 255}
	}
	return pal
}

// PaletteFor picks the palette matching what g's cells hold.
func PaletteFor(g core.Generator) []color.RGBA {
	if gs, ok := g.(grayscaleSource); ok && gs.Grayscale() {
		return GrayPalette()
	}
	if ts, ok := g.(TerrainSource); ok {
		return Palette(ts.Descriptors(), ts.Background())
	}
	return GrayPalette()
}
