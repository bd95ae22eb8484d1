package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/draw"

	"planetgen/internal/core"
)

// PlanetImage paints cells through palette, each cell becoming a block x block
// square.
func PlanetImage(cells []uint8, size core.Size, palette []color.RGBA, block int) (*image.RGBA, error) {
	if len(cells) != size.W*size.H {
		return nil, fmt.Errorf("render: %d cells for a %dx%d grid", len(cells), size.W, size.H)
	}
	img := image.NewRGBA(image.Rect(0, 0, size.W, size.H))
	fillPaletteRGBA(img.Pix, cells, palette)
	return scale(img, block), nil
}

// NoiseImage paints a noise field in grayscale.
func NoiseImage(field *core.FloatGrid, block int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, field.W, field.H))
	fillGrayRGBA(img.Pix, field.Values())
	return scale(img, block)
}

func scale(src *image.RGBA, block int) *image.RGBA {
	if block <= 1 {
		return src
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*block, b.Dy()*block))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// WritePNG writes img to path, replacing any existing file.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodePNG(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
