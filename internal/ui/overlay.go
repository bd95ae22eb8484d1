//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"planetgen/internal/core"
	"planetgen/internal/planet"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type resultProvider interface {
	Result() *planet.Result
}

type configProvider interface {
	Config() planet.Config
}

// boundarySamples is the number of points drawn along the planet outline.
const boundarySamples = 720

// Overlay draws optional debugging visuals on top of the planet map.
type Overlay struct {
	gen          core.Generator
	scale        float64
	showField    bool
	showBoundary bool

	fieldImg *ebiten.Image
	fieldBuf []byte
	pixel    *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(gen core.Generator, scale float64) *Overlay {
	o := &Overlay{gen: gen, scale: scale}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// SetScale updates the scale used when the map size changes.
func (o *Overlay) SetScale(scale float64) { o.scale = scale }

// Update toggles overlays: 1 shows the noise field, 2 the surface outline.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showField = !o.showField
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showBoundary = !o.showBoundary
	}
}

// Draw renders the enabled overlays onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	provider, ok := o.gen.(resultProvider)
	if !ok {
		return
	}
	res := provider.Result()
	if res == nil || res.Size.W <= 0 || res.Size.H <= 0 {
		return
	}
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}
	if o.showField {
		o.drawField(screen, res.Noise, scale)
	}
	if o.showBoundary {
		if cp, ok := o.gen.(configProvider); ok {
			o.drawBoundary(screen, cp.Config(), res.Size, scale)
		}
	}
}

func (o *Overlay) drawField(screen *ebiten.Image, field *core.FloatGrid, scale float64) {
	total := field.W * field.H
	if o.fieldImg == nil || o.fieldImg.Bounds().Dx() != field.W || o.fieldImg.Bounds().Dy() != field.H {
		if o.fieldImg != nil {
			o.fieldImg.Dispose()
		}
		o.fieldImg = ebiten.NewImage(field.W, field.H)
		o.fieldBuf = make([]byte, 4*total)
	}
	fillFieldRGBA(o.fieldBuf, field.Values())
	o.fieldImg.WritePixels(o.fieldBuf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	screen.DrawImage(o.fieldImg, op)
}

func (o *Overlay) drawBoundary(screen *ebiten.Image, cfg planet.Config, size core.Size, scale float64) {
	cx := float64(size.W) / 2
	cy := float64(size.H) / 2
	col := color.RGBA{R: 120, G: 230, B: 255, A: 220}
	for i := 0; i < boundarySamples; i++ {
		angle := float64(i) * 2 * math.Pi / boundarySamples
		r := cfg.Shape.SurfaceRadius(cfg.Seed, angle)
		x := (cx + math.Cos(angle)*r) * scale
		y := (cy + math.Sin(angle)*r) * scale
		o.drawPoint(screen, x, y, math.Max(1, scale/2), col)
	}
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size/2, y-size/2)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
