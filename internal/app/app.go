//go:build ebiten

package app

import (
	"context"
	"fmt"
	"image/color"
	"log"

	"planetgen/internal/core"
	"planetgen/internal/render"
	"planetgen/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a planet generator to the ebiten.Game interface. Generation only
// runs when a parameter changed, at most at the limiter's rate.
type Game struct {
	gen     core.Generator
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay
	limiter *core.Limiter
	palette []color.RGBA

	view  int
	panel int
}

// New generates the first map and constructs a Game around gen.
func New(gen core.Generator, view, panel, rate int) (*Game, error) {
	if err := gen.Generate(context.Background()); err != nil {
		return nil, fmt.Errorf("initial generation: %w", err)
	}
	g := &Game{
		gen:     gen,
		hud:     ui.NewHUD(gen, panel, view),
		overlay: ui.NewOverlay(gen, 1),
		limiter: core.NewLimiter(rate),
		view:    view,
		panel:   panel,
	}
	g.refresh()
	return g, nil
}

// Update handles input and regenerates when requested.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.gen.SetRandomSeed()
		g.limiter.Request()
	}
	g.overlay.Update()
	if g.hud.Update(g.view) {
		g.limiter.Request()
	}
	if g.limiter.Ready() {
		g.regenerate()
	}
	return nil
}

func (g *Game) regenerate() {
	if err := g.gen.Generate(context.Background()); err != nil {
		log.Printf("generate %s seed %d: %v", g.gen.Name(), g.gen.Seed(), err)
		g.hud.SetStatus(err.Error())
		return
	}
	g.hud.SetStatus("")
	g.refresh()
}

// refresh matches the painter and palette to the last generation.
func (g *Game) refresh() {
	size := g.gen.Size()
	if g.painter == nil {
		g.painter = render.NewGridPainter(size.W, size.H)
	} else if w, h := g.painter.Size(); w != size.W || h != size.H {
		g.painter.Dispose()
		g.painter = render.NewGridPainter(size.W, size.H)
	}
	g.palette = render.PaletteFor(g.gen)
	g.overlay.SetScale(g.scale())
}

func (g *Game) scale() float64 {
	size := g.gen.Size()
	if size.W <= 0 {
		return 1
	}
	return float64(g.view) / float64(size.W)
}

// Draw renders the current planet map, overlays and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 8, G: 8, B: 12, A: 255})
	g.painter.Blit(screen, g.gen.Cells(), g.palette, g.scale(), 0, 0)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.view)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.view + g.panel, g.view
}
