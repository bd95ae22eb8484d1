//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"planetgen/internal/app"
	_ "planetgen/internal/planet"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	gen, err := cfg.Generator()
	if err != nil {
		log.Fatal(err)
	}
	game, err := app.New(gen, cfg.View, cfg.Panel, cfg.Rate)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowTitle("planetgen: " + gen.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(cfg.View+cfg.Panel, cfg.View)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
