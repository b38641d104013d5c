//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"dla/internal/app"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	field, err := app.OpenField(cfg.Sim, cfg.SimOptions())
	if err != nil {
		log.Fatal(err)
	}

	game := app.New(field, cfg.Scale, cfg.PerTick, cfg.Budget, field.Config().Seed)
	size := field.Size()

	ebiten.SetWindowTitle("dla — " + field.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
