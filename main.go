package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"lumara/game"
)

func main() {
	seed := flag.Int64("seed", 0, "fixed RNG seed (0 seeds from the clock)")
	debug := flag.Bool("debug", false, "show the FPS line and arm the slow-frame profiler")
	touch := flag.Bool("touch", false, "start in touch mode")
	flag.Parse()

	config := game.DefaultConfig()
	config.Seed = *seed
	config.Debug = *debug
	config.TouchMode = *touch

	g := game.NewGame(config, nil)
	defer func() {
		if err := g.Close(); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Guardians of Lumara")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
