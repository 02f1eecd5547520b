//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"

	"burgers/internal/app"
	"burgers/internal/core"
	_ "burgers/internal/sims/glide"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	params := cfg.Overrides.Map()
	if cfg.ConfigPath != "" {
		params["config"] = cfg.ConfigPath
	}
	sim, err := core.Lookup(cfg.Sim, params)
	if err != nil {
		log.Fatal(err)
	}

	game, err := app.New(sim, cfg)
	if err != nil {
		log.Fatal(err)
	}
	w, h := game.Size()

	ebiten.SetWindowTitle("lattice - " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
