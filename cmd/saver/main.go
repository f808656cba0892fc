package main

import (
	"context"
	"flag"
	"os"

	"cake-saver/internal/assets"
	"cake-saver/internal/config"
	"cake-saver/internal/debug"
	"cake-saver/internal/download"
	"cake-saver/internal/graphics"
	"cake-saver/internal/interact"
	"cake-saver/internal/logger"
	"cake-saver/internal/saver"
	"cake-saver/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the YAML config file")
	flag.Parse()

	cfg, cfgErr := config.Load(*configPath)
	log := logger.New(cfg.LogPath)
	if cfgErr != nil {
		log.Logf("config: using defaults: %v", cfgErr)
	}

	cakes, background, err := loadAssets(cfg)
	if err != nil {
		log.Logf("startup failed: %v", err)
		os.Exit(1)
	}
	log.Logf("loaded %d cake images", len(cakes))

	var (
		scn     *scene.Scene
		sim     *saver.Context
		handler *interact.Handler
		dbg     = debug.New(cfg.ShowFPS)
	)
	ready := func() {
		sim, err = saver.Spawn(cakes, graphics.Bounds, saver.SpawnOptions{
			Count:    cfg.CakeCount,
			Margin:   cfg.EdgeMargin,
			MaxSpeed: cfg.MaxSpeed,
			Seed:     cfg.Seed,
		})
		if err != nil {
			log.Logf("startup failed: %v", err)
			os.Exit(1)
		}
		fetcher := download.New(cfg.ImageURL, cfg.FetchTimeout, cfg.MaxResultExtent)
		handler = interact.New(sim.World, sim.Display, fetcher, log, cfg.FetchTimeout)
		scn = scene.New(sim, handler, cakes, background)
	}
	update := func() {
		if rl.IsKeyPressed(rl.KeyF3) {
			dbg.Toggle()
		}
		scn.Update()
	}
	draw := func() {
		scn.Draw()
		dbg.Draw(sim.Ticks(), sim.World.Len())
	}

	closeFn := func() {
		handler.Close()
		scn.Unload()
	}

	graphics.Run(graphics.Options{
		Title:      cfg.Title,
		Width:      int32(cfg.WindowWidth),
		Height:     int32(cfg.WindowHeight),
		Fullscreen: cfg.Fullscreen,
		TargetFPS:  int32(cfg.TargetFPS),
	}, graphics.Hooks{Ready: ready, Update: update, Draw: draw, Close: closeFn})
	log.Log("closed")
}

// loadAssets decodes the cake images and the optional background in one barrier.
func loadAssets(cfg config.Config) (cakes []assets.Asset, background *assets.Asset, err error) {
	fsys, err := assets.Dir(cfg.AssetDir)
	if err != nil {
		return nil, nil, err
	}
	names := cfg.CakeNames()
	if cfg.Background != "" {
		names = append(names, cfg.Background)
	}
	list, err := assets.Load(context.Background(), fsys, names)
	if err != nil {
		return nil, nil, err
	}
	cakes = list[:cfg.CakeVariants]
	if cfg.Background != "" {
		background = &list[cfg.CakeVariants]
	}
	assets.Scale(cakes, cfg.CakeScale)
	return cakes, background, nil
}
