package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/seamless/config"
)

func main() {
	configPath := flag.String("config", config.DefaultFile, "engine config file (embedded copy is used when missing)")
	strategy := flag.String("strategy", "", "override transition strategy: opacity or mix")
	scrub := flag.Bool("scrub", false, "drive transitions with the scroll wheel instead of zooming")
	debug := flag.Bool("debug", false, "enable debug overlay and logging")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if err := applyFlags(cfg, *strategy, *scrub); err != nil {
		log.Fatal(err)
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)

	game, err := NewGame(*configPath, cfg, *debug, logger)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

// applyFlags layers command line overrides on top of the loaded config.
func applyFlags(cfg *config.Config, strategy string, scrub bool) error {
	if strategy != "" {
		cfg.Transition.Strategy = strategy
	}
	if scrub {
		cfg.Input.WheelMode = config.WheelScrub
		cfg.Viewport.EnableZoom = false
	}
	return cfg.Validate()
}
