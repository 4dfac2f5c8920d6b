package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/silbinarywolf/preferdiscretegpu"

	"github.com/iburimskiy/metaballs/internal/config"
	"github.com/iburimskiy/metaballs/internal/driver"
	"github.com/iburimskiy/metaballs/internal/field"
	"github.com/iburimskiy/metaballs/internal/game"
	"github.com/iburimskiy/metaballs/internal/sim"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	savePath := flag.String("save", "metaballs.yaml", "Where the W hotkey writes the active config")
	audioPath := flag.String("audio", "", "Audio file whose loudness pulses the cursor ball")
	debug := flag.Bool("debug", false, "Enable debug logging")
	snapshot := flag.String("snapshot", "", "Render headless on the CPU and write a PNG to this path")
	frames := flag.Int("frames", 60, "Ticks to simulate before a snapshot")
	width := flag.Int("width", 0, "Snapshot width (0 = window width)")
	height := flag.Int("height", 0, "Snapshot height (0 = window height)")

	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	slog.Debug("config loaded", "path", *configPath, "motion", cfg.Effect.Motion, "balls", cfg.Effect.BallCount)

	if *snapshot != "" {
		w, h := cfg.Window.Width, cfg.Window.Height
		if *width > 0 {
			w = *width
		}
		if *height > 0 {
			h = *height
		}
		if err := renderSnapshot(cfg, logger, *snapshot, *frames, w, h); err != nil {
			slog.Error("snapshot failed", "error", err)
			os.Exit(1)
		}
		return
	}

	err = game.Run(cfg, game.Options{
		Logger:    logger,
		SavePath:  *savePath,
		AudioPath: *audioPath,
	})
	if err != nil {
		slog.Error("viewer stopped", "error", err)
		os.Exit(1)
	}
}

// renderSnapshot drives the effect for n ticks on the CPU backend and writes the last frame.
func renderSnapshot(cfg *config.Config, logger *slog.Logger, path string, n, w, h int) error {
	raster := field.NewRaster()
	d, err := driver.New(cfg.Effect, driver.Options{Backend: raster, Logger: logger})
	if err != nil {
		return err
	}
	defer d.Close()

	surface := sim.Surface{Width: float64(w), Height: float64(h)}
	d.SetVisible(true)
	for i := 0; i < max(n, 1); i++ {
		d.Tick(surface)
	}
	d.Draw()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := raster.WritePNG(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	logger.Info("snapshot written", "path", path, "ticks", d.Ticks(), "size", fmt.Sprintf("%dx%d", w, h))
	return nil
}
