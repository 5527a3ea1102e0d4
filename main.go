package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/df07/go-stochastic-raytracer/internal/config"
	"github.com/df07/go-stochastic-raytracer/internal/logger"
	"github.com/df07/go-stochastic-raytracer/internal/output"
	"github.com/df07/go-stochastic-raytracer/pkg/renderer"
	"github.com/df07/go-stochastic-raytracer/pkg/scene"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log, err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logger.Sync()

	if path := config.SavePath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			log.Error("saving config", zap.String("path", path), zap.Error(err))
			os.Exit(1)
		}
		log.Info("config saved", zap.String("path", path))
	}

	if config.ListRequested() {
		if err := printScenes(os.Stdout, cfg.Scene.Dir); err != nil {
			log.Error("listing scenes", zap.Error(err))
			os.Exit(1)
		}
		return
	}

	// Interrupting keeps the tiles finished so far
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	path, frame, err := run(ctx, cfg, log, time.Now())
	if err != nil && frame == nil {
		log.Error("render failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	log.Info("render saved",
		zap.String("path", path),
		zap.Duration("duration", frame.Stats.Duration),
		zap.Float64("average_samples", frame.Stats.AverageSamples),
		zap.Float64("average_luminance", renderer.CalculateAverageLuminance(frame.Image(cfg.Output.Gamma))))
	if err != nil {
		log.Warn("render incomplete", zap.Error(err))
		logger.Sync()
		os.Exit(130)
	}
}

// run renders the configured scene and writes it out. A cancelled render
// still writes the partial frame and returns both the frame and ctx's error.
func run(ctx context.Context, cfg *config.Config, log *zap.Logger, now time.Time) (string, *renderer.Frame, error) {
	s, err := scene.Open(cfg.Scene.Name)
	if err != nil {
		return "", nil, err
	}

	options := cfg.Render.Apply(s.Options)
	index := scene.BuildAccelerationIndex(s, options.Seed)
	job, err := renderer.NewRenderJob(s, index, options, cfg.RendererConfig(), log)
	if err != nil {
		return "", nil, fmt.Errorf("scene %q: %w", s.Name, err)
	}

	log.Info("rendering",
		zap.String("scene", s.Name),
		zap.Int("width", job.Width()),
		zap.Int("height", job.Height()),
		zap.Int("samples_per_pixel", options.SamplesPerPixel),
		zap.Int("max_bounces", options.MaxBounces))

	frame, renderErr := job.RenderFrame(ctx, progressLogger(log))
	if renderErr != nil && !errors.Is(renderErr, context.Canceled) && !errors.Is(renderErr, context.DeadlineExceeded) {
		return "", nil, renderErr
	}

	path := cfg.OutputPath(cfg.Scene.Name, now)
	if err := output.Write(path, frame.Image(cfg.Output.Gamma), cfg.Output.Format); err != nil {
		return "", nil, err
	}
	return path, frame, renderErr
}

// progressLogger reports every tenth of the frame
func progressLogger(log *zap.Logger) func(renderer.TileProgress) {
	lastDecile := 0
	return func(p renderer.TileProgress) {
		decile := p.TileNumber * 10 / p.TotalTiles
		if decile == lastDecile {
			return
		}
		lastDecile = decile
		log.Info("progress", zap.Int("percent", decile*10), zap.Int("tiles", p.TileNumber), zap.Int("total", p.TotalTiles))
	}
}

// printScenes writes every preset and scene file, grouped
func printScenes(w io.Writer, dir string) error {
	groups, err := scene.ListAllScenes(dir)
	if err != nil {
		return err
	}
	for _, group := range groups {
		fmt.Fprintf(w, "%s:\n", group.Name)
		for _, info := range group.Scenes {
			target := info.ID
			if info.Type == "file" {
				target = info.FilePath
			}
			if info.Description != "" {
				fmt.Fprintf(w, "  %-28s %s - %s\n", target, info.DisplayName, info.Description)
			} else {
				fmt.Fprintf(w, "  %-28s %s\n", target, info.DisplayName)
			}
		}
	}
	return nil
}
