// Package main is the entry point for terramaze.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/samdwyer/terramaze/internal/config"
	"github.com/samdwyer/terramaze/internal/export"
	"github.com/samdwyer/terramaze/internal/game"
	"github.com/samdwyer/terramaze/internal/gamedata"
	"github.com/samdwyer/terramaze/internal/logger"
	"github.com/samdwyer/terramaze/internal/maze"
	"github.com/samdwyer/terramaze/internal/stats"
	"github.com/samdwyer/terramaze/internal/telemetry"
	"github.com/samdwyer/terramaze/internal/world"
)

type flags struct {
	config    string
	seed      int64
	width     int
	depth     int
	palette   string
	export    string
	histogram string
	summary   bool
}

func main() {
	var f flags
	flag.StringVar(&f.config, "config", "terramaze.yaml", "YAML config file")
	flag.Int64Var(&f.seed, "seed", 0, "Seed for random generation (0 keeps the configured seed)")
	flag.IntVar(&f.width, "width", 0, "Maze width in cells")
	flag.IntVar(&f.depth, "depth", 0, "Maze depth in cells")
	flag.StringVar(&f.palette, "palette", "", "Palette id, or \"random\"")
	flag.StringVar(&f.export, "export", "", "Write the generated layout as YAML to this file")
	flag.StringVar(&f.histogram, "histogram", "", "Write a height histogram image (.png, .svg, .pdf)")
	flag.BoolVar(&f.summary, "summary", false, "Print summary statistics and exit")
	flag.Parse()

	// .env is optional; variables may be set directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Note: .env file not loaded: %v", err)
	}

	if err := run(context.Background(), f); err != nil {
		log.Fatalf("terramaze: %v", err)
	}
}

func run(ctx context.Context, f flags) error {
	cfg, err := config.Load(f.config)
	if err != nil {
		return err
	}
	applyFlags(&cfg, f)

	batch := f.export != "" || f.histogram != "" || f.summary
	if !batch {
		// Stderr output would tear the terminal UI.
		cfg.Logging.ConsoleEnabled = false
	}
	if err := logger.Initialize(cfg.Logging); err != nil {
		return err
	}

	if cfg.Telemetry.Enabled {
		setupOTelEnv()
		shutdown, err := telemetry.Setup(ctx, cfg.Telemetry.ServiceName)
		if err != nil {
			logger.Warning("telemetry setup failed, running without traces", "error", err)
			telemetry.Disable()
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					logger.Error("telemetry shutdown failed", "error", err)
				}
			}()
		}
	} else {
		telemetry.Disable()
	}

	palettes, err := gamedata.LoadPaletteRegistry()
	if err != nil {
		return err
	}
	opts, err := world.OptionsFromConfig(cfg.Maze, palettes)
	if err != nil {
		return err
	}

	if !batch {
		g, err := game.New(game.Config{World: opts})
		if err != nil {
			return fmt.Errorf("failed to initialize game: %w", err)
		}
		return g.Run(ctx)
	}

	w, err := world.Generate(ctx, opts)
	if err != nil {
		return err
	}
	if f.export != "" {
		if err := export.WriteFile(f.export, w); err != nil {
			return err
		}
		logger.Info("layout exported", "path", f.export, "world", w.ID)
	}
	if f.histogram != "" {
		if err := stats.SaveHeightHistogram(w, f.histogram); err != nil {
			return err
		}
		logger.Info("histogram written", "path", f.histogram)
	}
	if f.summary {
		printSummary(os.Stdout, stats.Summarize(w))
	}
	return nil
}

// applyFlags overrides the loaded config with flags given a non-zero value.
func applyFlags(cfg *config.Config, f flags) {
	if f.seed != 0 {
		cfg.Maze.Seed = f.seed
	}
	if f.width != 0 {
		cfg.Maze.Width = f.width
	}
	if f.depth != 0 {
		cfg.Maze.Depth = f.depth
	}
	if f.palette != "" {
		cfg.Maze.Palette = f.palette
	}
}

func printSummary(out io.Writer, s stats.Summary) {
	fmt.Fprintf(out, "world      %s\n", s.ID)
	fmt.Fprintf(out, "seed       %d\n", s.Seed)
	fmt.Fprintf(out, "cells      %d (%d passages, %d dead ends)\n", s.Cells, s.Passages, s.DeadEnds)
	fmt.Fprintf(out, "exit depth %d\n", s.ExitDepth)
	fmt.Fprintf(out, "height     mean %.3f  stddev %.3f  min %.3f  max %.3f\n",
		s.HeightMean, s.HeightStdDev, s.HeightMin, s.HeightMax)
	fmt.Fprintf(out, "tiers     ")
	for i, tier := range maze.Tiers {
		fmt.Fprintf(out, " %s=%d", tier, s.Tiers[i])
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "regions    %d  median %.1f  mean %.1f  stddev %.1f  largest %.1f%%\n",
		len(s.Regions), s.RegionMedian, s.RegionMean, s.RegionStdDev, s.LargestRegionPct)
}

// setupOTelEnv maps a Honeycomb API key to the OTLP exporter variables
// when no endpoint is configured.
func setupOTelEnv() {
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != "" {
		return
	}
	apiKey := os.Getenv("HONEYCOMB_TERRAMAZE_API_KEY")
	if apiKey == "" {
		return
	}
	dataset := os.Getenv("HONEYCOMB_TERRAMAZE_DATASET")
	if dataset == "" {
		dataset = "terramaze"
	}
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
}
