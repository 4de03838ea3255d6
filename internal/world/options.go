package world

import (
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/samdwyer/terramaze/internal/config"
	"github.com/samdwyer/terramaze/internal/gamedata"
	"github.com/samdwyer/terramaze/internal/maze"
)

// RandomPalette asks for a palette drawn from the registry.
const RandomPalette = "random"

// OptionsFromConfig turns validated settings into generation options.
// A zero seed is replaced by a time-based one here so that a random
// palette pick is reproducible from the recorded seed.
func OptionsFromConfig(cfg config.MazeConfig, palettes *gamedata.PaletteRegistry) (Options, error) {
	if err := cfg.Validate(); err != nil {
		return Options{}, err
	}
	model, err := maze.ParseElevationModel(cfg.ElevationModel)
	if err != nil {
		return Options{}, err
	}

	if cfg.PaletteFile != "" {
		dir, name := filepath.Split(cfg.PaletteFile)
		if dir == "" {
			dir = "."
		}
		if err := palettes.Merge(os.DirFS(dir), name); err != nil {
			return Options{}, err
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	opts := Options{
		Width:            cfg.Width,
		Depth:            cfg.Depth,
		MergeProbability: cfg.MergeProbability,
		ElevationRatio:   cfg.ElevationRatio,
		ElevationModel:   model,
		SiteSize:         cfg.SiteSize,
		Seed:             seed,
	}

	if cfg.Palette == RandomPalette {
		opts.Palette = palettes.Pick(rand.New(rand.NewSource(seed)))
		return opts, nil
	}
	opts.Palette, err = palettes.Get(cfg.Palette)
	if err != nil {
		return Options{}, err
	}
	return opts, nil
}
