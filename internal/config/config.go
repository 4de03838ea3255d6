// Package config loads generation settings from the bundled defaults, an
// optional YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/samdwyer/terramaze/data"
	"github.com/samdwyer/terramaze/internal/logger"
	"github.com/samdwyer/terramaze/internal/maze"
)

// Config is the full application configuration.
type Config struct {
	Maze      MazeConfig      `yaml:"maze"`
	Logging   logger.Config   `yaml:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// MazeConfig holds the generation knobs.
type MazeConfig struct {
	// Width and Depth are the grid size in cells.
	Width int `yaml:"width"`
	Depth int `yaml:"depth"`

	// MergeProbability is the chance two horizontally adjacent cells are
	// joined while carving. Low values give long vertical corridors.
	MergeProbability float64 `yaml:"merge_probability"`

	// ElevationRatio divides raw elevation deltas into height offsets.
	ElevationRatio float64 `yaml:"elevation_ratio"`

	// ElevationModel is "observed" or "intended".
	ElevationModel string `yaml:"elevation_model"`

	// SiteSize is the block edge for region sites; it must divide Width
	// and Depth.
	SiteSize int `yaml:"site_size"`

	// Palette is a palette id, or "random".
	Palette string `yaml:"palette"`

	// PaletteFile optionally adds palettes from a JSON file.
	PaletteFile string `yaml:"palette_file"`

	// Seed for random generation. 0 picks a time-based seed.
	Seed int64 `yaml:"seed"`
}

// TelemetryConfig controls trace export.
type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
}

// Default returns the bundled defaults.
func Default() Config {
	var c Config
	if err := yaml.Unmarshal(data.Defaults(), &c); err != nil {
		panic(fmt.Sprintf("config: bundled defaults are invalid: %v", err))
	}
	return c
}

// Load reads defaults, then the YAML file at path if it exists, then
// environment overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	c := Default()

	if path != "" {
		content, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return c, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(content, &c); err != nil {
				return Default(), fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := c.ApplyEnv(); err != nil {
		return c, err
	}
	return c, nil
}

// ApplyEnv overrides settings from TERRAMAZE_* and LOG_* variables.
func (c *Config) ApplyEnv() error {
	ints := map[string]*int{
		"TERRAMAZE_WIDTH":     &c.Maze.Width,
		"TERRAMAZE_DEPTH":     &c.Maze.Depth,
		"TERRAMAZE_SITE_SIZE": &c.Maze.SiteSize,
	}
	for name, field := range ints {
		if v := os.Getenv(name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			*field = n
		}
	}

	if v := os.Getenv("TERRAMAZE_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("TERRAMAZE_SEED: %w", err)
		}
		c.Maze.Seed = seed
	}
	if v := os.Getenv("TERRAMAZE_MERGE_PROBABILITY"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("TERRAMAZE_MERGE_PROBABILITY: %w", err)
		}
		c.Maze.MergeProbability = p
	}
	if v := os.Getenv("TERRAMAZE_PALETTE"); v != "" {
		c.Maze.Palette = v
	}
	if v := os.Getenv("TERRAMAZE_ELEVATION_MODEL"); v != "" {
		c.Maze.ElevationModel = v
	}
	if v := os.Getenv("TERRAMAZE_TELEMETRY"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Telemetry.Enabled = enabled
		}
	}

	c.Logging.ApplyEnv()
	return nil
}

// Validate reports every setting that cannot produce a maze. The returned
// error wraps maze.ErrInvalidConfig.
func (m MazeConfig) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{maze.ErrInvalidConfig}, args...)...))
	}

	if m.Width < 1 || m.Depth < 1 {
		fail("grid size %dx%d must be positive", m.Width, m.Depth)
	}
	if m.MergeProbability < 0 || m.MergeProbability > 1 {
		fail("merge probability %v outside [0,1]", m.MergeProbability)
	}
	if m.ElevationRatio <= 0 {
		fail("elevation ratio %v must be positive", m.ElevationRatio)
	}
	if _, err := maze.ParseElevationModel(m.ElevationModel); err != nil {
		errs = append(errs, err)
	}
	switch {
	case m.SiteSize < 1:
		fail("site size %d must be positive", m.SiteSize)
	case m.Width >= 1 && m.Depth >= 1 && (m.Width%m.SiteSize != 0 || m.Depth%m.SiteSize != 0):
		fail("site size %d does not divide grid %dx%d", m.SiteSize, m.Width, m.Depth)
	}
	if m.Palette == "" {
		fail("palette id is empty")
	}

	return errors.Join(errs...)
}
