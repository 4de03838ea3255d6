package world

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/samdwyer/terramaze/internal/config"
	"github.com/samdwyer/terramaze/internal/gamedata"
	"github.com/samdwyer/terramaze/internal/maze"
)

func testOptions(t *testing.T, seed int64) Options {
	t.Helper()
	palette, err := gamedata.MustLoadPaletteRegistry().Get("station")
	if err != nil {
		t.Fatalf("Get(station): %v", err)
	}
	return Options{
		Width:            20,
		Depth:            20,
		MergeProbability: 0.5,
		ElevationRatio:   100,
		ElevationModel:   maze.ModelObserved,
		SiteSize:         5,
		Palette:          palette,
		Seed:             seed,
	}
}

func views(w *World) []CellView {
	var out []CellView
	w.Each(func(v CellView) { out = append(out, v) })
	return out
}

func TestGenerate(t *testing.T) {
	opts := testOptions(t, 12345)
	w, err := Generate(context.Background(), opts)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if w.ID == "" {
		t.Error("world should have an id")
	}
	if w.Seed != 12345 {
		t.Errorf("Seed = %d, want 12345", w.Seed)
	}
	if got := w.Grid.EdgeCount(); got != w.Grid.Len()-1 {
		t.Errorf("EdgeCount() = %d, want %d", got, w.Grid.Len()-1)
	}
	if len(w.Partition.Sites) != 16 {
		t.Errorf("got %d sites, want 16", len(w.Partition.Sites))
	}
	if pos := w.Grid.Pos(w.Start); pos.Z != 0 || pos.X > w.Grid.Width-2 {
		t.Errorf("start %v should be in the first row, not the last column", pos)
	}
	if w.ExitPath[0] != w.Start || w.ExitPath[len(w.ExitPath)-1] != w.Exit {
		t.Errorf("exit path %v should run from start %d to exit %d", w.ExitPath, w.Start, w.Exit)
	}

	for i := 0; i < w.Grid.Len(); i++ {
		c := w.Grid.Cell(i)
		if !c.Elevated() {
			t.Errorf("cell %v has no elevation", c.Pos)
		}
		if c.Color() == maze.Unset {
			t.Errorf("cell %v has no color", c.Pos)
		}
	}
	if got := w.Grid.Cell(w.Key).Color(); got != opts.Palette.Key {
		t.Errorf("key color = %v, want %v", got, opts.Palette.Key)
	}
	if w.Partition.KeySite != w.Exit {
		if got := w.Grid.Cell(w.Exit).Color(); got != opts.Palette.Exit {
			t.Errorf("exit color = %v, want %v", got, opts.Palette.Exit)
		}
	}
}

func TestGenerateReproducibility(t *testing.T) {
	w1, err := Generate(context.Background(), testOptions(t, 777))
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	w2, err := Generate(context.Background(), testOptions(t, 777))
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if w1.ID == w2.ID {
		t.Error("each run should get its own id")
	}
	if w1.Start != w2.Start || w1.Exit != w2.Exit || w1.Key != w2.Key {
		t.Errorf("start/exit/key mismatch: %d/%d/%d vs %d/%d/%d",
			w1.Start, w1.Exit, w1.Key, w2.Start, w2.Exit, w2.Key)
	}
	if diff := cmp.Diff(w1.Partition.Sites, w2.Partition.Sites); diff != "" {
		t.Errorf("sites mismatch (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(views(w1), views(w2)); diff != "" {
		t.Errorf("cells mismatch (-first +second):\n%s", diff)
	}
}

func TestGenerateDifferentSeeds(t *testing.T) {
	w1, err := Generate(context.Background(), testOptions(t, 12345))
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	w2, err := Generate(context.Background(), testOptions(t, 54321))
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if cmp.Equal(views(w1), views(w2)) {
		t.Error("worlds with different seeds should not be identical")
	}
}

func TestGenerateZeroSeed(t *testing.T) {
	w, err := Generate(context.Background(), testOptions(t, 0))
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if w.Seed == 0 {
		t.Error("a zero seed should be replaced and recorded")
	}
}

func TestGenerateInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"zero width", func(o *Options) { o.Width = 0 }},
		{"merge probability", func(o *Options) { o.MergeProbability = -0.1 }},
		{"elevation ratio", func(o *Options) { o.ElevationRatio = 0 }},
		{"site size", func(o *Options) { o.SiteSize = 3 }},
		{"empty palette", func(o *Options) { o.Palette.Colors = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions(t, 1)
			tt.mutate(&opts)
			w, err := Generate(context.Background(), opts)
			if !errors.Is(err, maze.ErrInvalidConfig) {
				t.Errorf("Generate() error = %v, want ErrInvalidConfig", err)
			}
			if w != nil {
				t.Error("no world should be returned on error")
			}
		})
	}
}

func TestGenerateSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	if _, err := Generate(context.Background(), testOptions(t, 5)); err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	var names []string
	for _, s := range recorder.Ended() {
		names = append(names, s.Name())
	}
	want := []string{"world.carve", "world.select", "world.partition", "world.generate"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("span names mismatch (-want +got):\n%s", diff)
	}
}

func TestPickStart(t *testing.T) {
	g, err := maze.NewGrid(1, 3)
	if err != nil {
		t.Fatal(err)
	}
	if got := PickStart(g, nil); got != 0 {
		t.Errorf("PickStart on a single column = %d, want 0", got)
	}
}

func TestRestHeight(t *testing.T) {
	w, err := Generate(context.Background(), testOptions(t, 31))
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	for _, cell := range []int{w.Exit, w.Key} {
		v := w.View(cell)
		d, ok := w.Grid.Cell(cell).OpenDirection()
		if !ok {
			t.Fatalf("cell %v has no open wall", v.Pos)
		}
		n, _ := w.Grid.Step(cell, d)
		if v.RestHeight != w.Grid.Cell(n).Height() {
			t.Errorf("RestHeight of %v = %v, want neighbor height %v", v.Pos, v.RestHeight, w.Grid.Cell(n).Height())
		}
	}

	for i := 0; i < w.Grid.Len(); i++ {
		if i == w.Exit || i == w.Key {
			continue
		}
		if v := w.View(i); v.RestHeight != v.Height {
			t.Errorf("cell %v RestHeight %v differs from Height %v", v.Pos, v.RestHeight, v.Height)
			break
		}
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default().Maze
	cfg.Seed = 42

	opts, err := OptionsFromConfig(cfg, gamedata.MustLoadPaletteRegistry())
	if err != nil {
		t.Fatalf("OptionsFromConfig() error: %v", err)
	}
	if opts.Palette.ID != "station" || opts.Seed != 42 || opts.ElevationModel != maze.ModelObserved {
		t.Errorf("OptionsFromConfig() = %+v", opts)
	}

	cfg.Palette = RandomPalette
	a, err := OptionsFromConfig(cfg, gamedata.MustLoadPaletteRegistry())
	if err != nil {
		t.Fatalf("OptionsFromConfig(random) error: %v", err)
	}
	b, _ := OptionsFromConfig(cfg, gamedata.MustLoadPaletteRegistry())
	if a.Palette.ID != b.Palette.ID {
		t.Errorf("random palette should follow the seed: %q vs %q", a.Palette.ID, b.Palette.ID)
	}

	cfg.Palette = "missing"
	if _, err := OptionsFromConfig(cfg, gamedata.MustLoadPaletteRegistry()); !errors.Is(err, maze.ErrInvalidConfig) {
		t.Errorf("unknown palette error = %v, want ErrInvalidConfig", err)
	}
}

func TestOptionsFromConfigPaletteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extra.json")
	content := `{"palettes": [{"id": "mono", "name": "Mono", "colors": ["#808080"], "exit": "#FFFFFF", "key": "#000001"}]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default().Maze
	cfg.Palette = "mono"
	cfg.PaletteFile = path

	opts, err := OptionsFromConfig(cfg, gamedata.MustLoadPaletteRegistry())
	if err != nil {
		t.Fatalf("OptionsFromConfig() error: %v", err)
	}
	if len(opts.Palette.Colors) != 1 {
		t.Errorf("mono palette has %d colors, want 1", len(opts.Palette.Colors))
	}
}
