package stats

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/terramaze/internal/gamedata"
	"github.com/samdwyer/terramaze/internal/maze"
	"github.com/samdwyer/terramaze/internal/world"
)

func generate(t *testing.T, seed int64) *world.World {
	t.Helper()
	palette, err := gamedata.MustLoadPaletteRegistry().Get("forest")
	require.NoError(t, err)

	w, err := world.Generate(context.Background(), world.Options{
		Width:            10,
		Depth:            10,
		MergeProbability: 0.5,
		ElevationRatio:   100,
		ElevationModel:   maze.ModelIntended,
		SiteSize:         5,
		Palette:          palette,
		Seed:             seed,
	})
	require.NoError(t, err)
	return w
}

func TestSummarize(t *testing.T) {
	w := generate(t, 2024)
	s := Summarize(w)

	assert.Equal(t, w.ID, s.ID)
	assert.Equal(t, int64(2024), s.Seed)
	assert.Equal(t, 100, s.Cells)
	assert.Equal(t, 99, s.Passages)
	assert.Equal(t, len(w.ExitPath)-1, s.ExitDepth)
	assert.Positive(t, s.DeadEnds)

	tiers := 0
	for _, n := range s.Tiers {
		tiers += n
	}
	assert.Equal(t, s.Cells, tiers, "every cell falls in one tier")
	assert.Positive(t, s.Tiers[maze.Neutral.Rank()], "the start cell is neutral")

	assert.LessOrEqual(t, s.HeightMin, s.HeightMean)
	assert.LessOrEqual(t, s.HeightMean, s.HeightMax)
	assert.GreaterOrEqual(t, s.HeightStdDev, 0.0)

	cells := 0
	for i, r := range s.Regions {
		cells += r.Cells
		if i > 0 {
			assert.LessOrEqual(t, r.Cells, s.Regions[i-1].Cells, "regions sorted largest first")
		}
		assert.NotEqual(t, maze.Unset, r.Color)
	}
	assert.Equal(t, s.Cells, cells)
	assert.InDelta(t, float64(s.Cells)/float64(len(s.Regions)), s.RegionMean, 1e-9)
	assert.InDelta(t, 100*float64(s.Regions[0].Cells)/float64(s.Cells), s.LargestRegionPct, 1e-9)
}

func TestSummarizeDeterministic(t *testing.T) {
	a := Summarize(generate(t, 9))
	b := Summarize(generate(t, 9))

	a.ID, b.ID = "", ""
	assert.Equal(t, a, b)
}

func TestSaveHeightHistogram(t *testing.T) {
	w := generate(t, 3)
	path := filepath.Join(t.TempDir(), "heights.png")

	require.NoError(t, SaveHeightHistogram(w, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
