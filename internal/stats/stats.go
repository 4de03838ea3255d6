// Package stats summarizes a generated world.
package stats

import (
	"sort"

	"github.com/gdamore/tcell/v2"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/samdwyer/terramaze/internal/maze"
	"github.com/samdwyer/terramaze/internal/world"
)

// Region is the cell count of one color.
type Region struct {
	Color tcell.Color
	Cells int
}

// Summary holds the figures printed by the -summary flag.
type Summary struct {
	ID   string
	Seed int64

	Cells     int
	Passages  int
	DeadEnds  int
	ExitDepth int

	HeightMean   float64
	HeightStdDev float64
	HeightMin    float64
	HeightMax    float64

	// Tiers counts cells per elevation band, indexed by Tier.Rank.
	Tiers [len(maze.Tiers)]int

	// Regions is sorted by size, largest first.
	Regions          []Region
	RegionMedian     float64
	RegionMean       float64
	RegionStdDev     float64
	LargestRegionPct float64
}

// Summarize computes the summary of w.
func Summarize(w *world.World) Summary {
	g := w.Grid
	s := Summary{
		ID:        w.ID,
		Seed:      w.Seed,
		Cells:     g.Len(),
		Passages:  g.EdgeCount(),
		ExitDepth: len(w.ExitPath) - 1,
	}

	heights := make([]float64, g.Len())
	byColor := make(map[tcell.Color]int)
	var colorOrder []tcell.Color
	for i := range heights {
		c := g.Cell(i)
		heights[i] = c.Height()
		if r := c.Tier().Rank(); r >= 0 {
			s.Tiers[r]++
		}
		if c.OpenCount() == 1 {
			s.DeadEnds++
		}
		if _, seen := byColor[c.Color()]; !seen {
			colorOrder = append(colorOrder, c.Color())
		}
		byColor[c.Color()]++
	}

	s.HeightMean, s.HeightStdDev = stat.MeanStdDev(heights, nil)
	s.HeightMin = floats.Min(heights)
	s.HeightMax = floats.Max(heights)

	for _, color := range colorOrder {
		s.Regions = append(s.Regions, Region{Color: color, Cells: byColor[color]})
	}
	sort.SliceStable(s.Regions, func(i, j int) bool {
		return s.Regions[i].Cells > s.Regions[j].Cells
	})

	sizes := make([]float64, len(s.Regions))
	for i, r := range s.Regions {
		sizes[i] = float64(r.Cells)
	}
	s.RegionMean, s.RegionStdDev = stat.MeanStdDev(sizes, nil)
	sort.Float64s(sizes)
	s.RegionMedian = stat.Quantile(0.5, stat.Empirical, sizes, nil)
	s.LargestRegionPct = 100 * floats.Max(sizes) / floats.Sum(sizes)

	return s
}
