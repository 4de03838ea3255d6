package stats

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/samdwyer/terramaze/internal/world"
)

const histogramBins = 20

// HeightHistogram builds a plot of the cell height distribution.
func HeightHistogram(w *world.World) (*plot.Plot, error) {
	values := make(plotter.Values, w.Grid.Len())
	for i := range values {
		values[i] = w.Grid.Cell(i).Height()
	}

	hist, err := plotter.NewHist(values, histogramBins)
	if err != nil {
		return nil, fmt.Errorf("height histogram: %w", err)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Cell heights, seed %d", w.Seed)
	p.X.Label.Text = "height"
	p.Y.Label.Text = "cells"
	p.Add(hist)
	return p, nil
}

// SaveHeightHistogram writes the height histogram to path. The image
// format follows the file extension.
func SaveHeightHistogram(w *world.World, path string) error {
	p, err := HeightHistogram(w)
	if err != nil {
		return err
	}
	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save histogram %s: %w", path, err)
	}
	return nil
}
