// Package export writes a generated world as YAML for level tooling.
package export

import (
	"fmt"
	"io"
	"os"

	"github.com/gdamore/tcell/v2"
	"gopkg.in/yaml.v3"

	"github.com/samdwyer/terramaze/internal/maze"
	"github.com/samdwyer/terramaze/internal/world"
)

// LayoutYAML is the exported world.
type LayoutYAML struct {
	ID      string     `yaml:"id"`
	Seed    int64      `yaml:"seed"`
	Width   int        `yaml:"width"`
	Depth   int        `yaml:"depth"`
	Palette string     `yaml:"palette"`
	Start   string     `yaml:"start"`
	Exit    string     `yaml:"exit"`
	Key     string     `yaml:"key"`
	Sites   []string   `yaml:"sites"`
	Cells   []CellYAML `yaml:"cells"`
}

// CellYAML is one cell of the layout.
type CellYAML struct {
	ID         string            `yaml:"id"`
	X          int               `yaml:"x"`
	Z          int               `yaml:"z"`
	Tier       string            `yaml:"tier"`
	Offset     float64           `yaml:"offset"`
	Height     float64           `yaml:"height"`
	RestHeight float64           `yaml:"rest_height"`
	Color      string            `yaml:"color"`
	Features   []string          `yaml:"features,omitempty"`
	Exits      map[string]string `yaml:"exits,omitempty"`
}

// CellID names the cell at x, z.
func CellID(x, z int) string {
	return fmt.Sprintf("cell_%d_%d", x, z)
}

func cellID(g *maze.Grid, i int) string {
	p := g.Pos(i)
	return CellID(p.X, p.Z)
}

// Layout converts w to its YAML form. Cells are listed in index order.
func Layout(w *world.World) *LayoutYAML {
	g := w.Grid
	out := &LayoutYAML{
		ID:      w.ID,
		Seed:    w.Seed,
		Width:   g.Width,
		Depth:   g.Depth,
		Palette: w.Palette.ID,
		Start:   cellID(g, w.Start),
		Exit:    cellID(g, w.Exit),
		Key:     cellID(g, w.Key),
		Sites:   make([]string, 0, len(w.Partition.Sites)),
		Cells:   make([]CellYAML, 0, g.Len()),
	}
	for _, s := range w.Partition.Sites {
		out.Sites = append(out.Sites, cellID(g, s))
	}

	w.Each(func(v world.CellView) {
		c := CellYAML{
			ID:         CellID(v.Pos.X, v.Pos.Z),
			X:          v.Pos.X,
			Z:          v.Pos.Z,
			Tier:       v.Tier.String(),
			Offset:     v.Offset,
			Height:     v.Height,
			RestHeight: v.RestHeight,
			Color:      colorHex(v.Color),
			Exits:      make(map[string]string),
		}
		if v.Start {
			c.Features = append(c.Features, "start")
		}
		if v.Exit {
			c.Features = append(c.Features, "exit")
		}
		if v.Key {
			c.Features = append(c.Features, "key")
		}
		if v.IsSite {
			c.Features = append(c.Features, "site")
		}
		for _, d := range maze.Directions {
			if !v.Open[d] {
				continue
			}
			if n, ok := g.Step(v.Index, d); ok {
				c.Exits[d.String()] = cellID(g, n)
			}
		}
		out.Cells = append(out.Cells, c)
	})
	return out
}

func colorHex(c tcell.Color) string {
	if c == maze.Unset {
		return ""
	}
	return fmt.Sprintf("#%06X", c.Hex())
}

// Write encodes the layout of w to out.
func Write(out io.Writer, w *world.World) error {
	layout := Layout(w)

	fmt.Fprintf(out, "# terramaze layout %s\n", layout.ID)
	fmt.Fprintf(out, "# Generated maze: %dx%d grid, seed %d\n", layout.Width, layout.Depth, layout.Seed)
	fmt.Fprintf(out, "# Total cells: %d\n\n", len(layout.Cells))

	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	if err := encoder.Encode(layout); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return encoder.Close()
}

// WriteFile writes the layout of w to path.
func WriteFile(path string, w *world.World) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := Write(f, w); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Read decodes a layout written by Write.
func Read(in io.Reader) (*LayoutYAML, error) {
	var layout LayoutYAML
	if err := yaml.NewDecoder(in).Decode(&layout); err != nil {
		return nil, fmt.Errorf("failed to decode YAML: %w", err)
	}
	return &layout, nil
}
