package ui

import (
	"context"
	"testing"

	"github.com/samdwyer/terramaze/internal/entity"
	"github.com/samdwyer/terramaze/internal/gamedata"
	"github.com/samdwyer/terramaze/internal/maze"
	"github.com/samdwyer/terramaze/internal/world"
)

func newWorld(t *testing.T) *world.World {
	t.Helper()
	palette, err := gamedata.MustLoadPaletteRegistry().Get("station")
	if err != nil {
		t.Fatal(err)
	}
	w, err := world.Generate(context.Background(), world.Options{
		Width:            5,
		Depth:            5,
		MergeProbability: 0.5,
		ElevationRatio:   100,
		SiteSize:         5,
		Palette:          palette,
		Seed:             8,
	})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	return w
}

func TestCellOrigin(t *testing.T) {
	g, err := maze.NewGrid(3, 2)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		pos  maze.Pos
		x, y int
	}{
		{maze.Pos{X: 0, Z: 0}, 1, 3},
		{maze.Pos{X: 2, Z: 0}, 5, 3},
		{maze.Pos{X: 0, Z: 1}, 1, 1},
	}
	for _, tt := range tests {
		x, y := CellOrigin(g, tt.pos)
		if x != tt.x || y != tt.y {
			t.Errorf("CellOrigin(%v) = (%d,%d), want (%d,%d)", tt.pos, x, y, tt.x, tt.y)
		}
	}

	if w, h := MapSize(g); w != 7 || h != 5 {
		t.Errorf("MapSize() = (%d,%d), want (7,5)", w, h)
	}
}

func TestRender(t *testing.T) {
	w := newWorld(t)
	screen, _, err := NewSimulationScreen(40, 20)
	if err != nil {
		t.Fatalf("NewSimulationScreen() error: %v", err)
	}
	defer screen.Close()

	explorer := entity.NewExplorer(w)
	NewRenderer(screen).Render(w, explorer, "status")

	if got := screen.Content(0, 0); got != wallRune {
		t.Errorf("corner = %q, want wall", got)
	}

	px, py := CellOrigin(w.Grid, explorer.Position())
	if got := screen.Content(px, py); got != '@' {
		t.Errorf("explorer cell = %q, want '@'", got)
	}

	if w.Exit != w.Start {
		ex, ey := CellOrigin(w.Grid, w.Grid.Pos(w.Exit))
		if got := screen.Content(ex, ey); got != exitRune {
			t.Errorf("exit cell = %q, want %q", got, exitRune)
		}
	}

	// Every wall between two cells is drawn open or closed to match the grid.
	for i := 0; i < w.Grid.Len(); i++ {
		c := w.Grid.Cell(i)
		x, y := CellOrigin(w.Grid, c.Pos)
		if c.Pos.X < w.Grid.Width-1 {
			open := screen.Content(x+1, y) != wallRune
			if open != c.IsOpen(maze.Right) {
				t.Errorf("right wall of %v drawn open=%v, grid open=%v", c.Pos, open, c.IsOpen(maze.Right))
			}
		}
		if c.Pos.Z < w.Grid.Depth-1 {
			open := screen.Content(x, y-1) != wallRune
			if open != c.IsOpen(maze.Top) {
				t.Errorf("top wall of %v drawn open=%v, grid open=%v", c.Pos, open, c.IsOpen(maze.Top))
			}
		}
	}

	_, h := MapSize(w.Grid)
	if got := screen.Content(0, h); got != 's' {
		t.Errorf("status line starts with %q, want 's'", got)
	}
}

func TestTierRune(t *testing.T) {
	seen := make(map[rune]bool)
	for _, tier := range maze.Tiers {
		r := tierRune(tier)
		if r == wallRune || r == exitRune || r == keyRune {
			t.Errorf("tier %v glyph %q collides with a marker", tier, r)
		}
		if seen[r] {
			t.Errorf("tier %v glyph %q is not unique", tier, r)
		}
		seen[r] = true
	}
}
