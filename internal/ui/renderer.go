package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/terramaze/internal/entity"
	"github.com/samdwyer/terramaze/internal/maze"
	"github.com/samdwyer/terramaze/internal/world"
)

const (
	wallRune = '#'
	exitRune = '>'
	keyRune  = 'k'
)

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// CellOrigin returns the screen position of a maze cell. Each cell takes
// one character with a wall character between neighbors; higher z is
// drawn nearer the top.
func CellOrigin(g *maze.Grid, p maze.Pos) (x, y int) {
	return 2*p.X + 1, 2*(g.Depth-1-p.Z) + 1
}

// MapSize returns the screen area taken by the maze.
func MapSize(g *maze.Grid) (width, height int) {
	return 2*g.Width + 1, 2*g.Depth + 1
}

// Render draws the maze, the explorer and a status line below the map.
func (r *Renderer) Render(w *world.World, explorer *entity.Explorer, status string) {
	r.screen.Clear()

	width, height := MapSize(w.Grid)
	wallStyle := tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r.screen.SetContent(x, y, wallRune, wallStyle)
		}
	}

	w.Each(func(v world.CellView) {
		x, y := CellOrigin(w.Grid, v.Pos)
		style := floorStyle(v.Color)

		glyph := tierRune(v.Tier)
		switch {
		case v.Exit:
			glyph = exitRune
		case v.Key && !explorer.HasKey():
			glyph = keyRune
		}
		r.screen.SetContent(x, y, glyph, style)

		// Right and Top passages; the other two are drawn by the neighbor.
		if v.Open[maze.Right] {
			r.screen.SetContent(x+1, y, ' ', style)
		}
		if v.Open[maze.Top] {
			r.screen.SetContent(x, y-1, ' ', style)
		}
	})

	px, py := CellOrigin(w.Grid, explorer.Position())
	explorerStyle := floorStyle(w.Grid.Cell(explorer.Cell).Color()).
		Foreground(tcell.ColorYellow).
		Bold(true)
	r.screen.SetContent(px, py, explorer.Symbol, explorerStyle)

	r.RenderMessage(status, height)
	r.screen.Show()
}

func floorStyle(c tcell.Color) tcell.Style {
	return tcell.StyleDefault.Background(c).Foreground(tcell.ColorBlack)
}

// tierRune returns the floor glyph of an elevation band.
func tierRune(t maze.Tier) rune {
	switch t {
	case maze.VeryLow:
		return '_'
	case maze.Low:
		return '.'
	case maze.High:
		return '+'
	case maze.VeryHigh:
		return '^'
	default:
		return ' '
	}
}

// RenderMessage displays a message at the bottom of the screen.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, ch := range []rune(msg) {
		r.screen.SetContent(i, y, ch, style)
	}
}
