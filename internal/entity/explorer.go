// Package entity provides the player's explorer.
package entity

import (
	"github.com/samdwyer/terramaze/internal/maze"
	"github.com/samdwyer/terramaze/internal/world"
)

// Explorer is the player walking the maze. It escapes by reaching the
// exit after picking up the key.
type Explorer struct {
	Cell   int  // Current cell index
	Symbol rune // Display symbol

	world  *world.World
	hasKey bool
	steps  int
}

// NewExplorer places an explorer on the start cell of w.
func NewExplorer(w *world.World) *Explorer {
	e := &Explorer{
		Cell:   w.Start,
		Symbol: '@',
		world:  w,
	}
	e.pickUp()
	return e
}

// Move walks one cell in direction d. It returns false and stays put when
// the wall on that side is closed.
func (e *Explorer) Move(d maze.Direction) bool {
	if !e.world.Grid.Cell(e.Cell).IsOpen(d) {
		return false
	}
	next, ok := e.world.Grid.Step(e.Cell, d)
	if !ok {
		return false
	}
	e.Cell = next
	e.steps++
	e.pickUp()
	return true
}

func (e *Explorer) pickUp() {
	if e.world.IsKey(e.Cell) {
		e.hasKey = true
	}
}

// Position returns the current coordinate.
func (e *Explorer) Position() maze.Pos {
	return e.world.Grid.Pos(e.Cell)
}

// HasKey reports whether the key has been collected.
func (e *Explorer) HasKey() bool {
	return e.hasKey
}

// AtExit reports whether the explorer stands on the exit.
func (e *Explorer) AtExit() bool {
	return e.world.IsExit(e.Cell)
}

// Escaped reports whether the explorer reached the exit holding the key.
func (e *Explorer) Escaped() bool {
	return e.hasKey && e.AtExit()
}

// Steps returns the number of moves made.
func (e *Explorer) Steps() int {
	return e.steps
}
