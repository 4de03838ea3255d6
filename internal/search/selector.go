package search

import (
	"fmt"
	"math/rand"

	"github.com/samdwyer/terramaze/internal/maze"
)

// Selection is the outcome of the exit and key search.
type Selection struct {
	Start int
	Exit  int
	Key   int

	// ExitPath runs from Start to Exit, both included.
	ExitPath []int
	// KeyDivergence is the number of the key's ancestors off ExitPath.
	KeyDivergence int
}

// Depth returns the passage count from start to exit.
func (s Selection) Depth() int {
	return len(s.ExitPath) - 1
}

// SelectExitAndKey runs one breadth-first pass from start over a carved
// grid. Every cell reached gets its history and, through prop, its
// elevation. The last cell dequeued is the exit, which in a tree is a cell
// of maximum depth from start.
//
// The key is the cell whose history has the most ancestors off the exit
// path, scanning in g.ScanOrder and keeping the first maximum. A maze that
// is a single corridor has no such cell; the key then shares the exit cell.
func SelectExitAndKey(g *maze.Grid, start int, prop maze.Propagator, rng *rand.Rand) (Selection, error) {
	if start < 0 || start >= g.Len() {
		return Selection{}, fmt.Errorf("%w: start cell %d outside grid of %d cells", maze.ErrInvalidConfig, start, g.Len())
	}
	if prop.Ratio() <= 0 {
		return Selection{}, fmt.Errorf("%w: propagator has no elevation ratio", maze.ErrInvalidConfig)
	}
	if g.Cell(start).Elevated() || g.Cell(start).History() != nil {
		return Selection{}, fmt.Errorf("%w: grid has already been traversed", maze.ErrInconsistent)
	}

	prop.Seed(g.Cell(start))

	tracker := NewTracker(g, start)
	tracker.Discover = func(parent, child int) {
		prop.Propagate(g.Cell(parent), g.Cell(child), rng)
	}

	exit := start
	for {
		current, ok := tracker.Dequeue()
		if !ok {
			break
		}
		g.Cell(current).SetHistory(tracker.History(current))
		tracker.Expand(current)
		if tracker.Pending() == 0 {
			exit = current
		}
	}

	if tracker.VisitedCount() != g.Len() {
		return Selection{}, fmt.Errorf("%w: traversal from %v reached %d of %d cells",
			maze.ErrInconsistent, g.Pos(start), tracker.VisitedCount(), g.Len())
	}

	exitPath := tracker.Path(exit)
	key, divergence := selectKey(g, exitPath)
	if divergence == 0 {
		key = exit
	}

	return Selection{
		Start:         start,
		Exit:          exit,
		Key:           key,
		ExitPath:      exitPath,
		KeyDivergence: divergence,
	}, nil
}

// selectKey returns the first cell in scan order with the most ancestors
// off exitPath, and that count. It returns -1, 0 when no cell diverges.
func selectKey(g *maze.Grid, exitPath []int) (int, int) {
	onPath := make([]bool, g.Len())
	for _, cell := range exitPath {
		onPath[cell] = true
	}

	key, best := -1, 0
	for _, cell := range g.ScanOrder() {
		off := 0
		for _, ancestor := range g.Cell(cell).History() {
			if !onPath[ancestor] {
				off++
			}
		}
		if off > best {
			key, best = cell, off
		}
	}
	return key, best
}
