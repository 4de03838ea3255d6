// Package search provides breadth-first traversal with path history and the
// exit and key cell selection built on it.
package search

import "github.com/samdwyer/terramaze/internal/maze"

// Tracker is a breadth-first traversal of a grid's passages that remembers,
// for every cell it reaches, the ordered list of ancestors from the origin.
type Tracker struct {
	grid    *maze.Grid
	origin  int
	queue   []int
	head    int
	history map[int][]int

	// Discover, when set, is called once for every passage crossed into an
	// unvisited cell, before the cell is queued.
	Discover func(parent, child int)
}

// NewTracker starts a traversal at origin. The origin's history is empty.
func NewTracker(g *maze.Grid, origin int) *Tracker {
	return &Tracker{
		grid:    g,
		origin:  origin,
		queue:   []int{origin},
		history: map[int][]int{origin: {}},
	}
}

// Origin returns the traversal's starting cell.
func (t *Tracker) Origin() int {
	return t.origin
}

// Pending returns the number of queued cells not yet dequeued.
func (t *Tracker) Pending() int {
	return len(t.queue) - t.head
}

// Peek returns the next cell Dequeue would return.
func (t *Tracker) Peek() (int, bool) {
	if t.Pending() == 0 {
		return -1, false
	}
	return t.queue[t.head], true
}

// Dequeue removes and returns the next cell in breadth-first order.
func (t *Tracker) Dequeue() (int, bool) {
	cell, ok := t.Peek()
	if ok {
		t.head++
	}
	return cell, ok
}

// Expand queues every unvisited neighbor of cell, extending cell's history
// by cell itself.
func (t *Tracker) Expand(cell int) {
	parent := t.history[cell]
	for _, n := range t.grid.Neighbors(cell) {
		if _, seen := t.history[n]; seen {
			continue
		}
		if t.Discover != nil {
			t.Discover(cell, n)
		}
		h := make([]int, len(parent), len(parent)+1)
		copy(h, parent)
		t.history[n] = append(h, cell)
		t.queue = append(t.queue, n)
	}
}

// Visited reports whether cell has been reached.
func (t *Tracker) Visited(cell int) bool {
	_, ok := t.history[cell]
	return ok
}

// VisitedCount returns how many cells have been reached, origin included.
func (t *Tracker) VisitedCount() int {
	return len(t.history)
}

// History returns the ancestors of cell, origin first, or nil if it has
// not been reached.
func (t *Tracker) History(cell int) []int {
	return t.history[cell]
}

// Depth returns the passage count from the origin to cell, or -1.
func (t *Tracker) Depth(cell int) int {
	h, ok := t.history[cell]
	if !ok {
		return -1
	}
	return len(h)
}

// Path returns the history of cell with cell appended.
func (t *Tracker) Path(cell int) []int {
	h, ok := t.history[cell]
	if !ok {
		return nil
	}
	path := make([]int, len(h), len(h)+1)
	copy(path, h)
	return append(path, cell)
}
