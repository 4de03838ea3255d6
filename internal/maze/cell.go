package maze

import "github.com/gdamore/tcell/v2"

// Unset is the color of a cell that has not been assigned a region yet.
const Unset = tcell.ColorDefault

// Pos is an integer grid coordinate.
type Pos struct {
	X, Z int
}

// Cell is a single maze cell. Cells never reference each other directly;
// neighbors and history are stored as grid indices.
type Cell struct {
	Pos

	open      [4]bool // Indexed by Direction, true when the wall is carved
	visited   bool
	neighbors []int

	tier     Tier
	offset   float64
	height   float64
	elevated bool

	history []int
	color   tcell.Color
}

// IsOpen reports whether the wall on side d has been carved.
func (c *Cell) IsOpen(d Direction) bool {
	return c.open[d]
}

// OpenCount returns the number of carved walls.
func (c *Cell) OpenCount() int {
	n := 0
	for _, o := range c.open {
		if o {
			n++
		}
	}
	return n
}

// OpenDirection returns the first carved side, checked in the order top,
// bottom, left, right. Dead ends have exactly one.
func (c *Cell) OpenDirection() (Direction, bool) {
	for _, d := range [4]Direction{Top, Bottom, Left, Right} {
		if c.open[d] {
			return d, true
		}
	}
	return Left, false
}

// Visited reports whether carving has placed the cell into a set.
func (c *Cell) Visited() bool {
	return c.visited
}

// Neighbors returns the indices of cells reachable through an open wall.
func (c *Cell) Neighbors() []int {
	return c.neighbors
}

// Tier returns the elevation tier. Only meaningful once Elevated is true.
func (c *Cell) Tier() Tier {
	return c.tier
}

// Offset returns the continuous height delta drawn for this cell.
func (c *Cell) Offset() float64 {
	return c.offset
}

// Height returns the cumulative terrain height along the traversal path.
func (c *Cell) Height() float64 {
	return c.height
}

// Elevated reports whether the cell's elevation has been assigned.
func (c *Cell) Elevated() bool {
	return c.elevated
}

// SetElevation assigns tier, offset and height. The first call wins; later
// calls are ignored and report false.
func (c *Cell) SetElevation(tier Tier, offset, height float64) bool {
	if c.elevated {
		return false
	}
	c.tier = tier
	c.offset = offset
	c.height = height
	c.elevated = true
	return true
}

// History returns the ancestors from the traversal origin to this cell,
// origin first. The cell itself is not included.
func (c *Cell) History() []int {
	return c.history
}

// SetHistory records the path to this cell. History is write-once: a cell
// that already has one keeps it and false is returned.
func (c *Cell) SetHistory(history []int) bool {
	if c.history != nil {
		return false
	}
	c.history = history
	return true
}

// Color returns the region color, or Unset.
func (c *Cell) Color() tcell.Color {
	return c.color
}

// SetColor assigns the region color.
func (c *Cell) SetColor(color tcell.Color) {
	c.color = color
}
