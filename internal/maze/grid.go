package maze

import "fmt"

// Grid is the width x depth collection of cells. Cells are stored densely
// and addressed by index z*Width + x.
type Grid struct {
	Width int
	Depth int
	cells []Cell
}

// NewGrid creates a grid with every wall closed.
func NewGrid(width, depth int) (*Grid, error) {
	if width < 1 || depth < 1 {
		return nil, fmt.Errorf("%w: grid size %dx%d must be positive", ErrInvalidConfig, width, depth)
	}

	cells := make([]Cell, width*depth)
	for i := range cells {
		cells[i].Pos = Pos{X: i % width, Z: i / width}
		cells[i].color = Unset
	}

	return &Grid{
		Width: width,
		Depth: depth,
		cells: cells,
	}, nil
}

// Len returns the number of cells.
func (g *Grid) Len() int {
	return len(g.cells)
}

// Index returns the linear index of (x, z).
func (g *Grid) Index(x, z int) int {
	return z*g.Width + x
}

// Pos returns the coordinate of index i.
func (g *Grid) Pos(i int) Pos {
	return Pos{X: i % g.Width, Z: i / g.Width}
}

// InBounds reports whether (x, z) lies on the grid.
func (g *Grid) InBounds(x, z int) bool {
	return x >= 0 && x < g.Width && z >= 0 && z < g.Depth
}

// Cell returns the cell at index i.
func (g *Grid) Cell(i int) *Cell {
	return &g.cells[i]
}

// At returns the cell at (x, z), or nil when out of bounds.
func (g *Grid) At(x, z int) *Cell {
	if !g.InBounds(x, z) {
		return nil
	}
	return &g.cells[g.Index(x, z)]
}

// Step returns the index across side d of cell i, if it is on the grid.
func (g *Grid) Step(i int, d Direction) (int, bool) {
	p := g.Pos(i)
	dx, dz := d.Delta()
	if !g.InBounds(p.X+dx, p.Z+dz) {
		return -1, false
	}
	return g.Index(p.X+dx, p.Z+dz), true
}

// Neighbors returns the indices reachable from i through an open wall.
func (g *Grid) Neighbors(i int) []int {
	return g.cells[i].neighbors
}

// DirectionTo returns the side of a that faces b, when they are adjacent.
func (g *Grid) DirectionTo(a, b int) (Direction, bool) {
	for _, d := range Directions {
		if n, ok := g.Step(a, d); ok && n == b {
			return d, true
		}
	}
	return Left, false
}

// EdgeCount returns the number of carved passages.
func (g *Grid) EdgeCount() int {
	open := 0
	for i := range g.cells {
		open += g.cells[i].OpenCount()
	}
	return open / 2
}

// ScanOrder returns every index column by column: x outer, z inner.
// Selection and partitioning visit cells in this order, so it decides ties.
func (g *Grid) ScanOrder() []int {
	order := make([]int, 0, len(g.cells))
	for x := 0; x < g.Width; x++ {
		for z := 0; z < g.Depth; z++ {
			order = append(order, g.Index(x, z))
		}
	}
	return order
}

// ClearColors resets every cell to Unset.
func (g *Grid) ClearColors() {
	for i := range g.cells {
		g.cells[i].color = Unset
	}
}

// carve opens the wall on side d of cell i together with the matching wall
// of the cell across it, and links both as neighbors.
func (g *Grid) carve(i int, d Direction) int {
	n, ok := g.Step(i, d)
	if !ok {
		panic(fmt.Sprintf("maze: carve %s from %v leaves the grid", d, g.Pos(i)))
	}

	a, b := &g.cells[i], &g.cells[n]
	a.open[d] = true
	b.open[d.Opposite()] = true
	a.neighbors = append(a.neighbors, n)
	b.neighbors = append(b.neighbors, i)
	return n
}
