package maze

import (
	"fmt"
	"math/rand"
)

// GenerateTopology carves a perfect maze with Eller's algorithm.
//
// Rows are processed bottom to top. Within a row adjacent cells in different
// sets are joined with probability mergeProbability; the last row joins every
// remaining pair so all sets end up connected. Every other row then sends
// exactly one passage up per surviving set, which keeps the result a
// spanning tree.
func GenerateTopology(width, depth int, mergeProbability float64, rng *rand.Rand) (*Grid, error) {
	if mergeProbability < 0 || mergeProbability > 1 {
		return nil, fmt.Errorf("%w: merge probability %v outside [0,1]", ErrInvalidConfig, mergeProbability)
	}

	g, err := NewGrid(width, depth)
	if err != nil {
		return nil, err
	}

	sets := newSetRegistry(g.Len())
	for z := 0; z < depth; z++ {
		g.carveRow(sets, z, mergeProbability, rng)
		if z < depth-1 {
			g.carveUp(sets, rng)
		}
	}

	return g, nil
}

// carveRow joins horizontally adjacent cells of row z.
func (g *Grid) carveRow(sets *setRegistry, z int, mergeProbability float64, rng *rand.Rand) {
	last := z == g.Depth-1
	for x := 0; x < g.Width; x++ {
		cell := g.Index(x, z)
		sets.ensure(cell)
		g.cells[cell].visited = true

		if x == 0 {
			continue
		}
		if rng.Float64() >= mergeProbability && !last {
			continue
		}

		current, left := sets.find(cell), sets.find(cell-1)
		if current == left {
			continue
		}
		g.carve(cell, Left)
		sets.merge(current, left)
	}
}

// carveUp opens one passage from each surviving set into the next row and
// restarts the set from that cell.
func (g *Grid) carveUp(sets *setRegistry, rng *rand.Rand) {
	for _, set := range sets.sets() {
		cell := sets.member(set, rng.Intn(sets.size(set)))
		above := g.carve(cell, Top)
		sets.collapse(set, above)
	}
}
