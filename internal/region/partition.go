package region

import (
	"fmt"
	"math/rand"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/terramaze/internal/maze"
	"github.com/samdwyer/terramaze/internal/search"
)

// Anchors are the two cells whose regions take the reserved palette colors.
type Anchors struct {
	Exit int
	Key  int
}

// Partition records the sites chosen for a grid.
type Partition struct {
	SiteSize int
	Sites    []int
	ExitSite int
	KeySite  int

	isSite []bool
}

// IsSite reports whether cell seeds a region.
func (p *Partition) IsSite(cell int) bool {
	return cell >= 0 && cell < len(p.isSite) && p.isSite[cell]
}

// PartitionRegions colors every cell of g after its nearest site.
//
// One site is drawn per siteSize x siteSize block and given a random palette
// color. The anchors and the sites nearest to them take the palette's exit
// and key colors. Every other cell copies the color of its nearest site by
// passage distance. All colors are cleared first, so repeating the call
// with an identically seeded rng gives the same result.
func PartitionRegions(g *maze.Grid, siteSize int, palette Palette, anchors Anchors, rng *rand.Rand) (*Partition, error) {
	if err := validate(g, siteSize, palette, anchors); err != nil {
		return nil, err
	}

	g.ClearColors()
	p := placeSites(g, siteSize, palette, rng)

	g.Cell(anchors.Exit).SetColor(palette.Exit)
	g.Cell(anchors.Key).SetColor(palette.Key)

	var ok bool
	if p.ExitSite, ok = p.Nearest(g, anchors.Exit, rng); !ok {
		return nil, unreachable(g, anchors.Exit)
	}
	g.Cell(p.ExitSite).SetColor(palette.Exit)

	if p.KeySite, ok = p.Nearest(g, anchors.Key, rng); !ok {
		return nil, unreachable(g, anchors.Key)
	}
	g.Cell(p.KeySite).SetColor(palette.Key)

	for _, cell := range g.ScanOrder() {
		if cell == anchors.Exit || cell == anchors.Key || p.IsSite(cell) {
			continue
		}
		site, ok := p.Nearest(g, cell, rng)
		if !ok {
			return nil, unreachable(g, cell)
		}
		g.Cell(cell).SetColor(g.Cell(site).Color())
	}

	return p, nil
}

func validate(g *maze.Grid, siteSize int, palette Palette, anchors Anchors) error {
	if siteSize < 1 {
		return fmt.Errorf("%w: site size %d must be positive", maze.ErrInvalidConfig, siteSize)
	}
	if g.Width%siteSize != 0 || g.Depth%siteSize != 0 {
		return fmt.Errorf("%w: site size %d does not divide grid %dx%d",
			maze.ErrInvalidConfig, siteSize, g.Width, g.Depth)
	}
	if err := palette.Validate(); err != nil {
		return err
	}
	for _, cell := range []int{anchors.Exit, anchors.Key} {
		if cell < 0 || cell >= g.Len() {
			return fmt.Errorf("%w: anchor cell %d outside grid", maze.ErrInvalidConfig, cell)
		}
	}
	return nil
}

func unreachable(g *maze.Grid, cell int) error {
	return fmt.Errorf("%w: no site reachable from %v", maze.ErrInconsistent, g.Pos(cell))
}

// placeSites draws one site per block, blocks in row order.
func placeSites(g *maze.Grid, siteSize int, palette Palette, rng *rand.Rand) *Partition {
	p := &Partition{
		SiteSize: siteSize,
		isSite:   make([]bool, g.Len()),
	}
	for bz := 0; bz < g.Depth/siteSize; bz++ {
		for bx := 0; bx < g.Width/siteSize; bx++ {
			x := bx*siteSize + rng.Intn(siteSize)
			z := bz*siteSize + rng.Intn(siteSize)
			cell := g.Index(x, z)

			g.Cell(cell).SetColor(palette.Colors[rng.Intn(len(palette.Colors))])
			p.Sites = append(p.Sites, cell)
			p.isSite[cell] = true
		}
	}
	return p
}

// Nearest returns the site closest to origin by passage count. A site is
// its own nearest site. When several sites share the smallest distance the
// tie goes to the one matching the most common color among origin's
// neighbors, else the first found; with no colored neighbors one is drawn
// at random.
func (p *Partition) Nearest(g *maze.Grid, origin int, rng *rand.Rand) (int, bool) {
	if p.IsSite(origin) {
		return origin, true
	}

	tracker := search.NewTracker(g, origin)
	var ties []int
	for {
		cell, ok := tracker.Dequeue()
		if !ok {
			break
		}
		if p.IsSite(cell) {
			ties = append(ties, cell)
		}
		if len(ties) == 0 {
			tracker.Expand(cell)
			continue
		}
		next, ok := tracker.Peek()
		if !ok || tracker.Depth(next) > tracker.Depth(ties[0]) {
			break
		}
	}

	if len(ties) == 0 {
		return -1, false
	}
	return breakTie(g, origin, ties, rng), true
}

func breakTie(g *maze.Grid, origin int, ties []int, rng *rand.Rand) int {
	if len(ties) == 1 {
		return ties[0]
	}

	majority, ok := majorityColor(g, origin)
	if !ok {
		return ties[rng.Intn(len(ties))]
	}
	for _, site := range ties {
		if g.Cell(site).Color() == majority {
			return site
		}
	}
	return ties[0]
}

// majorityColor returns the most frequent assigned color among the
// neighbors of cell. Equal counts go to the color seen first.
func majorityColor(g *maze.Grid, cell int) (tcell.Color, bool) {
	var colors []tcell.Color
	var counts []int
	for _, n := range g.Neighbors(cell) {
		c := g.Cell(n).Color()
		if c == maze.Unset {
			continue
		}
		found := false
		for i := range colors {
			if colors[i] == c {
				counts[i]++
				found = true
				break
			}
		}
		if !found {
			colors = append(colors, c)
			counts = append(counts, 1)
		}
	}

	if len(colors) == 0 {
		return maze.Unset, false
	}
	best := 0
	for i := 1; i < len(counts); i++ {
		if counts[i] > counts[best] {
			best = i
		}
	}
	return colors[best], true
}
