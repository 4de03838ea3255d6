// Package region partitions a maze into colored areas around seed cells.
package region

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/terramaze/internal/maze"
)

// Palette is the set of colors available to regions. Exit and Key are
// reserved for the two anchor cells and the sites nearest to them.
type Palette struct {
	ID     string
	Colors []tcell.Color
	Exit   tcell.Color
	Key    tcell.Color
}

// Validate reports a palette that cannot color a maze.
func (p Palette) Validate() error {
	if len(p.Colors) == 0 {
		return fmt.Errorf("%w: palette %q has no region colors", maze.ErrInvalidConfig, p.ID)
	}
	for i, c := range p.Colors {
		if c == maze.Unset {
			return fmt.Errorf("%w: palette %q color %d is unset", maze.ErrInvalidConfig, p.ID, i)
		}
	}
	if p.Exit == maze.Unset || p.Key == maze.Unset {
		return fmt.Errorf("%w: palette %q needs both anchor colors", maze.ErrInvalidConfig, p.ID)
	}
	return nil
}
