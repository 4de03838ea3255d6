// Package maze provides the maze grid, topology carving and terrain elevation.
package maze

// Direction names one side of a cell. Top points towards increasing z.
type Direction int

const (
	// Left is the side facing x-1.
	Left Direction = iota
	// Right is the side facing x+1.
	Right
	// Bottom is the side facing z-1.
	Bottom
	// Top is the side facing z+1.
	Top
)

// Directions lists every side in declaration order.
var Directions = [4]Direction{Left, Right, Bottom, Top}

// Opposite returns the side facing back across the same wall.
func (d Direction) Opposite() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Bottom:
		return Top
	default:
		return Bottom
	}
}

// Delta returns the coordinate step taken when crossing this side.
func (d Direction) Delta() (dx, dz int) {
	switch d {
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	case Bottom:
		return 0, -1
	default:
		return 0, 1
	}
}

// String returns a human-readable side name.
func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	case Top:
		return "top"
	default:
		return "unknown"
	}
}
