// Package game provides the main game loop and state management.
package game

// State represents the current game state.
type State int

const (
	// StateExplore is the default mode where the explorer walks the maze.
	StateExplore State = iota
	// StateEscaped is entered once the explorer reaches the exit with the key.
	StateEscaped
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateExplore:
		return "explore"
	case StateEscaped:
		return "escaped"
	default:
		return "unknown"
	}
}
