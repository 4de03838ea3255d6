package game

import "github.com/samdwyer/terramaze/internal/world"

// Config holds game configuration options.
type Config struct {
	// World is passed to world.Generate when the game starts.
	World world.Options
}
