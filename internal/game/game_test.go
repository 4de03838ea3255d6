package game

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/terramaze/internal/gamedata"
	"github.com/samdwyer/terramaze/internal/maze"
	"github.com/samdwyer/terramaze/internal/ui"
	"github.com/samdwyer/terramaze/internal/world"
)

var arrowFor = map[maze.Direction]tcell.Key{
	maze.Top:    tcell.KeyUp,
	maze.Bottom: tcell.KeyDown,
	maze.Left:   tcell.KeyLeft,
	maze.Right:  tcell.KeyRight,
}

func testConfig(t *testing.T, seed int64) Config {
	t.Helper()
	palette, err := gamedata.MustLoadPaletteRegistry().Get("forest")
	if err != nil {
		t.Fatal(err)
	}
	return Config{World: world.Options{
		Width:            8,
		Depth:            8,
		MergeProbability: 0.5,
		ElevationRatio:   100,
		SiteSize:         4,
		Palette:          palette,
		Seed:             seed,
	}}
}

func newGame(t *testing.T, seed int64) (*Game, tcell.SimulationScreen) {
	t.Helper()
	screen, sim, err := ui.NewSimulationScreen(40, 30)
	if err != nil {
		t.Fatalf("NewSimulationScreen() error: %v", err)
	}
	return NewWithScreen(testConfig(t, seed), screen), sim
}

func follow(t *testing.T, g *Game, path []int) {
	t.Helper()
	for i := 1; i < len(path); i++ {
		d, ok := g.world.Grid.DirectionTo(path[i-1], path[i])
		if !ok {
			t.Fatalf("cells %d and %d are not adjacent", path[i-1], path[i])
		}
		g.handleKey(arrowFor[d], 0)
	}
}

func reversed(path []int) []int {
	out := make([]int, len(path))
	for i, c := range path {
		out[len(path)-1-i] = c
	}
	return out
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateExplore, "explore"},
		{StateEscaped, "escaped"},
		{State(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestEscape(t *testing.T) {
	g, _ := newGame(t, 11)
	defer g.Close()

	w, err := world.Generate(context.Background(), g.config.World)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	g.start(w)
	if g.State() != StateExplore {
		t.Fatalf("initial state = %v, want explore", g.State())
	}

	keyPath := append(append([]int{}, w.Grid.Cell(w.Key).History()...), w.Key)
	follow(t, g, keyPath)
	if !g.explorer.HasKey() {
		t.Fatal("explorer should hold the key")
	}
	if !strings.HasPrefix(g.status(), "Key collected") && w.Key != w.Exit {
		t.Errorf("status = %q after collecting the key", g.status())
	}

	follow(t, g, reversed(keyPath))
	follow(t, g, w.ExitPath)
	if g.State() != StateEscaped {
		t.Fatalf("state = %v, want escaped", g.State())
	}
	if !strings.HasPrefix(g.status(), "Escaped in") {
		t.Errorf("status = %q, want escape message", g.status())
	}

	// No movement once escaped.
	steps := g.explorer.Steps()
	for _, key := range arrowFor {
		g.handleKey(key, 0)
	}
	if g.explorer.Steps() != steps {
		t.Error("explorer moved after escaping")
	}
}

func TestQuitKeys(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
	}{
		{"escape", tcell.KeyEscape, 0},
		{"ctrl-c", tcell.KeyCtrlC, 0},
		{"q", tcell.KeyRune, 'q'},
		{"Q", tcell.KeyRune, 'Q'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &Game{running: true}
			g.handleKey(tt.key, tt.r)
			if g.running {
				t.Error("game should stop")
			}
		})
	}
}

func TestRunQuit(t *testing.T) {
	g, sim := newGame(t, 5)
	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	if err := g.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if g.world == nil || g.explorer == nil {
		t.Error("Run should generate the world before the loop")
	}
}

func TestRunInvalidConfig(t *testing.T) {
	g, _ := newGame(t, 5)
	g.config.World.SiteSize = 3

	err := g.Run(context.Background())
	if !errors.Is(err, maze.ErrInvalidConfig) {
		t.Errorf("Run() error = %v, want ErrInvalidConfig", err)
	}
}
