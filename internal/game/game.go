package game

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/terramaze/internal/entity"
	"github.com/samdwyer/terramaze/internal/logger"
	"github.com/samdwyer/terramaze/internal/maze"
	"github.com/samdwyer/terramaze/internal/telemetry"
	"github.com/samdwyer/terramaze/internal/ui"
	"github.com/samdwyer/terramaze/internal/world"
)

// Game holds the entire game state.
type Game struct {
	config   Config
	screen   *ui.Screen
	renderer *ui.Renderer
	world    *world.World
	explorer *entity.Explorer
	state    State
	running  bool
	span     trace.Span
}

// New creates a new game instance on the terminal.
func New(cfg Config) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(cfg, screen), nil
}

// NewWithScreen creates a game drawing to an existing screen.
func NewWithScreen(cfg Config, screen *ui.Screen) *Game {
	return &Game{
		config:   cfg,
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		state:    StateExplore,
		running:  true,
	}
}

// Run generates the maze and executes the main game loop.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")

	ctx, initSpan := tracer.Start(ctx, "game.init")
	w, err := world.Generate(ctx, g.config.World)
	if err != nil {
		initSpan.End()
		g.screen.Close()
		return fmt.Errorf("generate maze: %w", err)
	}
	g.start(w)
	initSpan.SetAttributes(
		attribute.String("world.id", w.ID),
		attribute.Int("explorer.start_x", g.explorer.Position().X),
		attribute.Int("explorer.start_z", g.explorer.Position().Z),
	)
	initSpan.End()

	_, g.span = tracer.Start(ctx, "game.play")
	defer g.span.End()

	for g.running {
		g.renderer.Render(g.world, g.explorer, g.status())
		g.handleInput()
	}

	g.span.SetAttributes(
		attribute.String("game.state", g.state.String()),
		attribute.Int("explorer.steps", g.explorer.Steps()),
	)
	g.screen.Close()
	return nil
}

func (g *Game) start(w *world.World) {
	g.world = w
	g.explorer = entity.NewExplorer(w)
	g.state = StateExplore
	if g.explorer.Escaped() {
		g.state = StateEscaped
	}
	logger.Info("maze ready", "world", w.ID, "seed", w.Seed, "palette", w.Palette.ID)
}

// handleInput processes a single input event.
func (g *Game) handleInput() {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// handleKey processes keyboard input.
func (g *Game) handleKey(key tcell.Key, r rune) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false

	case tcell.KeyUp:
		g.tryMove(maze.Top)
	case tcell.KeyDown:
		g.tryMove(maze.Bottom)
	case tcell.KeyLeft:
		g.tryMove(maze.Left)
	case tcell.KeyRight:
		g.tryMove(maze.Right)

	case tcell.KeyRune:
		switch r {
		case 'q', 'Q':
			g.running = false
		case 'w', 'k':
			g.tryMove(maze.Top)
		case 's', 'j':
			g.tryMove(maze.Bottom)
		case 'a', 'h':
			g.tryMove(maze.Left)
		case 'd', 'l':
			g.tryMove(maze.Right)
		}
	}
}

// tryMove attempts to move the explorer one cell.
func (g *Game) tryMove(d maze.Direction) {
	if g.state != StateExplore {
		return
	}
	hadKey := g.explorer.HasKey()
	if !g.explorer.Move(d) {
		return
	}

	if !hadKey && g.explorer.HasKey() {
		g.event("explorer.key_collected")
	}
	if g.explorer.Escaped() {
		g.state = StateEscaped
		g.event("explorer.escaped")
		logger.Info("maze escaped", "world", g.world.ID, "steps", g.explorer.Steps())
	}
}

func (g *Game) event(name string) {
	if g.span == nil {
		return
	}
	g.span.AddEvent(name, trace.WithAttributes(attribute.Int("explorer.steps", g.explorer.Steps())))
}

// status returns the line drawn under the map.
func (g *Game) status() string {
	switch {
	case g.state == StateEscaped:
		return fmt.Sprintf("Escaped in %d steps! q quits", g.explorer.Steps())
	case g.explorer.AtExit():
		return "The exit is locked. Find the key (k). q quits"
	case g.explorer.HasKey():
		return fmt.Sprintf("Key collected. Head for the exit (>). Seed %d", g.world.Seed)
	default:
		return fmt.Sprintf("Find the key (k), then the exit (>). Seed %d", g.world.Seed)
	}
}

// State returns the current game state.
func (g *Game) State() State {
	return g.state
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
