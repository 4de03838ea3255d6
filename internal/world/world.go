// Package world runs the generation pipeline: carve the maze, pick the exit
// and key, then color the regions.
package world

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/terramaze/internal/logger"
	"github.com/samdwyer/terramaze/internal/maze"
	"github.com/samdwyer/terramaze/internal/region"
	"github.com/samdwyer/terramaze/internal/search"
	"github.com/samdwyer/terramaze/internal/telemetry"
)

// Options are the inputs of one generation run.
type Options struct {
	Width            int
	Depth            int
	MergeProbability float64
	ElevationRatio   float64
	ElevationModel   maze.ElevationModel
	SiteSize         int
	Palette          region.Palette

	// Seed for the run's random source. A seed of 0 means a time-based
	// seed is drawn and recorded in World.Seed.
	Seed int64
}

// World is a fully generated maze. It is never returned half built.
type World struct {
	ID      string
	Seed    int64
	Grid    *maze.Grid
	Palette region.Palette

	Start     int
	Exit      int
	Key       int
	ExitPath  []int
	Partition *region.Partition
}

// Generate runs every phase in order. Configuration problems are reported
// before anything is built.
func Generate(ctx context.Context, opts Options) (*World, error) {
	tracer := telemetry.Tracer("world")
	ctx, span := tracer.Start(ctx, "world.generate")
	defer span.End()

	startTime := time.Now()

	w, err := generate(ctx, tracer, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.String("world.id", w.ID),
		attribute.Int64("world.seed", w.Seed),
		attribute.Int("maze.width", w.Grid.Width),
		attribute.Int("maze.depth", w.Grid.Depth),
		attribute.Int("maze.exit_depth", len(w.ExitPath)-1),
		attribute.Int("region.sites", len(w.Partition.Sites)),
		attribute.Int64("world.generation_ms", time.Since(startTime).Milliseconds()),
	)
	logger.Debug("world generated", "id", w.ID, "seed", w.Seed, "ms", time.Since(startTime).Milliseconds())

	return w, nil
}

func generate(ctx context.Context, tracer trace.Tracer, opts Options) (*World, error) {
	if err := validate(opts); err != nil {
		return nil, err
	}
	prop, err := maze.NewPropagator(opts.ElevationRatio, opts.ElevationModel)
	if err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	w := &World{
		ID:      uuid.New().String(),
		Seed:    seed,
		Palette: opts.Palette,
	}
	log := logger.With("world", w.ID)

	_, carveSpan := tracer.Start(ctx, "world.carve")
	w.Grid, err = maze.GenerateTopology(opts.Width, opts.Depth, opts.MergeProbability, rng)
	if err != nil {
		carveSpan.End()
		return nil, err
	}
	carveSpan.SetAttributes(attribute.Int("maze.passages", w.Grid.EdgeCount()))
	carveSpan.End()
	log.Debug("maze carved", "width", opts.Width, "depth", opts.Depth, "passages", w.Grid.EdgeCount())

	_, selectSpan := tracer.Start(ctx, "world.select")
	w.Start = PickStart(w.Grid, rng)
	sel, err := search.SelectExitAndKey(w.Grid, w.Start, prop, rng)
	if err != nil {
		selectSpan.End()
		return nil, err
	}
	w.Exit, w.Key, w.ExitPath = sel.Exit, sel.Key, sel.ExitPath
	selectSpan.SetAttributes(
		attribute.Int("maze.exit_depth", sel.Depth()),
		attribute.Int("maze.key_divergence", sel.KeyDivergence),
	)
	selectSpan.End()
	log.Debug("exit and key selected",
		"start", w.Grid.Pos(w.Start), "exit", w.Grid.Pos(w.Exit), "key", w.Grid.Pos(w.Key),
		"exit_depth", sel.Depth(), "key_divergence", sel.KeyDivergence)

	_, partitionSpan := tracer.Start(ctx, "world.partition")
	w.Partition, err = region.PartitionRegions(w.Grid, opts.SiteSize, opts.Palette,
		region.Anchors{Exit: w.Exit, Key: w.Key}, rng)
	if err != nil {
		partitionSpan.End()
		return nil, err
	}
	partitionSpan.SetAttributes(attribute.Int("region.sites", len(w.Partition.Sites)))
	partitionSpan.End()
	log.Debug("regions partitioned", "sites", len(w.Partition.Sites), "palette", opts.Palette.ID)

	return w, nil
}

// validate checks everything the later phases would reject, so a bad
// configuration fails before carving starts.
func validate(opts Options) error {
	if opts.Width < 1 || opts.Depth < 1 {
		return fmt.Errorf("%w: grid size %dx%d must be positive", maze.ErrInvalidConfig, opts.Width, opts.Depth)
	}
	if opts.MergeProbability < 0 || opts.MergeProbability > 1 {
		return fmt.Errorf("%w: merge probability %v outside [0,1]", maze.ErrInvalidConfig, opts.MergeProbability)
	}
	if opts.SiteSize < 1 || opts.Width%opts.SiteSize != 0 || opts.Depth%opts.SiteSize != 0 {
		return fmt.Errorf("%w: site size %d does not divide grid %dx%d",
			maze.ErrInvalidConfig, opts.SiteSize, opts.Width, opts.Depth)
	}
	return opts.Palette.Validate()
}

// PickStart returns a random cell of the first row. The last column is
// never chosen unless it is the only one.
func PickStart(g *maze.Grid, rng *rand.Rand) int {
	span := g.Width - 1
	if span < 1 {
		return g.Index(0, 0)
	}
	return g.Index(rng.Intn(span), 0)
}

// IsExit reports whether cell is the exit.
func (w *World) IsExit(cell int) bool {
	return cell == w.Exit
}

// IsKey reports whether cell holds the key.
func (w *World) IsKey(cell int) bool {
	return cell == w.Key
}

// CellView is everything a renderer needs to place one cell.
type CellView struct {
	Index  int
	Pos    maze.Pos
	Open   [4]bool // Indexed by maze.Direction
	Tier   maze.Tier
	Offset float64
	Height float64

	// RestHeight is the height the floor should be drawn at. It equals
	// Height except for the exit and key cells, which sit level with the
	// cell they open onto.
	RestHeight float64

	Color  tcell.Color
	IsSite bool
	Start  bool
	Exit   bool
	Key    bool
}

// View builds the CellView of one cell.
func (w *World) View(i int) CellView {
	c := w.Grid.Cell(i)
	v := CellView{
		Index:      i,
		Pos:        c.Pos,
		Tier:       c.Tier(),
		Offset:     c.Offset(),
		Height:     c.Height(),
		RestHeight: c.Height(),
		Color:      c.Color(),
		IsSite:     w.Partition.IsSite(i),
		Start:      i == w.Start,
		Exit:       w.IsExit(i),
		Key:        w.IsKey(i),
	}
	for _, d := range maze.Directions {
		v.Open[d] = c.IsOpen(d)
	}

	if v.Exit || v.Key {
		if d, ok := c.OpenDirection(); ok {
			if n, ok := w.Grid.Step(i, d); ok {
				v.RestHeight = w.Grid.Cell(n).Height()
			}
		}
	}
	return v
}

// Each calls fn with the view of every cell in index order.
func (w *World) Each(fn func(CellView)) {
	for i := 0; i < w.Grid.Len(); i++ {
		fn(w.View(i))
	}
}
