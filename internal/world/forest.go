package world

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/samdwyer/forestgen/internal/builder"
	"github.com/samdwyer/forestgen/internal/grid"
	"github.com/samdwyer/forestgen/internal/telemetry"
)

const (
	// Default forest dimensions in tiles
	DefaultWidth  = 80
	DefaultHeight = 48

	// Room defaults in tiles, halved for the cell grid
	DefaultMinRoomSize = 4
	DefaultMaxRoomSize = 8
	DefaultMaxAttempts = 100
	DefaultPruneAmount = 0.2
)

// Map is a finished forest.
type Map struct {
	ID           uuid.UUID
	Grid         *grid.Grid
	Rooms        []*grid.Room
	Terrain      *Terrain
	TerrainRooms []Room
	Connections  []builder.Connection
	Components   int // Connected regions of the grid after doors were opened
	Runs         int // Maze carving runs
	Pruned       int // Tiles walled off by erosion
}

// IsPassable returns true if the given tile can be walked on.
func (m *Map) IsPassable(x, y int) bool {
	return m.Terrain.IsPassable(x, y)
}

// RoomIndexAt returns the index of the room containing the tile, or -1 if not in a room.
func (m *Map) RoomIndexAt(x, y int) int {
	for i, room := range m.TerrainRooms {
		if room.Contains(x, y) {
			return i
		}
	}
	return -1
}

// RandomPointInRoom returns a random passable tile within the specified room.
func (m *Map) RandomPointInRoom(roomIndex int, rng builder.Rand) (int, int) {
	if roomIndex < 0 || roomIndex >= len(m.TerrainRooms) {
		return -1, -1
	}
	room := m.TerrainRooms[roomIndex]

	for i := 0; i < 100; i++ {
		x := room.X + rng.Intn(room.Width)
		y := room.Y + rng.Intn(room.Height)
		if m.IsPassable(x, y) {
			return x, y
		}
	}
	return room.Center()
}

// Forest runs the rooms-and-mazes generator on a half-size grid and renders the
// result as an eroded tile map.
type Forest struct {
	gen     *builder.RoomsAndMazes
	rng     builder.Rand
	opts    builder.Options
	log     logr.Logger
	metrics forestMetrics
	built   *Map
}

// NewForest creates a forest generator for a width by height tile map. Room
// options are given in tiles and default to 4x4 up to 8x8 with 100 attempts.
func NewForest(width, height int, opts builder.Options, rng builder.Rand) (*Forest, error) {
	if width < 2 || height < 2 {
		return nil, fmt.Errorf("%w: forest size %dx%d must be at least 2x2", builder.ErrInvalidOptions, width, height)
	}
	opts = forestDefaults(opts)

	cellOpts := opts
	cellOpts.MinRoomWidth = half(opts.MinRoomWidth)
	cellOpts.MinRoomHeight = half(opts.MinRoomHeight)
	cellOpts.MaxRoomWidth = half(opts.MaxRoomWidth)
	cellOpts.MaxRoomHeight = half(opts.MaxRoomHeight)

	gen, err := builder.NewRoomsAndMazes(width/2, height/2, cellOpts, rng)
	if err != nil {
		return nil, fmt.Errorf("creating forest generator: %w", err)
	}

	metrics, err := newForestMetrics(telemetry.Meter("world"))
	if err != nil {
		return nil, fmt.Errorf("creating forest metrics: %w", err)
	}

	log := opts.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}

	return &Forest{
		gen:     gen,
		rng:     rng,
		opts:    opts,
		log:     log.WithName("forest"),
		metrics: metrics,
	}, nil
}

func forestDefaults(o builder.Options) builder.Options {
	if o.MinRoomWidth == 0 {
		o.MinRoomWidth = DefaultMinRoomSize
	}
	if o.MinRoomHeight == 0 {
		o.MinRoomHeight = DefaultMinRoomSize
	}
	if o.MaxRoomWidth == 0 {
		o.MaxRoomWidth = DefaultMaxRoomSize
	}
	if o.MaxRoomHeight == 0 {
		o.MaxRoomHeight = DefaultMaxRoomSize
	}
	if o.MaxAttempts == 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	if o.PruneAmount == 0 {
		o.PruneAmount = DefaultPruneAmount
	}
	return o
}

// half converts a tile length to cells, never going below one cell.
func half(tiles int) int {
	return max(1, tiles/2)
}

// Options returns the effective options in tiles.
func (f *Forest) Options() builder.Options {
	return f.opts
}

// Generator returns the underlying rooms-and-mazes generator.
func (f *Forest) Generator() *builder.RoomsAndMazes {
	return f.gen
}

// Map returns the finished map, or nil before Build.
func (f *Forest) Map() *Map {
	return f.built
}

// Step advances grid generation by one unit and reports whether more work remains.
// It returns false once Build has run.
func (f *Forest) Step() bool {
	if f.built != nil {
		return false
	}
	return f.gen.Step()
}

// Build finishes grid generation, opens one door per room, renders the terrain and
// erodes dead ends. Calling Build again returns the same map.
func (f *Forest) Build(ctx context.Context) *Map {
	if f.built != nil {
		return f.built
	}

	tracer := telemetry.Tracer("world")
	ctx, span := tracer.Start(ctx, "forest.build")
	defer span.End()

	startTime := time.Now()

	g := f.gen.Build()
	rooms := f.gen.Rooms()
	connections := builder.Connect(g, rooms, f.rng)

	terrain := Synthesize(g, rooms, f.gen.MazeBuilder().Carved())
	terrainRooms := TerrainRooms(rooms)
	pruned := Erode(terrain, DeadEndPasses, insideAny(terrainRooms))

	m := &Map{
		ID:           uuid.New(),
		Grid:         g,
		Rooms:        rooms,
		Terrain:      terrain,
		TerrainRooms: terrainRooms,
		Connections:  connections,
		Components:   builder.Components(g),
		Runs:         f.gen.MazeBuilder().Runs(),
		Pruned:       pruned,
	}
	f.built = m

	elapsed := time.Since(startTime)
	span.SetAttributes(
		attribute.String("forest.id", m.ID.String()),
		attribute.Int("forest.width", terrain.Width),
		attribute.Int("forest.height", terrain.Height),
		attribute.Int("forest.room_count", len(rooms)),
		attribute.Int("forest.carve_runs", m.Runs),
		attribute.Int("forest.pruned_tiles", pruned),
		attribute.Int("forest.components", m.Components),
		attribute.Int64("forest.generation_ms", elapsed.Milliseconds()),
	)
	f.metrics.record(ctx, m, elapsed)

	f.log.V(1).Info("forest built", "id", m.ID, "rooms", len(rooms), "runs", m.Runs,
		"pruned", pruned, "components", m.Components, "elapsed", elapsed)
	return m
}

type forestMetrics struct {
	built    metric.Int64Counter
	pruned   metric.Int64Counter
	duration metric.Float64Histogram
}

func newForestMetrics(meter metric.Meter) (forestMetrics, error) {
	var m forestMetrics
	var err error
	if m.built, err = meter.Int64Counter("forestgen.forests.built",
		metric.WithDescription("Forests generated")); err != nil {
		return m, err
	}
	if m.pruned, err = meter.Int64Counter("forestgen.tiles.pruned",
		metric.WithDescription("Tiles walled off by dead-end erosion")); err != nil {
		return m, err
	}
	if m.duration, err = meter.Float64Histogram("forestgen.build.duration",
		metric.WithDescription("Time spent in Forest.Build"), metric.WithUnit("ms")); err != nil {
		return m, err
	}
	return m, nil
}

func (m forestMetrics) record(ctx context.Context, built *Map, elapsed time.Duration) {
	attrs := metric.WithAttributes(attribute.Int("rooms", len(built.Rooms)))
	m.built.Add(ctx, 1, attrs)
	m.pruned.Add(ctx, int64(built.Pruned), attrs)
	m.duration.Record(ctx, float64(elapsed.Microseconds())/1000, attrs)
}
