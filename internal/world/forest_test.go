package world

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/samdwyer/forestgen/internal/builder"
	"github.com/samdwyer/forestgen/internal/grid"
)

func newSeededRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func discard() logr.Logger {
	return logr.Discard()
}

func buildForest(t *testing.T, width, height int, opts builder.Options, seed int64) *Map {
	t.Helper()
	f, err := NewForest(width, height, opts, newSeededRand(seed))
	require.NoError(t, err)
	return f.Build(context.Background())
}

func TestForestReproducibility(t *testing.T) {
	seed := int64(12345)

	m1 := buildForest(t, DefaultWidth, DefaultHeight, builder.Options{}, seed)
	m2 := buildForest(t, DefaultWidth, DefaultHeight, builder.Options{}, seed)

	require.Len(t, m2.Rooms, len(m1.Rooms), "room count mismatch")
	for i := range m1.Rooms {
		assert.Equal(t, m1.Rooms[i].Rect, m2.Rooms[i].Rect, "room %d", i)
	}
	assert.True(t, m1.Grid.Equal(m2.Grid), "grids differ")
	assert.True(t, m1.Terrain.Equal(m2.Terrain), "terrains differ")
	assert.Equal(t, m1.Pruned, m2.Pruned)
	assert.Equal(t, m1.Components, m2.Components)
	assert.NotEqual(t, m1.ID, m2.ID, "every build gets its own run id")
}

func TestForestDifferentSeeds(t *testing.T) {
	m1 := buildForest(t, DefaultWidth, DefaultHeight, builder.Options{}, 12345)
	m2 := buildForest(t, DefaultWidth, DefaultHeight, builder.Options{}, 54321)

	assert.False(t, m1.Terrain.Equal(m2.Terrain), "forests with different seeds should not be identical")
}

func TestForestScale(t *testing.T) {
	tests := []struct {
		width, height   int
		gridW, gridH    int
		terrainW, terrH int
	}{
		{80, 48, 40, 24, 80, 48},
		{41, 21, 20, 10, 40, 20},
		{2, 2, 1, 1, 2, 2},
	}

	for _, tt := range tests {
		m := buildForest(t, tt.width, tt.height, builder.Options{}, 7)

		assert.Equal(t, tt.gridW, m.Grid.Width)
		assert.Equal(t, tt.gridH, m.Grid.Height)
		assert.Equal(t, tt.terrainW, m.Terrain.Width)
		assert.Equal(t, tt.terrH, m.Terrain.Height)
		assert.Equal(t, 2*m.Grid.Width, m.Terrain.Width)
		assert.Equal(t, 2*m.Grid.Height, m.Terrain.Height)
		assert.Zero(t, m.Grid.Empty())
	}
}

func TestForestRoomInteriorsSurviveErosion(t *testing.T) {
	opts := builder.Options{MinRoomWidth: 2, MinRoomHeight: 2, MaxRoomWidth: 10, MaxRoomHeight: 8, MaxAttempts: 80}
	for seed := int64(1); seed <= 20; seed++ {
		m := buildForest(t, 60, 40, opts, seed)

		require.Len(t, m.TerrainRooms, len(m.Rooms))
		for i, room := range m.TerrainRooms {
			for y := room.Y; y < room.Y+room.Height; y++ {
				for x := room.X; x < room.X+room.Width; x++ {
					assert.True(t, m.IsPassable(x, y), "seed %d room %d tile (%d,%d)", seed, i, x, y)
					assert.Equal(t, i, m.RoomIndexAt(x, y))
				}
			}
		}
	}
}

func TestForestBuildIsIdempotent(t *testing.T) {
	f, err := NewForest(30, 20, builder.Options{}, newSeededRand(3))
	require.NoError(t, err)
	assert.Nil(t, f.Map())

	require.True(t, f.Step())
	m := f.Build(context.Background())

	assert.Same(t, m, f.Build(context.Background()))
	assert.Same(t, m, f.Map())
	assert.False(t, f.Step())
	assert.Equal(t, builder.PhaseDone, f.Generator().Phase())
	assert.Len(t, m.Connections, len(m.Rooms))
	assert.GreaterOrEqual(t, m.Runs, 1)
	assert.GreaterOrEqual(t, m.Components, 1)
}

func TestForestWallsBetweenTouchingRooms(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		m := buildForest(t, 40, 40, builder.Options{}, seed)
		m.Grid.ForEachCell(func(cell *grid.Cell) {
			for _, d := range []grid.Direction{grid.Right, grid.Bottom} {
				other := m.Grid.Neighbor(cell, d)
				if cell.Room == nil || other == nil || other.Room == nil || other.Room == cell.Room {
					continue
				}
				dx, dy := d.Delta()
				x, y := cell.X*2+dx, cell.Y*2+dy
				assert.False(t, m.Terrain.IsPassable(x, y), "seed %d: tile (%d,%d) between rooms %d and %d",
					seed, x, y, cell.Room.ID, other.Room.ID)
			}
		})
	}
}

func TestForestOptions(t *testing.T) {
	f, err := NewForest(40, 40, builder.Options{MaxRoomWidth: 12}, newSeededRand(1))
	require.NoError(t, err)

	opts := f.Options()
	assert.Equal(t, DefaultMinRoomSize, opts.MinRoomWidth)
	assert.Equal(t, 12, opts.MaxRoomWidth)
	assert.Equal(t, DefaultMaxAttempts, opts.MaxAttempts)
	assert.InDelta(t, DefaultPruneAmount, opts.PruneAmount, 1e-9)

	cells := f.Generator().Options()
	assert.Equal(t, 2, cells.MinRoomWidth)
	assert.Equal(t, 6, cells.MaxRoomWidth)
	assert.Equal(t, 4, cells.MaxRoomHeight)
	assert.Equal(t, DefaultMaxAttempts, cells.MaxAttempts)
	assert.Equal(t, 20, f.Generator().Grid().Width)
}

func TestNewForestValidation(t *testing.T) {
	_, err := NewForest(1, 40, builder.Options{}, newSeededRand(1))
	assert.True(t, errors.Is(err, builder.ErrInvalidOptions), "got %v", err)

	_, err = NewForest(40, 40, builder.Options{MinRoomWidth: 10, MaxRoomWidth: 4}, newSeededRand(1))
	assert.True(t, errors.Is(err, builder.ErrInvalidOptions), "got %v", err)

	_, err = NewForest(40, 40, builder.Options{PruneAmount: 2}, newSeededRand(1))
	assert.True(t, errors.Is(err, builder.ErrInvalidOptions), "got %v", err)
}

func TestMapRandomPointInRoom(t *testing.T) {
	m := buildForest(t, 60, 40, builder.Options{}, 11)
	require.NotEmpty(t, m.TerrainRooms)
	rng := newSeededRand(5)

	for i := range m.TerrainRooms {
		x, y := m.RandomPointInRoom(i, rng)
		assert.True(t, m.IsPassable(x, y))
		assert.Equal(t, i, m.RoomIndexAt(x, y))
	}

	x, y := m.RandomPointInRoom(len(m.TerrainRooms), rng)
	assert.Equal(t, -1, x)
	assert.Equal(t, -1, y)
	assert.Equal(t, -1, m.RoomIndexAt(-5, -5))
}

func TestForestBuildSpan(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})

	m := buildForest(t, 40, 24, builder.Options{}, 99)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "forest.build", spans[0].Name)

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range spans[0].Attributes {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, m.ID.String(), attrs["forest.id"].AsString())
	assert.Equal(t, int64(40), attrs["forest.width"].AsInt64())
	assert.Equal(t, int64(24), attrs["forest.height"].AsInt64())
	assert.Equal(t, int64(len(m.Rooms)), attrs["forest.room_count"].AsInt64())
	assert.Equal(t, int64(m.Pruned), attrs["forest.pruned_tiles"].AsInt64())
	assert.Equal(t, int64(m.Components), attrs["forest.components"].AsInt64())
}
