package builder

import (
	"github.com/go-logr/logr"

	"github.com/samdwyer/forestgen/internal/grid"
)

// RoomBuilder places non-overlapping rectangular rooms by rejection sampling.
type RoomBuilder struct {
	grid     *grid.Grid
	opts     RoomOptions
	rng      Rand
	log      logr.Logger
	attempts int
	rooms    []*grid.Room
}

// NewRoomBuilder creates a room builder for g. Zero option fields take the
// room builder defaults.
func NewRoomBuilder(g *grid.Grid, opts RoomOptions, rng Rand) *RoomBuilder {
	opts = opts.withDefaults()
	return &RoomBuilder{
		grid: g,
		opts: opts,
		rng:  rng,
		log:  orDiscard(opts.Logger).WithName("rooms"),
	}
}

// Rooms returns the accepted rooms in creation order.
func (b *RoomBuilder) Rooms() []*grid.Room {
	return b.rooms
}

// Attempts returns the number of placement trials made so far.
func (b *RoomBuilder) Attempts() int {
	return b.attempts
}

// Step makes one placement attempt. It returns false once the attempt budget is spent.
func (b *RoomBuilder) Step() bool {
	return b.Next() != OutcomeDone
}

// Build runs every remaining attempt.
func (b *RoomBuilder) Build() *grid.Grid {
	for b.Step() {
	}
	return b.grid
}

// Next makes one placement attempt and reports what happened.
func (b *RoomBuilder) Next() Outcome {
	if b.attempts >= b.opts.MaxAttempts {
		b.log.V(1).Info("max attempts reached", "attempts", b.opts.MaxAttempts, "rooms", len(b.rooms))
		return OutcomeDone
	}
	b.attempts++

	rect, ok := b.randomRect()
	if !ok {
		b.log.V(2).Info("room does not fit", "attempt", b.attempts, "width", rect.Width, "height", rect.Height)
		return OutcomeRoomRejected
	}
	b.log.V(2).Info("generated room", "attempt", b.attempts,
		"x", rect.X, "y", rect.Y, "width", rect.Width, "height", rect.Height)

	if _, placed := b.Place(rect); !placed {
		return OutcomeRoomRejected
	}
	return OutcomeRoomPlaced
}

// randomRect samples a size and then a position that keeps the rectangle in the grid.
// It returns false when the sampled size is larger than the grid.
func (b *RoomBuilder) randomRect() (grid.Rect, bool) {
	o := b.opts
	rect := grid.Rect{
		Width:  o.MinWidth + b.rng.Intn(o.MaxWidth-o.MinWidth+1),
		Height: o.MinHeight + b.rng.Intn(o.MaxHeight-o.MinHeight+1),
	}
	if rect.Width > b.grid.Width || rect.Height > b.grid.Height {
		return rect, false
	}
	rect.X = b.rng.Intn(b.grid.Width - rect.Width + 1)
	rect.Y = b.rng.Intn(b.grid.Height - rect.Height + 1)
	return rect, true
}

// Place accepts rect as a room if it lies inside the grid and overlaps no accepted
// room. It does not consume an attempt.
func (b *RoomBuilder) Place(rect grid.Rect) (*grid.Room, bool) {
	if !rect.Within(b.grid.Width, b.grid.Height) {
		return nil, false
	}
	for _, other := range b.rooms {
		if rect.Intersects(other.Rect) {
			return nil, false
		}
	}

	room := grid.NewRoom(len(b.rooms), rect)
	b.rooms = append(b.rooms, room)
	b.placeRoom(room)
	b.log.V(1).Info("placed room", "id", room.ID,
		"x", rect.X, "y", rect.Y, "width", rect.Width, "height", rect.Height)
	return room, true
}

// placeRoom writes a cell for every point of the room, walling only the perimeter.
func (b *RoomBuilder) placeRoom(room *grid.Room) {
	for y := room.Y; y < room.Y+room.Height; y++ {
		for x := room.X; x < room.X+room.Width; x++ {
			cell := grid.NewCell(x, y, grid.KindRoom)
			cell.Walls = grid.Walls{
				Top:    y == room.Y,
				Right:  x == room.X+room.Width-1,
				Bottom: y == room.Y+room.Height-1,
				Left:   x == room.X,
			}
			b.grid.Set(x, y, cell)
			room.AddCell(cell)
		}
	}
}
