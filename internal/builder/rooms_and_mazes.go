package builder

import (
	"errors"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/samdwyer/forestgen/internal/grid"
)

// Phase is the generation stage of a RoomsAndMazes generator.
type Phase int

const (
	// PhasePlacing places rooms until the attempt budget is spent.
	PhasePlacing Phase = iota
	// PhaseCarving carves mazes into the remaining empty slots.
	PhaseCarving
	// PhaseDone means every slot is claimed.
	PhaseDone
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhasePlacing:
		return "placing"
	case PhaseCarving:
		return "carving"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// RoomsAndMazes places rooms first and then fills the rest of the grid with mazes.
type RoomsAndMazes struct {
	grid  *grid.Grid
	rooms *RoomBuilder
	maze  *MazeBuilder
	phase Phase
	opts  Options
	log   logr.Logger
}

// NewRoomsAndMazes creates a generator over a fresh width by height grid.
func NewRoomsAndMazes(width, height int, opts Options, rng Rand) (*RoomsAndMazes, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: grid size %dx%d must be positive", ErrInvalidOptions, width, height)
	}
	if rng == nil {
		return nil, errors.New("random source is required")
	}
	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	g := grid.New(width, height)
	gen := Compose(g, NewRoomBuilder(g, opts.RoomOptions(), rng), NewMazeBuilder(g, rng, opts.Logger))
	gen.opts = opts
	return gen, nil
}

// Compose wires existing builders that share the grid g.
func Compose(g *grid.Grid, rooms *RoomBuilder, maze *MazeBuilder) *RoomsAndMazes {
	return &RoomsAndMazes{
		grid:  g,
		rooms: rooms,
		maze:  maze,
		phase: PhasePlacing,
		opts:  Options{}.WithDefaults(),
		log:   orDiscard(rooms.opts.Logger).WithName("generator"),
	}
}

// Grid returns the shared grid.
func (r *RoomsAndMazes) Grid() *grid.Grid {
	return r.grid
}

// Rooms returns the rooms placed so far.
func (r *RoomsAndMazes) Rooms() []*grid.Room {
	return r.rooms.Rooms()
}

// RoomBuilder returns the room placement stage.
func (r *RoomsAndMazes) RoomBuilder() *RoomBuilder {
	return r.rooms
}

// MazeBuilder returns the maze carving stage.
func (r *RoomsAndMazes) MazeBuilder() *MazeBuilder {
	return r.maze
}

// Phase returns the current stage.
func (r *RoomsAndMazes) Phase() Phase {
	return r.phase
}

// Options returns the effective options.
func (r *RoomsAndMazes) Options() Options {
	return r.opts
}

// Step advances generation by one unit and reports whether more work remains.
func (r *RoomsAndMazes) Step() bool {
	return r.Next() != OutcomeDone
}

// Build places every room and then carves until the grid is full.
func (r *RoomsAndMazes) Build() *grid.Grid {
	for r.Step() {
	}
	return r.grid
}

// Next advances generation by one unit. The step that exhausts room placement
// also performs the first carving step.
func (r *RoomsAndMazes) Next() Outcome {
	switch r.phase {
	case PhasePlacing:
		if outcome := r.rooms.Next(); outcome != OutcomeDone {
			return outcome
		}
		r.phase = PhaseCarving
		r.log.V(1).Info("room placement finished", "rooms", len(r.rooms.Rooms()), "attempts", r.rooms.Attempts())
		return r.carve()
	case PhaseCarving:
		return r.carve()
	default:
		return OutcomeDone
	}
}

func (r *RoomsAndMazes) carve() Outcome {
	outcome := r.maze.Next()
	if outcome == OutcomeDone {
		r.phase = PhaseDone
		r.log.V(1).Info("maze carving finished", "runs", r.maze.Runs(), "misses", r.maze.Misses())
	}
	return outcome
}
