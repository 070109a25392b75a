// Package builder places rooms and carves mazes into a grid.
//
// Every builder can be driven one bounded unit of work at a time through Step,
// or run to completion with Build. Builders never suspend, schedule or cancel
// themselves: a caller that wants to abandon generation simply stops calling
// Step and keeps whatever partial grid was reached.
package builder

import (
	"github.com/go-logr/logr"

	"github.com/samdwyer/forestgen/internal/grid"
)

// Rand is the random source handed to every builder. *math/rand.Rand satisfies it.
type Rand interface {
	// Intn returns a uniform value in [0, n). n is always positive.
	Intn(n int) int
}

// Builder is a generation phase that can be stepped or run to completion.
type Builder interface {
	// Step performs one unit of work and reports whether more work may remain.
	Step() bool
	// Build runs Step until it reports false and returns the grid.
	Build() *grid.Grid
}

// Outcome describes what a single step did.
type Outcome int

const (
	// OutcomeDone means the builder has no work left. Step returns false.
	OutcomeDone Outcome = iota
	// OutcomeRoomPlaced means an attempt produced a room.
	OutcomeRoomPlaced
	// OutcomeRoomRejected means an attempt overlapped an existing room or could
	// not fit in the grid. The attempt still counts against the budget.
	OutcomeRoomRejected
	// OutcomeRunStarted means the maze builder began a new, disjoint carving run.
	OutcomeRunStarted
	// OutcomeCarved means the current path advanced into an empty neighbour.
	OutcomeCarved
	// OutcomeBacktracked means the current cell had no empty neighbours and the
	// stack was popped.
	OutcomeBacktracked
	// OutcomeProbeMissed means the random search for an empty slot ran out of
	// probes although empty slots remain. The pass ends and the next step probes again.
	OutcomeProbeMissed
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeDone:
		return "done"
	case OutcomeRoomPlaced:
		return "room_placed"
	case OutcomeRoomRejected:
		return "room_rejected"
	case OutcomeRunStarted:
		return "run_started"
	case OutcomeCarved:
		return "carved"
	case OutcomeBacktracked:
		return "backtracked"
	case OutcomeProbeMissed:
		return "probe_missed"
	default:
		return "unknown"
	}
}

// orDiscard returns l, or a discarding logger if l has no sink.
func orDiscard(l logr.Logger) logr.Logger {
	if l.GetSink() == nil {
		return logr.Discard()
	}
	return l
}

var (
	_ Builder = (*RoomBuilder)(nil)
	_ Builder = (*MazeBuilder)(nil)
	_ Builder = (*RoomsAndMazes)(nil)
)
