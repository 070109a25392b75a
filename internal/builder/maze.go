package builder

import (
	"github.com/go-logr/logr"
	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/stack"

	"github.com/samdwyer/forestgen/internal/grid"
)

// MazeBuilder carves spanning trees through the slots left empty by room
// placement, using a randomized depth-first backtracker.
type MazeBuilder struct {
	grid    *grid.Grid
	rng     Rand
	log     logr.Logger
	current *grid.Cell
	stack   *stack.Stack[*grid.Cell]
	carved  mapset.Set[*grid.Cell]
	order   []*grid.Cell
	runs    int
	misses  int
}

// NewMazeBuilder creates a maze builder for g.
func NewMazeBuilder(g *grid.Grid, rng Rand, log logr.Logger) *MazeBuilder {
	return &MazeBuilder{
		grid:   g,
		rng:    rng,
		log:    orDiscard(log).WithName("maze"),
		stack:  stack.New[*grid.Cell](),
		carved: mapset.New[*grid.Cell](),
	}
}

// Current returns the cell the carver is standing on, or nil between runs.
func (b *MazeBuilder) Current() *grid.Cell {
	return b.current
}

// Carved returns every carved cell in carve order.
func (b *MazeBuilder) Carved() []*grid.Cell {
	return b.order
}

// IsCarved reports whether the cell was carved by this builder.
func (b *MazeBuilder) IsCarved(cell *grid.Cell) bool {
	return b.carved.Has(cell)
}

// Runs returns the number of carving runs started. Each run is its own tree.
func (b *MazeBuilder) Runs() int {
	return b.runs
}

// Misses returns how many times the random probe failed to find an empty slot.
func (b *MazeBuilder) Misses() int {
	return b.misses
}

// FindUnvisitedCell probes random positions, at most once per grid slot, and
// returns a new maze cell for the first empty slot hit. The cell is not yet in
// the grid. It returns nil if every probe landed on a claimed slot.
func (b *MazeBuilder) FindUnvisitedCell() *grid.Cell {
	if b.grid.Width == 0 || b.grid.Height == 0 {
		return nil
	}
	for attempt := 0; attempt < b.grid.Len(); attempt++ {
		x := b.rng.Intn(b.grid.Width)
		y := b.rng.Intn(b.grid.Height)
		if b.grid.Get(x, y) == nil {
			return grid.NewCell(x, y, grid.KindMaze)
		}
	}
	return nil
}

// Carve seals cell, opens the wall pair toward the current cell when the two are
// adjacent, and makes cell the new current cell.
func (b *MazeBuilder) Carve(cell *grid.Cell) {
	cell.Seal()
	if b.current != nil {
		grid.OpenBetween(b.current, cell)
	}

	b.stack.Push(cell)
	b.carved.Put(cell)
	b.order = append(b.order, cell)
	b.grid.Set(cell.X, cell.Y, cell)
	b.current = cell
}

// Step performs one unit of carving. It returns false once every slot is claimed.
func (b *MazeBuilder) Step() bool {
	return b.Next() != OutcomeDone
}

// Build carves until every slot is claimed.
func (b *MazeBuilder) Build() *grid.Grid {
	for b.Step() {
	}
	return b.grid
}

// Next performs one unit of carving and reports what happened.
func (b *MazeBuilder) Next() Outcome {
	if b.grid.Empty() == 0 {
		return OutcomeDone
	}

	if b.current == nil {
		cell := b.FindUnvisitedCell()
		if cell == nil {
			b.misses++
			b.log.V(1).Info("probe found no empty slot", "empty", b.grid.Empty(), "misses", b.misses)
			return OutcomeProbeMissed
		}
		b.runs++
		b.log.V(1).Info("starting new carve", "x", cell.X, "y", cell.Y, "run", b.runs)
		b.Carve(cell)
		return OutcomeRunStarted
	}

	if next := b.emptyNeighbor(b.current); next != nil {
		b.log.V(2).Info("carving", "fromX", b.current.X, "fromY", b.current.Y, "toX", next.X, "toY", next.Y)
		b.Carve(next)
		return OutcomeCarved
	}

	b.log.V(2).Info("backtracking", "x", b.current.X, "y", b.current.Y)
	b.current = b.stack.Pop()
	return OutcomeBacktracked
}

// emptyNeighbor picks a random empty in-bounds slot next to cell and returns a
// new maze cell for it, or nil if there is none.
func (b *MazeBuilder) emptyNeighbor(cell *grid.Cell) *grid.Cell {
	var open []grid.Direction
	for _, d := range grid.Directions() {
		dx, dy := d.Delta()
		x, y := cell.X+dx, cell.Y+dy
		if b.grid.InBounds(x, y) && b.grid.Get(x, y) == nil {
			open = append(open, d)
		}
	}
	if len(open) == 0 {
		return nil
	}

	dx, dy := open[b.rng.Intn(len(open))].Delta()
	return grid.NewCell(cell.X+dx, cell.Y+dy, grid.KindMaze)
}
