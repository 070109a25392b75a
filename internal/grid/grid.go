// Package grid provides the cell grid that the dungeon builders fill in.
package grid

// Grid is a fixed width by height array of optional cells, addressed row-major.
// A nil slot is unclaimed.
type Grid struct {
	Width   int
	Height  int
	cells   []*Cell
	claimed int
}

// New creates an empty grid.
func New(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Grid{
		Width:  width,
		Height: height,
		cells:  make([]*Cell, width*height),
	}
}

// InBounds returns true if the position lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// Get returns the cell at the given position, or nil if it is out of bounds or unclaimed.
func (g *Grid) Get(x, y int) *Cell {
	if !g.InBounds(x, y) {
		return nil
	}
	return g.cells[y*g.Width+x]
}

// Set stores a cell at the given position and moves the cell's coordinates there.
// Out-of-bounds writes are ignored. A nil cell clears the slot.
func (g *Grid) Set(x, y int, cell *Cell) {
	if !g.InBounds(x, y) {
		return
	}
	i := y*g.Width + x
	if g.cells[i] == nil && cell != nil {
		g.claimed++
	} else if g.cells[i] != nil && cell == nil {
		g.claimed--
	}
	if cell != nil {
		cell.X, cell.Y = x, y
	}
	g.cells[i] = cell
}

// Len returns the number of slots.
func (g *Grid) Len() int {
	return len(g.cells)
}

// Claimed returns the number of slots holding a cell.
func (g *Grid) Claimed() int {
	return g.claimed
}

// Empty returns the number of unclaimed slots.
func (g *Grid) Empty() int {
	return len(g.cells) - g.claimed
}

// ForEachCell calls fn for every claimed cell in row-major order.
func (g *Grid) ForEachCell(fn func(cell *Cell)) {
	for _, cell := range g.cells {
		if cell != nil {
			fn(cell)
		}
	}
}

// Cells returns the claimed cells in row-major order.
func (g *Grid) Cells() []*Cell {
	cells := make([]*Cell, 0, g.claimed)
	g.ForEachCell(func(cell *Cell) {
		cells = append(cells, cell)
	})
	return cells
}

// Neighbor returns the cell next to c in direction d, or nil.
func (g *Grid) Neighbor(c *Cell, d Direction) *Cell {
	if c == nil || !d.IsValid() {
		return nil
	}
	dx, dy := d.Delta()
	return g.Get(c.X+dx, c.Y+dy)
}

// DirectionBetween returns the direction from a to b. It fails unless the cells
// differ by exactly one step along a single axis.
func DirectionBetween(a, b *Cell) (Direction, bool) {
	if a == nil || b == nil {
		return 0, false
	}
	return directionOf(b.X-a.X, b.Y-a.Y)
}

// OpenBetween removes the matched pair of walls between two adjacent cells.
// It returns false and changes nothing if the cells are not adjacent.
func OpenBetween(a, b *Cell) bool {
	d, ok := DirectionBetween(a, b)
	if !ok {
		return false
	}
	a.SetWall(d, false)
	b.SetWall(d.Opposite(), false)
	return true
}

// Clone returns a deep copy of the grid. Room back-references are shared.
func (g *Grid) Clone() *Grid {
	clone := &Grid{
		Width:   g.Width,
		Height:  g.Height,
		cells:   make([]*Cell, len(g.cells)),
		claimed: g.claimed,
	}
	for i, cell := range g.cells {
		if cell != nil {
			clone.cells[i] = cell.Clone()
		}
	}
	return clone
}

// Equal reports whether two grids have the same shape and the same cells, comparing
// position, walls, kind and owning room ID.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.Width != other.Width || g.Height != other.Height {
		return false
	}
	for i, a := range g.cells {
		b := other.cells[i]
		if (a == nil) != (b == nil) {
			return false
		}
		if a == nil {
			continue
		}
		if a.X != b.X || a.Y != b.Y || a.Walls != b.Walls || a.Kind != b.Kind {
			return false
		}
		if (a.Room == nil) != (b.Room == nil) {
			return false
		}
		if a.Room != nil && a.Room.ID != b.Room.ID {
			return false
		}
	}
	return true
}
