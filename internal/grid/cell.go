package grid

// Kind tags which builder claimed a cell.
type Kind int

const (
	// KindMaze marks a cell carved by the maze builder.
	KindMaze Kind = iota
	// KindRoom marks a cell written by room placement.
	KindRoom
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindMaze:
		return "maze"
	case KindRoom:
		return "room"
	default:
		return "unknown"
	}
}

// Walls holds the four boundary flags of a cell. True means the wall is present.
type Walls struct {
	Top    bool
	Right  bool
	Bottom bool
	Left   bool
}

// Cell is a claimed grid slot.
type Cell struct {
	X, Y  int
	Walls Walls
	Kind  Kind

	// Room is the room owning this cell, nil for maze cells. Not owned.
	Room *Room
}

// NewCell creates an unplaced cell of the given kind with every wall open.
func NewCell(x, y int, kind Kind) *Cell {
	return &Cell{X: x, Y: y, Kind: kind}
}

// Wall reports whether the wall on side d is present.
func (c *Cell) Wall(d Direction) bool {
	switch d {
	case Top:
		return c.Walls.Top
	case Right:
		return c.Walls.Right
	case Bottom:
		return c.Walls.Bottom
	case Left:
		return c.Walls.Left
	default:
		return false
	}
}

// SetWall sets the wall on side d. It only touches this cell; use Grid.OpenBetween
// to keep neighbouring walls matched.
func (c *Cell) SetWall(d Direction, present bool) {
	switch d {
	case Top:
		c.Walls.Top = present
	case Right:
		c.Walls.Right = present
	case Bottom:
		c.Walls.Bottom = present
	case Left:
		c.Walls.Left = present
	}
}

// Seal raises all four walls.
func (c *Cell) Seal() {
	c.Walls = Walls{Top: true, Right: true, Bottom: true, Left: true}
}

// WallCount returns the number of walls present.
func (c *Cell) WallCount() int {
	n := 0
	for _, d := range Directions() {
		if c.Wall(d) {
			n++
		}
	}
	return n
}

// InRoom returns true if the cell belongs to a room.
func (c *Cell) InRoom() bool {
	return c.Room != nil
}

// Clone returns a copy of the cell. The room reference is shared.
func (c *Cell) Clone() *Cell {
	clone := *c
	return &clone
}
