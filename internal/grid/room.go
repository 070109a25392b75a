package grid

// Room is a placed rectangle together with the cells it owns.
type Room struct {
	Rect
	ID      int     // Creation order, starting at 0
	Cells   []*Cell // Every cell inside the rectangle
	Borders []*Cell // Cells on the perimeter
}

// NewRoom creates an empty room for the rectangle.
func NewRoom(id int, rect Rect) *Room {
	return &Room{Rect: rect, ID: id}
}

// AddCell records a cell as owned by the room and points it back at the room.
func (r *Room) AddCell(cell *Cell) {
	cell.Room = r
	r.Cells = append(r.Cells, cell)
	if r.OnEdge(cell.X, cell.Y) {
		r.Borders = append(r.Borders, cell)
	}
}
