package world

import "github.com/samdwyer/forestgen/internal/grid"

// Room is a placed grid room expressed in tile coordinates.
type Room struct {
	grid.Rect
	Source *grid.Room
}

// TerrainRoom maps a grid room to its tile rectangle: (2x, 2y) sized (2w-1) by (2h-1).
// The rectangle covers the room's cells and the wall tiles between them, but not
// the tiles under its outer walls.
func TerrainRoom(room *grid.Room) Room {
	return Room{
		Rect: grid.Rect{
			X:      room.X * 2,
			Y:      room.Y * 2,
			Width:  room.Width*2 - 1,
			Height: room.Height*2 - 1,
		},
		Source: room,
	}
}

// TerrainRooms maps every grid room, keeping order.
func TerrainRooms(rooms []*grid.Room) []Room {
	out := make([]Room, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, TerrainRoom(room))
	}
	return out
}

// insideAny returns a predicate that reports whether a tile lies in one of the rooms.
func insideAny(rooms []Room) func(x, y int) bool {
	return func(x, y int) bool {
		for _, room := range rooms {
			if room.Contains(x, y) {
				return true
			}
		}
		return false
	}
}
