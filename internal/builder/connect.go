package builder

import (
	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"

	"github.com/samdwyer/forestgen/internal/grid"
)

// Connection records the door attempt made for one room.
type Connection struct {
	Room      *grid.Room
	Connector *grid.Cell     // Border cell chosen for the door
	Neighbor  *grid.Cell     // Cell on the other side, nil if Opened is false
	Direction grid.Direction // From Connector toward Neighbor
	Opened    bool           // False when no neighbour belonged to another region
}

// Connect makes one door attempt per room, in creation order. It picks a random
// border cell, collects the cardinal neighbours owned by a different region (a
// different room, or no room at all) and opens the wall pair toward one of them
// at random. A room without such neighbours is skipped and recorded with Opened
// false. Nothing is retried and the result is not guaranteed to be connected.
func Connect(g *grid.Grid, rooms []*grid.Room, rng Rand) []Connection {
	connections := make([]Connection, 0, len(rooms))
	for _, room := range rooms {
		if len(room.Borders) == 0 {
			connections = append(connections, Connection{Room: room})
			continue
		}

		connector := room.Borders[rng.Intn(len(room.Borders))]
		conn := Connection{Room: room, Connector: connector}

		var candidates []grid.Direction
		for _, d := range grid.Directions() {
			neighbor := g.Neighbor(connector, d)
			if neighbor != nil && neighbor.Room != connector.Room {
				candidates = append(candidates, d)
			}
		}
		if len(candidates) == 0 {
			connections = append(connections, conn)
			continue
		}

		conn.Direction = candidates[rng.Intn(len(candidates))]
		conn.Neighbor = g.Neighbor(connector, conn.Direction)
		conn.Opened = grid.OpenBetween(connector, conn.Neighbor)
		connections = append(connections, conn)
	}
	return connections
}

// Connectors lists, for every room border cell, the first cardinal neighbour that
// belongs to another region. These are the cells a door could lead to.
func Connectors(g *grid.Grid, rooms []*grid.Room) []*grid.Cell {
	var found []*grid.Cell
	for _, room := range rooms {
		for _, cell := range room.Borders {
			for _, d := range grid.Directions() {
				neighbor := g.Neighbor(cell, d)
				if neighbor != nil && neighbor.Room != room {
					found = append(found, neighbor)
					break
				}
			}
		}
	}
	return found
}

// Components counts the connected groups of claimed cells, where two adjacent
// cells are connected when the wall pair between them is open.
func Components(g *grid.Grid) int {
	seen := mapset.New[*grid.Cell]()
	components := 0

	g.ForEachCell(func(start *grid.Cell) {
		if seen.Has(start) {
			return
		}
		components++
		seen.Put(start)

		q := queue.New[*grid.Cell]()
		q.Enqueue(start)
		for !q.Empty() {
			cell := q.Dequeue()
			for _, d := range grid.Directions() {
				if cell.Wall(d) {
					continue
				}
				neighbor := g.Neighbor(cell, d)
				if neighbor == nil || seen.Has(neighbor) || neighbor.Wall(d.Opposite()) {
					continue
				}
				seen.Put(neighbor)
				q.Enqueue(neighbor)
			}
		}
	})
	return components
}
