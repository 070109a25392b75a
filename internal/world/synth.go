package world

import (
	"github.com/samdwyer/forestgen/internal/grid"
)

// DeadEndPasses is the fixed number of erosion passes run by Forest.Build.
const DeadEndPasses = 30

// Synthesize renders a grid as a terrain twice its size. Each cell becomes a floor
// tile at (2x, 2y), and the tiles half a step away in each direction become floor
// when the matching wall is open and wall otherwise. Diagonal tiles stay walls.
// Only the given cells are drawn, normally the maze builder's carved set. Finally
// every room's tile rectangle is forced to floor, so a door between two touching
// rooms stays a wall tile.
func Synthesize(g *grid.Grid, rooms []*grid.Room, cells []*grid.Cell) *Terrain {
	t := NewTerrain(g.Width*2, g.Height*2)
	t.Fill(WallTile)

	for _, cell := range cells {
		if cell == nil {
			continue
		}
		x, y := cell.X*2, cell.Y*2
		t.Set(x, y, FloorTile)
		for _, d := range grid.Directions() {
			dx, dy := d.Delta()
			t.Set(x+dx, y+dy, tileFor(cell.Wall(d)))
		}
	}

	for _, room := range TerrainRooms(rooms) {
		t.FillRect(room.X, room.Y, room.Width, room.Height, FloorTile)
	}
	return t
}

// PruneDeadEnds runs one erosion pass and returns the number of tiles it walled
// off. A passable tile becomes a wall when at least three of its in-bounds
// cardinal neighbours are walls. Every tile is judged against the terrain as it
// was before the pass. Tiles for which keep returns true are left alone; keep may
// be nil.
func PruneDeadEnds(t *Terrain, keep func(x, y int) bool) int {
	var deadEnds []int
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			i := y*t.Width + x
			if !t.tiles[i].Passable || (keep != nil && keep(x, y)) {
				continue
			}
			walls := 0
			for _, n := range t.Neighbors(x, y) {
				if !n.Passable {
					walls++
				}
			}
			if walls >= 3 {
				deadEnds = append(deadEnds, i)
			}
		}
	}

	for _, i := range deadEnds {
		t.tiles[i] = WallTile
	}
	return len(deadEnds)
}

// Erode runs a fixed number of erosion passes, whether or not erosion has
// settled, and returns the total number of tiles walled off.
func Erode(t *Terrain, passes int, keep func(x, y int) bool) int {
	total := 0
	for i := 0; i < passes; i++ {
		total += PruneDeadEnds(t, keep)
	}
	return total
}
