package world

import "strings"

// Terrain is a width by height tile map addressed row-major.
type Terrain struct {
	Width  int
	Height int
	tiles  []Tile
}

// NewTerrain creates a terrain filled with walls.
func NewTerrain(width, height int) *Terrain {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Terrain{
		Width:  width,
		Height: height,
		tiles:  make([]Tile, width*height),
	}
}

// InBounds returns true if the position lies inside the terrain.
func (t *Terrain) InBounds(x, y int) bool {
	return x >= 0 && x < t.Width && y >= 0 && y < t.Height
}

// Get returns the tile at the given position. Out-of-bounds positions read as walls.
func (t *Terrain) Get(x, y int) Tile {
	if !t.InBounds(x, y) {
		return WallTile
	}
	return t.tiles[y*t.Width+x]
}

// Set stores a tile. Out-of-bounds writes are ignored.
func (t *Terrain) Set(x, y int, tile Tile) {
	if !t.InBounds(x, y) {
		return
	}
	t.tiles[y*t.Width+x] = tile
}

// IsPassable returns true if the given position can be walked on.
func (t *Terrain) IsPassable(x, y int) bool {
	return t.Get(x, y).Passable
}

// Fill sets every tile.
func (t *Terrain) Fill(tile Tile) {
	for i := range t.tiles {
		t.tiles[i] = tile
	}
}

// FillRect sets every in-bounds tile covered by the rectangle.
func (t *Terrain) FillRect(x, y, width, height int, tile Tile) {
	for ty := y; ty < y+height; ty++ {
		for tx := x; tx < x+width; tx++ {
			t.Set(tx, ty, tile)
		}
	}
}

// Neighbors returns the in-bounds cardinal neighbours of a position.
func (t *Terrain) Neighbors(x, y int) []Tile {
	neighbors := make([]Tile, 0, 4)
	for _, d := range [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}} {
		nx, ny := x+d[0], y+d[1]
		if t.InBounds(nx, ny) {
			neighbors = append(neighbors, t.tiles[ny*t.Width+nx])
		}
	}
	return neighbors
}

// PassableCount returns the number of passable tiles.
func (t *Terrain) PassableCount() int {
	n := 0
	for _, tile := range t.tiles {
		if tile.Passable {
			n++
		}
	}
	return n
}

// Clone returns an independent copy.
func (t *Terrain) Clone() *Terrain {
	clone := &Terrain{Width: t.Width, Height: t.Height, tiles: make([]Tile, len(t.tiles))}
	copy(clone.tiles, t.tiles)
	return clone
}

// Equal reports whether both terrains have the same size and tiles.
func (t *Terrain) Equal(other *Terrain) bool {
	if other == nil || t.Width != other.Width || t.Height != other.Height {
		return false
	}
	for i, tile := range t.tiles {
		if other.tiles[i] != tile {
			return false
		}
	}
	return true
}

// String renders the terrain one row per line.
func (t *Terrain) String() string {
	var b strings.Builder
	b.Grow((t.Width + 1) * t.Height)
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			b.WriteRune(t.tiles[y*t.Width+x].Rune())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// ParseTerrain builds a terrain from rows of '.' (floor) and any other rune (wall).
func ParseTerrain(rows ...string) *Terrain {
	width := 0
	for _, row := range rows {
		width = max(width, len([]rune(row)))
	}
	t := NewTerrain(width, len(rows))
	for y, row := range rows {
		for x, r := range []rune(row) {
			t.Set(x, y, tileFor(r != '.'))
		}
	}
	return t
}
