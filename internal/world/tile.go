// Package world turns a finished cell grid into a walkable tile map.
package world

// Tile is a single terrain tile.
type Tile struct {
	Passable    bool
	Transparent bool
}

var (
	// WallTile blocks movement and sight.
	WallTile = Tile{}
	// FloorTile can be walked on and seen through.
	FloorTile = Tile{Passable: true, Transparent: true}
)

// tileFor returns the wall tile for a closed wall and the floor tile for an open one.
func tileFor(wall bool) Tile {
	if wall {
		return WallTile
	}
	return FloorTile
}

// IsPassable returns true if the tile can be walked on.
func (t Tile) IsPassable() bool {
	return t.Passable
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	if t.Passable {
		return '.'
	}
	return '#'
}
