package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/forestgen/internal/grid"
	"github.com/samdwyer/forestgen/internal/presets"
	"github.com/samdwyer/forestgen/internal/world"
)

// Glyphs used by both views.
const (
	GlyphWall    = '#'
	GlyphFloor   = '.'
	GlyphCurrent = '@'
)

// Renderer handles drawing grids and terrain to the screen.
type Renderer struct {
	screen *Screen
	colors presets.Colors
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen, colors presets.Colors) *Renderer {
	return &Renderer{screen: screen, colors: colors}
}

// SetColors replaces the palette.
func (r *Renderer) SetColors(colors presets.Colors) {
	r.colors = colors
}

// Colors returns the active colors.
func (r *Renderer) Colors() presets.Colors {
	return r.colors
}

// RenderGrid clears the screen and draws the cell grid at twice its size, the
// same layout the terrain uses: each cell at (2x, 2y) with its right and bottom
// walls drawn beside it. Unclaimed slots stay blank. current, if not nil, is
// drawn as the carver.
func (r *Renderer) RenderGrid(g *grid.Grid, current *grid.Cell) {
	r.screen.Clear()
	wall := r.style(r.colors.Wall)

	g.ForEachCell(func(cell *grid.Cell) {
		fill := r.style(r.colors.Maze)
		if cell.InRoom() {
			fill = r.style(r.colors.Room)
		}
		x, y := cell.X*2, cell.Y*2

		if cell == current {
			r.screen.SetContent(x, y, GlyphCurrent, r.style(r.colors.Current).Bold(true))
		} else {
			r.screen.SetContent(x, y, GlyphFloor, fill)
		}
		r.drawWall(x+1, y, cell.Walls.Right, fill, wall)
		r.drawWall(x, y+1, cell.Walls.Bottom, fill, wall)
		r.screen.SetContent(x+1, y+1, GlyphWall, wall)
	})
}

func (r *Renderer) drawWall(x, y int, closed bool, open, wall tcell.Style) {
	if closed {
		r.screen.SetContent(x, y, GlyphWall, wall)
		return
	}
	r.screen.SetContent(x, y, GlyphFloor, open)
}

// RenderTerrain clears the screen and draws a finished map tile by tile.
func (r *Renderer) RenderTerrain(m *world.Map) {
	r.screen.Clear()
	t := m.Terrain
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			tile := t.Get(x, y)
			r.screen.SetContent(x, y, tile.Rune(), r.tileStyle(m, x, y, tile))
		}
	}
}

// tileStyle returns the style for a tile: walls, room floor and corridor floor differ.
func (r *Renderer) tileStyle(m *world.Map, x, y int, tile world.Tile) tcell.Style {
	switch {
	case !tile.Passable:
		return r.style(r.colors.Wall)
	case m.RoomIndexAt(x, y) >= 0:
		return r.style(r.colors.Room)
	default:
		return r.style(r.colors.Floor)
	}
}

func (r *Renderer) style(c tcell.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(c)
}

// RenderMessage displays a message on row y, blanking the rest of the row.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := r.style(r.colors.Text)
	width, _ := r.screen.Size()
	x := 0
	for _, ch := range msg {
		r.screen.SetContent(x, y, ch, style)
		x++
	}
	for ; x < width; x++ {
		r.screen.SetContent(x, y, ' ', style)
	}
}

// Show flushes everything drawn so far.
func (r *Renderer) Show() {
	r.screen.Show()
}
