package presets

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")

	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %s", hex)
	}

	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %s: %w", hex, err)
	}

	return tcell.NewHexColor(int32(rgb)), nil
}

// MustParseHexColor converts a hex color string to tcell.Color, panicking on error.
func MustParseHexColor(hex string) tcell.Color {
	color, err := ParseHexColor(hex)
	if err != nil {
		panic(err)
	}
	return color
}

// Palette holds the hex colors used to draw a preset.
type Palette struct {
	Wall    string `json:"wall"`    // Impassable tiles and cell walls
	Floor   string `json:"floor"`   // Passable corridor tiles
	Room    string `json:"room"`    // Room cells and room tiles
	Maze    string `json:"maze"`    // Carved maze cells in the grid view
	Current string `json:"current"` // The carver's current cell
	Text    string `json:"text"`    // Status line
}

// Colors is a palette resolved to terminal colors.
type Colors struct {
	Wall    tcell.Color
	Floor   tcell.Color
	Room    tcell.Color
	Maze    tcell.Color
	Current tcell.Color
	Text    tcell.Color
}

// DefaultColors is used when no preset palette is available.
var DefaultColors = Colors{
	Wall:    tcell.ColorDarkGray,
	Floor:   tcell.ColorWhite,
	Room:    tcell.ColorYellow,
	Maze:    tcell.ColorBlue,
	Current: tcell.ColorRed,
	Text:    tcell.ColorWhite,
}

// Colors resolves every entry of the palette.
func (p Palette) Colors() (Colors, error) {
	var c Colors
	for _, entry := range []struct {
		name string
		hex  string
		dst  *tcell.Color
	}{
		{"wall", p.Wall, &c.Wall},
		{"floor", p.Floor, &c.Floor},
		{"room", p.Room, &c.Room},
		{"maze", p.Maze, &c.Maze},
		{"current", p.Current, &c.Current},
		{"text", p.Text, &c.Text},
	} {
		color, err := ParseHexColor(entry.hex)
		if err != nil {
			return Colors{}, fmt.Errorf("palette %s: %w", entry.name, err)
		}
		*entry.dst = color
	}
	return c, nil
}
