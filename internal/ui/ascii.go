package ui

import (
	"bufio"
	"io"

	"github.com/gookit/color"

	"github.com/samdwyer/forestgen/internal/presets"
	"github.com/samdwyer/forestgen/internal/world"
)

// WriteTerrain prints a finished map as text, one row per line. With a nil
// palette the output is plain; otherwise runs of walls, corridor floor and room
// floor are colored with the palette's hex colors.
func WriteTerrain(w io.Writer, m *world.Map, palette *presets.Palette) error {
	bw := bufio.NewWriter(w)
	if palette == nil {
		if _, err := bw.WriteString(m.Terrain.String()); err != nil {
			return err
		}
		return bw.Flush()
	}

	styles := map[tileClass]color.RGBColor{
		classWall:  color.HEX(palette.Wall),
		classFloor: color.HEX(palette.Floor),
		classRoom:  color.HEX(palette.Room),
	}

	t := m.Terrain
	run := make([]rune, 0, t.Width)
	for y := 0; y < t.Height; y++ {
		current := classOf(m, 0, y)
		run = run[:0]
		for x := 0; x < t.Width; x++ {
			class := classOf(m, x, y)
			if class != current {
				if _, err := bw.WriteString(styles[current].Sprint(string(run))); err != nil {
					return err
				}
				current, run = class, run[:0]
			}
			run = append(run, t.Get(x, y).Rune())
		}
		if len(run) > 0 {
			if _, err := bw.WriteString(styles[current].Sprint(string(run))); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

type tileClass int

const (
	classWall tileClass = iota
	classFloor
	classRoom
)

func classOf(m *world.Map, x, y int) tileClass {
	switch {
	case !m.IsPassable(x, y):
		return classWall
	case m.RoomIndexAt(x, y) >= 0:
		return classRoom
	default:
		return classFloor
	}
}
