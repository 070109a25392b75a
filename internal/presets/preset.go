package presets

import "github.com/samdwyer/forestgen/internal/builder"

// Preset is a named forest configuration loaded from JSON. Sizes are in tiles.
type Preset struct {
	ID          string          `json:"id"`          // Unique identifier (e.g., "forest")
	Name        string          `json:"name"`        // Display name
	Description string          `json:"description"` // One-line summary for the preset list
	Width       int             `json:"width"`       // Terrain width in tiles
	Height      int             `json:"height"`      // Terrain height in tiles
	Rooms       builder.Options `json:"rooms"`       // Room options in tiles
	Palette     Palette         `json:"palette"`
}

// Colors resolves the preset palette, falling back to DefaultColors if it is malformed.
func (p *Preset) Colors() Colors {
	colors, err := p.Palette.Colors()
	if err != nil {
		return DefaultColors
	}
	return colors
}

// PresetsFile represents the structure of presets.json.
type PresetsFile struct {
	Presets []Preset `json:"presets"`
}

// LoadPresets loads preset definitions from the embedded presets.json file.
func LoadPresets() ([]Preset, error) {
	file, err := Load[PresetsFile]("presets.json")
	if err != nil {
		return nil, err
	}
	return file.Presets, nil
}
