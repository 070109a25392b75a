// Package viewer provides the interactive terminal loop that steps and displays generation.
package viewer

// Mode is what the viewer draws.
type Mode int

const (
	// ModeGrid draws the cell grid while it is being built.
	ModeGrid Mode = iota
	// ModeTerrain draws the finished, eroded tile map.
	ModeTerrain
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeGrid:
		return "grid"
	case ModeTerrain:
		return "terrain"
	default:
		return "unknown"
	}
}

// ParseMode converts a mode name to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "grid":
		return ModeGrid, true
	case "terrain":
		return ModeTerrain, true
	default:
		return ModeGrid, false
	}
}
