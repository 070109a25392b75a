package builder

import (
	"errors"
	"fmt"

	"github.com/go-logr/logr"
)

// ErrInvalidOptions is returned when generation parameters cannot produce a grid.
var ErrInvalidOptions = errors.New("invalid generation options")

// Defaults used by NewRoomBuilder for zero fields.
const (
	DefaultRoomMinWidth  = 2
	DefaultRoomMinHeight = 2
	DefaultRoomMaxWidth  = 5
	DefaultRoomMaxHeight = 5
	DefaultRoomAttempts  = 50
)

// Defaults used by NewRoomsAndMazes for zero fields.
const (
	DefaultMinRoomWidth  = 3
	DefaultMinRoomHeight = 3
	DefaultMaxRoomWidth  = 10
	DefaultMaxRoomHeight = 10
	DefaultMaxAttempts   = 200
)

// NoAttempts disables room placement when used as MaxAttempts. Any negative
// value behaves the same; zero takes the default.
const NoAttempts = -1

// RoomOptions configures room placement.
type RoomOptions struct {
	MinWidth    int
	MinHeight   int
	MaxWidth    int
	MaxHeight   int
	MaxAttempts int // Zero takes the default, negative places no rooms
	Logger      logr.Logger
}

// withDefaults fills zero fields from the room builder defaults.
func (o RoomOptions) withDefaults() RoomOptions {
	if o.MinWidth == 0 {
		o.MinWidth = DefaultRoomMinWidth
	}
	if o.MinHeight == 0 {
		o.MinHeight = DefaultRoomMinHeight
	}
	if o.MaxWidth == 0 {
		o.MaxWidth = DefaultRoomMaxWidth
	}
	if o.MaxHeight == 0 {
		o.MaxHeight = DefaultRoomMaxHeight
	}
	if o.MaxAttempts == 0 {
		o.MaxAttempts = DefaultRoomAttempts
	}
	return o
}

// Validate checks that the size ranges are usable.
func (o RoomOptions) Validate() error {
	if o.MinWidth < 1 || o.MinHeight < 1 {
		return fmt.Errorf("%w: minimum room size %dx%d must be positive", ErrInvalidOptions, o.MinWidth, o.MinHeight)
	}
	if o.MaxWidth < o.MinWidth || o.MaxHeight < o.MinHeight {
		return fmt.Errorf("%w: maximum room size %dx%d is below minimum %dx%d",
			ErrInvalidOptions, o.MaxWidth, o.MaxHeight, o.MinWidth, o.MinHeight)
	}
	return nil
}

// Options configures a rooms-and-mazes generator. Zero fields take the defaults.
type Options struct {
	MinRoomWidth  int `json:"minRoomWidth"`
	MinRoomHeight int `json:"minRoomHeight"`
	MaxRoomWidth  int `json:"maxRoomWidth"`
	MaxRoomHeight int `json:"maxRoomHeight"`
	MaxAttempts   int `json:"maxAttempts"` // Zero takes the default, negative places no rooms

	// PruneAmount is accepted and carried but not used by any stage yet.
	PruneAmount float64 `json:"pruneAmount"`

	Logger logr.Logger `json:"-"`
}

// WithDefaults returns a copy with zero fields replaced by the defaults.
func (o Options) WithDefaults() Options {
	if o.MinRoomWidth == 0 {
		o.MinRoomWidth = DefaultMinRoomWidth
	}
	if o.MinRoomHeight == 0 {
		o.MinRoomHeight = DefaultMinRoomHeight
	}
	if o.MaxRoomWidth == 0 {
		o.MaxRoomWidth = DefaultMaxRoomWidth
	}
	if o.MaxRoomHeight == 0 {
		o.MaxRoomHeight = DefaultMaxRoomHeight
	}
	if o.MaxAttempts == 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	return o
}

// RoomOptions converts to room builder options.
func (o Options) RoomOptions() RoomOptions {
	return RoomOptions{
		MinWidth:    o.MinRoomWidth,
		MinHeight:   o.MinRoomHeight,
		MaxWidth:    o.MaxRoomWidth,
		MaxHeight:   o.MaxRoomHeight,
		MaxAttempts: o.MaxAttempts,
		Logger:      o.Logger,
	}
}

// Validate checks the options after defaults were applied.
func (o Options) Validate() error {
	if o.PruneAmount < 0 || o.PruneAmount > 1 {
		return fmt.Errorf("%w: prune amount %.2f outside [0,1]", ErrInvalidOptions, o.PruneAmount)
	}
	return o.RoomOptions().Validate()
}
