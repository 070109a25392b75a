package presets

import (
	"errors"
	"fmt"
)

// DefaultID is the preset used when none is requested.
const DefaultID = "forest"

// ErrUnknownPreset is returned when a preset ID is not in the registry.
var ErrUnknownPreset = errors.New("unknown preset")

// Registry holds loaded presets and provides lookup utilities.
type Registry struct {
	presets map[string]*Preset
	all     []Preset
}

// NewRegistry creates a registry from loaded presets.
func NewRegistry(presets []Preset) *Registry {
	registry := &Registry{
		presets: make(map[string]*Preset),
		all:     presets,
	}
	for i := range presets {
		registry.presets[presets[i].ID] = &presets[i]
	}
	return registry
}

// LoadRegistry loads and creates a registry from the embedded presets.json.
func LoadRegistry() (*Registry, error) {
	presets, err := LoadPresets()
	if err != nil {
		return nil, err
	}
	if len(presets) == 0 {
		return nil, errors.New("no presets loaded from presets.json")
	}
	return NewRegistry(presets), nil
}

// MustLoadRegistry loads a registry, panicking on error.
func MustLoadRegistry() *Registry {
	registry, err := LoadRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the preset with the given ID, or nil if not found.
func (r *Registry) GetByID(id string) *Preset {
	return r.presets[id]
}

// Lookup returns the preset with the given ID, or ErrUnknownPreset.
func (r *Registry) Lookup(id string) (*Preset, error) {
	if p := r.presets[id]; p != nil {
		return p, nil
	}
	return nil, fmt.Errorf("%w %q (have %v)", ErrUnknownPreset, id, r.IDs())
}

// IDs returns the preset IDs in file order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.all))
	for i := range r.all {
		ids[i] = r.all[i].ID
	}
	return ids
}

// All returns all presets.
func (r *Registry) All() []Preset {
	return r.all
}

// Count returns the number of presets in the registry.
func (r *Registry) Count() int {
	return len(r.all)
}
