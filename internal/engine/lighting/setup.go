package lighting

import (
	"errors"
	"fmt"
)

// ErrSetupOutOfRange is returned for an unknown setup index.
var ErrSetupOutOfRange = errors.New("lighting: setup index out of range")

// Setup is a named light arrangement for a level.
type Setup struct {
	Name   string  `yaml:"name"`
	Lights []Light `yaml:"lights"`
	// Sun angles in degrees. A zero latitude disables the sun.
	SunLongitude float32 `yaml:"sun_longitude"`
	SunLatitude  float32 `yaml:"sun_latitude"`
	Ambient      float32 `yaml:"ambient"`
}

// SetupProvider supplies light setups by index.
type SetupProvider interface {
	SetupCount() int
	Setup(index int) (Setup, error)
}

// Presets is a SetupProvider backed by a slice, typically loaded from config.
type Presets []Setup

// SetupCount returns the number of presets.
func (p Presets) SetupCount() int {
	return len(p)
}

// Setup returns a copy of preset index with sanitized lights.
func (p Presets) Setup(index int) (Setup, error) {
	if index < 0 || index >= len(p) {
		return Setup{}, fmt.Errorf("setup %d of %d: %w", index, len(p), ErrSetupOutOfRange)
	}
	s := p[index]
	lights := make([]Light, len(s.Lights))
	for i, l := range s.Lights {
		lights[i] = l.Sanitized()
	}
	s.Lights = lights
	return s, nil
}

// DefaultPresets returns the built-in setups: a warm interior and a dim
// night variant.
func DefaultPresets() Presets {
	return Presets{
		{
			Name: "interior",
			Lights: []Light{
				{Position: [3]float32{2, 2.2, 2}, Color: [3]float32{1, 0.85, 0.7}, Radius: 6, Strength: 1},
				{Position: [3]float32{6, 2.2, 5}, Color: [3]float32{1, 0.9, 0.8}, Radius: 5, Strength: 0.8},
			},
			Ambient: 0.15,
		},
		{
			Name: "night",
			Lights: []Light{
				{Position: [3]float32{4, 2.2, 3}, Color: [3]float32{0.4, 0.5, 1}, Radius: 4, Strength: 0.6},
			},
			SunLongitude: 210,
			SunLatitude:  25,
			Ambient:      0.05,
		},
	}
}
