// Package lighting provides the scene's point lights, the presets they are
// loaded from and flat buffers for shader upload.
package lighting

import "github.com/go-gl/mathgl/mgl32"

// MaxLights is the maximum number of lights supported in shaders.
const MaxLights = 32

// DefaultRadius is used for lights declared without a radius.
const DefaultRadius = 6.0

// Light is a point light in world space.
type Light struct {
	Position mgl32.Vec3 `yaml:"position"`
	Color    mgl32.Vec3 `yaml:"color"` // RGB color (0-1 range)
	Radius   float32    `yaml:"radius"`
	Strength float32    `yaml:"strength"`
}

// Sanitized clamps color to 0-1 and fills in a missing radius or strength.
func (l Light) Sanitized() Light {
	for i := 0; i < 3; i++ {
		l.Color[i] = mgl32.Clamp(l.Color[i], 0, 1)
	}
	if l.Radius <= 0 {
		l.Radius = DefaultRadius
	}
	if l.Strength <= 0 {
		l.Strength = 1
	}
	return l
}

// LightBuffer holds lights for GPU upload.
type LightBuffer struct {
	Lights []Light
}

// NewLightBuffer creates an empty light buffer.
func NewLightBuffer() *LightBuffer {
	return &LightBuffer{
		Lights: make([]Light, 0, MaxLights),
	}
}

// Count returns the number of buffered lights.
func (b *LightBuffer) Count() int {
	return len(b.Lights)
}

// Clear removes all lights from the buffer.
func (b *LightBuffer) Clear() {
	b.Lights = b.Lights[:0]
}

// AddLight adds a light to the buffer.
// Returns false if buffer is full.
func (b *LightBuffer) AddLight(light Light) bool {
	if len(b.Lights) >= MaxLights {
		return false
	}
	b.Lights = append(b.Lights, light)
	return true
}

// SetLights replaces all lights in the buffer.
// Truncates to MaxLights if necessary.
func (b *LightBuffer) SetLights(lights []Light) {
	b.Clear()
	count := min(len(lights), MaxLights)
	b.Lights = append(b.Lights, lights[:count]...)
}

// Positions returns positions as a flat float32 slice for GPU upload.
// Format: [x0, y0, z0, x1, y1, z1, ...]
func (b *LightBuffer) Positions() []float32 {
	result := make([]float32, MaxLights*3)
	for i, light := range b.Lights {
		copy(result[i*3:], light.Position[:])
	}
	return result
}

// Colors returns colors scaled by strength as a flat float32 slice.
// Format: [r0, g0, b0, r1, g1, b1, ...]
func (b *LightBuffer) Colors() []float32 {
	result := make([]float32, MaxLights*3)
	for i, light := range b.Lights {
		c := light.Color.Mul(light.Strength)
		copy(result[i*3:], c[:])
	}
	return result
}

// Radii returns radii as a flat float32 slice for GPU upload.
func (b *LightBuffer) Radii() []float32 {
	result := make([]float32, MaxLights)
	for i, light := range b.Lights {
		result[i] = light.Radius
	}
	return result
}
