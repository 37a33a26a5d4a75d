// Package object holds placed game objects and the named local-space models
// they instance.
package object

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/levelkit/internal/engine/gpu"
	"github.com/Faultbox/levelkit/pkg/geom"
)

// Model is a named local-space shape shared by every object that uses it.
type Model struct {
	Name     string
	Vertices []geom.Vertex
	Buffer   gpu.Buffer
}

// ShapeKey returns the key the ray-tracing pack instances the model under.
func ShapeKey(modelName string) string {
	return "model/" + modelName
}

// Bounds returns the local-space bounds of the model.
func (m *Model) Bounds() geom.Bounds {
	b := geom.EmptyBounds()
	b.ExtendVertices(m.Vertices)
	return b
}

// GameObject is a static instance of a model.
type GameObject struct {
	Name          string
	ModelName     string
	Position      mgl32.Vec3
	Rotation      mgl32.Vec3 // Euler angles in radians, applied Y then X then Z
	Scale         mgl32.Vec3
	MaterialIndex int
}

// NewGameObject creates an object with unit scale.
func NewGameObject(name, modelName string, position mgl32.Vec3) GameObject {
	return GameObject{
		Name:      name,
		ModelName: modelName,
		Position:  position,
		Scale:     mgl32.Vec3{1, 1, 1},
	}
}

// ModelMatrix returns translate * rotate * scale.
func (o *GameObject) ModelMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(o.Position.X(), o.Position.Y(), o.Position.Z()).
		Mul4(mgl32.HomogRotate3DY(o.Rotation.Y())).
		Mul4(mgl32.HomogRotate3DX(o.Rotation.X())).
		Mul4(mgl32.HomogRotate3DZ(o.Rotation.Z())).
		Mul4(mgl32.Scale3D(o.Scale.X(), o.Scale.Y(), o.Scale.Z()))
}
