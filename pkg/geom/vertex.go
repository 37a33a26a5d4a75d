// Package geom provides vertex types and the triangle math shared by every
// level primitive: tangent-space derivation, quad/box builders, bounds and
// closest-point queries.
package geom

import "github.com/go-gl/mathgl/mgl32"

// Up is the world up axis.
var Up = mgl32.Vec3{0, 1, 0}

// Vertex is a mesh vertex with a full tangent-space basis.
// Layout (56 bytes, tightly packed):
//
//	offset  0: Position
//	offset 12: UV
//	offset 20: Normal
//	offset 32: Tangent
//	offset 44: Bitangent
type Vertex struct {
	Position  mgl32.Vec3
	UV        mgl32.Vec2
	Normal    mgl32.Vec3
	Tangent   mgl32.Vec3
	Bitangent mgl32.Vec3
}

// VertexStride is the size of a Vertex in bytes.
const VertexStride = 56

// Attribute byte offsets inside a Vertex.
const (
	OffsetPosition  = 0
	OffsetUV        = 12
	OffsetNormal    = 20
	OffsetTangent   = 32
	OffsetBitangent = 44
)

// Positions returns the positions of vertices in order.
func Positions(vertices []Vertex) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(vertices))
	for i := range vertices {
		out[i] = vertices[i].Position
	}
	return out
}

// Transform returns a copy of vertices with positions transformed by m and
// the basis vectors by m's upper 3x3.
func Transform(vertices []Vertex, m mgl32.Mat4) []Vertex {
	out := make([]Vertex, len(vertices))
	for i, v := range vertices {
		out[i] = Vertex{
			Position:  mgl32.TransformCoordinate(v.Position, m),
			UV:        v.UV,
			Normal:    safeNormalize(mgl32.TransformNormal(v.Normal, m)),
			Tangent:   mgl32.TransformNormal(v.Tangent, m),
			Bitangent: mgl32.TransformNormal(v.Bitangent, m),
		}
	}
	return out
}

func safeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	if v.Len() < 1e-8 {
		return mgl32.Vec3{}
	}
	return v.Normalize()
}
