package geom

import "github.com/go-gl/mathgl/mgl32"

// NormalFromThreePoints returns the unit face normal of the triangle
// (p0, p1, p2) with counter-clockwise winding.
func NormalFromThreePoints(p0, p1, p2 mgl32.Vec3) mgl32.Vec3 {
	return p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
}

// UVArea returns the signed UV-space determinant of a triangle. The
// tangent basis is undefined when it is zero.
func UVArea(v0, v1, v2 *Vertex) float32 {
	d1 := v1.UV.Sub(v0.UV)
	d2 := v2.UV.Sub(v0.UV)
	return d1.X()*d2.Y() - d1.Y()*d2.X()
}

// SetNormalsAndTangents derives the face normal and the tangent/bitangent
// pair of one triangle from its positions and UVs and writes the same basis
// into all three vertices.
//
// The triangle must have a non-zero UV area (see UVArea). This is not
// checked unless built with the debug tag.
func SetNormalsAndTangents(v0, v1, v2 *Vertex) {
	deltaPos1 := v1.Position.Sub(v0.Position)
	deltaPos2 := v2.Position.Sub(v0.Position)
	deltaUV1 := v1.UV.Sub(v0.UV)
	deltaUV2 := v2.UV.Sub(v0.UV)

	det := deltaUV1.X()*deltaUV2.Y() - deltaUV1.Y()*deltaUV2.X()
	assertNonDegenerateUV(det)
	r := 1 / det

	tangent := deltaPos1.Mul(deltaUV2.Y()).Sub(deltaPos2.Mul(deltaUV1.Y())).Mul(r)
	bitangent := deltaPos2.Mul(deltaUV1.X()).Sub(deltaPos1.Mul(deltaUV2.X())).Mul(r)
	normal := NormalFromThreePoints(v0.Position, v1.Position, v2.Position)

	for _, v := range [3]*Vertex{v0, v1, v2} {
		v.Normal = normal
		v.Tangent = tangent
		v.Bitangent = bitangent
	}
}
