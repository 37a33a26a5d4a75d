package geom

import "github.com/go-gl/mathgl/mgl32"

// QuadUVs returns planar UVs for a quad whose corners run counter-clockwise
// starting at the UV origin: U follows corner0->corner1, V follows
// corner1->corner2. Spans are divided by textureScale.
func QuadUVs(corners [4]mgl32.Vec3, textureScale float32) [4]mgl32.Vec2 {
	u := corners[1].Sub(corners[0]).Len() / textureScale
	v := corners[2].Sub(corners[1]).Len() / textureScale
	return [4]mgl32.Vec2{{0, 0}, {u, 0}, {u, v}, {0, v}}
}

// AppendQuad triangulates a quad into (0,1,2) and (0,2,3), derives the
// tangent basis of each triangle and appends the six vertices to dst.
// Corners must run counter-clockwise when seen from the front face.
func AppendQuad(dst []Vertex, corners [4]mgl32.Vec3, uvs [4]mgl32.Vec2) []Vertex {
	tri := [6]Vertex{
		{Position: corners[0], UV: uvs[0]},
		{Position: corners[1], UV: uvs[1]},
		{Position: corners[2], UV: uvs[2]},
		{Position: corners[0], UV: uvs[0]},
		{Position: corners[2], UV: uvs[2]},
		{Position: corners[3], UV: uvs[3]},
	}
	SetNormalsAndTangents(&tri[0], &tri[1], &tri[2])
	SetNormalsAndTangents(&tri[3], &tri[4], &tri[5])
	return append(dst, tri[:]...)
}

// AppendBox appends the 36 vertices of an axis-aligned box with outward
// facing triangles. Every extent must be positive.
func AppendBox(dst []Vertex, min, max mgl32.Vec3, textureScale float32) []Vertex {
	x0, y0, z0 := min.X(), min.Y(), min.Z()
	x1, y1, z1 := max.X(), max.Y(), max.Z()

	faces := [6][4]mgl32.Vec3{
		{{x0, y0, z1}, {x1, y0, z1}, {x1, y1, z1}, {x0, y1, z1}}, // +Z
		{{x1, y0, z0}, {x0, y0, z0}, {x0, y1, z0}, {x1, y1, z0}}, // -Z
		{{x1, y0, z1}, {x1, y0, z0}, {x1, y1, z0}, {x1, y1, z1}}, // +X
		{{x0, y0, z0}, {x0, y0, z1}, {x0, y1, z1}, {x0, y1, z0}}, // -X
		{{x0, y1, z1}, {x1, y1, z1}, {x1, y1, z0}, {x0, y1, z0}}, // +Y
		{{x0, y0, z0}, {x1, y0, z0}, {x1, y0, z1}, {x0, y0, z1}}, // -Y
	}
	for _, f := range faces {
		dst = AppendQuad(dst, f, QuadUVs(f, textureScale))
	}
	return dst
}
