package picking

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/levelkit/pkg/geom"
)

const triangleEpsilon = 1e-7

// IntersectTriangle returns the distance along the ray to triangle abc using
// the Moller-Trumbore test. Both faces are hit; hits behind the origin are
// rejected.
func (r Ray) IntersectTriangle(a, b, c mgl32.Vec3) (float32, bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	if mgl32.Abs(det) < triangleEpsilon {
		return 0, false // parallel
	}
	inv := 1 / det

	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(q) * inv
	if t < 0 {
		return 0, false
	}
	return t, true
}

// IntersectMesh tests a triangle-list mesh transformed by model and returns
// the closest hit distance.
func (r Ray) IntersectMesh(vertices []geom.Vertex, model mgl32.Mat4) (float32, bool) {
	best := float32(0)
	hit := false
	for i := 0; i+2 < len(vertices); i += 3 {
		a := mgl32.TransformCoordinate(vertices[i].Position, model)
		b := mgl32.TransformCoordinate(vertices[i+1].Position, model)
		c := mgl32.TransformCoordinate(vertices[i+2].Position, model)
		if t, ok := r.IntersectTriangle(a, b, c); ok && (!hit || t < best) {
			best, hit = t, true
		}
	}
	return best, hit
}
