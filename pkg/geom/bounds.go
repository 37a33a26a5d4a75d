package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// EmptyBounds returns inverted bounds that any point will extend.
func EmptyBounds() Bounds {
	inf := float32(math.Inf(1))
	return Bounds{
		Min: mgl32.Vec3{inf, inf, inf},
		Max: mgl32.Vec3{-inf, -inf, -inf},
	}
}

// IsEmpty reports whether no point has been added.
func (b Bounds) IsEmpty() bool {
	return b.Min.X() > b.Max.X() || b.Min.Y() > b.Max.Y() || b.Min.Z() > b.Max.Z()
}

// Extend grows the bounds to contain p.
func (b *Bounds) Extend(p mgl32.Vec3) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

// ExtendVertices grows the bounds to contain every vertex position.
func (b *Bounds) ExtendVertices(vertices []Vertex) {
	for i := range vertices {
		b.Extend(vertices[i].Position)
	}
}

// Size returns the extent along each axis.
func (b Bounds) Size() mgl32.Vec3 {
	if b.IsEmpty() {
		return mgl32.Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint of the bounds.
func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Expand returns the bounds grown by pad on every side.
func (b Bounds) Expand(pad float32) Bounds {
	p := mgl32.Vec3{pad, pad, pad}
	return Bounds{Min: b.Min.Sub(p), Max: b.Max.Add(p)}
}

// Transform returns the bounds of the eight corners transformed by m.
func (b Bounds) Transform(m mgl32.Mat4) Bounds {
	if b.IsEmpty() {
		return b
	}
	out := EmptyBounds()
	for i := 0; i < 8; i++ {
		corner := mgl32.Vec3{b.Min[0], b.Min[1], b.Min[2]}
		for axis := 0; axis < 3; axis++ {
			if i&(1<<axis) != 0 {
				corner[axis] = b.Max[axis]
			}
		}
		out.Extend(mgl32.TransformCoordinate(corner, m))
	}
	return out
}
