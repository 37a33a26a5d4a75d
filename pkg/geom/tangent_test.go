package geom

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func nearVec3(a, b mgl32.Vec3, tol float32) bool {
	for i := 0; i < 3; i++ {
		if mgl32.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

func TestNormalFromThreePoints(t *testing.T) {
	got := NormalFromThreePoints(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0})
	want := mgl32.Vec3{0, 0, 1}
	if !nearVec3(got, want, 1e-6) {
		t.Errorf("NormalFromThreePoints() = %v, want %v", got, want)
	}
}

func TestSetNormalsAndTangentsReconstructsEdges(t *testing.T) {
	triangles := [][3]Vertex{
		{
			{Position: mgl32.Vec3{0, 0, 0}, UV: mgl32.Vec2{0, 0}},
			{Position: mgl32.Vec3{4, 0, 0}, UV: mgl32.Vec2{4, 0}},
			{Position: mgl32.Vec3{4, 3, 0}, UV: mgl32.Vec2{4, 3}},
		},
		{
			{Position: mgl32.Vec3{1, 2, 3}, UV: mgl32.Vec2{0.1, 0.7}},
			{Position: mgl32.Vec3{2, 5, -1}, UV: mgl32.Vec2{0.9, 0.2}},
			{Position: mgl32.Vec3{-3, 1, 2}, UV: mgl32.Vec2{0.4, 1.3}},
		},
		{
			{Position: mgl32.Vec3{0, 1, 0}, UV: mgl32.Vec2{0, 0}},
			{Position: mgl32.Vec3{0, 1, 2}, UV: mgl32.Vec2{0, 2}},
			{Position: mgl32.Vec3{3, 1, 2}, UV: mgl32.Vec2{3, 2}},
		},
	}

	for i, tri := range triangles {
		v0, v1, v2 := tri[0], tri[1], tri[2]
		SetNormalsAndTangents(&v0, &v1, &v2)

		for _, v := range []Vertex{v1, v2} {
			if v.Normal != v0.Normal || v.Tangent != v0.Tangent || v.Bitangent != v0.Bitangent {
				t.Fatalf("triangle %d: basis differs between vertices", i)
			}
		}

		for _, other := range []Vertex{v1, v2} {
			dPos := other.Position.Sub(v0.Position)
			dUV := other.UV.Sub(v0.UV)
			rebuilt := v0.Tangent.Mul(dUV.X()).Add(v0.Bitangent.Mul(dUV.Y()))
			if !nearVec3(rebuilt, dPos, 1e-4) {
				t.Errorf("triangle %d: T*du + B*dv = %v, want edge %v", i, rebuilt, dPos)
			}
		}

		if l := v0.Normal.Len(); mgl32.Abs(l-1) > 1e-5 {
			t.Errorf("triangle %d: normal length = %v, want 1", i, l)
		}
		if d := v0.Normal.Dot(v0.Tangent); mgl32.Abs(d) > 1e-4 {
			t.Errorf("triangle %d: normal . tangent = %v, want 0", i, d)
		}
		if d := v0.Normal.Dot(v0.Bitangent); mgl32.Abs(d) > 1e-4 {
			t.Errorf("triangle %d: normal . bitangent = %v, want 0", i, d)
		}
	}
}

func TestUVArea(t *testing.T) {
	v0 := Vertex{UV: mgl32.Vec2{0, 0}}
	v1 := Vertex{UV: mgl32.Vec2{1, 0}}
	v2 := Vertex{UV: mgl32.Vec2{2, 0}}
	if a := UVArea(&v0, &v1, &v2); a != 0 {
		t.Errorf("UVArea(collinear) = %v, want 0", a)
	}
	v2.UV = mgl32.Vec2{0, 1}
	if a := UVArea(&v0, &v1, &v2); a != 1 {
		t.Errorf("UVArea() = %v, want 1", a)
	}
}
