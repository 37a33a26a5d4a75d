package picking

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/levelkit/pkg/geom"
)

func TestIntersectAABB(t *testing.T) {
	box := NewAABB(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{-1, -1, -1})

	tests := []struct {
		name  string
		ray   Ray
		hit   bool
		wantT float32
	}{
		{"front", NewRay(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1}), true, 4},
		{"inside", NewRay(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}), true, 1},
		{"miss", NewRay(mgl32.Vec3{0, 3, 5}, mgl32.Vec3{0, 0, -1}), false, 0},
		{"behind", NewRay(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 1}), false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := tt.ray.IntersectAABB(box)
			if hit != tt.hit || got != tt.wantT {
				t.Errorf("IntersectAABB() = %v, %v; want %v, %v", got, hit, tt.wantT, tt.hit)
			}
		})
	}
}

func TestIntersectPlaneY(t *testing.T) {
	r := NewRay(mgl32.Vec3{0, 10, 0}, mgl32.Vec3{1, -1, 0})
	x, z, ok := r.IntersectPlaneY(0)
	if !ok || mgl32.Abs(x-10) > 1e-4 || z != 0 {
		t.Errorf("IntersectPlaneY(0) = %v, %v, %v", x, z, ok)
	}
	if _, _, ok := NewRay(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}).IntersectPlaneY(1); ok {
		t.Error("parallel ray should miss")
	}
}

func TestIntersectTriangle(t *testing.T) {
	a, b, c := mgl32.Vec3{0, 0, 0}, mgl32.Vec3{2, 0, 0}, mgl32.Vec3{0, 2, 0}

	tests := []struct {
		name  string
		ray   Ray
		hit   bool
		wantT float32
	}{
		{"front face", NewRay(mgl32.Vec3{0.5, 0.5, 3}, mgl32.Vec3{0, 0, -1}), true, 3},
		{"back face", NewRay(mgl32.Vec3{0.5, 0.5, -2}, mgl32.Vec3{0, 0, 1}), true, 2},
		{"outside", NewRay(mgl32.Vec3{1.5, 1.5, 3}, mgl32.Vec3{0, 0, -1}), false, 0},
		{"parallel", NewRay(mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}), false, 0},
		{"behind", NewRay(mgl32.Vec3{0.5, 0.5, 3}, mgl32.Vec3{0, 0, 1}), false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := tt.ray.IntersectTriangle(a, b, c)
			if hit != tt.hit || (hit && mgl32.Abs(got-tt.wantT) > 1e-5) {
				t.Errorf("IntersectTriangle() = %v, %v; want %v, %v", got, hit, tt.wantT, tt.hit)
			}
		})
	}
}

func TestIntersectMeshPicksClosest(t *testing.T) {
	quad := []geom.Vertex{
		{Position: mgl32.Vec3{0, 0, 0}},
		{Position: mgl32.Vec3{1, 0, 0}},
		{Position: mgl32.Vec3{0, 1, 0}},
	}
	mesh := append(append([]geom.Vertex{}, quad...),
		geom.Vertex{Position: mgl32.Vec3{0, 0, 2}},
		geom.Vertex{Position: mgl32.Vec3{1, 0, 2}},
		geom.Vertex{Position: mgl32.Vec3{0, 1, 2}})

	r := NewRay(mgl32.Vec3{0.2, 0.2, 5}, mgl32.Vec3{0, 0, -1})
	got, ok := r.IntersectMesh(mesh, mgl32.Ident4())
	if !ok || mgl32.Abs(got-3) > 1e-5 {
		t.Errorf("IntersectMesh() = %v, %v; want 3, true", got, ok)
	}

	got, ok = r.IntersectMesh(quad, mgl32.Translate3D(0, 0, 1))
	if !ok || mgl32.Abs(got-4) > 1e-5 {
		t.Errorf("translated IntersectMesh() = %v, %v; want 4, true", got, ok)
	}
}

func TestScreenToRayCenter(t *testing.T) {
	eye := mgl32.Vec3{0, 1, 5}
	view := mgl32.LookAtV(eye, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 1, 0})
	proj := mgl32.Perspective(mgl32.DegToRad(60), 1, 0.1, 100)
	inv := proj.Mul4(view).Inv()

	r := ScreenToRay(400, 300, 800, 600, inv)
	d := r.Direction.Sub(mgl32.Vec3{0, 0, -1})
	if d.Len() > 1e-3 {
		t.Errorf("center ray direction = %v, want [0 0 -1]", r.Direction)
	}
	if mgl32.Abs(r.Origin.X()) > 1e-3 || mgl32.Abs(r.Origin.Y()-1) > 1e-3 {
		t.Errorf("center ray origin = %v, want on the view axis", r.Origin)
	}
}
