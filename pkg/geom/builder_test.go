package geom

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestAppendQuad(t *testing.T) {
	corners := [4]mgl32.Vec3{{0, 0, 0}, {4, 0, 0}, {4, 3, 0}, {0, 3, 0}}
	verts := AppendQuad(nil, corners, QuadUVs(corners, 1))

	if len(verts) != 6 {
		t.Fatalf("AppendQuad() produced %d vertices, want 6", len(verts))
	}
	for i, v := range verts {
		if !nearVec3(v.Normal, mgl32.Vec3{0, 0, 1}, 1e-6) {
			t.Errorf("vertex %d normal = %v, want (0,0,1)", i, v.Normal)
		}
		if !nearVec3(v.Tangent, mgl32.Vec3{1, 0, 0}, 1e-6) {
			t.Errorf("vertex %d tangent = %v, want (1,0,0)", i, v.Tangent)
		}
		if !nearVec3(v.Bitangent, mgl32.Vec3{0, 1, 0}, 1e-6) {
			t.Errorf("vertex %d bitangent = %v, want (0,1,0)", i, v.Bitangent)
		}
	}
	if verts[2].UV != (mgl32.Vec2{4, 3}) {
		t.Errorf("top corner UV = %v, want (4,3)", verts[2].UV)
	}
}

func TestAppendBoxFacesOutward(t *testing.T) {
	min := mgl32.Vec3{-1, 0, -0.5}
	max := mgl32.Vec3{1, 2, 0.5}
	verts := AppendBox(nil, min, max, 1)
	if len(verts) != 36 {
		t.Fatalf("AppendBox() produced %d vertices, want 36", len(verts))
	}

	center := min.Add(max).Mul(0.5)
	for i := 0; i < len(verts); i += 3 {
		faceCenter := verts[i].Position.Add(verts[i+1].Position).Add(verts[i+2].Position).Mul(1.0 / 3)
		outward := faceCenter.Sub(center)
		if verts[i].Normal.Dot(outward) <= 0 {
			t.Errorf("triangle %d normal %v points inward", i/3, verts[i].Normal)
		}
	}
}

func TestBounds(t *testing.T) {
	b := EmptyBounds()
	if !b.IsEmpty() {
		t.Fatal("EmptyBounds() should be empty")
	}
	b.Extend(mgl32.Vec3{1, -2, 3})
	b.Extend(mgl32.Vec3{-1, 4, 0})
	if b.Min != (mgl32.Vec3{-1, -2, 0}) || b.Max != (mgl32.Vec3{1, 4, 3}) {
		t.Errorf("Bounds = %v..%v", b.Min, b.Max)
	}
	if got := b.Size(); got != (mgl32.Vec3{2, 6, 3}) {
		t.Errorf("Size() = %v, want (2,6,3)", got)
	}

	moved := b.Transform(mgl32.Translate3D(10, 0, 0).Mul4(mgl32.Scale3D(2, 1, 1)))
	if moved.Min != (mgl32.Vec3{8, -2, 0}) || moved.Max != (mgl32.Vec3{12, 4, 3}) {
		t.Errorf("Transform() = %v..%v", moved.Min, moved.Max)
	}
	if !EmptyBounds().Transform(mgl32.Ident4()).IsEmpty() {
		t.Error("transformed empty bounds should stay empty")
	}
}

func TestTransform(t *testing.T) {
	verts := AppendQuad(nil,
		[4]mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
		[4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}})
	m := mgl32.Translate3D(5, 0, 0).Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(90)))
	out := Transform(verts, m)

	if !nearVec3(out[1].Position, mgl32.Vec3{5, 0, -1}, 1e-5) {
		t.Errorf("transformed position = %v, want (5,0,-1)", out[1].Position)
	}
	if !nearVec3(out[0].Normal, mgl32.Vec3{1, 0, 0}, 1e-5) {
		t.Errorf("transformed normal = %v, want (1,0,0)", out[0].Normal)
	}
}
