package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/levelkit/internal/engine/lighting"
	"github.com/Faultbox/levelkit/internal/pointcloud"
	"github.com/Faultbox/levelkit/internal/rtscene"
)

func TestPack(t *testing.T) {
	tri := []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	s, err := rtscene.Pack([]rtscene.Placement{
		{Key: "wall/0", Vertices: tri, Model: mgl32.Ident4()},
		{Key: "door/panel", Vertices: tri, Model: mgl32.Translate3D(1, 0, 0)},
		{Key: "door/panel", Vertices: tri, Model: mgl32.Translate3D(2, 0, 0)},
	})
	if err != nil {
		t.Fatalf("Pack() error: %v", err)
	}

	var buf bytes.Buffer
	Pack(&buf, s)
	out := buf.String()

	for _, want := range []string{"wall/0", "door/panel", "Instances", "TOTAL"} {
		if !strings.Contains(strings.ToUpper(out), strings.ToUpper(want)) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "door/panel | 3    | 3        | 2") {
		t.Errorf("door/panel row wrong:\n%s", out)
	}
}

func TestCloud(t *testing.T) {
	points := []pointcloud.CloudPoint{
		{Normal: mgl32.Vec4{0, 1, 0, 0}},
		{Normal: mgl32.Vec4{0, 1, 0, 0}},
		{Normal: mgl32.Vec4{0, -1, 0, 0}},
		{Normal: mgl32.Vec4{-0.9, 0.1, 0.2, 0}},
	}
	var buf bytes.Buffer
	Cloud(&buf, points)
	out := buf.String()

	for _, want := range []string{"+Y     | 2", "-Y     | 1", "-X     | 1", "+Z     | 0"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDominantAxis(t *testing.T) {
	tests := []struct {
		n    mgl32.Vec3
		want int
	}{
		{mgl32.Vec3{1, 0, 0}, 0},
		{mgl32.Vec3{-1, 0, 0}, 1},
		{mgl32.Vec3{0.1, 0.9, 0}, 2},
		{mgl32.Vec3{0, -1, 0}, 3},
		{mgl32.Vec3{0, 0.2, 0.7}, 4},
		{mgl32.Vec3{0, 0, -1}, 5},
	}
	for _, tt := range tests {
		if got := dominantAxis(tt.n); got != tt.want {
			t.Errorf("dominantAxis(%v) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestLights(t *testing.T) {
	var buf bytes.Buffer
	Lights(&buf, lighting.DefaultPresets())
	out := buf.String()
	for _, want := range []string{"interior", "night", "210/25", "off"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
