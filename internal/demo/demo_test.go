package demo

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/levelkit/internal/config"
	"github.com/Faultbox/levelkit/internal/engine/picking"
	"github.com/Faultbox/levelkit/internal/scene"
)

func buildDemo(t *testing.T) *scene.Registry {
	t.Helper()
	cfg := config.Default().Scene
	r := scene.New(cfg, nil)
	if err := r.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	t.Cleanup(r.Close)
	if err := Build(r, cfg); err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if err := r.RecreateDataStructures(); err != nil {
		t.Fatalf("RecreateDataStructures() error: %v", err)
	}
	return r
}

func TestBuildCounts(t *testing.T) {
	r := buildDemo(t)

	tests := []struct {
		name      string
		got, want int
	}{
		{"walls", len(r.Walls()), 10},
		{"floors", len(r.Floors()), 2},
		{"ceilings", len(r.Ceilings()), 2},
		{"doors", len(r.Doors()), 1},
		{"game objects", len(r.GameObjects()), 3},
		{"animated", len(r.AnimatedGameObjects()), 1},
		{"models", len(r.Models()), 5},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %d, want %d", tt.name, tt.got, tt.want)
		}
	}

	// Every wall gets one trim of each kind; both crates share a mesh.
	stats := r.RTScene().Stats()
	if stats.Meshes != 21 || stats.Instances != 40 {
		t.Errorf("rt stats = %+v, want 21 meshes and 40 instances", stats)
	}
	if len(r.CloudPoints()) == 0 {
		t.Error("empty point cloud")
	}
}

func TestDemoDoorReachable(t *testing.T) {
	r := buildDemo(t)

	res := r.CastCameraRay(picking.NewRay(mgl32.Vec3{4, 1, 2.4}, mgl32.Vec3{1, 0, 0}))
	if res.Kind != scene.HitDoor {
		t.Fatalf("result = %+v, want door", res)
	}
	if !r.CursorShouldBeInterect() {
		t.Error("demo door is not interactable from room A")
	}
}

func TestFirstCrateWins(t *testing.T) {
	r := buildDemo(t)
	crate, ok := r.GetGameObjectByName("crate")
	if !ok {
		t.Fatal("crate not found")
	}
	if crate.Position != (mgl32.Vec3{1, 0, 1}) {
		t.Errorf("crate position = %v, want the floor crate", crate.Position)
	}
}

func TestFanSpin(t *testing.T) {
	anim := FanSpin()
	got := mgl32.TransformCoordinate(mgl32.Vec3{1, 0, 0}, anim.Matrix(1))
	if want := (mgl32.Vec3{0, 0, -1}); got.Sub(want).Len() > 1e-4 {
		t.Errorf("quarter turn maps +X to %v, want %v", got, want)
	}
}
