// Package demo builds a small two-room level used by the viewer and the
// command line tool.
package demo

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/levelkit/internal/config"
	"github.com/Faultbox/levelkit/internal/level"
	"github.com/Faultbox/levelkit/internal/object"
	"github.com/Faultbox/levelkit/internal/scene"
	"github.com/Faultbox/levelkit/pkg/geom"
)

// Material indices.
const (
	MaterialPlaster = iota
	MaterialWood
	MaterialTile
	MaterialDarkWood
)

// Spawn is the suggested eye position.
var Spawn = mgl32.Vec3{2, 1.6, 2.5}

// DoorHinge is where the connecting door is hung.
var DoorHinge = mgl32.Vec3{6, 0, 2}

// Build adds the level to r. r must be initialized and empty.
func Build(r *scene.Registry, cfg config.SceneConfig) error {
	h := cfg.WallHeight
	if h <= 0 {
		h = level.DefaultWallHeight
	}

	var errs []error
	wall := func(x1, z1, x2, z2, y, height float32) {
		w, err := level.NewWall(mgl32.Vec3{x1, y, z1}, mgl32.Vec3{x2, y, z2}, height, MaterialPlaster)
		if err == nil {
			err = r.AddWall(w)
		}
		errs = append(errs, err)
	}

	// Outer shell, wound so every face points inside.
	wall(0, 0, 10, 0, 0, h)
	wall(10, 0, 10, 5, 0, h)
	wall(10, 5, 0, 5, 0, h)
	wall(0, 5, 0, 0, 0, h)

	// Divider at x=6 with a doorway, faced on both sides.
	doorTop := float32(level.DoorHeight)
	z0, z1 := DoorHinge.Z(), DoorHinge.Z()+level.DoorWidth
	for _, seg := range [][2]float32{{0, z0}, {z1, 5}} {
		wall(6, seg[1], 6, seg[0], 0, h)
		wall(6, seg[0], 6, seg[1], 0, h)
	}
	if h > doorTop {
		wall(6, z1, 6, z0, doorTop, h-doorTop)
		wall(6, z0, 6, z1, doorTop, h-doorTop)
	}

	for _, room := range [][4]float32{{0, 0, 6, 5}, {6, 0, 10, 5}} {
		f, err := level.NewFloor(room[0], room[1], room[2], room[3], 0, MaterialTile, 1)
		if err == nil {
			err = r.AddFloor(f)
		}
		errs = append(errs, err)

		c, err := level.NewCeiling(room[0], room[1], room[2], room[3], h, MaterialPlaster)
		if err == nil {
			err = r.AddCeiling(c)
		}
		errs = append(errs, err)
	}

	// Panel +X runs along +Z so the door fills the gap.
	door := level.NewDoor(DoorHinge, -math.Pi/2)
	door.MaterialIndex = MaterialWood
	door.FrameMaterialIndex = MaterialDarkWood
	door.SwingSpeed, door.OpenRotation = cfg.DoorSwingSpeed, cfg.DoorOpenRotation
	errs = append(errs, r.AddDoor(door))

	for _, m := range Models() {
		errs = append(errs, r.AddModel(m))
	}

	crate := object.NewGameObject("crate", "crate", mgl32.Vec3{1, 0, 1})
	crate.MaterialIndex = MaterialWood
	stacked := object.NewGameObject("crate", "crate", mgl32.Vec3{1.1, 0.6, 1.05})
	stacked.Rotation = mgl32.Vec3{0, 0.4, 0}
	stacked.Scale = mgl32.Vec3{0.6, 0.6, 0.6}
	stacked.MaterialIndex = MaterialWood
	table := object.NewGameObject("table", "table", mgl32.Vec3{8, 0, 3})
	table.MaterialIndex = MaterialDarkWood
	for _, o := range []object.GameObject{crate, stacked, table} {
		errs = append(errs, r.AddGameObject(o))
	}

	fan := object.NewAnimatedGameObject("ceiling_fan", "fan", mgl32.Vec3{3, h - 0.3, 2.5}, FanSpin())
	fan.MaterialIndex = MaterialDarkWood
	errs = append(errs, r.AddAnimatedGameObject(fan))

	return errors.Join(errs...)
}

// Models returns the shapes the level instances: trims, props and the fan.
func Models() []object.Model {
	return []object.Model{
		{Name: scene.FloorTrimModel, Vertices: geom.AppendBox(nil, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0.1, 0.02}, 1)},
		{Name: scene.CeilingTrimModel, Vertices: geom.AppendBox(nil, mgl32.Vec3{0, -0.08, 0}, mgl32.Vec3{1, 0, 0.04}, 1)},
		{Name: "crate", Vertices: geom.AppendBox(nil, mgl32.Vec3{-0.3, 0, -0.3}, mgl32.Vec3{0.3, 0.6, 0.3}, 0.6)},
		{Name: "table", Vertices: table()},
		{Name: "fan", Vertices: geom.AppendBox(nil, mgl32.Vec3{-0.6, -0.02, -0.08}, mgl32.Vec3{0.6, 0.02, 0.08}, 1)},
	}
}

func table() []geom.Vertex {
	const top, leg, hw, hd = 0.75, 0.05, 0.6, 0.4
	v := geom.AppendBox(nil, mgl32.Vec3{-hw, top - 0.04, -hd}, mgl32.Vec3{hw, top, hd}, 1)
	for _, c := range [][2]float32{{-hw, -hd}, {hw - leg, -hd}, {-hw, hd - leg}, {hw - leg, hd - leg}} {
		v = geom.AppendBox(v, mgl32.Vec3{c[0], 0, c[1]}, mgl32.Vec3{c[0] + leg, top - 0.04, c[1] + leg}, 1)
	}
	return v
}

// FanSpin is one turn per four seconds in quarter-turn keys.
func FanSpin() object.Animation {
	anim := object.Animation{Name: "spin", Duration: 4}
	for i := 0; i <= 4; i++ {
		anim.RotKeys = append(anim.RotKeys, object.RotKey{
			Time:     float32(i),
			Rotation: mgl32.QuatRotate(float32(i)*math.Pi/2, geom.Up),
		})
	}
	return anim
}
