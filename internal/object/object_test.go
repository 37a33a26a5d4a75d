package object

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/levelkit/pkg/geom"
)

func closeTo(a, b mgl32.Vec3) bool {
	return a.Sub(b).Len() < 1e-4
}

func TestGameObjectModelMatrix(t *testing.T) {
	o := NewGameObject("crate", "box", mgl32.Vec3{1, 0, 2})
	o.Scale = mgl32.Vec3{2, 2, 2}
	o.Rotation = mgl32.Vec3{0, mgl32.DegToRad(90), 0}

	got := mgl32.TransformCoordinate(mgl32.Vec3{1, 0, 0}, o.ModelMatrix())
	// Scale to (2,0,0), yaw 90 to (0,0,-2), then translate.
	if !closeTo(got, mgl32.Vec3{1, 0, 0}) {
		t.Errorf("transformed point = %v, want [1 0 0]", got)
	}
}

func TestModelBounds(t *testing.T) {
	m := Model{Name: "box", Vertices: geom.AppendBox(nil, mgl32.Vec3{-1, 0, -1}, mgl32.Vec3{1, 2, 1}, 1)}
	b := m.Bounds()
	if b.Min != (mgl32.Vec3{-1, 0, -1}) || b.Max != (mgl32.Vec3{1, 2, 1}) {
		t.Errorf("Bounds() = %+v", b)
	}
	if ShapeKey("box") != "model/box" {
		t.Errorf("ShapeKey() = %q", ShapeKey("box"))
	}
}

func TestAnimationInterpolation(t *testing.T) {
	anim := Animation{
		Duration: 2,
		PosKeys: []VecKey{
			{Time: 0, Value: mgl32.Vec3{0, 0, 0}},
			{Time: 2, Value: mgl32.Vec3{4, 0, 0}},
		},
		RotKeys: []RotKey{
			{Time: 0, Rotation: mgl32.QuatIdent()},
			{Time: 2, Rotation: mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})},
		},
	}

	tests := []struct {
		time float32
		want mgl32.Vec3 // image of local (1,0,0)
	}{
		{0, mgl32.Vec3{1, 0, 0}},
		{1, mgl32.Vec3{2 + 0.70710677, 0, -0.70710677}},
		{2, mgl32.Vec3{4, 0, -1}},
		{5, mgl32.Vec3{4, 0, -1}}, // past the last key holds it
	}
	for _, tt := range tests {
		got := mgl32.TransformCoordinate(mgl32.Vec3{1, 0, 0}, anim.Matrix(tt.time))
		if !closeTo(got, tt.want) {
			t.Errorf("Matrix(%v) maps (1,0,0) to %v, want %v", tt.time, got, tt.want)
		}
	}
}

func TestAnimationEmptyIsIdentity(t *testing.T) {
	var anim Animation
	if anim.Matrix(1) != mgl32.Ident4() {
		t.Errorf("empty animation matrix = %v", anim.Matrix(1))
	}
}

func TestAnimatedUpdateLoops(t *testing.T) {
	o := NewAnimatedGameObject("fan", "blade", mgl32.Vec3{}, Animation{Duration: 1})
	o.Update(2.5)
	if mgl32.Abs(o.Time-0.5) > 1e-5 {
		t.Errorf("looped Time = %v, want 0.5", o.Time)
	}

	o.Paused = true
	o.Update(0.2)
	if mgl32.Abs(o.Time-0.5) > 1e-5 {
		t.Errorf("paused Time = %v, want 0.5", o.Time)
	}
}

func TestAnimatedUpdateLargeStep(t *testing.T) {
	tests := []struct {
		name     string
		duration float32
		speed    float32
		dt       float32
	}{
		{"huge step", 1, 1, 3e7},
		{"fractional duration", 0.3, 1, 1e9},
		{"reverse", 0.7, -2, 5e6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewAnimatedGameObject("fan", "blade", mgl32.Vec3{}, Animation{Duration: tt.duration})
			o.Speed = tt.speed
			o.Update(tt.dt)
			if o.Time < 0 || o.Time >= tt.duration {
				t.Errorf("Time = %v, want within [0, %v)", o.Time, tt.duration)
			}
		})
	}
}

func TestAnimatedUpdateReverseWraps(t *testing.T) {
	o := NewAnimatedGameObject("fan", "blade", mgl32.Vec3{}, Animation{Duration: 1})
	o.Speed = -1
	o.Update(0.25)
	if mgl32.Abs(o.Time-0.75) > 1e-5 {
		t.Errorf("Time = %v, want 0.75", o.Time)
	}
}

func TestAnimatedUpdateClamps(t *testing.T) {
	o := NewAnimatedGameObject("lift", "platform", mgl32.Vec3{}, Animation{Duration: 1})
	o.Loop = false
	o.Update(3)
	if o.Time != 1 || !o.Finished() {
		t.Errorf("Time = %v, Finished = %v", o.Time, o.Finished())
	}
}

func TestAnimatedModelMatrix(t *testing.T) {
	anim := Animation{
		Duration: 1,
		PosKeys:  []VecKey{{Time: 0, Value: mgl32.Vec3{0, 1, 0}}},
	}
	o := NewAnimatedGameObject("bob", "box", mgl32.Vec3{3, 0, 0}, anim)
	got := mgl32.TransformCoordinate(mgl32.Vec3{}, o.ModelMatrix())
	if !closeTo(got, mgl32.Vec3{3, 1, 0}) {
		t.Errorf("origin maps to %v, want [3 1 0]", got)
	}
}
