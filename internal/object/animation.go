package object

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// RotKey is a rotation keyframe at Time seconds.
type RotKey struct {
	Time     float32
	Rotation mgl32.Quat
}

// VecKey is a translation or scale keyframe at Time seconds.
type VecKey struct {
	Time  float32
	Value mgl32.Vec3
}

// Animation is a rigid keyframed transform. Keys must be sorted by time.
type Animation struct {
	Name      string
	Duration  float32
	PosKeys   []VecKey
	RotKeys   []RotKey
	ScaleKeys []VecKey
}

// Matrix returns the animated local transform at time t.
func (a *Animation) Matrix(t float32) mgl32.Mat4 {
	pos := interpolateVecKeys(a.PosKeys, t, mgl32.Vec3{})
	rot := interpolateRotKeys(a.RotKeys, t)
	scale := interpolateVecKeys(a.ScaleKeys, t, mgl32.Vec3{1, 1, 1})
	return mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()).
		Mul4(rot.Mat4()).
		Mul4(mgl32.Scale3D(scale.X(), scale.Y(), scale.Z()))
}

// surrounding returns the keys around t; prev == next when t is outside the
// key range or only one key exists.
func surrounding(n int, keyTime func(int) float32, t float32) (prev, next int, frac float32) {
	for i := 0; i < n; i++ {
		if keyTime(i) > t {
			next = i
			break
		}
		prev = i
		next = i
	}
	if prev == next {
		return prev, next, 0
	}
	t0, t1 := keyTime(prev), keyTime(next)
	if t1 != t0 {
		frac = (t - t0) / (t1 - t0)
	}
	return prev, next, frac
}

func interpolateVecKeys(keys []VecKey, t float32, fallback mgl32.Vec3) mgl32.Vec3 {
	if len(keys) == 0 {
		return fallback
	}
	prev, next, frac := surrounding(len(keys), func(i int) float32 { return keys[i].Time }, t)
	v0, v1 := keys[prev].Value, keys[next].Value
	return v0.Add(v1.Sub(v0).Mul(frac))
}

func interpolateRotKeys(keys []RotKey, t float32) mgl32.Quat {
	if len(keys) == 0 {
		return mgl32.QuatIdent()
	}
	prev, next, frac := surrounding(len(keys), func(i int) float32 { return keys[i].Time }, t)
	if prev == next {
		return keys[prev].Rotation
	}
	return mgl32.QuatSlerp(keys[prev].Rotation, keys[next].Rotation, frac)
}

// AnimatedGameObject is a game object driven by a rigid animation.
type AnimatedGameObject struct {
	GameObject
	Animation Animation
	Time      float32
	Speed     float32
	Loop      bool
	Paused    bool
}

// NewAnimatedGameObject creates a looping animated object.
func NewAnimatedGameObject(name, modelName string, position mgl32.Vec3, anim Animation) AnimatedGameObject {
	return AnimatedGameObject{
		GameObject: NewGameObject(name, modelName, position),
		Animation:  anim,
		Speed:      1,
		Loop:       true,
	}
}

// Update advances the animation clock by dt seconds.
func (o *AnimatedGameObject) Update(dt float32) {
	if o.Paused || dt <= 0 {
		return
	}
	o.Time += dt * o.Speed
	d := o.Animation.Duration
	if d <= 0 {
		o.Time = 0
		return
	}
	if o.Loop {
		o.Time = float32(math.Mod(float64(o.Time), float64(d)))
		if o.Time < 0 {
			o.Time += d
		}
		if o.Time >= d {
			o.Time = 0
		}
		return
	}
	o.Time = mgl32.Clamp(o.Time, 0, d)
}

// Finished reports whether a non-looping animation reached its end.
func (o *AnimatedGameObject) Finished() bool {
	return !o.Loop && o.Time >= o.Animation.Duration
}

// ModelMatrix returns the placement matrix times the animated transform.
func (o *AnimatedGameObject) ModelMatrix() mgl32.Mat4 {
	return o.GameObject.ModelMatrix().Mul4(o.Animation.Matrix(o.Time))
}
