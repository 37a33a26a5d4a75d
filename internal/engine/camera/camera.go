// Package camera provides camera implementations for 3D rendering.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/levelkit/internal/engine/picking"
)

var worldUp = mgl32.Vec3{0, 1, 0}

// FirstPersonCamera walks through the level at eye height.
type FirstPersonCamera struct {
	Position mgl32.Vec3
	Yaw      float32 // Horizontal angle (radians), 0 looks down -Z
	Pitch    float32 // Vertical angle (radians)

	FOV       float32 // Vertical field of view (radians)
	Near, Far float32

	MaxPitch        float32
	MoveSpeed       float32 // units per second
	LookSensitivity float32 // radians per pixel
}

// NewFirstPersonCamera creates a camera at position with default settings.
func NewFirstPersonCamera(position mgl32.Vec3) *FirstPersonCamera {
	return &FirstPersonCamera{
		Position:        position,
		FOV:             mgl32.DegToRad(70),
		Near:            0.05,
		Far:             100,
		MaxPitch:        1.5,
		MoveSpeed:       3,
		LookSensitivity: 0.003,
	}
}

// Forward returns the unit view direction.
func (c *FirstPersonCamera) Forward() mgl32.Vec3 {
	cp := float32(gomath.Cos(float64(c.Pitch)))
	return mgl32.Vec3{
		-float32(gomath.Sin(float64(c.Yaw))) * cp,
		float32(gomath.Sin(float64(c.Pitch))),
		-float32(gomath.Cos(float64(c.Yaw))) * cp,
	}
}

// Right returns the unit right vector on the XZ plane.
func (c *FirstPersonCamera) Right() mgl32.Vec3 {
	return mgl32.Vec3{
		float32(gomath.Cos(float64(c.Yaw))),
		0,
		-float32(gomath.Sin(float64(c.Yaw))),
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c *FirstPersonCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Forward()), worldUp)
}

// ProjectionMatrix returns a perspective projection for the aspect ratio.
func (c *FirstPersonCamera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(c.FOV, aspect, c.Near, c.Far)
}

// Ray returns the look ray through the screen center.
func (c *FirstPersonCamera) Ray() picking.Ray {
	return picking.NewRay(c.Position, c.Forward())
}

// HandleMouse turns the camera by a mouse delta in pixels.
func (c *FirstPersonCamera) HandleMouse(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.LookSensitivity
	c.Pitch = mgl32.Clamp(c.Pitch-deltaY*c.LookSensitivity, -c.MaxPitch, c.MaxPitch)
}

// HandleMovement moves on the XZ plane relative to the view direction.
// forward, right and up are in -1..1.
func (c *FirstPersonCamera) HandleMovement(forward, right, up, dt float32) {
	flat := mgl32.Vec3{-float32(gomath.Sin(float64(c.Yaw))), 0, -float32(gomath.Cos(float64(c.Yaw)))}
	step := flat.Mul(forward).Add(c.Right().Mul(right)).Add(worldUp.Mul(up))
	c.Position = c.Position.Add(step.Mul(c.MoveSpeed * dt))
}

// OrbitCamera orbits around a center point. The viewer uses it for the
// overview mode.
type OrbitCamera struct {
	Center mgl32.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        12.0,
		RotationX:       0.8,
		MinDistance:     2.0,
		MaxDistance:     80.0,
		MinPitch:        0.1,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() mgl32.Vec3 {
	x := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Sin(float64(c.RotationY)))
	y := c.Distance * float32(gomath.Sin(float64(c.RotationX)))
	z := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Cos(float64(c.RotationY)))
	return c.Center.Add(mgl32.Vec3{x, y, z})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Center, worldUp)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX = mgl32.Clamp(c.RotationX+deltaY*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = mgl32.Clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// FitToBounds centers the camera on a bounding box and backs off to see it.
func (c *OrbitCamera) FitToBounds(lo, hi mgl32.Vec3) {
	c.Center = lo.Add(hi).Mul(0.5)
	size := hi.Sub(lo)
	c.Distance = mgl32.Clamp(max(size.X(), size.Z())*1.2, c.MinDistance, c.MaxDistance)
	c.RotationX = 0.8
	c.RotationY = 0
}
