package level

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/levelkit/internal/engine/gpu"
	"github.com/Faultbox/levelkit/pkg/geom"
)

// Door dimensions in world units. The panel hinges on the local Y axis and
// extends along +X.
const (
	DoorWidth      = 0.8
	DoorHeight     = 2.0
	DoorDepth      = 0.05
	FrameThickness = 0.08
	FrameDepth     = 0.12

	DefaultOpenRotation = 1.7
	DefaultSwingSpeed   = 5.0
)

// Keys of the local-space door shapes shared by every door.
const (
	PanelShapeKey = "door/panel"
	FrameShapeKey = "door/frame"
)

// DoorState is the swing state of a door.
type DoorState int

const (
	DoorClosed DoorState = iota
	DoorClosing
	DoorOpen
	DoorOpening
)

func (s DoorState) String() string {
	switch s {
	case DoorClosed:
		return "CLOSED"
	case DoorClosing:
		return "CLOSING"
	case DoorOpen:
		return "OPEN"
	case DoorOpening:
		return "OPENING"
	default:
		return "UNKNOWN"
	}
}

// Door is a hinged panel inside a fixed frame.
type Door struct {
	Position mgl32.Vec3
	// Facing is the placement yaw in radians.
	Facing float32
	// Rotation is the current swing angle, 0 when closed.
	Rotation     float32
	OpenRotation float32
	SwingSpeed   float32
	State        DoorState
	Locked       bool

	MaterialIndex      int
	FrameMaterialIndex int

	PanelVertices []geom.Vertex
	FrameVertices []geom.Vertex
	PanelBuffer   gpu.Buffer
	FrameBuffer   gpu.Buffer
}

// NewDoor creates a closed door at position with the given facing.
func NewDoor(position mgl32.Vec3, facing float32) Door {
	return Door{
		Position:     position,
		Facing:       facing,
		OpenRotation: DefaultOpenRotation,
		SwingSpeed:   DefaultSwingSpeed,
		State:        DoorClosed,
	}
}

// Interact toggles the swing direction. A door that is moving reverses.
// Locked doors ignore it.
func (d *Door) Interact() {
	if d.Locked {
		return
	}
	switch d.State {
	case DoorClosed, DoorClosing:
		d.State = DoorOpening
	case DoorOpen, DoorOpening:
		d.State = DoorClosing
	}
}

// Update advances the swing by dt seconds.
func (d *Door) Update(dt float32) {
	if dt <= 0 {
		return
	}
	step := d.SwingSpeed * dt
	switch d.State {
	case DoorOpening:
		var done bool
		d.Rotation, done = approach(d.Rotation, d.OpenRotation, step)
		if done {
			d.State = DoorOpen
		}
	case DoorClosing:
		var done bool
		d.Rotation, done = approach(d.Rotation, 0, step)
		if done {
			d.State = DoorClosed
		}
	case DoorClosed, DoorOpen:
	}
}

// IsInteractable reports whether the player may trigger the door: it must
// be at rest and unlocked.
func (d *Door) IsInteractable() bool {
	if d.Locked {
		return false
	}
	switch d.State {
	case DoorClosed, DoorOpen:
		return true
	case DoorClosing, DoorOpening:
		return false
	}
	return false
}

// FrameModelMatrix places the frame in the world.
func (d *Door) FrameModelMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(d.Position.X(), d.Position.Y(), d.Position.Z()).
		Mul4(mgl32.HomogRotate3DY(d.Facing))
}

// DoorModelMatrix places the swinging panel in the world.
func (d *Door) DoorModelMatrix() mgl32.Mat4 {
	return d.FrameModelMatrix().Mul4(mgl32.HomogRotate3DY(d.Rotation))
}

// VertFrontLeft returns the floor-level hinge corner on the front face,
// moved inward by padding.
func (d *Door) VertFrontLeft(padding float32) mgl32.Vec3 {
	return d.panelCorner(padding, DoorDepth*0.5-padding)
}

// VertFrontRight returns the floor-level free corner on the front face.
func (d *Door) VertFrontRight(padding float32) mgl32.Vec3 {
	return d.panelCorner(DoorWidth-padding, DoorDepth*0.5-padding)
}

// VertBackLeft returns the floor-level hinge corner on the back face.
func (d *Door) VertBackLeft(padding float32) mgl32.Vec3 {
	return d.panelCorner(padding, -DoorDepth*0.5+padding)
}

// VertBackRight returns the floor-level free corner on the back face.
func (d *Door) VertBackRight(padding float32) mgl32.Vec3 {
	return d.panelCorner(DoorWidth-padding, -DoorDepth*0.5+padding)
}

func (d *Door) panelCorner(x, z float32) mgl32.Vec3 {
	return mgl32.TransformCoordinate(mgl32.Vec3{x, 0, z}, d.DoorModelMatrix())
}

// CreateMesh regenerates the local-space panel and frame shapes.
func (d *Door) CreateMesh() {
	d.PanelVertices = append(d.PanelVertices[:0], PanelMesh()...)
	d.FrameVertices = append(d.FrameVertices[:0], FrameMesh()...)
}

// Draw submits frame and panel with their model matrices.
func (d *Door) Draw() {
	d.FrameBuffer.Draw(d.FrameMaterialIndex, d.FrameModelMatrix())
	d.PanelBuffer.Draw(d.MaterialIndex, d.DoorModelMatrix())
}

// PanelMesh returns the local-space door panel box.
func PanelMesh() []geom.Vertex {
	return geom.AppendBox(nil,
		mgl32.Vec3{0, 0, -DoorDepth * 0.5},
		mgl32.Vec3{DoorWidth, DoorHeight, DoorDepth * 0.5},
		1)
}

// FrameMesh returns the local-space frame: two posts and a lintel.
func FrameMesh() []geom.Vertex {
	const t, hd = FrameThickness, FrameDepth * 0.5
	v := make([]geom.Vertex, 0, 36*3)
	v = geom.AppendBox(v, mgl32.Vec3{-t, 0, -hd}, mgl32.Vec3{0, DoorHeight, hd}, 1)
	v = geom.AppendBox(v, mgl32.Vec3{DoorWidth, 0, -hd}, mgl32.Vec3{DoorWidth + t, DoorHeight, hd}, 1)
	v = geom.AppendBox(v, mgl32.Vec3{-t, DoorHeight, -hd}, mgl32.Vec3{DoorWidth + t, DoorHeight + t, hd}, 1)
	return v
}

// approach moves current toward target by at most step and reports arrival.
func approach(current, target, step float32) (float32, bool) {
	if current < target {
		current += step
		if current >= target {
			return target, true
		}
		return current, false
	}
	current -= step
	if current <= target {
		return target, true
	}
	return current, false
}
