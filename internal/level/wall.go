// Package level holds the declarative level primitives (walls, floors,
// ceilings and doors) and generates their triangle meshes.
package level

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/levelkit/internal/engine/gpu"
	"github.com/Faultbox/levelkit/pkg/geom"
)

// DefaultWallHeight is the storey height used when a level does not set one.
const DefaultWallHeight = 2.4

var (
	// ErrDegenerateWall is returned for walls without horizontal extent.
	ErrDegenerateWall = errors.New("level: wall begin and end must differ horizontally")
	// ErrInvalidHeight is returned for non-positive heights.
	ErrInvalidHeight = errors.New("level: height must be positive")
	// ErrInvalidTextureScale is returned for non-positive texture scales.
	ErrInvalidTextureScale = errors.New("level: texture scale must be positive")
)

// Wall is a vertical quad between two floor-level endpoints.
type Wall struct {
	Begin         mgl32.Vec3
	End           mgl32.Vec3
	Height        float32
	TextureScale  float32
	MaterialIndex int

	// Generated by CreateMesh.
	Vertices     []geom.Vertex
	CeilingTrims []mgl32.Mat4
	FloorTrims   []mgl32.Mat4

	Buffer gpu.Buffer
}

// NewWall creates a wall from begin to end. The front face points along
// cross(end-begin, +Y).
func NewWall(begin, end mgl32.Vec3, height float32, materialIndex int) (Wall, error) {
	w := Wall{
		Begin:         begin,
		End:           end,
		Height:        height,
		TextureScale:  1,
		MaterialIndex: materialIndex,
	}
	if err := w.Validate(); err != nil {
		return Wall{}, err
	}
	return w, nil
}

// Validate checks that the wall spans a non-empty quad. A zero texture
// scale means 1.
func (w *Wall) Validate() error {
	if w.Height <= 0 {
		return fmt.Errorf("wall %v->%v: %w", w.Begin, w.End, ErrInvalidHeight)
	}
	dx, dz := w.End.X()-w.Begin.X(), w.End.Z()-w.Begin.Z()
	if dx == 0 && dz == 0 {
		return fmt.Errorf("wall %v->%v: %w", w.Begin, w.End, ErrDegenerateWall)
	}
	if w.TextureScale < 0 {
		return fmt.Errorf("wall %v->%v: %w", w.Begin, w.End, ErrInvalidTextureScale)
	}
	return nil
}

// Length returns the distance between the endpoints.
func (w *Wall) Length() float32 {
	return w.End.Sub(w.Begin).Len()
}

// Normal returns the unit front-face normal.
func (w *Wall) Normal() mgl32.Vec3 {
	return w.End.Sub(w.Begin).Cross(geom.Up).Normalize()
}

// MidPoint returns the center of the wall face.
func (w *Wall) MidPoint() mgl32.Vec3 {
	mid := w.Begin.Add(w.End).Mul(0.5)
	return mid.Add(mgl32.Vec3{0, w.Height * 0.5, 0})
}

// Corners returns bottom-begin, bottom-end, top-end, top-begin.
func (w *Wall) Corners() [4]mgl32.Vec3 {
	up := mgl32.Vec3{0, w.Height, 0}
	return [4]mgl32.Vec3{w.Begin, w.End, w.End.Add(up), w.Begin.Add(up)}
}

// CreateMesh regenerates the wall quad and its trim transforms.
func (w *Wall) CreateMesh() {
	scale := w.TextureScale
	if scale <= 0 {
		scale = 1
	}
	corners := w.Corners()
	w.Vertices = geom.AppendQuad(w.Vertices[:0], corners, geom.QuadUVs(corners, scale))

	// Trims run along the wall: local +X is stretched to the wall length.
	dir := w.End.Sub(w.Begin)
	yaw := float32(math.Atan2(float64(-dir.Z()), float64(dir.X())))
	orient := mgl32.HomogRotate3DY(yaw).Mul4(mgl32.Scale3D(w.Length(), 1, 1))

	top := w.Begin.Add(mgl32.Vec3{0, w.Height, 0})
	w.FloorTrims = append(w.FloorTrims[:0], mgl32.Translate3D(w.Begin.X(), w.Begin.Y(), w.Begin.Z()).Mul4(orient))
	w.CeilingTrims = append(w.CeilingTrims[:0], mgl32.Translate3D(top.X(), top.Y(), top.Z()).Mul4(orient))
}

// Draw submits the wall buffer in world space.
func (w *Wall) Draw() {
	w.Buffer.Draw(w.MaterialIndex, mgl32.Ident4())
}
