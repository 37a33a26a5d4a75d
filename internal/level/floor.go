package level

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/levelkit/internal/engine/gpu"
	"github.com/Faultbox/levelkit/pkg/geom"
)

var (
	// ErrNotCoplanar is returned when floor corners differ in height.
	ErrNotCoplanar = errors.New("level: corners must share one height")
	// ErrEmptyArea is returned when a rectangle or quad has zero extent.
	ErrEmptyArea = errors.New("level: zero area")
	// ErrTwistedQuad is returned when the corners of a floor cross over.
	ErrTwistedQuad = errors.New("level: floor corners cross over")
)

// minQuadArea is the smallest accepted doubled triangle area.
const minQuadArea = 1e-6

// Floor is a horizontal quad facing +Y.
type Floor struct {
	Corners       [4]mgl32.Vec3
	MaterialIndex int
	TextureScale  float32

	Vertices []geom.Vertex
	Buffer   gpu.Buffer
}

// NewFloor creates a floor spanning (x1,z1)-(x2,z2) at the given height.
func NewFloor(x1, z1, x2, z2, height float32, materialIndex int, textureScale float32) (Floor, error) {
	corners, err := rectCorners(x1, z1, x2, z2, height, textureScale)
	if err != nil {
		return Floor{}, fmt.Errorf("floor: %w", err)
	}
	return Floor{Corners: corners, MaterialIndex: materialIndex, TextureScale: textureScale}, nil
}

// NewFloorFromCorners creates a floor from four explicit corners. The
// corners may be given in either winding; CreateMesh always faces +Y.
func NewFloorFromCorners(p1, p2, p3, p4 mgl32.Vec3, materialIndex int, textureScale float32) (Floor, error) {
	f := Floor{Corners: [4]mgl32.Vec3{p1, p2, p3, p4}, MaterialIndex: materialIndex, TextureScale: textureScale}
	if err := f.Validate(); err != nil {
		return Floor{}, err
	}
	return f, nil
}

// Validate checks that the corners form a flat quad that the 0-2 diagonal
// splits into two triangles of the same winding.
func (f *Floor) Validate() error {
	if f.TextureScale <= 0 {
		return fmt.Errorf("floor: %w", ErrInvalidTextureScale)
	}
	c := f.Corners
	y := c[0].Y()
	if c[1].Y() != y || c[2].Y() != y || c[3].Y() != y {
		return fmt.Errorf("floor: %w", ErrNotCoplanar)
	}
	a1 := doubledArea(c[0], c[1], c[2])
	a2 := doubledArea(c[0], c[2], c[3])
	if mgl32.Abs(a1) < minQuadArea || mgl32.Abs(a2) < minQuadArea {
		return fmt.Errorf("floor: %w", ErrEmptyArea)
	}
	if (a1 > 0) != (a2 > 0) {
		return fmt.Errorf("floor: %w", ErrTwistedQuad)
	}
	return nil
}

// doubledArea returns twice the signed area of abc seen from above.
func doubledArea(a, b, c mgl32.Vec3) float32 {
	return b.Sub(a).Cross(c.Sub(a)).Y()
}

// Height returns the floor plane height.
func (f *Floor) Height() float32 {
	return f.Corners[0].Y()
}

// CreateMesh regenerates the two floor triangles.
func (f *Floor) CreateMesh() {
	corners := f.Corners
	// Flip to counter-clockwise seen from above.
	n := geom.NormalFromThreePoints(corners[0], corners[1], corners[2])
	if n.Y() < 0 {
		corners[1], corners[3] = corners[3], corners[1]
	}
	f.Vertices = geom.AppendQuad(f.Vertices[:0], corners, worldUVs(corners, f.TextureScale))
}

// Draw submits the floor buffer in world space.
func (f *Floor) Draw() {
	f.Buffer.Draw(f.MaterialIndex, mgl32.Ident4())
}

// Ceiling is a horizontal quad facing -Y.
type Ceiling struct {
	X1, Z1, X2, Z2 float32
	Height         float32
	MaterialIndex  int
	TextureScale   float32

	Vertices []geom.Vertex
	Buffer   gpu.Buffer
}

// NewCeiling creates a ceiling spanning (x1,z1)-(x2,z2) at the given height.
func NewCeiling(x1, z1, x2, z2, height float32, materialIndex int) (Ceiling, error) {
	if _, err := rectCorners(x1, z1, x2, z2, height, 1); err != nil {
		return Ceiling{}, fmt.Errorf("ceiling: %w", err)
	}
	return Ceiling{
		X1: min(x1, x2), Z1: min(z1, z2),
		X2: max(x1, x2), Z2: max(z1, z2),
		Height:        height,
		MaterialIndex: materialIndex,
		TextureScale:  1,
	}, nil
}

// Validate checks that the ceiling spans a non-empty rectangle. A zero
// texture scale means 1.
func (c *Ceiling) Validate() error {
	if c.X1 == c.X2 || c.Z1 == c.Z2 {
		return fmt.Errorf("ceiling: %w", ErrEmptyArea)
	}
	if c.TextureScale < 0 {
		return fmt.Errorf("ceiling: %w", ErrInvalidTextureScale)
	}
	return nil
}

// CreateMesh regenerates the two ceiling triangles.
func (c *Ceiling) CreateMesh() {
	scale := c.TextureScale
	if scale <= 0 {
		scale = 1
	}
	h := c.Height
	lx, hx := min(c.X1, c.X2), max(c.X1, c.X2)
	lz, hz := min(c.Z1, c.Z2), max(c.Z1, c.Z2)
	// Clockwise seen from above so the face points down.
	corners := [4]mgl32.Vec3{
		{lx, h, lz},
		{hx, h, lz},
		{hx, h, hz},
		{lx, h, hz},
	}
	c.Vertices = geom.AppendQuad(c.Vertices[:0], corners, worldUVs(corners, scale))
}

// Draw submits the ceiling buffer in world space.
func (c *Ceiling) Draw() {
	c.Buffer.Draw(c.MaterialIndex, mgl32.Ident4())
}

// rectCorners returns the corners of an axis-aligned rectangle, wound
// counter-clockwise seen from above.
func rectCorners(x1, z1, x2, z2, height, textureScale float32) ([4]mgl32.Vec3, error) {
	if textureScale <= 0 {
		return [4]mgl32.Vec3{}, ErrInvalidTextureScale
	}
	if x1 == x2 || z1 == z2 {
		return [4]mgl32.Vec3{}, ErrEmptyArea
	}
	lx, hx := min(x1, x2), max(x1, x2)
	lz, hz := min(z1, z2), max(z1, z2)
	return [4]mgl32.Vec3{
		{lx, height, lz},
		{lx, height, hz},
		{hx, height, hz},
		{hx, height, lz},
	}, nil
}

func worldUVs(corners [4]mgl32.Vec3, scale float32) [4]mgl32.Vec2 {
	var uvs [4]mgl32.Vec2
	for i, c := range corners {
		uvs[i] = mgl32.Vec2{c.X() / scale, c.Z() / scale}
	}
	return uvs
}
