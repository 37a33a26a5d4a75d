// Package pointcloud builds the light-propagation point cloud: a regular
// grid of probes kept only where they sit close to static geometry.
package pointcloud

import (
	"errors"
	"fmt"
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/levelkit/internal/engine/workpool"
	"github.com/Faultbox/levelkit/pkg/geom"
)

// DefaultSpacing is the grid spacing in world units.
const DefaultSpacing = 1.0

// MaxPoints bounds the number of grid samples a single build may visit.
const MaxPoints = 1 << 24

const (
	rtreeMinChildren = 25
	rtreeMaxChildren = 50
	boxPadding       = 1e-4
)

var (
	// ErrInvalidSpacing is returned for non-positive spacing.
	ErrInvalidSpacing = errors.New("pointcloud: spacing must be positive")
	// ErrGridTooLarge is returned when the grid exceeds MaxPoints samples.
	ErrGridTooLarge = errors.New("pointcloud: grid too large")
)

// CloudPoint is one probe. The layout matches the GPU buffer: three vec4s
// with zero w components.
type CloudPoint struct {
	Position       mgl32.Vec4
	Normal         mgl32.Vec4
	DirectLighting mgl32.Vec4
}

// Triangle is a source triangle with per-vertex normals.
type Triangle struct {
	P [3]mgl32.Vec3
	N [3]mgl32.Vec3
}

// AppendTriangles appends the triangles of a triangle-list vertex buffer.
// Trailing vertices that do not form a full triangle are ignored.
func AppendTriangles(dst []Triangle, vertices []geom.Vertex) []Triangle {
	for i := 0; i+2 < len(vertices); i += 3 {
		dst = append(dst, Triangle{
			P: [3]mgl32.Vec3{vertices[i].Position, vertices[i+1].Position, vertices[i+2].Position},
			N: [3]mgl32.Vec3{vertices[i].Normal, vertices[i+1].Normal, vertices[i+2].Normal},
		})
	}
	return dst
}

// Options controls grid density and how far a probe may sit from geometry.
type Options struct {
	Spacing float32
	// Reach is the maximum probe-to-surface distance. Zero means Spacing.
	Reach float32
}

// indexed is a Triangle stored in the R-tree.
type indexed struct {
	index int
	tri   *Triangle
	rect  rtreego.Rect
}

func (t *indexed) Bounds() rtreego.Rect { return t.rect }

// Build samples the grid covering tris and returns the kept probes ordered by
// y, then z, then x. Y slices run on pool and are joined before return.
func Build(pool *workpool.Pool, tris []Triangle, opts Options) ([]CloudPoint, error) {
	if opts.Spacing <= 0 {
		return nil, ErrInvalidSpacing
	}
	if opts.Reach <= 0 {
		opts.Reach = opts.Spacing
	}
	if len(tris) == 0 {
		return []CloudPoint{}, nil
	}

	bounds := geom.EmptyBounds()
	objs := make([]rtreego.Spatial, len(tris))
	for i := range tris {
		tb := geom.EmptyBounds()
		for _, p := range tris[i].P {
			tb.Extend(p)
			bounds.Extend(p)
		}
		tb = tb.Expand(boxPadding)
		rect, err := rtreego.NewRectFromPoints(toPoint(tb.Min), toPoint(tb.Max))
		if err != nil {
			return nil, fmt.Errorf("index triangle %d: %w", i, err)
		}
		objs[i] = &indexed{index: i, tri: &tris[i], rect: rect}
	}
	tree := rtreego.NewTree(3, rtreeMinChildren, rtreeMaxChildren, objs...)

	g := newGrid(bounds, opts.Spacing)
	if total := g.count[0] * g.count[1] * g.count[2]; total > MaxPoints {
		return nil, fmt.Errorf("%w: %d samples", ErrGridTooLarge, total)
	}

	slices := make([][]CloudPoint, g.count[1])
	tasks := make([]func() error, g.count[1])
	for iy := range tasks {
		tasks[iy] = func() error {
			slices[iy] = buildSlice(tree, g, iy, opts.Reach)
			return nil
		}
	}
	if err := pool.Run(tasks...); err != nil {
		return nil, fmt.Errorf("build slices: %w", err)
	}

	n := 0
	for _, s := range slices {
		n += len(s)
	}
	points := make([]CloudPoint, 0, n)
	for _, s := range slices {
		points = append(points, s...)
	}
	return points, nil
}

type grid struct {
	origin  mgl32.Vec3
	spacing float32
	count   [3]int
}

// newGrid aligns samples to multiples of spacing and covers bounds
// inclusively.
func newGrid(b geom.Bounds, spacing float32) grid {
	g := grid{spacing: spacing}
	for i := 0; i < 3; i++ {
		start := float32(math.Floor(float64(b.Min[i]/spacing))) * spacing
		steps := math.Floor(float64((b.Max[i]-start)/spacing) + 1e-4)
		g.origin[i] = start
		g.count[i] = int(steps) + 1
	}
	return g
}

func (g grid) point(ix, iy, iz int) mgl32.Vec3 {
	return mgl32.Vec3{
		g.origin[0] + float32(ix)*g.spacing,
		g.origin[1] + float32(iy)*g.spacing,
		g.origin[2] + float32(iz)*g.spacing,
	}
}

func buildSlice(tree *rtreego.Rtree, g grid, iy int, reach float32) []CloudPoint {
	var out []CloudPoint
	for iz := 0; iz < g.count[2]; iz++ {
		for ix := 0; ix < g.count[0]; ix++ {
			p := g.point(ix, iy, iz)
			normal, ok := nearestSurface(tree, p, reach)
			if !ok {
				continue
			}
			out = append(out, CloudPoint{
				Position: p.Vec4(0),
				Normal:   normal.Vec4(0),
			})
		}
	}
	return out
}

// nearestSurface finds the closest triangle within reach of p and returns
// the interpolated surface normal there. Ties go to the lowest index.
func nearestSurface(tree *rtreego.Rtree, p mgl32.Vec3, reach float32) (mgl32.Vec3, bool) {
	candidates := tree.SearchIntersect(toPoint(p).ToRect(float64(reach)))
	best := -1
	var bestDist float32
	var bestNormal mgl32.Vec3
	for _, c := range candidates {
		t := c.(*indexed)
		closest, bary := geom.ClosestPointOnTriangle(p, t.tri.P[0], t.tri.P[1], t.tri.P[2])
		d := closest.Sub(p).Len()
		if d > reach {
			continue
		}
		if best >= 0 && (d > bestDist || (d == bestDist && t.index > best)) {
			continue
		}
		n := t.tri.N[0].Mul(bary[0]).Add(t.tri.N[1].Mul(bary[1])).Add(t.tri.N[2].Mul(bary[2]))
		if n.Len() == 0 {
			continue
		}
		best, bestDist, bestNormal = t.index, d, n.Normalize()
	}
	return bestNormal, best >= 0
}

func toPoint(v mgl32.Vec3) rtreego.Point {
	return rtreego.Point{float64(v[0]), float64(v[1]), float64(v[2])}
}
