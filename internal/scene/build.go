package scene

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/levelkit/internal/engine/gpu"
	"github.com/Faultbox/levelkit/internal/level"
	"github.com/Faultbox/levelkit/internal/object"
	"github.com/Faultbox/levelkit/internal/pointcloud"
	"github.com/Faultbox/levelkit/internal/rtscene"
	"github.com/Faultbox/levelkit/pkg/geom"
)

// Models instanced along wall edges when registered.
const (
	FloorTrimModel   = "trim_floor"
	CeilingTrimModel = "trim_ceiling"
)

// CreateMeshData regenerates every primitive's vertices and re-uploads its
// buffer. Generation runs on the worker pool; uploads run on the caller's
// goroutine.
func (r *Registry) CreateMeshData() error {
	if !r.initialized {
		return ErrNotInitialized
	}
	start := time.Now()

	tasks := make([]func() error, 0, len(r.walls)+len(r.floors)+len(r.ceilings)+len(r.doors))
	for i := range r.walls {
		w := &r.walls[i]
		tasks = append(tasks, func() error { w.CreateMesh(); return nil })
	}
	for i := range r.floors {
		f := &r.floors[i]
		tasks = append(tasks, func() error { f.CreateMesh(); return nil })
	}
	for i := range r.ceilings {
		c := &r.ceilings[i]
		tasks = append(tasks, func() error { c.CreateMesh(); return nil })
	}
	for i := range r.doors {
		d := &r.doors[i]
		tasks = append(tasks, func() error { d.CreateMesh(); return nil })
	}
	if err := r.pool.Run(tasks...); err != nil {
		return fmt.Errorf("create mesh data: %w", err)
	}

	if err := r.uploadAll(); err != nil {
		return fmt.Errorf("create mesh data: %w", err)
	}

	r.hasMesh = true
	r.meshStale = false
	r.log.Info("mesh data created",
		zap.Int("walls", len(r.walls)),
		zap.Int("floors", len(r.floors)),
		zap.Int("ceilings", len(r.ceilings)),
		zap.Int("doors", len(r.doors)),
		zap.Int("models", len(r.models)),
		zap.Duration("took", time.Since(start)))
	return nil
}

func (r *Registry) uploadAll() error {
	if r.backend == nil {
		return nil
	}
	for i := range r.walls {
		if err := r.replaceBuffer(&r.walls[i].Buffer, r.walls[i].Vertices); err != nil {
			return fmt.Errorf("wall %d: %w", i, err)
		}
	}
	for i := range r.floors {
		if err := r.replaceBuffer(&r.floors[i].Buffer, r.floors[i].Vertices); err != nil {
			return fmt.Errorf("floor %d: %w", i, err)
		}
	}
	for i := range r.ceilings {
		if err := r.replaceBuffer(&r.ceilings[i].Buffer, r.ceilings[i].Vertices); err != nil {
			return fmt.Errorf("ceiling %d: %w", i, err)
		}
	}
	for i := range r.doors {
		d := &r.doors[i]
		if err := r.replaceBuffer(&d.PanelBuffer, d.PanelVertices); err != nil {
			return fmt.Errorf("door %d panel: %w", i, err)
		}
		if err := r.replaceBuffer(&d.FrameBuffer, d.FrameVertices); err != nil {
			return fmt.Errorf("door %d frame: %w", i, err)
		}
	}
	for i := range r.models {
		if err := r.replaceBuffer(&r.models[i].Buffer, r.models[i].Vertices); err != nil {
			return fmt.Errorf("model %q: %w", r.models[i].Name, err)
		}
	}
	return nil
}

func (r *Registry) replaceBuffer(dst *gpu.Buffer, vertices []geom.Vertex) error {
	dst.Take().Release()
	if len(vertices) == 0 {
		return nil
	}
	buf, err := gpu.Upload(r.backend, vertices)
	if err != nil {
		return err
	}
	*dst = buf
	return nil
}

// CreatePointCloud samples light probes near walls, floors and ceilings.
func (r *Registry) CreatePointCloud() error {
	if !r.initialized {
		return ErrNotInitialized
	}
	if !r.MeshDataCurrent() {
		return ErrMeshDataMissing
	}
	start := time.Now()

	var tris []pointcloud.Triangle
	for i := range r.walls {
		tris = pointcloud.AppendTriangles(tris, r.walls[i].Vertices)
	}
	for i := range r.floors {
		tris = pointcloud.AppendTriangles(tris, r.floors[i].Vertices)
	}
	for i := range r.ceilings {
		tris = pointcloud.AppendTriangles(tris, r.ceilings[i].Vertices)
	}

	cloud, err := pointcloud.Build(r.pool, tris, pointcloud.Options{
		Spacing: r.cfg.PointCloudSpacing,
		Reach:   r.cfg.ProbeReach,
	})
	if err != nil {
		return fmt.Errorf("create point cloud: %w", err)
	}
	r.cloud = cloud
	r.log.Info("point cloud created",
		zap.Int("triangles", len(tris)),
		zap.Int("points", len(cloud)),
		zap.Duration("took", time.Since(start)))
	return nil
}

// CreateRTInstanceData packs the current level for ray tracing. It is safe
// to call every frame; moving doors and animated objects only change
// instance matrices.
func (r *Registry) CreateRTInstanceData() error {
	if !r.initialized {
		return ErrNotInitialized
	}
	if !r.MeshDataCurrent() {
		return ErrMeshDataMissing
	}

	positions := make(map[string][]mgl32.Vec3)
	shape := func(key string, vertices []geom.Vertex) []mgl32.Vec3 {
		p, ok := positions[key]
		if !ok {
			p = geom.Positions(vertices)
			positions[key] = p
		}
		return p
	}
	ident := mgl32.Ident4()

	var placements []rtscene.Placement
	for i := range r.walls {
		key := fmt.Sprintf("wall/%d", i)
		placements = append(placements, rtscene.Placement{Key: key, Vertices: shape(key, r.walls[i].Vertices), Model: ident})
	}
	for i := range r.floors {
		key := fmt.Sprintf("floor/%d", i)
		placements = append(placements, rtscene.Placement{Key: key, Vertices: shape(key, r.floors[i].Vertices), Model: ident})
	}
	for i := range r.ceilings {
		key := fmt.Sprintf("ceiling/%d", i)
		placements = append(placements, rtscene.Placement{Key: key, Vertices: shape(key, r.ceilings[i].Vertices), Model: ident})
	}
	for i := range r.doors {
		d := &r.doors[i]
		placements = append(placements,
			rtscene.Placement{Key: level.PanelShapeKey, Vertices: shape(level.PanelShapeKey, d.PanelVertices), Model: d.DoorModelMatrix()},
			rtscene.Placement{Key: level.FrameShapeKey, Vertices: shape(level.FrameShapeKey, d.FrameVertices), Model: d.FrameModelMatrix()},
		)
	}

	placements = r.appendTrims(placements, shape)

	for i := range r.gameObjs {
		o := &r.gameObjs[i]
		m, ok := r.model(o.ModelName)
		if !ok {
			r.log.Warn("game object has no model", zap.String("object", o.Name), zap.String("model", o.ModelName))
			continue
		}
		key := object.ShapeKey(m.Name)
		placements = append(placements, rtscene.Placement{Key: key, Vertices: shape(key, m.Vertices), Model: o.ModelMatrix()})
	}
	for i := range r.animated {
		o := &r.animated[i]
		m, ok := r.model(o.ModelName)
		if !ok {
			r.log.Warn("animated object has no model", zap.String("object", o.Name), zap.String("model", o.ModelName))
			continue
		}
		key := object.ShapeKey(m.Name)
		placements = append(placements, rtscene.Placement{Key: key, Vertices: shape(key, m.Vertices), Model: o.ModelMatrix()})
	}

	rt, err := rtscene.Pack(placements)
	if err != nil {
		return fmt.Errorf("create rt instance data: %w", err)
	}
	r.rt = rt
	return nil
}

func (r *Registry) appendTrims(placements []rtscene.Placement, shape func(string, []geom.Vertex) []mgl32.Vec3) []rtscene.Placement {
	floorTrim, hasFloor := r.model(FloorTrimModel)
	ceilingTrim, hasCeiling := r.model(CeilingTrimModel)
	for i := range r.walls {
		w := &r.walls[i]
		if hasFloor {
			key := object.ShapeKey(floorTrim.Name)
			for _, m := range w.FloorTrims {
				placements = append(placements, rtscene.Placement{Key: key, Vertices: shape(key, floorTrim.Vertices), Model: m})
			}
		}
		if hasCeiling {
			key := object.ShapeKey(ceilingTrim.Name)
			for _, m := range w.CeilingTrims {
				placements = append(placements, rtscene.Placement{Key: key, Vertices: shape(key, ceilingTrim.Vertices), Model: m})
			}
		}
	}
	return placements
}

// RecreateDataStructures rebuilds mesh data, the point cloud and the
// ray-tracing pack in that order.
func (r *Registry) RecreateDataStructures() error {
	if err := r.CreateMeshData(); err != nil {
		return err
	}
	if err := r.CreatePointCloud(); err != nil {
		return err
	}
	return r.CreateRTInstanceData()
}
