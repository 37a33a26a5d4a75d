// Package scene owns the level: its primitives, objects and lights, and the
// data derived from them (GPU buffers, the light-propagation point cloud
// and the ray-tracing pack).
//
// A Registry is not safe for concurrent use. Mutations and rebuilds must be
// serialized by the caller, typically by running them on the frame thread.
// Rebuilds fan out internally on a worker pool and join before returning.
package scene

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/levelkit/internal/config"
	"github.com/Faultbox/levelkit/internal/engine/gpu"
	"github.com/Faultbox/levelkit/internal/engine/lighting"
	"github.com/Faultbox/levelkit/internal/engine/workpool"
	"github.com/Faultbox/levelkit/internal/level"
	"github.com/Faultbox/levelkit/internal/logger"
	"github.com/Faultbox/levelkit/internal/object"
	"github.com/Faultbox/levelkit/internal/pointcloud"
	"github.com/Faultbox/levelkit/internal/rtscene"
)

var (
	// ErrNotInitialized is returned by operations called before Init.
	ErrNotInitialized = errors.New("scene: registry not initialized")
	// ErrMeshDataMissing is returned when a derived structure is requested
	// before CreateMeshData, or after the level changed.
	ErrMeshDataMissing = errors.New("scene: mesh data missing or stale")
	// ErrDuplicateModel is returned when a model name is registered twice.
	ErrDuplicateModel = errors.New("scene: duplicate model name")
)

// Option configures a Registry.
type Option func(*Registry)

// WithLightProvider sets where LoadLightSetup reads setups from.
func WithLightProvider(p lighting.SetupProvider) Option {
	return func(r *Registry) { r.provider = p }
}

// WithLogger replaces the component logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) { r.log = l }
}

// WithPool shares an existing worker pool. The registry will not close it.
func WithPool(p *workpool.Pool) Option {
	return func(r *Registry) { r.pool, r.ownsPool = p, false }
}

// Registry is the scene of one level.
type Registry struct {
	cfg      config.SceneConfig
	backend  gpu.Backend
	provider lighting.SetupProvider
	log      *zap.Logger

	pool        *workpool.Pool
	ownsPool    bool
	initialized bool

	walls      []level.Wall
	doors      []level.Door
	floors     []level.Floor
	ceilings   []level.Ceiling
	gameObjs   []object.GameObject
	animated   []object.AnimatedGameObject
	models     []object.Model
	modelIndex map[string]int

	lights     []lighting.Light
	lightSetup lighting.Setup

	cloud     []pointcloud.CloudPoint
	rt        *rtscene.Scene
	cameraRay RayCastResult

	// hasMesh is set by CreateMeshData; meshStale by any structural change
	// after it.
	hasMesh   bool
	meshStale bool
}

// New creates a registry. backend may be nil for CPU-only use (tools,
// tests); buffers are then never uploaded.
func New(cfg config.SceneConfig, backend gpu.Backend, opts ...Option) *Registry {
	r := &Registry{
		cfg:        cfg,
		backend:    backend,
		provider:   lighting.DefaultPresets(),
		modelIndex: make(map[string]int),
		ownsPool:   true,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = logger.Named("scene")
	}
	return r
}

// Init prepares the registry for use. Calling it again is a no-op.
func (r *Registry) Init() error {
	if r.initialized {
		return nil
	}
	if r.pool == nil {
		r.pool = workpool.New(r.cfg.MeshWorkers)
		r.ownsPool = true
	}
	r.initialized = true
	r.log.Info("scene initialized",
		zap.Int("workers", r.pool.Workers()),
		zap.Bool("gpu", r.backend != nil))
	return nil
}

// Close releases every buffer and stops an owned worker pool.
func (r *Registry) Close() {
	if !r.initialized {
		return
	}
	r.clear()
	if r.ownsPool {
		r.pool.Close()
	}
	r.pool = nil
	r.initialized = false
}

// NewScene empties the level and releases every GPU buffer once.
func (r *Registry) NewScene() error {
	if !r.initialized {
		return ErrNotInitialized
	}
	r.clear()
	r.log.Info("new scene")
	return nil
}

func (r *Registry) clear() {
	for i := range r.walls {
		r.walls[i].Buffer.Release()
	}
	for i := range r.floors {
		r.floors[i].Buffer.Release()
	}
	for i := range r.ceilings {
		r.ceilings[i].Buffer.Release()
	}
	for i := range r.doors {
		r.doors[i].PanelBuffer.Release()
		r.doors[i].FrameBuffer.Release()
	}
	for i := range r.models {
		r.models[i].Buffer.Release()
	}

	r.walls = nil
	r.doors = nil
	r.floors = nil
	r.ceilings = nil
	r.gameObjs = nil
	r.animated = nil
	r.models = nil
	clear(r.modelIndex)
	r.lights = nil
	r.lightSetup = lighting.Setup{}
	r.cloud = nil
	r.rt = nil
	r.cameraRay = RayCastResult{}
	r.hasMesh = false
	r.meshStale = false
}

// Update advances doors and animated objects by dt seconds. Derived data is
// not rebuilt. It does nothing before Init.
func (r *Registry) Update(dt float32) {
	if !r.initialized {
		return
	}
	for i := range r.doors {
		r.doors[i].Update(dt)
	}
	for i := range r.animated {
		r.animated[i].Update(dt)
	}
}

// LoadLightSetup replaces the scene lights with setup index.
func (r *Registry) LoadLightSetup(index int) error {
	if !r.initialized {
		return ErrNotInitialized
	}
	setup, err := r.provider.Setup(index)
	if err != nil {
		return fmt.Errorf("load light setup: %w", err)
	}
	if len(setup.Lights) > lighting.MaxLights {
		r.log.Warn("light setup truncated",
			zap.String("setup", setup.Name),
			zap.Int("lights", len(setup.Lights)),
			zap.Int("max", lighting.MaxLights))
		setup.Lights = setup.Lights[:lighting.MaxLights]
	}
	r.lights = setup.Lights
	r.lightSetup = setup
	r.log.Info("light setup loaded", zap.Int("index", index), zap.String("name", setup.Name))
	return nil
}

// LightSetupCount returns how many setups LoadLightSetup accepts.
func (r *Registry) LightSetupCount() int {
	return r.provider.SetupCount()
}

// GetGameObjectByName returns the first object with name. The pointer is
// valid until the next Add or NewScene.
func (r *Registry) GetGameObjectByName(name string) (*object.GameObject, bool) {
	for i := range r.gameObjs {
		if r.gameObjs[i].Name == name {
			return &r.gameObjs[i], true
		}
	}
	return nil, false
}

// GetAnimatedGameObjectByName returns the first animated object with name.
// The pointer is valid until the next Add or NewScene.
func (r *Registry) GetAnimatedGameObjectByName(name string) (*object.AnimatedGameObject, bool) {
	for i := range r.animated {
		if r.animated[i].Name == name {
			return &r.animated[i], true
		}
	}
	return nil, false
}

// AddWall appends a copy of w. Derived data goes stale until rebuilt.
func (r *Registry) AddWall(w level.Wall) error {
	if !r.initialized {
		return ErrNotInitialized
	}
	if err := w.Validate(); err != nil {
		return fmt.Errorf("add wall: %w", err)
	}
	w.Vertices, w.FloorTrims, w.CeilingTrims = nil, nil, nil
	w.Buffer = gpu.Buffer{}
	r.walls = append(r.walls, w)
	r.markStale()
	return nil
}

// AddFloor appends a copy of f.
func (r *Registry) AddFloor(f level.Floor) error {
	if !r.initialized {
		return ErrNotInitialized
	}
	if err := f.Validate(); err != nil {
		return fmt.Errorf("add floor: %w", err)
	}
	f.Vertices = nil
	f.Buffer = gpu.Buffer{}
	r.floors = append(r.floors, f)
	r.markStale()
	return nil
}

// AddCeiling appends a copy of c.
func (r *Registry) AddCeiling(c level.Ceiling) error {
	if !r.initialized {
		return ErrNotInitialized
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("add ceiling: %w", err)
	}
	c.Vertices = nil
	c.Buffer = gpu.Buffer{}
	r.ceilings = append(r.ceilings, c)
	r.markStale()
	return nil
}

// AddDoor appends a copy of d. Zero swing speed or open rotation take the
// configured values.
func (r *Registry) AddDoor(d level.Door) error {
	if !r.initialized {
		return ErrNotInitialized
	}
	if d.SwingSpeed == 0 {
		d.SwingSpeed = r.cfg.DoorSwingSpeed
	}
	if d.OpenRotation == 0 {
		d.OpenRotation = r.cfg.DoorOpenRotation
	}
	d.PanelVertices, d.FrameVertices = nil, nil
	d.PanelBuffer, d.FrameBuffer = gpu.Buffer{}, gpu.Buffer{}
	r.doors = append(r.doors, d)
	r.markStale()
	return nil
}

// AddGameObject appends a copy of o.
func (r *Registry) AddGameObject(o object.GameObject) error {
	if !r.initialized {
		return ErrNotInitialized
	}
	r.gameObjs = append(r.gameObjs, o)
	r.markStale()
	return nil
}

// AddAnimatedGameObject appends a copy of o.
func (r *Registry) AddAnimatedGameObject(o object.AnimatedGameObject) error {
	if !r.initialized {
		return ErrNotInitialized
	}
	o.Animation.PosKeys = slices.Clone(o.Animation.PosKeys)
	o.Animation.RotKeys = slices.Clone(o.Animation.RotKeys)
	o.Animation.ScaleKeys = slices.Clone(o.Animation.ScaleKeys)
	r.animated = append(r.animated, o)
	r.markStale()
	return nil
}

// AddModel registers a named local-space shape for game objects and trims.
func (r *Registry) AddModel(m object.Model) error {
	if !r.initialized {
		return ErrNotInitialized
	}
	if _, ok := r.modelIndex[m.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateModel, m.Name)
	}
	m.Vertices = slices.Clone(m.Vertices)
	m.Buffer = gpu.Buffer{}
	r.modelIndex[m.Name] = len(r.models)
	r.models = append(r.models, m)
	r.markStale()
	return nil
}

func (r *Registry) markStale() {
	if r.hasMesh {
		r.meshStale = true
	}
}

func (r *Registry) model(name string) (*object.Model, bool) {
	i, ok := r.modelIndex[name]
	if !ok {
		return nil, false
	}
	return &r.models[i], true
}

// Walls returns the walls in insertion order.
func (r *Registry) Walls() []level.Wall { return r.walls }

// Doors returns the doors in insertion order.
func (r *Registry) Doors() []level.Door { return r.doors }

// Floors returns the floors in insertion order.
func (r *Registry) Floors() []level.Floor { return r.floors }

// Ceilings returns the ceilings in insertion order.
func (r *Registry) Ceilings() []level.Ceiling { return r.ceilings }

// GameObjects returns the static objects in insertion order.
func (r *Registry) GameObjects() []object.GameObject { return r.gameObjs }

// AnimatedGameObjects returns the animated objects; callers may mutate them.
func (r *Registry) AnimatedGameObjects() []object.AnimatedGameObject { return r.animated }

// Models returns the registered models.
func (r *Registry) Models() []object.Model { return r.models }

// Lights returns the active lights.
func (r *Registry) Lights() []lighting.Light { return r.lights }

// LightSetup returns the active setup.
func (r *Registry) LightSetup() lighting.Setup { return r.lightSetup }

// CloudPoints returns the last built point cloud. DirectLighting may be
// written by the lighting pass.
func (r *Registry) CloudPoints() []pointcloud.CloudPoint { return r.cloud }

// RTScene returns the last ray-tracing pack, or nil.
func (r *Registry) RTScene() *rtscene.Scene { return r.rt }

// MeshDataCurrent reports whether buffers match the current level.
func (r *Registry) MeshDataCurrent() bool { return r.hasMesh && !r.meshStale }
