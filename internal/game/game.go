// Package game runs the interactive level viewer: window, input, cameras
// and the per-frame scene update.
package game

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/levelkit/internal/config"
	"github.com/Faultbox/levelkit/internal/demo"
	"github.com/Faultbox/levelkit/internal/engine/camera"
	"github.com/Faultbox/levelkit/internal/engine/input"
	"github.com/Faultbox/levelkit/internal/engine/renderer"
	"github.com/Faultbox/levelkit/internal/engine/window"
	"github.com/Faultbox/levelkit/internal/logger"
	"github.com/Faultbox/levelkit/internal/scene"
	"github.com/Faultbox/levelkit/pkg/geom"
)

// Game is the viewer instance.
type Game struct {
	cfg      *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	scene    *scene.Registry
	log      *zap.Logger

	fps      *camera.FirstPersonCamera
	orbit    *camera.OrbitCamera
	useOrbit bool

	lightSetup int
}

// New creates the window, renderer and scene and builds the demo level.
func New(cfg *config.Config) (*Game, error) {
	g := &Game{
		cfg:        cfg,
		log:        logger.Named("game"),
		input:      input.New(),
		fps:        camera.NewFirstPersonCamera(demo.Spawn),
		orbit:      camera.NewOrbitCamera(),
		lightSetup: cfg.Lights.Initial,
	}

	var err error
	g.window, err = window.New(cfg.Window)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer needs the GL context the window created.
	w, h := g.window.Size()
	g.renderer, err = renderer.New(renderer.Config{Width: w, Height: h})
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.scene = scene.New(cfg.Scene, g.renderer, scene.WithLightProvider(cfg.Lights.Setups))
	if err := g.scene.Init(); err != nil {
		g.Close()
		return nil, fmt.Errorf("failed to init scene: %w", err)
	}
	if err := g.loadLevel(); err != nil {
		g.Close()
		return nil, err
	}

	g.window.CaptureMouse(true)
	g.log.Info("viewer initialized")
	return g, nil
}

func (g *Game) loadLevel() error {
	if err := g.scene.NewScene(); err != nil {
		return err
	}
	if err := demo.Build(g.scene, g.cfg.Scene); err != nil {
		return fmt.Errorf("build level: %w", err)
	}
	if err := g.scene.RecreateDataStructures(); err != nil {
		return fmt.Errorf("build level data: %w", err)
	}
	if err := g.applyLights(); err != nil {
		return err
	}

	b := geom.EmptyBounds()
	for _, w := range g.scene.Walls() {
		b.ExtendVertices(w.Vertices)
	}
	g.orbit.FitToBounds(b.Min, b.Max)
	return nil
}

func (g *Game) applyLights() error {
	if err := g.scene.LoadLightSetup(g.lightSetup); err != nil {
		return err
	}
	g.renderer.SetLighting(g.scene.LightSetup())
	return nil
}

// Run drives the frame loop until the window closes or Escape is pressed.
func (g *Game) Run() error {
	g.running = true
	last := time.Now()
	frames := 0
	fpsTimer := last

	for g.running {
		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now

		g.input.Poll()
		if g.input.Quit || g.input.Pressed(sdl.SCANCODE_ESCAPE) {
			break
		}
		if g.input.Resized {
			g.renderer.Resize(g.window.Size())
		}

		if err := g.update(dt); err != nil {
			return fmt.Errorf("update error: %w", err)
		}
		g.render()
		g.window.SwapBuffers()

		frames++
		if time.Since(fpsTimer) >= time.Second {
			g.window.SetTitle(fmt.Sprintf("%s - %d fps", g.cfg.Window.Title, frames))
			frames = 0
			fpsTimer = time.Now()
		}
	}
	return nil
}

func (g *Game) update(dt float32) error {
	in := g.input

	if in.Pressed(sdl.SCANCODE_TAB) {
		g.useOrbit = !g.useOrbit
		g.window.CaptureMouse(!g.useOrbit)
	}
	if in.Pressed(sdl.SCANCODE_L) {
		g.lightSetup = (g.lightSetup + 1) % max(g.scene.LightSetupCount(), 1)
		if err := g.applyLights(); err != nil {
			return err
		}
	}
	if in.Pressed(sdl.SCANCODE_F5) {
		if err := g.loadLevel(); err != nil {
			return err
		}
	}

	if g.useOrbit {
		if in.Dragging {
			g.orbit.HandleDrag(in.MouseDX, in.MouseDY)
		}
		g.orbit.HandleZoom(in.Wheel)
	} else {
		g.fps.HandleMouse(in.MouseDX, in.MouseDY)
		g.fps.HandleMovement(
			in.Axis(sdl.SCANCODE_W, sdl.SCANCODE_S),
			in.Axis(sdl.SCANCODE_D, sdl.SCANCODE_A),
			in.Axis(sdl.SCANCODE_SPACE, sdl.SCANCODE_LCTRL),
			dt)

		g.scene.CastCameraRay(g.fps.Ray())
		if in.Pressed(sdl.SCANCODE_E) || in.Clicked() {
			if g.scene.InteractWithCursorTarget() {
				g.log.Debug("door toggled", zap.Int("door", g.scene.CameraRayResult().Index))
			}
		}
	}

	g.scene.Update(dt)
	// Doors and the fan move every frame; only their instances change.
	return g.scene.CreateRTInstanceData()
}

func (g *Game) render() {
	aspect := g.renderer.Aspect()
	proj := g.fps.ProjectionMatrix(aspect)
	view := g.fps.ViewMatrix()
	if g.useOrbit {
		view = g.orbit.ViewMatrix()
	}

	g.renderer.Begin()
	g.scene.Draw(proj.Mul4(view))
	if !g.useOrbit && g.scene.CursorShouldBeInterect() {
		g.renderer.DrawCrosshair(mgl32.Vec3{0.3, 1, 0.4})
	} else if !g.useOrbit {
		g.renderer.DrawCrosshair(mgl32.Vec3{1, 1, 1})
	}
}

// Close releases the scene, renderer and window.
func (g *Game) Close() {
	g.log.Info("closing viewer")
	if g.scene != nil {
		g.scene.Close()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}
