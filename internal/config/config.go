// Package config handles viewer and tool configuration loading.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/levelkit/internal/engine/lighting"
)

// Config holds all settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Scene   SceneConfig   `yaml:"scene"`
	Lights  LightsConfig  `yaml:"lights"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings for the viewer.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// SceneConfig holds level geometry and rebuild settings.
type SceneConfig struct {
	WallHeight        float32 `yaml:"wall_height"`
	PointCloudSpacing float32 `yaml:"point_cloud_spacing"`
	ProbeReach        float32 `yaml:"probe_reach"` // 0 = same as spacing
	DoorSwingSpeed    float32 `yaml:"door_swing_speed"`
	DoorOpenRotation  float32 `yaml:"door_open_rotation"`
	InteractDistance  float32 `yaml:"interact_distance"`
	MeshWorkers       int     `yaml:"mesh_workers"` // 0 = one per CPU
}

// LightsConfig holds the light presets LoadLightSetup chooses from.
type LightsConfig struct {
	Initial int              `yaml:"initial"`
	Setups  lighting.Presets `yaml:"setups"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "levelkit",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Scene: SceneConfig{
			WallHeight:        2.4,
			PointCloudSpacing: 1,
			DoorSwingSpeed:    5,
			DoorOpenRotation:  1.7,
			InteractDistance:  2.5,
		},
		Lights: LightsConfig{
			Setups: lighting.DefaultPresets(),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

var errInvalid = errors.New("invalid config")

// Validate reports every out-of-range value.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{errInvalid}, args...)...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size %dx%d", c.Window.Width, c.Window.Height)
	check(c.Scene.WallHeight > 0, "scene.wall_height %v", c.Scene.WallHeight)
	check(c.Scene.PointCloudSpacing > 0, "scene.point_cloud_spacing %v", c.Scene.PointCloudSpacing)
	check(c.Scene.ProbeReach >= 0, "scene.probe_reach %v", c.Scene.ProbeReach)
	check(c.Scene.DoorSwingSpeed > 0, "scene.door_swing_speed %v", c.Scene.DoorSwingSpeed)
	check(c.Scene.InteractDistance > 0, "scene.interact_distance %v", c.Scene.InteractDistance)
	check(c.Scene.MeshWorkers >= 0, "scene.mesh_workers %d", c.Scene.MeshWorkers)
	check(len(c.Lights.Setups) == 0 || (c.Lights.Initial >= 0 && c.Lights.Initial < len(c.Lights.Setups)),
		"lights.initial %d of %d setups", c.Lights.Initial, len(c.Lights.Setups))

	return errors.Join(errs...)
}

// IsInvalid reports whether err came from Validate.
func IsInvalid(err error) bool {
	return errors.Is(err, errInvalid)
}
