package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Window.Height)
	}
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Window.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Scene.WallHeight != 2.4 {
		t.Errorf("expected wall height 2.4, got %f", cfg.Scene.WallHeight)
	}
	if cfg.Scene.PointCloudSpacing != 1 {
		t.Errorf("expected point cloud spacing 1, got %f", cfg.Scene.PointCloudSpacing)
	}
	if cfg.Scene.InteractDistance != 2.5 {
		t.Errorf("expected interact distance 2.5, got %f", cfg.Scene.InteractDistance)
	}

	if len(cfg.Lights.Setups) == 0 {
		t.Error("expected built-in light setups")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  title: "test level"
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

scene:
  wall_height: 3
  point_cloud_spacing: 0.5
  probe_reach: 0.4
  mesh_workers: 2

lights:
  initial: 0
  setups:
    - name: "single"
      ambient: 0.2
      lights:
        - position: [1, 2, 3]
          color: [1, 1, 1]
          radius: 4
          strength: 1.5

logging:
  level: "debug"
  log_file: "levelkit.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Title != "test level" {
		t.Errorf("expected title 'test level', got %q", cfg.Window.Title)
	}
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Window.Width)
	}
	if !cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Window.VSync {
		t.Error("expected vsync to be false")
	}

	if cfg.Scene.WallHeight != 3 {
		t.Errorf("expected wall height 3, got %f", cfg.Scene.WallHeight)
	}
	if cfg.Scene.PointCloudSpacing != 0.5 {
		t.Errorf("expected spacing 0.5, got %f", cfg.Scene.PointCloudSpacing)
	}
	if cfg.Scene.MeshWorkers != 2 {
		t.Errorf("expected 2 mesh workers, got %d", cfg.Scene.MeshWorkers)
	}
	// Unset keys keep their defaults.
	if cfg.Scene.DoorSwingSpeed != 5 {
		t.Errorf("expected default door swing speed 5, got %f", cfg.Scene.DoorSwingSpeed)
	}

	if len(cfg.Lights.Setups) != 1 {
		t.Fatalf("expected file setups to replace presets, got %d", len(cfg.Lights.Setups))
	}
	setup, err := cfg.Lights.Setups.Setup(0)
	if err != nil {
		t.Fatalf("Setup(0) error: %v", err)
	}
	if setup.Name != "single" || len(setup.Lights) != 1 {
		t.Fatalf("unexpected setup %+v", setup)
	}
	if l := setup.Lights[0]; l.Position[2] != 3 || l.Radius != 4 || l.Strength != 1.5 {
		t.Errorf("unexpected light %+v", l)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "levelkit.log" {
		t.Errorf("expected log file 'levelkit.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadKeepsPresetsWithoutSetups(t *testing.T) {
	cfg := Default()
	want := len(cfg.Lights.Setups)
	if err := Parse(cfg, []byte("lights:\n  initial: 1\n")); err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(cfg.Lights.Setups) != want {
		t.Errorf("expected %d presets kept, got %d", want, len(cfg.Lights.Setups))
	}
	if cfg.Lights.Initial != 1 {
		t.Errorf("expected initial setup 1, got %d", cfg.Lights.Initial)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
	if len(cfg.Lights.Setups) == 0 {
		t.Error("failed parse should keep the presets")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero spacing", func(c *Config) { c.Scene.PointCloudSpacing = 0 }},
		{"negative reach", func(c *Config) { c.Scene.ProbeReach = -1 }},
		{"zero swing speed", func(c *Config) { c.Scene.DoorSwingSpeed = 0 }},
		{"zero wall height", func(c *Config) { c.Scene.WallHeight = 0 }},
		{"bad window", func(c *Config) { c.Window.Width = 0 }},
		{"setup out of range", func(c *Config) { c.Lights.Initial = 99 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !IsInvalid(err) {
				t.Errorf("IsInvalid(%v) = false", err)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv("HOME", tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Scene.PointCloudSpacing = 0.25
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile() error: %v", err)
	}
	if loaded.Scene.PointCloudSpacing != 0.25 {
		t.Errorf("expected spacing 0.25, got %f", loaded.Scene.PointCloudSpacing)
	}
	if len(loaded.Lights.Setups) != len(cfg.Lights.Setups) {
		t.Errorf("expected %d setups, got %d", len(cfg.Lights.Setups), len(loaded.Lights.Setups))
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 2560 || cfg.Window.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Window.Width, cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "spacing flag",
			setup: func() { *flagSpacing = 0.5 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Scene.PointCloudSpacing != 0.5 {
					t.Errorf("expected spacing 0.5, got %f", cfg.Scene.PointCloudSpacing)
				}
			},
			teardown: func() { *flagSpacing = 0 },
		},
		{
			name:  "lights flag",
			setup: func() { *flagLights = 1 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Lights.Initial != 1 {
					t.Errorf("expected initial setup 1, got %d", cfg.Lights.Initial)
				}
			},
			teardown: func() { *flagLights = -1 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width from flag, height from file
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("scene:\n  point_cloud_spacing: -1\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !IsInvalid(err) {
		t.Errorf("Load() error = %v, want validation error", err)
	}
}

func TestLoadFile(t *testing.T) {
	cfg, err := LoadFile("")
	if err != nil {
		t.Fatalf("LoadFile(\"\") error: %v", err)
	}
	if cfg.Scene.WallHeight != 2.4 {
		t.Errorf("expected default wall height, got %f", cfg.Scene.WallHeight)
	}

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("scene:\n  interact_distance: 4\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	cfg, err = LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if cfg.Scene.InteractDistance != 4 {
		t.Errorf("expected interact distance 4, got %f", cfg.Scene.InteractDistance)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
