package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli"
	"go.uber.org/zap"

	"github.com/Faultbox/levelkit/internal/config"
	"github.com/Faultbox/levelkit/internal/demo"
	"github.com/Faultbox/levelkit/internal/engine/gpu"
	"github.com/Faultbox/levelkit/internal/logger"
	"github.com/Faultbox/levelkit/internal/report"
	"github.com/Faultbox/levelkit/internal/scene"
)

func setup(ctx *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadFile(ctx.GlobalString("config"))
	if err != nil {
		return nil, err
	}
	level := "warn"
	if ctx.GlobalBool("v") {
		level = "debug"
	}
	if err := logger.InitWithFileConfig(level, logger.FileConfig{}, true); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildLevel loads the demo level into a headless registry.
func buildLevel(cfg *config.Config) (*scene.Registry, *gpu.Headless, error) {
	backend := gpu.NewHeadless()
	r := scene.New(cfg.Scene, backend, scene.WithLightProvider(cfg.Lights.Setups))
	if err := r.Init(); err != nil {
		return nil, nil, err
	}
	if err := demo.Build(r, cfg.Scene); err != nil {
		r.Close()
		return nil, nil, err
	}
	if err := r.LoadLightSetup(cfg.Lights.Initial); err != nil {
		r.Close()
		return nil, nil, err
	}
	return r, backend, nil
}

func packLevel(ctx *cli.Context) error {
	cfg, err := setup(ctx)
	if err != nil {
		return err
	}
	defer logger.Sync()

	r, backend, err := buildLevel(cfg)
	if err != nil {
		return err
	}
	defer r.Close()

	if err := r.CreateMeshData(); err != nil {
		return err
	}
	if err := r.CreateRTInstanceData(); err != nil {
		return err
	}
	rt := r.RTScene()
	report.Pack(os.Stdout, rt)
	logger.Debug("headless buffers", zap.Int("live", backend.LiveBuffers()))

	out := ctx.String("out")
	if out == "" {
		return nil
	}
	if err := os.MkdirAll(out, 0o755); err != nil {
		return err
	}
	files := map[string][]byte{
		"vertices.bin":  rt.VertexBytes(),
		"meshes.bin":    rt.MeshBytes(),
		"instances.bin": rt.InstanceBytes(),
	}
	for name, data := range files {
		path := filepath.Join(out, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		logger.Info("wrote buffer", zap.String("path", path), zap.Int("bytes", len(data)))
	}
	return nil
}

func buildCloud(ctx *cli.Context) error {
	cfg, err := setup(ctx)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if s := ctx.Float64("spacing"); s > 0 {
		cfg.Scene.PointCloudSpacing = float32(s)
	}
	if reach := ctx.Float64("reach"); reach > 0 {
		cfg.Scene.ProbeReach = float32(reach)
	}

	r, _, err := buildLevel(cfg)
	if err != nil {
		return err
	}
	defer r.Close()

	if err := r.CreateMeshData(); err != nil {
		return err
	}
	if err := r.CreatePointCloud(); err != nil {
		return err
	}
	report.Cloud(os.Stdout, r.CloudPoints())
	return nil
}

func listLights(ctx *cli.Context) error {
	cfg, err := setup(ctx)
	if err != nil {
		return err
	}
	defer logger.Sync()

	report.Lights(os.Stdout, cfg.Lights.Setups)
	return nil
}

func levelInfo(ctx *cli.Context) error {
	cfg, err := setup(ctx)
	if err != nil {
		return err
	}
	defer logger.Sync()

	r, _, err := buildLevel(cfg)
	if err != nil {
		return err
	}
	defer r.Close()

	if err := r.RecreateDataStructures(); err != nil {
		return err
	}
	report.Level(os.Stdout, r)
	return nil
}
