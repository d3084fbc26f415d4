// Package main is the entry point for the Sky Lanterns viewer.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/skylanterns/internal/assets"
	"github.com/Faultbox/skylanterns/internal/config"
	"github.com/Faultbox/skylanterns/internal/engine/capture"
	"github.com/Faultbox/skylanterns/internal/engine/gpu"
	"github.com/Faultbox/skylanterns/internal/engine/object"
	"github.com/Faultbox/skylanterns/internal/engine/renderer"
	"github.com/Faultbox/skylanterns/internal/engine/scene"
	"github.com/Faultbox/skylanterns/internal/engine/shader"
	"github.com/Faultbox/skylanterns/internal/engine/window"
	"github.com/Faultbox/skylanterns/internal/game"
	"github.com/Faultbox/skylanterns/internal/lanterns"
	"github.com/Faultbox/skylanterns/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, logger.FileConfig{
		Path:       cfg.Logging.LogFile,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
		Format:     cfg.Logging.FileFormat,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Sky Lanterns ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("fatal", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("closed normally")
}

func run(cfg *config.Config) error {
	files := assetManager()
	defer func() {
		hits, misses := files.Stats()
		logger.Debug("asset cache", zap.Int("hits", hits), zap.Int("misses", misses))
		files.Close()
	}()

	// Window first; it makes the GL context current.
	win, err := window.New(window.Config{
		Title:      "Sky Lanterns",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer win.Close()

	device, err := gpu.New()
	if err != nil {
		return err
	}
	bg := cfg.Graphics.ClearColor
	device.SetClearColor(bg[0], bg[1], bg[2], bg[3])

	vertPath, fragPath := cfg.Assets.VertexShader, cfg.Assets.FragmentShader
	newProgram, err := shader.NewFactory(files.Load, vertPath, fragPath)
	if err != nil {
		return fmt.Errorf("failed to load shaders: %w", err)
	}
	graph := scene.NewGraph(newProgram, cfg.Scene.Seed)
	defer graph.Destroy()

	objs, closeObjects, err := loadObjects(files, cfg.Assets)
	if err != nil {
		return err
	}
	defer closeObjects()

	skyScene, err := lanterns.Build(graph, objs, lanterns.Options{
		Count: cfg.Scene.Lanterns,
		Seed:  cfg.Scene.Seed,
	})
	if err != nil {
		return fmt.Errorf("failed to build scene: %w", err)
	}
	logger.Info("scene built",
		zap.Int("lanterns_per_anchor", skyScene.Count()),
		zap.Int("nodes", graph.Len()),
		zap.Uint64("seed", cfg.Scene.Seed),
	)

	width, height := win.Size()
	r := renderer.New(device, width, height)
	if err := r.SetRoot(graph, skyScene.Root()); err != nil {
		return err
	}

	cam, err := r.Camera(0)
	if err != nil {
		return err
	}
	cam.SetEyePosition(cfg.Camera.Eye[0], cfg.Camera.Eye[1], cfg.Camera.Eye[2])
	cam.LookSensitivity = cfg.Camera.LookSensitivity

	var shaders game.Reloader
	if cfg.Assets.WatchShaders {
		reloader, err := shader.NewReloader(graph, files, vertPath, fragPath)
		if err != nil {
			logger.Warn("shader hot reload disabled", zap.Error(err))
		} else {
			defer reloader.Close()
			shaders = reloader
		}
	}

	shots := capture.NewScreenshots(cfg.Graphics.ScreenshotDir, "lanterns")
	g := game.New(game.Config{
		CameraSpeed: cfg.Camera.Speed,
		Pacer:       game.NewPacer(cfg.Graphics.FrameDelay, cfg.Graphics.Pacing == config.PacingAdaptive),
		Screenshot: func() (string, error) {
			w, h := win.Size()
			return shots.Save(device.ReadPixels(w, h), w, h)
		},
		Shaders: shaders,
	}, win, r, skyScene)

	if err := g.Run(); err != nil {
		return err
	}
	if err := device.Error(); err != nil {
		logger.Warn("pending GL error at exit", zap.Error(err))
	}
	return nil
}

// loadObjects creates the four spheres and their textures. A texture that
// fails to load leaves the sphere white.
func loadObjects(files *assets.Manager, paths config.AssetsConfig) (lanterns.Objects, func(), error) {
	var created []*object.Sphere
	closeAll := func() {
		for _, s := range created {
			s.Close()
		}
	}

	textures := []string{paths.SkyTexture, paths.AnchorTexture, paths.LanternTexture, paths.Lantern2Texture}
	spheres := make([]*object.Sphere, len(textures))
	for i, path := range textures {
		s, err := object.NewSphere()
		if err != nil {
			closeAll()
			return lanterns.Objects{}, nil, fmt.Errorf("failed to create sphere: %w", err)
		}
		created = append(created, s)
		if err := s.LoadTextureWith(files.Load, path); err != nil {
			logger.Warn("texture not loaded, using fallback", zap.String("path", path), zap.Error(err))
		}
		spheres[i] = s
	}

	return lanterns.Objects{
		Sky:      spheres[0],
		Anchor:   spheres[1],
		Lantern:  spheres[2],
		Lantern2: spheres[3],
	}, closeAll, nil
}

// assetManager searches the working directory, then the executable's.
func assetManager() *assets.Manager {
	files := assets.NewManager(".")
	if exe, err := os.Executable(); err == nil {
		files.AddDir(filepath.Dir(exe))
	}
	return files
}
