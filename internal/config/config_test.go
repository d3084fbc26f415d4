package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if cfg.Graphics.FrameDelay != 50*time.Millisecond {
		t.Errorf("expected frame delay 50ms, got %v", cfg.Graphics.FrameDelay)
	}
	if cfg.Graphics.Pacing != PacingFixed {
		t.Errorf("expected fixed pacing, got %s", cfg.Graphics.Pacing)
	}
	if cfg.Graphics.ClearColor != [4]float32{0, 0, 0.05, 1} {
		t.Errorf("unexpected clear color %v", cfg.Graphics.ClearColor)
	}

	if cfg.Scene.Lanterns != 100 {
		t.Errorf("expected 100 lanterns, got %d", cfg.Scene.Lanterns)
	}
	if cfg.Camera.Eye != [3]float32{0, 0, 70} {
		t.Errorf("expected eye (0, 0, 70), got %v", cfg.Camera.Eye)
	}
	if cfg.Camera.Speed != 5 {
		t.Errorf("expected camera speed 5, got %f", cfg.Camera.Speed)
	}
	if cfg.Assets.VertexShader != "./shaders/vert.glsl" {
		t.Errorf("unexpected vertex shader path %s", cfg.Assets.VertexShader)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  frame_delay: 16ms
  pacing: adaptive
  clear_color: [0.1, 0.2, 0.3, 1]

scene:
  lanterns: 40
  seed: 99

camera:
  eye: [1, 2, 3]
  speed: 2.5

assets:
  sky_texture: "sky/night.ppm"

logging:
  level: "debug"
  log_file: "lanterns.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.FrameDelay != 16*time.Millisecond {
		t.Errorf("expected frame delay 16ms, got %v", cfg.Graphics.FrameDelay)
	}
	if cfg.Graphics.Pacing != PacingAdaptive {
		t.Errorf("expected adaptive pacing, got %s", cfg.Graphics.Pacing)
	}
	if cfg.Graphics.ClearColor != [4]float32{0.1, 0.2, 0.3, 1} {
		t.Errorf("expected clear color override, got %v", cfg.Graphics.ClearColor)
	}
	if cfg.Scene.Lanterns != 40 || cfg.Scene.Seed != 99 {
		t.Errorf("unexpected scene config %+v", cfg.Scene)
	}
	if cfg.Camera.Eye != [3]float32{1, 2, 3} {
		t.Errorf("expected eye (1, 2, 3), got %v", cfg.Camera.Eye)
	}
	if cfg.Camera.Speed != 2.5 {
		t.Errorf("expected camera speed 2.5, got %f", cfg.Camera.Speed)
	}
	if cfg.Assets.SkyTexture != "sky/night.ppm" {
		t.Errorf("expected sky texture override, got %s", cfg.Assets.SkyTexture)
	}
	// Unset keys keep their defaults.
	if cfg.Assets.LanternTexture != "./assets/lantern.ppm" {
		t.Errorf("expected default lantern texture, got %s", cfg.Assets.LanternTexture)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "lanterns.log" {
		t.Errorf("expected log file 'lanterns.log', got %s", cfg.Logging.LogFile)
	}
	if cfg.Logging.MaxSizeMB != 50 || cfg.Logging.FileFormat != "console" {
		t.Errorf("expected default rotation settings, got %+v", cfg.Logging)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
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
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }},
		{"negative height", func(c *Config) { c.Graphics.Height = -1 }},
		{"negative delay", func(c *Config) { c.Graphics.FrameDelay = -time.Millisecond }},
		{"unknown pacing", func(c *Config) { c.Graphics.Pacing = "vsync" }},
		{"negative lanterns", func(c *Config) { c.Scene.Lanterns = -4 }},
		{"unknown log format", func(c *Config) { c.Logging.FileFormat = "xml" }},
		{"clear color above one", func(c *Config) { c.Graphics.ClearColor[2] = 1.5 }},
		{"negative clear color", func(c *Config) { c.Graphics.ClearColor[0] = -0.1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Scene.Seed = 42
	cfg.Graphics.FrameDelay = 20 * time.Millisecond
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload: %v", err)
	}
	if loaded.Scene.Seed != 42 {
		t.Errorf("expected seed 42, got %d", loaded.Scene.Seed)
	}
	if loaded.Graphics.FrameDelay != 20*time.Millisecond {
		t.Errorf("expected frame delay 20ms, got %v", loaded.Graphics.FrameDelay)
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
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("HOME", filepath.Join(tmpDir, "home"))
	os.Chdir(tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
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
				if !cfg.Graphics.Fullscreen {
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
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name: "scene flags",
			setup: func() {
				*flagLanterns = 0
				*flagSeed = 7
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Scene.Lanterns != 0 {
					t.Errorf("expected 0 lanterns, got %d", cfg.Scene.Lanterns)
				}
				if cfg.Scene.Seed != 7 {
					t.Errorf("expected seed 7, got %d", cfg.Scene.Seed)
				}
			},
			teardown: func() {
				*flagLanterns = -1
				*flagSeed = 0
			},
		},
		{
			name:  "watch shaders flag",
			setup: func() { *flagWatch = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Assets.WatchShaders {
					t.Error("expected shader watching to be enabled")
				}
			},
			teardown: func() { *flagWatch = false },
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
graphics:
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
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  pacing: sometimes\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected validation error from Load")
	}
}

func TestExpandPaths(t *testing.T) {
	home, err := homedir.Dir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	cfg := Default()
	cfg.Assets.SkyTexture = "~/lanterns/stars.ppm"
	cfg.Logging.LogFile = "~/lanterns.log"
	if err := cfg.expandPaths(); err != nil {
		t.Fatalf("expandPaths: %v", err)
	}

	if want := filepath.Join(home, "lanterns", "stars.ppm"); cfg.Assets.SkyTexture != want {
		t.Errorf("sky texture = %s, want %s", cfg.Assets.SkyTexture, want)
	}
	if want := filepath.Join(home, "lanterns.log"); cfg.Logging.LogFile != want {
		t.Errorf("log file = %s, want %s", cfg.Logging.LogFile, want)
	}
	// Relative paths are untouched.
	if cfg.Assets.LanternTexture != "./assets/lantern.ppm" {
		t.Errorf("lantern texture changed to %s", cfg.Assets.LanternTexture)
	}

	cfg.Assets.AnchorTexture = "~other/black.ppm"
	if err := cfg.expandPaths(); err == nil {
		t.Error("expected error for ~user paths")
	}
}
