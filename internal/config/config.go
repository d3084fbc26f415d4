// Package config handles configuration loading and management.
package config

import (
	"fmt"
	"time"
)

// Config holds all application settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Scene    SceneConfig    `yaml:"scene"`
	Camera   CameraConfig   `yaml:"camera"`
	Assets   AssetsConfig   `yaml:"assets"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// Frame pacing modes.
const (
	// PacingFixed sleeps FrameDelay after every frame.
	PacingFixed = "fixed"
	// PacingAdaptive sleeps whatever is left of FrameDelay after the frame's work.
	PacingAdaptive = "adaptive"
)

// GraphicsConfig holds display and frame pacing settings.
type GraphicsConfig struct {
	Width         int           `yaml:"width"`
	Height        int           `yaml:"height"`
	Fullscreen    bool          `yaml:"fullscreen"`
	VSync         bool          `yaml:"vsync"`
	FrameDelay    time.Duration `yaml:"frame_delay"`
	Pacing        string        `yaml:"pacing"`
	ScreenshotDir string        `yaml:"screenshot_dir"`
	ClearColor    [4]float32    `yaml:"clear_color"` // RGBA, 0..1
}

// SceneConfig holds lantern scene settings.
type SceneConfig struct {
	Lanterns int    `yaml:"lanterns"` // lanterns per anchor
	Seed     uint64 `yaml:"seed"`
}

// CameraConfig holds camera placement and movement settings.
type CameraConfig struct {
	Eye             [3]float32 `yaml:"eye"`
	Speed           float32    `yaml:"speed"`
	LookSensitivity float32    `yaml:"look_sensitivity"`
}

// AssetsConfig holds shader and texture paths.
type AssetsConfig struct {
	VertexShader    string `yaml:"vertex_shader"`
	FragmentShader  string `yaml:"fragment_shader"`
	SkyTexture      string `yaml:"sky_texture"`
	LanternTexture  string `yaml:"lantern_texture"`
	Lantern2Texture string `yaml:"lantern2_texture"`
	AnchorTexture   string `yaml:"anchor_texture"`
	WatchShaders    bool   `yaml:"watch_shaders"` // recompile on file change
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	FileFormat string `yaml:"file_format"` // console or json
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:         1280,
			Height:        720,
			Fullscreen:    false,
			VSync:         false,
			FrameDelay:    50 * time.Millisecond,
			Pacing:        PacingFixed,
			ScreenshotDir: "screenshots",
			ClearColor:    [4]float32{0, 0, 0.05, 1},
		},
		Scene: SceneConfig{
			Lanterns: 100,
			Seed:     1,
		},
		Camera: CameraConfig{
			Eye:             [3]float32{0, 0, 70},
			Speed:           5,
			LookSensitivity: 0.005,
		},
		Assets: AssetsConfig{
			VertexShader:    "./shaders/vert.glsl",
			FragmentShader:  "./shaders/frag.glsl",
			SkyTexture:      "./assets/stars.ppm",
			LanternTexture:  "./assets/lantern.ppm",
			Lantern2Texture: "./assets/lantern2.ppm",
			AnchorTexture:   "./assets/black.ppm",
		},
		Logging: LoggingConfig{
			Level:      "info",
			LogFile:    "",
			FileFormat: "console",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 14,
		},
	}
}

// Validate reports settings the application cannot run with.
func (c *Config) Validate() error {
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("graphics: invalid size %dx%d", c.Graphics.Width, c.Graphics.Height)
	}
	if c.Graphics.FrameDelay < 0 {
		return fmt.Errorf("graphics: negative frame_delay %s", c.Graphics.FrameDelay)
	}
	switch c.Graphics.Pacing {
	case PacingFixed, PacingAdaptive:
	default:
		return fmt.Errorf("graphics: unknown pacing %q", c.Graphics.Pacing)
	}
	for _, v := range c.Graphics.ClearColor {
		if v < 0 || v > 1 {
			return fmt.Errorf("graphics: clear_color %v outside [0, 1]", c.Graphics.ClearColor)
		}
	}
	if c.Scene.Lanterns < 0 {
		return fmt.Errorf("scene: negative lantern count %d", c.Scene.Lanterns)
	}
	switch c.Logging.FileFormat {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging: unknown file_format %q", c.Logging.FileFormat)
	}
	return nil
}
