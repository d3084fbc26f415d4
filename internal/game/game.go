// Package game implements the main loop: input, animation, render, pacing
// and presentation, once per frame on the calling goroutine.
package game

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/skylanterns/internal/engine/input"
	"github.com/Faultbox/skylanterns/internal/engine/renderer"
	"github.com/Faultbox/skylanterns/internal/logger"
)

// Platform is the window surface the loop drives.
type Platform interface {
	PollEvents(dst []input.Event) []input.Event
	SwapBuffers()
}

// Animator advances the scene by one frame.
type Animator interface {
	Step()
}

// Reloader rebuilds resources whose sources changed on disk.
type Reloader interface {
	Pending() bool
	Reload() error
}

// Config holds loop configuration.
type Config struct {
	CameraSpeed float32
	Bindings    input.Bindings
	Pacer       *Pacer

	// Screenshot saves the rendered frame and returns where it went.
	Screenshot func() (string, error)

	// Shaders, when set, is polled once per frame before rendering.
	Shaders Reloader
}

// Game is the main loop instance.
type Game struct {
	config   Config
	running  bool
	platform Platform
	renderer *renderer.Renderer
	animator Animator

	events     []input.Event
	dragging   bool
	screenshot bool

	frames   int
	fpsTimer time.Time
}

// New creates a loop over an already initialized platform and renderer.
// A nil pacer disables pacing; nil bindings use the defaults.
func New(cfg Config, platform Platform, r *renderer.Renderer, animator Animator) *Game {
	if cfg.Bindings == nil {
		cfg.Bindings = input.DefaultBindings()
	}
	return &Game{
		config:   cfg,
		platform: platform,
		renderer: r,
		animator: animator,
	}
}

// Run loops until a quit event or Stop.
func (g *Game) Run() error {
	if _, err := g.renderer.Camera(0); err != nil {
		return fmt.Errorf("main loop: %w", err)
	}

	g.running = true
	g.fpsTimer = g.now()

	logger.Info("starting main loop")
	for g.running {
		g.Frame()
	}
	logger.Info("main loop stopped")
	return nil
}

// Stop makes Run return after the current frame.
func (g *Game) Stop() {
	g.running = false
}

// Running reports whether the loop has not been asked to quit.
func (g *Game) Running() bool {
	return g.running
}

// Frame runs one iteration. It reports false once a quit was requested;
// the frame that saw the quit is not drawn.
func (g *Game) Frame() bool {
	if p := g.config.Pacer; p != nil {
		p.Begin()
	}

	// 1. Process input
	if !g.handleEvents() {
		g.running = false
		return false
	}

	// 2. Animate
	if g.animator != nil {
		g.animator.Step()
	}

	// 3. Render
	g.reloadShaders()
	g.renderer.Update()
	g.renderer.Render()
	if g.screenshot {
		g.screenshot = false
		g.saveScreenshot()
	}

	// 4. Pace, then present
	if p := g.config.Pacer; p != nil {
		p.Wait()
	}
	g.platform.SwapBuffers()

	g.countFrame()
	return true
}

func (g *Game) handleEvents() bool {
	g.events = g.platform.PollEvents(g.events[:0])

	cam, err := g.renderer.Camera(0)
	if err != nil {
		return false
	}

	for _, ev := range g.events {
		switch ev.Type {
		case input.EventQuit:
			return false

		case input.EventWindowResize:
			g.renderer.Resize(ev.Width, ev.Height)

		case input.EventKeyDown:
			switch action := g.config.Bindings.Action(ev.Key); action {
			case input.ActionQuit:
				return false
			case input.ActionScreenshot:
				g.screenshot = g.config.Screenshot != nil
			default:
				input.Apply(action, cam, g.config.CameraSpeed)
			}

		case input.EventMouseDown:
			if ev.Button == input.ButtonLeft {
				g.dragging = true
			}

		case input.EventMouseUp:
			if ev.Button == input.ButtonLeft {
				g.dragging = false
			}

		case input.EventMouseMove:
			if g.dragging {
				cam.MouseLook(float32(ev.DeltaX), float32(ev.DeltaY))
			}
		}
	}
	return true
}

func (g *Game) reloadShaders() {
	s := g.config.Shaders
	if s == nil || !s.Pending() {
		return
	}
	if err := s.Reload(); err != nil {
		logger.Warn("shader reload failed, keeping previous programs", zap.Error(err))
		return
	}
	logger.Info("shaders reloaded")
}

func (g *Game) saveScreenshot() {
	path, err := g.config.Screenshot()
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

func (g *Game) countFrame() {
	g.frames++
	now := g.now()
	if g.fpsTimer.IsZero() {
		g.fpsTimer = now
		return
	}
	if elapsed := now.Sub(g.fpsTimer); elapsed >= time.Second {
		logger.Debug("fps",
			zap.Int("frames", g.frames),
			zap.Float64("fps", float64(g.frames)/elapsed.Seconds()),
		)
		g.frames = 0
		g.fpsTimer = now
	}
}

func (g *Game) now() time.Time {
	if p := g.config.Pacer; p != nil && p.Now != nil {
		return p.Now()
	}
	return time.Now()
}
