// Package renderer drives the per-frame update and draw passes of a scene graph.
package renderer

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/skylanterns/internal/engine/camera"
	"github.com/Faultbox/skylanterns/internal/engine/scene"
	"github.com/Faultbox/skylanterns/internal/logger"
)

// Projection parameters.
const (
	FieldOfView = 45.0 // degrees
	NearPlane   = 0.1
	FarPlane    = 512.0
)

var (
	// ErrRootAlreadySet is returned when SetRoot is called twice.
	ErrRootAlreadySet = errors.New("renderer: root already set")
	// ErrNoCamera is returned for an out-of-range camera index.
	ErrNoCamera = errors.New("renderer: no such camera")
)

// Device is the slice of graphics state the renderer touches directly.
type Device interface {
	Viewport(width, height int)
	Clear()
}

// Renderer owns the cameras and the scene root.
type Renderer struct {
	device  Device
	width   int
	height  int
	cameras []*camera.Camera

	graph *scene.Graph
	root  scene.NodeID
}

// New creates a renderer with a single default camera.
func New(device Device, width, height int) *Renderer {
	return &Renderer{
		device:  device,
		width:   width,
		height:  height,
		cameras: []*camera.Camera{camera.New()},
		root:    scene.NoNode,
	}
}

// SetRoot installs the scene root. It may be called once.
func (r *Renderer) SetRoot(graph *scene.Graph, root scene.NodeID) error {
	if r.graph != nil {
		return ErrRootAlreadySet
	}
	if graph == nil || root < 0 || int(root) >= graph.Len() {
		return fmt.Errorf("renderer: invalid root %d: %w", root, scene.ErrUnknownNode)
	}
	r.graph = graph
	r.root = root
	logger.Debug("scene root set", zap.Int("root", int(root)), zap.Int("nodes", graph.Len()))
	return nil
}

// AddCamera appends a camera and returns its index.
func (r *Renderer) AddCamera(c *camera.Camera) int {
	r.cameras = append(r.cameras, c)
	return len(r.cameras) - 1
}

// Camera returns the camera at index i.
func (r *Renderer) Camera(i int) (*camera.Camera, error) {
	if i < 0 || i >= len(r.cameras) {
		return nil, fmt.Errorf("%w: index %d of %d", ErrNoCamera, i, len(r.cameras))
	}
	return r.cameras[i], nil
}

// Resize updates the screen dimensions used for the projection.
func (r *Renderer) Resize(width, height int) {
	r.width = width
	r.height = height
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Projection returns the perspective projection for the current size.
func (r *Renderer) Projection() mgl32.Mat4 {
	aspect := float32(1)
	if r.height > 0 {
		aspect = float32(r.width) / float32(r.height)
	}
	return mgl32.Perspective(mgl32.DegToRad(FieldOfView), aspect, NearPlane, FarPlane)
}

// Update runs the update pass from the root using camera 0.
func (r *Renderer) Update() {
	if r.graph == nil || len(r.cameras) == 0 {
		return
	}
	r.graph.Update(r.root, r.Projection(), r.cameras[0])
}

// Render clears the frame and runs the draw pass from the root.
func (r *Renderer) Render() {
	r.device.Viewport(r.width, r.height)
	r.device.Clear()
	if r.graph == nil {
		return
	}
	r.graph.Draw(r.root)
}
