package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/skylanterns/internal/engine/camera"
	"github.com/Faultbox/skylanterns/internal/engine/scene"
)

type fakeDevice struct {
	calls []string
	w, h  int
}

func (d *fakeDevice) Viewport(w, h int) {
	d.calls = append(d.calls, "viewport")
	d.w, d.h = w, h
}

func (d *fakeDevice) Clear() {
	d.calls = append(d.calls, "clear")
}

type fakeObject struct {
	dev *fakeDevice
}

func (o *fakeObject) Render() {
	o.dev.calls = append(o.dev.calls, "render")
}

type fakeProgram struct {
	view mgl32.Mat4
	proj mgl32.Mat4
}

func (p *fakeProgram) Bind()                      {}
func (p *fakeProgram) SetInt(string, int32)       {}
func (p *fakeProgram) SetFloat(string, float32)   {}
func (p *fakeProgram) SetVec3(string, mgl32.Vec3) {}
func (p *fakeProgram) SetMat4(name string, m mgl32.Mat4) {
	switch name {
	case scene.UniformView:
		p.view = m
	case scene.UniformProjection:
		p.proj = m
	}
}
func (p *fakeProgram) Delete() {}

func newScene(t *testing.T, dev *fakeDevice) (*scene.Graph, scene.NodeID, *fakeProgram) {
	t.Helper()
	prog := &fakeProgram{}
	g := scene.NewGraph(func() (scene.Program, error) { return prog, nil }, 7)
	root, err := g.NewNode(&fakeObject{dev: dev}, 1)
	require.NoError(t, err)
	return g, root, prog
}

func TestSetRootOnce(t *testing.T) {
	dev := &fakeDevice{}
	r := New(dev, 800, 600)
	g, root, _ := newScene(t, dev)

	require.NoError(t, r.SetRoot(g, root))
	assert.ErrorIs(t, r.SetRoot(g, root), ErrRootAlreadySet)
}

func TestSetRootInvalid(t *testing.T) {
	dev := &fakeDevice{}
	r := New(dev, 800, 600)
	g, _, _ := newScene(t, dev)

	assert.ErrorIs(t, r.SetRoot(g, scene.NodeID(5)), scene.ErrUnknownNode)
	assert.ErrorIs(t, r.SetRoot(nil, 0), scene.ErrUnknownNode)
}

func TestCameraBounds(t *testing.T) {
	r := New(&fakeDevice{}, 800, 600)

	c, err := r.Camera(0)
	require.NoError(t, err)
	assert.NotNil(t, c)

	_, err = r.Camera(1)
	assert.ErrorIs(t, err, ErrNoCamera)
	_, err = r.Camera(-1)
	assert.ErrorIs(t, err, ErrNoCamera)

	idx := r.AddCamera(camera.New())
	assert.Equal(t, 1, idx)
	_, err = r.Camera(1)
	assert.NoError(t, err)
}

func TestUpdateUsesProjectionAndCamera(t *testing.T) {
	dev := &fakeDevice{}
	r := New(dev, 1280, 720)
	g, root, prog := newScene(t, dev)
	require.NoError(t, r.SetRoot(g, root))

	cam, err := r.Camera(0)
	require.NoError(t, err)
	cam.SetEyePosition(0, 0, 70)

	r.Update()
	want := mgl32.Perspective(mgl32.DegToRad(FieldOfView), 1280.0/720.0, NearPlane, FarPlane)
	assert.Equal(t, want, prog.proj)
	assert.Equal(t, cam.WorldToViewMatrix(), prog.view)
}

func TestResizeChangesProjection(t *testing.T) {
	r := New(&fakeDevice{}, 800, 600)
	before := r.Projection()
	r.Resize(1600, 600)
	assert.NotEqual(t, before, r.Projection())

	r.Resize(100, 0)
	assert.NotPanics(t, func() { r.Projection() })
}

func TestRenderClearsThenDraws(t *testing.T) {
	dev := &fakeDevice{}
	r := New(dev, 640, 480)
	g, root, _ := newScene(t, dev)
	require.NoError(t, r.SetRoot(g, root))

	r.Render()
	assert.Equal(t, []string{"viewport", "clear", "render"}, dev.calls)
	assert.Equal(t, 640, dev.w)
	assert.Equal(t, 480, dev.h)
}

func TestRenderWithoutRoot(t *testing.T) {
	dev := &fakeDevice{}
	r := New(dev, 640, 480)
	r.Update()
	r.Render()
	assert.Equal(t, []string{"viewport", "clear"}, dev.calls)
}
