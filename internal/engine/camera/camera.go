// Package camera provides a free-flying camera for 3D rendering.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a first-person camera defined by an eye position and a view
// direction. Movement is relative to the current view orientation.
type Camera struct {
	eye  mgl32.Vec3
	view mgl32.Vec3
	up   mgl32.Vec3

	// LookSensitivity converts mouse deltas (pixels) to radians.
	LookSensitivity float32
	// MaxPitch limits how close the view may get to straight up or down,
	// as the cosine of the angle to the up vector.
	MaxPitch float32
}

// New creates a camera at the origin looking down -Z.
func New() *Camera {
	return &Camera{
		eye:             mgl32.Vec3{0, 0, 0},
		view:            mgl32.Vec3{0, 0, -1},
		up:              mgl32.Vec3{0, 1, 0},
		LookSensitivity: 0.005,
		MaxPitch:        0.99,
	}
}

// right returns the unit vector pointing to the camera's right.
func (c *Camera) right() mgl32.Vec3 {
	return c.view.Cross(c.up).Normalize()
}

// MoveForward moves the eye along the view direction.
func (c *Camera) MoveForward(speed float32) {
	c.eye = c.eye.Add(c.view.Mul(speed))
}

// MoveBackward moves the eye against the view direction.
func (c *Camera) MoveBackward(speed float32) {
	c.eye = c.eye.Sub(c.view.Mul(speed))
}

// MoveLeft strafes left.
func (c *Camera) MoveLeft(speed float32) {
	c.eye = c.eye.Sub(c.right().Mul(speed))
}

// MoveRight strafes right.
func (c *Camera) MoveRight(speed float32) {
	c.eye = c.eye.Add(c.right().Mul(speed))
}

// MoveUp moves the eye along the up vector.
func (c *Camera) MoveUp(speed float32) {
	c.eye = c.eye.Add(c.up.Mul(speed))
}

// MoveDown moves the eye against the up vector.
func (c *Camera) MoveDown(speed float32) {
	c.eye = c.eye.Sub(c.up.Mul(speed))
}

// MouseLook turns the view by a mouse delta: dx yaws around the up vector,
// dy pitches around the right vector. Pitch that would bring the view
// within MaxPitch of the up axis is dropped.
func (c *Camera) MouseLook(dx, dy float32) {
	if dx != 0 {
		yaw := mgl32.HomogRotate3D(-dx*c.LookSensitivity, c.up)
		c.view = yaw.Mul4x1(c.view.Vec4(0)).Vec3().Normalize()
	}
	if dy != 0 {
		pitch := mgl32.HomogRotate3D(-dy*c.LookSensitivity, c.right())
		view := pitch.Mul4x1(c.view.Vec4(0)).Vec3().Normalize()
		if math32.Abs(view.Dot(c.up)) < c.MaxPitch {
			c.view = view
		}
	}
}

// SetEyePosition places the eye at an absolute position.
func (c *Camera) SetEyePosition(x, y, z float32) {
	c.eye = mgl32.Vec3{x, y, z}
}

// SetViewDirection points the camera along dir. A zero vector is ignored.
func (c *Camera) SetViewDirection(x, y, z float32) {
	dir := mgl32.Vec3{x, y, z}
	if dir.Len() == 0 {
		return
	}
	c.view = dir.Normalize()
}

// EyePosition returns the eye position in world space.
func (c *Camera) EyePosition() mgl32.Vec3 {
	return c.eye
}

// ViewDirection returns the unit view direction.
func (c *Camera) ViewDirection() mgl32.Vec3 {
	return c.view
}

// WorldToViewMatrix returns the view matrix for the current eye and view.
func (c *Camera) WorldToViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.eye, c.eye.Add(c.view), c.up)
}
