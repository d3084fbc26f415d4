package scene

import "github.com/go-gl/mathgl/mgl32"

// Transform is a 4x4 affine matrix built by right-multiplying elementary
// transforms in the order they are applied.
type Transform struct {
	m mgl32.Mat4
}

// NewTransform returns an identity transform.
func NewTransform() Transform {
	return Transform{m: mgl32.Ident4()}
}

// LoadIdentity resets the transform to the identity matrix.
func (t *Transform) LoadIdentity() {
	t.m = mgl32.Ident4()
}

// Translate appends a translation.
func (t *Transform) Translate(x, y, z float32) {
	t.m = t.m.Mul4(mgl32.Translate3D(x, y, z))
}

// Rotate appends a rotation of angle degrees around the axis (x, y, z).
// The axis does not need to be normalized.
func (t *Transform) Rotate(angle, x, y, z float32) {
	axis := mgl32.Vec3{x, y, z}.Normalize()
	t.m = t.m.Mul4(mgl32.HomogRotate3D(mgl32.DegToRad(angle), axis))
}

// Scale appends a non-uniform scale.
func (t *Transform) Scale(x, y, z float32) {
	t.m = t.m.Mul4(mgl32.Scale3D(x, y, z))
}

// Mul appends another transform.
func (t *Transform) Mul(other Transform) {
	t.m = t.m.Mul4(other.m)
}

// Set replaces the matrix.
func (t *Transform) Set(m mgl32.Mat4) {
	t.m = m
}

// Matrix returns the raw column-major matrix, ready for uniform upload.
func (t Transform) Matrix() mgl32.Mat4 {
	return t.m
}
