// Package object provides GPU-backed render primitives for scene nodes.
package object

// Object is a drawable primitive with a diffuse texture.
type Object interface {
	// Render draws the object with the currently bound program, sampling
	// its texture from unit 0.
	Render()
	// LoadTexture replaces the object's texture with the image at path.
	// On failure the previous texture stays bound and an error is returned.
	LoadTexture(path string) error
	// Close releases GPU resources.
	Close()
}
