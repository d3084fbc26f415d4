package object

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/skylanterns/internal/engine/mesh"
	"github.com/Faultbox/skylanterns/internal/engine/texture"
	"github.com/Faultbox/skylanterns/internal/logger"
)

// Sphere tessellation.
const (
	SphereStacks  = 32
	SphereSectors = 64
)

// Sphere is a textured unit sphere.
type Sphere struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
	tex        uint32
}

var _ Object = (*Sphere)(nil)

// NewSphere builds the sphere mesh and uploads it. It must be called with a
// current GL context. The sphere starts with a white texture.
func NewSphere() (*Sphere, error) {
	m := mesh.Sphere(1, SphereStacks, SphereSectors)
	if len(m.Indices) == 0 {
		return nil, fmt.Errorf("sphere: empty mesh")
	}

	s := &Sphere{indexCount: int32(len(m.Indices))}

	gl.GenVertexArrays(1, &s.vao)
	gl.BindVertexArray(s.vao)

	gl.GenBuffers(1, &s.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*4, unsafe.Pointer(&m.Vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &s.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, s.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	// position, normal, texCoord
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, mesh.Stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, mesh.Stride, mesh.NormalOffset)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, mesh.Stride, mesh.UVOffset)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)

	s.tex = upload(texture.Solid(color.RGBA{R: 255, G: 255, B: 255, A: 255}))

	logger.Debug("sphere created",
		zap.Uint32("vao", s.vao),
		zap.Int32("indices", s.indexCount),
	)
	return s, nil
}

// LoadTexture decodes the image at path and uploads it as the diffuse map.
func (s *Sphere) LoadTexture(path string) error {
	return s.LoadTextureWith(os.ReadFile, path)
}

// LoadTextureWith is LoadTexture with the file bytes supplied by load.
func (s *Sphere) LoadTextureWith(load func(string) ([]byte, error), path string) error {
	img, err := texture.LoadWith(load, path)
	if err != nil {
		return fmt.Errorf("sphere texture: %w", err)
	}
	if s.tex != 0 {
		gl.DeleteTextures(1, &s.tex)
	}
	s.tex = upload(img)
	logger.Debug("texture loaded",
		zap.String("path", path),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()),
	)
	return nil
}

// Render draws the sphere.
func (s *Sphere) Render() {
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, s.tex)
	gl.BindVertexArray(s.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, s.indexCount, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

// Close releases the sphere's buffers and texture.
func (s *Sphere) Close() {
	if s.tex != 0 {
		gl.DeleteTextures(1, &s.tex)
	}
	if s.ebo != 0 {
		gl.DeleteBuffers(1, &s.ebo)
	}
	if s.vbo != 0 {
		gl.DeleteBuffers(1, &s.vbo)
	}
	if s.vao != 0 {
		gl.DeleteVertexArrays(1, &s.vao)
	}
	*s = Sphere{}
}

func upload(img *image.RGBA) uint32 {
	var texID uint32
	gl.GenTextures(1, &texID)
	gl.BindTexture(gl.TEXTURE_2D, texID)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(img.Bounds().Dx()), int32(img.Bounds().Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return texID
}
