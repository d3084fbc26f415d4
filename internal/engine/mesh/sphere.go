// Package mesh generates procedural geometry.
package mesh

import "math"

// Vertex layout: position (3), normal (3), texture coordinate (2).
const (
	FloatsPerVertex = 8
	Stride          = FloatsPerVertex * 4
	NormalOffset    = 3 * 4
	UVOffset        = 6 * 4
)

// Mesh is interleaved vertex data with triangle indices.
type Mesh struct {
	Vertices []float32
	Indices  []uint32
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / FloatsPerVertex
}

// Position returns the position of vertex i.
func (m *Mesh) Position(i int) [3]float32 {
	v := m.Vertices[i*FloatsPerVertex:]
	return [3]float32{v[0], v[1], v[2]}
}

// Normal returns the normal of vertex i.
func (m *Mesh) Normal(i int) [3]float32 {
	v := m.Vertices[i*FloatsPerVertex+3:]
	return [3]float32{v[0], v[1], v[2]}
}

// UV returns the texture coordinate of vertex i.
func (m *Mesh) UV(i int) [2]float32 {
	v := m.Vertices[i*FloatsPerVertex+6:]
	return [2]float32{v[0], v[1]}
}

// Sphere generates a UV sphere of the given radius centred at the origin.
// stacks runs pole to pole, sectors around the Y axis. Each ring repeats its
// first vertex at the seam so the texture wraps without a gap.
func Sphere(radius float32, stacks, sectors int) *Mesh {
	if stacks < 2 {
		stacks = 2
	}
	if sectors < 3 {
		sectors = 3
	}

	m := &Mesh{
		Vertices: make([]float32, 0, (stacks+1)*(sectors+1)*FloatsPerVertex),
		Indices:  make([]uint32, 0, stacks*sectors*6),
	}

	for i := 0; i <= stacks; i++ {
		v := float64(i) / float64(stacks)
		phi := v * math.Pi // 0 at the north pole
		y := math.Cos(phi)
		ring := math.Sin(phi)

		for j := 0; j <= sectors; j++ {
			u := float64(j) / float64(sectors)
			theta := u * 2 * math.Pi
			x := ring * math.Cos(theta)
			z := ring * math.Sin(theta)

			m.Vertices = append(m.Vertices,
				radius*float32(x), radius*float32(y), radius*float32(z),
				float32(x), float32(y), float32(z),
				float32(u), float32(v),
			)
		}
	}

	row := uint32(sectors + 1)
	for i := 0; i < stacks; i++ {
		for j := 0; j < sectors; j++ {
			a := uint32(i)*row + uint32(j)
			b := a + row
			// Skip the degenerate triangle at each pole.
			if i != 0 {
				m.Indices = append(m.Indices, a, a+1, b)
			}
			if i != stacks-1 {
				m.Indices = append(m.Indices, a+1, b+1, b)
			}
		}
	}

	return m
}
