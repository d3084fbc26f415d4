// Package scene implements a hierarchical scene graph.
//
// Nodes live in an arena owned by a Graph and are addressed by NodeID.
// Every node holds an ordered list of child IDs and an optional parent ID,
// so the tree keeps its parent back-references without shared ownership.
// A frame is two passes over the tree: Update composes world transforms,
// uploads per-node uniforms and advances brightness; Draw issues the draw
// calls.
package scene

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/skylanterns/pkg/noise"
)

// Uniform names shared with the GLSL programs.
const (
	UniformDiffuseMap = "u_DiffuseMap"
	UniformModel      = "model"
	UniformView       = "view"
	UniformProjection = "projection"
	UniformLightColor = "lightColor"
	UniformLightPos   = "lightPos"
	UniformAmbient    = "ambientIntensity"
	UniformBrightness = "brightness"
)

// Brightness oscillation policy.
const (
	BrightnessLow   = 0.4
	BrightnessHigh  = 1.3
	MinStep         = 0.005
	AmbientStrength = 0.5
)

// Contract violations reported by the graph.
var (
	ErrUnknownNode     = errors.New("scene: unknown node")
	ErrAlreadyParented = errors.New("scene: node already has a parent")
	ErrCycle           = errors.New("scene: node cannot be its own ancestor")
)

// NodeID identifies a node inside a Graph.
type NodeID int

// NoNode is the parent of a root node.
const NoNode NodeID = -1

// Object is anything a node can draw with its bound program.
type Object interface {
	Render()
}

// Program is a compiled shading program with named uniforms.
type Program interface {
	Bind()
	SetInt(name string, v int32)
	SetFloat(name string, v float32)
	SetVec3(name string, v mgl32.Vec3)
	SetMat4(name string, m mgl32.Mat4)
	Delete()
}

// ProgramFactory builds a fresh program for a new node.
type ProgramFactory func() (Program, error)

// Viewer provides the view state a node needs during Update.
type Viewer interface {
	WorldToViewMatrix() mgl32.Mat4
	EyePosition() mgl32.Vec3
	ViewDirection() mgl32.Vec3
}

type node struct {
	object  Object
	program Program

	local Transform
	world Transform

	brightness float32
	step       float32
	decreasing bool
	color      mgl32.Vec3

	parent   NodeID
	children []NodeID
}

// Graph owns every node of one scene tree.
type Graph struct {
	nodes      []node
	newProgram ProgramFactory
	rng        *rand.Rand
}

// NewGraph creates an empty graph. newProgram is called once per node;
// seed drives the random node colors.
func NewGraph(newProgram ProgramFactory, seed uint64) *Graph {
	return &Graph{
		newProgram: newProgram,
		rng:        rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// NewNode adds a detached node drawing obj. The brightness step is seeded
// from noise at the initial brightness and never drops below MinStep.
func (g *Graph) NewNode(obj Object, brightness float32) (NodeID, error) {
	var prog Program
	if g.newProgram != nil {
		p, err := g.newProgram()
		if err != nil {
			return NoNode, fmt.Errorf("creating node program: %w", err)
		}
		prog = p
	}

	step := math32.Max(math32.Abs(noise.Simplex1(brightness))/10, MinStep)

	g.nodes = append(g.nodes, node{
		object:     obj,
		program:    prog,
		local:      NewTransform(),
		world:      NewTransform(),
		brightness: brightness,
		step:       step,
		decreasing: true,
		color: mgl32.Vec3{
			g.rng.Float32() + 0.3,
			g.rng.Float32() + 0.3,
			g.rng.Float32() + 0.3,
		},
		parent: NoNode,
	})
	return NodeID(len(g.nodes) - 1), nil
}

// NewGroup adds a detached node with no object. Neither the node nor its
// children are updated or drawn.
func (g *Graph) NewGroup() NodeID {
	g.nodes = append(g.nodes, node{
		local:      NewTransform(),
		world:      NewTransform(),
		brightness: 1,
		step:       MinStep,
		decreasing: true,
		parent:     NoNode,
	})
	return NodeID(len(g.nodes) - 1)
}

// AddChild attaches child under parent. A node can be attached once.
func (g *Graph) AddChild(parent, child NodeID) error {
	if !g.valid(parent) || !g.valid(child) {
		return ErrUnknownNode
	}
	if g.nodes[child].parent != NoNode {
		return fmt.Errorf("%w: node %d", ErrAlreadyParented, child)
	}
	for p := parent; p != NoNode; p = g.nodes[p].parent {
		if p == child {
			return fmt.Errorf("%w: node %d", ErrCycle, child)
		}
	}

	g.nodes[child].parent = parent
	g.nodes[parent].children = append(g.nodes[parent].children, child)
	return nil
}

// Update recomputes world transforms and uploads uniforms for id and its
// subtree, advancing each node's brightness once.
func (g *Graph) Update(id NodeID, projection mgl32.Mat4, viewer Viewer) {
	n := &g.nodes[id]
	if n.object == nil {
		return
	}

	root := n.parent == NoNode
	if root {
		n.world = n.local
	} else {
		n.world = g.nodes[n.parent].world
		n.world.Mul(n.local)
	}

	if p := n.program; p != nil {
		p.Bind()
		p.SetInt(UniformDiffuseMap, 0)
		p.SetMat4(UniformModel, n.world.Matrix())
		p.SetMat4(UniformView, viewer.WorldToViewMatrix())
		p.SetMat4(UniformProjection, projection)

		// The root is the sky; it is lit white at full brightness.
		if root {
			p.SetVec3(UniformLightColor, mgl32.Vec3{1, 1, 1})
		} else {
			p.SetVec3(UniformLightColor, n.color)
		}
		p.SetVec3(UniformLightPos, viewer.EyePosition().Add(viewer.ViewDirection()))
		p.SetFloat(UniformAmbient, AmbientStrength)
		if root {
			p.SetFloat(UniformBrightness, 1)
		} else {
			p.SetFloat(UniformBrightness, n.brightness)
		}
	}

	n.oscillate()

	for _, c := range n.children {
		g.Update(c, projection, viewer)
	}
}

func (n *node) oscillate() {
	if n.brightness < BrightnessLow {
		n.decreasing = false
	} else if n.brightness > BrightnessHigh {
		n.decreasing = true
	}
	if n.decreasing {
		n.brightness -= n.step
	} else {
		n.brightness += n.step
	}
}

// Draw renders id and its subtree. A node without an object draws nothing,
// including its children.
func (g *Graph) Draw(id NodeID) {
	n := &g.nodes[id]
	if n.object == nil {
		return
	}
	if n.program != nil {
		n.program.Bind()
	}
	n.object.Render()
	for _, c := range n.children {
		g.Draw(c)
	}
}

// Local returns the node's local transform for direct mutation.
func (g *Graph) Local(id NodeID) *Transform {
	return &g.nodes[id].local
}

// World returns the node's world transform as of the last Update.
func (g *Graph) World(id NodeID) *Transform {
	return &g.nodes[id].world
}

// Brightness returns the node's internal brightness.
func (g *Graph) Brightness(id NodeID) float32 {
	return g.nodes[id].brightness
}

// Step returns the node's brightness step.
func (g *Graph) Step(id NodeID) float32 {
	return g.nodes[id].step
}

// Color returns the node's light color.
func (g *Graph) Color(id NodeID) mgl32.Vec3 {
	return g.nodes[id].color
}

// Parent returns the node's parent, or NoNode for a root.
func (g *Graph) Parent(id NodeID) NodeID {
	return g.nodes[id].parent
}

// Children returns a copy of the node's children in insertion order.
func (g *Graph) Children(id NodeID) []NodeID {
	return slices.Clone(g.nodes[id].children)
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Destroy releases every node program and empties the graph.
func (g *Graph) Destroy() {
	for i := range g.nodes {
		if p := g.nodes[i].program; p != nil {
			p.Delete()
		}
	}
	g.nodes = nil
}

// ReplacePrograms compiles a new program for every node that has one and
// swaps them in. If any compilation fails the graph keeps its old programs
// and the new ones are released. Later nodes use newProgram.
func (g *Graph) ReplacePrograms(newProgram ProgramFactory) error {
	fresh := make([]Program, len(g.nodes))
	for i := range g.nodes {
		if g.nodes[i].program == nil {
			continue
		}
		p, err := newProgram()
		if err != nil {
			for _, q := range fresh[:i] {
				if q != nil {
					q.Delete()
				}
			}
			return fmt.Errorf("replacing program of node %d: %w", i, err)
		}
		fresh[i] = p
	}

	for i := range g.nodes {
		if fresh[i] == nil {
			continue
		}
		g.nodes[i].program.Delete()
		g.nodes[i].program = fresh[i]
	}
	g.newProgram = newProgram
	return nil
}

func (g *Graph) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(g.nodes)
}
