// Package lanterns builds the sky lantern scene and advances its animation.
package lanterns

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/chewxy/math32"

	"github.com/Faultbox/skylanterns/internal/engine/scene"
	"github.com/Faultbox/skylanterns/pkg/noise"
)

// Animation constants.
const (
	SkyScale    = 100
	AnchorScale = 0.006

	RotationStep = 0.01
	RotationWrap = 360

	RiseStep   = 0.005
	RiseTop    = 0.45
	RiseBottom = -1.55

	// Starting heights of the two anchors.
	Anchor1Start = -1.3
	Anchor2Start = -2.2

	// Lantern spin relative to the anchor rotation.
	LanternSpin = 10

	// Probability out of 10 that a pair uses the first lantern object.
	FirstLanternOdds = 7
)

// Placement ranges for lanterns in anchor space.
const (
	MaxX    = 80
	MaxY    = 200
	MaxZ    = 80
	MinSize = 3
	MaxSize = 8
)

// ErrMissingObject is returned when Build is given an incomplete object set.
var ErrMissingObject = errors.New("lanterns: missing object")

// Objects are the drawables shared by the scene nodes.
type Objects struct {
	Sky      scene.Object
	Anchor   scene.Object
	Lantern  scene.Object
	Lantern2 scene.Object
}

// Options control scene construction.
type Options struct {
	Count int // lanterns per anchor
	Seed  uint64
}

// Placement is the fixed position and size of one lantern pair.
type Placement struct {
	X, Y, Z float32
	Size    float32
	Second  bool // uses the second lantern object
}

// Scene holds the node IDs and animation state of the lantern scene.
type Scene struct {
	graph *scene.Graph

	Sky      scene.NodeID
	Anchors  [2]scene.NodeID
	Lanterns [2][]scene.NodeID

	placements []Placement
	rotation   float32
	heights    [2]float32
}

// Build creates the sky, two anchors and Count lantern pairs in graph.
// The returned scene's root is Sky.
func Build(graph *scene.Graph, objs Objects, opts Options) (*Scene, error) {
	if objs.Sky == nil || objs.Anchor == nil || objs.Lantern == nil || objs.Lantern2 == nil {
		return nil, ErrMissingObject
	}
	if opts.Count < 0 {
		return nil, fmt.Errorf("lanterns: negative count %d", opts.Count)
	}

	s := &Scene{
		graph:      graph,
		placements: Place(opts.Count, opts.Seed),
		heights:    [2]float32{Anchor1Start, Anchor2Start},
	}

	var err error
	if s.Sky, err = graph.NewNode(objs.Sky, 1); err != nil {
		return nil, fmt.Errorf("creating sky: %w", err)
	}
	for a := range s.Anchors {
		if s.Anchors[a], err = graph.NewNode(objs.Anchor, 1); err != nil {
			return nil, fmt.Errorf("creating anchor %d: %w", a+1, err)
		}
		if err := graph.AddChild(s.Sky, s.Anchors[a]); err != nil {
			return nil, err
		}
		s.Lanterns[a] = make([]scene.NodeID, 0, opts.Count)
	}

	for i, p := range s.placements {
		obj := objs.Lantern
		if p.Second {
			obj = objs.Lantern2
		}
		brightness := noise.Simplex1(float32(i) / 10)
		for a, anchor := range s.Anchors {
			id, err := graph.NewNode(obj, brightness)
			if err != nil {
				return nil, fmt.Errorf("creating lantern %d: %w", i, err)
			}
			if err := graph.AddChild(anchor, id); err != nil {
				return nil, err
			}
			s.Lanterns[a] = append(s.Lanterns[a], id)
		}
	}

	s.apply()
	return s, nil
}

// Place draws count placements from a generator seeded with seed. Object
// choices are drawn first, then coordinates and sizes.
func Place(count int, seed uint64) []Placement {
	rng := rand.New(rand.NewPCG(seed, seed^0xda3e39cb94b95bdb))
	out := make([]Placement, count)
	for i := range out {
		out[i].Second = int(rng.Float32()*10) >= FirstLanternOdds
	}
	for i := range out {
		out[i].X = rng.Float32() * MaxX
		out[i].Y = rng.Float32() * MaxY
		out[i].Z = rng.Float32() * MaxZ
		out[i].Size = rng.Float32()*(MaxSize-MinSize) + MinSize
	}
	return out
}

// Step advances the animation by one frame and rewrites every local
// transform.
func (s *Scene) Step() {
	s.rotation += RotationStep
	if s.rotation > RotationWrap {
		s.rotation = 0
	}
	for a := range s.heights {
		h := s.heights[a] + RiseStep
		if h > RiseTop {
			h = RiseBottom
		}
		s.heights[a] = round3(h)
	}
	s.apply()
}

func (s *Scene) apply() {
	sky := s.graph.Local(s.Sky)
	sky.LoadIdentity()
	sky.Scale(SkyScale, SkyScale, SkyScale)

	for a, anchor := range s.Anchors {
		t := s.graph.Local(anchor)
		t.LoadIdentity()
		t.Translate(0, s.heights[a], 0)
		t.Rotate(s.rotation, 0, 1, 0)
		t.Scale(AnchorScale, AnchorScale, AnchorScale)
	}

	// Quarters alternate the sign of x; the last two mirror z.
	n := len(s.placements)
	signX, signZ := float32(1), float32(1)
	for q := 1; q <= 4; q++ {
		for i := (q - 1) * n / 4; i < q*n/4; i++ {
			p := s.placements[i]
			for a := range s.Lanterns {
				t := s.graph.Local(s.Lanterns[a][i])
				t.LoadIdentity()
				t.Translate(p.X*signX, p.Y, p.Z*signZ)
				t.Rotate(signX*signZ*s.rotation*LanternSpin, 0, 1, 0)
				t.Scale(p.Size, p.Size, p.Size)
			}
		}
		signX = -signX
		if q == 2 {
			signZ = -signZ
		}
	}
}

func round3(v float32) float32 {
	return math32.Round(v*1000) / 1000
}

// Root returns the sky node.
func (s *Scene) Root() scene.NodeID { return s.Sky }

// Rotation returns the current anchor rotation in degrees.
func (s *Scene) Rotation() float32 { return s.rotation }

// Height returns the current height of anchor a (0 or 1).
func (s *Scene) Height(a int) float32 { return s.heights[a] }

// Placements returns the lantern placements.
func (s *Scene) Placements() []Placement { return s.placements }

// Count returns the number of lanterns per anchor.
func (s *Scene) Count() int { return len(s.placements) }
