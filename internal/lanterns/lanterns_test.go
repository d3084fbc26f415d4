package lanterns

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/skylanterns/internal/engine/scene"
	"github.com/Faultbox/skylanterns/pkg/noise"
)

type drawLog []string

type namedObject struct {
	name string
	log  *drawLog
}

func (o *namedObject) Render() {
	*o.log = append(*o.log, o.name)
}

func testObjects(log *drawLog) Objects {
	return Objects{
		Sky:      &namedObject{"sky", log},
		Anchor:   &namedObject{"anchor", log},
		Lantern:  &namedObject{"lantern", log},
		Lantern2: &namedObject{"lantern2", log},
	}
}

func build(t *testing.T, count int, seed uint64) (*Scene, *scene.Graph, *drawLog) {
	t.Helper()
	log := &drawLog{}
	g := scene.NewGraph(nil, 1)
	s, err := Build(g, testObjects(log), Options{Count: count, Seed: seed})
	require.NoError(t, err)
	return s, g, log
}

func TestBuildRejectsMissingObject(t *testing.T) {
	log := &drawLog{}
	objs := testObjects(log)
	objs.Lantern2 = nil

	_, err := Build(scene.NewGraph(nil, 1), objs, Options{Count: 4})
	assert.ErrorIs(t, err, ErrMissingObject)

	_, err = Build(scene.NewGraph(nil, 1), testObjects(log), Options{Count: -1})
	assert.Error(t, err)
}

func TestBuildStructure(t *testing.T) {
	s, g, _ := build(t, 8, 42)

	assert.Equal(t, 3+2*8, g.Len())
	assert.Equal(t, s.Sky, s.Root())
	assert.Equal(t, scene.NoNode, g.Parent(s.Sky))
	assert.Equal(t, []scene.NodeID{s.Anchors[0], s.Anchors[1]}, g.Children(s.Sky))

	for a, anchor := range s.Anchors {
		assert.Equal(t, s.Sky, g.Parent(anchor))
		assert.Equal(t, s.Lanterns[a], g.Children(anchor))
		assert.Len(t, s.Lanterns[a], 8)
		assert.Equal(t, float32(1), g.Brightness(anchor))
	}
	assert.Equal(t, float32(1), g.Brightness(s.Sky))
}

func TestBuildLanternBrightnessFromNoise(t *testing.T) {
	s, g, _ := build(t, 12, 3)

	for i := 0; i < s.Count(); i++ {
		want := noise.Simplex1(float32(i) / 10)
		assert.Equal(t, want, g.Brightness(s.Lanterns[0][i]), "lantern %d", i)
		assert.Equal(t, want, g.Brightness(s.Lanterns[1][i]), "lantern %d", i)
	}
}

func TestBuildPairsShareObject(t *testing.T) {
	s, g, log := build(t, 40, 9)
	g.Draw(s.Root())

	// Draw order: sky, anchor 1, its lanterns, anchor 2, its lanterns.
	n := s.Count()
	require.Len(t, *log, 3+2*n)
	first := (*log)[2 : 2+n]
	second := (*log)[3+n:]
	assert.Equal(t, first, second)

	for i, p := range s.Placements() {
		want := "lantern"
		if p.Second {
			want = "lantern2"
		}
		assert.Equal(t, want, first[i], "pair %d", i)
	}
}

func TestPlaceDeterministic(t *testing.T) {
	a := Place(100, 1234)
	b := Place(100, 1234)
	assert.Equal(t, a, b)

	c := Place(100, 4321)
	assert.NotEqual(t, a, c)
}

func TestPlaceRanges(t *testing.T) {
	seconds := 0
	for _, p := range Place(1000, 7) {
		assert.GreaterOrEqual(t, p.X, float32(0))
		assert.Less(t, p.X, float32(MaxX))
		assert.GreaterOrEqual(t, p.Y, float32(0))
		assert.Less(t, p.Y, float32(MaxY))
		assert.GreaterOrEqual(t, p.Z, float32(0))
		assert.Less(t, p.Z, float32(MaxZ))
		assert.GreaterOrEqual(t, p.Size, float32(MinSize))
		assert.Less(t, p.Size, float32(MaxSize))
		if p.Second {
			seconds++
		}
	}
	// Roughly 30% of pairs use the second lantern.
	assert.InDelta(t, 300, seconds, 60)
}

func TestBuildSameSeedSameScene(t *testing.T) {
	s1, g1, _ := build(t, 100, 77)
	s2, g2, _ := build(t, 100, 77)

	for i := 0; i < 25; i++ {
		s1.Step()
		s2.Step()
	}
	for a := range s1.Lanterns {
		for i := range s1.Lanterns[a] {
			assert.Equal(t,
				g1.Local(s1.Lanterns[a][i]).Matrix(),
				g2.Local(s2.Lanterns[a][i]).Matrix())
		}
	}
}

func TestStepRotationWraps(t *testing.T) {
	s, _, _ := build(t, 4, 1)

	s.Step()
	assert.InDelta(t, 0.01, s.Rotation(), 1e-6)

	s.rotation = RotationWrap
	s.Step()
	assert.Equal(t, float32(0), s.Rotation())
}

func TestStepHeights(t *testing.T) {
	s, _, _ := build(t, 4, 1)
	assert.Equal(t, float32(Anchor1Start), s.Height(0))
	assert.Equal(t, float32(Anchor2Start), s.Height(1))

	s.Step()
	assert.InDelta(t, -1.295, s.Height(0), 1e-6)
	assert.InDelta(t, -2.195, s.Height(1), 1e-6)

	s.heights[0] = RiseTop
	s.Step()
	assert.InDelta(t, RiseBottom, s.Height(0), 1e-6)
}

func TestStepHeightsStayInBand(t *testing.T) {
	s, _, _ := build(t, 0, 1)
	for i := 0; i < 2000; i++ {
		s.Step()
		for a := 0; a < 2; a++ {
			h := s.Height(a)
			assert.LessOrEqual(t, h, float32(RiseTop))
			if i > 200 {
				assert.GreaterOrEqual(t, h, float32(RiseBottom))
			}
			// Three decimal places.
			assert.InDelta(t, round3(h), h, 1e-7)
		}
	}
}

func TestSkyAndAnchorTransforms(t *testing.T) {
	s, g, _ := build(t, 4, 1)
	s.Step()

	assert.Equal(t, mgl32.Scale3D(SkyScale, SkyScale, SkyScale), g.Local(s.Sky).Matrix())

	for a, anchor := range s.Anchors {
		want := mgl32.Translate3D(0, s.Height(a), 0).
			Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(s.Rotation()))).
			Mul4(mgl32.Scale3D(AnchorScale, AnchorScale, AnchorScale))
		assert.True(t, want.ApproxEqualThreshold(g.Local(anchor).Matrix(), 1e-6), "anchor %d", a)
	}
}

func TestLanternQuarterSigns(t *testing.T) {
	s, g, _ := build(t, 4, 5)
	s.Step()

	signs := [4][2]float32{{1, 1}, {-1, 1}, {1, -1}, {-1, -1}}
	for i, p := range s.Placements() {
		sx, sz := signs[i][0], signs[i][1]
		want := mgl32.Translate3D(p.X*sx, p.Y, p.Z*sz).
			Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(sx * sz * s.Rotation() * LanternSpin))).
			Mul4(mgl32.Scale3D(p.Size, p.Size, p.Size))

		for a := range s.Lanterns {
			got := g.Local(s.Lanterns[a][i]).Matrix()
			assert.True(t, want.ApproxEqualThreshold(got, 1e-4), "lantern %d anchor %d", i, a)
			assert.InDelta(t, p.X*sx, got.At(0, 3), 1e-4)
			assert.InDelta(t, p.Z*sz, got.At(2, 3), 1e-4)
		}
	}
}

func TestLanternQuartersCoverUnevenCounts(t *testing.T) {
	s, g, _ := build(t, 7, 5)
	s.Step()

	for i := range s.Placements() {
		m := g.Local(s.Lanterns[0][i]).Matrix()
		assert.NotEqual(t, mgl32.Ident4(), m, "lantern %d left untransformed", i)
	}
}
