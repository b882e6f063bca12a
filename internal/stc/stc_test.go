package stc

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomDeterministicAndInRange(t *testing.T) {
	for _, seed := range []string{"x-0", "y-0", "x-199", "zb1-42", ""} {
		a, b := Random(seed), Random(seed)
		assert.Equal(t, a, b, "seed %q", seed)
		assert.GreaterOrEqual(t, a, 0.0)
		assert.Less(t, a, 1.0)
	}
	assert.NotEqual(t, Random("x-1"), Random("x-2"))
}

func TestGenerateIsDeterministic(t *testing.T) {
	a := Generate(ConceptCloudSpec())
	b := Generate(ConceptCloudSpec())
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("clouds differ (-a +b):\n%s", diff)
	}
	for i := range a {
		require.Equal(t, math.Float64bits(a[i].X), math.Float64bits(b[i].X))
		require.Equal(t, math.Float64bits(a[i].Z), math.Float64bits(b[i].Z))
	}
}

func TestTourCloudLayout(t *testing.T) {
	cloud := TourCloud()
	require.Len(t, cloud, 200)

	burst := 0
	for i, p := range cloud {
		assert.Equal(t, i > 120 && i < 160, p.Burst, "index %d", i)
		assert.Equal(t, i%3 == 0, p.Filtered, "index %d", i)
		assert.InDelta(t, float64(i)/100-1, p.Z, 1e-12, "index %d", i)
		assert.LessOrEqual(t, math.Abs(p.X), 0.75)
		assert.LessOrEqual(t, math.Abs(p.Y), 0.75)
		if p.Burst {
			burst++
		}
	}
	assert.Equal(t, 39, burst)
}

func TestConceptCloudBands(t *testing.T) {
	cloud := ConceptCloud()
	require.Len(t, cloud, 350)
	burst := 0
	for _, p := range cloud {
		if p.Burst {
			burst++
			inFirst := p.Z >= -0.35 && p.Z <= -0.1
			inSecond := p.Z >= 0.45 && p.Z <= 0.7
			assert.True(t, inFirst || inSecond, "burst z %v outside burst bands", p.Z)
		}
		assert.GreaterOrEqual(t, p.Z, -1.0)
		assert.LessOrEqual(t, p.Z, 1.0)
		assert.False(t, p.Filtered)
	}
	assert.Equal(t, 240, burst)
}

func TestGenerateSkipsEmptyBands(t *testing.T) {
	spec := CloudSpec{Spread: 1, Bands: []Band{{Count: -3}, {Count: 1, ZMin: 0.5, ZMax: 0.9, Even: true}}}
	cloud := Generate(spec)
	require.Len(t, cloud, 1)
	assert.Equal(t, 0.5, cloud[0].Z)
}

func TestNewCurveRejectsBadBreakpoints(t *testing.T) {
	cases := map[string][2][]float64{
		"short":      {{0}, {0}},
		"mismatch":   {{0, 1}, {0}},
		"decreasing": {{0, -1}, {0, 1}},
		"repeated":   {{0, 0}, {0, 1}},
		"nan":        {{0, math.NaN()}, {0, 1}},
	}
	for name, c := range cases {
		_, err := NewCurve(c[0], c[1])
		assert.ErrorIs(t, err, ErrInvalidParameter, name)
	}
}

func TestCurveClampsAtEdges(t *testing.T) {
	c := MustCurve([]float64{-1, 0.2, 0.6, 1}, []float64{-1, -0.1, 0.7, 1})
	assert.Equal(t, -1.0, c.Eval(-5))
	assert.Equal(t, 1.0, c.Eval(3))
	assert.InDelta(t, 0.3, c.Eval(0.4), 1e-12)
	assert.InDelta(t, -0.1, c.Eval(0.2), 1e-12)
}

func TestWarpIdentityAtZeroProgress(t *testing.T) {
	for _, w := range []Warp{TourWarp(), ConceptWarp()} {
		for z := -1.0; z <= 1.0; z += 0.05 {
			assert.Equal(t, z, w.Apply(z, 0, false))
			assert.Equal(t, z, w.Apply(z, 0, true))
			assert.Equal(t, z, w.Apply(z, -3, false), "negative progress clamps to 0")
		}
	}
}

func TestWarpFullProgressIsCurve(t *testing.T) {
	w := ConceptWarp()
	for z := -1.0; z <= 1.0; z += 0.05 {
		assert.Equal(t, w.Base.Eval(z), w.Apply(z, 1, false))
		assert.Equal(t, w.Base.Eval(z), w.Apply(z, 7, false))
	}
	assert.InDelta(t, 0.0, w.Apply(0.175, 1, false), 1e-12)
}

func TestWarpBlendsOutputs(t *testing.T) {
	w := TourWarp()
	z := 0.4
	full := w.Base.Eval(z)
	assert.InDelta(t, z+(full-z)*0.25, w.Apply(z, 0.25, false), 1e-12)
}

func TestBurstPointsUseBurstCurve(t *testing.T) {
	w := TourWarp()
	burst := 0
	for _, p := range TourCloud() {
		if !p.Burst {
			continue
		}
		burst++
		assert.InDelta(t, w.Burst.Eval(p.Z), w.Apply(p.Z, 1, true), 1e-12)
		assert.Less(t, w.Apply(p.Z, 1, true), 0.3+1e-12)
	}
	assert.Equal(t, 39, burst)
	assert.NotEqual(t, w.Apply(0.4, 1, true), w.Apply(0.4, 1, false))
}

func TestOriginProjectsToCenter(t *testing.T) {
	pr := Projector{
		Camera:   Camera{Tilt: 0, Distance: 500, ZSensitivity: 150, Scale: 180},
		Viewport: Viewport{Width: 600, Height: 400},
		Warp:     TourWarp(),
	}
	p := pr.ProjectTime(0, 0, 0, false)
	assert.Equal(t, 300.0, p.X)
	assert.Equal(t, 200.0, p.Y)
	assert.Equal(t, 0.0, p.Depth)
}

func TestProjectMatchesClosedForm(t *testing.T) {
	pr := Projector{
		Camera:   Camera{Tilt: 0.35, Distance: 500, ZSensitivity: 150, Scale: 180},
		Viewport: Viewport{Width: 600, Height: 400},
		Warp:     ConceptWarp(),
		Angle:    1.1,
	}
	x, y, tm := 0.6, -0.3, 0.25
	sa, ca := math.Sincos(pr.Angle)
	sb, cb := math.Sincos(pr.Camera.Tilt)
	wy := -tm
	x1 := x*ca - y*sa
	z1 := x*sa + y*ca
	y2 := wy*cb - z1*sb
	z2 := wy*sb + z1*cb
	s := 500 / (500 + z2*150) * 180

	p := pr.ProjectTime(x, y, tm, false)
	assert.InDelta(t, x1*s+300, p.X, 1e-9)
	assert.InDelta(t, y2*s+200, p.Y, 1e-9)
	assert.InDelta(t, z2, p.Depth, 1e-12)
}

func TestProjectHandlesDegenerateInputs(t *testing.T) {
	pr := Projector{
		Camera:   Camera{Tilt: 0.4, Distance: 1, ZSensitivity: 1000, Scale: 180},
		Viewport: Viewport{Width: 600, Height: 600},
		Warp:     TourWarp(),
		Angle:    math.NaN(),
		Progress: math.Inf(1),
	}.Sanitize()
	assert.Equal(t, 0.0, pr.Angle)
	assert.Equal(t, 0.0, pr.Progress)
	for _, e := range CubeEdges() {
		s := pr.ProjectEdge(e)
		assert.False(t, math.IsNaN(s.A.X) || math.IsInf(s.A.X, 0))
		assert.False(t, math.IsNaN(s.B.Y) || math.IsInf(s.B.Y, 0))
	}
	assert.ErrorIs(t, Camera{Distance: 0}.Validate(), ErrInvalidParameter)
	assert.NoError(t, TourCube().Camera.Validate())
}

func TestRotationIsPeriodic(t *testing.T) {
	c := TourCube()
	vp := Viewport{Width: 600, Height: 600}
	period := c.Spin.Period()
	for _, p := range c.Cloud[:20] {
		a := c.Projector(FrameInput{Frame: 0, Progress: 0.5, Viewport: vp}).Project(p)
		b := c.Projector(FrameInput{Frame: period, Progress: 0.5, Viewport: vp}).Project(p)
		assert.InDelta(t, a.X, b.X, 1e-9)
		assert.InDelta(t, a.Y, b.Y, 1e-9)
		assert.InDelta(t, a.Depth, b.Depth, 1e-9)
	}
	assert.True(t, math.IsInf(Spin{}.Period(), 1))
}

func TestSortByDepthFarthestFirst(t *testing.T) {
	pts := []ProjectedPoint{{Depth: -1}, {Depth: 2}, {Depth: 0.5}, {Depth: -3}}
	SortByDepth(pts)
	got := []float64{pts[0].Depth, pts[1].Depth, pts[2].Depth, pts[3].Depth}
	assert.Equal(t, []float64{2, 0.5, -1, -3}, got)
}

func TestFrameSortedAndComplete(t *testing.T) {
	c := TourCube()
	g := c.Frame(FrameInput{Frame: 37, Progress: 0.6, Viewport: Viewport{Width: 600, Height: 600}})
	require.Len(t, g.Edges, 12)
	require.Len(t, g.Points, 200)
	for i := 1; i < len(g.Points); i++ {
		assert.GreaterOrEqual(t, g.Points[i-1].Depth, g.Points[i].Depth)
	}
}

func TestSliceFiltersBeforeProjection(t *testing.T) {
	c := TourCube()
	slice := &SliceRange{Start: 60, End: 30}
	lo, hi := slice.Bounds()
	assert.InDelta(t, -0.4, lo, 1e-12)
	assert.InDelta(t, 0.2, hi, 1e-12)

	want := 0
	for _, p := range c.Cloud {
		if p.Z >= lo && p.Z <= hi {
			want++
		}
	}
	g := c.Frame(FrameInput{Progress: 1, Slice: slice, Viewport: Viewport{Width: 600, Height: 600}})
	assert.Len(t, g.Points, want)
	for _, pp := range g.Points {
		z := c.Cloud[pp.Index].Z
		assert.True(t, z >= lo && z <= hi, "point %d at %v escaped slice", pp.Index, z)
	}
}

func TestFilteredSubset(t *testing.T) {
	c := TourCube()
	assert.Equal(t, 67, CountVisible(c.Cloud, nil, true))
	assert.Equal(t, 200, CountVisible(c.Cloud, &SliceRange{Start: -10, End: 140}, false))
	g := c.Frame(FrameInput{FilteredOnly: true, Viewport: Viewport{Width: 600, Height: 600}})
	for _, pp := range g.Points {
		assert.Zero(t, pp.Index%3)
	}
}

func TestFalloffNearerIsBiggerAndBrighter(t *testing.T) {
	for _, f := range []Falloff{TourFalloff(), ConceptFalloff()} {
		prevR, prevO := math.Inf(1), math.Inf(1)
		for d := -3.0; d <= 3.0; d += 0.25 {
			r, o := f.Radius(d), f.Opacity(d)
			assert.LessOrEqual(t, r, prevR)
			assert.LessOrEqual(t, o, prevO)
			prevR, prevO = r, o
		}
	}
	f := TourFalloff()
	assert.Equal(t, 5.0, f.Radius(-10))
	assert.Equal(t, 2.0, f.Radius(10))
	assert.InDelta(t, 0.3, f.Opacity(10), 1e-12)
}

func TestCubeEdgesAreUnitLength(t *testing.T) {
	edges := CubeEdges()
	require.Len(t, edges, 12)
	for _, e := range edges {
		d := math.Abs(e.A.X-e.B.X) + math.Abs(e.A.Y-e.B.Y) + math.Abs(e.A.Z-e.B.Z)
		assert.Equal(t, 2.0, d)
	}
	edges[0].A.X = 9
	assert.NotEqual(t, 9.0, CubeEdges()[0].A.X)
}
