package tour

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-stcube/internal/render"
	"github.com/coreman2200/funtimes-stcube/internal/stc"
)

func TestAmsterdamIncidents(t *testing.T) {
	m := Amsterdam()
	require.Len(t, m.Incidents, IncidentCount)
	for _, in := range m.Incidents {
		assert.InDelta(t, CenterLat, in.Lat, 0.02+1e-9)
		assert.InDelta(t, CenterLng, in.Lng, 0.02+1e-9)
	}
	assert.Equal(t, CenterLat+math.Sin(123)*0.02, m.Incidents[1].Lat)

	inside := 0
	for _, in := range m.Incidents {
		if m.Inside(in) {
			inside++
		}
	}
	assert.Greater(t, inside, 0)
	assert.Less(t, inside, IncidentCount)
	assert.Equal(t, 0, m.CountHighlighted(0.8), "highlight needs selection above 0.8")
	assert.Equal(t, inside, m.CountHighlighted(1))
}

func TestHoverWindow(t *testing.T) {
	m := Amsterdam()
	hov := m.Incidents[HoverIndex]
	assert.False(t, m.Hovered(hov, 0.1))
	assert.True(t, m.Hovered(hov, 0.5))
	assert.False(t, m.Hovered(hov, 0.9))
	assert.False(t, m.Hovered(m.Incidents[0], 0.5))
}

func TestLassoRingClosed(t *testing.T) {
	r := Amsterdam().Lasso.Ring()
	require.Len(t, r, 5)
	assert.Equal(t, r[0], r[4])
}

func TestProjectCentreAndZoom(t *testing.T) {
	vp := render.Viewport{X: 100, Y: 50, Width: 400, Height: 300}
	x, y := Project(CenterLat, CenterLng, vp, 1.1)
	assert.Equal(t, 300.0, x)
	assert.Equal(t, 200.0, y)

	x1, y1 := Project(CenterLat+0.01, CenterLng+0.01, vp, 1)
	x2, y2 := Project(CenterLat+0.01, CenterLng+0.01, vp, 1.1)
	assert.Greater(t, x1, 300.0)
	assert.Less(t, y1, 200.0, "north is up")
	assert.Greater(t, x2, x1)
	assert.Less(t, y2, y1)
}

func TestTimelineBins(t *testing.T) {
	tl := NewTimeline(true, 0.005)
	require.Len(t, tl.Adaptive, 12)
	require.Len(t, tl.Uniform, 12)

	last := tl.Adaptive[11]
	assert.InDelta(t, 1.0, last.Left+last.Width, 1e-9)
	lastU := tl.Uniform[11]
	assert.InDelta(t, 1.0, lastU.Left+lastU.Width, 1e-9)

	hi := 0
	for i, b := range tl.Adaptive {
		if b.Highlight {
			hi++
			assert.True(t, i >= HighlightFirst && i <= HighlightLast)
		}
	}
	assert.Equal(t, 4, hi)
	assert.True(t, tl.Adaptive[0].ShowLabel())
	assert.False(t, tl.Adaptive[1].ShowLabel())
	assert.Equal(t, "J", tl.Uniform[5].Short)
	// MAR has the widest adaptive bin.
	assert.Greater(t, tl.Adaptive[2].Width, tl.Adaptive[0].Width)

	for _, b := range NewTimeline(false, 0).Adaptive {
		assert.False(t, b.Highlight)
	}
}

func TestBrushSlice(t *testing.T) {
	b := Brush{Start: 25, End: 75}
	assert.True(t, b.Visible())
	assert.False(t, Brush{}.Visible())
	assert.Equal(t, stc.SliceRange{Start: 25, End: 75}, b.Slice())
	lo, hi := b.Slice().Bounds()
	assert.Equal(t, -0.5, lo)
	assert.Equal(t, 0.5, hi)

	// The tour cloud is evenly spaced, so a 20..60 brush keeps z in [-0.6, 0.2].
	cloud := stc.TourCloud()
	s := Brush{Start: 20, End: 60}.Slice()
	lo, hi = s.Bounds()
	assert.InDelta(t, -0.6, lo, 1e-12)
	assert.InDelta(t, 0.2, hi, 1e-12)
	want := 0
	for _, p := range cloud {
		if p.Z >= lo && p.Z <= hi {
			want++
		}
	}
	assert.Equal(t, 81, want)
	assert.Equal(t, want, stc.CountVisible(cloud, &s, false))
}

func TestLayout(t *testing.T) {
	vp := render.Viewport{Width: 1920, Height: 1080}
	p := Layout(vp, false)
	assert.Equal(t, render.Viewport{X: 30, Y: 30, Width: 1860, Height: 80}, p.Header)
	assert.Equal(t, render.Viewport{X: 30, Y: 830, Width: 1860, Height: 220}, p.Timeline)
	assert.Equal(t, render.Viewport{X: 30, Y: 110, Width: 1104, Height: 700}, p.Map)
	assert.Equal(t, render.Viewport{X: 1154, Y: 110, Width: 736, Height: 700}, p.Cube)
	assert.Equal(t, render.Viewport{}, p.Controls)

	pc := Layout(vp, true)
	assert.Equal(t, 280.0, pc.Controls.Width)
	assert.Equal(t, 330.0, pc.Map.X)
	assert.InDelta(t, 924, pc.Map.Width, 1e-9)
	assert.InDelta(t, 616, pc.Cube.Width, 1e-9)

	l, r := Split(p.Cube)
	assert.Equal(t, 363.0, l.Width)
	assert.Equal(t, p.Cube.X+p.Cube.Width, r.X+r.Width)

	sq, k := Square(p.Cube, 600)
	assert.Equal(t, 600.0, sq.Width)
	assert.Equal(t, 1.0, k)
	sq, k = Square(l, 600)
	assert.Equal(t, 363.0, sq.Width)
	assert.InDelta(t, 363.0/600, k, 1e-12)
}
