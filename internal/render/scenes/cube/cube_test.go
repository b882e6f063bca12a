package cube_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coreman2200/funtimes-stcube/internal/render"
	"github.com/coreman2200/funtimes-stcube/internal/render/scenes/cube"
	"github.com/coreman2200/funtimes-stcube/internal/stc"
)

var full = render.Viewport{Width: 1920, Height: 1080}

func renderAt(r render.Renderer, preset string, frame float64) *render.DrawList {
	u := render.NewUniforms()
	u.Preset = preset
	r.ApplyPreset(preset, u)
	dl := render.NewDrawList(full.Width, full.Height, render.DarkTheme().Background)
	r.Render(dl, full, frame, u)
	return dl
}

func texts(dl *render.DrawList) []string {
	var out []string
	for _, o := range dl.Ops {
		if o.Kind == render.OpText {
			out = append(out, o.Text)
		}
	}
	return out
}

func TestConceptCubeLinearVersusWarped(t *testing.T) {
	r := cube.New("cube", render.DarkTheme())
	n := len(stc.ConceptCloud())

	lin := renderAt(r, "Linear", 120)
	assert.Equal(t, 12, lin.Count(render.OpLine))
	assert.Equal(t, n, lin.Count(render.OpCircle))
	assert.Contains(t, texts(lin), "1. Linear Cube")
	assert.NotContains(t, texts(lin), "Burst 1")

	early := renderAt(r, "Warped", 10)
	assert.NotContains(t, texts(early), "Burst 1", "labels hidden until warp passes 0.5")

	warped := renderAt(r, "Warped", 120)
	assert.Contains(t, texts(warped), "2. Warped Cube")
	for _, l := range cube.Labels {
		assert.Contains(t, texts(warped), l.Text)
	}
}

func TestConceptCubeProgress(t *testing.T) {
	u := render.NewUniforms()
	cube.New("cube", render.DarkTheme()).ApplyPreset("Warped", u)
	assert.Equal(t, 0.0, cube.Progress(20, u))
	assert.Equal(t, 0.5, cube.Progress(60, u))
	assert.Equal(t, 1.0, cube.Progress(100, u))
	u.Params["Warp"] = 0.25
	assert.Equal(t, 0.25, cube.Progress(100, u), "explicit Warp wins")
}

func TestFitScalesCamera(t *testing.T) {
	c := stc.ConceptCube()
	fc, vp := cube.Fit(c, render.Viewport{X: 0, Y: 0, Width: 1000, Height: 400}, 800)
	assert.Equal(t, stc.Viewport{X: 300, Y: 0, Width: 400, Height: 400}, vp)
	assert.Equal(t, c.Camera.Scale/2, fc.Camera.Scale)
}

func TestDrawPaintsBackToFront(t *testing.T) {
	c := stc.TourCube()
	g := c.Frame(stc.FrameInput{Frame: 33, Progress: 1, Viewport: stc.Viewport{Width: 600, Height: 600}})
	dl := render.NewDrawList(600, 600, render.Color{})
	th := render.DarkTheme()
	cube.Draw(dl, g, c.Falloff, cube.TourStyle(th))

	a := assert.New(t)
	a.Equal(12, dl.Count(render.OpLine))
	a.Equal(len(c.Cloud), dl.Count(render.OpCircle))
	prev := 0.0
	for i, o := range dl.Ops[12:] {
		// radius grows as points come nearer
		if i > 0 {
			a.GreaterOrEqual(o.R, prev)
		}
		prev = o.R
		if *o.Fill == th.AccentOrange {
			a.Equal(2.0, o.Blur)
		} else {
			a.Equal(0.0, o.Blur)
		}
	}
}
