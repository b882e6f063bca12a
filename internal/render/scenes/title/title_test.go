package title_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coreman2200/funtimes-stcube/internal/render"
	"github.com/coreman2200/funtimes-stcube/internal/render/scenes/title"
)

func renderAt(r render.Renderer, preset string, frame float64) *render.DrawList {
	u := render.NewUniforms()
	u.Preset = preset
	r.ApplyPreset(preset, u)
	dl := render.NewDrawList(1920, 1080, render.DarkTheme().Background)
	r.Render(dl, render.Viewport{Width: 1920, Height: 1080}, frame, u)
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

func TestIntroEntrance(t *testing.T) {
	th := render.DarkTheme()
	r := title.New("title", th)

	intro := renderAt(r, "Intro", 0)
	assert.Equal(t, th.White, intro.Background)
	for _, o := range intro.Ops {
		assert.Equal(t, 0.0, o.Opacity)
	}
	intro = renderAt(r, "Intro", title.EntranceFrames)
	assert.Contains(t, texts(intro), "Space-Time Cube")
	assert.Equal(t, 1.0, intro.Ops[0].Opacity)
}

func TestTransitionOpacity(t *testing.T) {
	assert.Equal(t, 0.0, title.TransitionOpacity(0))
	assert.Equal(t, 0.5, title.TransitionOpacity(5))
	assert.Equal(t, 1.0, title.TransitionOpacity(30))
	assert.Equal(t, 0.5, title.TransitionOpacity(55))
	assert.Equal(t, 0.0, title.TransitionOpacity(60))
}

func TestOutroAndLanding(t *testing.T) {
	th := render.DarkTheme()
	r := title.New("title", th)

	outro := renderAt(r, "Outro", 0)
	assert.Equal(t, th.Card, outro.Background)
	assert.Equal(t, []string{"Adaptive Time Scaling", "MSc Thesis by Tim"}, texts(outro))

	landing := renderAt(r, "Landing", 90)
	assert.Equal(t, th.Background, landing.Background)
	assert.Contains(t, texts(landing), "Space-Time Cubes")
	assert.Contains(t, texts(landing), "View Methodology")

	u := render.NewUniforms()
	u.Preset = "Landing"
	r.ApplyPreset("Landing", u)
	u.Text["Title"] = "Custom"
	dl := render.NewDrawList(1920, 1080, th.Background)
	r.Render(dl, render.Viewport{Width: 1920, Height: 1080}, 90, u)
	assert.Contains(t, texts(dl), "Custom")
}
