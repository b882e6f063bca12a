// Package title renders the text slides that open, bridge and close the
// thesis videos.
package title

import (
	"github.com/coreman2200/funtimes-stcube/internal/render"
	"github.com/coreman2200/funtimes-stcube/internal/sequence"
)

// EntranceFrames is the length of the eased fade/slide-in.
const EntranceFrames = 30

// Renderer draws one of four slide layouts chosen by preset.
//
// Text:
//   - "Eyebrow", "Title", "Subtitle", "Button"
//
// Params:
//   - "Entrance" (0..1) pins the entrance progress
type Renderer struct {
	name  string
	theme render.Theme
}

func New(name string, th render.Theme) *Renderer { return &Renderer{name: name, theme: th} }

func (r *Renderer) Name() string { return r.name }

func (r *Renderer) Presets() []string { return []string{"Landing", "Intro", "Transition", "Outro"} }

func (r *Renderer) ApplyPreset(name string, u *render.Uniforms) {
	if u == nil {
		return
	}
	set := func(kv map[string]string) {
		for k, v := range kv {
			u.Text[k] = v
		}
	}
	switch name {
	case "Landing":
		set(map[string]string{
			"Eyebrow":  "THESIS PROJECT",
			"Title":    "Adaptive Time Scaling",
			"Title2":   "with ",
			"Accent":   "Space-Time Cubes",
			"Subtitle": "Visualizing complex spatio-temporal data through dynamic temporal resolution and 3D projection.",
			"Button":   "View Methodology",
		})
	case "Intro":
		set(map[string]string{
			"Eyebrow":  "THESIS SHOWCASE",
			"Title":    "Space-Time Cube",
			"Subtitle": "Adaptive Temporal Scaling in 3D",
		})
	case "Transition":
		set(map[string]string{
			"Title":    "The Solution",
			"Subtitle": "Conceptual Adaptive Dashboard",
		})
	case "Outro":
		set(map[string]string{
			"Title":    "Adaptive Time Scaling",
			"Subtitle": "MSc Thesis by Tim",
		})
	}
}

// Entrance is the eased 0..1 reveal at a clip-local frame.
func Entrance(frame float64, u *render.Uniforms) float64 {
	return u.Param("Entrance", sequence.Window(frame, 0, EntranceFrames, "cubicOut"))
}

// TransitionOpacity fades in over 10 frames, holds, and fades out by 60.
func TransitionOpacity(frame float64) float64 {
	return sequence.Interpolate(frame, []float64{0, 10, 50, 60}, []float64{0, 1, 1, 0}, sequence.InterpOpts{})
}

func (r *Renderer) Render(dl *render.DrawList, vp render.Viewport, frame float64, u *render.Uniforms) {
	if u == nil {
		u = render.NewUniforms()
	}
	switch u.Preset {
	case "Intro":
		r.intro(dl, vp, frame, u)
	case "Transition":
		r.transition(dl, vp, frame, u)
	case "Outro":
		r.outro(dl, vp, u)
	default:
		r.landing(dl, vp, frame, u)
	}
}

// landing is centred and scales up from 0.95 while fading in.
func (r *Renderer) landing(dl *render.DrawList, vp render.Viewport, frame float64, u *render.Uniforms) {
	th := r.theme
	dl.Background = th.Background
	e := Entrance(frame, u)
	s := 0.95 + 0.05*e
	cx, cy := vp.X+vp.Width/2, vp.Y+vp.Height/2
	at := func(dy float64) float64 { return cy + dy*s }

	title2, accent := u.Str("Title2", ""), u.Str("Accent", "")
	w2 := render.TextWidth(title2, 80*s)
	wa := render.TextWidth(accent, 80*s)
	x2 := cx - (w2+wa)/2

	btn := u.Str("Button", "")
	bw := (render.TextWidth(btn, 18) + 64) * s
	bh := (18 + 32) * s
	ops := []render.Op{
		render.Text(cx, at(-170), u.Str("Eyebrow", ""), 20*s, th.AccentBlue).WithAlign(render.AlignMiddle).WithBold(),
		render.Text(cx, at(-80), u.Str("Title", ""), 80*s, th.White).WithAlign(render.AlignMiddle).WithBold(),
		render.Text(x2, at(8), title2, 80*s, th.White).WithBold(),
		render.Text(x2+w2, at(8), accent, 80*s, th.AccentBlue).WithBold(),
		render.Text(cx, at(70), u.Str("Subtitle", ""), 24*s, th.TextSecondary).WithAlign(render.AlignMiddle),
		render.Rect(cx-bw/2, at(120), bw, bh, th.AccentBlue).WithRadius(8).WithoutFill().WithStroke(th.AccentBlue, 2),
		render.Text(cx, at(120+31), btn, 18*s, th.White).WithAlign(render.AlignMiddle).WithBold(),
	}
	for _, o := range ops {
		dl.Add(o.WithOpacity(e))
	}
}

// intro is left aligned on white and slides up 20px while fading in.
func (r *Renderer) intro(dl *render.DrawList, vp render.Viewport, frame float64, u *render.Uniforms) {
	th := r.theme
	dl.Background = th.White
	e := Entrance(frame, u)
	x := vp.X + 100
	y := vp.Y + vp.Height/2 + 20*(1-e)
	dl.Add(
		render.Text(x, y-96, u.Str("Eyebrow", ""), 24, th.AccentBlue).WithBold().WithOpacity(e),
		render.Text(x, y, u.Str("Title", ""), 80, th.TextDark).WithBold().WithOpacity(e),
		render.Text(x, y+80, u.Str("Subtitle", ""), 32, th.TextMuted).WithOpacity(e),
	)
}

func (r *Renderer) transition(dl *render.DrawList, vp render.Viewport, frame float64, u *render.Uniforms) {
	th := r.theme
	dl.Background = th.Background
	o := TransitionOpacity(frame)
	cx, cy := vp.X+vp.Width/2, vp.Y+vp.Height/2
	dl.Add(
		render.Text(cx, cy-8, u.Str("Title", ""), 60, th.White).WithAlign(render.AlignMiddle).WithBold().WithOpacity(o),
		render.Text(cx, cy+40, u.Str("Subtitle", ""), 24, th.AccentBlue).WithAlign(render.AlignMiddle).WithBold().WithOpacity(o),
	)
}

func (r *Renderer) outro(dl *render.DrawList, vp render.Viewport, u *render.Uniforms) {
	th := r.theme
	dl.Background = th.Card
	cx, cy := vp.X+vp.Width/2, vp.Y+vp.Height/2
	dl.Add(
		render.Text(cx, cy-10, u.Str("Title", ""), 64, th.White).WithAlign(render.AlignMiddle).WithBold(),
		render.Text(cx, cy+50, u.Str("Subtitle", ""), 32, th.TextSecondary).WithAlign(render.AlignMiddle),
	)
}
