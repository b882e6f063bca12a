// Package cube renders the concept space-time cube slides: a heading over a
// rotating banded cube whose time axis warps to expand the two bursts.
package cube

import (
	"github.com/coreman2200/funtimes-stcube/internal/render"
	"github.com/coreman2200/funtimes-stcube/internal/sequence"
	"github.com/coreman2200/funtimes-stcube/internal/stc"
)

// Side is the canvas the concept cube was designed for.
const Side = 800

// Label is an annotation anchored to a time value on the cube.
type Label struct {
	Text  string
	T     float64
	Burst bool
}

// Labels are the time annotations shown once the warp is past halfway.
var Labels = []Label{
	{Text: "Start", T: -1},
	{Text: "Burst 1", T: -0.22, Burst: true},
	{Text: "Burst 2", T: 0.57, Burst: true},
	{Text: "End", T: 1},
}

// Renderer draws the concept cube.
//
// Params:
//   - "Warp" (0..1) pins the warp progress; otherwise it follows
//     "WarpFrom".."WarpTo" frames with quadInOut easing
//
// Bools:
//   - "Labels" (default true) enables the time annotations
//
// Text:
//   - "Title", "Subtitle"
type Renderer struct {
	name  string
	theme render.Theme
	cube  stc.Cube
}

func New(name string, th render.Theme) *Renderer {
	return &Renderer{name: name, theme: th, cube: stc.ConceptCube()}
}

func (r *Renderer) Name() string { return r.name }

func (r *Renderer) Presets() []string { return []string{"Linear", "Warped"} }

func (r *Renderer) ApplyPreset(name string, u *render.Uniforms) {
	if u == nil {
		return
	}
	switch name {
	case "Linear":
		u.Text["Title"] = "1. Linear Cube"
		u.Text["Subtitle"] = "Dense bursts are hidden in narrow slices."
		u.Params["WarpFrom"] = 0
		u.Params["WarpTo"] = 0
		u.Bools["Labels"] = false
	case "Warped":
		u.Text["Title"] = "2. Warped Cube"
		u.Text["Subtitle"] = "Time axis expands to reveal structure."
		u.Params["WarpFrom"] = 20
		u.Params["WarpTo"] = 100
		u.Bools["Labels"] = true
	}
}

// Progress is the warp progress at a clip-local frame.
func Progress(frame float64, u *render.Uniforms) float64 {
	from, to := u.Param("WarpFrom", 0), u.Param("WarpTo", 0)
	auto := 0.0
	if to > from {
		auto = sequence.Window(frame, from, to, "quadInOut")
	}
	return u.Param("Warp", auto)
}

func (r *Renderer) Render(dl *render.DrawList, vp render.Viewport, frame float64, u *render.Uniforms) {
	th := r.theme
	cx := vp.X + vp.Width/2

	top := vp.Y + 60
	dl.Add(
		render.Text(cx, top+48, u.Str("Title", ""), 48, th.White).WithAlign(render.AlignMiddle).WithBold(),
		render.Text(cx, top+48+10+24, u.Str("Subtitle", ""), 24, th.TextSecondary).WithAlign(render.AlignMiddle),
	)

	body := render.Viewport{X: vp.X, Y: top + 122, Width: vp.Width, Height: vp.Y + vp.Height - 60 - (top + 122)}
	c, svp := Fit(r.cube, body, Side)
	in := stc.FrameInput{Frame: frame, Progress: Progress(frame, u), Viewport: svp}
	Draw(dl, c.Frame(in), c.Falloff, ConceptStyle(th))

	if !u.Bool("Labels", true) || in.Progress <= 0.5 {
		return
	}
	for _, l := range Labels {
		p := c.Label(1.2, 0, l.T, in)
		col := th.TextSecondary
		if l.Burst {
			col = th.AccentOrange
		}
		// vertically centred on the anchor, 10px to its right
		dl.Add(render.Text(p.X+10, p.Y+14*0.35, l.Text, 14, col).WithBold())
	}
}
