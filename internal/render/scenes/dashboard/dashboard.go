// Package dashboard renders the linked-view analysis tour: an incident map,
// the space-time cube and two linked timelines, driven by a scripted State
// per preset.
package dashboard

import (
	"fmt"
	"math"

	"github.com/coreman2200/funtimes-stcube/internal/render"
	"github.com/coreman2200/funtimes-stcube/internal/render/scenes/cube"
	"github.com/coreman2200/funtimes-stcube/internal/stc"
	"github.com/coreman2200/funtimes-stcube/internal/tour"
)

// CubeSide is the canvas the dashboard cube was designed for.
const CubeSide = 600

const (
	panelHeader = 36
	panelRadius = 16
)

type Renderer struct {
	name  string
	theme render.Theme
	cube  stc.Cube
	m     tour.MapModel
}

func New(name string, th render.Theme) *Renderer {
	return &Renderer{name: name, theme: th, cube: stc.TourCube(), m: tour.Amsterdam()}
}

func (r *Renderer) Name() string { return r.name }

func (r *Renderer) Presets() []string {
	return []string{"MapInteraction", "TimelineBrushing", "WarpedCube", "MultipleCubes", "Controls"}
}

func (r *Renderer) ApplyPreset(name string, u *render.Uniforms) {
	if u == nil {
		return
	}
	if h, ok := headlines[name]; ok {
		u.Text["Headline"] = h
	}
	if name == "Controls" {
		u.Bools["Controls"] = true
	}
}

func (r *Renderer) Render(dl *render.DrawList, vp render.Viewport, frame float64, u *render.Uniforms) {
	if u == nil {
		u = render.NewUniforms()
	}
	st := Resolve(Choreograph(u.Preset, frame), u)
	p := tour.Layout(vp, st.Controls)

	r.header(dl, p.Header, st)
	if st.Controls {
		r.controls(dl, p.Controls, st)
	}
	r.mapPanel(dl, p.Map, frame, st)
	r.cubePanel(dl, p.Cube, frame, st)
	r.timeline(dl, p.Timeline, st)
	if st.Label != "" {
		r.labelChip(dl, vp, st.Label)
	}
}

func (r *Renderer) panel(dl *render.DrawList, vp render.Viewport, title string) render.Viewport {
	th := r.theme
	dl.Add(
		render.Rect(vp.X, vp.Y, vp.Width, vp.Height, th.Card).WithRadius(panelRadius).WithStroke(th.Border, 1),
		render.Text(vp.X+20, vp.Y+10+12, title, 12, th.TextSecondary).WithBold(),
		render.Line(vp.X, vp.Y+panelHeader, vp.X+vp.Width, vp.Y+panelHeader, th.Border, 1),
	)
	return render.Viewport{X: vp.X, Y: vp.Y + panelHeader, Width: vp.Width, Height: vp.Height - panelHeader}
}

func (r *Renderer) header(dl *render.DrawList, vp render.Viewport, st State) {
	th := r.theme
	dl.Add(render.Text(vp.X+vp.Width/2, vp.Y+vp.Height/2+11, st.Headline, 32, th.White).
		WithAlign(render.AlignMiddle).WithBold())
	if st.Intent == "" {
		return
	}
	x, y := vp.X+20, vp.Y+vp.Height/2-18
	w := 16 + render.TextWidth("INTENT:", 10) + 10 + render.TextWidth(st.Intent, 14) + 10 + 14 + 16
	dl.Add(
		render.Rect(x, y, w, 36, th.Card).WithRadius(8).WithStroke(th.Border, 1),
		render.Text(x+16, y+22, "INTENT:", 10, th.TextSecondary).WithBold(),
		render.Text(x+16+render.TextWidth("INTENT:", 10)+10, y+23, st.Intent, 14, th.AccentBlue).WithBold(),
		render.Text(x+w-16, y+23, "▼", 14, th.TextSecondary).WithAlign(render.AlignEnd),
	)
}

func (r *Renderer) controls(dl *render.DrawList, vp render.Viewport, st State) {
	th := r.theme
	dl.Add(
		render.Rect(vp.X, vp.Y, vp.Width, vp.Height, th.Card).WithRadius(panelRadius).WithStroke(th.Border, 1),
		render.Text(vp.X+20, vp.Y+20+12, "CONTROL PANEL", 12, th.TextSecondary).WithBold(),
	)
	r.slider(dl, vp.X+20, vp.Y+74, vp.Width-40, "Time Resolution", st.Resolution)
	r.slider(dl, vp.X+20, vp.Y+134, vp.Width-40, "Warp Intensity", st.WarpPct)
}

func (r *Renderer) slider(dl *render.DrawList, x, y, w float64, label string, pct float64) {
	th := r.theme
	pct = math.Max(0, math.Min(100, pct))
	kx := x + w*pct/100
	dl.Add(
		render.Text(x, y, label, 11, th.White).WithBold(),
		render.Text(x+w, y, fmt.Sprintf("%d%%", int(math.Round(pct))), 11, th.AccentBlue).WithAlign(render.AlignEnd),
		render.Rect(x, y+10, w, 4, th.Border).WithRadius(2),
		render.Rect(x, y+10, kx-x, 4, th.AccentBlue),
		render.Circle(kx, y+12, 8, th.White),
	)
}

func (r *Renderer) mapPanel(dl *render.DrawList, vp render.Viewport, frame float64, st State) {
	th := r.theme
	in := r.panel(dl, vp, "MAP (SPACE) - AMSTERDAM")
	zoom := 1.0
	if st.Zoomed {
		zoom = MapZoom(frame)
	}
	dl.Add(render.Rect(in.X+1, in.Y, in.Width-2, in.Height-1, th.Background))

	// street grid every 0.01 degrees
	for k := -4.0; k <= 4; k++ {
		x, _ := tour.Project(tour.CenterLat, tour.CenterLng+k*0.01, in, zoom)
		if x > in.X && x < in.X+in.Width {
			dl.Add(render.Line(x, in.Y, x, in.Y+in.Height, th.Border, 1).WithOpacity(0.5))
		}
		_, y := tour.Project(tour.CenterLat+k*0.01, tour.CenterLng, in, zoom)
		if y > in.Y && y < in.Y+in.Height {
			dl.Add(render.Line(in.X, y, in.X+in.Width, y, th.Border, 1).WithOpacity(0.5))
		}
	}

	var hovered *tour.Incident
	for i, inc := range r.m.Incidents {
		x, y := tour.Project(inc.Lat, inc.Lng, in, zoom)
		if !inside(in, x, y) {
			continue
		}
		switch {
		case r.m.Hovered(inc, st.Selection):
			hovered = &r.m.Incidents[i]
			dl.Add(render.Circle(x, y, 6, th.AccentOrange).WithStroke(th.AccentOrange, 1))
		case r.m.Highlighted(inc, st.Selection):
			dl.Add(render.Circle(x, y, 3, th.AccentBlue).WithStroke(th.AccentBlue, 1))
		default:
			dl.Add(render.Circle(x, y, 3, th.TextSecondary).WithOpacity(0.3))
		}
	}

	if st.Selection > 0 {
		ring := r.m.Lasso.Ring()
		for i := 1; i < len(ring); i++ {
			x0, y0 := tour.Project(ring[i-1][0], ring[i-1][1], in, zoom)
			x1, y1 := tour.Project(ring[i][0], ring[i][1], in, zoom)
			dl.Add(render.Line(x0, y0, x1, y1, th.AccentBlue, 2).WithDash(5, 10).WithOpacity(st.Selection))
		}
	}

	if hovered != nil {
		x, y := tour.Project(hovered.Lat, hovered.Lng, in, zoom)
		r.tooltip(dl, x, y-16)
	}
}

func (r *Renderer) tooltip(dl *render.DrawList, x, bottom float64) {
	th := r.theme
	tt := r.m.Tooltip
	w := render.TextWidth(tt.Title, 12) + 24
	for _, l := range tt.Lines {
		w = math.Max(w, render.TextWidth(l, 12)+24)
	}
	h := 16 + 16*float64(1+len(tt.Lines))
	x0, y0 := x-w/2, bottom-h
	dl.Add(
		render.Rect(x0, y0, w, h, th.Card).WithRadius(8).WithStroke(th.AccentOrange, 1),
		render.Text(x0+12, y0+8+12, tt.Title, 12, th.AccentOrange).WithBold(),
	)
	for i, l := range tt.Lines {
		dl.Add(render.Text(x0+12, y0+8+12+16*float64(i+1), l, 12, th.White))
	}
}

// MapZoom is the slow push-in of the zoomed map, repeating every 300 frames.
func MapZoom(frame float64) float64 {
	f := math.Mod(frame, 300)
	if f < 0 {
		f += 300
	}
	return 1 + 0.1*math.Min(f/60, 1)
}

func (r *Renderer) cubePanel(dl *render.DrawList, vp render.Viewport, frame float64, st State) {
	th := r.theme
	if !st.Split {
		in := r.panel(dl, vp, "Space-Time Cube")
		r.drawCube(dl, in, frame, st, false)
		r.warpToggle(dl, vp.X+vp.Width-20, vp.Y+45, st.Warp)
		return
	}
	left, right := tour.Split(vp)
	r.drawCube(dl, r.panel(dl, left, "All Crimes"), frame, st, false)
	in := r.panel(dl, right, "Filtered Subset")
	r.drawCube(dl, in, frame, st, st.Filter)

	chip := "BURGLARY @ NIGHT"
	w := render.TextWidth(chip, 9) + 20
	x, y := right.X+right.Width-15-w, right.Y+10
	bg, fg := th.Border, th.TextSecondary
	op := 1.0
	if st.Filter {
		// 0x33 alpha tint of the accent
		bg, fg, op = th.AccentBlue, th.AccentBlue, 0x33/255.0
	}
	dl.Add(
		render.Rect(x, y, w, 20, bg).WithRadius(6).WithOpacity(op),
		render.Rect(x, y, w, 20, bg).WithRadius(6).WithoutFill().WithStroke(fg, 1),
		render.Text(x+10, y+14, chip, 9, fg).WithBold(),
	)
}

func (r *Renderer) drawCube(dl *render.DrawList, vp render.Viewport, frame float64, st State, filteredOnly bool) {
	c, svp := cube.Fit(r.cube, vp, CubeSide)
	in := stc.FrameInput{
		Frame:        frame,
		Progress:     st.Warp,
		Slice:        st.Slice,
		FilteredOnly: filteredOnly,
		Viewport:     svp,
	}
	g := c.Frame(in)
	style := cube.TourStyle(r.theme)
	cube.DrawEdges(dl, g, style)
	if st.Slice != nil {
		k := svp.Width / CubeSide
		cx, cy := svp.Center()
		dl.Add(render.Rect(cx-100*k, cy-200*k, 200*k, 400*k, r.theme.AccentBlue).WithOpacity(0.1))
	}
	cube.DrawPoints(dl, g, c.Falloff, style)
}

func (r *Renderer) warpToggle(dl *render.DrawList, right, top, warp float64) {
	th := r.theme
	label := "WARP AXIS"
	w := 12 + render.TextWidth(label, 10) + 10 + 30 + 12
	x := right - w
	pill := th.Border
	if warp > 0.5 {
		pill = th.AccentBlue
	}
	px := x + 12 + render.TextWidth(label, 10) + 10
	knob := 2 + 14*math.Max(0, math.Min(1, warp))
	dl.Add(
		render.Rect(x, top, w, 28, th.Background).WithRadius(14).WithStroke(th.Border, 1).WithOpacity(0.8),
		render.Text(x+12, top+18, label, 10, th.TextSecondary).WithBold(),
		render.Rect(px, top+6, 30, 16, pill).WithRadius(8),
		render.Circle(px+knob+6, top+6+2+6, 6, th.White),
	)
}

func (r *Renderer) timeline(dl *render.DrawList, vp render.Viewport, st State) {
	th := r.theme
	r.panel(dl, vp, "LINKED TIMELINES")
	x, w := vp.X+20, vp.Width-40
	top := vp.Y + panelHeader + 10
	avail := vp.Height - panelHeader - 10 - 20
	upper := (avail - 15) / 1.6
	lower := avail - 15 - upper

	tl := tour.NewTimeline(st.Highlight, 2/w)

	dl.Add(render.Text(x, top+10, "ADAPTIVE MONTH VIEW", 10, th.AccentBlue).WithBold())
	barY, barH := top+14, (upper-14)*0.6
	for _, b := range tl.Adaptive {
		bx, bw := x+b.Left*w, b.Width*w
		fill, op, txt := th.Border, 0.3, th.TextSecondary
		if b.Highlight {
			fill, op, txt = th.AccentBlue, 1, th.White
		}
		dl.Add(render.Rect(bx, barY, bw, barH, fill).WithRadius(4).WithOpacity(op))
		if b.ShowLabel() {
			dl.Add(render.Text(bx+bw/2, barY+barH/2+3.5, b.Label, 10, txt).WithAlign(render.AlignMiddle).WithBold())
		}
	}

	ly := top + upper + 15
	dl.Add(render.Text(x, ly+10, "UNIFORM YEAR VIEW (REFERENCE)", 10, th.TextSecondary).WithBold())
	barY, barH = ly+14, (lower-14)*0.5
	for _, b := range tl.Uniform {
		bx, bw := x+b.Left*w, b.Width*w
		fill, op := th.Border, 0.15
		if b.Highlight {
			// 0x88 tint at 0.8 opacity
			fill, op = th.AccentBlue, 0.8*0x88/255.0
		}
		dl.Add(
			render.Rect(bx, barY, bw, barH, fill).WithRadius(2).WithOpacity(op),
			render.Text(bx+bw/2, barY+barH/2+3, b.Short, 8, th.White).WithAlign(render.AlignMiddle),
		)
	}

	if st.Caption != "" {
		dl.Add(render.Text(vp.X+vp.Width-20, vp.Y+10+14, st.Caption, 14, th.AccentBlue).WithAlign(render.AlignEnd))
	}
	if st.Brush.Visible() {
		bx := vp.X + vp.Width*st.Brush.Start/100
		bw := vp.Width * (st.Brush.End - st.Brush.Start) / 100
		bh := vp.Height * 0.7
		by := vp.Y + vp.Height - 20 - bh
		dl.Add(
			render.Rect(bx, by, bw, bh, th.AccentBlue).WithOpacity(0x11/255.0),
			render.Line(bx, by, bx, by+bh, th.AccentBlue, 2),
			render.Line(bx+bw, by, bx+bw, by+bh, th.AccentBlue, 2),
		)
	}
}

func (r *Renderer) labelChip(dl *render.DrawList, vp render.Viewport, label string) {
	w := render.TextWidth(label, 18) + 40
	h := 18.0 + 20
	x := vp.X + vp.Width - 100 - w
	y := vp.Y + vp.Height - 250 - h
	dl.Add(
		render.Rect(x, y, w, h, r.theme.AccentBlue).WithRadius(8),
		render.Text(x+20, y+10+14, label, 18, r.theme.White).WithBold(),
	)
}

func inside(vp render.Viewport, x, y float64) bool {
	return x >= vp.X && x <= vp.X+vp.Width && y >= vp.Y && y <= vp.Y+vp.Height
}
