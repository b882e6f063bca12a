package tour

import "github.com/coreman2200/funtimes-stcube/internal/render"

// Dashboard metrics in pixels at 1920x1080.
const (
	Padding        = 30
	HeaderHeight   = 80
	ControlsWidth  = 280
	Gap            = 20
	TimelineHeight = 220
	MapFlex        = 1.5
	CubeFlex       = 1.0
	SplitGap       = 10
)

// Panels are the dashboard rectangles.
type Panels struct {
	Header   render.Viewport
	Controls render.Viewport // zero when hidden
	Map      render.Viewport
	Cube     render.Viewport
	Timeline render.Viewport
}

// Layout divides vp into header, optional control panel, map, cube and the
// timeline strip.
func Layout(vp render.Viewport, showControls bool) Panels {
	in := vp.Inset(Padding)
	p := Panels{
		Header: render.Viewport{X: in.X, Y: in.Y, Width: in.Width, Height: HeaderHeight},
	}
	bodyTop := in.Y + HeaderHeight
	timelineTop := in.Y + in.Height - TimelineHeight
	bodyH := max(timelineTop-Gap-bodyTop, 0)
	p.Timeline = render.Viewport{X: in.X, Y: timelineTop, Width: in.Width, Height: TimelineHeight}

	x := in.X
	if showControls {
		p.Controls = render.Viewport{X: x, Y: bodyTop, Width: ControlsWidth, Height: bodyH}
		x += ControlsWidth + Gap
	}
	rest := max(in.X+in.Width-x-Gap, 0)
	mapW := rest * MapFlex / (MapFlex + CubeFlex)
	p.Map = render.Viewport{X: x, Y: bodyTop, Width: mapW, Height: bodyH}
	p.Cube = render.Viewport{X: x + mapW + Gap, Y: bodyTop, Width: rest - mapW, Height: bodyH}
	return p
}

// Split halves a panel side by side.
func Split(vp render.Viewport) (left, right render.Viewport) {
	w := (vp.Width - SplitGap) / 2
	left = render.Viewport{X: vp.X, Y: vp.Y, Width: w, Height: vp.Height}
	right = render.Viewport{X: vp.X + w + SplitGap, Y: vp.Y, Width: w, Height: vp.Height}
	return left, right
}

// Square returns the largest square of at most side pixels centred in vp,
// and the scale factor relative to side.
func Square(vp render.Viewport, side float64) (render.Viewport, float64) {
	s := min(side, vp.Width, vp.Height)
	if s < 0 {
		s = 0
	}
	sq := render.Viewport{
		X:      vp.X + (vp.Width-s)/2,
		Y:      vp.Y + (vp.Height-s)/2,
		Width:  s,
		Height: s,
	}
	if side <= 0 {
		return sq, 1
	}
	return sq, s / side
}
