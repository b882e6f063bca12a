package cube

import (
	"github.com/coreman2200/funtimes-stcube/internal/render"
	"github.com/coreman2200/funtimes-stcube/internal/stc"
)

// Style is how a projected cube is painted.
type Style struct {
	Edge        render.Color
	EdgeWidth   float64
	EdgeOpacity float64
	Base        render.Color
	Burst       render.Color
	BurstBlur   float64
}

// TourStyle is the thin dashboard wireframe with blurred burst points.
func TourStyle(th render.Theme) Style {
	return Style{
		Edge: th.Border, EdgeWidth: 1, EdgeOpacity: 0.4,
		Base: th.AccentBlue, Burst: th.AccentOrange, BurstBlur: 2,
	}
}

// ConceptStyle is the heavier wireframe of the concept slides.
func ConceptStyle(th render.Theme) Style {
	return Style{
		Edge: th.Border, EdgeWidth: 2, EdgeOpacity: 0.6,
		Base: th.AccentBlue, Burst: th.AccentOrange,
	}
}

// Draw emits the wireframe and then the depth-sorted points.
func Draw(dl *render.DrawList, g stc.Geometry, f stc.Falloff, s Style) {
	DrawEdges(dl, g, s)
	DrawPoints(dl, g, f, s)
}

func DrawEdges(dl *render.DrawList, g stc.Geometry, s Style) {
	for _, e := range g.Edges {
		dl.Add(render.Line(e.A.X, e.A.Y, e.B.X, e.B.Y, s.Edge, s.EdgeWidth).WithOpacity(s.EdgeOpacity))
	}
}

// DrawPoints paints points in slice order, which SortByDepth has made
// back to front.
func DrawPoints(dl *render.DrawList, g stc.Geometry, f stc.Falloff, s Style) {
	for _, p := range g.Points {
		c, blur := s.Base, 0.0
		if p.Burst {
			c, blur = s.Burst, s.BurstBlur
		}
		dl.Add(render.Circle(p.X, p.Y, f.Radius(p.Depth), c).
			WithOpacity(f.Opacity(p.Depth)).
			WithBlur(blur))
	}
}

// Fit scales the cube's camera so a design authored for a side x side
// canvas fits in vp, and returns the square viewport to project into.
func Fit(c stc.Cube, vp render.Viewport, side float64) (stc.Cube, stc.Viewport) {
	s := min(side, vp.Width, vp.Height)
	if s < 0 {
		s = 0
	}
	if side > 0 {
		c.Camera.Scale *= s / side
	}
	return c, stc.Viewport{
		X:      vp.X + (vp.Width-s)/2,
		Y:      vp.Y + (vp.Height-s)/2,
		Width:  s,
		Height: s,
	}
}
