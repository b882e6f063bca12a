// Package calib renders test cards for checking output surfaces: a channel
// sweep for colour and gamma, and an alignment grid for geometry.
package calib

import (
	"fmt"
	"math"

	"github.com/coreman2200/funtimes-stcube/internal/render"
)

// Renderer draws a test card chosen by preset.
//
// ChannelSweep params:
//   - "Cols", "Rows": cells per panel (default 8 x 8)
//   - "LRGamma": left to right darkening curve
//   - "TopWhitePow", "TopWhiteMix": bottom to top blend towards white
//   - "RightFloor": minimum brightness at the right edge
//   - "Saturation": 0 grey, 1 full channel
//
// Bools "FlipX" and "FlipY" mirror the sweep.
type Renderer struct {
	name  string
	theme render.Theme
}

func New(name string, th render.Theme) *Renderer { return &Renderer{name: name, theme: th} }

func (r *Renderer) Name() string      { return r.name }
func (r *Renderer) Presets() []string { return []string{"ChannelSweep", "Grid"} }

func (r *Renderer) ApplyPreset(p string, u *render.Uniforms) {
	if u == nil || p != "ChannelSweep" {
		return
	}
	ensure(u, map[string]float64{
		"Cols":        8,
		"Rows":        8,
		"LRGamma":     1.4,
		"TopWhitePow": 2.0,
		"TopWhiteMix": 0.6,
		"RightFloor":  0,
		"Saturation":  1,
	})
}

func ensure(u *render.Uniforms, kv map[string]float64) {
	for k, v := range kv {
		if _, ok := u.Params[k]; !ok {
			u.Params[k] = v
		}
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func norm(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}

func (r *Renderer) Render(dl *render.DrawList, vp render.Viewport, frame float64, u *render.Uniforms) {
	if u == nil {
		u = render.NewUniforms()
	}
	dl.Background = r.theme.Background
	if u.Preset == "Grid" {
		r.grid(dl, vp, frame)
		return
	}
	r.sweep(dl, vp, u)
}

// SweepColor is the colour of cell (x, y) of an X by Y panel showing
// channel ch (0 red, 1 green, 2 blue); y counts up from the bottom.
func SweepColor(ch, x, y, X, Y int, u *render.Uniforms) render.Color {
	lrPow := u.Param("LRGamma", 1.2)
	topPow := u.Param("TopWhitePow", 0.6)
	topMix := clamp01(u.Param("TopWhiteMix", 1))
	floor := clamp01(u.Param("RightFloor", 0))
	sat := clamp01(u.Param("Saturation", 1))

	var c [3]float64
	c[ch%3] = 1

	lr := 1 - math.Pow(norm(x, X), lrPow)
	lr = floor + (1-floor)*lr

	bt := math.Pow(norm(y, Y), topPow)
	if y == Y-1 {
		bt = 1
	} else {
		bt *= topMix
	}

	for i := range c {
		c[i] *= lr
		c[i] += (1 - c[i]) * bt
	}
	if sat < 1 {
		grey := (c[0] + c[1] + c[2]) / 3
		for i := range c {
			c[i] = grey + (c[i]-grey)*sat
		}
	}
	return render.Color{R: float32(c[0]), G: float32(c[1]), B: float32(c[2])}
}

// sweep lays three channel panels side by side.
func (r *Renderer) sweep(dl *render.DrawList, vp render.Viewport, u *render.Uniforms) {
	cols := max(1, int(u.Param("Cols", 8)))
	rows := max(1, int(u.Param("Rows", 8)))
	flipX, flipY := u.Bool("FlipX", false), u.Bool("FlipY", false)

	const pad = 40
	in := vp.Inset(pad)
	pw := (in.Width - 2*pad) / 3
	ph := in.Height - 30
	cw, ch := pw/float64(cols), ph/float64(rows)

	for p, label := range []string{"R", "G", "B"} {
		x0 := in.X + float64(p)*(pw+pad)
		for y := 0; y < rows; y++ {
			for x := 0; x < cols; x++ {
				vx, vy := x, y
				if flipX {
					vx = cols - 1 - x
				}
				if flipY {
					vy = rows - 1 - y
				}
				c := SweepColor(p, vx, vy, cols, rows, u)
				// y counts up from the bottom of the panel
				top := in.Y + ph - float64(y+1)*ch
				dl.Add(render.Rect(x0+float64(x)*cw, top, cw, ch, c))
			}
		}
		dl.Add(render.Text(x0+pw/2, in.Y+in.Height, label, 18, r.theme.TextSecondary).WithAlign(render.AlignMiddle).WithBold())
	}
}

// grid draws a 10% alignment grid, corner markers and a dot orbiting the
// centre once every 120 frames.
func (r *Renderer) grid(dl *render.DrawList, vp render.Viewport, frame float64) {
	th := r.theme
	for i := 0; i <= 10; i++ {
		f := float64(i) / 10
		x := vp.X + f*vp.Width
		y := vp.Y + f*vp.Height
		col, w := th.Border, 1.0
		if i == 5 {
			col, w = th.TextSecondary, 2
		}
		dl.Add(
			render.Line(x, vp.Y, x, vp.Y+vp.Height, col, w),
			render.Line(vp.X, y, vp.X+vp.Width, y, col, w),
		)
	}
	m := math.Min(vp.Width, vp.Height) * 0.04
	for _, c := range [][2]float64{{vp.X, vp.Y}, {vp.X + vp.Width, vp.Y}, {vp.X, vp.Y + vp.Height}, {vp.X + vp.Width, vp.Y + vp.Height}} {
		dl.Add(render.Circle(c[0], c[1], m, th.AccentOrange))
	}
	cx, cy := vp.X+vp.Width/2, vp.Y+vp.Height/2
	a := 2 * math.Pi * frame / 120
	rad := math.Min(vp.Width, vp.Height) * 0.3
	dl.Add(
		render.Circle(cx+rad*math.Cos(a), cy+rad*math.Sin(a), m/2, th.AccentBlue),
		render.Text(cx, cy-m, fmt.Sprintf("frame %d", int(frame)), m, th.White).WithAlign(render.AlignMiddle),
	)
}
