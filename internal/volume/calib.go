package volume

import (
	"math"

	"github.com/coreman2200/funtimes-stcube/internal/layout"
	"github.com/coreman2200/funtimes-stcube/internal/render"
)

// Pattern names a calibration sequence.
type Pattern string

const (
	None       Pattern = ""
	IndexSweep Pattern = "index_sweep"
	RGBTest    Pattern = "rgb_channels"
	PlaneZ     Pattern = "plane_z"
	Rainbow    Pattern = "rainbow"
)

// Patterns lists every runnable calibration.
var Patterns = []Pattern{IndexSweep, RGBTest, PlaneZ, Rainbow}

// RGBCycles is how many channel rounds RGBTest shows before finishing.
const RGBCycles = 3

// RainbowSteps is the length of one rainbow loop.
const RainbowSteps = 100

// Runner steps one calibration pattern through the lattice.
type Runner struct {
	pattern Pattern
	step    int
}

func NewRunner(p Pattern) *Runner { return &Runner{pattern: p} }

func (r *Runner) Pattern() Pattern { return r.pattern }

// Known reports whether p names a pattern.
func Known(p Pattern) bool {
	for _, k := range Patterns {
		if k == p {
			return true
		}
	}
	return false
}

// Step fills v with the next pattern frame; returns false when complete.
func (r *Runner) Step(l layout.Layout, v Voxels) bool {
	n := l.Count()
	for i := range v {
		v[i] = render.Color{}
	}
	white := render.Color{R: 1, G: 1, B: 1}

	switch r.pattern {
	case IndexSweep:
		if r.step >= n {
			return false
		}
		v[r.step] = white
	case RGBTest:
		if r.step >= 3*RGBCycles {
			return false
		}
		var c render.Color
		switch r.step % 3 {
		case 0:
			c.R = 1
		case 1:
			c.G = 1
		case 2:
			c.B = 1
		}
		for i := 0; i < n; i++ {
			v[i] = c
		}
	case PlaneZ:
		if r.step >= l.Dim.Z {
			return false
		}
		for y := 0; y < l.Dim.Y; y++ {
			for x := 0; x < l.Dim.X; x++ {
				v[l.Index(x, y, r.step)] = render.Color{G: 1, B: 1}
			}
		}
	case Rainbow:
		if r.step >= RainbowSteps {
			return false
		}
		phase := float64(r.step) / RainbowSteps
		for i := 0; i < n; i++ {
			x, y, z := l.Coord(i)
			u := float64(x) / float64(max(1, l.Dim.X-1))
			w := float64(y) / float64(max(1, l.Dim.Y-1))
			d := float64(z) / float64(max(1, l.Dim.Z-1))
			cr, cg, cb := hsvToRGB(math.Mod(u+w+d+phase, 1.0), 1, 1)
			v[i] = render.Color{R: float32(cr), G: float32(cg), B: float32(cb)}
		}
	default:
		return false
	}
	r.step++
	return true
}

func hsvToRGB(h, s, v float64) (float64, float64, float64) {
	i := int(h * 6.0)
	f := h*6.0 - float64(i)
	p := v * (1.0 - s)
	q := v * (1.0 - f*s)
	t := v * (1.0 - (1.0-f)*s)
	switch i % 6 {
	case 0:
		return v, t, p
	case 1:
		return q, v, p
	case 2:
		return p, v, t
	case 3:
		return p, q, v
	case 4:
		return t, p, v
	default:
		return v, p, q
	}
}
