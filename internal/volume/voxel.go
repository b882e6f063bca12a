// Package volume renders the space-time cube into the LED cube's voxel
// lattice and prepares frames for the strip: tone mapping, current
// limiting and calibration patterns.
package volume

import (
	"math"

	"github.com/coreman2200/funtimes-stcube/internal/layout"
	"github.com/coreman2200/funtimes-stcube/internal/led"
	"github.com/coreman2200/funtimes-stcube/internal/render"
	"github.com/coreman2200/funtimes-stcube/internal/stc"
)

// Voxels holds one linear colour per LED, in strip order.
type Voxels []render.Color

// Options tune Voxelize.
type Options struct {
	// Intensity of one event, before tone mapping.
	Intensity float64
	// Slice, when set, dims events outside the time window to Dim.
	Slice *stc.SliceRange
	Dim   float64
	// FilteredOnly drops events outside the filtered subset.
	FilteredOnly bool
	Base, Burst  render.Color
}

// DefaultOptions uses the dashboard colours.
func DefaultOptions(th render.Theme) Options {
	return Options{Intensity: 0.8, Dim: 0.15, Base: th.AccentBlue, Burst: th.AccentOrange}
}

// Voxelize splats every event of c onto the nearest LED. Time runs up the Y
// axis (earliest at y=0) after warping at progress; x and y spin around
// the time axis with the cube's spin at frame. The cube keeps its
// proportions inside the physical lattice, so panel gaps squeeze it along
// Z. Events landing on the same LED add up.
func Voxelize(c stc.Cube, frame, progress float64, l layout.Layout, o Options) Voxels {
	out := make(Voxels, l.Count())
	if l.Count() == 0 {
		return out
	}
	h := led.HalfExtent(led.BuildLUT(l))
	fit := math.Inf(1)
	for _, e := range []float64{h.X, h.Y, h.Z} {
		if e > 0 {
			fit = math.Min(fit, e)
		}
	}
	if math.IsInf(fit, 1) {
		fit = 1
	}
	angle := c.Spin.Angle(frame)
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		angle = 0
	}
	sa, ca := math.Sincos(angle)
	for _, p := range c.Cloud {
		if o.FilteredOnly && !p.Filtered {
			continue
		}
		w := o.Intensity
		if o.Slice != nil && !o.Slice.Contains(p.Z) {
			w *= o.Dim
		}
		if w <= 0 {
			continue
		}
		t := c.Warp.Apply(p.Z, progress, p.Burst)
		x := p.X*ca - p.Y*sa
		z := p.X*sa + p.Y*ca

		vx := cell(x*fit, h.X, l.Dim.X)
		vy := cell(t*fit, h.Y, l.Dim.Y)
		vz := cell(z*fit, h.Z, l.Dim.Z)
		if !l.Contains(vx, vy, vz) {
			continue
		}
		col := o.Base
		if p.Burst {
			col = o.Burst
		}
		i := l.Index(vx, vy, vz)
		out[i].R += col.R * float32(w)
		out[i].G += col.G * float32(w)
		out[i].B += col.B * float32(w)
	}
	return out
}

// cell maps [-half,half] onto 0..n-1.
func cell(v, half float64, n int) int {
	if n <= 1 || half <= 0 {
		return 0
	}
	return int(math.Round((v + half) / (2 * half) * float64(n-1)))
}

// Bytes converts to 8-bit RGB at the given brightness.
func (v Voxels) Bytes(brightness float64) []byte {
	out := make([]byte, len(v)*3)
	b := float32(math.Max(0, math.Min(1, brightness)))
	for i, c := range v {
		out[i*3+0] = to8(c.R * b)
		out[i*3+1] = to8(c.G * b)
		out[i*3+2] = to8(c.B * b)
	}
	return out
}

func to8(x float32) byte {
	return byte(math.Round(float64(clamp01(x)) * 255))
}
