package led

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/coreman2200/funtimes-stcube/internal/layout"
)

// BuildLUT returns the physical position of every strip index, following
// the serpentine wiring of l. Positions are centred on the lattice and
// scaled so the longest axis spans [-1,1]; panel gaps stretch Z. Without a
// pitch every LED is one unit from its neighbours.
func BuildLUT(l layout.Layout) []r3.Vec {
	out := make([]r3.Vec, l.Count())
	pitch := l.PitchMM
	gap := l.PanelGapMM
	if pitch <= 0 {
		pitch, gap = 1, 0
	}
	step := r3.Vec{X: pitch, Y: pitch, Z: pitch + gap}
	size := r3.Vec{
		X: float64(max(l.Dim.X-1, 0)) * step.X,
		Y: float64(max(l.Dim.Y-1, 0)) * step.Y,
		Z: float64(max(l.Dim.Z-1, 0)) * step.Z,
	}
	half := max(size.X, size.Y, size.Z) / 2
	scale := 1.0
	if half > 0 {
		scale = 1 / half
	}
	centre := r3.Scale(0.5, size)
	for z := 0; z < l.Dim.Z; z++ {
		for y := 0; y < l.Dim.Y; y++ {
			for x := 0; x < l.Dim.X; x++ {
				p := r3.Vec{X: float64(x) * step.X, Y: float64(y) * step.Y, Z: float64(z) * step.Z}
				out[l.Index(x, y, z)] = r3.Scale(scale, r3.Sub(p, centre))
			}
		}
	}
	return out
}

// HalfExtent is the largest coordinate along each axis of a LUT.
func HalfExtent(lut []r3.Vec) r3.Vec {
	var h r3.Vec
	for _, p := range lut {
		h.X = max(h.X, p.X)
		h.Y = max(h.Y, p.Y)
		h.Z = max(h.Z, p.Z)
	}
	return h
}
