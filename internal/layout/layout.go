// Package layout maps voxel coordinates of the LED cube to strip indices.
// The strip snakes through each panel row by row and then on to the next
// panel, optionally reversing direction on odd rows and odd panels.
package layout

type Dim struct{ X, Y, Z int }

type Serpentine struct {
	XFlipEveryRow   bool
	YFlipEveryPanel bool
}

type Layout struct {
	Dim        Dim
	Order      Serpentine
	PanelGapMM float64
	PitchMM    float64
}

// Index maps x,y,z -> linear LED index (0..N-1)
func (l Layout) Index(x, y, z int) int {
	yy := y
	xx := x
	if (y%2 == 1) && l.Order.XFlipEveryRow {
		xx = l.Dim.X - 1 - x
	}
	if l.Order.YFlipEveryPanel && (z%2 == 1) {
		yy = l.Dim.Y - 1 - y
	}
	perPanel := l.Dim.X * l.Dim.Y
	return z*perPanel + yy*l.Dim.X + xx
}

// Coord is the inverse of Index.
func (l Layout) Coord(i int) (x, y, z int) {
	perPanel := l.Dim.X * l.Dim.Y
	z = i / perPanel
	rem := i % perPanel
	yy := rem / l.Dim.X
	xx := rem % l.Dim.X
	y = yy
	if l.Order.YFlipEveryPanel && z%2 == 1 {
		y = l.Dim.Y - 1 - yy
	}
	x = xx
	if y%2 == 1 && l.Order.XFlipEveryRow {
		x = l.Dim.X - 1 - xx
	}
	return x, y, z
}

func (l Layout) Count() int {
	return l.Dim.X * l.Dim.Y * l.Dim.Z
}

// Contains reports whether x,y,z lies inside the cube.
func (l Layout) Contains(x, y, z int) bool {
	return x >= 0 && y >= 0 && z >= 0 && x < l.Dim.X && y < l.Dim.Y && z < l.Dim.Z
}

// SizeMM is the physical extent of the lattice along each axis. Panels are
// stacked along Z with PanelGapMM between them.
func (l Layout) SizeMM() (x, y, z float64) {
	span := func(n int, step float64) float64 {
		if n < 2 {
			return 0
		}
		return float64(n-1) * step
	}
	return span(l.Dim.X, l.PitchMM), span(l.Dim.Y, l.PitchMM), span(l.Dim.Z, l.PitchMM+l.PanelGapMM)
}
