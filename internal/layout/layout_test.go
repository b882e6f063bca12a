package layout

import "testing"

func TestIndexCoversEveryLEDOnce(t *testing.T) {
	for _, o := range []Serpentine{{}, {XFlipEveryRow: true}, {XFlipEveryRow: true, YFlipEveryPanel: true}} {
		l := Layout{Dim: Dim{X: 4, Y: 3, Z: 5}, Order: o}
		seen := make([]bool, l.Count())
		for z := 0; z < l.Dim.Z; z++ {
			for y := 0; y < l.Dim.Y; y++ {
				for x := 0; x < l.Dim.X; x++ {
					i := l.Index(x, y, z)
					if i < 0 || i >= l.Count() {
						t.Fatalf("%+v: index %d out of range", o, i)
					}
					if seen[i] {
						t.Fatalf("%+v: index %d assigned twice", o, i)
					}
					seen[i] = true
					if gx, gy, gz := l.Coord(i); gx != x || gy != y || gz != z {
						t.Fatalf("%+v: Coord(%d) = %d,%d,%d want %d,%d,%d", o, i, gx, gy, gz, x, y, z)
					}
				}
			}
		}
	}
}

func TestSerpentineRows(t *testing.T) {
	l := Layout{Dim: Dim{X: 4, Y: 2, Z: 2}, Order: Serpentine{XFlipEveryRow: true}}
	if got := l.Index(0, 1, 0); got != 7 {
		t.Fatalf("odd row should run backwards, got %d", got)
	}
	if got := l.Index(3, 1, 0); got != 4 {
		t.Fatalf("got %d", got)
	}
}

func TestSizeMM(t *testing.T) {
	l := Layout{Dim: Dim{X: 8, Y: 8, Z: 8}, PitchMM: 10, PanelGapMM: 5}
	x, y, z := l.SizeMM()
	if x != 70 || y != 70 || z != 105 {
		t.Fatalf("got %v %v %v", x, y, z)
	}
}
