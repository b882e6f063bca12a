package stc

// SliceRange is a time window in timeline percent, 0..100.
type SliceRange struct {
	Start, End float64
}

// Bounds converts the window to normalised time. Values are clamped to
// 0..100 and reordered if reversed.
func (s SliceRange) Bounds() (lo, hi float64) {
	a, b := clampPct(s.Start), clampPct(s.End)
	if a > b {
		a, b = b, a
	}
	return a/50 - 1, b/50 - 1
}

// Contains reports whether an unwarped time value lies inside the window.
func (s SliceRange) Contains(z float64) bool {
	lo, hi := s.Bounds()
	return z >= lo && z <= hi
}

// Visible applies the slice and subset predicates to a point.
func Visible(p Point3D, slice *SliceRange, filteredOnly bool) bool {
	if filteredOnly && !p.Filtered {
		return false
	}
	if slice != nil && !slice.Contains(p.Z) {
		return false
	}
	return true
}

// CountVisible returns how many points pass Visible.
func CountVisible(cloud []Point3D, slice *SliceRange, filteredOnly bool) int {
	n := 0
	for _, p := range cloud {
		if Visible(p, slice, filteredOnly) {
			n++
		}
	}
	return n
}

func clampPct(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
