package stc

import "sort"

// SortByDepth orders points farthest first so later points paint over
// earlier ones. Ties keep no particular order.
func SortByDepth(pts []ProjectedPoint) {
	sort.Slice(pts, func(i, j int) bool { return pts[i].Depth > pts[j].Depth })
}
