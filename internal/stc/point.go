// Package stc is the space-time cube projection engine: a seeded point
// cloud, a piecewise time-axis warp and the rotate/tilt/perspective
// projector that maps both the cloud and the cube wireframe to screen space.
//
// Everything here is a pure function of its inputs. A frame is computed from
// the frame index and static configuration alone, so frames can be rendered
// in any order or in parallel.
package stc

import "gonum.org/v1/gonum/spatial/r3"

// Point3D is one event in the cloud. X and Y are spatial jitter, Z is
// normalised time in [-1,1].
type Point3D struct {
	X, Y, Z  float64
	Burst    bool
	Filtered bool
}

// Edge is a cube edge between two corners in (x, y, time) coordinates.
type Edge struct {
	A, B r3.Vec
}

// ProjectedPoint is a screen-space position plus the post-tilt depth used
// for paint ordering and falloff.
type ProjectedPoint struct {
	X, Y  float64
	Depth float64
	Burst bool
	// Index is the position of the source point in the cloud.
	Index int
}

// Segment is a projected cube edge.
type Segment struct {
	A, B ProjectedPoint
}

var cubeEdges = func() []Edge {
	c := func(x, y, z float64) r3.Vec { return r3.Vec{X: x, Y: y, Z: z} }
	return []Edge{
		// t = -1 face
		{c(-1, -1, -1), c(1, -1, -1)},
		{c(1, -1, -1), c(1, 1, -1)},
		{c(1, 1, -1), c(-1, 1, -1)},
		{c(-1, 1, -1), c(-1, -1, -1)},
		// t = +1 face
		{c(-1, -1, 1), c(1, -1, 1)},
		{c(1, -1, 1), c(1, 1, 1)},
		{c(1, 1, 1), c(-1, 1, 1)},
		{c(-1, 1, 1), c(-1, -1, 1)},
		// pillars along the time axis
		{c(-1, -1, -1), c(-1, -1, 1)},
		{c(1, -1, -1), c(1, -1, 1)},
		{c(1, 1, -1), c(1, 1, 1)},
		{c(-1, 1, -1), c(-1, 1, 1)},
	}
}()

// CubeEdges returns the 12 edges of the unit cube with corners at ±1.
// The returned slice is a copy.
func CubeEdges() []Edge {
	out := make([]Edge, len(cubeEdges))
	copy(out, cubeEdges)
	return out
}
