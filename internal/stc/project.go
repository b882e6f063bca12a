package stc

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// minDenominator keeps the perspective divide finite for points that pass
// behind the camera.
const minDenominator = 1e-6

// Camera holds the fixed projection constants.
type Camera struct {
	Tilt         float64 // rotation about world X, radians
	Distance     float64 // perspective camera constant
	ZSensitivity float64 // depth multiplier in the perspective divide
	Scale        float64 // world units to pixels
}

// Validate reports ErrInvalidParameter for a camera that cannot project.
func (c Camera) Validate() error {
	if !finite(c.Tilt) || !finite(c.Distance) || !finite(c.ZSensitivity) || !finite(c.Scale) {
		return fmt.Errorf("%w: non-finite camera constant", ErrInvalidParameter)
	}
	if c.Distance <= 0 {
		return fmt.Errorf("%w: camera distance %v must be positive", ErrInvalidParameter, c.Distance)
	}
	return nil
}

// Spin turns frame numbers into a rotation angle about the vertical axis.
type Spin struct {
	Speed float64 // radians per frame
	Phase float64 // radians at frame 0
}

// Angle returns the rotation at frame.
func (s Spin) Angle(frame float64) float64 { return frame*s.Speed + s.Phase }

// Period is the number of frames for one full turn, or +Inf when not spinning.
func (s Spin) Period() float64 {
	if s.Speed == 0 {
		return math.Inf(1)
	}
	return 2 * math.Pi / math.Abs(s.Speed)
}

// Viewport is the pixel rectangle the projection is centred in.
type Viewport struct {
	X, Y          float64
	Width, Height float64
}

// Center returns the middle of the viewport.
func (v Viewport) Center() (float64, float64) {
	return v.X + v.Width/2, v.Y + v.Height/2
}

// Projector maps cloud points into a viewport for one frame.
type Projector struct {
	Camera   Camera
	Viewport Viewport
	Warp     Warp
	Angle    float64
	Progress float64
}

// Sanitize replaces non-finite angle or progress with 0 so a bad input
// degrades to the unrotated, unwarped frame.
func (pr Projector) Sanitize() Projector {
	if !finite(pr.Angle) {
		pr.Angle = 0
	}
	if !finite(pr.Progress) {
		pr.Progress = 0
	}
	return pr
}

// Project maps a cloud point through warp, rotation, tilt and perspective.
func (pr Projector) Project(p Point3D) ProjectedPoint {
	return pr.ProjectTime(p.X, p.Y, p.Z, p.Burst)
}

// ProjectTime maps spatial (x, y) at normalised time t.
func (pr Projector) ProjectTime(x, y, t float64, burst bool) ProjectedPoint {
	warped := pr.Warp.Apply(t, pr.Progress, burst)
	world := r3.Vec{X: x, Y: -warped, Z: y}

	// spin turns x toward -z, then the tilt leans the time axis away
	v := r3.NewRotation(-pr.Angle, r3.Vec{Y: 1}).Rotate(world)
	v = r3.NewRotation(pr.Camera.Tilt, r3.Vec{X: 1}).Rotate(v)

	den := pr.Camera.Distance + v.Z*pr.Camera.ZSensitivity
	if den < minDenominator {
		den = minDenominator
	}
	s := pr.Camera.Distance / den * pr.Camera.Scale
	cx, cy := pr.Viewport.Center()
	return ProjectedPoint{
		X:     v.X*s + cx,
		Y:     v.Y*s + cy,
		Depth: v.Z,
		Burst: burst,
		Index: -1,
	}
}

// ProjectEdge maps a cube edge using the base curve.
func (pr Projector) ProjectEdge(e Edge) Segment {
	return Segment{
		A: pr.ProjectTime(e.A.X, e.A.Y, e.A.Z, false),
		B: pr.ProjectTime(e.B.X, e.B.Y, e.B.Z, false),
	}
}
