package stc

// Falloff derives point radius and opacity from depth. Smaller depth is
// nearer the camera and yields the larger radius and higher opacity.
type Falloff struct {
	DepthNear, DepthFar   float64
	RadiusNear, RadiusFar float64

	OpacityDepthNear, OpacityDepthFar float64
	OpacityNear, OpacityFar           float64
}

// TourFalloff matches the dashboard cube.
func TourFalloff() Falloff {
	return Falloff{
		DepthNear: -2, DepthFar: 2, RadiusNear: 5, RadiusFar: 2,
		OpacityDepthNear: -1.5, OpacityDepthFar: 1.5, OpacityNear: 1, OpacityFar: 0.3,
	}
}

// ConceptFalloff matches the concept video cube.
func ConceptFalloff() Falloff {
	return Falloff{
		DepthNear: -2, DepthFar: 2, RadiusNear: 6, RadiusFar: 2,
		OpacityDepthNear: -1.5, OpacityDepthFar: 1.5, OpacityNear: 1, OpacityFar: 0.4,
	}
}

// Radius at depth, clamped to the configured range.
func (f Falloff) Radius(depth float64) float64 {
	return clampLerp(depth, f.DepthNear, f.DepthFar, f.RadiusNear, f.RadiusFar)
}

// Opacity at depth, clamped to the configured range.
func (f Falloff) Opacity(depth float64) float64 {
	return clampLerp(depth, f.OpacityDepthNear, f.OpacityDepthFar, f.OpacityNear, f.OpacityFar)
}

func clampLerp(x, x0, x1, y0, y1 float64) float64 {
	if x1 == x0 {
		return y0
	}
	u := clamp01((x - x0) / (x1 - x0))
	return y0 + (y1-y0)*u
}
