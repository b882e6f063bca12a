package stc

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameter is returned for curves, cameras or other inputs that
// cannot produce a meaningful frame.
var ErrInvalidParameter = errors.New("stc: invalid parameter")

// Curve is a piecewise-linear mapping defined by breakpoints. Inputs outside
// the breakpoint domain are clamped to the first or last segment end.
type Curve struct {
	in, out []float64
}

// NewCurve builds a curve from matching breakpoint lists. in must be
// strictly increasing and every value finite.
func NewCurve(in, out []float64) (Curve, error) {
	if len(in) < 2 || len(in) != len(out) {
		return Curve{}, fmt.Errorf("%w: curve needs >= 2 matching breakpoints, got %d/%d", ErrInvalidParameter, len(in), len(out))
	}
	for i := range in {
		if !finite(in[i]) || !finite(out[i]) {
			return Curve{}, fmt.Errorf("%w: non-finite breakpoint at %d", ErrInvalidParameter, i)
		}
		if i > 0 && in[i] <= in[i-1] {
			return Curve{}, fmt.Errorf("%w: breakpoints not increasing at %d", ErrInvalidParameter, i)
		}
	}
	c := Curve{in: make([]float64, len(in)), out: make([]float64, len(out))}
	copy(c.in, in)
	copy(c.out, out)
	return c, nil
}

// MustCurve is NewCurve for static tables; it panics on error.
func MustCurve(in, out []float64) Curve {
	c, err := NewCurve(in, out)
	if err != nil {
		panic(err)
	}
	return c
}

// Identity reports whether the curve is unset.
func (c Curve) Identity() bool { return len(c.in) == 0 }

// Breakpoints returns copies of the input and output breakpoints.
func (c Curve) Breakpoints() (in, out []float64) {
	return append([]float64(nil), c.in...), append([]float64(nil), c.out...)
}

// Eval maps z through the curve. An unset curve is the identity.
func (c Curve) Eval(z float64) float64 {
	n := len(c.in)
	if n == 0 {
		return z
	}
	if z <= c.in[0] {
		return c.out[0]
	}
	if z >= c.in[n-1] {
		return c.out[n-1]
	}
	for i := 1; i < n; i++ {
		if z <= c.in[i] {
			u := (z - c.in[i-1]) / (c.in[i] - c.in[i-1])
			return c.out[i-1] + (c.out[i]-c.out[i-1])*u
		}
	}
	return c.out[n-1]
}

// Warp blends the linear time axis towards a warped one.
type Warp struct {
	Base Curve
	// Burst, when set, replaces Base for burst points.
	Burst *Curve
}

// Curve returns the curve used for a point category.
func (w Warp) Curve(burst bool) Curve {
	if burst && w.Burst != nil {
		return *w.Burst
	}
	return w.Base
}

// Apply returns the warped time of z at the given progress. Progress is
// clamped to [0,1]; 0 is the identity and 1 the full curve.
func (w Warp) Apply(z, progress float64, burst bool) float64 {
	p := clamp01(progress)
	if p == 0 {
		return z
	}
	target := w.Curve(burst).Eval(z)
	if p == 1 {
		return target
	}
	return z + (target-z)*p
}

// TourWarp stretches the 0.2..0.6 burst window and squeezes the sparse
// stretches around it. Burst points use a narrower curve of their own.
func TourWarp() Warp {
	burst := MustCurve([]float64{0.2, 0.6}, []float64{0.2, 0.3})
	return Warp{
		Base:  MustCurve([]float64{-1, 0.2, 0.6, 1}, []float64{-1, -0.1, 0.7, 1}),
		Burst: &burst,
	}
}

// ConceptWarp expands both bursts of ConceptCloudSpec.
func ConceptWarp() Warp {
	return Warp{
		Base: MustCurve(
			[]float64{-1, -0.35, -0.1, 0.45, 0.7, 1},
			[]float64{-1, -0.8, -0.2, 0.2, 0.8, 1},
		),
	}
}

func clamp01(x float64) float64 {
	if !(x > 0) {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
