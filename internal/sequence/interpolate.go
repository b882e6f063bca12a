package sequence

// Extrapolate selects the behaviour of Interpolate outside its input range.
type Extrapolate int

const (
	Clamp Extrapolate = iota
	Extend
)

// InterpOpts configures Interpolate. The zero value clamps both ends with
// linear segments.
type InterpOpts struct {
	Left, Right Extrapolate
	Ease        string
}

// Interpolate maps x through the piecewise-linear curve (in -> out) with the
// easing applied inside each segment. in must be increasing and match out in
// length; a malformed table returns x unchanged.
func Interpolate(x float64, in, out []float64, o InterpOpts) float64 {
	n := len(in)
	if n < 2 || n != len(out) {
		return x
	}
	seg := n - 2
	for i := 1; i < n; i++ {
		if x < in[i] {
			seg = i - 1
			break
		}
	}
	x0, x1 := in[seg], in[seg+1]
	y0, y1 := out[seg], out[seg+1]
	if x1 == x0 {
		return y1
	}
	u := (x - x0) / (x1 - x0)
	switch {
	case u < 0 && o.Left == Clamp:
		return out[0]
	case u > 1 && o.Right == Clamp:
		return out[n-1]
	case u >= 0 && u <= 1:
		u = Ease(o.Ease, u)
	}
	return y0 + (y1-y0)*u
}

// Window maps frame f in [f0,f1] to [0,1], clamped, with easing.
func Window(f, f0, f1 float64, ease string) float64 {
	return Interpolate(f, []float64{f0, f1}, []float64{0, 1}, InterpOpts{Ease: ease})
}
