package sequence

// clamp01 clamps x in [0,1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// smootherstep (cubic-ish) for ease="cubic"
func smootherstep(x float64) float64 {
	// 6x^5 - 15x^4 + 10x^3
	return x * x * x * (x*(x*6-15) + 10)
}

// Ease applies a named easing curve to x in [0,1]. Unknown names are linear.
func Ease(kind string, x float64) float64 {
	switch kind {
	case "linear", "":
		return x
	case "smooth":
		// classic smoothstep 3x^2 - 2x^3
		return x * x * (3 - 2*x)
	case "cubic":
		return smootherstep(x)
	case "quadInOut":
		if x < 0.5 {
			return 2 * x * x
		}
		y := 1 - x
		return 1 - 2*y*y
	case "cubicOut":
		y := 1 - x
		return 1 - y*y*y
	default:
		return x
	}
}

// Eval returns the value of the envelope at frame f.
// If there are no keys, returns 0; if one key, returns its value.
// Keys must be sorted by F ascending.
func (e Envelope) Eval(f float64) float64 {
	n := len(e.Keys)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return e.Keys[0].V
	}
	// before first
	if f <= e.Keys[0].F {
		return e.Keys[0].V
	}
	// after last
	if f >= e.Keys[n-1].F {
		return e.Keys[n-1].V
	}
	// find segment
	for i := 0; i < n-1; i++ {
		a := e.Keys[i]
		b := e.Keys[i+1]
		if f >= a.F && f <= b.F {
			den := b.F - a.F
			if den <= 0 {
				return b.V
			}
			u := clamp01((f - a.F) / den)
			u = Ease(a.Ease, u)
			return a.V + (b.V-a.V)*u
		}
	}
	return e.Keys[n-1].V
}

// BoolEval thresholds the envelope at 0.5 into a boolean.
func (e Envelope) BoolEval(f float64) bool {
	return e.Eval(f) >= 0.5
}

// Ramp is a two-key envelope from v0 at f0 to v1 at f1.
func Ramp(f0, f1, v0, v1 float64, ease string) Envelope {
	return Envelope{Keys: []Keyframe{{F: f0, V: v0, Ease: ease}, {F: f1, V: v1}}}
}

// Step is an envelope that switches from 0 to 1 after frame f.
func Step(f float64) Envelope {
	return Envelope{Keys: []Keyframe{{F: f, V: 0}, {F: f + 1e-6, V: 1}}}
}
