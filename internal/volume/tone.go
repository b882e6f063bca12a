package volume

import (
	"math"

	"github.com/coreman2200/funtimes-stcube/internal/render"
)

// FilmicToneMap applies exposure, an ACES fit and output gamma in place.
// Reads from uniforms.Params:
//   - "ExposureEV" (default 0)
//   - "OutputGamma" (default 2.2)
func FilmicToneMap(buf []render.Color, u *render.Uniforms) {
	exposureEV := u.Param("ExposureEV", 0)
	gamma := 2.2
	if g := u.Param("OutputGamma", 2.2); g > 0 {
		gamma = g
	}
	exposure := float32(math.Pow(2.0, exposureEV))

	for i := range buf {
		r := acesApprox(buf[i].R * exposure)
		g := acesApprox(buf[i].G * exposure)
		b := acesApprox(buf[i].B * exposure)
		if gamma != 1.0 {
			ig := 1.0 / gamma
			r = powf(r, ig)
			g = powf(g, ig)
			b = powf(b, ig)
		}
		buf[i] = render.Color{R: clamp01(r), G: clamp01(g), B: clamp01(b)}
	}
}

// DefaultLimiter applies a two-stage limiter:
// 1) Per-LED "white cap": scales (R,G,B) so R+G+B <= WhiteCap (default 3.0 = no cap)
// 2) Global current budget: estimates current and scales the whole frame to stay under Budget_mA
//
// Parameters (read from uniforms.Params):
//   - "WhiteCap" (sum of channels cap in linear space, default 3.0)
//   - "LEDChan_mA" (mA per color channel at full scale; WS2812 ≈ 20, default 20)
//   - "Budget_mA" (global budget in mA; if 0 or missing only the cap applies)
//   - "LimiterKnee" (fraction of budget where soft limiting begins; default 0.9)
//   - "PreviewMode" > 0.5 bypasses the limiter
func DefaultLimiter(buf []render.Color, u *render.Uniforms) {
	if u == nil || u.Param("PreviewMode", 0) > 0.5 {
		return
	}
	whiteCap := 3.0
	if v := u.Param("WhiteCap", 0); v > 0 {
		whiteCap = v
	}
	chanmA := 20.0
	if v := u.Param("LEDChan_mA", 0); v > 0 {
		chanmA = v
	}
	budget := u.Param("Budget_mA", 0)
	knee := 0.9
	if v := u.Param("LimiterKnee", 0); v > 0 && v < 1 {
		knee = v
	}

	wc := float32(whiteCap)
	for i := range buf {
		s := buf[i].R + buf[i].G + buf[i].B
		if s > wc && s > 0 {
			scale := wc / s
			buf[i].R *= scale
			buf[i].G *= scale
			buf[i].B *= scale
		}
	}

	if budget <= 0 {
		return
	}
	total := EstimateCurrent(buf, chanmA)
	if total <= 0 {
		return
	}
	ratio := total / budget
	if ratio <= knee {
		return
	}
	if ratio <= 1.0 {
		// ease from 1 at the knee down to budget/total at the budget
		minS := budget / total
		t := (ratio - knee) / (1.0 - knee)
		applyGlobalScale(buf, float32(1.0-t*(1.0-minS)))
		return
	}
	applyGlobalScale(buf, float32(budget/total))
}

// EstimateCurrent is the frame's draw in mA at chanmA per full channel.
func EstimateCurrent(buf []render.Color, chanmA float64) float64 {
	var total float64
	for i := range buf {
		total += float64(buf[i].R+buf[i].G+buf[i].B) * chanmA
	}
	return total
}

func applyGlobalScale(buf []render.Color, s float32) {
	if s >= 1.0 {
		return
	}
	for i := range buf {
		buf[i].R *= s
		buf[i].G *= s
		buf[i].B *= s
	}
}

func clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func powf(x float32, p float64) float32 {
	return float32(math.Pow(float64(x), p))
}

// Approximate ACES filmic curve (Narkowicz 2015).
func acesApprox(x float32) float32 {
	a := float32(2.51)
	b := float32(0.03)
	c := float32(2.43)
	d := float32(0.59)
	e := float32(0.14)
	return clamp01((x * (a*x + b)) / (x*(c*x+d) + e))
}
