package render

// Cull drops ops that are fully transparent or lie entirely outside the
// frame.
func Cull(dl *DrawList) {
	out := dl.Ops[:0]
	for _, o := range dl.Ops {
		if o.Opacity <= 0 {
			continue
		}
		x0, y0, x1, y1 := o.Bounds()
		if x1 < 0 || y1 < 0 || x0 > dl.Width || y0 > dl.Height {
			continue
		}
		out = append(out, o)
	}
	dl.Ops = out
}

// GlobalOpacity fades every op and the background towards black.
// Reads from uniforms.Params:
//   - "Fade" (default 1; 0 is black)
func GlobalOpacity(dl *DrawList, u *Uniforms) {
	f := clamp01(u.Param("Fade", 1))
	if f >= 1 {
		return
	}
	for i := range dl.Ops {
		dl.Ops[i].Opacity *= f
	}
	dl.Background = Color{}.Lerp(dl.Background, f)
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
