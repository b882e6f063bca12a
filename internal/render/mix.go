package render

// Mix blends two draw lists (a,b) into dst using alpha (0..1): a's ops fade
// out underneath b's ops fading in, and the backgrounds are interpolated.
func Mix(dst, a, b *DrawList, alpha float64) {
	if alpha <= 0 {
		dst.CopyFrom(a)
		return
	}
	if alpha >= 1 {
		dst.CopyFrom(b)
		return
	}
	dst.Width, dst.Height = a.Width, a.Height
	dst.Background = a.Background.Lerp(b.Background, alpha)
	dst.Ops = dst.Ops[:0]
	af := 1.0 - alpha
	for _, o := range a.Ops {
		o.Opacity *= af
		dst.Ops = append(dst.Ops, o)
	}
	if b.Background != a.Background {
		// b's background is painted over a as a translucent sheet.
		dst.Ops = append(dst.Ops, Rect(0, 0, b.Width, b.Height, b.Background).WithOpacity(alpha))
	}
	for _, o := range b.Ops {
		o.Opacity *= alpha
		dst.Ops = append(dst.Ops, o)
	}
}
