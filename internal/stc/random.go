package stc

// Random returns a deterministic pseudo-random number in [0,1) keyed by seed.
// The seed string is folded into a 32-bit hash which then drives a single
// mulberry32 step, so equal labels always yield equal values.
func Random(seed string) float64 {
	return mulberry32(hashString(seed))
}

func hashString(s string) uint32 {
	var h int32
	for _, c := range s {
		h = (h << 5) - h + int32(c)
	}
	return uint32(h)
}

func mulberry32(a uint32) float64 {
	t := a + 0x6d2b79f5
	t = (t ^ t>>15) * (t | 1)
	t ^= t + (t^t>>7)*(t|61)
	return float64(t^t>>14) / 4294967296.0
}
