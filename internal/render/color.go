package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color is a linear 0..1 RGB triple.
type Color struct{ R, G, B float32 }

// ParseHex parses "#rgb" or "#rrggbb" (leading '#' optional).
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return Color{}, fmt.Errorf("parse color %q: want 3 or 6 hex digits", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{
		R: float32(v>>16&0xff) / 255,
		G: float32(v>>8&0xff) / 255,
		B: float32(v&0xff) / 255,
	}, nil
}

// MustHex is ParseHex for literals.
func MustHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats the color as #rrggbb.
func (c Color) Hex() string {
	r, g, b := c.bytes()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// NRGBA converts to an image color with the given opacity.
func (c Color) NRGBA(opacity float64) color.NRGBA {
	r, g, b := c.bytes()
	return color.NRGBA{R: r, G: g, B: b, A: to8(float32(clamp01(opacity)))}
}

// Lerp blends towards o by t in [0,1].
func (c Color) Lerp(o Color, t float64) Color {
	f := float32(clamp01(t))
	return Color{
		R: c.R + (o.R-c.R)*f,
		G: c.G + (o.G-c.G)*f,
		B: c.B + (o.B-c.B)*f,
	}
}

// MarshalText encodes as #rrggbb so draw lists stream as readable JSON.
func (c Color) MarshalText() ([]byte, error) { return []byte(c.Hex()), nil }

// UnmarshalText accepts #rgb or #rrggbb.
func (c *Color) UnmarshalText(b []byte) error {
	v, err := ParseHex(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func (c Color) bytes() (uint8, uint8, uint8) { return to8(c.R), to8(c.G), to8(c.B) }

func to8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Theme is the palette shared by every scene.
type Theme struct {
	Background    Color `yaml:"background"`
	Card          Color `yaml:"card"`
	Border        Color `yaml:"border"`
	AccentBlue    Color `yaml:"accent_blue"`
	AccentOrange  Color `yaml:"accent_orange"`
	TextPrimary   Color `yaml:"text_primary"`
	TextSecondary Color `yaml:"text_secondary"`
	White         Color `yaml:"white"`
	// Light is the background of the light title slides.
	Light     Color `yaml:"light"`
	TextDark  Color `yaml:"text_dark"`
	TextMuted Color `yaml:"text_muted"`
}

// DarkTheme is the slate/blue/orange dashboard palette.
func DarkTheme() Theme {
	return Theme{
		Background:    MustHex("#020617"),
		Card:          MustHex("#0f172a"),
		Border:        MustHex("#1e293b"),
		AccentBlue:    MustHex("#3b82f6"),
		AccentOrange:  MustHex("#f97316"),
		TextPrimary:   MustHex("#f1f5f9"),
		TextSecondary: MustHex("#94a3b8"),
		White:         MustHex("#ffffff"),
		Light:         MustHex("#f8fafc"),
		TextDark:      MustHex("#0f172a"),
		TextMuted:     MustHex("#64748b"),
	}
}
