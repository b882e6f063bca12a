package solid

import (
	"math"

	"github.com/coreman2200/funtimes-stcube/internal/render"
)

// Solid is a tiny renderer that fills the frame with a single color.
// It supports presets and an optional "Period" param (frames) that pulses
// brightness; Text["Color"] overrides the preset color with a hex value.
type Solid struct {
	name string
	th   render.Theme
}

func New(name string, th render.Theme) *Solid { return &Solid{name: name, th: th} }

func (s *Solid) Name() string { return s.name }

func (s *Solid) Presets() []string { return []string{"Dark", "Card", "Light", "White", "Black"} }

func (s *Solid) ApplyPreset(name string, u *render.Uniforms) {
	if u == nil {
		return
	}
	var c render.Color
	switch name {
	case "Dark":
		c = s.th.Background
	case "Card":
		c = s.th.Card
	case "Light":
		c = s.th.Light
	case "White":
		c = render.Color{R: 1, G: 1, B: 1}
	case "Black":
		c = render.Color{}
	default:
		return
	}
	u.Text["Color"] = c.Hex()
}

func (s *Solid) Render(dl *render.DrawList, _ render.Viewport, frame float64, u *render.Uniforms) {
	c := s.th.Background
	if v, err := render.ParseHex(u.Str("Color", "")); err == nil {
		c = v
	}
	// Optional pulse for testing SetParam path
	if p := u.Param("Period", 0); p > 0 {
		k := float32(0.5 + 0.5*math.Cos(2*math.Pi*frame/p))
		c = render.Color{R: c.R * k, G: c.G * k, B: c.B * k}
	}
	dl.Background = c
}
