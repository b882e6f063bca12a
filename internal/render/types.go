package render

import (
	"errors"
	"fmt"
	"sort"
)

// ErrRendererNotFound is returned when a registry lookup misses.
var ErrRendererNotFound = errors.New("renderer not found")

// Viewport is the pixel rectangle a renderer draws into.
type Viewport struct {
	X, Y          float64
	Width, Height float64
}

// Inset shrinks the viewport by p on every side.
func (v Viewport) Inset(p float64) Viewport {
	return Viewport{X: v.X + p, Y: v.Y + p, Width: v.Width - 2*p, Height: v.Height - 2*p}
}

// Uniforms carry the per-clip inputs of a renderer. Presets write them,
// sequencer envelopes and live controls override them.
type Uniforms struct {
	Preset string
	Params map[string]float64
	Bools  map[string]bool
	Text   map[string]string
}

// NewUniforms returns empty uniforms with allocated maps.
func NewUniforms() *Uniforms {
	return &Uniforms{Params: map[string]float64{}, Bools: map[string]bool{}, Text: map[string]string{}}
}

// Param returns the named value or def when unset.
func (u *Uniforms) Param(name string, def float64) float64 {
	if u == nil || u.Params == nil {
		return def
	}
	if v, ok := u.Params[name]; ok {
		return v
	}
	return def
}

// Bool returns the named flag or def when unset.
func (u *Uniforms) Bool(name string, def bool) bool {
	if u == nil || u.Bools == nil {
		return def
	}
	if v, ok := u.Bools[name]; ok {
		return v
	}
	return def
}

// Str returns the named text or def when unset.
func (u *Uniforms) Str(name, def string) string {
	if u == nil || u.Text == nil {
		return def
	}
	if v, ok := u.Text[name]; ok {
		return v
	}
	return def
}

// Clone deep-copies the maps.
func (u *Uniforms) Clone() *Uniforms {
	out := NewUniforms()
	if u == nil {
		return out
	}
	out.Preset = u.Preset
	for k, v := range u.Params {
		out.Params[k] = v
	}
	for k, v := range u.Bools {
		out.Bools[k] = v
	}
	for k, v := range u.Text {
		out.Text[k] = v
	}
	return out
}

// Renderer draws one scene. Implementations keep no per-frame state so a
// single instance can serve concurrent frames; everything that varies comes
// in through the viewport, the clip-local frame and the uniforms.
type Renderer interface {
	Name() string
	Presets() []string
	ApplyPreset(name string, u *Uniforms)
	Render(dl *DrawList, vp Viewport, frame float64, u *Uniforms)
}

type Registry struct{ m map[string]Renderer }

func NewRegistry() *Registry { return &Registry{m: map[string]Renderer{}} }

func (r *Registry) Register(rr Renderer) {
	if rr == nil {
		return
	}
	r.m[rr.Name()] = rr
}

func (r *Registry) Get(name string) (Renderer, bool) { rr, ok := r.m[name]; return rr, ok }

// Lookup is Get with a wrapped ErrRendererNotFound.
func (r *Registry) Lookup(name string) (Renderer, error) {
	if r == nil {
		return nil, errors.New("registry is nil")
	}
	rr, ok := r.m[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRendererNotFound, name)
	}
	return rr, nil
}

// List returns registered names in sorted order.
func (r *Registry) List() []string {
	out := make([]string, 0, len(r.m))
	for k := range r.m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
