package render

import (
	"errors"
	"sync"
	"time"
)

// Driver abstracts the output surface (SVG files, PNG files, terminal,
// websocket preview, LED cube).
type Driver interface {
	Write(frame int, dl *DrawList) error
}

// Engine renders frames using an active Renderer, optional next Renderer for crossfades,
// applies post-processing, then writes to the driver.
type Engine struct {
	mu sync.Mutex

	Viewport   Viewport
	Background Color
	Drv        Driver

	// active + next renderer and uniforms
	RActive Renderer
	RNext   Renderer
	UActive *Uniforms
	UNext   *Uniforms

	// clip-local frames of the active and next renderer
	local     float64
	nextLocal float64

	// framebuffers
	BufA *DrawList // active
	BufB *DrawList // next (during crossfade)
	Out  *DrawList // mixed + post

	// crossfade
	alpha  float64 // 0..1
	fading bool

	// live overrides applied on top of the clip uniforms every frame
	overrides *Uniforms

	// post
	post PostPipeline

	// metrics (last durations in ms)
	Last struct {
		RenderMS float64
		PostMS   float64
		TotalMS  float64
		Ops      int
	}
}

// PostPipeline groups post stages; all are optional.
type PostPipeline struct {
	Cull  func(*DrawList)
	Grade func(*DrawList, *Uniforms)
}

// DefaultPost culls invisible ops and applies the global fade.
func DefaultPost() PostPipeline {
	return PostPipeline{Cull: Cull, Grade: GlobalOpacity}
}

// NewEngine allocates buffers and returns an Engine with defaults wired.
func NewEngine(vp Viewport, bg Color, drv Driver, r Renderer, u *Uniforms) (*Engine, error) {
	if vp.Width <= 0 || vp.Height <= 0 {
		return nil, errors.New("invalid viewport")
	}
	if u == nil {
		u = NewUniforms()
	}
	e := &Engine{
		Viewport:   vp,
		Background: bg,
		Drv:        drv,
		RActive:    r,
		UActive:    u,
		BufA:       NewDrawList(vp.Width, vp.Height, bg),
		BufB:       NewDrawList(vp.Width, vp.Height, bg),
		Out:        NewDrawList(vp.Width, vp.Height, bg),
		overrides:  NewUniforms(),
		post:       DefaultPost(),
	}
	return e, nil
}

// RenderFrame renders the current state and writes it as output frame n.
func (e *Engine) RenderFrame(n int) error {
	e.mu.Lock()
	start := time.Now()

	e.BufA.Reset(e.Viewport.Width, e.Viewport.Height, e.Background)
	ua := e.withOverrides(e.UActive)
	if e.RActive != nil {
		e.RActive.Render(e.BufA, e.Viewport, e.local, ua)
	}

	if e.fading && e.RNext != nil {
		e.BufB.Reset(e.Viewport.Width, e.Viewport.Height, e.Background)
		e.RNext.Render(e.BufB, e.Viewport, e.nextLocal, e.withOverrides(e.UNext))
		Mix(e.Out, e.BufA, e.BufB, e.alpha)
	} else {
		e.Out.CopyFrom(e.BufA)
	}

	postStart := time.Now()
	if e.post.Cull != nil {
		e.post.Cull(e.Out)
	}
	if e.post.Grade != nil {
		e.post.Grade(e.Out, ua)
	}
	e.Last.PostMS = float64(time.Since(postStart).Microseconds()) / 1000.0
	e.Last.Ops = len(e.Out.Ops)
	drv, out := e.Drv, e.Out
	e.mu.Unlock()

	if drv != nil {
		if err := drv.Write(n, out); err != nil {
			return err
		}
	}

	e.mu.Lock()
	e.Last.RenderMS = float64(time.Since(start).Microseconds()) / 1000.0
	e.Last.TotalMS = e.Last.RenderMS
	e.mu.Unlock()
	return nil
}

func (e *Engine) withOverrides(u *Uniforms) *Uniforms {
	if len(e.overrides.Params) == 0 && len(e.overrides.Bools) == 0 && len(e.overrides.Text) == 0 {
		return u
	}
	m := u.Clone()
	for k, v := range e.overrides.Params {
		m.Params[k] = v
	}
	for k, v := range e.overrides.Bools {
		m.Bools[k] = v
	}
	for k, v := range e.overrides.Text {
		m.Text[k] = v
	}
	return m
}

func (e *Engine) SetPost(p PostPipeline) { e.mu.Lock(); e.post = p; e.mu.Unlock() }

// ---- Hooks that match Sequencer expectations ----

// SetRenderer becomes the active renderer immediately with fresh uniforms.
// If preset != "", ApplyPreset is called on the renderer with UActive.
func (e *Engine) SetRenderer(name string, preset string, reg *Registry) error {
	rr, err := reg.Lookup(name)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.RActive = rr
	e.UActive = NewUniforms()
	if preset != "" {
		e.UActive.Preset = preset
		rr.ApplyPreset(preset, e.UActive)
	}
	// reset fade
	e.RNext = nil
	e.fading = false
	e.alpha = 0
	return nil
}

// ArmNext prepares the next renderer for crossfade.
func (e *Engine) ArmNext(name string, preset string, reg *Registry) error {
	rr, err := reg.Lookup(name)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.RNext = rr
	e.UNext = NewUniforms()
	if preset != "" {
		e.UNext.Preset = preset
		rr.ApplyPreset(preset, e.UNext)
	}
	e.fading = true
	return nil
}

// SetCrossfade sets mix alpha 0..1 and enables/disables fading.
func (e *Engine) SetCrossfade(alpha float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if alpha <= 0 {
		e.alpha = 0
		e.fading = false
	} else if alpha >= 1 {
		e.alpha = 1
		e.fading = false
		// promote next -> active
		if e.RNext != nil {
			e.RActive = e.RNext
			e.UActive = e.UNext
			e.local = e.nextLocal
		}
		e.RNext = nil
	} else {
		e.alpha = alpha
		e.fading = e.RNext != nil
	}
}

// SetClock sets the clip-local frames of the active and armed renderer.
func (e *Engine) SetClock(local, nextLocal float64) {
	e.mu.Lock()
	e.local, e.nextLocal = local, nextLocal
	e.mu.Unlock()
}

// SetParam updates active uniforms.
func (e *Engine) SetParam(name string, v float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.UActive == nil {
		e.UActive = NewUniforms()
	}
	e.UActive.Params[name] = v
}

// SetBool updates active uniforms.
func (e *Engine) SetBool(name string, b bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.UActive == nil {
		e.UActive = NewUniforms()
	}
	e.UActive.Bools[name] = b
}

// SetText updates active uniforms.
func (e *Engine) SetText(name, s string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.UActive == nil {
		e.UActive = NewUniforms()
	}
	e.UActive.Text[name] = s
}

// SetNextParam updates the armed renderer's uniforms.
func (e *Engine) SetNextParam(name string, v float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.UNext == nil {
		e.UNext = NewUniforms()
	}
	e.UNext.Params[name] = v
}

func (e *Engine) SetNextBool(name string, b bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.UNext == nil {
		e.UNext = NewUniforms()
	}
	e.UNext.Bools[name] = b
}

func (e *Engine) SetNextText(name, s string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.UNext == nil {
		e.UNext = NewUniforms()
	}
	e.UNext.Text[name] = s
}

// Override pins a param for every renderer until cleared with ClearOverrides.
func (e *Engine) Override(name string, v float64) {
	e.mu.Lock()
	e.overrides.Params[name] = v
	e.mu.Unlock()
}

// OverrideBool pins a flag for every renderer.
func (e *Engine) OverrideBool(name string, b bool) {
	e.mu.Lock()
	e.overrides.Bools[name] = b
	e.mu.Unlock()
}

// ClearOverrides drops every live override.
func (e *Engine) ClearOverrides() {
	e.mu.Lock()
	e.overrides = NewUniforms()
	e.mu.Unlock()
}

// Status is a snapshot for health endpoints.
type Status struct {
	Active   string  `json:"active"`
	Preset   string  `json:"preset"`
	Next     string  `json:"next,omitempty"`
	Alpha    float64 `json:"alpha"`
	Local    float64 `json:"local"`
	RenderMS float64 `json:"render_ms"`
	Ops      int     `json:"ops"`
}

func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := Status{Alpha: e.alpha, Local: e.local, RenderMS: e.Last.RenderMS, Ops: e.Last.Ops}
	if e.RActive != nil {
		s.Active = e.RActive.Name()
	}
	if e.UActive != nil {
		s.Preset = e.UActive.Preset
	}
	if e.fading && e.RNext != nil {
		s.Next = e.RNext.Name()
	}
	return s
}
