package sequence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults applied by Normalize.
const (
	DefaultFPS    = 30
	DefaultWidth  = 1920
	DefaultHeight = 1080
)

// Cursor is the resolved state of a program at one absolute frame.
type Cursor struct {
	Frame int
	Index int
	Clip  Clip
	Local float64

	// NextIndex is -1 outside a crossfade window.
	NextIndex int
	Next      Clip
	NextLocal float64
	Alpha     float64
}

// Fading reports whether the cursor is inside a crossfade window.
func (c Cursor) Fading() bool { return c.NextIndex >= 0 }

// Normalize fills zero FPS and size with defaults.
func (p *Program) Normalize() {
	if p.FPS <= 0 {
		p.FPS = DefaultFPS
	}
	if p.Width <= 0 {
		p.Width = DefaultWidth
	}
	if p.Height <= 0 {
		p.Height = DefaultHeight
	}
}

// Validate checks clip durations and crossfades.
func (p Program) Validate() error {
	if len(p.Clips) == 0 {
		return ErrEmptyProgram
	}
	for i, c := range p.Clips {
		if c.Scene == "" {
			return fmt.Errorf("clip %d (%s): missing scene", i, c.Name)
		}
		if c.Frames <= 0 {
			return fmt.Errorf("clip %d (%s): frames must be positive, got %d", i, c.Name, c.Frames)
		}
		if c.XFade < 0 || c.XFade > c.Frames {
			return fmt.Errorf("clip %d (%s): xfade %d outside 0..%d", i, c.Name, c.XFade, c.Frames)
		}
	}
	return nil
}

// Duration is the total length in frames.
func (p Program) Duration() int {
	total := 0
	for _, c := range p.Clips {
		total += c.Frames
	}
	return total
}

// Start returns the first absolute frame of clip i.
func (p Program) Start(i int) int {
	acc := 0
	for j := 0; j < i && j < len(p.Clips); j++ {
		acc += p.Clips[j].Frames
	}
	return acc
}

func (p Program) nextIndex(i int) int {
	ni := i + 1
	if ni >= len(p.Clips) {
		if p.Loop {
			return 0
		}
		return -1
	}
	return ni
}

// lead is how many frames of clip i were already shown during the
// crossfade out of its predecessor.
func (p Program) lead(i int, wrapped bool) int {
	if i == 0 {
		if !p.Loop || !wrapped {
			return 0
		}
		return p.Clips[len(p.Clips)-1].XFade
	}
	return p.Clips[i-1].XFade
}

// At resolves absolute frame f. It reports false for frames before 0 or,
// without Loop, at or past the end.
func (p Program) At(f int) (Cursor, bool) {
	total := p.Duration()
	if f < 0 || total == 0 {
		return Cursor{}, false
	}
	wrapped := false
	pos := f
	if pos >= total {
		if !p.Loop {
			return Cursor{}, false
		}
		pos %= total
		wrapped = true
	}

	acc := 0
	for i, c := range p.Clips {
		if pos >= acc+c.Frames {
			acc += c.Frames
			continue
		}
		local0 := pos - acc
		cur := Cursor{
			Frame:     f,
			Index:     i,
			Clip:      c,
			Local:     float64(local0 + p.lead(i, wrapped)),
			NextIndex: -1,
		}
		if ni := p.nextIndex(i); ni != -1 && c.XFade > 0 {
			fadeStart := c.Frames - c.XFade
			if local0 >= fadeStart {
				remain := float64(c.Frames - local0)
				cur.NextIndex = ni
				cur.Next = p.Clips[ni]
				cur.NextLocal = float64(local0 - fadeStart)
				cur.Alpha = clamp01(1.0 - remain/float64(c.XFade))
			}
		}
		return cur, true
	}
	return Cursor{}, false
}

// Apply pushes a cursor through the hooks without any bookkeeping. Offline
// renderers call it once per frame on a fresh engine.
func Apply(h Hooks, c Cursor) {
	if h.SetRenderer != nil {
		h.SetRenderer(c.Clip.Scene, c.Clip.Preset)
	}
	applyAutomation(h, c)
	if c.Fading() {
		if h.ArmNext != nil {
			h.ArmNext(c.Next.Scene, c.Next.Preset)
		}
		applyNextAutomation(h, c)
		if h.SetCrossfade != nil {
			h.SetCrossfade(c.Alpha)
		}
	}
	if h.SetClock != nil {
		h.SetClock(c.Local, c.NextLocal)
	}
}

func applyAutomation(h Hooks, c Cursor) {
	for name, s := range c.Clip.Text {
		if h.SetText != nil {
			h.SetText(name, s)
		}
	}
	for name, env := range c.Clip.Params {
		if h.SetParam != nil {
			h.SetParam(name, env.Eval(c.Local))
		}
	}
	for name, env := range c.Clip.Bools {
		if h.SetBool != nil {
			h.SetBool(name, env.BoolEval(c.Local))
		}
	}
}

// applyNextAutomation evaluates the incoming clip at its own local frame so
// it enters the fade already in its scripted state.
func applyNextAutomation(h Hooks, c Cursor) {
	if !c.Fading() {
		return
	}
	for name, s := range c.Next.Text {
		if h.SetNextText != nil {
			h.SetNextText(name, s)
		}
	}
	for name, env := range c.Next.Params {
		if h.SetNextParam != nil {
			h.SetNextParam(name, env.Eval(c.NextLocal))
		}
	}
	for name, env := range c.Next.Bools {
		if h.SetNextBool != nil {
			h.SetNextBool(name, env.BoolEval(c.NextLocal))
		}
	}
}

// LoadProgram reads a program from a .json, .yaml or .yml file.
func LoadProgram(path string) (Program, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Program{}, fmt.Errorf("read program: %w", err)
	}
	var p Program
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(b, &p)
	default:
		err = yaml.Unmarshal(b, &p)
	}
	if err != nil {
		return Program{}, fmt.Errorf("decode program %s: %w", path, err)
	}
	p.Normalize()
	if err := p.Validate(); err != nil {
		return Program{}, fmt.Errorf("program %s: %w", path, err)
	}
	return p, nil
}

// SaveProgram writes p as YAML.
func SaveProgram(path string, p Program) error {
	b, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
