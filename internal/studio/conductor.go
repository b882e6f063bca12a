package studio

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-stcube/internal/render"
	"github.com/coreman2200/funtimes-stcube/internal/sequence"
)

// Conductor drives a Core in real time: one player tick and one rendered
// frame per ticker period. Its methods are safe to call from control
// handlers while Run is active.
type Conductor struct {
	*Core

	mu          sync.Mutex
	composition string
	dropped     int
}

func NewConductor(core *Core, composition string) *Conductor {
	return &Conductor{Core: core, composition: composition}
}

// Run ticks until ctx is cancelled. Driver write errors are logged and the
// loop keeps going.
func (c *Conductor) Run(ctx context.Context, fps int) {
	if fps <= 0 {
		fps = sequence.DefaultFPS
	}
	tick := time.NewTicker(time.Second / time.Duration(fps))
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			c.Step()
		}
	}
}

// Step advances one frame and renders it.
func (c *Conductor) Step() {
	var frame int
	c.Seq.With(func(p *sequence.Player) {
		p.Tick()
		frame = p.Frame()
	})
	if err := c.Eng.RenderFrame(frame); err != nil {
		c.mu.Lock()
		c.dropped++
		c.mu.Unlock()
		log.Debug().Err(err).Int("frame", frame).Msg("render frame")
	}
}

// Play starts or resumes playback; a finished program restarts from 0.
func (c *Conductor) Play() {
	c.Seq.With(func(p *sequence.Player) {
		switch p.State {
		case sequence.Paused:
			p.Resume()
		case sequence.Idle:
			if _, ok := p.Program().At(p.Frame()); !ok {
				p.Seek(0)
			}
			p.Start()
		}
	})
}

func (c *Conductor) Pause() { c.Seq.With(func(p *sequence.Player) { p.Pause() }) }

func (c *Conductor) Seek(frame int) { c.Seq.With(func(p *sequence.Player) { p.Seek(frame) }) }

// Load swaps in a built-in composition and starts it from frame 0.
func (c *Conductor) Load(name string) error {
	prog, err := Lookup(name)
	if err != nil {
		return err
	}
	return c.LoadProgram(name, prog)
}

// LoadProgram swaps in an arbitrary program and starts it from frame 0.
func (c *Conductor) LoadProgram(name string, prog sequence.Program) error {
	var err error
	c.Seq.With(func(p *sequence.Player) {
		if err = p.Load(prog); err == nil {
			p.Start()
		}
	})
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.composition = name
	c.mu.Unlock()
	log.Info().Str("composition", name).Int("frames", prog.Duration()).Msg("composition loaded")
	return nil
}

func (c *Conductor) Override(name string, v float64) { c.Eng.Override(name, v) }

func (c *Conductor) ClearOverrides() { c.Eng.ClearOverrides() }

func (c *Conductor) Status() render.Status { return c.Eng.Status() }

// Frame is the player's absolute frame.
func (c *Conductor) Frame() int {
	var f int
	c.Seq.With(func(p *sequence.Player) { f = p.Frame() })
	return f
}

// State is the player state.
func (c *Conductor) State() sequence.PlayerState {
	var s sequence.PlayerState
	c.Seq.With(func(p *sequence.Player) { s = p.State })
	return s
}

// Composition is the name of the loaded program.
func (c *Conductor) Composition() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.composition
}

// Dropped counts frames whose driver write failed.
func (c *Conductor) Dropped() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dropped
}
