package sequence

import "sync"

// NewPlayer constructs a Player with provided hooks.
func NewPlayer(h Hooks) *Player {
	return &Player{
		State:      Idle,
		hooks:      h,
		idx:        -1,
		armedIndex: -1,
	}
}

// Load replaces the current program. Resets position and state to Idle.
func (p *Player) Load(prog Program) error {
	prog.Normalize()
	if err := prog.Validate(); err != nil {
		return err
	}
	p.prog = prog
	p.frame = 0
	p.idx = -1
	p.State = Idle
	p.armedIndex = -1
	p.lastAlpha = 0
	return nil
}

// Program returns the loaded program.
func (p *Player) Program() Program { return p.prog }

// Frame returns the absolute program frame.
func (p *Player) Frame() int { return p.frame }

// Start moves to Running and primes the current clip.
func (p *Player) Start() {
	if p.State == Running || len(p.prog.Clips) == 0 {
		return
	}
	p.State = Running
	p.idx = -1
	p.emit()
}

// Pause pauses playback.
func (p *Player) Pause() {
	if p.State == Running {
		p.State = Paused
	}
}

// Resume resumes playback.
func (p *Player) Resume() {
	if p.State == Paused {
		p.State = Running
	}
}

// Stop stops and resets to start.
func (p *Player) Stop() {
	p.State = Idle
	p.frame = 0
	p.idx = -1
	p.armedIndex = -1
	p.lastAlpha = 0
	if p.hooks.SetCrossfade != nil {
		p.hooks.SetCrossfade(0)
	}
}

// Seek jumps to absolute program frame f, clamped into [0, Duration) unless
// the program loops. The renderer for the target clip is set immediately.
func (p *Player) Seek(f int) {
	if len(p.prog.Clips) == 0 {
		return
	}
	if f < 0 {
		f = 0
	}
	if total := p.prog.Duration(); !p.prog.Loop && f >= total {
		f = total - 1
	}
	p.frame = f
	p.idx = -1
	p.armedIndex = -1
	p.lastAlpha = 0
	p.emit()
}

// Tick advances the sequencer by one frame and emits control hooks.
func (p *Player) Tick() {
	if p.State != Running || len(p.prog.Clips) == 0 {
		return
	}
	p.frame++
	if _, ok := p.prog.At(p.frame); !ok {
		// End of program
		p.State = Idle
		if p.hooks.SetCrossfade != nil {
			p.hooks.SetCrossfade(0)
		}
		return
	}
	p.emit()
}

func (p *Player) emit() {
	c, ok := p.prog.At(p.frame)
	if !ok {
		return
	}
	if c.Index != p.idx {
		// Snap renderer to the clip and reset crossfade
		if p.hooks.SetRenderer != nil {
			p.hooks.SetRenderer(c.Clip.Scene, c.Clip.Preset)
		}
		if p.hooks.SetCrossfade != nil {
			p.hooks.SetCrossfade(0)
		}
		p.idx = c.Index
		p.armedIndex = -1
		p.lastAlpha = 0
	}
	applyAutomation(p.hooks, c)

	if c.Fading() {
		// Arm next once
		if p.armedIndex != c.NextIndex && p.hooks.ArmNext != nil {
			p.hooks.ArmNext(c.Next.Scene, c.Next.Preset)
			p.armedIndex = c.NextIndex
		}
		applyNextAutomation(p.hooks, c)
		if p.hooks.SetCrossfade != nil && c.Alpha != p.lastAlpha {
			p.hooks.SetCrossfade(c.Alpha)
			p.lastAlpha = c.Alpha
		}
	}
	if p.hooks.SetClock != nil {
		p.hooks.SetClock(c.Local, c.NextLocal)
	}
}

// --- Lightweight synchronization helpers ---

type SafePlayer struct {
	mu sync.Mutex
	P  *Player
}

func NewSafePlayer(h Hooks) *SafePlayer {
	return &SafePlayer{P: NewPlayer(h)}
}

func (s *SafePlayer) With(f func(p *Player)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f(s.P)
}
