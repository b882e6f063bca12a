package volume

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-stcube/internal/layout"
	"github.com/coreman2200/funtimes-stcube/internal/led"
	"github.com/coreman2200/funtimes-stcube/internal/render"
	"github.com/coreman2200/funtimes-stcube/internal/sequence"
	"github.com/coreman2200/funtimes-stcube/internal/stc"
)

// WarpCycle holds linear, eases into the warp, holds, and eases back over
// 240 frames.
func WarpCycle() sequence.Envelope {
	return sequence.Envelope{Keys: []sequence.Keyframe{
		{F: 0, V: 0},
		{F: 60, V: 0, Ease: "quadInOut"},
		{F: 120, V: 1},
		{F: 180, V: 1, Ease: "quadInOut"},
		{F: 240, V: 0},
	}}
}

// Show plays the cube on an LED driver.
type Show struct {
	Layout     layout.Layout
	Cube       stc.Cube
	Options    Options
	Post       *render.Uniforms
	Brightness float64
	SoftStart  time.Duration
	// Preview tone maps instead of limiting, for console output.
	Preview bool
	Warp    sequence.Envelope
	Drv     led.Driver

	mu     sync.Mutex
	runner *Runner
}

// NewShow wires the tour cube with the dashboard palette.
func NewShow(l layout.Layout, drv led.Driver, th render.Theme) *Show {
	return &Show{
		Layout:     l,
		Cube:       stc.TourCube(),
		Options:    DefaultOptions(th),
		Post:       render.NewUniforms(),
		Brightness: 1,
		Warp:       WarpCycle(),
		Drv:        drv,
	}
}

// Calibrate swaps the cube for a calibration pattern until it completes.
func (s *Show) Calibrate(p Pattern) error {
	if !Known(p) {
		return fmt.Errorf("unknown calibration pattern %q", p)
	}
	s.mu.Lock()
	s.runner = NewRunner(p)
	s.mu.Unlock()
	return nil
}

// Calibrating reports whether a pattern is running.
func (s *Show) Calibrating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runner != nil
}

// Progress is the warp progress at frame.
func (s *Show) Progress(frame int) float64 {
	if len(s.Warp.Keys) == 0 {
		return 0
	}
	last := s.Warp.Keys[len(s.Warp.Keys)-1].F
	f := float64(frame)
	if last > 0 {
		f = math.Mod(f, last)
	}
	return s.Warp.Eval(f)
}

// Frame computes strip bytes for a frame at the given soft-start gain.
func (s *Show) Frame(frame int, gain float64) []byte {
	v := make(Voxels, s.Layout.Count())
	s.mu.Lock()
	if s.runner != nil {
		if !s.runner.Step(s.Layout, v) {
			log.Info().Str("pattern", string(s.runner.Pattern())).Msg("calibration complete")
			s.runner = nil
		} else {
			s.mu.Unlock()
			return v.Bytes(s.Brightness * gain)
		}
	}
	s.mu.Unlock()

	v = Voxelize(s.Cube, float64(frame), s.Progress(frame), s.Layout, s.Options)
	if s.Preview {
		FilmicToneMap(v, s.Post)
	} else {
		DefaultLimiter(v, s.Post)
	}
	return v.Bytes(s.Brightness * gain)
}

// gain ramps brightness from 0 to 1 over SoftStart.
func (s *Show) gain(elapsed time.Duration) float64 {
	if s.SoftStart <= 0 || elapsed >= s.SoftStart {
		return 1
	}
	return float64(elapsed) / float64(s.SoftStart)
}

// Run writes frames at fps until ctx is cancelled, then blanks the strip.
// A cube whose camera cannot project is rejected before the first frame.
func (s *Show) Run(ctx context.Context, fps int) error {
	if err := s.Cube.Camera.Validate(); err != nil {
		return fmt.Errorf("show: %w", err)
	}
	ticker := time.NewTicker(time.Second / time.Duration(max(1, fps)))
	defer ticker.Stop()
	start := time.Now()
	frame := 0
	for {
		select {
		case <-ctx.Done():
			return s.Drv.Close()
		case <-ticker.C:
			buf := s.Frame(frame, s.gain(time.Since(start)))
			if err := s.Drv.Write(buf); err != nil {
				log.Debug().Err(err).Int("frame", frame).Msg("led write")
			}
			frame++
		}
	}
}
