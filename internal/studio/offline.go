package studio

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/coreman2200/funtimes-stcube/internal/driver/fake"
	"github.com/coreman2200/funtimes-stcube/internal/render"
	"github.com/coreman2200/funtimes-stcube/internal/sequence"
)

// NewDriver opens the output surface of one offline worker.
type NewDriver func() (render.Driver, error)

// Renderer renders programs offline. Every frame is computed from its index
// alone, so frames are spread over a bounded pool of workers, each owning
// an engine and a driver.
type Renderer struct {
	Reg    *render.Registry
	Theme  render.Theme
	Format string
}

func NewRenderer(th render.Theme, format string) *Renderer {
	return &Renderer{Reg: NewRegistry(th), Theme: th, Format: format}
}

// Check reports the first clip whose scene is not registered.
func Check(reg *render.Registry, prog sequence.Program) error {
	if err := prog.Validate(); err != nil {
		return err
	}
	for i, c := range prog.Clips {
		if _, err := reg.Lookup(c.Scene); err != nil {
			return fmt.Errorf("clip %d (%s): %w", i, c.Name, err)
		}
	}
	return nil
}

// Render writes frames [from, to) of prog. to <= 0 means the end of the
// program. It stops at the first driver error or when ctx is cancelled.
func (r *Renderer) Render(ctx context.Context, prog sequence.Program, from, to, workers int, newDriver NewDriver) (Manifest, error) {
	prog.Normalize()
	if err := Check(r.Reg, prog); err != nil {
		return Manifest{}, err
	}
	total := prog.Duration()
	if to <= 0 || to > total {
		to = total
	}
	if from < 0 {
		from = 0
	}
	if from >= to {
		return Manifest{}, fmt.Errorf("empty frame range [%d, %d)", from, to)
	}
	if workers <= 0 {
		workers = 1
	}

	m := NewManifest(prog, r.Format)
	m.From, m.To, m.Workers = from, to, workers
	start := time.Now()

	frames := make(chan int)
	var done atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(frames)
		for f := from; f < to; f++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			select {
			case frames <- f:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			drv, err := newDriver()
			if err != nil {
				return fmt.Errorf("open driver: %w", err)
			}
			eng, err := render.NewEngine(Viewport(prog), r.Theme.Background, drv, nil, nil)
			if err != nil {
				return err
			}
			h := Hooks(eng, r.Reg)
			for f := range frames {
				c, ok := prog.At(f)
				if !ok {
					return fmt.Errorf("frame %d outside program", f)
				}
				sequence.Apply(h, c)
				if err := eng.RenderFrame(f); err != nil {
					return fmt.Errorf("frame %d: %w", f, err)
				}
				if n := done.Add(1); n%int64(prog.FPS) == 0 {
					log.Debug().Int64("done", n).Int("of", to-from).Msg("rendering")
				}
			}
			return nil
		})
	}
	err := g.Wait()
	m.Frames = int(done.Load())
	m.ElapsedS = time.Since(start).Seconds()
	return m, err
}

// FrameAt renders a single frame of prog on a fresh engine.
func FrameAt(reg *render.Registry, prog sequence.Program, frame int, vp render.Viewport) (*render.DrawList, error) {
	c, ok := prog.At(frame)
	if !ok {
		return nil, fmt.Errorf("frame %d outside program (%d frames)", frame, prog.Duration())
	}
	drv := &fake.Driver{Keep: true}
	eng, err := render.NewEngine(vp, render.DarkTheme().Background, drv, nil, nil)
	if err != nil {
		return nil, err
	}
	if _, err := reg.Lookup(c.Clip.Scene); err != nil {
		return nil, err
	}
	sequence.Apply(Hooks(eng, reg), c)
	if err := eng.RenderFrame(frame); err != nil {
		return nil, err
	}
	dl, _ := drv.Frame(frame)
	return dl, nil
}

// ManifestClip is one clip's place in the rendered program.
type ManifestClip struct {
	Name   string `json:"name"`
	Scene  string `json:"scene"`
	Preset string `json:"preset,omitempty"`
	Start  int    `json:"start"`
	Frames int    `json:"frames"`
}

// Manifest describes one offline render; it is written next to the frames.
type Manifest struct {
	RunID       string         `json:"run_id"`
	Composition string         `json:"composition"`
	Format      string         `json:"format"`
	FPS         int            `json:"fps"`
	Width       int            `json:"width"`
	Height      int            `json:"height"`
	From        int            `json:"from"`
	To          int            `json:"to"`
	Frames      int            `json:"frames"`
	Workers     int            `json:"workers"`
	Created     time.Time      `json:"created"`
	ElapsedS    float64        `json:"elapsed_s"`
	Clips       []ManifestClip `json:"clips"`
}

func NewManifest(prog sequence.Program, format string) Manifest {
	m := Manifest{
		RunID:       uuid.NewString(),
		Composition: prog.Name,
		Format:      format,
		FPS:         prog.FPS,
		Width:       prog.Width,
		Height:      prog.Height,
		Created:     time.Now().UTC(),
	}
	for i, c := range prog.Clips {
		m.Clips = append(m.Clips, ManifestClip{Name: c.Name, Scene: c.Scene, Preset: c.Preset, Start: prog.Start(i), Frames: c.Frames})
	}
	return m
}

// Save writes dir/manifest.json.
func (m Manifest) Save(dir string) error {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "manifest.json"), b, 0644)
}
