package studio

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-stcube/internal/render"
	"github.com/coreman2200/funtimes-stcube/internal/sequence"
)

type Core struct {
	Eng *render.Engine
	Reg *render.Registry
	Seq *sequence.SafePlayer
}

// Viewport is the full frame of a program.
func Viewport(p sequence.Program) render.Viewport {
	p.Normalize()
	return render.Viewport{Width: float64(p.Width), Height: float64(p.Height)}
}

// Hooks wires sequencer callbacks to an engine. Unknown scenes are logged
// and leave the engine on its previous renderer.
func Hooks(eng *render.Engine, reg *render.Registry) sequence.Hooks {
	return sequence.Hooks{
		SetRenderer: func(name, preset string) {
			if err := eng.SetRenderer(name, preset, reg); err != nil {
				log.Warn().Err(err).Str("scene", name).Msg("set renderer")
			}
		},
		ArmNext: func(name, preset string) {
			if err := eng.ArmNext(name, preset, reg); err != nil {
				log.Warn().Err(err).Str("scene", name).Msg("arm next")
			}
		},
		SetCrossfade: eng.SetCrossfade,
		SetParam:     eng.SetParam,
		SetBool:      eng.SetBool,
		SetText:      eng.SetText,
		SetNextParam: eng.SetNextParam,
		SetNextBool:  eng.SetNextBool,
		SetNextText:  eng.SetNextText,
		SetClock:     eng.SetClock,
	}
}

// InitCore builds the engine, registry and player for prog, writing frames
// to drv. The player is loaded but not started.
func InitCore(prog sequence.Program, drv render.Driver, th render.Theme) (*Core, error) {
	reg := NewRegistry(th)

	first := ""
	if len(prog.Clips) > 0 {
		first = prog.Clips[0].Scene
	}
	rr, ok := reg.Get(first)
	if !ok {
		names := reg.List()
		if len(names) == 0 {
			return nil, fmt.Errorf("no renderers registered")
		}
		rr, _ = reg.Get(names[0])
	}

	eng, err := render.NewEngine(Viewport(prog), th.Background, drv, rr, nil)
	if err != nil {
		return nil, err
	}
	eng.SetPost(render.DefaultPost())

	seq := sequence.NewSafePlayer(Hooks(eng, reg))
	if err := seq.P.Load(prog); err != nil {
		return nil, fmt.Errorf("load %s: %w", prog.Name, err)
	}
	return &Core{Eng: eng, Reg: reg, Seq: seq}, nil
}
