package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-stcube/internal/sequence"
	"github.com/coreman2200/funtimes-stcube/internal/studio"
)

func main() {
	var (
		programPath = flag.String("program", "", "path to a YAML/JSON program")
		composition = flag.String("composition", "ThesisTour", "built-in composition when -program is empty")
		fps         = flag.Int("fps", 0, "simulate in real time at this rate; 0 runs as fast as possible")
		params      = flag.Bool("params", false, "also trace param, bool and text hooks")
	)
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	var (
		prog sequence.Program
		err  error
	)
	if *programPath != "" {
		prog, err = sequence.LoadProgram(*programPath)
	} else {
		prog, err = studio.Lookup(*composition)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("load program")
	}
	if prog.Loop {
		log.Warn().Msg("program loops; tracing one pass")
		prog.Loop = false
	}

	var frame int
	h := sequence.Hooks{
		SetRenderer: func(name, preset string) {
			fmt.Printf("%05d [SetRenderer] %s / %s\n", frame, name, preset)
		},
		ArmNext: func(name, preset string) {
			fmt.Printf("%05d [ArmNext] %s / %s\n", frame, name, preset)
		},
		SetCrossfade: func(alpha float64) {
			fmt.Printf("%05d [Crossfade] alpha=%.3f\n", frame, alpha)
		},
	}
	if *params {
		h.SetParam = func(name string, v float64) { fmt.Printf("%05d [Param] %s=%.4f\n", frame, name, v) }
		h.SetBool = func(name string, b bool) { fmt.Printf("%05d [Bool] %s=%t\n", frame, name, b) }
		h.SetText = func(name, s string) { fmt.Printf("%05d [Text] %s=%q\n", frame, name, s) }
		h.SetNextParam = func(name string, v float64) { fmt.Printf("%05d [NextParam] %s=%.4f\n", frame, name, v) }
		h.SetNextBool = func(name string, b bool) { fmt.Printf("%05d [NextBool] %s=%t\n", frame, name, b) }
		h.SetNextText = func(name, s string) { fmt.Printf("%05d [NextText] %s=%q\n", frame, name, s) }
	}

	player := sequence.NewPlayer(h)
	if err := player.Load(prog); err != nil {
		log.Fatal().Err(err).Msg("load")
	}
	player.Start()

	var tick <-chan time.Time
	if *fps > 0 {
		t := time.NewTicker(time.Second / time.Duration(*fps))
		defer t.Stop()
		tick = t.C
	}
	start := time.Now()
	for player.State != sequence.Idle {
		if tick != nil {
			<-tick
		}
		frame = player.Frame() + 1
		player.Tick()
	}
	log.Info().
		Int("frames", prog.Duration()).
		Dur("elapsed", time.Since(start)).
		Msg("done")
}
