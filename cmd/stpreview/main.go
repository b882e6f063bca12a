package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-stcube/internal/driver/term"
	"github.com/coreman2200/funtimes-stcube/internal/render"
	"github.com/coreman2200/funtimes-stcube/internal/sequence"
	"github.com/coreman2200/funtimes-stcube/internal/studio"
)

func main() {
	var (
		composition = flag.String("composition", "ThesisTour", "composition to play")
		programPath = flag.String("program", "", "YAML/JSON program file, overrides -composition")
		fps         = flag.Int("fps", 15, "terminal refresh rate")
		logPath     = flag.String("log", "", "write logs to this file (the terminal is busy)")
	)
	flag.Parse()

	var logOut io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: logOut, TimeFormat: time.Kitchen, NoColor: true})

	var (
		prog sequence.Program
		err  error
	)
	name := *composition
	if *programPath != "" {
		prog, err = sequence.LoadProgram(*programPath)
		name = *programPath
	} else {
		prog, err = studio.Lookup(name)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	prog.Loop = true

	drv, err := term.Open()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer drv.Close()

	core, err := studio.InitCore(prog, drv, render.DarkTheme())
	if err != nil {
		drv.Close()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	c := studio.NewConductor(core, name)
	c.Play()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	warp := -1.0 // no override yet
	keys := term.Keys{
		Quit: cancel,
		Pause: func() {
			if c.State() == sequence.Running {
				c.Pause()
			} else {
				c.Play()
			}
		},
		Seek: func(d int) { c.Seek(c.Frame() + d) },
		Warp: func(d float64) {
			mu.Lock()
			defer mu.Unlock()
			warp = min(1, max(0, max(warp, 0)+d))
			c.Override("Warp", warp)
		},
	}
	go drv.Run(ctx, keys)

	tick := time.NewTicker(time.Second / time.Duration(max(1, *fps)))
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			st := c.Status()
			status := fmt.Sprintf("%s  %s/%s  %s", name, st.Active, st.Preset, c.State())
			mu.Lock()
			if warp >= 0 {
				status += fmt.Sprintf("  warp=%.1f", warp)
			}
			mu.Unlock()
			drv.SetStatus(status + "  [space] pause  [←/→] seek  [/] warp  [q] quit")
			c.Step()
		}
	}
}
