package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-stcube/internal/config"
	"github.com/coreman2200/funtimes-stcube/internal/driver/fake"
	"github.com/coreman2200/funtimes-stcube/internal/driver/raster"
	"github.com/coreman2200/funtimes-stcube/internal/driver/svgout"
	"github.com/coreman2200/funtimes-stcube/internal/render"
	"github.com/coreman2200/funtimes-stcube/internal/sequence"
	"github.com/coreman2200/funtimes-stcube/internal/studio"
)

func main() {
	// ---- Flags (config.yaml overrides where set) ----
	var (
		composition = flag.String("composition", "FullDemo", "built-in composition to render")
		programPath = flag.String("program", "", "YAML/JSON program file, overrides -composition")
		out         = flag.String("out", "frames", "output directory")
		format      = flag.String("format", "svg", "frame format: svg | png | none")
		from        = flag.Int("from", 0, "first frame")
		to          = flag.Int("to", 0, "end frame (exclusive), 0 = whole program")
		workers     = flag.Int("workers", 4, "parallel render workers")
		configPath  = flag.String("config", "config.yaml", "path to config.yaml")
		dump        = flag.String("dump", "", "write the resolved program as YAML to this path and exit")
		list        = flag.Bool("list", false, "list compositions and exit")
		verbose     = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if *list {
		for _, n := range studio.Names() {
			p, _ := studio.Lookup(n)
			fmt.Printf("%-16s %5d frames  %d clips\n", n, p.Duration(), len(p.Clips))
		}
		return
	}

	r := config.Default().Render
	r.Composition, r.Program, r.Out, r.Format = *composition, *programPath, *out, *format
	r.From, r.To, r.Workers = *from, *to, *workers
	if cfg, err := config.Load(*configPath); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with flags")
		}
	} else {
		c := cfg.Render
		r.Composition = config.FirstNonZero(c.Composition, r.Composition)
		r.Program = config.FirstNonZero(c.Program, r.Program)
		r.Out = config.FirstNonZero(c.Out, r.Out)
		r.Format = config.FirstNonZero(c.Format, r.Format)
		r.From = config.FirstNonZero(c.From, r.From)
		r.To = config.FirstNonZero(c.To, r.To)
		r.Workers = config.FirstNonZero(c.Workers, r.Workers)
	}

	prog, name, err := resolve(r)
	if err != nil {
		log.Fatal().Err(err).Msg("resolve program")
	}
	if *dump != "" {
		if err := sequence.SaveProgram(*dump, prog); err != nil {
			log.Fatal().Err(err).Msg("dump program")
		}
		log.Info().Str("path", *dump).Msg("program written")
		return
	}

	newDriver, err := driverFor(r.Format, r.Out)
	if err != nil {
		log.Fatal().Err(err).Msg("output")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("composition", name).
		Int("frames", prog.Duration()).
		Str("format", r.Format).
		Str("out", r.Out).
		Int("workers", r.Workers).
		Msg("rendering")

	rr := studio.NewRenderer(render.DarkTheme(), r.Format)
	m, err := rr.Render(ctx, prog, r.From, r.To, r.Workers, newDriver)
	if err != nil {
		log.Fatal().Err(err).Int("done", m.Frames).Msg("render failed")
	}
	m.Composition = name
	if r.Format != "none" {
		if err := m.Save(r.Out); err != nil {
			log.Fatal().Err(err).Msg("write manifest")
		}
	}
	log.Info().
		Str("run_id", m.RunID).
		Int("frames", m.Frames).
		Float64("elapsed_s", m.ElapsedS).
		Msg("done")
}

func resolve(r config.Render) (sequence.Program, string, error) {
	if r.Program != "" {
		p, err := sequence.LoadProgram(r.Program)
		if err != nil {
			return sequence.Program{}, "", err
		}
		return p, config.FirstNonZero(p.Name, r.Program), nil
	}
	p, err := studio.Lookup(r.Composition)
	return p, r.Composition, err
}

func driverFor(format, out string) (studio.NewDriver, error) {
	switch format {
	case "svg":
		return func() (render.Driver, error) { return svgout.New(out) }, nil
	case "png":
		return func() (render.Driver, error) { return raster.New(out) }, nil
	case "none":
		counter := &fake.Driver{}
		return func() (render.Driver, error) { return counter, nil }, nil
	}
	return nil, fmt.Errorf("unknown format %q (svg, png, none)", format)
}
