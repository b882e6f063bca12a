package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-stcube/internal/config"
	diag "github.com/coreman2200/funtimes-stcube/internal/diagnostics"
	"github.com/coreman2200/funtimes-stcube/internal/render"
	"github.com/coreman2200/funtimes-stcube/internal/sequence"
	"github.com/coreman2200/funtimes-stcube/internal/studio"
	"github.com/coreman2200/funtimes-stcube/internal/ws"
)

func main() {
	// ---- Flags (remain usable; config.yaml can override most) ----
	var (
		composition = flag.String("composition", "FullDemo", "composition to play")
		programPath = flag.String("program", "", "YAML/JSON program file, overrides -composition")
		fps         = flag.Int("fps", 30, "target frames per second")
		addr        = flag.String("addr", ":8080", "HTTP listen address")
		configPath  = flag.String("config", "config.yaml", "path to config.yaml")
		loop        = flag.Bool("loop", true, "loop the program")
		verbose     = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	// ---- Effective params (config overrides flags where available) ----
	eComp, eProg, eFPS, eAddr := *composition, *programPath, *fps, *addr
	if cfg, err := config.Load(*configPath); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with flags")
		}
	} else {
		eComp = config.FirstNonZero(cfg.Render.Composition, eComp)
		eProg = config.FirstNonZero(cfg.Render.Program, eProg)
		eFPS = config.FirstNonZero(cfg.Render.FPS, eFPS)
		eAddr = config.FirstNonZero(cfg.Server.Addr, eAddr)
	}

	var (
		prog sequence.Program
		err  error
	)
	if eProg != "" {
		prog, err = sequence.LoadProgram(eProg)
		eComp = config.FirstNonZero(prog.Name, eProg)
	} else {
		prog, err = studio.Lookup(eComp)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("load program")
	}
	prog.Loop = prog.Loop || *loop

	// ---- State: the websocket hub is the engine's driver ----
	state := ws.NewState(eFPS, nil)
	core, err := studio.InitCore(prog, state, render.DarkTheme())
	if err != nil {
		log.Fatal().Err(err).Msg("init core")
	}
	cond := studio.NewConductor(core, eComp)
	state.Ctl = cond
	state.SetComposition(eComp)
	cond.Play()

	srv := &http.Server{
		Addr:         eAddr,
		Handler:      withCORS(state.Mux()),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ---- Run render loop & server ----
	go cond.Run(ctx, eFPS)
	go func() {
		log.Info().Str("addr", eAddr).Str("composition", eComp).Int("fps", eFPS).Msg("HTTP server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server crashed")
		}
	}()
	go watchDrops(ctx, cond, state)

	// ---- Graceful shutdown ----
	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdown, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdown)
}

// watchDrops reports newly failed frame writes once a second.
func watchDrops(ctx context.Context, c *studio.Conductor, s *ws.State) {
	t := time.NewTicker(time.Second)
	defer t.Stop()
	seen := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := c.Dropped(); n > seen {
				s.Diag(diag.Diagnostic{
					Severity: diag.Warn, Code: "FRAME.WRITE_FAILED", Summary: "Frames failed to broadcast",
					Evidence: map[string]any{"dropped": n - seen, "total": n},
				})
				seen = n
			}
		}
	}
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(200)
			return
		}
		h.ServeHTTP(w, r)
	})
}
