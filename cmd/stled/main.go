package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-stcube/internal/config"
	"github.com/coreman2200/funtimes-stcube/internal/layout"
	"github.com/coreman2200/funtimes-stcube/internal/led"
	"github.com/coreman2200/funtimes-stcube/internal/render"
	"github.com/coreman2200/funtimes-stcube/internal/volume"
)

func main() {
	// ---- Flags (remain usable; config.yaml can override most) ----
	var (
		x          = flag.Int("x", 8, "LEDs per row (X)")
		y          = flag.Int("y", 8, "LED rows per panel (Y)")
		z          = flag.Int("z", 8, "Panels/depth (Z)")
		xFlip      = flag.Bool("x-flip-every-row", true, "serpentine: flip every row along X")
		yFlip      = flag.Bool("y-flip-every-panel", true, "serpentine: flip every panel along Y")
		pitchMM    = flag.Float64("pitch-mm", 10, "LED pitch (mm)")
		panelGapMM = flag.Float64("panel-gap-mm", 50, "panel gap (mm) along Z")
		fps        = flag.Int("fps", 60, "target frames per second")
		brightness = flag.Float64("brightness", 0.8, "global brightness 0..1")
		driver     = flag.String("driver", "sim", "driver: spi | sim")
		port       = flag.String("port", "", "SPI port name, empty for the first one")
		colorOrder = flag.String("color", "GRB", "LED color order (e.g. GRB, RGB)")
		calibrate  = flag.String("calibrate", "", "run a calibration pattern first: index_sweep | rgb_channels | plane_z | rainbow")
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	c := config.Default().LED
	c.Dim = config.Dim{X: *x, Y: *y, Z: *z}
	c.XFlipEveryRow, c.YFlipEveryPanel = *xFlip, *yFlip
	c.PitchMM, c.PanelGapMM = *pitchMM, *panelGapMM
	c.FPS, c.Brightness = *fps, *brightness
	c.Driver, c.Port, c.ColorOrder, c.Pattern = *driver, *port, *colorOrder, *calibrate

	// ---- Load config.yaml (optional) ----
	if cfg, err := config.Load(*configPath); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with flags")
		}
	} else {
		f := cfg.LED
		c.Dim.X = config.FirstNonZero(f.Dim.X, c.Dim.X)
		c.Dim.Y = config.FirstNonZero(f.Dim.Y, c.Dim.Y)
		c.Dim.Z = config.FirstNonZero(f.Dim.Z, c.Dim.Z)
		c.PitchMM = config.FirstNonZero(f.PitchMM, c.PitchMM)
		c.PanelGapMM = config.FirstNonZero(f.PanelGapMM, c.PanelGapMM)
		c.FPS = config.FirstNonZero(f.FPS, c.FPS)
		c.Brightness = config.FirstNonZero(f.Brightness, c.Brightness)
		c.Driver = config.FirstNonZero(f.Driver, c.Driver)
		c.Port = config.FirstNonZero(f.Port, c.Port)
		c.ColorOrder = config.FirstNonZero(f.ColorOrder, c.ColorOrder)
		c.Pattern = config.FirstNonZero(f.Pattern, c.Pattern)
		if f.Power != (config.PowerCfg{}) {
			c.Power = f.Power
		}
	}

	// ---- Build layout ----
	l := layout.Layout{
		Dim:        layout.Dim{X: c.Dim.X, Y: c.Dim.Y, Z: c.Dim.Z},
		Order:      layout.Serpentine{XFlipEveryRow: c.XFlipEveryRow, YFlipEveryPanel: c.YFlipEveryPanel},
		PanelGapMM: c.PanelGapMM,
		PitchMM:    c.PitchMM,
	}

	// ---- Driver selection ----
	var (
		drv *led.Strip
		err error
	)
	switch c.Driver {
	case "spi":
		drv, err = led.Open(c.Port, l.Count(), c.ColorOrder)
		if err != nil {
			log.Warn().Err(err).Str("driver", "spi").Str("port", c.Port).Msg("SPI init failed; falling back to SIM")
			drv, err = led.NewSim(l.Count())
		}
	case "sim":
		drv, err = led.NewSim(l.Count())
	default:
		log.Warn().Str("driver", c.Driver).Msg("unknown driver; using SIM")
		drv, err = led.NewSim(l.Count())
	}
	if err != nil {
		log.Fatal().Err(err).Msg("led driver")
	}

	show := volume.NewShow(l, drv, render.DarkTheme())
	show.Brightness = c.Brightness
	show.SoftStart = time.Duration(c.Power.SoftStartMs) * time.Millisecond
	show.Preview = drv.Kind == "sim"
	for k, v := range c.Power.LimiterParams() {
		show.Post.Params[k] = v
	}
	if c.Pattern != "" {
		if err := show.Calibrate(volume.Pattern(c.Pattern)); err != nil {
			log.Fatal().Err(err).Msg("calibrate")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("driver", drv.Kind).
		Int("leds", l.Count()).
		Int("fps", c.FPS).
		Float64("budget_ma", show.Post.Param("Budget_mA", 0)).
		Msg("LED show starting")
	if err := show.Run(ctx, c.FPS); err != nil {
		log.Error().Err(err).Msg("close driver")
	}
	log.Info().Msg("stopped")
}
