package main

import (
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-stcube/internal/chart"
	"github.com/coreman2200/funtimes-stcube/internal/stc"
)

func main() {
	var (
		preset   = flag.String("warp", "tour", "warp preset: tour | concept")
		out      = flag.String("out", "curves", "output directory")
		ext      = flag.String("ext", "png", "plot format: png | svg | pdf")
		progress = flag.Float64("progress", 1, "warp progress for the histogram and the HTML chart")
		bins     = flag.Int("bins", 20, "histogram bins")
	)
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	var (
		w     stc.Warp
		cloud []stc.Point3D
		title string
	)
	switch *preset {
	case "tour":
		w, cloud, title = stc.TourWarp(), stc.TourCloud(), "Tour time-axis warp"
	case "concept":
		w, cloud, title = stc.ConceptWarp(), stc.ConceptCloud(), "Concept time-axis warp"
	default:
		log.Fatal().Str("warp", *preset).Msg("unknown warp preset")
	}

	if err := os.MkdirAll(*out, 0o755); err != nil {
		log.Fatal().Err(err).Msg("output dir")
	}

	p, err := chart.WarpPlot(w, title)
	if err != nil {
		log.Fatal().Err(err).Msg("warp plot")
	}
	warpPath := filepath.Join(*out, "warp."+*ext)
	if err := chart.Save(p, warpPath); err != nil {
		log.Fatal().Err(err).Msg("save warp plot")
	}

	h, err := chart.TimeHistogram(w, cloud, *progress, *bins)
	if err != nil {
		log.Fatal().Err(err).Msg("histogram")
	}
	histPath := filepath.Join(*out, "times."+*ext)
	if err := chart.Save(h, histPath); err != nil {
		log.Fatal().Err(err).Msg("save histogram")
	}

	htmlPath := filepath.Join(*out, "warp.html")
	f, err := os.Create(htmlPath)
	if err != nil {
		log.Fatal().Err(err).Msg("html chart")
	}
	if err := chart.WarpLineChart(f, w, title, *progress); err != nil {
		f.Close()
		log.Fatal().Err(err).Msg("html chart")
	}
	if err := f.Close(); err != nil {
		log.Fatal().Err(err).Msg("html chart")
	}

	log.Info().Str("warp", warpPath).Str("hist", histPath).Str("html", htmlPath).Msg("curves written")
}
