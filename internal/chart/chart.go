// Package chart plots the time-axis warp: the curves themselves and how the
// cloud's events spread along the warped axis.
package chart

import (
	"fmt"
	"image/color"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/coreman2200/funtimes-stcube/internal/render"
	"github.com/coreman2200/funtimes-stcube/internal/stc"
)

// Samples is the number of points each curve is sampled at.
const Samples = 101

// Series is one sampled curve.
type Series struct {
	Name string
	XY   plotter.XYs
}

// Curves samples the linear axis, the base curve and, when the warp has
// one, the burst curve over [-1,1] at the given progress.
func Curves(w stc.Warp, progress float64) []Series {
	xs := floats.Span(make([]float64, Samples), -1, 1)
	mk := func(name string, f func(z float64) float64) Series {
		s := Series{Name: name, XY: make(plotter.XYs, len(xs))}
		for i, z := range xs {
			s.XY[i] = plotter.XY{X: z, Y: f(z)}
		}
		return s
	}
	out := []Series{
		mk("linear", func(z float64) float64 { return z }),
		mk("warped", func(z float64) float64 { return w.Apply(z, progress, false) }),
	}
	if w.Burst != nil {
		out = append(out, mk("burst", func(z float64) float64 { return w.Apply(z, progress, true) }))
	}
	return out
}

// Knots returns the breakpoints of the base or burst curve, or nil for an
// unset curve.
func Knots(w stc.Warp, burst bool) plotter.XYs {
	c := w.Curve(burst)
	if c.Identity() {
		return nil
	}
	in, out := c.Breakpoints()
	xy := make(plotter.XYs, len(in))
	for i := range in {
		xy[i] = plotter.XY{X: in[i], Y: out[i]}
	}
	return xy
}

var palette = map[string]render.Color{
	"linear": render.DarkTheme().TextSecondary,
	"warped": render.DarkTheme().AccentBlue,
	"burst":  render.DarkTheme().AccentOrange,
}

func lineColor(name string) color.Color {
	if c, ok := palette[name]; ok {
		return c.NRGBA(1)
	}
	return color.Black
}

// WarpPlot draws the sampled curves of w at full progress.
func WarpPlot(w stc.Warp, title string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Time (normalised)"
	p.Y.Label.Text = "Axis position"
	p.X.Min, p.X.Max = -1, 1
	p.Y.Min, p.Y.Max = -1, 1
	p.Add(plotter.NewGrid())

	for _, s := range Curves(w, 1) {
		l, err := plotter.NewLine(s.XY)
		if err != nil {
			return nil, fmt.Errorf("line %s: %w", s.Name, err)
		}
		l.Color = lineColor(s.Name)
		l.Width = vg.Points(1.5)
		if s.Name == "linear" {
			l.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
		}
		p.Add(l)
		p.Legend.Add(s.Name, l)
	}
	for _, k := range []struct {
		name  string
		burst bool
	}{{"warped", false}, {"burst", true}} {
		if k.burst && w.Burst == nil {
			continue
		}
		xy := Knots(w, k.burst)
		if xy == nil {
			continue
		}
		sc, err := plotter.NewScatter(xy)
		if err != nil {
			return nil, fmt.Errorf("knots %s: %w", k.name, err)
		}
		sc.Color = lineColor(k.name)
		sc.Radius = vg.Points(3)
		p.Add(sc)
	}
	p.Legend.Top = true
	p.Legend.Left = true
	return p, nil
}

// WarpedTimes returns where every cloud point lands on the warped axis.
func WarpedTimes(w stc.Warp, cloud []stc.Point3D, progress float64) plotter.Values {
	v := make(plotter.Values, len(cloud))
	for i, pt := range cloud {
		v[i] = w.Apply(pt.Z, progress, pt.Burst)
	}
	return v
}

// TimeHistogram bins the cloud's warped times.
func TimeHistogram(w stc.Warp, cloud []stc.Point3D, progress float64, bins int) (*plot.Plot, error) {
	if len(cloud) == 0 {
		return nil, fmt.Errorf("histogram: empty cloud")
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Events along the time axis (warp %.0f%%)", progress*100)
	p.X.Label.Text = "Axis position"
	p.Y.Label.Text = "Events"
	h, err := plotter.NewHist(WarpedTimes(w, cloud, progress), bins)
	if err != nil {
		return nil, err
	}
	h.FillColor = render.DarkTheme().AccentBlue.NRGBA(0.8)
	h.LineStyle.Width = vg.Points(0.5)
	p.Add(h)
	return p, nil
}

// Save writes p to path; the extension picks the format.
func Save(p *plot.Plot, path string) error {
	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}

// WarpLineChart renders the curves as an interactive HTML page.
func WarpLineChart(out io.Writer, w stc.Warp, title string, progress float64) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Theme: "dark", Width: "900px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("progress=%.2f", progress)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Min: -1, Max: 1, Name: "time"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Min: -1, Max: 1, Name: "axis"}),
	)
	for _, s := range Curves(w, progress) {
		data := make([]opts.LineData, len(s.XY))
		for i, xy := range s.XY {
			data[i] = opts.LineData{Value: []interface{}{xy.X, xy.Y}}
		}
		line.AddSeries(s.Name, data, charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}))
	}
	return line.Render(out)
}
