// Package svgout writes draw lists as standalone SVG documents.
package svgout

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/coreman2200/funtimes-stcube/internal/render"
)

// Units is the number of viewBox units per output pixel; svgo takes integer
// coordinates, so geometry is written at 1/Units pixel resolution.
const Units = 10

// Driver writes one file per frame into Dir.
type Driver struct {
	Dir     string
	Pattern string // printf pattern for the frame number, default "frame_%05d.svg"
}

func New(dir string) (*Driver, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("svg output dir: %w", err)
	}
	return &Driver{Dir: dir, Pattern: "frame_%05d.svg"}, nil
}

// Path returns the file a frame is written to.
func (d *Driver) Path(frame int) string {
	p := d.Pattern
	if p == "" {
		p = "frame_%05d.svg"
	}
	return filepath.Join(d.Dir, fmt.Sprintf(p, frame))
}

func (d *Driver) Write(frame int, dl *render.DrawList) error {
	f, err := os.Create(d.Path(frame))
	if err != nil {
		return err
	}
	if err := Encode(f, dl); err != nil {
		f.Close()
		return fmt.Errorf("encode frame %d: %w", frame, err)
	}
	return f.Close()
}

// errWriter remembers the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return len(p), nil
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

// Encode renders dl as one SVG document.
func Encode(w io.Writer, dl *render.DrawList) error {
	ew := &errWriter{w: w}
	c := svg.New(ew)
	width, height := int(math.Round(dl.Width)), int(math.Round(dl.Height))
	c.Startview(width, height, 0, 0, px(dl.Width), px(dl.Height))

	blurs := blurLevels(dl)
	if len(blurs) > 0 {
		c.Def()
		for _, b := range blurs {
			c.Filter(blurID(b))
			c.FeGaussianBlur(svg.Filterspec{In: "SourceGraphic"}, b*Units, b*Units)
			c.Fend()
		}
		c.DefEnd()
	}

	c.Rect(0, 0, px(dl.Width), px(dl.Height), "fill:"+dl.Background.Hex())
	for _, o := range dl.Ops {
		st := style(o)
		var extra []string
		if o.Blur > 0 {
			extra = append(extra, fmt.Sprintf(`filter="url(#%s)"`, blurID(o.Blur)))
		}
		switch o.Kind {
		case render.OpLine:
			c.Line(px(o.X), px(o.Y), px(o.X2), px(o.Y2), append([]string{st}, extra...)...)
		case render.OpCircle:
			c.Circle(px(o.X), px(o.Y), max(px(o.R), 1), append([]string{st}, extra...)...)
		case render.OpRect:
			if o.R > 0 {
				c.Roundrect(px(o.X), px(o.Y), px(o.W), px(o.H), px(o.R), px(o.R), append([]string{st}, extra...)...)
			} else {
				c.Rect(px(o.X), px(o.Y), px(o.W), px(o.H), append([]string{st}, extra...)...)
			}
		case render.OpText:
			c.Text(px(o.X), px(o.Y), o.Text, append([]string{st}, extra...)...)
		}
	}
	c.End()
	return ew.err
}

func px(v float64) int { return int(math.Round(v * Units)) }

func blurID(b float64) string { return "blur" + strconv.FormatFloat(b, 'f', -1, 64) }

func blurLevels(dl *render.DrawList) []float64 {
	seen := map[float64]bool{}
	var out []float64
	for _, o := range dl.Ops {
		if o.Blur > 0 && !seen[o.Blur] {
			seen[o.Blur] = true
			out = append(out, o.Blur)
		}
	}
	sort.Float64s(out)
	return out
}

func style(o render.Op) string {
	var b strings.Builder
	if o.Fill != nil && o.Kind != render.OpLine {
		fmt.Fprintf(&b, "fill:%s;", o.Fill.Hex())
	} else {
		b.WriteString("fill:none;")
	}
	if o.Stroke != nil {
		fmt.Fprintf(&b, "stroke:%s;stroke-width:%g;", o.Stroke.Hex(), o.StrokeWidth*Units)
	}
	if len(o.Dash) > 0 {
		parts := make([]string, len(o.Dash))
		for i, d := range o.Dash {
			parts[i] = strconv.FormatFloat(d*Units, 'f', -1, 64)
		}
		fmt.Fprintf(&b, "stroke-dasharray:%s;", strings.Join(parts, ","))
	}
	if o.Opacity < 1 {
		fmt.Fprintf(&b, "opacity:%.3f;", math.Max(0, o.Opacity))
	}
	if o.Kind == render.OpText {
		fmt.Fprintf(&b, "font-family:sans-serif;font-size:%gpx;", o.Size*Units)
		if o.Bold {
			b.WriteString("font-weight:bold;")
		}
		switch o.Align {
		case render.AlignMiddle:
			b.WriteString("text-anchor:middle;")
		case render.AlignEnd:
			b.WriteString("text-anchor:end;")
		}
	}
	return strings.TrimSuffix(b.String(), ";")
}
