// Package raster paints draw lists into PNG frames through the gonum/plot
// vector canvas.
package raster

import (
	"fmt"
	"image"
	"io"
	"math"
	"os"
	"path/filepath"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/coreman2200/funtimes-stcube/internal/render"
)

// DPI of 72 makes one vg point one pixel.
const DPI = 72

// Driver writes one PNG per frame into Dir.
type Driver struct {
	Dir     string
	Pattern string
}

func New(dir string) (*Driver, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("png output dir: %w", err)
	}
	return &Driver{Dir: dir, Pattern: "frame_%05d.png"}, nil
}

func (d *Driver) Path(frame int) string {
	p := d.Pattern
	if p == "" {
		p = "frame_%05d.png"
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

// Encode writes dl as a PNG.
func Encode(w io.Writer, dl *render.DrawList) error {
	c := Paint(dl)
	_, err := vgimg.PngCanvas{Canvas: c}.WriteTo(w)
	return err
}

// Image paints dl and returns the pixels.
func Image(dl *render.DrawList) image.Image { return Paint(dl).Image() }

// Paint draws dl onto a fresh canvas.
func Paint(dl *render.DrawList) *vgimg.Canvas {
	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(dl.Width), vg.Length(dl.Height)),
		vgimg.UseDPI(DPI),
		vgimg.UseBackgroundColor(dl.Background.NRGBA(1)),
	)
	p := painter{c: c, h: dl.Height}
	for _, o := range dl.Ops {
		p.op(o)
	}
	return c
}

type painter struct {
	c *vgimg.Canvas
	h float64
}

// pt flips the y axis: draw lists grow downwards, vg grows upwards.
func (p painter) pt(x, y float64) vg.Point {
	return vg.Point{X: vg.Length(x), Y: vg.Length(p.h - y)}
}

func (p painter) op(o render.Op) {
	switch o.Kind {
	case render.OpLine:
		if o.Stroke == nil {
			return
		}
		var path vg.Path
		path.Move(p.pt(o.X, o.Y))
		path.Line(p.pt(o.X2, o.Y2))
		p.stroke(path, o)
	case render.OpCircle:
		if o.Blur > 0 && o.Fill != nil {
			// soft halo in place of a gaussian blur
			p.c.SetColor(o.Fill.NRGBA(o.Opacity * 0.35))
			p.c.Fill(circle(p.pt(o.X, o.Y), o.R+o.Blur))
		}
		path := circle(p.pt(o.X, o.Y), o.R)
		p.fill(path, o)
		p.stroke(path, o)
	case render.OpRect:
		path := roundRect(p.pt(o.X, o.Y+o.H), o.W, o.H, o.R)
		p.fill(path, o)
		p.stroke(path, o)
	case render.OpText:
		if o.Fill == nil || o.Text == "" || o.Size <= 0 {
			return
		}
		face := Face(o.Size, o.Bold)
		x := o.X
		switch o.Align {
		case render.AlignMiddle:
			x -= float64(face.Width(o.Text)) / 2
		case render.AlignEnd:
			x -= float64(face.Width(o.Text))
		}
		p.c.SetColor(o.Fill.NRGBA(o.Opacity))
		p.c.FillString(face, p.pt(x, o.Y), o.Text)
	}
}

func (p painter) fill(path vg.Path, o render.Op) {
	if o.Fill == nil {
		return
	}
	p.c.SetColor(o.Fill.NRGBA(o.Opacity))
	p.c.Fill(path)
}

func (p painter) stroke(path vg.Path, o render.Op) {
	if o.Stroke == nil || o.StrokeWidth <= 0 {
		return
	}
	p.c.SetColor(o.Stroke.NRGBA(o.Opacity))
	p.c.SetLineWidth(vg.Length(o.StrokeWidth))
	dash := make([]vg.Length, len(o.Dash))
	for i, d := range o.Dash {
		dash[i] = vg.Length(d)
	}
	p.c.SetLineDash(dash, 0)
	p.c.Stroke(path)
}

// Face returns the sans face used for labels.
func Face(size float64, bold bool) font.Face {
	f := plot.DefaultFont
	f.Variant = "Sans"
	if bold {
		f.Weight = xfont.WeightBold
	}
	return font.DefaultCache.Lookup(f, vg.Length(size))
}

func circle(c vg.Point, r float64) vg.Path {
	var path vg.Path
	path.Move(vg.Point{X: c.X + vg.Length(r), Y: c.Y})
	path.Arc(c, vg.Length(r), 0, 2*math.Pi)
	path.Close()
	return path
}

// roundRect builds a rectangle from its bottom-left corner in vg space.
func roundRect(bl vg.Point, w, h, r float64) vg.Path {
	r = math.Max(0, math.Min(r, math.Min(w, h)/2))
	x0, y0 := bl.X, bl.Y
	x1, y1 := x0+vg.Length(w), y0+vg.Length(h)
	R := vg.Length(r)
	var path vg.Path
	path.Move(vg.Point{X: x0 + R, Y: y0})
	path.Line(vg.Point{X: x1 - R, Y: y0})
	if r > 0 {
		path.Arc(vg.Point{X: x1 - R, Y: y0 + R}, R, -math.Pi/2, math.Pi/2)
	}
	path.Line(vg.Point{X: x1, Y: y1 - R})
	if r > 0 {
		path.Arc(vg.Point{X: x1 - R, Y: y1 - R}, R, 0, math.Pi/2)
	}
	path.Line(vg.Point{X: x0 + R, Y: y1})
	if r > 0 {
		path.Arc(vg.Point{X: x0 + R, Y: y1 - R}, R, math.Pi/2, math.Pi/2)
	}
	path.Line(vg.Point{X: x0, Y: y0 + R})
	if r > 0 {
		path.Arc(vg.Point{X: x0 + R, Y: y0 + R}, R, math.Pi, math.Pi/2)
	}
	path.Close()
	return path
}
