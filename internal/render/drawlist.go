package render

// OpKind names a primitive in a DrawList.
type OpKind string

const (
	OpLine   OpKind = "line"
	OpCircle OpKind = "circle"
	OpRect   OpKind = "rect"
	OpText   OpKind = "text"
)

// Align is the horizontal anchor of a text op.
type Align string

const (
	AlignStart  Align = "start"
	AlignMiddle Align = "middle"
	AlignEnd    Align = "end"
)

// Op is one paint operation.
//
//	line:   (X,Y) to (X2,Y2)
//	circle: centre (X,Y), radius R
//	rect:   top-left (X,Y), size W x H, corner radius R
//	text:   anchor (X,Y) on the baseline, font Size
type Op struct {
	Kind OpKind  `json:"kind"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	X2   float64 `json:"x2,omitempty"`
	Y2   float64 `json:"y2,omitempty"`
	W    float64 `json:"w,omitempty"`
	H    float64 `json:"h,omitempty"`
	R    float64 `json:"r,omitempty"`

	Fill        *Color    `json:"fill,omitempty"`
	Stroke      *Color    `json:"stroke,omitempty"`
	StrokeWidth float64   `json:"sw,omitempty"`
	Dash        []float64 `json:"dash,omitempty"`
	Opacity     float64   `json:"o"`
	Blur        float64   `json:"blur,omitempty"`

	Text  string  `json:"text,omitempty"`
	Size  float64 `json:"size,omitempty"`
	Bold  bool    `json:"bold,omitempty"`
	Align Align   `json:"align,omitempty"`
}

// Line builds a stroked segment.
func Line(x1, y1, x2, y2 float64, c Color, width float64) Op {
	return Op{Kind: OpLine, X: x1, Y: y1, X2: x2, Y2: y2, Stroke: &c, StrokeWidth: width, Opacity: 1}
}

// Circle builds a filled circle.
func Circle(x, y, r float64, c Color) Op {
	return Op{Kind: OpCircle, X: x, Y: y, R: r, Fill: &c, Opacity: 1}
}

// Rect builds a filled rectangle.
func Rect(x, y, w, h float64, c Color) Op {
	return Op{Kind: OpRect, X: x, Y: y, W: w, H: h, Fill: &c, Opacity: 1}
}

// Text builds a label.
func Text(x, y float64, s string, size float64, c Color) Op {
	return Op{Kind: OpText, X: x, Y: y, Text: s, Size: size, Fill: &c, Opacity: 1, Align: AlignStart}
}

func (o Op) WithOpacity(a float64) Op { o.Opacity = a; return o }
func (o Op) WithBlur(px float64) Op   { o.Blur = px; return o }
func (o Op) WithRadius(r float64) Op  { o.R = r; return o }
func (o Op) WithAlign(a Align) Op     { o.Align = a; return o }
func (o Op) WithBold() Op             { o.Bold = true; return o }

func (o Op) WithDash(d ...float64) Op {
	o.Dash = append([]float64(nil), d...)
	return o
}

// WithStroke adds an outline.
func (o Op) WithStroke(c Color, width float64) Op {
	o.Stroke = &c
	o.StrokeWidth = width
	return o
}

// WithoutFill drops the fill, leaving only the stroke.
func (o Op) WithoutFill() Op { o.Fill = nil; return o }

// Bounds returns the op's axis-aligned box. Text is approximated from its
// size and length.
func (o Op) Bounds() (x0, y0, x1, y1 float64) {
	switch o.Kind {
	case OpLine:
		x0, x1 = minmax(o.X, o.X2)
		y0, y1 = minmax(o.Y, o.Y2)
		pad := o.StrokeWidth / 2
		return x0 - pad, y0 - pad, x1 + pad, y1 + pad
	case OpCircle:
		return o.X - o.R, o.Y - o.R, o.X + o.R, o.Y + o.R
	case OpRect:
		return o.X, o.Y, o.X + o.W, o.Y + o.H
	case OpText:
		w := TextWidth(o.Text, o.Size)
		switch o.Align {
		case AlignMiddle:
			x0 = o.X - w/2
		case AlignEnd:
			x0 = o.X - w
		default:
			x0 = o.X
		}
		return x0, o.Y - o.Size, x0 + w, o.Y + o.Size*0.25
	}
	return o.X, o.Y, o.X, o.Y
}

// TextWidth is a font-independent estimate of a label's advance.
func TextWidth(s string, size float64) float64 {
	n := 0
	for range s {
		n++
	}
	return float64(n) * size * 0.56
}

// DrawList is a frame's worth of ops painted in order over Background.
type DrawList struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Background Color   `json:"background"`
	Ops        []Op    `json:"ops"`
}

// NewDrawList allocates an empty list.
func NewDrawList(w, h float64, bg Color) *DrawList {
	return &DrawList{Width: w, Height: h, Background: bg, Ops: make([]Op, 0, 256)}
}

// Reset clears the ops, keeping capacity.
func (d *DrawList) Reset(w, h float64, bg Color) {
	d.Width, d.Height, d.Background = w, h, bg
	d.Ops = d.Ops[:0]
}

// Add appends ops.
func (d *DrawList) Add(ops ...Op) { d.Ops = append(d.Ops, ops...) }

// CopyFrom replaces d with a copy of src.
func (d *DrawList) CopyFrom(src *DrawList) {
	d.Width, d.Height, d.Background = src.Width, src.Height, src.Background
	d.Ops = append(d.Ops[:0], src.Ops...)
}

// Count returns the number of ops of a kind.
func (d *DrawList) Count(k OpKind) int {
	n := 0
	for _, o := range d.Ops {
		if o.Kind == k {
			n++
		}
	}
	return n
}

func minmax(a, b float64) (float64, float64) {
	if a < b {
		return a, b
	}
	return b, a
}
