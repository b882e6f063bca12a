// Package term previews draw lists in a terminal. Every frame is scaled
// onto the cell grid: filled rects paint cell backgrounds, circles become
// dots, lines are stepped cell by cell and text is written as-is.
package term

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/coreman2200/funtimes-stcube/internal/render"
)

const (
	dotRune  = '●'
	lineRune = '·'
)

// Keys are invoked from the event loop. Nil callbacks are ignored.
type Keys struct {
	Quit  func()
	Pause func()
	Seek  func(delta int)
	Warp  func(delta float64)
}

// SeekStep is how many frames one arrow press moves.
const SeekStep = 30

// Driver renders into a tcell screen. Status is drawn on the last row.
type Driver struct {
	mu     sync.Mutex
	screen tcell.Screen
	status string
}

// Open initialises the real terminal.
func Open() (*Driver, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("terminal init: %w", err)
	}
	return New(s), nil
}

// New wraps an already initialised screen.
func New(s tcell.Screen) *Driver { return &Driver{screen: s} }

func (d *Driver) Screen() tcell.Screen { return d.screen }

func (d *Driver) Close() { d.screen.Fini() }

// SetStatus replaces the footer text.
func (d *Driver) SetStatus(s string) {
	d.mu.Lock()
	d.status = s
	d.mu.Unlock()
}

func style(c render.Color) tcell.Style {
	return tcell.StyleDefault.Background(rgb(c))
}

func rgb(c render.Color) tcell.Color {
	n := c.NRGBA(1)
	return tcell.NewRGBColor(int32(n.R), int32(n.G), int32(n.B))
}

func (d *Driver) Write(frame int, dl *render.DrawList) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	cols, rows := d.screen.Size()
	if cols <= 0 || rows <= 1 || dl.Width <= 0 || dl.Height <= 0 {
		return nil
	}
	g := grid{
		s:    d.screen,
		cols: cols,
		rows: rows - 1,
		sx:   float64(cols) / dl.Width,
		sy:   float64(rows-1) / dl.Height,
		bg:   make([]render.Color, cols*(rows-1)),
	}
	for i := range g.bg {
		g.bg[i] = dl.Background
	}
	d.screen.Fill(' ', style(dl.Background))
	for _, o := range dl.Ops {
		g.op(o)
	}
	footer := fmt.Sprintf(" frame %05d  %s", frame, d.status)
	fs := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	for x := 0; x < cols; x++ {
		r := ' '
		if x < len([]rune(footer)) {
			r = []rune(footer)[x]
		}
		d.screen.SetContent(x, rows-1, r, nil, fs)
	}
	d.screen.Show()
	return nil
}

// grid tracks the background of every cell so translucent marks blend
// against whatever was painted below them.
type grid struct {
	s          tcell.Screen
	cols, rows int
	sx, sy     float64
	bg         []render.Color
}

func (g *grid) cell(x, y float64) (int, int) {
	return int(math.Floor(x * g.sx)), int(math.Floor(y * g.sy))
}

func (g *grid) in(cx, cy int) bool { return cx >= 0 && cy >= 0 && cx < g.cols && cy < g.rows }

func (g *grid) put(cx, cy int, r rune, fg render.Color, opacity float64) {
	if !g.in(cx, cy) {
		return
	}
	bg := g.bg[cy*g.cols+cx]
	c := bg.Lerp(fg, opacity)
	g.s.SetContent(cx, cy, r, nil, tcell.StyleDefault.Foreground(rgb(c)).Background(rgb(bg)))
}

func (g *grid) paint(cx, cy int, c render.Color, opacity float64) {
	if !g.in(cx, cy) {
		return
	}
	i := cy*g.cols + cx
	g.bg[i] = g.bg[i].Lerp(c, opacity)
	g.s.SetContent(cx, cy, ' ', nil, style(g.bg[i]))
}

func (g *grid) op(o render.Op) {
	switch o.Kind {
	case render.OpRect:
		x0, y0 := g.cell(o.X, o.Y)
		x1, y1 := g.cell(o.X+o.W, o.Y+o.H)
		if o.Fill != nil {
			for cy := y0; cy < max(y1, y0+1); cy++ {
				for cx := x0; cx < max(x1, x0+1); cx++ {
					g.paint(cx, cy, *o.Fill, o.Opacity)
				}
			}
		} else if o.Stroke != nil {
			g.stroke(x0, y0, x1-1, y0, *o.Stroke, o.Opacity)
			g.stroke(x0, y1-1, x1-1, y1-1, *o.Stroke, o.Opacity)
			g.stroke(x0, y0, x0, y1-1, *o.Stroke, o.Opacity)
			g.stroke(x1-1, y0, x1-1, y1-1, *o.Stroke, o.Opacity)
		}
	case render.OpLine:
		if o.Stroke == nil {
			return
		}
		x0, y0 := g.cell(o.X, o.Y)
		x1, y1 := g.cell(o.X2, o.Y2)
		g.stroke(x0, y0, x1, y1, *o.Stroke, o.Opacity)
	case render.OpCircle:
		if o.Fill == nil {
			return
		}
		cx, cy := g.cell(o.X, o.Y)
		g.put(cx, cy, dotRune, *o.Fill, o.Opacity)
	case render.OpText:
		if o.Fill == nil {
			return
		}
		rs := []rune(o.Text)
		cx, cy := g.cell(o.X, o.Y-o.Size/2)
		switch o.Align {
		case render.AlignMiddle:
			cx -= len(rs) / 2
		case render.AlignEnd:
			cx -= len(rs)
		}
		for i, r := range rs {
			g.put(cx+i, cy, r, *o.Fill, math.Max(o.Opacity, 0.6))
		}
	}
}

// stroke walks the cells between two points (Bresenham).
func (g *grid) stroke(x0, y0, x1, y1 int, c render.Color, opacity float64) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		g.put(x0, y0, lineRune, c, opacity)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Run polls terminal events until ctx ends or Quit fires.
func (d *Driver) Run(ctx context.Context, k Keys) {
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := d.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if d.Handle(ev, k) {
				return
			}
		}
	}
}

// Handle dispatches one event and reports whether the loop should stop.
func (d *Driver) Handle(ev tcell.Event, k Keys) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		d.screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			call(k.Quit)
			return true
		case tcell.KeyLeft:
			if k.Seek != nil {
				k.Seek(-SeekStep)
			}
		case tcell.KeyRight:
			if k.Seek != nil {
				k.Seek(SeekStep)
			}
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				call(k.Quit)
				return true
			case ' ', 'p':
				call(k.Pause)
			case ']', 'w':
				if k.Warp != nil {
					k.Warp(0.1)
				}
			case '[', 's':
				if k.Warp != nil {
					k.Warp(-0.1)
				}
			}
		}
	}
	return false
}

func call(f func()) {
	if f != nil {
		f()
	}
}
