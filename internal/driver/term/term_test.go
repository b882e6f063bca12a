package term

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-stcube/internal/render"
)

func sim(t *testing.T) tcell.SimulationScreen {
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	t.Cleanup(s.Fini)
	s.SetSize(80, 25)
	return s
}

func TestWriteScalesOntoCells(t *testing.T) {
	s := sim(t)
	d := New(s)
	d.SetStatus("Map Interaction")
	th := render.DarkTheme()

	// 800x240 maps to 10x10 pixels per cell across 80x24 cells
	dl := render.NewDrawList(800, 240, th.Background)
	dl.Add(
		render.Rect(0, 0, 100, 50, th.Card),
		render.Circle(405, 125, 3, th.AccentOrange),
		render.Line(0, 200, 790, 200, th.Border, 1),
		render.Text(400, 35, "HELLO", 10, th.White).WithAlign(render.AlignMiddle),
	)
	require.NoError(t, d.Write(12, dl))

	_, _, st, _ := s.GetContent(2, 2)
	_, bg, _ := st.Decompose()
	assert.Equal(t, rgb(th.Card), bg)

	r, _, st, _ := s.GetContent(40, 12)
	assert.Equal(t, dotRune, r)
	fg, _, _ := st.Decompose()
	assert.Equal(t, rgb(th.AccentOrange), fg)

	for x := 0; x < 80; x++ {
		r, _, _, _ := s.GetContent(x, 20)
		assert.Equal(t, lineRune, r, "column %d", x)
	}

	var word []rune
	for x := 38; x < 43; x++ {
		r, _, _, _ := s.GetContent(x, 3)
		word = append(word, r)
	}
	assert.Equal(t, "HELLO", string(word))

	var footer []rune
	for x := 0; x < 12; x++ {
		r, _, _, _ := s.GetContent(x, 24)
		footer = append(footer, r)
	}
	assert.Equal(t, " frame 00012", string(footer))
}

func TestTranslucentBlend(t *testing.T) {
	s := sim(t)
	d := New(s)
	dl := render.NewDrawList(80, 24, render.MustHex("#000000"))
	dl.Add(render.Circle(10, 10, 1, render.MustHex("#ffffff")).WithOpacity(0.5))
	require.NoError(t, d.Write(0, dl))

	_, _, st, _ := s.GetContent(10, 10)
	fg, _, _ := st.Decompose()
	r, g, b := fg.RGB()
	assert.InDelta(t, 128, r, 1)
	assert.InDelta(t, 128, g, 1)
	assert.InDelta(t, 128, b, 1)
}

func TestHandleKeys(t *testing.T) {
	d := New(sim(t))
	var quit, paused bool
	seek := 0
	warp := 0.0
	k := Keys{
		Quit:  func() { quit = true },
		Pause: func() { paused = !paused },
		Seek:  func(n int) { seek += n },
		Warp:  func(w float64) { warp += w },
	}

	assert.False(t, d.Handle(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), k))
	assert.False(t, d.Handle(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), k))
	assert.False(t, d.Handle(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), k))
	assert.Equal(t, SeekStep, seek)

	d.Handle(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), k)
	assert.True(t, paused)
	d.Handle(tcell.NewEventKey(tcell.KeyRune, ']', tcell.ModNone), k)
	assert.InDelta(t, 0.1, warp, 1e-9)

	assert.True(t, d.Handle(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), k))
	assert.True(t, quit)
}
