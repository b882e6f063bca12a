package svgout

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-stcube/internal/render"
)

func sample() *render.DrawList {
	th := render.DarkTheme()
	dl := render.NewDrawList(600, 400, th.Background)
	dl.Add(
		render.Line(0, 0, 100, 100, th.Border, 1).WithOpacity(0.4),
		render.Line(10, 10, 50, 10, th.AccentBlue, 2).WithDash(5, 10),
		render.Circle(300, 200, 4.6, th.AccentOrange).WithBlur(2),
		render.Circle(310, 200, 3, th.AccentBlue),
		render.Rect(20, 20, 200, 100, th.Card).WithRadius(16).WithStroke(th.Border, 1),
		render.Text(300, 40, "Adaptive Brushing & Non-uniform Bins", 32, th.White).WithAlign(render.AlignMiddle).WithBold(),
	)
	return dl
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sample()))
	s := buf.String()

	assert.True(t, strings.HasPrefix(s, "<?xml"))
	assert.Contains(t, s, `width="600"`)
	assert.Contains(t, s, `viewBox="0 0 6000 `)
	assert.Contains(t, s, "fill:#020617")
	assert.Equal(t, 2, strings.Count(s, "<line"))
	assert.Equal(t, 2, strings.Count(s, "<circle"))
	assert.Contains(t, s, `r="46"`, "radius keeps a tenth of a pixel")
	assert.Contains(t, s, "stroke-dasharray:50,100")
	assert.Contains(t, s, "opacity:0.400")
	assert.Contains(t, s, `<filter id="blur2"`)
	assert.Equal(t, 1, strings.Count(s, `filter="url(#blur2)"`))
	assert.Contains(t, s, `rx="160"`)
	assert.Contains(t, s, "Brushing &amp; Non-uniform")
	assert.Contains(t, s, "text-anchor:middle")
	assert.Contains(t, s, "font-weight:bold")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(s), "</svg>"))
}

func TestDriverWritesFiles(t *testing.T) {
	d, err := New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, d.Write(7, sample()))
	b, err := os.ReadFile(d.Path(7))
	require.NoError(t, err)
	assert.Contains(t, string(b), "<svg")
	assert.True(t, strings.HasSuffix(d.Path(7), "frame_00007.svg"))
}
