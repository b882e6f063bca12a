package chart

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/plotter"

	"github.com/coreman2200/funtimes-stcube/internal/stc"
)

func TestCurves(t *testing.T) {
	cs := Curves(stc.TourWarp(), 1)
	require.Len(t, cs, 3)
	assert.Equal(t, "linear", cs[0].Name)
	assert.Len(t, cs[0].XY, Samples)
	assert.Equal(t, -1.0, cs[0].XY[0].X)
	assert.Equal(t, 1.0, cs[0].XY[Samples-1].X)

	// warped curve passes through the breakpoint (0.2 -> -0.1)
	mid := cs[1].XY[60]
	assert.InDelta(t, 0.2, mid.X, 1e-9)
	assert.InDelta(t, -0.1, mid.Y, 1e-9)

	assert.Len(t, Curves(stc.ConceptWarp(), 1), 2, "no burst curve")

	for _, xy := range Curves(stc.TourWarp(), 0)[1].XY {
		assert.Equal(t, xy.X, xy.Y, "progress 0 is the identity")
	}
}

func TestKnots(t *testing.T) {
	k := Knots(stc.TourWarp(), true)
	require.Len(t, k, 2)
	assert.Equal(t, plotter.XY{X: 0.6, Y: 0.3}, k[1])
	assert.Nil(t, Knots(stc.Warp{}, false))

	p, err := WarpPlot(stc.Warp{}, "identity")
	require.NoError(t, err)
	assert.NotNil(t, p)
}

func TestWarpedTimes(t *testing.T) {
	cloud := stc.TourCloud()
	v := WarpedTimes(stc.TourWarp(), cloud, 0)
	require.Len(t, v, len(cloud))
	for i := range cloud {
		assert.Equal(t, cloud[i].Z, v[i])
	}
}

func TestSavePlots(t *testing.T) {
	dir := t.TempDir()
	p, err := WarpPlot(stc.TourWarp(), "Tour warp")
	require.NoError(t, err)
	require.NoError(t, Save(p, filepath.Join(dir, "warp.png")))

	h, err := TimeHistogram(stc.TourWarp(), stc.TourCloud(), 1, 20)
	require.NoError(t, err)
	require.NoError(t, Save(h, filepath.Join(dir, "hist.svg")))

	for _, f := range []string{"warp.png", "hist.svg"} {
		info, err := os.Stat(filepath.Join(dir, f))
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}

	_, err = TimeHistogram(stc.TourWarp(), nil, 1, 20)
	assert.Error(t, err)
}

func TestWarpLineChart(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WarpLineChart(&buf, stc.TourWarp(), "Warp curves", 0.5))
	s := buf.String()
	assert.Contains(t, s, "<html")
	assert.Contains(t, s, "Warp curves")
	assert.Contains(t, s, "burst")
}
