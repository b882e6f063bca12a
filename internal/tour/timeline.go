package tour

import "github.com/coreman2200/funtimes-stcube/internal/stc"

// MonthNames are the timeline bin labels.
var MonthNames = []string{"JAN", "FEB", "MAR", "APR", "MAY", "JUN", "JUL", "AUG", "SEP", "OCT", "NOV", "DEC"}

// AdaptiveWeights are the relative widths of the adaptive month bins. Busy
// months get wider bins.
var AdaptiveWeights = []float64{40, 25, 60, 30, 15, 45, 25, 50, 35, 40, 30, 55}

// Highlighted month range, inclusive.
const (
	HighlightFirst = 3
	HighlightLast  = 6
)

// Bin is one month cell, positioned as fractions of the row width.
type Bin struct {
	Label     string
	Short     string
	Left      float64
	Width     float64
	Weight    float64
	Highlight bool
}

// ShowLabel reports whether an adaptive bin is wide enough for its name.
func (b Bin) ShowLabel() bool { return b.Weight > 30 }

// Timeline is the pair of linked month rows.
type Timeline struct {
	Adaptive []Bin
	Uniform  []Bin
}

// NewTimeline lays out both rows. gap is the spacing between bins as a
// fraction of the row.
func NewTimeline(highlight bool, gap float64) Timeline {
	return Timeline{
		Adaptive: layoutBins(AdaptiveWeights, highlight, gap),
		Uniform:  layoutBins(uniformWeights(), highlight, gap/2),
	}
}

func uniformWeights() []float64 {
	w := make([]float64, len(MonthNames))
	for i := range w {
		w[i] = 1
	}
	return w
}

func layoutBins(weights []float64, highlight bool, gap float64) []Bin {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	free := 1 - gap*float64(len(weights)-1)
	if free < 0 {
		free = 0
	}
	out := make([]Bin, len(weights))
	left := 0.0
	for i, w := range weights {
		width := free * w / total
		out[i] = Bin{
			Label:     MonthNames[i],
			Short:     MonthNames[i][:1],
			Left:      left,
			Width:     width,
			Weight:    w,
			Highlight: highlight && i >= HighlightFirst && i <= HighlightLast,
		}
		left += width + gap
	}
	return out
}

// Brush is a timeline selection in percent of the row, 0..100.
type Brush struct {
	Start, End float64
}

// Visible is false for the empty brush.
func (b Brush) Visible() bool { return b.End > 0 }

// Slice converts the brush into the cube's time slice. This is the link
// from the timeline selection to the space-time cube.
func (b Brush) Slice() stc.SliceRange {
	return stc.SliceRange{Start: b.Start, End: b.End}
}
