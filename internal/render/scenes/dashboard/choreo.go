package dashboard

import (
	"math"

	"github.com/coreman2200/funtimes-stcube/internal/render"
	"github.com/coreman2200/funtimes-stcube/internal/sequence"
	"github.com/coreman2200/funtimes-stcube/internal/stc"
	"github.com/coreman2200/funtimes-stcube/internal/tour"
)

// Intents cycled by the Controls preset.
var Intents = []string{"Overview", "Find bursts", "Compare places"}

// State is everything the dashboard shows at one frame.
type State struct {
	Headline string
	Intent   string

	Selection float64 // lasso progress 0..1
	Zoomed    bool

	Highlight bool // linked months lit on both timelines
	Caption   string
	Brush     tour.Brush

	Slice  *stc.SliceRange
	Warp   float64
	Split  bool
	Filter bool // subset chip active in the split view

	Label string

	Controls   bool
	Resolution float64 // percent
	WarpPct    float64 // percent
}

// Choreograph returns the scripted state of a preset at a clip-local frame.
func Choreograph(preset string, f float64) State {
	st := State{Filter: true, Resolution: 50, Headline: headlines[preset]}
	switch preset {
	case "MapInteraction":
		st.Zoomed = true
		st.Selection = sequence.Window(f, 20, 80, "linear")
		st.Highlight = st.Selection > 0.9
		if st.Highlight {
			st.Caption = "Two linked timelines: adaptive vs. uniform time"
		}
	case "TimelineBrushing":
		end := sequence.Interpolate(f, []float64{20, 100}, []float64{25, 75}, sequence.InterpOpts{})
		st.Brush = tour.Brush{Start: 25, End: end}
		if f > 110 {
			s := st.Brush.Slice()
			st.Slice = &s
			st.Label = "Adaptive time selection"
			st.Caption = "Syncing selection to Space-Time Cube..."
		}
	case "WarpedCube":
		st.Warp = sequence.Window(f, 40, 100, "quadInOut")
		if st.Warp > 0.8 {
			st.Label = "Warped time axis emphasizes bursts"
		}
	case "MultipleCubes":
		st.Split = true
		st.Filter = f > 60
		st.Brush = tour.Brush{Start: 20, End: 60}
		s := st.Brush.Slice()
		st.Slice = &s
		st.Label = "Compare subsets side by side"
	case "Controls":
		st.Controls = true
		i := int(math.Floor(sequence.Interpolate(f, []float64{0, 240}, []float64{0, 2.99},
			sequence.InterpOpts{Left: sequence.Extend})))
		st.Intent = Intents[max(0, min(i, len(Intents)-1))]
		st.Resolution = sequence.Interpolate(f, []float64{120, 200}, []float64{50, 90},
			sequence.InterpOpts{Ease: "quadInOut"})
		st.WarpPct = 100
	}
	return st
}

var headlines = map[string]string{
	"MapInteraction":   "Explore spatial patterns",
	"TimelineBrushing": "Adaptive Brushing & Non-uniform Bins",
	"WarpedCube":       "Space-Time Cube Warping",
	"MultipleCubes":    "Advanced filtering & comparison",
	"Controls":         "Intuitive Analytical Intents",
}

// Resolve applies clip automation and live overrides on top of the scripted
// state.
func Resolve(st State, u *render.Uniforms) State {
	st.Headline = u.Str("Headline", st.Headline)
	st.Intent = u.Str("Intent", st.Intent)
	st.Caption = u.Str("Caption", st.Caption)
	st.Label = u.Str("Label", st.Label)

	st.Selection = u.Param("Selection", st.Selection)
	st.Warp = u.Param("Warp", st.Warp)
	st.Resolution = u.Param("Resolution", st.Resolution)
	st.WarpPct = u.Param("WarpPct", st.WarpPct)
	st.Brush.Start = u.Param("BrushStart", st.Brush.Start)
	st.Brush.End = u.Param("BrushEnd", st.Brush.End)

	st.Zoomed = u.Bool("Zoomed", st.Zoomed)
	st.Highlight = u.Bool("Highlight", st.Highlight)
	st.Split = u.Bool("Split", st.Split)
	st.Filter = u.Bool("Filter", st.Filter)
	st.Controls = u.Bool("Controls", st.Controls)
	if on, ok := u.Bools["Slice"]; ok && !on {
		st.Slice = nil
	} else if ok || st.Slice != nil {
		// the cube always follows the resolved brush
		s := st.Brush.Slice()
		st.Slice = &s
	}
	return st
}
