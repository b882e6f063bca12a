// Package studio assembles the thesis videos: the built-in compositions, the
// renderer registry, the live conductor and the parallel offline renderer.
package studio

import (
	"errors"
	"fmt"
	"sort"

	"github.com/coreman2200/funtimes-stcube/internal/sequence"
)

// ErrUnknownComposition is returned by Lookup for names it does not know.
var ErrUnknownComposition = errors.New("unknown composition")

const fps = 30

var builtins = map[string]func() sequence.Program{
	"ThesisConcept3D": ThesisConcept3D,
	"ThesisTour":      ThesisTour,
	"FullDemo":        FullDemo,
	"CombinedThesis":  CombinedThesis,
	"TestCard":        TestCard,
}

// Names lists the built-in compositions, sorted.
func Names() []string {
	out := make([]string, 0, len(builtins))
	for k := range builtins {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Lookup returns a fresh copy of a built-in composition.
func Lookup(name string) (sequence.Program, error) {
	mk, ok := builtins[name]
	if !ok {
		return sequence.Program{}, fmt.Errorf("%w: %q", ErrUnknownComposition, name)
	}
	p := mk()
	p.Normalize()
	return p, nil
}

func program(name string, clips ...sequence.Clip) sequence.Program {
	return sequence.Program{
		Version: "seq.v2",
		Name:    name,
		FPS:     fps,
		Width:   sequence.DefaultWidth,
		Height:  sequence.DefaultHeight,
		Clips:   clips,
	}
}

// ThesisConcept3D is the intro slide followed by the linear and the warped
// concept cube.
func ThesisConcept3D() sequence.Program {
	return program("ThesisConcept3D",
		sequence.Clip{Name: "Intro", Scene: "title", Preset: "Intro", Frames: 90},
		sequence.Clip{Name: "Linear", Scene: "cube", Preset: "Linear", Frames: 150},
		sequence.Clip{Name: "Warped", Scene: "cube", Preset: "Warped", Frames: 180},
	)
}

func tourClips() []sequence.Clip {
	return []sequence.Clip{
		{Name: "Map", Scene: "dashboard", Preset: "MapInteraction", Frames: 10 * fps},
		{Name: "Brushing", Scene: "dashboard", Preset: "TimelineBrushing", Frames: 12 * fps},
		{Name: "Warped", Scene: "dashboard", Preset: "WarpedCube", Frames: 12 * fps},
		{Name: "Multiple", Scene: "dashboard", Preset: "MultipleCubes", Frames: 10 * fps},
	}
}

// ThesisTour is the four dashboard scenes of the product tour.
func ThesisTour() sequence.Program {
	return program("ThesisTour", tourClips()...)
}

// tourSlot fills the 52 second tour slot of the long videos; the controls
// scene covers the frames after the four tour scenes.
func tourSlot() []sequence.Clip {
	return append(tourClips(),
		sequence.Clip{Name: "Controls", Scene: "dashboard", Preset: "Controls", Frames: 8 * fps})
}

// FullDemo opens on the landing page, bridges into the tour and closes on
// the outro.
func FullDemo() sequence.Program {
	clips := []sequence.Clip{
		{Name: "Landing", Scene: "title", Preset: "Landing", Frames: 90},
		{Name: "Solution", Scene: "title", Preset: "Transition", Frames: 60},
	}
	clips = append(clips, tourSlot()...)
	clips = append(clips, sequence.Clip{Name: "Outro", Scene: "title", Preset: "Outro", Frames: 90})
	return program("FullDemo", clips...)
}

// CombinedThesis is FullDemo without the bridge slide, with short
// crossfades between the landing page, the tour and the outro.
func CombinedThesis() sequence.Program {
	clips := []sequence.Clip{
		{Name: "Landing", Scene: "title", Preset: "Landing", Frames: 90, XFade: 15},
	}
	tour := tourSlot()
	tour[len(tour)-1].XFade = 15
	clips = append(clips, tour...)
	clips = append(clips, sequence.Clip{Name: "Outro", Scene: "title", Preset: "Outro", Frames: 90})
	return program("CombinedThesis", clips...)
}

// TestCard cycles the surface test cards and ends on a pulsing, fading
// card; it exercises crossfades, param envelopes and the global fade.
func TestCard() sequence.Program {
	return program("TestCard",
		sequence.Clip{Name: "Grid", Scene: "calib", Preset: "Grid", Frames: 120, XFade: 15},
		sequence.Clip{Name: "Sweep", Scene: "calib", Preset: "ChannelSweep", Frames: 90, XFade: 15},
		sequence.Clip{
			Name: "Pulse", Scene: "solid", Preset: "Card", Frames: 60,
			Params: map[string]sequence.Envelope{
				"Period": {Keys: []sequence.Keyframe{{F: 0, V: 30}}},
				"Fade":   sequence.Ramp(30, 60, 1, 0, "smooth"),
			},
		},
	)
}
