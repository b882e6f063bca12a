package sequence

import "errors"

// ErrEmptyProgram is returned when a program has nothing to play.
var ErrEmptyProgram = errors.New("program has no clips")

// Keyframe represents a value at frame F with an easing function
// that applies to the segment starting at this keyframe.
type Keyframe struct {
	F    float64 `json:"f" yaml:"f"`
	V    float64 `json:"v" yaml:"v"`
	Ease string  `json:"ease,omitempty" yaml:"ease,omitempty"` // "linear","smooth","cubic","quadInOut","cubicOut"
}

// Envelope is a sorted list of keyframes; Eval(f) interpolates a value.
type Envelope struct {
	Keys []Keyframe `json:"keys" yaml:"keys"`
}

// Clip is one segment of a show: selects a scene + preset, sets duration,
// optional crossfade into the NEXT clip, and controls parameter automation.
type Clip struct {
	Name   string              `json:"name" yaml:"name"`
	Scene  string              `json:"scene" yaml:"scene"`
	Preset string              `json:"preset,omitempty" yaml:"preset,omitempty"`
	Frames int                 `json:"frames" yaml:"frames"`
	XFade  int                 `json:"xfade,omitempty" yaml:"xfade,omitempty"`
	Params map[string]Envelope `json:"params,omitempty" yaml:"params,omitempty"` // numeric params over clip-local frames
	Bools  map[string]Envelope `json:"bools,omitempty" yaml:"bools,omitempty"`   // 0..1 thresholded to bool
	Text   map[string]string   `json:"text,omitempty" yaml:"text,omitempty"`
}

// Program is a full sequence of clips.
type Program struct {
	Version string `json:"version" yaml:"version"` // e.g., "seq.v2"
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	FPS     int    `json:"fps" yaml:"fps"`
	Width   int    `json:"width" yaml:"width"`
	Height  int    `json:"height" yaml:"height"`
	Loop    bool   `json:"loop,omitempty" yaml:"loop,omitempty"`
	Clips   []Clip `json:"clips" yaml:"clips"`
}

// PlayerState enumerates sequencer states.
type PlayerState string

const (
	Idle    PlayerState = "idle"
	Running PlayerState = "running"
	Paused  PlayerState = "paused"
)

// Hooks are dependency-injected callbacks into the render engine.
type Hooks struct {
	// Set active renderer/preset immediately.
	SetRenderer func(name, preset string)
	// Parameter, boolean and text setters for the ACTIVE renderer.
	SetParam func(name string, v float64)
	SetBool  func(name string, b bool)
	SetText  func(name, s string)
	// Prepare the next renderer/preset for crossfade.
	ArmNext      func(name, preset string)
	SetCrossfade func(alpha float64) // 0..1 mix between active and armed
	// Automation of the ARMED renderer while it fades in.
	SetNextParam func(name string, v float64)
	SetNextBool  func(name string, b bool)
	SetNextText  func(name, s string)
	// Clip-local frames of the active and armed renderer.
	SetClock func(local, nextLocal float64)
}

// Player owns the current Program timeline and uses Hooks to drive the engine.
type Player struct {
	State PlayerState

	prog  Program
	frame int // position within program
	idx   int // current clip index

	// crossfade bookkeeping
	armedIndex int // which clip is armed next (-1 means none)
	lastAlpha  float64

	// injection
	hooks Hooks
}
