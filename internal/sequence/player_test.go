package sequence

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEnvelopeEval(t *testing.T) {
	env := Envelope{Keys: []Keyframe{
		{F: 0, V: 0, Ease: "linear"},
		{F: 10, V: 10, Ease: "linear"},
	}}
	if v := env.Eval(-1); v != 0 {
		t.Fatalf("expected 0 before start, got %v", v)
	}
	if v := env.Eval(0); v != 0 {
		t.Fatalf("expected 0 at f=0, got %v", v)
	}
	if v := env.Eval(5); v != 5 {
		t.Fatalf("expected 5 at f=5, got %v", v)
	}
	if v := env.Eval(10); v != 10 {
		t.Fatalf("expected 10 at f=10, got %v", v)
	}
	if v := env.Eval(11); v != 10 {
		t.Fatalf("expected 10 after end, got %v", v)
	}
	if !Step(60).BoolEval(61) || Step(60).BoolEval(60) {
		t.Fatalf("step should switch strictly after frame 60")
	}
}

func TestEaseEndpointsAndSymmetry(t *testing.T) {
	for _, k := range []string{"linear", "smooth", "cubic", "quadInOut", "cubicOut", "bogus"} {
		if Ease(k, 0) != 0 || Ease(k, 1) != 1 {
			t.Fatalf("%s: endpoints %v %v", k, Ease(k, 0), Ease(k, 1))
		}
	}
	if v := Ease("quadInOut", 0.5); v != 0.5 {
		t.Fatalf("quadInOut midpoint = %v", v)
	}
	if v := Ease("quadInOut", 0.25); v != 0.125 {
		t.Fatalf("quadInOut(0.25) = %v", v)
	}
}

func TestInterpolateClampAndExtend(t *testing.T) {
	in := []float64{0, 10, 50, 60}
	out := []float64{0, 1, 1, 0}
	cases := []struct {
		x    float64
		o    InterpOpts
		want float64
	}{
		{-5, InterpOpts{}, 0},
		{5, InterpOpts{}, 0.5},
		{30, InterpOpts{}, 1},
		{55, InterpOpts{}, 0.5},
		{70, InterpOpts{}, 0},
		{70, InterpOpts{Right: Extend}, -1},
		{-5, InterpOpts{Left: Extend}, -0.5},
	}
	for _, c := range cases {
		if got := Interpolate(c.x, in, out, c.o); math.Abs(got-c.want) > 1e-12 {
			t.Fatalf("Interpolate(%v, %+v) = %v, want %v", c.x, c.o, got, c.want)
		}
	}
	if got := Window(60, 20, 100, "quadInOut"); got != 0.5 {
		t.Fatalf("window midpoint = %v", got)
	}
	if got := Interpolate(3, []float64{1}, []float64{2}, InterpOpts{}); got != 3 {
		t.Fatalf("malformed table should pass through, got %v", got)
	}
}

func testProgram() Program {
	return Program{
		Version: "seq.v2",
		FPS:     30,
		Clips: []Clip{
			{Name: "A", Scene: "cube", Preset: "Linear", Frames: 40, XFade: 20},
			{Name: "B", Scene: "title", Preset: "Outro", Frames: 40,
				Params: map[string]Envelope{"Warp": Ramp(0, 40, 0, 1, "linear")}},
		},
	}
}

func TestProgramAtCrossfadeWindow(t *testing.T) {
	p := testProgram()
	if p.Duration() != 80 {
		t.Fatalf("duration = %d", p.Duration())
	}
	c, ok := p.At(10)
	if !ok || c.Index != 0 || c.Fading() || c.Local != 10 {
		t.Fatalf("frame 10: %+v", c)
	}
	c, _ = p.At(30)
	if !c.Fading() || c.NextIndex != 1 || c.Alpha != 0.5 || c.NextLocal != 10 {
		t.Fatalf("frame 30: %+v", c)
	}
	// B continues from where its fade-in left off.
	c, _ = p.At(40)
	if c.Index != 1 || c.Local != 20 {
		t.Fatalf("frame 40: %+v", c)
	}
	if _, ok := p.At(80); ok {
		t.Fatalf("frame 80 should be past the end")
	}
	if _, ok := p.At(-1); ok {
		t.Fatalf("negative frame should be rejected")
	}
}

func TestProgramAtLoopWraps(t *testing.T) {
	p := testProgram()
	p.Loop = true
	p.Clips[1].XFade = 10
	c, ok := p.At(85)
	if !ok || c.Index != 0 || c.Local != 15 {
		t.Fatalf("wrapped frame: %+v ok=%v", c, ok)
	}
	c, _ = p.At(75)
	if !c.Fading() || c.NextIndex != 0 {
		t.Fatalf("last clip should fade into the first: %+v", c)
	}
}

func TestProgramValidate(t *testing.T) {
	if err := (Program{}).Validate(); !errors.Is(err, ErrEmptyProgram) {
		t.Fatalf("expected ErrEmptyProgram, got %v", err)
	}
	bad := testProgram()
	bad.Clips[0].XFade = 99
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected xfade error")
	}
	bad = testProgram()
	bad.Clips[1].Scene = ""
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected scene error")
	}
}

func TestSequencerCrossfade(t *testing.T) {
	log := []string{}
	var warp float64
	h := Hooks{
		SetRenderer: func(name, preset string) { log = append(log, "Set:"+name+"/"+preset) },
		ArmNext:     func(name, preset string) { log = append(log, "Arm:"+name+"/"+preset) },
		SetCrossfade: func(a float64) {
			// log a few key alphas
			if a == 0 || a == 0.5 || a == 1.0 {
				log = append(log, "Alpha")
			}
		},
		SetParam: func(name string, v float64) { warp = v },
		SetBool:  func(name string, b bool) {},
	}
	p := NewPlayer(h)
	if err := p.Load(testProgram()); err != nil {
		t.Fatalf("load: %v", err)
	}
	p.Start()
	for i := 0; i < 19; i++ {
		p.Tick() // f=19, just before fade
	}
	p.Tick() // f=20 -> should arm B
	for i := 0; i < 20; i++ {
		p.Tick() // f=40 -> should switch to B
	}

	var cleaned []string
	for _, entry := range log {
		if entry == "Alpha" {
			continue
		}
		cleaned = append(cleaned, entry)
	}
	want := []string{"Set:cube/Linear", "Arm:title/Outro", "Set:title/Outro"}
	if diff := cmp.Diff(want, cleaned); diff != "" {
		t.Fatalf("unexpected hook order (-want +got):\n%s", diff)
	}
	if warp != 0.5 {
		t.Fatalf("expected Warp envelope at local 20 = 0.5, got %v", warp)
	}

	for i := 0; i < 40; i++ {
		p.Tick()
	}
	if p.State != Idle {
		t.Fatalf("expected Idle after the last clip, got %s", p.State)
	}
}

func TestPlayerSeekPauseResume(t *testing.T) {
	var set []string
	var local float64
	p := NewPlayer(Hooks{
		SetRenderer: func(name, preset string) { set = append(set, name) },
		SetClock:    func(l, _ float64) { local = l },
	})
	if err := p.Load(testProgram()); err != nil {
		t.Fatalf("load: %v", err)
	}
	p.Seek(500)
	if p.Frame() != 79 || local != 59 {
		t.Fatalf("seek clamp: frame=%d local=%v", p.Frame(), local)
	}
	p.Seek(5)
	p.Start()
	p.Pause()
	p.Tick()
	if p.Frame() != 5 {
		t.Fatalf("paused player advanced to %d", p.Frame())
	}
	p.Resume()
	p.Tick()
	if p.Frame() != 6 || local != 6 {
		t.Fatalf("resume: frame=%d local=%v", p.Frame(), local)
	}
	if len(set) != 3 || set[0] != "title" || set[1] != "cube" {
		t.Fatalf("unexpected SetRenderer calls %v", set)
	}
}

func TestApplyIsStateless(t *testing.T) {
	var calls []string
	h := Hooks{
		SetRenderer:  func(name, preset string) { calls = append(calls, "set") },
		ArmNext:      func(name, preset string) { calls = append(calls, "arm") },
		SetCrossfade: func(a float64) { calls = append(calls, "fade") },
		SetClock:     func(l, n float64) { calls = append(calls, "clock") },
	}
	c, _ := testProgram().At(25)
	Apply(h, c)
	Apply(h, c)
	want := []string{"set", "arm", "fade", "clock", "set", "arm", "fade", "clock"}
	if diff := cmp.Diff(want, calls); diff != "" {
		t.Fatalf("unexpected calls (-want +got):\n%s", diff)
	}
}

func TestApplyAutomatesIncomingClip(t *testing.T) {
	p := testProgram()
	p.Clips[1].Params = map[string]Envelope{"Period": {Keys: []Keyframe{{F: 0, V: 0}, {F: 20, V: 20}}}}
	p.Clips[1].Text = map[string]string{"Label": "B"}

	next := map[string]float64{}
	var text string
	h := Hooks{
		SetNextParam: func(name string, v float64) { next[name] = v },
		SetNextText:  func(name, s string) { text = s },
	}
	c, _ := p.At(30)
	Apply(h, c)
	if next["Period"] != 10 || text != "B" {
		t.Fatalf("incoming clip at local %v: params %v text %q", c.NextLocal, next, text)
	}

	// the live player feeds the same values
	clear(next)
	pl := NewPlayer(h)
	if err := pl.Load(p); err != nil {
		t.Fatal(err)
	}
	pl.Start()
	pl.Seek(30)
	if next["Period"] != 10 {
		t.Fatalf("player incoming params %v", next)
	}

	// outside a fade nothing is sent to the armed renderer
	clear(next)
	c, _ = p.At(10)
	Apply(h, c)
	if len(next) != 0 {
		t.Fatalf("unexpected next params %v", next)
	}
}

func TestLoadProgramYAMLAndJSON(t *testing.T) {
	dir := t.TempDir()
	yml := filepath.Join(dir, "show.yaml")
	src := `version: seq.v2
name: demo
clips:
  - name: intro
    scene: title
    preset: Intro
    frames: 90
    xfade: 15
  - name: cube
    scene: cube
    preset: Warped
    frames: 180
    params:
      Warp:
        keys:
          - {f: 20, v: 0, ease: quadInOut}
          - {f: 100, v: 1}
`
	if err := os.WriteFile(yml, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	p, err := LoadProgram(yml)
	if err != nil {
		t.Fatalf("load yaml: %v", err)
	}
	if p.FPS != DefaultFPS || p.Width != DefaultWidth || p.Duration() != 270 {
		t.Fatalf("unexpected program %+v", p)
	}
	if v := p.Clips[1].Params["Warp"].Eval(60); v != 0.5 {
		t.Fatalf("warp at 60 = %v", v)
	}

	js := filepath.Join(dir, "show.json")
	if err := os.WriteFile(js, []byte(`{"version":"seq.v2","clips":[]}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadProgram(js); !errors.Is(err, ErrEmptyProgram) {
		t.Fatalf("expected ErrEmptyProgram, got %v", err)
	}

	out := filepath.Join(dir, "saved.yaml")
	if err := SaveProgram(out, p); err != nil {
		t.Fatalf("save: %v", err)
	}
	back, err := LoadProgram(out)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if diff := cmp.Diff(p, back); diff != "" {
		t.Fatalf("round trip (-want +got):\n%s", diff)
	}
}
