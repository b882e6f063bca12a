package solid

import (
	"testing"

	"github.com/coreman2200/funtimes-stcube/internal/render"
)

func TestPresetsAndPulse(t *testing.T) {
	th := render.DarkTheme()
	s := New("solid", th)
	u := render.NewUniforms()
	s.ApplyPreset("Light", u)
	dl := render.NewDrawList(10, 10, render.Color{})
	s.Render(dl, render.Viewport{Width: 10, Height: 10}, 0, u)
	if dl.Background.Hex() != th.Light.Hex() {
		t.Fatalf("expected %s, got %s", th.Light.Hex(), dl.Background.Hex())
	}
	if len(dl.Ops) != 0 {
		t.Fatalf("solid should emit no ops, got %d", len(dl.Ops))
	}

	u = render.NewUniforms()
	s.ApplyPreset("White", u)
	u.Params["Period"] = 20
	s.Render(dl, render.Viewport{Width: 10, Height: 10}, 10, u)
	if got := dl.Background.Hex(); got != "#000000" {
		t.Fatalf("half period should be dark, got %s", got)
	}
}
