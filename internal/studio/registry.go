package studio

import (
	"github.com/coreman2200/funtimes-stcube/internal/render"
	"github.com/coreman2200/funtimes-stcube/internal/render/fake/solid"
	"github.com/coreman2200/funtimes-stcube/internal/render/scenes/calib"
	"github.com/coreman2200/funtimes-stcube/internal/render/scenes/cube"
	"github.com/coreman2200/funtimes-stcube/internal/render/scenes/dashboard"
	"github.com/coreman2200/funtimes-stcube/internal/render/scenes/title"
)

// NewRegistry registers every scene the compositions refer to.
func NewRegistry(th render.Theme) *render.Registry {
	reg := render.NewRegistry()
	reg.Register(title.New("title", th))
	reg.Register(cube.New("cube", th))
	reg.Register(dashboard.New("dashboard", th))
	reg.Register(solid.New("solid", th))
	reg.Register(calib.New("calib", th))
	return reg
}
