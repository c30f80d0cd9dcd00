package main

import (
	"sort"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/raycaster/internal/config"
	"chosenoffset.com/raycaster/internal/render"
	ebitenrender "chosenoffset.com/raycaster/internal/render/ebiten"
	"chosenoffset.com/raycaster/internal/render/raster"
	"chosenoffset.com/raycaster/internal/render/terminal"
)

// backendFunc creates an engine and the input manager that feeds it.
type backendFunc func(cfg *config.Config, opts *options, log logrus.FieldLogger) (render.Engine, render.InputManager, error)

var backends = map[string]backendFunc{
	"ebiten": func(cfg *config.Config, _ *options, _ logrus.FieldLogger) (render.Engine, render.InputManager, error) {
		return ebitenrender.NewEngine(cfg.Window.TPS, cfg.Log.Level == "debug"), ebitenrender.NewInputManager(), nil
	},
	"terminal": func(cfg *config.Config, _ *options, log logrus.FieldLogger) (render.Engine, render.InputManager, error) {
		e := terminal.NewEngine(cfg.Window.TPS, log)
		return e, e.Input(), nil
	},
	"snapshot": func(_ *config.Config, opts *options, log logrus.FieldLogger) (render.Engine, render.InputManager, error) {
		return raster.NewSnapshotEngine(opts.frames, opts.out, log), raster.NoInput{}, nil
	},
}

func backendNames() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
