//go:build sdl

package main

import (
	"github.com/sirupsen/logrus"

	"chosenoffset.com/raycaster/internal/config"
	"chosenoffset.com/raycaster/internal/render"
	"chosenoffset.com/raycaster/internal/render/sdl"
)

func init() {
	backends["sdl"] = func(cfg *config.Config, _ *options, log logrus.FieldLogger) (render.Engine, render.InputManager, error) {
		e := sdl.NewEngine(cfg.Window.TPS, log)
		return e, e.Input(), nil
	}
}
