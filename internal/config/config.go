// Package config holds every tunable of the ray caster. Values are loaded
// from a JSON file over the built-in defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/raycaster/internal/controls"
	"chosenoffset.com/raycaster/internal/core/player"
	"chosenoffset.com/raycaster/internal/core/raycast"
	"chosenoffset.com/raycaster/internal/render"
	"chosenoffset.com/raycaster/internal/world/grid"
)

// ErrInvalid is returned by Validate for any out-of-range value.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the whole configuration.
type Config struct {
	Window   WindowConfig        `json:"window"`
	View     ViewConfig          `json:"view"`
	World    WorldConfig         `json:"world"`
	Player   PlayerConfig        `json:"player"`
	Minimap  MinimapConfig       `json:"minimap"`
	Render   RenderConfig        `json:"render"`
	Controls map[string][]string `json:"controls"` // action name -> key names
	Log      LogConfig           `json:"log"`
}

// WindowConfig describes the outer window (or terminal canvas).
type WindowConfig struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Title  string `json:"title"`
	TPS    int    `json:"tps"` // update ticks per second
}

// ViewConfig places the 3D view inside the window.
type ViewConfig struct {
	Left       int     `json:"left"`
	Top        int     `json:"top"`
	Width      int     `json:"width"` // also the number of rays
	Height     int     `json:"height"`
	FOVDegrees int     `json:"fov_degrees"`
	ViewScale  float64 `json:"view_scale"` // K in height = K / distance
	Outline    bool    `json:"outline"`
}

// WorldConfig selects the level.
type WorldConfig struct {
	CellSize  int    `json:"cell_size"`  // power of two
	Level     string `json:"level"`      // JSON level file; empty for the built-in demo
	LevelsDir string `json:"levels_dir"` // searched by -level and -list-levels
}

// PlayerConfig sets the start and the movement speeds.
type PlayerConfig struct {
	StartCellX      int `json:"start_cell_x"`
	StartCellY      int `json:"start_cell_y"`
	StartAngle      int `json:"start_angle"` // in angle units, 0 is east
	WalkSpeed       int `json:"walk_speed"`
	RotationSpeed   int `json:"rotation_speed"`
	CollisionMargin int `json:"collision_margin"`
}

// MinimapConfig controls the diagnostic overhead map.
type MinimapConfig struct {
	Enabled    bool `json:"enabled"`
	ScaleShift int  `json:"scale_shift"` // map cell = cell_size >> scale_shift
	Faces      bool `json:"faces"`       // trace merged wall faces
}

// RenderConfig picks colors and parallelism.
type RenderConfig struct {
	Workers        int                 `json:"workers"` // 0 or 1 casts on the calling goroutine
	Ceiling        render.PaletteIndex `json:"ceiling"`
	Floor          render.PaletteIndex `json:"floor"`
	VerticalWall   render.PaletteIndex `json:"vertical_wall"`
	HorizontalWall render.PaletteIndex `json:"horizontal_wall"`
	Seam           render.PaletteIndex `json:"seam"`
	Outline        render.PaletteIndex `json:"outline"`
}

// LogConfig sets the log level name ("debug", "info", ...).
type LogConfig struct {
	Level string `json:"level"`
}

// DefaultConfig returns the stock setup: a 320x240 view with a 60 degree
// field of view in a 640x480 window, the minimap to its right.
func DefaultConfig() *Config {
	ps := player.DefaultSettings()
	return &Config{
		Window: WindowConfig{
			Width:  640,
			Height: 480,
			Title:  "Raycaster",
			TPS:    30,
		},
		View: ViewConfig{
			Width:      320,
			Height:     240,
			FOVDegrees: 60,
			ViewScale:  15000,
		},
		World: WorldConfig{
			CellSize:  64,
			LevelsDir: "data/levels",
		},
		Player: PlayerConfig{
			StartCellX:      1,
			StartCellY:      7,
			WalkSpeed:       ps.WalkSpeed,
			RotationSpeed:   ps.RotationSpeed,
			CollisionMargin: ps.CollisionMargin,
		},
		Minimap: MinimapConfig{
			Enabled:    true,
			ScaleShift: 2,
		},
		Render: RenderConfig{
			Workers:        1,
			Ceiling:        render.Gray,
			Floor:          render.Brown,
			VerticalWall:   render.LightGreen,
			HorizontalWall: render.DarkGreen,
			Seam:           render.White,
			Outline:        render.DarkRed,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads config from a JSON file. A missing file yields the
// defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every value against the limits of the engine.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Window.TPS <= 0 {
		return fmt.Errorf("%w: tps %d", ErrInvalid, c.Window.TPS)
	}

	v := c.View
	if v.Left < 0 || v.Top < 0 || v.Height <= 0 {
		return fmt.Errorf("%w: viewport at (%d, %d) height %d", ErrInvalid, v.Left, v.Top, v.Height)
	}
	if v.Left+v.Width > c.Window.Width || v.Top+v.Height > c.Window.Height {
		return fmt.Errorf("%w: viewport %dx%d at (%d, %d) does not fit a %dx%d window",
			ErrInvalid, v.Width, v.Height, v.Left, v.Top, c.Window.Width, c.Window.Height)
	}
	if _, err := c.Angles(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if v.ViewScale <= 0 {
		return fmt.Errorf("%w: view scale %g", ErrInvalid, v.ViewScale)
	}

	if !grid.IsPowerOfTwo(c.World.CellSize) || c.World.CellSize < 4 {
		return fmt.Errorf("%w: cell size %d must be a power of two of at least 4", ErrInvalid, c.World.CellSize)
	}
	if err := c.PlayerSettings().Validate(c.World.CellSize); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	if c.Minimap.ScaleShift < 0 || c.Minimap.ScaleShift > grid.Log2(c.World.CellSize) {
		return fmt.Errorf("%w: minimap scale shift %d", ErrInvalid, c.Minimap.ScaleShift)
	}

	if c.Render.Workers < 0 {
		return fmt.Errorf("%w: workers %d", ErrInvalid, c.Render.Workers)
	}
	for name, idx := range map[string]render.PaletteIndex{
		"ceiling":         c.Render.Ceiling,
		"floor":           c.Render.Floor,
		"vertical_wall":   c.Render.VerticalWall,
		"horizontal_wall": c.Render.HorizontalWall,
		"seam":            c.Render.Seam,
		"outline":         c.Render.Outline,
	} {
		if !idx.Valid() {
			return fmt.Errorf("%w: %s color index %d", ErrInvalid, name, int(idx))
		}
	}

	if _, err := c.Bindings(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Angles derives the discrete angle system from the view.
func (c *Config) Angles() (raycast.Angles, error) {
	return raycast.NewAngles(c.View.Width, c.View.FOVDegrees)
}

// Viewport returns the view rectangle.
func (c *Config) Viewport() raycast.Viewport {
	return raycast.Viewport{
		Left:   c.View.Left,
		Top:    c.View.Top,
		Width:  c.View.Width,
		Height: c.View.Height,
	}
}

// CasterOptions converts the view and render sections for the ray caster.
func (c *Config) CasterOptions() raycast.Options {
	return raycast.Options{
		Viewport:   c.Viewport(),
		FOVDegrees: c.View.FOVDegrees,
		CellSize:   c.World.CellSize,
		ViewScale:  c.View.ViewScale,
		Colors: raycast.Colors{
			Ceiling:        c.Render.Ceiling.RGBA(),
			Floor:          c.Render.Floor.RGBA(),
			VerticalWall:   c.Render.VerticalWall.RGBA(),
			HorizontalWall: c.Render.HorizontalWall.RGBA(),
			Seam:           c.Render.Seam.RGBA(),
			Outline:        c.Render.Outline.RGBA(),
		},
		Workers:         c.Render.Workers,
		OutlineViewport: c.View.Outline,
	}
}

// PlayerSettings converts the player section.
func (c *Config) PlayerSettings() player.Settings {
	return player.Settings{
		WalkSpeed:       c.Player.WalkSpeed,
		RotationSpeed:   c.Player.RotationSpeed,
		CollisionMargin: c.Player.CollisionMargin,
	}
}

// Bindings resolves the controls section over the default key layout.
func (c *Config) Bindings() (*controls.Bindings, error) {
	return controls.ParseBindings(c.Controls)
}
