// Package game ties the ray caster, the player and the overlays into the
// per-frame loop the render engines drive.
package game

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/raycaster/internal/config"
	"chosenoffset.com/raycaster/internal/controls"
	"chosenoffset.com/raycaster/internal/core/player"
	"chosenoffset.com/raycaster/internal/core/raycast"
	"chosenoffset.com/raycaster/internal/logging"
	"chosenoffset.com/raycaster/internal/render"
	"chosenoffset.com/raycaster/internal/render/minimap"
	"chosenoffset.com/raycaster/internal/world/grid"
)

// Game holds all game state and logic.
type Game struct {
	ScreenWidth  int
	ScreenHeight int

	Level    *grid.Level
	Caster   *raycast.Caster
	Player   *player.Player
	Minimap  *minimap.Layout
	Bindings *controls.Bindings
	InputMgr render.InputManager

	ShowMinimap bool

	// Debug
	FrameCount int

	log         *logrus.Entry
	wasClicking bool
}

// New builds the caster and places the player for a level. A spawn stored
// with the level wins over the configured start.
func New(cfg *config.Config, level *grid.Level, input render.InputManager, log logrus.FieldLogger) (*Game, error) {
	bindings, err := cfg.Bindings()
	if err != nil {
		return nil, fmt.Errorf("failed to parse key bindings: %w", err)
	}

	caster, err := raycast.NewCaster(level.Grid, cfg.CasterOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to build ray caster: %w", err)
	}

	cellX, cellY, angle := cfg.Player.StartCellX, cfg.Player.StartCellY, cfg.Player.StartAngle
	if level.Spawn != nil {
		cellX, cellY, angle = level.Spawn.X, level.Spawn.Y, level.Spawn.Angle
	}
	p, err := player.New(level.Grid, caster.Metrics(), caster.Angles(), cfg.PlayerSettings(), cellX, cellY, angle)
	if err != nil {
		return nil, fmt.Errorf("failed to place player: %w", err)
	}

	vp := caster.Viewport()
	mm := minimap.New(level.Grid, caster.Metrics(), vp.Right(), vp.Top, cfg.Minimap.ScaleShift)
	mm.ShowFaces = cfg.Minimap.Faces

	g := &Game{
		ScreenWidth:  cfg.Window.Width,
		ScreenHeight: cfg.Window.Height,
		Level:        level,
		Caster:       caster,
		Player:       p,
		Minimap:      mm,
		Bindings:     bindings,
		InputMgr:     input,
		ShowMinimap:  cfg.Minimap.Enabled,
		log:          logging.Component(log, "game"),
	}

	a := caster.Angles()
	g.log.WithFields(logrus.Fields{
		"level":     level.Grid.Name(),
		"cells":     level.Grid.Size(),
		"angle_360": a.A360,
		"rays":      a.RayCount,
		"faces":     len(mm.Faces()),
		"start":     fmt.Sprintf("(%d, %d)", cellX, cellY),
	}).Debug("Game initialized.")
	return g, nil
}

// Update advances the game by one tick: toggles, movement, then collision.
func (g *Game) Update() error {
	g.FrameCount++
	in := g.InputMgr

	if g.Bindings.JustPressed(in, controls.ToggleMinimap) {
		g.ShowMinimap = !g.ShowMinimap
		g.log.WithField("visible", g.ShowMinimap).Debug("Minimap toggled.")
	}
	if g.Bindings.JustPressed(in, controls.ToggleOutline) {
		g.Caster.SetOutline(!g.Caster.Outline())
	}

	// Clicks are only meaningful while the map is on screen.
	var picker player.CellPicker
	if g.ShowMinimap {
		picker = g.Minimap
		g.noteClick(in)
	}

	g.Player.Update(in, g.Bindings, picker)
	if g.Player.CheckCollisions() {
		g.log.WithField("frame", g.FrameCount).Warn("Viewer was inside a wall, respawned at the first cell.")
	}
	return nil
}

// noteClick logs a click on a wall cell once per press.
func (g *Game) noteClick(in render.InputManager) {
	clicking := in.IsMouseButtonPressed(render.MouseButtonLeft)
	if clicking && !g.wasClicking {
		if cx, cy, ok := g.Minimap.CellAt(in.GetCursorPosition()); ok && g.Level.Grid.IsWall(cx, cy) {
			g.log.WithFields(logrus.Fields{"cell_x": cx, "cell_y": cy}).Warn("Ignoring click on a wall cell.")
		}
	}
	g.wasClicking = clicking
}

// Layout returns the fixed logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.ScreenWidth, g.ScreenHeight
}
