package game

import (
	"errors"
	"testing"

	"chosenoffset.com/raycaster/internal/config"
	"chosenoffset.com/raycaster/internal/logging"
	"chosenoffset.com/raycaster/internal/render"
	"chosenoffset.com/raycaster/internal/render/rendertest"
	"chosenoffset.com/raycaster/internal/world/grid"
)

func newGame(t *testing.T, cfg *config.Config, level *grid.Level) (*Game, *rendertest.Input) {
	t.Helper()
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if level == nil {
		level = &grid.Level{Grid: grid.Demo()}
	}
	in := rendertest.NewInput()
	g, err := New(cfg, level, in, logging.Discard())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return g, in
}

func TestNewPlacesPlayerAtConfiguredStart(t *testing.T) {
	g, _ := newGame(t, nil, nil)
	if g.Player.X != 96 || g.Player.Y != 480 {
		t.Errorf("Expected (96, 480), got (%d, %d)", g.Player.X, g.Player.Y)
	}
	if w, h := g.Layout(1280, 960); w != 640 || h != 480 {
		t.Errorf("Expected layout 640x480, got %dx%d", w, h)
	}
}

func TestLevelSpawnOverridesConfig(t *testing.T) {
	level := &grid.Level{
		Grid:  grid.Demo(),
		Spawn: &grid.SpawnPoint{X: 5, Y: 6, Angle: 480},
	}
	g, _ := newGame(t, nil, level)
	if g.Player.X != 352 || g.Player.Y != 416 || g.Player.Angle != 480 {
		t.Errorf("Expected (352, 416) facing 480, got (%d, %d) facing %d", g.Player.X, g.Player.Y, g.Player.Angle)
	}
}

func TestNewRejectsStartInWall(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Player.StartCellX, cfg.Player.StartCellY = 3, 2

	_, err := New(cfg, &grid.Level{Grid: grid.Demo()}, rendertest.NewInput(), logging.Discard())
	if !errors.Is(err, grid.ErrStartInWall) {
		t.Errorf("Expected ErrStartInWall, got %v", err)
	}
}

func TestDrawViewAndMinimap(t *testing.T) {
	g, in := newGame(t, nil, nil)
	s := rendertest.NewSurface(640, 480)

	g.Draw(s)
	if n := len(s.Filter(rendertest.OpVerticalLine)); n != 320 {
		t.Errorf("Expected 320 wall slivers, got %d", n)
	}
	if n := len(s.Filter(rendertest.OpRect)); n != 2+16*16 {
		t.Errorf("Expected %d rects, got %d", 2+16*16, n)
	}
	if n := len(s.Filter(rendertest.OpLine)); n != 320 {
		t.Errorf("Expected one minimap ray per column, got %d", n)
	}
	if pts := s.Filter(rendertest.OpPoint); len(pts) != 1 || pts[0].X1 != 320+24 || pts[0].Y1 != 120 {
		t.Errorf("Expected the viewer at (344, 120), got %+v", pts)
	}

	in.JustPressed[render.KeyM] = true
	if err := g.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	s.Reset()
	g.Draw(s)
	if n := len(s.Filter(rendertest.OpRect)); n != 2 {
		t.Errorf("Expected only the ceiling and floor rects with the map hidden, got %d", n)
	}
	if n := len(s.Filter(rendertest.OpLine)); n != 0 {
		t.Errorf("Expected no ray lines with the map hidden, got %d", n)
	}
}

func TestOutlineToggle(t *testing.T) {
	g, in := newGame(t, nil, nil)
	in.JustPressed[render.KeyP] = true
	g.Update()
	if !g.Caster.Outline() {
		t.Error("Expected the outline to be enabled")
	}
}

func TestMinimapClickMovesPlayer(t *testing.T) {
	g, in := newGame(t, nil, nil)

	in.Click(320+5*16+8, 6*16+8)
	g.Update()
	if g.Player.X != 352 || g.Player.Y != 416 {
		t.Fatalf("Expected (352, 416), got (%d, %d)", g.Player.X, g.Player.Y)
	}

	// Wall cell (3, 2) is ignored.
	in.Click(320+3*16+4, 2*16+4)
	g.Update()
	if g.Player.X != 352 || g.Player.Y != 416 {
		t.Errorf("Expected a wall click to be ignored, got (%d, %d)", g.Player.X, g.Player.Y)
	}

	g.ShowMinimap = false
	in.Click(320+1*16+8, 1*16+8)
	g.Update()
	if g.Player.X != 352 || g.Player.Y != 416 {
		t.Errorf("Expected clicks to be ignored with the map hidden, got (%d, %d)", g.Player.X, g.Player.Y)
	}
}

func TestManagerQuit(t *testing.T) {
	g, in := newGame(t, nil, nil)
	m := NewManager(g, in, logging.Discard())

	if err := m.Update(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	in.Press(render.KeyEscape)
	if err := m.Update(); !errors.Is(err, render.ErrQuit) {
		t.Errorf("Expected ErrQuit on Escape, got %v", err)
	}

	in.Release(render.KeyEscape)
	in.Quit = true
	if err := m.Update(); !errors.Is(err, render.ErrQuit) {
		t.Errorf("Expected ErrQuit on window close, got %v", err)
	}
}

func TestManagerPauseFreezesGame(t *testing.T) {
	g, in := newGame(t, nil, nil)
	m := NewManager(g, in, logging.Discard())
	in.Press(render.KeyW)

	in.Pause = true
	m.Update()
	if m.State != StatePaused {
		t.Fatalf("Expected %v, got %v", StatePaused, m.State)
	}
	if g.Player.X != 96 || g.FrameCount != 0 {
		t.Errorf("Expected no movement while paused, got x %d after %d frames", g.Player.X, g.FrameCount)
	}

	in.Pause = false
	m.Update()
	if m.State != StatePlaying {
		t.Fatalf("Expected %v, got %v", StatePlaying, m.State)
	}
	if g.Player.X != 104 {
		t.Errorf("Expected x 104 after one step east, got %d", g.Player.X)
	}
}

func TestWalkingEastStopsAtWall(t *testing.T) {
	g, in := newGame(t, nil, nil)
	in.Press(render.KeyUp)

	for i := 0; i < 400; i++ {
		if err := g.Update(); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
	}
	// Row 7 is open up to the east border at column 15.
	if g.Player.X != 15*64-32 {
		t.Errorf("Expected x %d against the east border, got %d", 15*64-32, g.Player.X)
	}
}
