package raster

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/raycaster/internal/render"
)

// SnapshotEngine runs a game headless for a fixed number of frames and
// writes the last one to a PNG file.
type SnapshotEngine struct {
	width, height int
	frames        int
	out           string
	log           logrus.FieldLogger

	last *Surface
}

// NewSnapshotEngine creates an engine that renders frames ticks. An empty
// out path skips writing the image.
func NewSnapshotEngine(frames int, out string, log logrus.FieldLogger) *SnapshotEngine {
	if frames < 1 {
		frames = 1
	}
	return &SnapshotEngine{frames: frames, out: out, log: log}
}

// SetWindowSize sets the size passed to Layout.
func (e *SnapshotEngine) SetWindowSize(width, height int) {
	e.width, e.height = width, height
}

func (e *SnapshotEngine) SetWindowTitle(string)   {}
func (e *SnapshotEngine) SetWindowResizable(bool) {}

// RunGame updates and draws the game frames times, or until it quits.
func (e *SnapshotEngine) RunGame(game render.Game) error {
	w, h := game.Layout(e.width, e.height)
	surface, err := NewSurface(w, h)
	if err != nil {
		return err
	}
	if e.last != nil {
		_ = e.last.Close()
	}
	e.last = surface

	frame := 0
	for ; frame < e.frames; frame++ {
		if err := game.Update(); err != nil {
			if errors.Is(err, render.ErrQuit) {
				break
			}
			return err
		}
		surface.SetColor(color.Black)
		surface.Clear()
		game.Draw(surface)
		surface.Present()
	}

	if e.out != "" {
		if err := surface.SavePNG(e.out); err != nil {
			return fmt.Errorf("failed to write snapshot %s: %w", e.out, err)
		}
	}
	e.log.WithFields(logrus.Fields{
		"frames": frame,
		"size":   fmt.Sprintf("%dx%d", w, h),
		"out":    e.out,
	}).Info("Snapshot finished.")
	return nil
}

// Surface returns the surface of the last run, for inspection.
func (e *SnapshotEngine) Surface() *Surface {
	return e.last
}

// NoInput is an InputManager with nothing ever pressed.
type NoInput struct{}

func (NoInput) IsKeyPressed(render.Key) bool                 { return false }
func (NoInput) IsKeyJustPressed(render.Key) bool             { return false }
func (NoInput) GetCursorPosition() (int, int)                { return 0, 0 }
func (NoInput) IsMouseButtonPressed(render.MouseButton) bool { return false }
func (NoInput) QuitRequested() bool                          { return false }
func (NoInput) PauseRequested() bool                         { return false }
