// Package terminal runs the game inside a terminal. Frames are drawn into
// an offscreen raster surface and shown with half-block cells, two surface
// rows per terminal row.
package terminal

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"chosenoffset.com/raycaster/internal/render"
	"chosenoffset.com/raycaster/internal/render/raster"
)

const halfBlock = '▀'

// Engine implements render.Engine on a tcell screen.
type Engine struct {
	width, height int
	title         string
	tps           int
	log           logrus.FieldLogger

	input *Input

	// newScreen is replaced in tests with a simulation screen.
	newScreen func() (tcell.Screen, error)
}

// NewEngine creates a terminal engine ticking tps times per second.
func NewEngine(tps int, log logrus.FieldLogger) *Engine {
	if tps <= 0 {
		tps = 30
	}
	return &Engine{
		tps:       tps,
		log:       log,
		input:     NewInput(DefaultHoldWindow),
		newScreen: tcell.NewScreen,
	}
}

// Input returns the InputManager fed by this engine's event stream.
func (e *Engine) Input() *Input {
	return e.input
}

// SetWindowSize sets the logical surface size passed to Layout.
func (e *Engine) SetWindowSize(width, height int) {
	e.width, e.height = width, height
}

// SetWindowTitle sets the terminal title where supported.
func (e *Engine) SetWindowTitle(title string) {
	e.title = title
}

// SetWindowResizable is a no-op; the terminal decides its own size.
func (e *Engine) SetWindowResizable(bool) {}

// RunGame takes over the terminal until the game quits.
func (e *Engine) RunGame(game render.Game) error {
	screen, err := e.newScreen()
	if err != nil {
		return fmt.Errorf("%w: %w", render.ErrSurfaceInit, err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("%w: %w", render.ErrSurfaceInit, err)
	}
	defer screen.Fini()

	screen.EnableMouse()
	screen.EnableFocus()
	screen.HideCursor()
	if e.title != "" {
		screen.SetTitle(e.title)
	}

	w, h := game.Layout(e.width, e.height)
	surface, err := raster.NewSurface(w, h)
	if err != nil {
		return err
	}
	defer surface.Close()

	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	cols, rows := screen.Size()
	e.log.WithFields(logrus.Fields{
		"cols":    cols,
		"rows":    rows,
		"surface": fmt.Sprintf("%dx%d", w, h),
	}).Info("Terminal backend started.")

	ticker := time.NewTicker(time.Second / time.Duration(e.tps))
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			if _, ok := ev.(*tcell.EventResize); ok {
				screen.Sync()
			}
			cols, rows = screen.Size()
			e.input.Handle(ev, cols, rows, w, h)

		case <-ticker.C:
			err := game.Update()
			e.input.EndTick()
			if errors.Is(err, render.ErrQuit) {
				return nil
			}
			if err != nil {
				return err
			}

			surface.SetColor(color.Black)
			surface.Clear()
			game.Draw(surface)
			surface.Present()
			Present(screen, surface)
		}
	}
}

// Present copies a raster surface to the screen, scaled to the terminal
// size, and shows it.
func Present(screen tcell.Screen, s *raster.Surface) {
	cols, rows := screen.Size()
	if cols <= 0 || rows <= 0 {
		return
	}
	w, h := s.Size()
	for row := 0; row < rows; row++ {
		top := (2 * row) * h / (2 * rows)
		bottom := (2*row + 1) * h / (2 * rows)
		for col := 0; col < cols; col++ {
			x := col * w / cols
			style := tcell.StyleDefault.
				Foreground(toColor(s.At(x, top))).
				Background(toColor(s.At(x, bottom)))
			screen.SetContent(col, row, halfBlock, nil, style)
		}
	}
	screen.Show()
}

func toColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
