//go:build sdl

// Package sdl implements the render interfaces with SDL2. It needs the SDL2
// development libraries and is only built with the sdl tag.
package sdl

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"

	"chosenoffset.com/raycaster/internal/render"
)

// Surface draws through an SDL renderer.
type Surface struct {
	r *sdl.Renderer
}

func (s *Surface) Size() (int, int) {
	w, h, err := s.r.GetOutputSize()
	if err != nil {
		return 0, 0
	}
	return int(w), int(h)
}

func (s *Surface) SetColor(clr color.Color) {
	c := color.RGBAModel.Convert(clr).(color.RGBA)
	_ = s.r.SetDrawColor(c.R, c.G, c.B, c.A)
}

func (s *Surface) Clear() { _ = s.r.Clear() }

func (s *Surface) DrawLine(x1, y1, x2, y2 int) {
	_ = s.r.DrawLine(int32(x1), int32(y1), int32(x2), int32(y2))
}

func (s *Surface) DrawPoint(x, y int) { _ = s.r.DrawPoint(int32(x), int32(y)) }

func (s *Surface) DrawRect(style render.RectStyle, left, top, right, bottom int) {
	rect := &sdl.Rect{X: int32(left), Y: int32(top), W: int32(right - left), H: int32(bottom - top)}
	if style == render.RectFill {
		_ = s.r.FillRect(rect)
		return
	}
	_ = s.r.DrawRect(rect)
}

func (s *Surface) DrawVerticalLine(x, top, height int) {
	if height <= 0 {
		return
	}
	_ = s.r.FillRect(&sdl.Rect{X: int32(x), Y: int32(top), W: 1, H: int32(height)})
}

func (s *Surface) Present() { s.r.Present() }

// Input polls SDL keyboard and mouse state.
type Input struct {
	justPressed map[sdl.Scancode]bool
	quit        bool
	paused      bool
}

func newInput() *Input {
	return &Input{justPressed: make(map[sdl.Scancode]bool)}
}

// pump drains the SDL event queue.
func (in *Input) pump() {
	clear(in.justPressed)
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch e := ev.(type) {
		case *sdl.QuitEvent:
			in.quit = true
		case *sdl.KeyboardEvent:
			if e.State == sdl.PRESSED && e.Repeat == 0 {
				in.justPressed[e.Keysym.Scancode] = true
			}
		case *sdl.WindowEvent:
			switch e.Event {
			case sdl.WINDOWEVENT_FOCUS_LOST:
				in.paused = true
			case sdl.WINDOWEVENT_FOCUS_GAINED:
				in.paused = false
			}
		}
	}
}

func (in *Input) IsKeyPressed(key render.Key) bool {
	code, ok := scancodes[key]
	return ok && sdl.GetKeyboardState()[code] == 1
}

func (in *Input) IsKeyJustPressed(key render.Key) bool {
	code, ok := scancodes[key]
	return ok && in.justPressed[code]
}

func (in *Input) GetCursorPosition() (int, int) {
	x, y, _ := sdl.GetMouseState()
	return int(x), int(y)
}

func (in *Input) IsMouseButtonPressed(button render.MouseButton) bool {
	_, _, state := sdl.GetMouseState()
	var b uint32
	switch button {
	case render.MouseButtonRight:
		b = sdl.BUTTON_RIGHT
	case render.MouseButtonMiddle:
		b = sdl.BUTTON_MIDDLE
	default:
		b = sdl.BUTTON_LEFT
	}
	return state&(1<<(b-1)) != 0
}

func (in *Input) QuitRequested() bool  { return in.quit }
func (in *Input) PauseRequested() bool { return in.paused }

var scancodes = map[render.Key]sdl.Scancode{
	render.KeyW:      sdl.SCANCODE_W,
	render.KeyA:      sdl.SCANCODE_A,
	render.KeyS:      sdl.SCANCODE_S,
	render.KeyD:      sdl.SCANCODE_D,
	render.KeyM:      sdl.SCANCODE_M,
	render.KeyP:      sdl.SCANCODE_P,
	render.KeyUp:     sdl.SCANCODE_UP,
	render.KeyDown:   sdl.SCANCODE_DOWN,
	render.KeyLeft:   sdl.SCANCODE_LEFT,
	render.KeyRight:  sdl.SCANCODE_RIGHT,
	render.KeyKP2:    sdl.SCANCODE_KP_2,
	render.KeyKP4:    sdl.SCANCODE_KP_4,
	render.KeyKP6:    sdl.SCANCODE_KP_6,
	render.KeyKP8:    sdl.SCANCODE_KP_8,
	render.KeySpace:  sdl.SCANCODE_SPACE,
	render.KeyEscape: sdl.SCANCODE_ESCAPE,
}

// Engine owns the SDL window and the frame loop.
type Engine struct {
	width, height int
	title         string
	tps           int
	log           logrus.FieldLogger

	input *Input
}

// NewEngine creates an SDL engine ticking tps times per second.
func NewEngine(tps int, log logrus.FieldLogger) *Engine {
	if tps <= 0 {
		tps = 30
	}
	return &Engine{tps: tps, log: log, input: newInput()}
}

// Input returns the engine's InputManager.
func (e *Engine) Input() render.InputManager { return e.input }

func (e *Engine) SetWindowSize(width, height int) { e.width, e.height = width, height }
func (e *Engine) SetWindowTitle(title string)     { e.title = title }
func (e *Engine) SetWindowResizable(bool)         {}

// RunGame opens the window and runs until the game quits.
func (e *Engine) RunGame(game render.Game) error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("%w: %w", render.ErrSurfaceInit, err)
	}
	defer sdl.Quit()

	w, h := game.Layout(e.width, e.height)
	window, renderer, err := sdl.CreateWindowAndRenderer(int32(w), int32(h), sdl.WINDOW_SHOWN)
	if err != nil {
		return fmt.Errorf("%w: %w", render.ErrSurfaceInit, err)
	}
	defer window.Destroy()
	defer renderer.Destroy()
	window.SetTitle(e.title)

	e.log.WithField("size", fmt.Sprintf("%dx%d", w, h)).Info("SDL backend started.")

	surface := &Surface{r: renderer}
	frame := time.Second / time.Duration(e.tps)
	for {
		start := time.Now()
		e.input.pump()

		err := game.Update()
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

		if d := frame - time.Since(start); d > 0 {
			sdl.Delay(uint32(d / time.Millisecond))
		}
	}
}
