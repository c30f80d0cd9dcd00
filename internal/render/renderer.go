package render

import (
	"errors"
	"image/color"
)

var (
	// ErrSurfaceInit is returned when a backend cannot create its drawing surface.
	ErrSurfaceInit = errors.New("surface initialization failed")
	// ErrInputInit is returned when a backend cannot set up input handling.
	ErrInputInit = errors.New("input initialization failed")
	// ErrQuit is returned from Game.Update to end the run loop cleanly.
	ErrQuit = errors.New("quit requested")
)

// RectStyle selects between outlined and filled rectangles.
type RectStyle int

const (
	RectOutline RectStyle = iota
	RectFill
)

// Surface is the drawing interface the game draws a frame through. It
// abstracts the underlying graphics backend so the ray caster never touches
// a window or terminal directly.
type Surface interface {
	// Size returns the logical drawing area in pixels.
	Size() (width, height int)

	// SetColor selects the color used by every following draw call.
	SetColor(clr color.Color)

	// Clear fills the whole surface with the current color.
	Clear()

	// Line and point operations
	DrawLine(x1, y1, x2, y2 int)
	DrawPoint(x, y int)

	// DrawRect draws the rectangle spanning [left, right) x [top, bottom).
	DrawRect(style RectStyle, left, top, right, bottom int)

	// DrawVerticalLine draws a one pixel wide column starting at top.
	DrawVerticalLine(x, top, height int)

	// Present makes the finished frame visible. Backends that present on
	// their own schedule treat this as a no-op.
	Present()
}

// InputManager handles input from the user (keyboard, mouse, window).
type InputManager interface {
	IsKeyPressed(key Key) bool
	IsKeyJustPressed(key Key) bool
	GetCursorPosition() (x, y int)
	IsMouseButtonPressed(button MouseButton) bool

	// QuitRequested reports a window close or an equivalent request.
	QuitRequested() bool

	// PauseRequested reports that the window lost focus.
	PauseRequested() bool
}

// MouseButton represents a mouse button.
type MouseButton int

// Mouse button constants
const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// Game represents the game interface that the engine will call.
type Game interface {
	// Update advances the game by one tick. Returning ErrQuit ends the loop
	// without an error.
	Update() error

	// Draw draws one frame onto the surface.
	Draw(screen Surface)

	// Layout accepts the outside size (e.g., window size) and returns the logical screen size.
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine represents the backend that owns the window (or terminal) and the
// game loop.
type Engine interface {
	// SetWindowSize sets the window size in pixels.
	SetWindowSize(width, height int)

	// SetWindowTitle sets the window title.
	SetWindowTitle(title string)

	// SetWindowResizable enables or disables window resizing.
	SetWindowResizable(resizable bool)

	// RunGame runs the game loop with the provided game.
	// This is a blocking call that runs until the game ends.
	RunGame(game Game) error
}
