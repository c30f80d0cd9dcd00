// Package ebiten implements the render interfaces on top of an Ebiten
// window.
package ebiten

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"chosenoffset.com/raycaster/internal/render"
)

// EbitenSurface implements render.Surface by drawing into an ebiten.Image.
type EbitenSurface struct {
	img *ebiten.Image
	clr color.Color
}

// WrapImage wraps an existing ebiten.Image as a render.Surface.
func WrapImage(img *ebiten.Image) *EbitenSurface {
	return &EbitenSurface{img: img, clr: color.Black}
}

// Size returns the width and height of the image.
func (s *EbitenSurface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// SetColor selects the color for the following draw calls.
func (s *EbitenSurface) SetColor(clr color.Color) {
	s.clr = clr
}

// Clear fills the whole image.
func (s *EbitenSurface) Clear() {
	s.img.Fill(s.clr)
}

// DrawLine strokes a one pixel line through the pixel centers.
func (s *EbitenSurface) DrawLine(x1, y1, x2, y2 int) {
	vector.StrokeLine(s.img, float32(x1)+0.5, float32(y1)+0.5, float32(x2)+0.5, float32(y2)+0.5, 1, s.clr, false)
}

// DrawPoint sets a single pixel.
func (s *EbitenSurface) DrawPoint(x, y int) {
	s.img.Set(x, y, s.clr)
}

// DrawRect draws a filled or outlined rectangle.
func (s *EbitenSurface) DrawRect(style render.RectStyle, left, top, right, bottom int) {
	w, h := float32(right-left), float32(bottom-top)
	if style == render.RectFill {
		vector.DrawFilledRect(s.img, float32(left), float32(top), w, h, s.clr, false)
		return
	}
	vector.StrokeRect(s.img, float32(left)+0.5, float32(top)+0.5, w-1, h-1, 1, s.clr, false)
}

// DrawVerticalLine fills a one pixel wide column.
func (s *EbitenSurface) DrawVerticalLine(x, top, height int) {
	if height <= 0 {
		return
	}
	vector.DrawFilledRect(s.img, float32(x), float32(top), 1, float32(height), s.clr, false)
}

// Present is a no-op: Ebiten presents after Draw returns.
func (s *EbitenSurface) Present() {}

// EbitenInputManager implements the InputManager interface using Ebiten.
type EbitenInputManager struct{}

// NewInputManager creates a new Ebiten-based input manager.
func NewInputManager() render.InputManager {
	return &EbitenInputManager{}
}

// IsKeyPressed returns whether the specified key is currently pressed.
func (m *EbitenInputManager) IsKeyPressed(key render.Key) bool {
	k, ok := keyToEbitenKey(key)
	return ok && ebiten.IsKeyPressed(k)
}

// IsKeyJustPressed returns whether the specified key was just pressed this frame.
func (m *EbitenInputManager) IsKeyJustPressed(key render.Key) bool {
	k, ok := keyToEbitenKey(key)
	return ok && inpututil.IsKeyJustPressed(k)
}

// GetCursorPosition returns the current cursor position.
func (m *EbitenInputManager) GetCursorPosition() (x, y int) {
	return ebiten.CursorPosition()
}

// IsMouseButtonPressed returns whether the specified mouse button is currently pressed.
func (m *EbitenInputManager) IsMouseButtonPressed(button render.MouseButton) bool {
	return ebiten.IsMouseButtonPressed(mouseButtonToEbiten(button))
}

// QuitRequested reports that the window close button was pressed.
func (m *EbitenInputManager) QuitRequested() bool {
	return ebiten.IsWindowBeingClosed()
}

// PauseRequested reports that the window lost focus.
func (m *EbitenInputManager) PauseRequested() bool {
	return !ebiten.IsFocused()
}

// keyToEbitenKey converts a render.Key to an ebiten.Key.
func keyToEbitenKey(key render.Key) (ebiten.Key, bool) {
	switch key {
	case render.KeyW:
		return ebiten.KeyW, true
	case render.KeyA:
		return ebiten.KeyA, true
	case render.KeyS:
		return ebiten.KeyS, true
	case render.KeyD:
		return ebiten.KeyD, true
	case render.KeyM:
		return ebiten.KeyM, true
	case render.KeyP:
		return ebiten.KeyP, true
	case render.KeyUp:
		return ebiten.KeyArrowUp, true
	case render.KeyDown:
		return ebiten.KeyArrowDown, true
	case render.KeyLeft:
		return ebiten.KeyArrowLeft, true
	case render.KeyRight:
		return ebiten.KeyArrowRight, true
	case render.KeyKP2:
		return ebiten.KeyNumpad2, true
	case render.KeyKP4:
		return ebiten.KeyNumpad4, true
	case render.KeyKP6:
		return ebiten.KeyNumpad6, true
	case render.KeyKP8:
		return ebiten.KeyNumpad8, true
	case render.KeySpace:
		return ebiten.KeySpace, true
	case render.KeyEscape:
		return ebiten.KeyEscape, true
	default:
		return 0, false
	}
}

// mouseButtonToEbiten converts a render.MouseButton to an ebiten.MouseButton.
func mouseButtonToEbiten(button render.MouseButton) ebiten.MouseButton {
	switch button {
	case render.MouseButtonRight:
		return ebiten.MouseButtonRight
	case render.MouseButtonMiddle:
		return ebiten.MouseButtonMiddle
	default:
		return ebiten.MouseButtonLeft
	}
}

// EbitenEngine implements the Engine interface using Ebiten.
type EbitenEngine struct {
	tps     int
	showFPS bool
}

// NewEngine creates a new Ebiten-based game engine running at tps updates
// per second. showFPS overlays the measured frame rate.
func NewEngine(tps int, showFPS bool) render.Engine {
	return &EbitenEngine{tps: tps, showFPS: showFPS}
}

// SetWindowSize sets the window size in pixels.
func (e *EbitenEngine) SetWindowSize(width, height int) {
	ebiten.SetWindowSize(width, height)
}

// SetWindowTitle sets the window title.
func (e *EbitenEngine) SetWindowTitle(title string) {
	ebiten.SetWindowTitle(title)
}

// SetWindowResizable enables or disables window resizing.
func (e *EbitenEngine) SetWindowResizable(resizable bool) {
	if resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	} else {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	}
}

// RunGame runs the game loop until the game returns render.ErrQuit or
// fails.
func (e *EbitenEngine) RunGame(game render.Game) error {
	if e.tps > 0 {
		ebiten.SetTPS(e.tps)
	}
	// The close button is reported through QuitRequested instead.
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(&gameAdapter{game: game, showFPS: e.showFPS}); err != nil {
		return fmt.Errorf("ebiten: %w", err)
	}
	return nil
}

// gameAdapter adapts a render.Game to ebiten.Game interface.
type gameAdapter struct {
	game    render.Game
	showFPS bool
}

// Update implements ebiten.Game.
func (a *gameAdapter) Update() error {
	err := a.game.Update()
	if errors.Is(err, render.ErrQuit) {
		return ebiten.Termination
	}
	return err
}

// Draw implements ebiten.Game.
func (a *gameAdapter) Draw(screen *ebiten.Image) {
	a.game.Draw(WrapImage(screen))
	if a.showFPS {
		h := screen.Bounds().Dy()
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS %.0f", ebiten.ActualFPS()), 2, h-16)
	}
}

// Layout implements ebiten.Game.
func (a *gameAdapter) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.game.Layout(outsideWidth, outsideHeight)
}
