// Package rendertest provides a recording Surface and a scripted
// InputManager for tests.
package rendertest

import (
	"image/color"

	"chosenoffset.com/raycaster/internal/render"
)

// OpKind identifies a recorded draw call.
type OpKind int

const (
	OpClear OpKind = iota
	OpLine
	OpPoint
	OpRect
	OpVerticalLine
	OpPresent
)

// Op is one recorded draw call together with the color active at the time.
type Op struct {
	Kind   OpKind
	Color  color.Color
	Style  render.RectStyle
	X1, Y1 int
	X2, Y2 int
	Height int // vertical lines only
}

// Surface records every draw call instead of drawing.
type Surface struct {
	Width, Height int
	Ops           []Op

	current color.Color
}

// NewSurface creates a recorder reporting the given size.
func NewSurface(width, height int) *Surface {
	return &Surface{Width: width, Height: height, current: color.Black}
}

func (s *Surface) Size() (int, int) { return s.Width, s.Height }

func (s *Surface) SetColor(clr color.Color) { s.current = clr }

func (s *Surface) Clear() {
	s.Ops = append(s.Ops, Op{Kind: OpClear, Color: s.current})
}

func (s *Surface) DrawLine(x1, y1, x2, y2 int) {
	s.Ops = append(s.Ops, Op{Kind: OpLine, Color: s.current, X1: x1, Y1: y1, X2: x2, Y2: y2})
}

func (s *Surface) DrawPoint(x, y int) {
	s.Ops = append(s.Ops, Op{Kind: OpPoint, Color: s.current, X1: x, Y1: y})
}

func (s *Surface) DrawRect(style render.RectStyle, left, top, right, bottom int) {
	s.Ops = append(s.Ops, Op{Kind: OpRect, Color: s.current, Style: style, X1: left, Y1: top, X2: right, Y2: bottom})
}

func (s *Surface) DrawVerticalLine(x, top, height int) {
	s.Ops = append(s.Ops, Op{Kind: OpVerticalLine, Color: s.current, X1: x, Y1: top, Height: height})
}

func (s *Surface) Present() {
	s.Ops = append(s.Ops, Op{Kind: OpPresent, Color: s.current})
}

// Reset drops the recorded calls.
func (s *Surface) Reset() {
	s.Ops = s.Ops[:0]
}

// Filter returns the recorded calls of one kind, in order.
func (s *Surface) Filter(kind OpKind) []Op {
	var out []Op
	for _, op := range s.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Input is an InputManager whose state is set directly by the test.
type Input struct {
	Held        map[render.Key]bool
	JustPressed map[render.Key]bool
	Buttons     map[render.MouseButton]bool
	CursorX     int
	CursorY     int
	Quit        bool
	Pause       bool
}

// NewInput returns an Input with nothing held.
func NewInput() *Input {
	return &Input{
		Held:        make(map[render.Key]bool),
		JustPressed: make(map[render.Key]bool),
		Buttons:     make(map[render.MouseButton]bool),
	}
}

// Press marks keys as held.
func (in *Input) Press(keys ...render.Key) {
	for _, k := range keys {
		in.Held[k] = true
	}
}

// Release clears held keys.
func (in *Input) Release(keys ...render.Key) {
	for _, k := range keys {
		delete(in.Held, k)
	}
}

// Click holds the left button at the given position.
func (in *Input) Click(x, y int) {
	in.CursorX, in.CursorY = x, y
	in.Buttons[render.MouseButtonLeft] = true
}

func (in *Input) IsKeyPressed(key render.Key) bool     { return in.Held[key] }
func (in *Input) IsKeyJustPressed(key render.Key) bool { return in.JustPressed[key] }
func (in *Input) GetCursorPosition() (int, int)        { return in.CursorX, in.CursorY }
func (in *Input) IsMouseButtonPressed(b render.MouseButton) bool {
	return in.Buttons[b]
}
func (in *Input) QuitRequested() bool  { return in.Quit }
func (in *Input) PauseRequested() bool { return in.Pause }
