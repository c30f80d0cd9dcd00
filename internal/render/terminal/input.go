package terminal

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/raycaster/internal/render"
)

// DefaultHoldWindow is how long a key counts as held after its last press
// or auto-repeat event. Terminals report no key releases.
const DefaultHoldWindow = 150 * time.Millisecond

// Input turns the tcell event stream into the polled InputManager view.
type Input struct {
	holdWindow time.Duration
	now        func() time.Time

	lastPress   map[render.Key]time.Time
	justPressed map[render.Key]bool

	cursorX, cursorY int
	buttons          tcell.ButtonMask

	quit   bool
	paused bool
}

// NewInput creates an Input with the given hold window.
func NewInput(holdWindow time.Duration) *Input {
	return &Input{
		holdWindow:  holdWindow,
		now:         time.Now,
		lastPress:   make(map[render.Key]time.Time),
		justPressed: make(map[render.Key]bool),
	}
}

// Handle records one event. cols and rows are the terminal size and
// width and height the logical surface size, used to map mouse cells back
// to surface pixels.
func (in *Input) Handle(ev tcell.Event, cols, rows, width, height int) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			in.quit = true
			return
		}
		if k := translateKey(ev); k != render.KeyUnknown {
			in.lastPress[k] = in.now()
			in.justPressed[k] = true
		}
	case *tcell.EventMouse:
		col, row := ev.Position()
		if cols > 0 && rows > 0 {
			in.cursorX = col * width / cols
			in.cursorY = row * height / rows
		}
		in.buttons = ev.Buttons()
	case *tcell.EventFocus:
		in.paused = !ev.Focused
	}
}

// EndTick clears the edge-triggered state after the game has seen it.
func (in *Input) EndTick() {
	clear(in.justPressed)
}

func (in *Input) IsKeyPressed(key render.Key) bool {
	t, ok := in.lastPress[key]
	return ok && in.now().Sub(t) < in.holdWindow
}

func (in *Input) IsKeyJustPressed(key render.Key) bool {
	return in.justPressed[key]
}

func (in *Input) GetCursorPosition() (int, int) {
	return in.cursorX, in.cursorY
}

func (in *Input) IsMouseButtonPressed(button render.MouseButton) bool {
	switch button {
	case render.MouseButtonLeft:
		return in.buttons&tcell.Button1 != 0
	case render.MouseButtonRight:
		return in.buttons&tcell.Button2 != 0
	case render.MouseButtonMiddle:
		return in.buttons&tcell.Button3 != 0
	}
	return false
}

func (in *Input) QuitRequested() bool  { return in.quit }
func (in *Input) PauseRequested() bool { return in.paused }

func translateKey(ev *tcell.EventKey) render.Key {
	switch ev.Key() {
	case tcell.KeyUp:
		return render.KeyUp
	case tcell.KeyDown:
		return render.KeyDown
	case tcell.KeyLeft:
		return render.KeyLeft
	case tcell.KeyRight:
		return render.KeyRight
	case tcell.KeyEscape:
		return render.KeyEscape
	case tcell.KeyRune:
		return runeKeys[ev.Rune()]
	}
	return render.KeyUnknown
}

// Keypad digits arrive as plain runes with num lock on.
var runeKeys = map[rune]render.Key{
	'w': render.KeyW, 'W': render.KeyW,
	'a': render.KeyA, 'A': render.KeyA,
	's': render.KeyS, 'S': render.KeyS,
	'd': render.KeyD, 'D': render.KeyD,
	'm': render.KeyM, 'M': render.KeyM,
	'p': render.KeyP, 'P': render.KeyP,
	'2': render.KeyKP2,
	'4': render.KeyKP4,
	'6': render.KeyKP6,
	'8': render.KeyKP8,
	' ': render.KeySpace,
}
