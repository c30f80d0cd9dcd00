// Package controls maps logical game actions onto physical keys.
package controls

import (
	"fmt"
	"sort"
	"strings"

	"chosenoffset.com/raycaster/internal/render"
)

// Action is something the player can ask for, independent of the key used.
type Action int

const (
	RotateLeft Action = iota
	RotateRight
	MoveForward
	MoveBackward
	ToggleMinimap
	ToggleOutline
	Quit

	actionCount
)

// MaxKeysPerAction bounds how many equivalent keys one action can have.
const MaxKeysPerAction = 3

var actionNames = map[Action]string{
	RotateLeft:    "rotate_left",
	RotateRight:   "rotate_right",
	MoveForward:   "move_forward",
	MoveBackward:  "move_backward",
	ToggleMinimap: "toggle_minimap",
	ToggleOutline: "toggle_outline",
	Quit:          "quit",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// ParseAction resolves a config name such as "move_forward".
func ParseAction(name string) (Action, error) {
	for a, n := range actionNames {
		if strings.EqualFold(n, name) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", name)
}

// Bindings holds the keys bound to each action.
type Bindings struct {
	keys [actionCount][]render.Key
}

// DefaultBindings returns the stock layout: keypad, arrows and WASD for
// movement, M for the minimap, P for the viewport outline, Escape to quit.
func DefaultBindings() *Bindings {
	b := &Bindings{}
	b.keys[RotateLeft] = []render.Key{render.KeyKP4, render.KeyLeft, render.KeyA}
	b.keys[RotateRight] = []render.Key{render.KeyKP6, render.KeyRight, render.KeyD}
	b.keys[MoveForward] = []render.Key{render.KeyKP8, render.KeyUp, render.KeyW}
	b.keys[MoveBackward] = []render.Key{render.KeyKP2, render.KeyDown, render.KeyS}
	b.keys[ToggleMinimap] = []render.Key{render.KeyM}
	b.keys[ToggleOutline] = []render.Key{render.KeyP}
	b.keys[Quit] = []render.Key{render.KeyEscape}
	return b
}

// ParseBindings starts from the defaults and replaces the keys of every
// action named in overrides.
func ParseBindings(overrides map[string][]string) (*Bindings, error) {
	b := DefaultBindings()

	// Sorted so the first error reported is stable.
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		action, err := ParseAction(name)
		if err != nil {
			return nil, err
		}
		keyNames := overrides[name]
		if len(keyNames) == 0 || len(keyNames) > MaxKeysPerAction {
			return nil, fmt.Errorf("action %s: expected 1 to %d keys, got %d", action, MaxKeysPerAction, len(keyNames))
		}
		keys := make([]render.Key, 0, len(keyNames))
		for _, kn := range keyNames {
			k, err := render.ParseKey(kn)
			if err != nil {
				return nil, fmt.Errorf("action %s: %w", action, err)
			}
			keys = append(keys, k)
		}
		b.keys[action] = keys
	}
	return b, nil
}

// Keys returns the keys bound to an action.
func (b *Bindings) Keys(a Action) []render.Key {
	return b.keys[a]
}

// Held reports whether any key bound to the action is down.
func (b *Bindings) Held(in render.InputManager, a Action) bool {
	for _, k := range b.keys[a] {
		if in.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

// JustPressed reports whether any key bound to the action went down this tick.
func (b *Bindings) JustPressed(in render.InputManager, a Action) bool {
	for _, k := range b.keys[a] {
		if in.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}
