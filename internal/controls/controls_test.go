package controls

import (
	"testing"

	"chosenoffset.com/raycaster/internal/render"
	"chosenoffset.com/raycaster/internal/render/rendertest"
)

func TestDefaultBindingsEquivalentKeys(t *testing.T) {
	b := DefaultBindings()
	in := rendertest.NewInput()

	for _, k := range []render.Key{render.KeyKP8, render.KeyUp, render.KeyW} {
		in.Press(k)
		if !b.Held(in, MoveForward) {
			t.Errorf("Expected %v to move forward", k)
		}
		if b.Held(in, MoveBackward) {
			t.Errorf("Did not expect %v to move backward", k)
		}
		in.Release(k)
	}

	if b.Held(in, MoveForward) {
		t.Error("Expected nothing held after release")
	}
}

func TestJustPressed(t *testing.T) {
	b := DefaultBindings()
	in := rendertest.NewInput()

	in.Press(render.KeyM)
	if b.JustPressed(in, ToggleMinimap) {
		t.Error("Held is not just pressed")
	}
	in.JustPressed[render.KeyM] = true
	if !b.JustPressed(in, ToggleMinimap) {
		t.Error("Expected minimap toggle")
	}
}

func TestParseBindingsOverrides(t *testing.T) {
	b, err := ParseBindings(map[string][]string{
		"move_forward": {"space"},
		"Quit":         {"P", "escape"},
	})
	if err != nil {
		t.Fatalf("ParseBindings failed: %v", err)
	}

	if keys := b.Keys(MoveForward); len(keys) != 1 || keys[0] != render.KeySpace {
		t.Errorf("Expected forward bound to Space, got %v", keys)
	}
	if keys := b.Keys(Quit); len(keys) != 2 || keys[0] != render.KeyP {
		t.Errorf("Expected quit bound to P and Escape, got %v", keys)
	}
	// Untouched actions keep their defaults.
	if keys := b.Keys(RotateLeft); len(keys) != 3 {
		t.Errorf("Expected three rotate left keys, got %v", keys)
	}
}

func TestParseBindingsErrors(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string][]string
	}{
		{"unknown action", map[string][]string{"jump": {"space"}}},
		{"unknown key", map[string][]string{"quit": {"F13"}}},
		{"no keys", map[string][]string{"quit": {}}},
		{"too many keys", map[string][]string{"quit": {"W", "A", "S", "D"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseBindings(tt.overrides); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestActionNamesRoundTrip(t *testing.T) {
	for a := Action(0); a < actionCount; a++ {
		got, err := ParseAction(a.String())
		if err != nil || got != a {
			t.Errorf("Expected %v to parse back, got %v (%v)", a, got, err)
		}
	}
}
