package render

import (
	"fmt"
	"strings"
)

// Key represents a keyboard key.
type Key int

// Key constants for the keys the game binds
const (
	KeyUnknown Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyM
	KeyP
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyKP2
	KeyKP4
	KeyKP6
	KeyKP8
	KeySpace
	KeyEscape

	keyCount
)

var keyNames = map[Key]string{
	KeyW:      "W",
	KeyA:      "A",
	KeyS:      "S",
	KeyD:      "D",
	KeyM:      "M",
	KeyP:      "P",
	KeyUp:     "Up",
	KeyDown:   "Down",
	KeyLeft:   "Left",
	KeyRight:  "Right",
	KeyKP2:    "KP2",
	KeyKP4:    "KP4",
	KeyKP6:    "KP6",
	KeyKP8:    "KP8",
	KeySpace:  "Space",
	KeyEscape: "Escape",
}

// String returns the key name used in config files.
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "Unknown"
}

// AllKeys returns every bindable key, for backends that poll.
func AllKeys() []Key {
	keys := make([]Key, 0, keyCount-1)
	for k := KeyUnknown + 1; k < keyCount; k++ {
		keys = append(keys, k)
	}
	return keys
}

// ParseKey resolves a key name (case-insensitive).
func ParseKey(name string) (Key, error) {
	for k, n := range keyNames {
		if strings.EqualFold(n, name) {
			return k, nil
		}
	}
	return KeyUnknown, fmt.Errorf("unknown key name %q", name)
}
