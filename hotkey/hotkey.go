package hotkey

import (
	"fmt"
	"strings"

	"golang.design/x/hotkey"
)

// Hotkey delivers press events for one global key combination.
type Hotkey interface {
	Register() error
	Unregister()
	Pressed() <-chan struct{}
}

// Chord is a parsed key combination like "ctrl+alt+space".
type Chord struct {
	Mods []hotkey.Modifier
	Key  hotkey.Key

	spec string
}

func (c Chord) String() string { return c.spec }

var keyByName = map[string]hotkey.Key{
	"space": hotkey.KeySpace,
	"a":     hotkey.KeyA, "b": hotkey.KeyB, "c": hotkey.KeyC,
	"d": hotkey.KeyD, "e": hotkey.KeyE, "f": hotkey.KeyF,
	"g": hotkey.KeyG, "h": hotkey.KeyH, "i": hotkey.KeyI,
	"j": hotkey.KeyJ, "k": hotkey.KeyK, "l": hotkey.KeyL,
	"m": hotkey.KeyM, "n": hotkey.KeyN, "o": hotkey.KeyO,
	"p": hotkey.KeyP, "q": hotkey.KeyQ, "r": hotkey.KeyR,
	"s": hotkey.KeyS, "t": hotkey.KeyT, "u": hotkey.KeyU,
	"v": hotkey.KeyV, "w": hotkey.KeyW, "x": hotkey.KeyX,
	"y": hotkey.KeyY, "z": hotkey.KeyZ,
	"0": hotkey.Key0, "1": hotkey.Key1, "2": hotkey.Key2,
	"3": hotkey.Key3, "4": hotkey.Key4, "5": hotkey.Key5,
	"6": hotkey.Key6, "7": hotkey.Key7, "8": hotkey.Key8,
	"9": hotkey.Key9,
}

// ParseChord parses a "+"-separated chord spec. All parts but the last must
// be modifier names; the last part is the key. Names are case-insensitive.
func ParseChord(spec string) (Chord, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(spec)), "+")
	if len(parts) < 2 {
		return Chord{}, fmt.Errorf("chord %q needs at least one modifier (e.g. ctrl+alt+space)", spec)
	}

	var mods []hotkey.Modifier
	for _, name := range parts[:len(parts)-1] {
		mod, ok := modByName[strings.TrimSpace(name)]
		if !ok {
			return Chord{}, fmt.Errorf("unknown modifier %q in chord %q", name, spec)
		}
		mods = append(mods, mod)
	}

	keyName := strings.TrimSpace(parts[len(parts)-1])
	key, ok := keyByName[keyName]
	if !ok {
		return Chord{}, fmt.Errorf("unknown key %q in chord %q", keyName, spec)
	}

	return Chord{Mods: mods, Key: key, spec: spec}, nil
}
