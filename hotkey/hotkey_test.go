package hotkey

import (
	"testing"

	"golang.design/x/hotkey"
)

func TestParseChord(t *testing.T) {
	c, err := ParseChord("ctrl+alt+space")
	if err != nil {
		t.Fatalf("ParseChord: %v", err)
	}
	if c.Key != hotkey.KeySpace {
		t.Errorf("Key = %v, want KeySpace", c.Key)
	}
	if len(c.Mods) != 2 {
		t.Errorf("got %d modifiers, want 2", len(c.Mods))
	}
	if c.String() != "ctrl+alt+space" {
		t.Errorf("String() = %q", c.String())
	}
}

func TestParseChordCaseAndSpaces(t *testing.T) {
	c, err := ParseChord(" Ctrl + Shift + P ")
	if err != nil {
		t.Fatalf("ParseChord: %v", err)
	}
	if c.Key != hotkey.KeyP {
		t.Errorf("Key = %v, want KeyP", c.Key)
	}
}

func TestParseChordDigitKey(t *testing.T) {
	c, err := ParseChord("ctrl+1")
	if err != nil {
		t.Fatalf("ParseChord: %v", err)
	}
	if c.Key != hotkey.Key1 {
		t.Errorf("Key = %v, want Key1", c.Key)
	}
}

func TestParseChordErrors(t *testing.T) {
	for _, spec := range []string{
		"",
		"space",           // no modifier
		"ctrl+foo",        // unknown key
		"hyper+space",     // unknown modifier
		"ctrl+alt+escape", // unsupported key name
	} {
		if _, err := ParseChord(spec); err == nil {
			t.Errorf("ParseChord(%q): expected error", spec)
		}
	}
}

func TestFakeHotkeyDelivers(t *testing.T) {
	f := NewFake()
	if err := f.Register(); err != nil {
		t.Fatal(err)
	}
	f.SimPress()
	select {
	case <-f.Pressed():
	default:
		t.Fatal("expected buffered press event")
	}
}
