//go:build linux

package hotkey

import "golang.design/x/hotkey"

// X11 exposes alt as Mod1 and the super key as Mod4.
var modByName = map[string]hotkey.Modifier{
	"ctrl":  hotkey.ModCtrl,
	"shift": hotkey.ModShift,
	"alt":   hotkey.Mod1,
	"super": hotkey.Mod4,
	"win":   hotkey.Mod4,
}
