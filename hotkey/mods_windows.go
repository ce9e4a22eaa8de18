//go:build windows

package hotkey

import "golang.design/x/hotkey"

var modByName = map[string]hotkey.Modifier{
	"ctrl":  hotkey.ModCtrl,
	"shift": hotkey.ModShift,
	"alt":   hotkey.ModAlt,
	"super": hotkey.ModWin,
	"win":   hotkey.ModWin,
}
