//go:build darwin

package hotkey

import "golang.design/x/hotkey"

var modByName = map[string]hotkey.Modifier{
	"ctrl":   hotkey.ModCtrl,
	"shift":  hotkey.ModShift,
	"alt":    hotkey.ModOption,
	"option": hotkey.ModOption,
	"super":  hotkey.ModCmd,
	"cmd":    hotkey.ModCmd,
}
