//go:build windows

package beep

// No earcon playback on Windows.

func Init()      {}
func PlayStart() {}
func PlayEnd()   {}
func PlayError() {}
