//go:build darwin || windows

package main

import (
	"os"
	"runtime"

	"golang.design/x/hotkey/mainthread"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	// -gui takes the main thread for the window toolkit and runs the
	// event loop in a goroutine
	if wantsGUI(os.Args[1:]) {
		initGUI()
		return
	}
	mainthread.Init(run)
}
