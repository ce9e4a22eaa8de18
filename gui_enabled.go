//go:build gui

package main

import (
	"runtime"

	"github.com/BrenanL/hotmic/gui"
	"github.com/BrenanL/hotmic/history"
)

var guiApp *gui.App

// guiSink maps session events onto the floating indicator. Transcript
// text never reaches the GUI; it only shows state.
type guiSink struct{}

func (guiSink) StatusChanged(s Status) {
	switch s {
	case StatusRecording:
		guiApp.Recording()
	case StatusProcessing:
		guiApp.Processing()
	default:
		guiApp.Idle()
	}
}

func (guiSink) LiveText(string)                {}
func (guiSink) Transcript(history.Entry, bool) {}
func (guiSink) ModeChanged(Mode)               {}
func (guiSink) Notice(string)                  {}

func initGUI() {
	guiMode = true

	// Fyne/GLFW needs the main OS thread
	runtime.LockOSThread()

	guiApp = gui.NewApp(func() {
		run()
	})
	sink = guiSink{}
	if err := gui.Run(guiApp); err != nil {
		panic(err)
	}
}
