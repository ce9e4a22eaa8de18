//go:build gui

// Package gui shows a tiny always-on-top recording indicator. It is
// compiled in with -tags gui; the default build uses the terminal UI.
package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/go-gl/glfw/v3.3/glfw"
)

type App struct {
	fyneApp fyne.App
	window  fyne.Window
	dot     *DotWidget
	onReady func()
	posX    int
	posY    int
}

func NewApp(onReady func()) *App {
	return &App{onReady: onReady}
}

// Run takes over the main thread with the Fyne event loop. onReady is
// started on a goroutine once the window exists.
func Run(a *App) error {
	a.fyneApp = app.NewWithID("io.hotmic.gui")
	a.fyneApp.Settings().SetTheme(&darkTheme{})

	var screenW, screenH int
	monitor := glfw.GetPrimaryMonitor()
	if monitor != nil {
		_, _, screenW, screenH = monitor.GetWorkarea()
	} else {
		screenW, screenH = 1920, 1080
	}

	// Frameless splash window so the indicator floats without chrome
	if drv, ok := a.fyneApp.Driver().(desktop.Driver); ok {
		a.window = drv.CreateSplashWindow()
	} else {
		a.window = a.fyneApp.NewWindow("hotmic")
	}

	a.dot = NewDotWidget()
	a.window.SetContent(a.dot)
	a.window.SetFixedSize(true)
	a.window.SetPadded(false)

	size := a.dot.MinSize()
	a.window.Resize(size)

	// Bottom-center, clear of the dock/taskbar
	a.posX = (screenW - int(size.Width)) / 2
	a.posY = screenH - int(size.Height) - 20

	go a.onReady()

	a.fyneApp.Run()
	return nil
}

func (a *App) Quit() {
	if a.fyneApp != nil {
		a.fyneApp.Quit()
	}
}

func (a *App) Show() {
	fyne.Do(func() {
		if a.window == nil {
			return
		}
		if glfwWin := glfw.GetCurrentContext(); glfwWin != nil {
			glfwWin.SetPos(a.posX, a.posY)
			// never steal focus from the window being dictated into
			glfwWin.SetAttrib(glfw.FocusOnShow, glfw.False)
			glfwWin.SetAttrib(glfw.Floating, glfw.True)
			glfwWin.Show()
		} else {
			a.window.Show()
		}
	})
}

func (a *App) Hide() {
	fyne.Do(func() {
		if a.window != nil {
			a.window.Hide()
		}
	})
}

// State hooks wired from the session controller.

func (a *App) Idle() {
	a.dot.SetIdle()
	a.Hide()
}

func (a *App) Recording() {
	a.dot.SetRecording()
	a.Show()
}

func (a *App) Processing() {
	a.dot.SetProcessing()
	a.Show()
}
