package hotkey

import (
	"sync"

	"golang.design/x/hotkey"
)

type xHotkey struct {
	hk      *hotkey.Hotkey
	pressed chan struct{}
	stop    chan struct{}
	once    sync.Once
}

// New creates a global hotkey for chord using golang.design/x/hotkey
// (X11/Cocoa/Win32).
func New(chord Chord) Hotkey {
	return &xHotkey{
		hk:      hotkey.New(chord.Mods, chord.Key),
		pressed: make(chan struct{}, 1),
		stop:    make(chan struct{}),
	}
}

func (h *xHotkey) Register() error {
	if err := h.hk.Register(); err != nil {
		return err
	}
	go func() {
		for {
			select {
			case <-h.hk.Keydown():
				// Drop the event if the consumer is behind; the hook
				// callback must never block.
				select {
				case h.pressed <- struct{}{}:
				default:
				}
			case <-h.stop:
				return
			}
		}
	}()
	return nil
}

func (h *xHotkey) Unregister() {
	h.once.Do(func() {
		close(h.stop)
		h.hk.Unregister()
	})
}

func (h *xHotkey) Pressed() <-chan struct{} {
	return h.pressed
}
