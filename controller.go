package main

import (
	"strings"
	"sync"

	"github.com/BrenanL/hotmic/beep"
	"github.com/BrenanL/hotmic/engine"
	"github.com/BrenanL/hotmic/log"
)

// Status is the session state shown to the user.
type Status int

const (
	StatusIdle Status = iota
	StatusRecording
	StatusProcessing
)

func (s Status) String() string {
	switch s {
	case StatusRecording:
		return "RECORDING"
	case StatusProcessing:
		return "PROCESSING"
	default:
		return "IDLE"
	}
}

// Controller owns the idle/recording/processing cycle. The toggle
// hotkey fires from the hotkey thread while transcripts arrive from
// engine goroutines, so both flags live under one mutex and every
// transition happens inside it. Engine calls run outside the lock on
// worker goroutines; Toggle never blocks.
type Controller struct {
	mu         sync.Mutex
	recording  bool
	processing bool

	eng      engine.Engine
	sink     EventSink
	dispatch *Dispatcher

	shutdownOnce sync.Once
}

func NewController(eng engine.Engine, sink EventSink, dispatch *Dispatcher) *Controller {
	return &Controller{eng: eng, sink: sink, dispatch: dispatch}
}

func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.recording:
		return StatusRecording
	case c.processing:
		return StatusProcessing
	default:
		return StatusIdle
	}
}

// Toggle starts a recording from idle or stops the active one. While
// a transcript is in flight the toggle is ignored; a second session
// cannot begin until the first resolves.
func (c *Controller) Toggle() {
	c.mu.Lock()

	if c.processing {
		c.mu.Unlock()
		c.sink.Notice("still transcribing, hang on")
		return
	}

	if c.recording {
		c.recording = false
		c.processing = true
		c.mu.Unlock()
		c.sink.StatusChanged(StatusProcessing)
		go c.finishRecording()
		return
	}

	if !c.eng.Ready() {
		c.mu.Unlock()
		c.sink.Notice("engine is still loading, try again shortly")
		return
	}

	c.recording = true
	c.mu.Unlock()
	c.sink.StatusChanged(StatusRecording)
	go c.startRecording()
}

func (c *Controller) startRecording() {
	go beep.PlayStart()
	if err := c.eng.Start(); err != nil {
		log.Errorf("recording start: %v", err)
		c.mu.Lock()
		c.recording = false
		c.mu.Unlock()
		c.sink.Notice("could not start recording: " + err.Error())
		c.sink.StatusChanged(StatusIdle)
	}
}

func (c *Controller) finishRecording() {
	go beep.PlayEnd()
	c.eng.Stop()
	c.sink.LiveText("")
	c.eng.Text(c.onFinalText)
}

func (c *Controller) onFinalText(text string, err error) {
	c.mu.Lock()
	c.processing = false
	c.mu.Unlock()

	if err != nil {
		log.Errorf("transcription: %v", err)
		c.sink.Notice("transcription failed: " + err.Error())
		c.sink.StatusChanged(StatusIdle)
		return
	}

	text = strings.TrimSpace(text)
	if text == "" {
		log.Info("no_speech")
		c.sink.Notice("no speech detected")
		c.sink.StatusChanged(StatusIdle)
		return
	}

	entry, copied := c.dispatch.Deliver(text)
	c.sink.Transcript(entry, copied)
	c.sink.StatusChanged(StatusIdle)
}

// Shutdown stops any active recording and releases the engine. Safe
// to call more than once.
func (c *Controller) Shutdown() {
	c.shutdownOnce.Do(func() {
		c.mu.Lock()
		wasRecording := c.recording
		c.recording = false
		c.mu.Unlock()
		if wasRecording {
			c.eng.Stop()
		}
		c.eng.Shutdown()
	})
}
