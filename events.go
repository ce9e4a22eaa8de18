package main

import "github.com/BrenanL/hotmic/history"

// EventSink abstracts the display layer so the Bubble Tea TUI, the
// Fyne indicator and the headless test driver all receive the same
// session events. Methods are called from worker goroutines and must
// not block.
type EventSink interface {
	StatusChanged(s Status)
	LiveText(text string)
	Transcript(e history.Entry, copied bool)
	ModeChanged(m Mode)
	Notice(text string)
}

// nopSink drops everything. Used when no display layer is attached.
type nopSink struct{}

func (nopSink) StatusChanged(Status)           {}
func (nopSink) LiveText(string)                {}
func (nopSink) Transcript(history.Entry, bool) {}
func (nopSink) ModeChanged(Mode)               {}
func (nopSink) Notice(string)                  {}
