package main

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/BrenanL/hotmic/clipboard"
	"github.com/BrenanL/hotmic/history"
	"github.com/BrenanL/hotmic/log"
	"github.com/BrenanL/hotmic/paste"
)

// Mode selects where a finished transcript goes.
type Mode int

const (
	// ModePaste copies the transcript to the clipboard and sends a
	// synthetic paste chord to the focused window.
	ModePaste Mode = iota
	// ModeScratch appends the transcript to the scratch file instead
	// of touching the clipboard.
	ModeScratch
)

func (m Mode) String() string {
	if m == ModeScratch {
		return "scratch"
	}
	return "paste"
}

// The window manager needs a moment to observe the clipboard change
// before the synthetic Ctrl+V lands.
const pasteSettle = 120 * time.Millisecond

// Dispatcher routes finished transcripts: every transcript is recorded
// in the history ring and history file, then delivered according to
// the mode in effect at delivery time. Delivery failures are logged
// and swallowed; the transcript is never lost because history has it.
type Dispatcher struct {
	mu          sync.Mutex
	mode        Mode
	ring        *history.Ring
	historyFile string
	scratchFile string
	autoPaste   bool
}

func NewDispatcher(historyFile, scratchFile string, maxHistory int, autoPaste bool) *Dispatcher {
	return &Dispatcher{
		ring:        history.NewRing(maxHistory),
		historyFile: historyFile,
		scratchFile: scratchFile,
		autoPaste:   autoPaste,
	}
}

func (d *Dispatcher) Mode() Mode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mode
}

// ToggleMode flips paste/scratch and returns the new mode.
func (d *Dispatcher) ToggleMode() Mode {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.mode == ModePaste {
		d.mode = ModeScratch
	} else {
		d.mode = ModePaste
	}
	return d.mode
}

// Seed preloads the ring with entries from a previous run.
func (d *Dispatcher) Seed(entries []history.Entry) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, e := range entries {
		d.ring.Add(e)
	}
}

func (d *Dispatcher) Entries() []history.Entry {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ring.Entries()
}

// Deliver records text in history and routes it per the current mode.
// Returns the history entry and whether the text reached the
// clipboard.
func (d *Dispatcher) Deliver(text string) (history.Entry, bool) {
	d.mu.Lock()
	mode := d.mode
	d.mu.Unlock()

	now := time.Now()
	entry := history.Entry{Timestamp: now.Format("15:04:05"), Text: text}

	d.mu.Lock()
	d.ring.Add(entry)
	d.mu.Unlock()

	if err := history.AppendLine(d.historyFile, text); err != nil {
		log.Errorf("history append: %v", err)
	}
	log.TranscriptionText(text)

	copied := false
	switch mode {
	case ModeScratch:
		if err := history.AppendLine(d.scratchFile, text); err != nil {
			log.Errorf("scratch append: %v", err)
		}
	case ModePaste:
		if err := clipboard.Copy(text); err != nil {
			log.Errorf("clipboard copy: %v", err)
			break
		}
		copied = true
		if d.autoPaste {
			time.Sleep(pasteSettle)
			if err := paste.Send(); err != nil {
				log.Errorf("paste keystroke: %v", err)
			}
		}
	}

	return entry, copied
}

// CopyAll joins the ring's transcripts oldest-first and puts them on
// the clipboard.
func (d *Dispatcher) CopyAll() (int, error) {
	entries := d.Entries()
	if len(entries) == 0 {
		return 0, nil
	}
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(e.Text)
	}
	if err := clipboard.Copy(b.String()); err != nil {
		return 0, fmt.Errorf("clipboard copy: %w", err)
	}
	return len(entries), nil
}
