package main

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/BrenanL/hotmic/history"
)

func TestModeToggle(t *testing.T) {
	d := NewDispatcher("h.txt", "s.txt", 5, false)
	if d.Mode() != ModePaste {
		t.Fatalf("initial mode = %v, want paste", d.Mode())
	}
	if m := d.ToggleMode(); m != ModeScratch {
		t.Errorf("after toggle = %v, want scratch", m)
	}
	if m := d.ToggleMode(); m != ModePaste {
		t.Errorf("after second toggle = %v, want paste", m)
	}
}

func TestModeString(t *testing.T) {
	if ModePaste.String() != "paste" || ModeScratch.String() != "scratch" {
		t.Errorf("mode strings = %q/%q", ModePaste, ModeScratch)
	}
}

func TestDeliverScratchMode(t *testing.T) {
	dir := t.TempDir()
	historyFile := filepath.Join(dir, "history.txt")
	scratchFile := filepath.Join(dir, "scratchpad.txt")

	d := NewDispatcher(historyFile, scratchFile, 5, false)
	d.ToggleMode() // scratch

	entry, copied := d.Deliver("note to self")

	if copied {
		t.Error("scratch mode should not touch the clipboard")
	}
	if entry.Text != "note to self" {
		t.Errorf("entry text = %q", entry.Text)
	}
	if !regexp.MustCompile(`^\d{2}:\d{2}:\d{2}$`).MatchString(entry.Timestamp) {
		t.Errorf("entry timestamp = %q, want HH:MM:SS", entry.Timestamp)
	}

	scratch, err := os.ReadFile(scratchFile)
	if err != nil {
		t.Fatalf("reading scratch file: %v", err)
	}
	if !strings.Contains(string(scratch), "note to self") {
		t.Errorf("scratch file = %q", scratch)
	}

	hist, err := os.ReadFile(historyFile)
	if err != nil {
		t.Fatalf("reading history file: %v", err)
	}
	if !regexp.MustCompile(`^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\] note to self\n`).Match(hist) {
		t.Errorf("history file = %q, want stamped line", hist)
	}
}

func TestDeliverAlwaysRecordsHistory(t *testing.T) {
	dir := t.TempDir()
	d := NewDispatcher(
		filepath.Join(dir, "history.txt"),
		filepath.Join(dir, "scratchpad.txt"), 3, false)
	d.ToggleMode()

	for _, text := range []string{"one", "two", "three", "four"} {
		d.Deliver(text)
	}

	entries := d.Entries()
	if len(entries) != 3 {
		t.Fatalf("ring holds %d entries, want 3", len(entries))
	}
	if entries[0].Text != "two" || entries[2].Text != "four" {
		t.Errorf("ring = %v, want oldest dropped", entries)
	}

	// The file keeps everything even when the ring evicts
	loaded, err := history.Load(filepath.Join(dir, "history.txt"), 10)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != 4 {
		t.Errorf("file has %d entries, want 4", len(loaded))
	}
}

func TestSeed(t *testing.T) {
	d := NewDispatcher("h.txt", "s.txt", 5, false)
	d.Seed([]history.Entry{
		{Timestamp: "10:00:00", Text: "old one"},
		{Timestamp: "10:01:00", Text: "old two"},
	})
	entries := d.Entries()
	if len(entries) != 2 || entries[1].Text != "old two" {
		t.Errorf("seeded entries = %v", entries)
	}
}

func TestCopyAllEmpty(t *testing.T) {
	d := NewDispatcher("h.txt", "s.txt", 5, false)
	n, err := d.CopyAll()
	if err != nil {
		t.Fatalf("CopyAll on empty ring: %v", err)
	}
	if n != 0 {
		t.Errorf("n = %d, want 0", n)
	}
}

func TestDeliverFileErrorsSwallowed(t *testing.T) {
	// Unwritable paths must not prevent delivery
	d := NewDispatcher("/nonexistent-dir/h.txt", "/nonexistent-dir/s.txt", 5, false)
	d.ToggleMode()
	entry, _ := d.Deliver("survives")
	if entry.Text != "survives" {
		t.Errorf("entry = %v", entry)
	}
	if len(d.Entries()) != 1 {
		t.Error("ring should still record the transcript")
	}
}
