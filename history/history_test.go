package history

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestRingCapacity(t *testing.T) {
	r := NewRing(3)
	for i, text := range []string{"one", "two", "three", "four", "five"} {
		r.Add(Entry{Timestamp: "12:00:00", Text: text})
		if r.Len() > 3 {
			t.Fatalf("ring exceeded capacity after %d adds: len=%d", i+1, r.Len())
		}
	}
	got := r.Entries()
	want := []string{"three", "four", "five"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Text != want[i] {
			t.Errorf("entry %d = %q, want %q (oldest must be evicted first)", i, got[i].Text, want[i])
		}
	}
}

func TestRingLatest(t *testing.T) {
	r := NewRing(5)
	if _, ok := r.Latest(); ok {
		t.Error("Latest on empty ring should report not ok")
	}
	r.Add(Entry{Text: "a"})
	r.Add(Entry{Text: "b"})
	e, ok := r.Latest()
	if !ok || e.Text != "b" {
		t.Errorf("Latest = %+v, ok=%v", e, ok)
	}
}

func TestRingEntriesIsCopy(t *testing.T) {
	r := NewRing(2)
	r.Add(Entry{Text: "a"})
	ents := r.Entries()
	ents[0].Text = "mutated"
	if got, _ := r.Latest(); got.Text != "a" {
		t.Error("Entries() must return a copy")
	}
}

func TestRingMinCapacity(t *testing.T) {
	r := NewRing(0)
	r.Add(Entry{Text: "a"})
	r.Add(Entry{Text: "b"})
	if r.Len() != 1 {
		t.Errorf("len = %d, want 1", r.Len())
	}
}

func TestAppendAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.txt")
	ts := time.Date(2025, 3, 14, 9, 26, 53, 0, time.Local)

	for _, text := range []string{"hello world", "second entry"} {
		if err := appendLineAt(path, text, ts); err != nil {
			t.Fatalf("appendLineAt: %v", err)
		}
	}

	entries, err := Load(path, 50)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Text != "hello world" {
		t.Errorf("Text = %q", entries[0].Text)
	}
	if entries[0].Timestamp != "09:26:53" {
		t.Errorf("Timestamp = %q, want HH:MM:SS only", entries[0].Timestamp)
	}
}

func TestLoadFileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.txt")
	if err := AppendLine(path, "check format"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	line := strings.TrimRight(string(data), "\n")
	if !lineRe.MatchString(line) {
		t.Errorf("written line %q does not match the history format", line)
	}
}

func TestLoadSkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.txt")
	content := "garbage\n[2025-01-02 03:04:05] kept\n[bad stamp] dropped\n\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	entries, err := Load(path, 50)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Text != "kept" {
		t.Errorf("entries = %+v, want only the well-formed line", entries)
	}
}

func TestLoadKeepsLastN(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.txt")
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local)
	for i := 0; i < 10; i++ {
		if err := appendLineAt(path, strings.Repeat("x", i+1), base.Add(time.Duration(i)*time.Second)); err != nil {
			t.Fatal(err)
		}
	}
	entries, err := Load(path, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[2].Text != strings.Repeat("x", 10) {
		t.Errorf("last entry = %q, want the newest line", entries[2].Text)
	}
}

func TestLoadMissingFile(t *testing.T) {
	entries, err := Load(filepath.Join(t.TempDir(), "nope.txt"), 10)
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if entries != nil {
		t.Errorf("entries = %v, want nil", entries)
	}
}
