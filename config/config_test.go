package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.RecordHotkey != "ctrl+alt+space" {
		t.Errorf("RecordHotkey = %q", cfg.RecordHotkey)
	}
	if !cfg.AutoPaste {
		t.Error("AutoPaste should default to true")
	}
	if cfg.MaxHistory != 50 {
		t.Errorf("MaxHistory = %d, want 50", cfg.MaxHistory)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing file should fall back to defaults: %v", err)
	}
	if cfg.HistoryFile != "history.txt" {
		t.Errorf("HistoryFile = %q", cfg.HistoryFile)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
hotkey = "ctrl+shift+d"
language = "de"
auto-paste = false
max-history = 10
load-history = true
provider = "openai"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.RecordHotkey != "ctrl+shift+d" {
		t.Errorf("RecordHotkey = %q", cfg.RecordHotkey)
	}
	if cfg.Language != "de" {
		t.Errorf("Language = %q", cfg.Language)
	}
	if cfg.AutoPaste {
		t.Error("AutoPaste should be overridden to false")
	}
	if cfg.MaxHistory != 10 {
		t.Errorf("MaxHistory = %d", cfg.MaxHistory)
	}
	if !cfg.LoadHistory {
		t.Error("LoadHistory should be true")
	}
	if cfg.Provider != "openai" {
		t.Errorf("Provider = %q", cfg.Provider)
	}
	// Untouched keys keep defaults.
	if cfg.ModeHotkey != "ctrl+alt+p" {
		t.Errorf("ModeHotkey = %q", cfg.ModeHotkey)
	}
}

func TestLoadInvalidHistorySize(t *testing.T) {
	path := writeConfig(t, "max-history = 0\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxHistory != 50 {
		t.Errorf("MaxHistory = %d, want default 50", cfg.MaxHistory)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := writeConfig(t, "hotkey = [broken\n")
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestResolveFlagWins(t *testing.T) {
	if got := Resolve("/tmp/custom.toml"); got != "/tmp/custom.toml" {
		t.Errorf("Resolve = %q", got)
	}
}
