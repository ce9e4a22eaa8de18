// Package config loads hotmic settings from a flat TOML file. CLI flags
// override file values; see main.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	// Global hotkey chords.
	RecordHotkey  string `toml:"hotkey"`
	ModeHotkey    string `toml:"mode-hotkey"`
	CopyAllHotkey string `toml:"copy-all-hotkey"`
	HideHotkey    string `toml:"hide-hotkey"`
	QuitHotkey    string `toml:"quit-hotkey"`

	// Transcription engine.
	Provider string `toml:"provider"` // "groq" or "openai"; empty = pick from env
	Model    string `toml:"model"`    // empty = provider default
	Language string `toml:"language"`
	Device   string `toml:"device"` // capture device name; empty = system default

	// Output and history.
	AutoPaste   bool   `toml:"auto-paste"` // start in paste mode
	HistoryFile string `toml:"history-file"`
	ScratchFile string `toml:"scratch-file"`
	MaxHistory  int    `toml:"max-history"`
	LoadHistory bool   `toml:"load-history"`
}

func Default() Config {
	return Config{
		RecordHotkey:  "ctrl+alt+space",
		ModeHotkey:    "ctrl+alt+p",
		CopyAllHotkey: "ctrl+alt+c",
		HideHotkey:    "ctrl+alt+h",
		QuitHotkey:    "ctrl+alt+q",
		Language:      "en",
		AutoPaste:     true,
		HistoryFile:   "history.txt",
		ScratchFile:   "scratchpad.txt",
		MaxHistory:    50,
		LoadHistory:   true,
	}
}

// Resolve returns the config file path to load: the explicit flag value if
// set, else config.toml in the working directory, else the user config dir.
// An empty return means no config file exists and defaults apply.
func Resolve(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	if _, err := os.Stat("config.toml"); err == nil {
		return "config.toml"
	}
	if dir, err := os.UserConfigDir(); err == nil {
		p := filepath.Join(dir, "hotmic", "config.toml")
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Load reads path into a Config on top of the defaults. A missing file is
// not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if cfg.MaxHistory < 1 {
		cfg.MaxHistory = Default().MaxHistory
	}
	return cfg, nil
}
