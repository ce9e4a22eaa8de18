package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strconv"
	"sync"
	"time"

	"github.com/BrenanL/hotmic/audio"
	"github.com/BrenanL/hotmic/config"
	"github.com/BrenanL/hotmic/doctor"
	"github.com/BrenanL/hotmic/engine"
	"github.com/BrenanL/hotmic/history"
	"github.com/BrenanL/hotmic/hotkey"
	"github.com/BrenanL/hotmic/log"
	"github.com/BrenanL/hotmic/paste"
	"github.com/BrenanL/hotmic/shutdown"
)

var version = "dev"

var guiMode bool

var (
	shutdownOnce sync.Once
	sink         EventSink = nopSink{}
	activeCtrl   *Controller
	sessionCount int
	sessionMu    sync.Mutex
)

func countSession() {
	sessionMu.Lock()
	sessionCount++
	sessionMu.Unlock()
}

func gracefulShutdown() {
	shutdownOnce.Do(func() {
		if activeCtrl != nil {
			activeCtrl.Shutdown()
		}
		sessionMu.Lock()
		n := sessionCount
		sessionMu.Unlock()
		if n > 0 {
			log.SessionEnd(n)
		}
		log.Close()
		tuiMu.Lock()
		p := tuiProgram
		tuiMu.Unlock()
		if p != nil {
			p.Quit()
		}
		os.Exit(0)
	})
}

// -gui is consumed by main() before run() parses flags; registered at
// package level so flag.Parse accepts it instead of exiting with
// "flag provided but not defined".
var _ = flag.Bool("gui", false, "Show floating status indicator window (gui build only)")

// wantsGUI is checked before flag.Parse because -gui decides which
// thread owns the window toolkit.
func wantsGUI(args []string) bool {
	for _, arg := range args {
		if arg == "-gui" || arg == "--gui" {
			return true
		}
	}
	return false
}

func headerLineText(cfg config.Config, providerName string) string {
	device := cfg.Device
	if device == "" {
		device = "default mic"
	}
	lang := cfg.Language
	if lang == "" {
		lang = "auto"
	}
	return fmt.Sprintf("[%s (%s) | %s]", providerName, lang, device)
}

func run() {
	configFlag := flag.String("config", "", "Path to config file (default: ./config.toml, then OS config dir)")
	hotkeyFlag := flag.String("hotkey", "", "Toggle recording hotkey (e.g. ctrl+alt+space)")
	modeHotkeyFlag := flag.String("mode-hotkey", "", "Paste/scratch mode toggle hotkey")
	copyAllFlag := flag.String("copyall-hotkey", "", "Copy-all-history hotkey")
	hideHotkeyFlag := flag.String("hide-hotkey", "", "Hide/show overlay hotkey")
	quitHotkeyFlag := flag.String("quit-hotkey", "", "Quit hotkey")
	providerFlag := flag.String("provider", "", "Transcription provider: groq or openai (default: from API keys)")
	modelFlag := flag.String("model", "", "Provider model override")
	langFlag := flag.String("lang", "", "Language code for transcription (e.g. en, es). Empty = auto-detect")
	deviceFlag := flag.String("device", "", "Use named microphone device")
	setupFlag := flag.Bool("setup", false, "Select microphone device interactively")
	autoPasteFlag := flag.Bool("autopaste", true, "Send paste keystroke to focused window after transcription")
	historyFileFlag := flag.String("history-file", "", "Transcript history file path")
	scratchFileFlag := flag.String("scratch-file", "", "Scratch file path for scratch mode")
	maxHistoryFlag := flag.Int("max-history", 0, "Number of transcripts kept in memory")
	loadHistoryFlag := flag.Bool("load-history", true, "Seed the overlay from the history file at startup")
	logPathFlag := flag.String("logpath", "", "Log directory path (default: OS-specific location)")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	doctorFlag := flag.Bool("doctor", false, "Run system diagnostics and exit")
	testFlag := flag.Bool("test", false, "Test mode (headless, stdin-driven)")
	tuiFlag := flag.Bool("tui", true, "Run with terminal UI")
	crashFlag := flag.Bool("crash", false, "Trigger synthetic panic for testing crash logging")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("hotmic %s\n", version)
		os.Exit(0)
	}

	cfgPath := config.Resolve(*configFlag)
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Flags beat the config file, but only the ones actually set
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "hotkey":
			cfg.RecordHotkey = *hotkeyFlag
		case "mode-hotkey":
			cfg.ModeHotkey = *modeHotkeyFlag
		case "copyall-hotkey":
			cfg.CopyAllHotkey = *copyAllFlag
		case "hide-hotkey":
			cfg.HideHotkey = *hideHotkeyFlag
		case "quit-hotkey":
			cfg.QuitHotkey = *quitHotkeyFlag
		case "provider":
			cfg.Provider = *providerFlag
		case "model":
			cfg.Model = *modelFlag
		case "lang":
			cfg.Language = *langFlag
		case "device":
			cfg.Device = *deviceFlag
		case "autopaste":
			cfg.AutoPaste = *autoPasteFlag
		case "history-file":
			cfg.HistoryFile = *historyFileFlag
		case "scratch-file":
			cfg.ScratchFile = *scratchFileFlag
		case "max-history":
			if *maxHistoryFlag > 0 {
				cfg.MaxHistory = *maxHistoryFlag
			}
		case "load-history":
			cfg.LoadHistory = *loadHistoryFlag
		}
	})

	logPath, err := log.ResolveDir(*logPathFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to resolve log directory: %v\n", err)
		os.Exit(1)
	}
	log.SetDir(logPath)
	if err := log.EnsureDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log directory: %v\n", err)
	}

	crashPath := filepath.Join(log.Dir(), "crash_log.txt")
	crashFile, err := os.OpenFile(crashPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		fmt.Fprintf(crashFile, "\n=== Session %s [pid=%d] ===\n",
			time.Now().Format("2006-01-02 15:04:05"), os.Getpid())
		debug.SetCrashOutput(crashFile, debug.CrashOptions{})
	}

	if *crashFlag {
		panic("TEST CRASH: synthetic panic to verify crash logging")
	}

	if *doctorFlag {
		os.Exit(doctor.Run())
	}

	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
	}

	chords, err := parseChords(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *setupFlag && cfg.Device == "" {
		ctx, err := audio.NewContext()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing audio: %v\n", err)
			os.Exit(1)
		}
		if dev, err := audio.SelectDevice(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: device selection failed: %v\n", err)
		} else if dev != nil {
			cfg.Device = dev.Name
		}
		ctx.Close()
	}

	if *testFlag {
		runTestMode(cfg)
		return
	}

	if cfg.AutoPaste {
		if err := paste.Init(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: paste init failed: %v\n", err)
		}
	}

	dispatcher := NewDispatcher(cfg.HistoryFile, cfg.ScratchFile, cfg.MaxHistory, cfg.AutoPaste)
	if cfg.LoadHistory {
		entries, err := history.Load(cfg.HistoryFile, cfg.MaxHistory)
		if err != nil {
			log.Warnf("history load: %v", err)
		} else {
			dispatcher.Seed(entries)
		}
	}

	if *tuiFlag && !guiMode {
		sink = tuiSink{}
	}

	eng := engine.New(engine.Config{
		Provider: cfg.Provider,
		Model:    cfg.Model,
		Language: cfg.Language,
		Device:   cfg.Device,
	}, engine.Callbacks{
		OnRealtimeUpdate: func(text string) { sink.LiveText(text) },
	})

	ctrl := NewController(eng, trackingSink{}, dispatcher)
	activeCtrl = ctrl

	log.SessionStart(cfg.Provider, cfg.Model, cfg.Language)

	if *tuiFlag && !guiMode {
		tuiMu.Lock()
		tuiProgram = NewTUIProgram(cfg.RecordHotkey+" to dictate", cfg.MaxHistory)
		tuiMu.Unlock()

		go func() {
			if _, err := tuiProgram.Run(); err != nil {
				log.Errorf("TUI error: %v", err)
				os.Exit(1)
			}
			gracefulShutdown()
		}()
		<-tuiReady

		tuiSend(HistorySeedMsg{Entries: dispatcher.Entries()})
		tuiSend(ModeMsg{Mode: dispatcher.Mode()})
		tuiSend(HeaderMsg{Text: headerLineText(cfg, providerLabel(cfg))})
	}

	sigChan := make(chan os.Signal, 1)
	shutdown.Notify(sigChan)
	go func() {
		<-sigChan
		gracefulShutdown()
	}()

	eventLoop(ctrl, dispatcher, chords)
}

// trackingSink forwards to the active sink and counts finished
// transcripts for the session summary.
type trackingSink struct{}

func (trackingSink) StatusChanged(s Status) { sink.StatusChanged(s) }
func (trackingSink) LiveText(text string)   { sink.LiveText(text) }
func (trackingSink) Transcript(e history.Entry, copied bool) {
	countSession()
	sink.Transcript(e, copied)
}
func (trackingSink) ModeChanged(m Mode) { sink.ModeChanged(m) }
func (trackingSink) Notice(text string) { sink.Notice(text) }

func providerLabel(cfg config.Config) string {
	if cfg.Provider != "" {
		return cfg.Provider
	}
	if os.Getenv("GROQ_API_KEY") != "" {
		return "groq"
	}
	if os.Getenv("OPENAI_API_KEY") != "" {
		return "openai"
	}
	return "no provider"
}

type chordSet struct {
	toggle  hotkey.Hotkey
	mode    hotkey.Hotkey
	copyAll hotkey.Hotkey
	hide    hotkey.Hotkey
	quit    hotkey.Hotkey
}

func parseChords(cfg config.Config) (*chordSet, error) {
	mk := func(name, spec string) (hotkey.Hotkey, error) {
		chord, err := hotkey.ParseChord(spec)
		if err != nil {
			return nil, fmt.Errorf("%s hotkey: %w", name, err)
		}
		return hotkey.New(chord), nil
	}

	var cs chordSet
	var err error
	if cs.toggle, err = mk("toggle", cfg.RecordHotkey); err != nil {
		return nil, err
	}
	if cs.mode, err = mk("mode", cfg.ModeHotkey); err != nil {
		return nil, err
	}
	if cs.copyAll, err = mk("copy-all", cfg.CopyAllHotkey); err != nil {
		return nil, err
	}
	if cs.hide, err = mk("hide", cfg.HideHotkey); err != nil {
		return nil, err
	}
	if cs.quit, err = mk("quit", cfg.QuitHotkey); err != nil {
		return nil, err
	}
	return &cs, nil
}

func eventLoop(ctrl *Controller, dispatcher *Dispatcher, chords *chordSet) {
	if err := chords.toggle.Register(); err != nil {
		log.Errorf("hotkey register error: %v", err)
		fmt.Fprintf(os.Stderr, "Error registering hotkey: %v\n", err)
		os.Exit(1)
	}
	defer chords.toggle.Unregister()

	// Secondary chords are best-effort; the app still dictates
	// without them.
	for _, hk := range []hotkey.Hotkey{chords.mode, chords.copyAll, chords.hide, chords.quit} {
		if err := hk.Register(); err != nil {
			log.Warnf("hotkey register: %v", err)
			continue
		}
		defer hk.Unregister()
	}

	for {
		select {
		case <-chords.toggle.Pressed():
			ctrl.Toggle()

		case <-chords.mode.Pressed():
			mode := dispatcher.ToggleMode()
			log.Info("mode_switch: " + mode.String())
			sink.ModeChanged(mode)

		case <-chords.copyAll.Pressed():
			n, err := dispatcher.CopyAll()
			if err != nil {
				log.Errorf("copy all: %v", err)
				sink.Notice("copy failed: " + err.Error())
			} else if n == 0 {
				sink.Notice("history is empty")
			} else {
				sink.Notice("copied " + strconv.Itoa(n) + " transcripts")
			}

		case <-chords.hide.Pressed():
			tuiSend(ToggleHideMsg{})

		case <-chords.quit.Pressed():
			gracefulShutdown()
		}
	}
}
