package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BrenanL/hotmic/beep"
	"github.com/BrenanL/hotmic/config"
	"github.com/BrenanL/hotmic/engine"
	"github.com/BrenanL/hotmic/history"
	"github.com/BrenanL/hotmic/hotkey"
	"github.com/BrenanL/hotmic/log"
)

// stdoutSink prints events as parseable lines for the test driver.
type stdoutSink struct{}

func (stdoutSink) StatusChanged(s Status) { fmt.Printf("STATUS %s\n", s) }
func (stdoutSink) LiveText(text string) {
	if text != "" {
		fmt.Printf("LIVE %s\n", text)
	}
}
func (stdoutSink) Transcript(e history.Entry, copied bool) {
	fmt.Printf("TRANSCRIPT [%s] %s copied=%v\n", e.Timestamp, e.Text, copied)
}
func (stdoutSink) ModeChanged(m Mode) { fmt.Printf("MODE %s\n", m) }
func (stdoutSink) Notice(text string) { fmt.Printf("NOTICE %s\n", text) }

// runTestMode drives the controller from stdin commands with a
// scripted engine, no microphone or API key needed.
//
//	TEXT <s>   set the transcript the engine returns
//	TOGGLE     press the record hotkey
//	MODE       press the mode hotkey
//	COPYALL    copy history to the clipboard
//	WAIT       block until the session is idle again
//	SLEEP <ms> pause the driver
//	QUIT       exit
func runTestMode(cfg config.Config) {
	beep.Disable()

	fake := engine.NewFake("", nil)
	fake.SetCallbacks(engine.Callbacks{
		OnRealtimeUpdate: func(text string) { sink.LiveText(text) },
	})

	sink = stdoutSink{}

	tmpDir, err := os.MkdirTemp("", "hotmic-test")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	dispatcher := NewDispatcher(
		tmpDir+"/history.txt", tmpDir+"/scratchpad.txt", cfg.MaxHistory, false)

	ctrl := NewController(fake, trackingSink{}, dispatcher)
	activeCtrl = ctrl

	hk := hotkey.NewFake()

	go func() {
		for range hk.Pressed() {
			ctrl.Toggle()
		}
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		cmd := strings.TrimSpace(scanner.Text())
		switch {
		case cmd == "TOGGLE":
			hk.SimPress()
			// let the press drain before the next command
			time.Sleep(10 * time.Millisecond)
		case cmd == "MODE":
			mode := dispatcher.ToggleMode()
			sink.ModeChanged(mode)
		case cmd == "COPYALL":
			n, err := dispatcher.CopyAll()
			if err != nil {
				sink.Notice("copy failed: " + err.Error())
			} else {
				sink.Notice("copied " + strconv.Itoa(n) + " transcripts")
			}
		case cmd == "WAIT":
			for ctrl.Status() != StatusIdle {
				time.Sleep(5 * time.Millisecond)
			}
		case cmd == "QUIT":
			log.SessionEnd(sessionCount)
			os.Exit(0)
		case strings.HasPrefix(cmd, "TEXT "):
			fake.SetText(strings.TrimPrefix(cmd, "TEXT "))
		case strings.HasPrefix(cmd, "SLEEP "):
			if ms, err := strconv.Atoi(cmd[6:]); err == nil {
				time.Sleep(time.Duration(ms) * time.Millisecond)
			}
		}
	}
	os.Exit(0)
}
