//go:build integration

package test_test

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"
)

var testBinary string

func TestMain(m *testing.M) {
	testBinary = os.Getenv("HOTMIC_TEST_BIN")
	if testBinary == "" {
		fmt.Fprintln(os.Stderr, "HOTMIC_TEST_BIN not set; build the binary and export the path")
		os.Exit(1)
	}
	os.Exit(m.Run())
}

func cmds(parts ...string) string {
	return strings.Join(parts, "\n") + "\n"
}

func runBinary(t *testing.T, stdin string) string {
	t.Helper()
	cmd := exec.Command(testBinary, "-test")
	cmd.Stdin = strings.NewReader(stdin)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	done := make(chan error, 1)
	if err := cmd.Start(); err != nil {
		t.Fatalf("starting binary: %v", err)
	}
	go func() { done <- cmd.Wait() }()

	select {
	case <-done:
	case <-time.After(30 * time.Second):
		cmd.Process.Kill()
		t.Fatalf("binary timed out; output so far:\n%s", out.String())
	}
	return out.String()
}

func TestDictationCycle(t *testing.T) {
	out := runBinary(t, cmds(
		"TEXT hello from the mic",
		"TOGGLE",
		"TOGGLE",
		"WAIT",
		"QUIT",
	))
	if !strings.Contains(out, "STATUS RECORDING") {
		t.Errorf("missing recording status:\n%s", out)
	}
	if !strings.Contains(out, "STATUS PROCESSING") {
		t.Errorf("missing processing status:\n%s", out)
	}
	if !strings.Contains(out, "hello from the mic") {
		t.Errorf("missing transcript:\n%s", out)
	}
}

func TestEmptyTranscriptCycle(t *testing.T) {
	out := runBinary(t, cmds(
		"TEXT ",
		"TOGGLE",
		"TOGGLE",
		"WAIT",
		"QUIT",
	))
	if strings.Contains(out, "TRANSCRIPT") {
		t.Errorf("blank recording should not yield a transcript:\n%s", out)
	}
	if !strings.Contains(out, "no speech") {
		t.Errorf("missing no-speech notice:\n%s", out)
	}
}

func TestModeSwitch(t *testing.T) {
	out := runBinary(t, cmds(
		"MODE",
		"TEXT scratch entry",
		"TOGGLE",
		"TOGGLE",
		"WAIT",
		"QUIT",
	))
	if !strings.Contains(out, "MODE scratch") {
		t.Errorf("missing mode switch:\n%s", out)
	}
	if !strings.Contains(out, "scratch entry") {
		t.Errorf("missing transcript:\n%s", out)
	}
}
