// Package doctor runs interactive checks over everything dictation
// needs: the global hotkey, the microphone, the provider API key and
// the clipboard.
package doctor

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/BrenanL/hotmic/audio"
	"github.com/BrenanL/hotmic/clipboard"
	"github.com/BrenanL/hotmic/encoder"
	"github.com/BrenanL/hotmic/engine"
	"github.com/BrenanL/hotmic/hotkey"
)

// Run executes the checks and returns an exit code, 0 when all pass.
func Run() int {
	resetTerminal()
	setupInterruptHandler()

	fmt.Println("hotmic doctor - system diagnostics")
	fmt.Println("==================================")

	allPass := true

	if !checkHotkey() {
		allPass = false
	}
	if allPass && !checkMicrophone() {
		allPass = false
	}
	if allPass && !checkProvider() {
		allPass = false
	}
	if allPass && !checkClipboard() {
		allPass = false
	}

	fmt.Println()
	if allPass {
		fmt.Println("All checks passed!")
		return 0
	}
	fmt.Println("Some checks failed. See details above.")
	return 1
}

func checkHotkey() bool {
	fmt.Println()
	fmt.Println("[1/4] Hotkey detection")
	fmt.Println("Press Ctrl+Alt+Space...")

	chord, err := hotkey.ParseChord("ctrl+alt+space")
	if err != nil {
		fmt.Printf("  FAIL: %v\n", err)
		return false
	}
	hk := hotkey.New(chord)
	if err := hk.Register(); err != nil {
		fmt.Printf("  FAIL: could not register hotkey: %v\n", err)
		return false
	}
	defer hk.Unregister()

	select {
	case <-hk.Pressed():
		fmt.Println("  PASS: hotkey detected")
		// the grab can leave the terminal in raw mode
		resetTerminal()
		return true
	case <-time.After(10 * time.Second):
		fmt.Println("  FAIL: timeout waiting for hotkey")
		return false
	}
}

func checkMicrophone() bool {
	fmt.Println()
	fmt.Println("[2/4] Microphone capture")

	ctx, err := audio.NewContext()
	if err != nil {
		fmt.Printf("  FAIL: cannot connect to audio: %v\n", err)
		return false
	}
	defer ctx.Close()

	devices, err := ctx.Devices()
	if err != nil {
		fmt.Printf("  FAIL: cannot list devices: %v\n", err)
		return false
	}
	if len(devices) == 0 {
		fmt.Println("  FAIL: no capture devices found")
		return false
	}
	fmt.Printf("  found %d capture device(s), using %q\n", len(devices), devices[0].Name)

	capture, err := ctx.NewCapture(&devices[0], audio.CaptureConfig{
		SampleRate: encoder.SampleRate,
		Channels:   encoder.Channels,
	})
	if err != nil {
		fmt.Printf("  FAIL: cannot open capture device: %v\n", err)
		return false
	}
	defer capture.Close()

	fmt.Println("  recording 2 seconds, say something...")
	var pcm []byte
	done := make(chan struct{})
	capture.SetCallback(func(data []byte, _ uint32) {
		select {
		case <-done:
		default:
			pcm = append(pcm, data...)
		}
	})
	if err := capture.Start(); err != nil {
		fmt.Printf("  FAIL: cannot start capture: %v\n", err)
		return false
	}
	time.Sleep(2 * time.Second)
	capture.Stop()
	close(done)

	if len(pcm) == 0 {
		fmt.Println("  FAIL: no audio received")
		return false
	}

	var sumSquares float64
	n := len(pcm) / 2
	for i := 0; i+1 < len(pcm); i += 2 {
		s := float64(int16(binary.LittleEndian.Uint16(pcm[i:]))) / 32768.0
		sumSquares += s * s
	}
	rms := math.Sqrt(sumSquares / float64(n))
	if rms < 0.001 {
		fmt.Printf("  WARN: audio is nearly silent (rms %.4f), check the mic\n", rms)
	} else {
		fmt.Printf("  PASS: captured %.1fs of audio (rms %.4f)\n",
			float64(n)/float64(encoder.SampleRate), rms)
	}
	return true
}

func checkProvider() bool {
	fmt.Println()
	fmt.Println("[3/4] Transcription provider")

	p, err := engine.NewProvider(engine.Config{})
	if err != nil {
		fmt.Printf("  FAIL: %v\n", err)
		return false
	}
	fmt.Printf("  PASS: provider %s (model %s)\n", p.Name(), p.DefaultModel())
	return true
}

func checkClipboard() bool {
	fmt.Println()
	fmt.Println("[4/4] Clipboard")

	prev, _ := clipboard.Read()
	marker := fmt.Sprintf("hotmic-doctor-%d", os.Getpid())
	if err := clipboard.Copy(marker); err != nil {
		fmt.Printf("  FAIL: clipboard write: %v\n", err)
		return false
	}
	got, err := clipboard.Read()
	if err != nil {
		fmt.Printf("  FAIL: clipboard read: %v\n", err)
		return false
	}
	if got != marker {
		fmt.Printf("  FAIL: clipboard roundtrip mismatch (got %q)\n", got)
		return false
	}
	clipboard.Copy(prev)
	fmt.Println("  PASS: clipboard roundtrip ok")
	return true
}
