// Package beep plays short earcons marking recording start and stop.
package beep

var disabled bool

// Disable silences all beeps. Used by the headless test mode.
func Disable() { disabled = true }

const (
	sampleRate = 44100

	// Start: high short tick
	startFreq   = 1200
	startVolume = 0.5
	startDecay  = 60

	// End: slightly lower tick
	endFreq   = 900
	endVolume = 0.5
	endDecay  = 40

	// Error: low double-beep
	errorFreq   = 350
	errorVolume = 0.6
	errorDecay  = 30
)
