// Package encoder compresses captured PCM audio before upload.
package encoder

// Capture format shared with the audio pipeline. Transcription APIs
// accept 16 kHz mono, so there is no point recording anything richer.
const (
	SampleRate    = 16000
	Channels      = 1
	BitsPerSample = 16
	BlockSize     = 4096
)

// Duration returns the playback length in seconds of n samples.
func Duration(n uint64) float64 {
	return float64(n) / float64(SampleRate)
}
