// Package engine runs the transcription pipeline: capture PCM from
// the microphone, compress it, ship it to a speech-to-text provider.
package engine

// Config selects the provider and capture device for a Recorder.
type Config struct {
	Provider string // "groq", "openai", or "" for env-based pick
	Model    string // provider model override, "" for the default
	Language string // ISO 639-1 hint passed to the API
	Device   string // capture device name or ID, "" for system default
}

// Callbacks are invoked from engine goroutines. Handlers must be safe
// to call concurrently with the UI loop.
type Callbacks struct {
	OnRealtimeUpdate func(text string)
	OnRecordingStart func()
	OnRecordingStop  func()
}

// Engine is the session-level contract the controller drives. Start
// and Stop bracket one recording; Text delivers the transcript of the
// stopped recording asynchronously.
type Engine interface {
	// Ready reports whether initialization has finished. Start fails
	// until it has.
	Ready() bool
	Start() error
	Stop()
	// Text finalizes the last recording and invokes cb exactly once
	// with the transcript or an error. It must not block.
	Text(cb func(text string, err error))
	Shutdown()
}
