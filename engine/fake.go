package engine

import (
	"sync"
	"time"
)

// Fake is a scripted Engine for tests and the headless test mode. It
// returns canned text after an optional delay and can simulate a slow
// or failed initialization.
type Fake struct {
	mu       sync.Mutex
	ready    bool
	text     string
	err      error
	delay    time.Duration
	partials []string
	cb       Callbacks
	starts   int
	stops    int
}

func NewFake(text string, err error) *Fake {
	return &Fake{ready: true, text: text, err: err}
}

// NewFakeNotReady starts unready; call SetReady to flip it.
func NewFakeNotReady() *Fake {
	return &Fake{}
}

func (f *Fake) SetReady(ready bool)       { f.mu.Lock(); f.ready = ready; f.mu.Unlock() }
func (f *Fake) SetText(text string)       { f.mu.Lock(); f.text = text; f.mu.Unlock() }
func (f *Fake) SetError(err error)        { f.mu.Lock(); f.err = err; f.mu.Unlock() }
func (f *Fake) SetDelay(d time.Duration)  { f.mu.Lock(); f.delay = d; f.mu.Unlock() }
func (f *Fake) SetPartials(p []string)    { f.mu.Lock(); f.partials = p; f.mu.Unlock() }
func (f *Fake) SetCallbacks(cb Callbacks) { f.mu.Lock(); f.cb = cb; f.mu.Unlock() }

func (f *Fake) Starts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.starts
}

func (f *Fake) Stops() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stops
}

func (f *Fake) Ready() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ready
}

func (f *Fake) Start() error {
	f.mu.Lock()
	f.starts++
	partials := f.partials
	cb := f.cb
	f.mu.Unlock()

	if cb.OnRecordingStart != nil {
		go cb.OnRecordingStart()
	}
	if cb.OnRealtimeUpdate != nil {
		go func() {
			for _, p := range partials {
				cb.OnRealtimeUpdate(p)
			}
		}()
	}
	return nil
}

func (f *Fake) Stop() {
	f.mu.Lock()
	f.stops++
	cb := f.cb
	f.mu.Unlock()

	if cb.OnRecordingStop != nil {
		go cb.OnRecordingStop()
	}
}

func (f *Fake) Text(cb func(text string, err error)) {
	f.mu.Lock()
	text, err, delay := f.text, f.err, f.delay
	f.mu.Unlock()

	go func() {
		if delay > 0 {
			time.Sleep(delay)
		}
		cb(text, err)
	}()
}

func (f *Fake) Shutdown() {}
