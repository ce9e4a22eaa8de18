package engine

import (
	"fmt"
	"sync"

	"github.com/BrenanL/hotmic/audio"
	"github.com/BrenanL/hotmic/encoder"
	"github.com/BrenanL/hotmic/log"
)

// Recorder is the production Engine. Construction returns at once;
// audio and provider setup runs in the background so the hotkey is
// live immediately, and Ready flips once the pipeline can record.
type Recorder struct {
	cfg     Config
	cb      Callbacks
	readyCh chan struct{}

	// set by the init goroutine before readyCh closes
	initErr  error
	actx     audio.Context
	provider Provider
	device   *audio.DeviceInfo

	mu      sync.Mutex
	capture audio.CaptureDevice
	session Session

	shutdownOnce sync.Once
}

func New(cfg Config, cb Callbacks) *Recorder {
	r := &Recorder{cfg: cfg, cb: cb, readyCh: make(chan struct{})}
	go r.init(nil, nil)
	return r
}

// NewWithBackends injects an audio context and provider instead of
// probing the host. Initialization still runs asynchronously.
func NewWithBackends(cfg Config, cb Callbacks, actx audio.Context, provider Provider) *Recorder {
	r := &Recorder{cfg: cfg, cb: cb, readyCh: make(chan struct{})}
	go r.init(actx, provider)
	return r
}

func (r *Recorder) init(actx audio.Context, provider Provider) {
	defer close(r.readyCh)

	if actx == nil {
		var err error
		actx, err = audio.NewContext()
		if err != nil {
			r.initErr = fmt.Errorf("audio init: %w", err)
			return
		}
	}
	r.actx = actx

	if provider == nil {
		var err error
		provider, err = NewProvider(r.cfg)
		if err != nil {
			r.initErr = err
			return
		}
	}
	r.provider = provider

	if r.cfg.Device != "" {
		dev, err := audio.FindDevice(actx, r.cfg.Device)
		if err != nil {
			log.Warnf("device lookup failed: %v", err)
		} else if dev == nil {
			log.Warnf("device %q not found, using system default", r.cfg.Device)
		} else {
			r.device = dev
		}
	}

	provider.Warm()
	log.Infof("engine ready: provider=%s device=%s", provider.Name(), r.deviceName())
}

func (r *Recorder) deviceName() string {
	if r.device != nil {
		return r.device.Name
	}
	return "system default"
}

// WaitReady blocks until initialization finishes. Used by the doctor
// command, not by the hotkey path.
func (r *Recorder) WaitReady() error {
	<-r.readyCh
	return r.initErr
}

func (r *Recorder) Ready() bool {
	select {
	case <-r.readyCh:
		return r.initErr == nil
	default:
		return false
	}
}

func (r *Recorder) Start() error {
	if !r.Ready() {
		if r.initErr != nil {
			return fmt.Errorf("engine failed to initialize: %w", r.initErr)
		}
		return fmt.Errorf("engine not ready")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	session, err := r.provider.NewSession(SessionConfig{
		Model:    r.cfg.Model,
		Language: r.cfg.Language,
	})
	if err != nil {
		return fmt.Errorf("opening session: %w", err)
	}

	capture, err := r.actx.NewCapture(r.device, audio.CaptureConfig{
		SampleRate: encoder.SampleRate,
		Channels:   encoder.Channels,
	})
	if err != nil {
		session.Close()
		return fmt.Errorf("opening capture device: %w", err)
	}

	capture.SetCallback(func(data []byte, _ uint32) {
		session.Feed(data)
	})
	if err := capture.Start(); err != nil {
		capture.Close()
		session.Close()
		return fmt.Errorf("starting capture: %w", err)
	}

	go func() {
		for partial := range session.Updates() {
			if r.cb.OnRealtimeUpdate != nil {
				r.cb.OnRealtimeUpdate(partial)
			}
		}
	}()

	r.session = session
	r.capture = capture
	if r.cb.OnRecordingStart != nil {
		go r.cb.OnRecordingStart()
	}
	return nil
}

func (r *Recorder) Stop() {
	r.mu.Lock()
	capture := r.capture
	r.capture = nil
	r.mu.Unlock()

	if capture != nil {
		capture.ClearCallback()
		capture.Stop()
		capture.Close()
		if r.cb.OnRecordingStop != nil {
			go r.cb.OnRecordingStop()
		}
	}
}

func (r *Recorder) Text(cb func(text string, err error)) {
	r.mu.Lock()
	session := r.session
	r.session = nil
	r.mu.Unlock()

	if session == nil {
		cb("", fmt.Errorf("no active session"))
		return
	}

	go func() {
		result, err := session.Close()
		if err != nil {
			cb("", err)
			return
		}
		if result.Batch != nil {
			log.TranscriptionMetrics(log.Metrics{
				AudioLengthS:     result.Batch.AudioLengthS,
				RawSizeKB:        result.Batch.RawSizeKB,
				CompressedSizeKB: result.Batch.CompressedSizeKB,
				EncodeTimeMs:     result.Batch.EncodeTimeMs,
				TotalTimeMs:      result.Batch.TotalTimeMs,
			}, r.provider.Name())
		}
		cb(result.Text, nil)
	}()
}

func (r *Recorder) Shutdown() {
	r.shutdownOnce.Do(func() {
		r.Stop()
		<-r.readyCh
		if r.actx != nil {
			r.actx.Close()
		}
	})
}
