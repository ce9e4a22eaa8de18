package engine

import (
	"encoding/binary"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/BrenanL/hotmic/audio"
	"github.com/BrenanL/hotmic/encoder"
)

func TestNetworkMetricsSum(t *testing.T) {
	m := &NetworkMetrics{
		ConnWait:   10 * time.Millisecond,
		DNS:        20 * time.Millisecond,
		TCP:        30 * time.Millisecond,
		TLS:        40 * time.Millisecond,
		ReqHeaders: 5 * time.Millisecond,
		ReqBody:    15 * time.Millisecond,
		TTFB:       50 * time.Millisecond,
		Download:   25 * time.Millisecond,
	}
	got := m.Sum()
	want := 195 * time.Millisecond
	if got != want {
		t.Errorf("Sum() = %v, want %v", got, want)
	}
}

func TestFirstNonEmpty(t *testing.T) {
	h := http.Header{}
	h.Set("X-Rate-Limit", "100")

	if got := firstNonEmpty(h, "X-Missing", "X-Rate-Limit"); got != "100" {
		t.Errorf("got %q, want %q", got, "100")
	}
	if got := firstNonEmpty(h, "X-A", "X-B"); got != "?" {
		t.Errorf("got %q, want %q", got, "?")
	}
}

func TestNewProviderSelection(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	if _, err := NewProvider(Config{}); err == nil {
		t.Error("expected error with no API keys")
	}
	if _, err := NewProvider(Config{Provider: "groq"}); err == nil {
		t.Error("expected error for groq without GROQ_API_KEY")
	}
	if _, err := NewProvider(Config{Provider: "whisperx"}); err == nil {
		t.Error("expected error for unknown provider")
	}

	t.Setenv("GROQ_API_KEY", "gk")
	p, err := NewProvider(Config{})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	if p.Name() != "groq" {
		t.Errorf("Name() = %q, want groq", p.Name())
	}

	t.Setenv("OPENAI_API_KEY", "ok")
	p, err = NewProvider(Config{Provider: "openai"})
	if err != nil {
		t.Fatalf("NewProvider openai: %v", err)
	}
	if p.Name() != "openai" {
		t.Errorf("Name() = %q, want openai", p.Name())
	}
}

func TestBatchSessionFeedAndClose(t *testing.T) {
	var gotAudio []byte
	fakeFn := func(audioData []byte, cfg SessionConfig) (*Result, error) {
		gotAudio = audioData
		return &Result{
			Text:    "  hello world \n",
			Metrics: &NetworkMetrics{TTFB: 10 * time.Millisecond},
		}, nil
	}

	bs, err := newBatchSession(SessionConfig{Model: "m"}, fakeFn)
	if err != nil {
		t.Fatalf("newBatchSession: %v", err)
	}

	go func() {
		for range bs.Updates() {
		}
	}()

	nSamples := encoder.BlockSize + encoder.BlockSize/2
	pcm := make([]byte, nSamples*2)
	for i := range nSamples {
		binary.LittleEndian.PutUint16(pcm[i*2:], uint16(i%1000))
	}
	bs.Feed(pcm)

	result, err := bs.Close()
	if err != nil {
		t.Fatalf("Close: %v", err)
	}
	if result.Text != "hello world" {
		t.Errorf("Text = %q, want trimmed %q", result.Text, "hello world")
	}
	if result.Batch == nil {
		t.Fatal("Batch should be non-nil")
	}
	if result.Batch.AudioLengthS <= 0 {
		t.Error("AudioLengthS should be positive")
	}
	if len(gotAudio) < 4 || string(gotAudio[:4]) != "fLaC" {
		t.Error("uploaded audio is not FLAC")
	}
}

func TestBatchSessionTranscribeError(t *testing.T) {
	wantErr := errors.New("upstream down")
	bs, err := newBatchSession(SessionConfig{}, func([]byte, SessionConfig) (*Result, error) {
		return nil, wantErr
	})
	if err != nil {
		t.Fatalf("newBatchSession: %v", err)
	}
	go func() {
		for range bs.Updates() {
		}
	}()
	if _, err := bs.Close(); !errors.Is(err, wantErr) {
		t.Errorf("Close error = %v, want %v", err, wantErr)
	}
}

type stubProvider struct {
	text string
}

func (s *stubProvider) Name() string         { return "stub" }
func (s *stubProvider) DefaultModel() string { return "stub-1" }
func (s *stubProvider) Warm()                {}

func (s *stubProvider) NewSession(cfg SessionConfig) (Session, error) {
	return newBatchSession(cfg, func([]byte, SessionConfig) (*Result, error) {
		return &Result{Text: s.text}, nil
	})
}

func TestRecorderRoundTrip(t *testing.T) {
	pcm := make([]byte, encoder.BlockSize*4)
	actx := audio.NewFakeContextFromPCM(pcm)

	rec := NewWithBackends(Config{}, Callbacks{}, actx, &stubProvider{text: "dictated text"})
	if err := rec.WaitReady(); err != nil {
		t.Fatalf("WaitReady: %v", err)
	}
	if !rec.Ready() {
		t.Fatal("Ready() = false after WaitReady")
	}

	if err := rec.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	rec.Stop()

	var mu sync.Mutex
	var gotText string
	var gotErr error
	done := make(chan struct{})
	rec.Text(func(text string, err error) {
		mu.Lock()
		gotText, gotErr = text, err
		mu.Unlock()
		close(done)
	})

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Text callback never fired")
	}

	mu.Lock()
	defer mu.Unlock()
	if gotErr != nil {
		t.Fatalf("Text error: %v", gotErr)
	}
	if gotText != "dictated text" {
		t.Errorf("text = %q, want %q", gotText, "dictated text")
	}
	rec.Shutdown()
}

func TestRecorderTextWithoutSession(t *testing.T) {
	actx := audio.NewFakeContextFromPCM(nil)
	rec := NewWithBackends(Config{}, Callbacks{}, actx, &stubProvider{})
	if err := rec.WaitReady(); err != nil {
		t.Fatalf("WaitReady: %v", err)
	}
	called := false
	rec.Text(func(_ string, err error) {
		called = true
		if err == nil {
			t.Error("expected error with no active session")
		}
	})
	if !called {
		t.Error("callback should fire synchronously without a session")
	}
}

func TestFakeEngine(t *testing.T) {
	f := NewFake("scripted", nil)
	if !f.Ready() {
		t.Fatal("fake should start ready")
	}

	var partials []string
	var mu sync.Mutex
	f.SetPartials([]string{"scr", "scripted"})
	f.SetCallbacks(Callbacks{OnRealtimeUpdate: func(s string) {
		mu.Lock()
		partials = append(partials, s)
		mu.Unlock()
	}})

	if err := f.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	f.Stop()

	done := make(chan string, 1)
	f.Text(func(text string, err error) {
		if err != nil {
			t.Errorf("Text error: %v", err)
		}
		done <- text
	})
	select {
	case text := <-done:
		if text != "scripted" {
			t.Errorf("text = %q, want scripted", text)
		}
	case <-time.After(time.Second):
		t.Fatal("Text callback never fired")
	}

	if f.Starts() != 1 || f.Stops() != 1 {
		t.Errorf("starts/stops = %d/%d, want 1/1", f.Starts(), f.Stops())
	}
}

func TestFakeEngineNotReady(t *testing.T) {
	f := NewFakeNotReady()
	if f.Ready() {
		t.Fatal("fake should start unready")
	}
	f.SetReady(true)
	if !f.Ready() {
		t.Fatal("SetReady(true) should flip Ready")
	}
}
