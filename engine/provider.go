package engine

import (
	"fmt"
	"net/http"
	"os"
	"time"
)

// SessionConfig parameterizes a single transcription request.
type SessionConfig struct {
	Model    string
	Language string
}

// Session accumulates one recording's PCM and produces its transcript.
type Session interface {
	Feed(pcm []byte)
	// Updates carries partial transcripts. Batch providers close it
	// without sending; live text only appears with providers that
	// stream.
	Updates() <-chan string
	Close() (Result, error)
}

// Provider is a speech-to-text backend.
type Provider interface {
	Name() string
	DefaultModel() string
	NewSession(cfg SessionConfig) (Session, error)
	// Warm opens the TLS connection ahead of the first upload.
	Warm()
}

// Result is the provider's answer for one recording.
type Result struct {
	Text      string
	RateLimit string // "remaining/limit" or empty
	Duration  float64
	Metrics   *NetworkMetrics
	Batch     *BatchStats
}

// BatchStats describes the upload of a finished recording.
type BatchStats struct {
	AudioLengthS     float64
	RawSizeKB        float64
	CompressedSizeKB float64
	EncodeTimeMs     float64
	TotalTimeMs      float64
	ConnReused       bool
}

// NetworkMetrics breaks one HTTP exchange into phases.
type NetworkMetrics struct {
	ConnWait    time.Duration
	DNS         time.Duration
	TCP         time.Duration
	TLS         time.Duration
	ReqHeaders  time.Duration
	ReqBody     time.Duration
	TTFB        time.Duration
	Download    time.Duration
	Total       time.Duration
	ConnReused  bool
	TLSProtocol string
}

func (m *NetworkMetrics) Sum() time.Duration {
	return m.ConnWait + m.DNS + m.TCP + m.TLS + m.ReqHeaders + m.ReqBody + m.TTFB + m.Download
}

func firstNonEmpty(h http.Header, keys ...string) string {
	for _, k := range keys {
		if v := h.Get(k); v != "" {
			return v
		}
	}
	return "?"
}

// NewProvider builds the backend named by cfg.Provider, or picks one
// from the environment when the name is empty.
func NewProvider(cfg Config) (Provider, error) {
	groqKey := os.Getenv("GROQ_API_KEY")
	openaiKey := os.Getenv("OPENAI_API_KEY")

	switch cfg.Provider {
	case "groq":
		if groqKey == "" {
			return nil, fmt.Errorf("provider groq selected but GROQ_API_KEY is not set")
		}
		return NewGroq(groqKey), nil
	case "openai":
		if openaiKey == "" {
			return nil, fmt.Errorf("provider openai selected but OPENAI_API_KEY is not set")
		}
		return NewOpenAI(openaiKey), nil
	case "":
		if groqKey != "" {
			return NewGroq(groqKey), nil
		}
		if openaiKey != "" {
			return NewOpenAI(openaiKey), nil
		}
		return nil, fmt.Errorf("set GROQ_API_KEY or OPENAI_API_KEY environment variable")
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
