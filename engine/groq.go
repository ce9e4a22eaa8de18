package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
)

const groqDefaultModel = "whisper-large-v3-turbo"

type Groq struct {
	client *TracedClient
	apiURL string
	apiKey string
}

func NewGroq(apiKey string) *Groq {
	apiURL := "https://api.groq.com/openai/v1/audio/transcriptions"
	return &Groq{
		client: NewTracedClient(apiURL),
		apiURL: apiURL,
		apiKey: apiKey,
	}
}

func (g *Groq) Name() string         { return "groq" }
func (g *Groq) DefaultModel() string { return groqDefaultModel }

func (g *Groq) Warm() { g.client.Warm() }

func (g *Groq) NewSession(cfg SessionConfig) (Session, error) {
	if cfg.Model == "" {
		cfg.Model = groqDefaultModel
	}
	return newBatchSession(cfg, g.transcribe)
}

type groqResponse struct {
	Text     string  `json:"text"`
	Duration float64 `json:"duration"`
}

func (g *Groq) transcribe(audioData []byte, cfg SessionConfig) (*Result, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", "audio.flac")
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(audioData); err != nil {
		return nil, err
	}

	writer.WriteField("model", cfg.Model)
	writer.WriteField("response_format", "json")
	if cfg.Language != "" {
		writer.WriteField("language", cfg.Language)
	}
	writer.Close()

	req, err := http.NewRequest("POST", g.apiURL, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("groq API error %d: %s", resp.StatusCode, string(resp.Body))
	}

	var gResp groqResponse
	if err := json.Unmarshal(resp.Body, &gResp); err != nil {
		return nil, fmt.Errorf("groq response parse error: %w", err)
	}

	remaining := firstNonEmpty(resp.Header, "x-ratelimit-remaining-requests")
	limit := firstNonEmpty(resp.Header, "x-ratelimit-limit-requests")

	return &Result{
		Text:      gResp.Text,
		Duration:  gResp.Duration,
		RateLimit: remaining + "/" + limit,
		Metrics:   resp.Metrics,
	}, nil
}
