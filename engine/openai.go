package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
)

const openaiDefaultModel = "gpt-4o-transcribe"

type OpenAI struct {
	client *TracedClient
	apiURL string
	apiKey string
}

func NewOpenAI(apiKey string) *OpenAI {
	apiURL := "https://api.openai.com/v1/audio/transcriptions"
	return &OpenAI{
		client: NewTracedClient(apiURL),
		apiURL: apiURL,
		apiKey: apiKey,
	}
}

func (o *OpenAI) Name() string         { return "openai" }
func (o *OpenAI) DefaultModel() string { return openaiDefaultModel }

func (o *OpenAI) Warm() { o.client.Warm() }

func (o *OpenAI) NewSession(cfg SessionConfig) (Session, error) {
	if cfg.Model == "" {
		cfg.Model = openaiDefaultModel
	}
	return newBatchSession(cfg, o.transcribe)
}

func (o *OpenAI) transcribe(audioData []byte, cfg SessionConfig) (*Result, error) {
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

	req, err := http.NewRequest("POST", o.apiURL, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+o.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("openai API error %d: %s", resp.StatusCode, string(resp.Body))
	}

	var oResp struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(resp.Body, &oResp); err != nil {
		return nil, fmt.Errorf("openai response parse error: %w", err)
	}

	remaining := firstNonEmpty(resp.Header, "x-ratelimit-remaining-requests")
	limit := firstNonEmpty(resp.Header, "x-ratelimit-limit-requests")

	return &Result{
		Text:      oResp.Text,
		RateLimit: remaining + "/" + limit,
		Metrics:   resp.Metrics,
	}, nil
}
