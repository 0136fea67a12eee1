package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Completer produces free text for a prompt. Implementations may fail for
// any reason (bad key, unavailable model, network); callers are expected
// to fall back to the local engine.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

const geminiURL = "https://generativelanguage.googleapis.com/v1/models/gemini-2.0-flash:generateContent"

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []*geminiPart `json:"parts"`
	Role  string        `json:"role,omitempty"`
}

type geminiRequest struct {
	Contents []*geminiContent `json:"contents"`
}

type geminiCandidate struct {
	Content *geminiContent `json:"content"`
}

type geminiResponse struct {
	Candidates []*geminiCandidate `json:"candidates"`
}

// GeminiCompleter calls the Google Generative Language REST API.
type GeminiCompleter struct {
	APIKey string
	Client *http.Client
}

var _ Completer = &GeminiCompleter{}

func NewGeminiCompleter(apiKey string) *GeminiCompleter {
	return &GeminiCompleter{
		APIKey: apiKey,
		Client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (g *GeminiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	payload := geminiRequest{
		Contents: []*geminiContent{
			{
				Parts: []*geminiPart{{Text: prompt}},
				Role:  "user",
			},
		},
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, geminiURL, bytes.NewBuffer(payloadJson))
	if err != nil {
		return "", err
	}

	req.Header.Set("x-goog-api-key", g.APIKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := g.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf(
			"status error, got status %d. with response body %s",
			res.StatusCode,
			string(resBody),
		)
	}

	var geminiRes geminiResponse
	if err := json.Unmarshal(resBody, &geminiRes); err != nil {
		return "", err
	}

	if len(geminiRes.Candidates) == 0 || geminiRes.Candidates[0].Content == nil ||
		len(geminiRes.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty completion response")
	}

	return geminiRes.Candidates[0].Content.Parts[0].Text, nil
}
