// Package llm is a thin gateway to the text-generation model used for
// parlay suggestions and analysis. Callers treat the model as an
// untrusted collaborator and validate everything it returns.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	DefaultBaseURL = "https://api.anthropic.com/v1"
	DefaultModel   = "claude-3-haiku-20240307"

	apiVersion = "2023-06-01"
)

// Client is the model gateway. Available reports whether the gateway
// can serve requests at all; callers fall back locally when it can't.
type Client interface {
	Available() bool
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Anthropic talks to the Anthropic messages API.
type Anthropic struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewAnthropic creates a new Anthropic client. model falls back to a
// default when empty.
func NewAnthropic(apiKey, model string) *Anthropic {
	if model == "" {
		model = DefaultModel
	}
	return &Anthropic{
		apiKey:  apiKey,
		model:   model,
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (a *Anthropic) Available() bool {
	return a.apiKey != ""
}

// Complete sends a single-turn user prompt and returns the concatenated
// text blocks of the reply.
func (a *Anthropic) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if !a.Available() {
		return "", fmt.Errorf("anthropic client not configured")
	}

	reqBody := map[string]any{
		"model":      a.model,
		"max_tokens": maxTokens,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}

	body, _ := json.Marshal(reqBody)

	httpReq, err := http.NewRequestWithContext(ctx, "POST", a.baseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return "", err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", a.apiKey)
	httpReq.Header.Set("anthropic-version", apiVersion)

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("Anthropic API error %d: %s", resp.StatusCode, string(errBody))
	}

	var apiResp struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", err
	}

	content := ""
	for _, c := range apiResp.Content {
		if c.Type == "text" {
			content += c.Text
		}
	}

	return content, nil
}
