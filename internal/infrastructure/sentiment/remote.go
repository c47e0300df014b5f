package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"newspulse/internal/domain"
	"newspulse/internal/ports"
)

// maxClassifyChars bounds how much article text is shipped to the service;
// sentiment models gain little from anything past the opening passage.
const maxClassifyChars = 4000

// Remote talks to an external inference service exposing a /classify
// endpoint that accepts {"text": ...} and answers {"label": ...}.
type Remote struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

var _ ports.SentimentClassifier = (*Remote)(nil)

// NewRemote creates a reusable HTTP client for the inference service.
func NewRemote(endpoint, apiKey string) *Remote {
	return &Remote{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

// Classify sends the text for labeling.
func (r *Remote) Classify(ctx context.Context, text string) (domain.Sentiment, error) {
	if r.endpoint == "" {
		return "", fmt.Errorf("remote classifier misconfigured: empty endpoint")
	}

	payload := map[string]any{
		"text": truncate(text, maxClassifyChars),
	}

	var resp struct {
		Label string `json:"label"`
	}
	if err := r.post(ctx, "/classify", payload, &resp); err != nil {
		return "", err
	}

	return parseLabel(resp.Label)
}

func (r *Remote) post(ctx context.Context, path string, payload any, v any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	resp, err := r.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
