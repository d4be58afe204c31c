// Package llm adapts the three LLM-backed collaborators described in
// SPEC_FULL.md §4.7/§4.9/§4.8's stage 3b/3e: query refinement, per-signal
// semantic analysis, and batch validation. Every call tolerates
// code-fence-wrapped JSON and never raises on parse failure — callers get
// a documented neutral fallback instead (SPEC_FULL.md §7).
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Client is a minimal chat-completion HTTP client with a model cascade:
// each call tries every configured model in order until one does not 404.
type Client struct {
	baseURL    string
	apiKey     string
	models     []string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates an LLM client. models is tried in order; the first
// entry that does not 404 serves the request.
func NewClient(baseURL, apiKey string, models []string, log zerolog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		models:     models,
		httpClient: &http.Client{},
		log:        log.With().Str("component", "llm_client").Logger(),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// complete runs a single-turn chat completion, trying each configured
// model in sequence until one responds with something other than 404.
func (c *Client) complete(ctx context.Context, timeout time.Duration, systemPrompt, userPrompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var lastErr error
	for _, model := range c.models {
		text, err := c.completeWithModel(ctx, model, systemPrompt, userPrompt)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !isNotFound(err) {
			return "", err
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no models configured")
	}
	return "", lastErr
}

type notFoundError struct{ status int }

func (e *notFoundError) Error() string { return fmt.Sprintf("model not available: status %d", e.status) }

func isNotFound(err error) bool {
	_, ok := err.(*notFoundError)
	return ok
}

func (c *Client) completeWithModel(ctx context.Context, model, systemPrompt, userPrompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", &notFoundError{status: resp.StatusCode}
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat request returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read chat response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode chat response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("chat response had no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// stripCodeFences tolerates LLM responses wrapped in ```json ... ``` or
// ``` ... ``` fences, returning the inner content untouched otherwise.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
