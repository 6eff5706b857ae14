// Package feedback generates natural-language coaching reports from session
// metrics via the Google Gemini API.
package feedback

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// FallbackModel is used when model discovery fails.
	FallbackModel = "gemini-1.5-flash"

	// DefaultTimeout bounds one generation call, network included.
	DefaultTimeout = 30 * time.Second
)

// ErrNoAPIKey is returned when a client is constructed without a key.
var ErrNoAPIKey = errors.New("feedback: API key required")

// APIError represents a non-200 response from the Gemini API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("feedback: API error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("feedback: API error %d", e.StatusCode)
}

// IsRateLimited returns true if this is a rate limit error (HTTP 429).
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// IsTimeout reports whether err is a request timeout, from either the
// context deadline or the transport.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// Generator is the capability the HTTP layer consumes. Implemented by
// *Client; tests substitute a fake.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Client is a Gemini REST client.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL (used by tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithModel sets the generation model, skipping discovery.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient creates a Gemini client. The model defaults to FallbackModel
// until DiscoverModel picks a better one.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}

	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		model:   FallbackModel,
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Model returns the model the client currently generates with.
func (c *Client) Model() string {
	return c.model
}

// DiscoverModel queries the API for available models and selects one
// supporting generateContent, preferring "flash" variants, then "pro", then
// the first candidate. On any failure the fallback model is kept; discovery
// is best-effort and never blocks startup on an error.
func (c *Client) DiscoverModel(ctx context.Context) string {
	listURL := fmt.Sprintf("%s/models?key=%s", c.baseURL, url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listURL, nil)
	if err != nil {
		return c.model
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return c.model
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.model
	}

	var listing struct {
		Models []struct {
			Name                       string   `json:"name"`
			SupportedGenerationMethods []string `json:"supportedGenerationMethods"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return c.model
	}

	var candidates []string
	for _, m := range listing.Models {
		for _, method := range m.SupportedGenerationMethods {
			if method == "generateContent" {
				// API names are "models/<id>"; keep the bare id.
				parts := strings.Split(m.Name, "/")
				candidates = append(candidates, parts[len(parts)-1])
				break
			}
		}
	}
	if len(candidates) == 0 {
		return c.model
	}

	selected := pickModel(candidates)
	c.model = selected
	return selected
}

func pickModel(candidates []string) string {
	for _, name := range candidates {
		if strings.Contains(strings.ToLower(name), "flash") {
			return name
		}
	}
	for _, name := range candidates {
		if strings.Contains(strings.ToLower(name), "pro") {
			return name
		}
	}
	return candidates[0]
}

// Generate runs one generateContent call and returns the first candidate's
// text. Non-200 responses become *APIError so callers can branch on the
// status code.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	payload := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": prompt}}},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("feedback: marshal request: %w", err)
	}

	genURL := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.baseURL, c.model, url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, genURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("feedback: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("feedback: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errBody struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&errBody) == nil {
			apiErr.Message = errBody.Error.Message
		}
		return "", apiErr
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("feedback: decode response: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("feedback: no response content")
	}

	return result.Candidates[0].Content.Parts[0].Text, nil
}
