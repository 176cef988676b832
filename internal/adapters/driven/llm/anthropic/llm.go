// Package anthropic answers Quarry questions with Claude models over the
// Anthropic Messages API.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/custodia-labs/quarry/internal/core/domain"
	"github.com/custodia-labs/quarry/internal/core/ports/driven"
)

var _ driven.LLMService = (*LLMService)(nil)

const (
	DefaultBaseURL   = "https://api.anthropic.com"
	DefaultModel     = domain.DefaultChatModel
	DefaultTimeout   = 60 * time.Second
	DefaultMaxTokens = domain.DefaultMaxTokens

	apiVersion = "2023-06-01"

	// statusOverloaded is returned when Anthropic sheds load.
	statusOverloaded = 529
)

// Config selects the account, endpoint and model. Only APIKey is required.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// LLMService is a Messages API client bound to one model.
type LLMService struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

type turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type request struct {
	Model       string  `json:"model"`
	System      string  `json:"system,omitempty"`
	Messages    []turn  `json:"messages"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature,omitempty"`
}

type response struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// NewLLMService validates cfg and fills in defaults. A blank API key is
// reported as domain.ErrLLMUnavailable.
func NewLLMService(cfg Config) (*LLMService, error) {
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		return nil, fmt.Errorf("%w: anthropic API key is required", domain.ErrLLMUnavailable)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &LLMService{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  key,
		model:   cfg.Model,
	}, nil
}

// Chat sends one Messages request. System messages are joined into the
// top-level system prompt and the other messages are sent as turns, with
// consecutive same-role messages merged.
func (s *LLMService) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	req := request{
		Model:       s.model,
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	}
	if req.MaxTokens <= 0 {
		req.MaxTokens = DefaultMaxTokens
	}

	var system []string
	for _, m := range messages {
		if m.Role == "system" {
			system = append(system, m.Content)
			continue
		}
		if n := len(req.Messages); n > 0 && req.Messages[n-1].Role == m.Role {
			req.Messages[n-1].Content += "\n\n" + m.Content
			continue
		}
		req.Messages = append(req.Messages, turn{Role: m.Role, Content: m.Content})
	}
	if len(req.Messages) == 0 || req.Messages[0].Role != "user" {
		return "", fmt.Errorf("%w: conversation must start with a user message", domain.ErrInvalidInput)
	}
	req.System = strings.Join(system, "\n\n")

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	var resp response
	if err := s.call(ctx, http.MethodPost, "/v1/messages", bytes.NewReader(body), &resp); err != nil {
		return "", err
	}

	var answer strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			answer.WriteString(block.Text)
		}
	}
	return strings.TrimSpace(answer.String()), nil
}

// ModelName returns the configured model id.
func (s *LLMService) ModelName() string {
	return s.model
}

// Ping checks the key against the model list without generating tokens.
func (s *LLMService) Ping(ctx context.Context) error {
	return s.call(ctx, http.MethodGet, "/v1/models", http.NoBody, nil)
}

// Close drops idle connections.
func (s *LLMService) Close() error {
	s.client.CloseIdleConnections()
	return nil
}

// call performs one API request and decodes a 200 response into out when
// out is non-nil. 429 and 529 map to domain.ErrRateLimited.
func (s *LLMService) call(ctx context.Context, method, path string, body io.Reader, out *response) error {
	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("anthropic: build request: %w", err)
	}
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", apiVersion)
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("anthropic: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("anthropic: read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests, statusOverloaded:
		return fmt.Errorf("%w: anthropic returned status %d", domain.ErrRateLimited, resp.StatusCode)
	default:
		var failed response
		if json.Unmarshal(data, &failed) == nil && failed.Error != nil {
			return fmt.Errorf("anthropic: status %d: %s: %s", resp.StatusCode, failed.Error.Type, failed.Error.Message)
		}
		return fmt.Errorf("anthropic: status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("anthropic: decode response: %w", err)
	}
	return nil
}
