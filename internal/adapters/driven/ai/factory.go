// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	anthropicllm "github.com/custodia-labs/quarry/internal/adapters/driven/llm/anthropic"
	"github.com/custodia-labs/quarry/internal/core/domain"
	"github.com/custodia-labs/quarry/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// CreateLLMService builds the answer model from settings. The API key is
// read from the environment variable named by settings.APIKeyEnv.
// Returns nil without error when no key is set.
func CreateLLMService(settings domain.LLMSettings, lookup LookupFunc) (driven.LLMService, error) {
	envName := settings.APIKeyEnv
	if envName == "" {
		envName = domain.DefaultAPIKeyEnv
	}
	key, _ := lookup(envName)
	if strings.TrimSpace(key) == "" {
		return nil, nil
	}

	svc, err := anthropicllm.NewLLMService(anthropicllm.Config{
		APIKey:  strings.TrimSpace(key),
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
	if err != nil {
		return nil, err
	}
	return svc, nil
}

// ValidateLLMConfig creates the LLM service and pings it.
// A missing API key is reported as domain.ErrLLMUnavailable.
func ValidateLLMConfig(ctx context.Context, settings domain.LLMSettings, lookup LookupFunc) error {
	svc, err := CreateLLMService(settings, lookup)
	if err != nil {
		return err
	}
	if svc == nil {
		envName := settings.APIKeyEnv
		if envName == "" {
			envName = domain.DefaultAPIKeyEnv
		}
		return fmt.Errorf("%w: %s is not set", domain.ErrLLMUnavailable, envName)
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := svc.Ping(ctx); err != nil {
		return fmt.Errorf("%w: service unreachable (%w)", domain.ErrLLMUnavailable, err)
	}
	return nil
}

// ChatOptions returns the generation options configured in settings.
func ChatOptions(settings domain.LLMSettings) driven.ChatOptions {
	return driven.ChatOptions{
		MaxTokens:   settings.MaxTokens,
		Temperature: settings.Temperature,
	}
}
