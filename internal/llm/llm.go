// Package llm wraps github.com/mozilla-ai/any-llm-go behind a single-prompt
// completion call.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	anyllmlib "github.com/mozilla-ai/any-llm-go"
	"github.com/mozilla-ai/any-llm-go/providers/anthropic"
	"github.com/mozilla-ai/any-llm-go/providers/deepseek"
	"github.com/mozilla-ai/any-llm-go/providers/gemini"
	"github.com/mozilla-ai/any-llm-go/providers/groq"
	"github.com/mozilla-ai/any-llm-go/providers/mistral"
	"github.com/mozilla-ai/any-llm-go/providers/ollama"
	anyllmoai "github.com/mozilla-ai/any-llm-go/providers/openai"

	"github.com/verte-zerg/tuispell/internal/model"
)

// DefaultProvider and DefaultModel match the hosted proxy deployment.
const (
	DefaultProvider = "mistral"
	DefaultModel    = "mistral-tiny"
)

// ErrEmptyResponse is returned when the backend answers without choices.
var ErrEmptyResponse = errors.New("llm: empty choices in response")

// Completer turns a single user prompt into text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Provider implements Completer on top of an any-llm-go backend.
type Provider struct {
	backend     anyllmlib.Provider
	model       string
	temperature float64
}

// New creates a Provider from AI settings. Without an API key the backend
// falls back to its usual environment variable (MISTRAL_API_KEY and so on).
func New(cfg model.AIConfig) (*Provider, error) {
	providerName := cfg.Provider
	if providerName == "" {
		providerName = DefaultProvider
	}
	modelName := cfg.Model
	if modelName == "" {
		modelName = DefaultModel
	}

	var opts []anyllmlib.Option
	if cfg.APIKey != "" {
		opts = append(opts, anyllmlib.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, anyllmlib.WithBaseURL(cfg.BaseURL))
	}

	backend, err := createBackend(providerName, opts...)
	if err != nil {
		return nil, fmt.Errorf("llm: create %q backend: %w", providerName, err)
	}
	return &Provider{backend: backend, model: modelName, temperature: cfg.Temperature}, nil
}

func createBackend(providerName string, opts ...anyllmlib.Option) (anyllmlib.Provider, error) {
	switch strings.ToLower(providerName) {
	case "mistral":
		return mistral.New(opts...)
	case "openai":
		return anyllmoai.New(opts...)
	case "anthropic":
		return anthropic.New(opts...)
	case "gemini":
		return gemini.New(opts...)
	case "ollama":
		return ollama.New(opts...)
	case "deepseek":
		return deepseek.New(opts...)
	case "groq":
		return groq.New(opts...)
	default:
		return nil, fmt.Errorf("unsupported provider %q; supported: mistral, openai, anthropic, gemini, ollama, deepseek, groq", providerName)
	}
}

// Model returns the configured model name.
func (p *Provider) Model() string {
	return p.model
}

// Complete implements Completer.
func (p *Provider) Complete(ctx context.Context, prompt string) (string, error) {
	params := anyllmlib.CompletionParams{
		Model: p.model,
		Messages: []anyllmlib.Message{
			{Role: "user", Content: prompt},
		},
	}
	if p.temperature != 0 {
		t := p.temperature
		params.Temperature = &t
	}

	resp, err := p.backend.Completion(ctx, params)
	if err != nil {
		return "", fmt.Errorf("llm: completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.ContentString(), nil
}
