// Package summarize asks a generative-text provider for short prose about
// the ratings and never lets a provider failure escape to the caller.
package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cellar-club/tasting/internal/config"
)

// Generator turns one prompt into generated text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

var (
	ErrNoAPIKey      = errors.New("AI provider api key is empty")
	errEmptyResponse = errors.New("empty response from AI")
)

// NewGenerator builds the Generator named by cfg.Provider.
func NewGenerator(ctx context.Context, cfg config.AIConfig) (Generator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNoAPIKey
	}
	switch cfg.Provider {
	case config.AIProviderGemini, "":
		return newGeminiGenerator(ctx, cfg)
	case config.AIProviderOpenAI, config.AIProviderAnthropic:
		return newLanguageModelGenerator(cfg)
	case config.AIProviderOpenAICompatible:
		return newCompatibleGenerator(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported AI provider %q", cfg.Provider)
	}
}
