package summarize

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cellar-club/tasting/internal/config"
	"go.uber.org/zap"
)

const (
	NoResponseText = "No response generated."
	errorTextFmt   = "Could not generate a summary due to an error: %v"

	defaultTimeout = 30 * time.Second
)

// Client wraps a Generator with a per-call timeout and turns every failure
// into display text.
type Client struct {
	gen     Generator
	initErr error
	timeout time.Duration
	logger  *zap.Logger
}

// NewClient wraps gen. A zero timeout means 30s.
func NewClient(gen Generator, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{gen: gen, timeout: timeout, logger: logger}
}

// FromConfig builds the configured provider. When the provider cannot be
// built the client still works and answers every prompt with the error text.
func FromConfig(ctx context.Context, cfg config.AIConfig, logger *zap.Logger) *Client {
	gen, err := NewGenerator(ctx, cfg)
	c := NewClient(gen, cfg.Timeout, logger)
	if err != nil {
		c.initErr = err
		c.logger.Warn("summaries disabled", zap.String("provider", cfg.Provider), zap.Error(err))
	}
	return c
}

// Summarize returns the generated text for prompt, or a fallback sentence.
// It never fails.
func (c *Client) Summarize(ctx context.Context, prompt string) string {
	if c.gen == nil {
		err := c.initErr
		if err == nil {
			err = ErrNoAPIKey
		}
		return FailureText(err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	text, err := c.gen.Generate(ctx, prompt)
	if err != nil {
		c.logger.Warn("summary generation failed", zap.Duration("latency", time.Since(start)), zap.Error(err))
		return FailureText(err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return NoResponseText
	}
	c.logger.Debug("summary generated", zap.Duration("latency", time.Since(start)), zap.Int("chars", len(text)))
	return text
}

// FailureText is the sentence shown in place of a summary when generation fails.
func FailureText(err error) string {
	return fmt.Sprintf(errorTextFmt, err)
}
