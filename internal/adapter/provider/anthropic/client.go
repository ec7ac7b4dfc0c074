// Package anthropic answers mentor prompts with Claude models.
package anthropic

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/makerlab-backend/internal/domain"
	"github.com/heartmarshall/makerlab-backend/internal/provider"
)

const (
	DefaultModel     = "claude-sonnet-4-5"
	defaultMaxTokens = 1024
)

// Config selects the model and credentials. BaseURL is only set in tests.
type Config struct {
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int64
	Timeout     time.Duration
	BaseURL     string
}

// Client is a text-completion backend. Without an API key every call reports
// domain.ErrNotConfigured.
type Client struct {
	client      *anthropic.Client
	model       string
	temperature float64
	maxTokens   int64
	log         *slog.Logger
}

// New creates a Claude client.
func New(cfg Config, logger *slog.Logger) *Client {
	c := &Client{
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		log:         logger.With("adapter", "anthropic"),
	}
	if c.model == "" {
		c.model = DefaultModel
	}
	if c.temperature == 0 {
		c.temperature = provider.DefaultTemperature
	}
	if c.maxTokens == 0 {
		c.maxTokens = defaultMaxTokens
	}

	if cfg.APIKey == "" {
		c.log.Warn("anthropic api key is not set, mentor replies will fall back")
		return c
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey), option.WithMaxRetries(0)}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	client := anthropic.NewClient(opts...)
	c.client = &client
	return c
}

// Complete asks the model to answer prompt given lab context.
func (c *Client) Complete(ctx context.Context, prompt, labContext string) (string, error) {
	if c.client == nil {
		return "", fmt.Errorf("anthropic: %w", domain.ErrNotConfigured)
	}

	start := time.Now()
	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   c.maxTokens,
		Temperature: anthropic.Float(c.temperature),
		System:      []anthropic.TextBlockParam{{Text: provider.Persona}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(provider.Contents(prompt, labContext))),
		},
	})
	if err != nil {
		c.log.ErrorContext(ctx, "anthropic message failed", slog.String("error", err.Error()))
		return "", fmt.Errorf("anthropic: messages: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	c.log.DebugContext(ctx, "anthropic response",
		slog.String("model", c.model),
		slog.Int("chars", sb.Len()),
		slog.Duration("took", time.Since(start)),
	)
	return sb.String(), nil
}
