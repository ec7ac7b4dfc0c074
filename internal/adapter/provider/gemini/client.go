// Package gemini answers mentor prompts with Google's Gemini models.
package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"

	"github.com/heartmarshall/makerlab-backend/internal/domain"
	"github.com/heartmarshall/makerlab-backend/internal/provider"
)

const DefaultModel = "gemini-3-flash-preview"

// Config selects the model and credentials. BaseURL is only set in tests.
type Config struct {
	APIKey      string
	Model       string
	Temperature float64
	Timeout     time.Duration
	BaseURL     string
}

// Client is a text-completion backend. A Client without an API key is valid
// and reports domain.ErrNotConfigured on every call.
type Client struct {
	client      *genai.Client
	model       string
	temperature float32
	timeout     time.Duration
	log         *slog.Logger
}

// New creates a Gemini client.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Client, error) {
	c := &Client{
		model:       cfg.Model,
		temperature: float32(cfg.Temperature),
		timeout:     cfg.Timeout,
		log:         logger.With("adapter", "gemini"),
	}
	if c.model == "" {
		c.model = DefaultModel
	}
	if cfg.Temperature == 0 {
		c.temperature = provider.DefaultTemperature
	}

	if cfg.APIKey == "" {
		c.log.Warn("gemini api key is not set, mentor replies will fall back")
		return c, nil
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	c.client = client
	return c, nil
}

// Complete asks the model to answer prompt given lab context.
func (c *Client) Complete(ctx context.Context, prompt, labContext string) (string, error) {
	if c.client == nil {
		return "", fmt.Errorf("gemini: %w", domain.ErrNotConfigured)
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.model,
		genai.Text(provider.Contents(prompt, labContext)),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(provider.Persona, genai.RoleUser),
			Temperature:       genai.Ptr(c.temperature),
		},
	)
	if err != nil {
		c.log.ErrorContext(ctx, "gemini generate failed", slog.String("error", err.Error()))
		return "", fmt.Errorf("gemini: generate: %w", err)
	}

	text := resp.Text()
	c.log.DebugContext(ctx, "gemini response",
		slog.String("model", c.model),
		slog.Int("chars", len(text)),
		slog.Duration("took", time.Since(start)),
	)
	return text, nil
}
