package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be > 0 (got %s)", c.Auth.TokenTTL)
	}
	if c.Auth.RequireSignIn && !c.Auth.GoogleConfigured() {
		return fmt.Errorf("auth.require_sign_in needs google_client_id and google_client_secret")
	}

	if err := c.Mentor.validate(); err != nil {
		return fmt.Errorf("mentor: %w", err)
	}
	// The fallback reply must still be written once a completion times out.
	if c.Server.WriteTimeout > 0 && c.Mentor.Timeout >= c.Server.WriteTimeout {
		return fmt.Errorf("mentor.timeout (%s) must be shorter than server.write_timeout (%s)",
			c.Mentor.Timeout, c.Server.WriteTimeout)
	}
	if err := c.Lab.validate(); err != nil {
		return fmt.Errorf("lab: %w", err)
	}
	if err := c.Log.validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if c.RateLimit.Enabled && (c.RateLimit.PerMinute <= 0 || c.RateLimit.CreatePerMinute <= 0) {
		return fmt.Errorf("rate_limit: per_minute and create_per_minute must be > 0")
	}

	return nil
}

func (m *MentorConfig) validate() error {
	m.Provider = strings.ToLower(strings.TrimSpace(m.Provider))
	switch m.Provider {
	case ProviderGemini, ProviderAnthropic:
	default:
		return fmt.Errorf("provider must be %q or %q (got %q)", ProviderGemini, ProviderAnthropic, m.Provider)
	}
	if m.Temperature < 0 || m.Temperature > 2 {
		return fmt.Errorf("temperature must be in [0,2] (got %v)", m.Temperature)
	}
	if m.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %s)", m.Timeout)
	}
	if m.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be > 0 (got %d)", m.MaxTokens)
	}
	return nil
}

func (l *LabConfig) validate() error {
	if l.PublishDelay < 0 {
		return fmt.Errorf("publish_delay must be >= 0 (got %s)", l.PublishDelay)
	}
	if l.WorkspaceIdleTTL <= 0 {
		return fmt.Errorf("workspace_idle_ttl must be > 0 (got %s)", l.WorkspaceIdleTTL)
	}
	if l.JanitorInterval <= 0 {
		return fmt.Errorf("janitor_interval must be > 0 (got %s)", l.JanitorInterval)
	}
	if l.MaxWorkspaces < 0 {
		return fmt.Errorf("max_workspaces must be >= 0 (got %d)", l.MaxWorkspaces)
	}
	if l.ImageProbeTimeout <= 0 {
		return fmt.Errorf("image_probe_timeout must be > 0 (got %s)", l.ImageProbeTimeout)
	}
	return nil
}

func (l *LogConfig) validate() error {
	switch strings.ToLower(l.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("format must be json or text (got %q)", l.Format)
	}
	switch strings.ToLower(l.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("level must be debug, info, warn or error (got %q)", l.Level)
	}
	return nil
}
