package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Auth      AuthConfig      `yaml:"auth"`
	Mentor    MentorConfig    `yaml:"mentor"`
	Lab       LabConfig       `yaml:"lab"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// AuthConfig holds workspace token and Google sign-in settings.
type AuthConfig struct {
	JWTSecret          string        `yaml:"jwt_secret"           env:"AUTH_JWT_SECRET"           env-required:"true"`
	JWTIssuer          string        `yaml:"jwt_issuer"           env:"AUTH_JWT_ISSUER"           env-default:"makerlab"`
	TokenTTL           time.Duration `yaml:"token_ttl"            env:"AUTH_TOKEN_TTL"            env-default:"24h"`
	GoogleClientID     string        `yaml:"google_client_id"     env:"AUTH_GOOGLE_CLIENT_ID"`
	GoogleClientSecret string        `yaml:"google_client_secret" env:"AUTH_GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURI  string        `yaml:"google_redirect_uri"  env:"AUTH_GOOGLE_REDIRECT_URI"`
	RequireSignIn      bool          `yaml:"require_sign_in"      env:"AUTH_REQUIRE_SIGN_IN"      env-default:"false"`
}

// GoogleConfigured reports whether Google sign-in credentials are present.
func (c AuthConfig) GoogleConfigured() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

// Mentor providers.
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

// MentorConfig selects and tunes the text-completion backend.
type MentorConfig struct {
	Provider        string        `yaml:"provider"          env:"MENTOR_PROVIDER"          env-default:"gemini"`
	GeminiAPIKey    string        `yaml:"gemini_api_key"    env:"GEMINI_API_KEY"`
	AnthropicAPIKey string        `yaml:"anthropic_api_key" env:"ANTHROPIC_API_KEY"`
	Model           string        `yaml:"model"             env:"MENTOR_MODEL"`
	Temperature     float64       `yaml:"temperature"       env:"MENTOR_TEMPERATURE"       env-default:"0.7"`
	MaxTokens       int64         `yaml:"max_tokens"        env:"MENTOR_MAX_TOKENS"        env-default:"1024"`
	Timeout         time.Duration `yaml:"timeout"           env:"MENTOR_TIMEOUT"           env-default:"20s"`
	BaseURL         string        `yaml:"base_url"          env:"MENTOR_BASE_URL"`
}

// APIKey returns the key of the selected provider.
func (c MentorConfig) APIKey() string {
	if c.Provider == ProviderAnthropic {
		return c.AnthropicAPIKey
	}
	return c.GeminiAPIKey
}

// LabConfig holds workspace behaviour.
type LabConfig struct {
	SeedPath          string        `yaml:"seed_path"           env:"LAB_SEED_PATH"`
	PublishDelay      time.Duration `yaml:"publish_delay"       env:"LAB_PUBLISH_DELAY"       env-default:"1200ms"`
	WorkspaceIdleTTL  time.Duration `yaml:"workspace_idle_ttl"  env:"LAB_WORKSPACE_IDLE_TTL"  env-default:"2h"`
	JanitorInterval   time.Duration `yaml:"janitor_interval"    env:"LAB_JANITOR_INTERVAL"    env-default:"1m"`
	MaxWorkspaces     int           `yaml:"max_workspaces"      env:"LAB_MAX_WORKSPACES"      env-default:"1000"`
	ImageProbeTimeout time.Duration `yaml:"image_probe_timeout" env:"LAB_IMAGE_PROBE_TIMEOUT" env-default:"5s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig bounds requests per client IP.
type RateLimitConfig struct {
	Enabled         bool          `yaml:"enabled"           env:"RATE_LIMIT_ENABLED"           env-default:"true"`
	PerMinute       int           `yaml:"per_minute"        env:"RATE_LIMIT_PER_MINUTE"        env-default:"120"`
	CreatePerMinute int           `yaml:"create_per_minute" env:"RATE_LIMIT_CREATE_PER_MINUTE" env-default:"10"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"  env:"RATE_LIMIT_CLEANUP_INTERVAL"  env-default:"5m"`
}
