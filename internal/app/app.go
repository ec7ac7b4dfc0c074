package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/makerlab-backend/internal/adapter/provider/anthropic"
	"github.com/heartmarshall/makerlab-backend/internal/adapter/provider/gemini"
	"github.com/heartmarshall/makerlab-backend/internal/adapter/provider/google"
	"github.com/heartmarshall/makerlab-backend/internal/adapter/provider/imageprobe"
	"github.com/heartmarshall/makerlab-backend/internal/auth"
	"github.com/heartmarshall/makerlab-backend/internal/config"
	"github.com/heartmarshall/makerlab-backend/internal/seed"
	"github.com/heartmarshall/makerlab-backend/internal/service/workspace"
	"github.com/heartmarshall/makerlab-backend/internal/transport/middleware"
	"github.com/heartmarshall/makerlab-backend/internal/transport/rest"
)

type completer interface {
	Complete(ctx context.Context, prompt, labContext string) (string, error)
}

// Run is the application entry point. It loads configuration from cfgPath,
// wires the lab services and serves HTTP until ctx is cancelled.
func Run(ctx context.Context, cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log, os.Stderr)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("mentor_provider", cfg.Mentor.Provider),
	)

	catalog, err := seed.Load(cfg.Lab.SeedPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	mentor, err := newMentor(ctx, cfg.Mentor, logger)
	if err != nil {
		return err
	}

	deps := workspace.Deps{
		Catalog: catalog,
		Mentor:  mentor,
		Images:  imageprobe.New(cfg.Lab.ImageProbeTimeout, logger),
	}
	if cfg.Auth.GoogleConfigured() {
		deps.Verifier = google.NewVerifier(cfg.Auth.GoogleClientID, cfg.Auth.GoogleClientSecret, cfg.Auth.GoogleRedirectURI, logger)
	} else {
		logger.Warn("google sign-in is not configured, sign-in requests will fail")
	}

	registry := workspace.NewRegistry(logger, deps,
		workspace.Options{PublishDelay: cfg.Lab.PublishDelay},
		workspace.RegistryConfig{
			IdleTTL:         cfg.Lab.WorkspaceIdleTTL,
			JanitorInterval: cfg.Lab.JanitorInterval,
			MaxWorkspaces:   cfg.Lab.MaxWorkspaces,
		},
	)
	defer registry.Close()

	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL)

	health := rest.NewHealthHandler(registry, BuildVersion(), map[string]bool{
		"mentor":         cfg.Mentor.APIKey() != "",
		"google_sign_in": cfg.Auth.GoogleConfigured(),
	})

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
		defer limiter.Stop()
	}

	srv := &http.Server{
		Addr: net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler: rest.NewRouter(rest.RouterDeps{
			Logger:     logger,
			Workspaces: rest.NewWorkspaceHandler(registry, tokens, cfg.Auth.RequireSignIn, logger),
			Health:     health,
			Tokens:     tokens,
			CORS:       cfg.CORS,
			RateLimit:  cfg.RateLimit,
			Limiter:    limiter,
		}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return registry.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		health.SetDraining()
		logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		// Hijacked event streams are not tracked by Shutdown; closing the
		// workspaces ends them.
		registry.Close()
		return nil
	})

	err = g.Wait()
	logger.Info("application stopped", slog.Int("open_workspaces", registry.Len()))
	return err
}

// newMentor picks the text-completion backend. A missing API key is not an
// error: the client then reports domain.ErrNotConfigured and replies fall back.
func newMentor(ctx context.Context, cfg config.MentorConfig, logger *slog.Logger) (completer, error) {
	switch cfg.Provider {
	case config.ProviderAnthropic:
		return anthropic.New(anthropic.Config{
			APIKey:      cfg.AnthropicAPIKey,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			Timeout:     cfg.Timeout,
			BaseURL:     cfg.BaseURL,
		}, logger), nil
	default:
		client, err := gemini.New(ctx, gemini.Config{
			APIKey:      cfg.GeminiAPIKey,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			Timeout:     cfg.Timeout,
			BaseURL:     cfg.BaseURL,
		}, logger)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}
