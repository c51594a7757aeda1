package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stellacofre/stellacofre-bfa-go/internal/config"
	"github.com/stellacofre/stellacofre-bfa-go/internal/handler"
	"github.com/stellacofre/stellacofre-bfa-go/internal/infra/cache"
	"github.com/stellacofre/stellacofre-bfa-go/internal/infra/content"
	"github.com/stellacofre/stellacofre-bfa-go/internal/infra/notifier"
	"github.com/stellacofre/stellacofre-bfa-go/internal/infra/observability"
	"github.com/stellacofre/stellacofre-bfa-go/internal/infra/resilience"
	"github.com/stellacofre/stellacofre-bfa-go/internal/port"
	"github.com/stellacofre/stellacofre-bfa-go/internal/service"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	// --- Load .env file (for local development) ---
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
	}

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger, err := observability.NewLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.String("log_file", cfg.LogFile),
		zap.Duration("session_ttl", cfg.SessionTTL),
		zap.Duration("session_token_ttl", cfg.SessionTokenTTL),
		zap.Bool("event_webhook", cfg.EventWebhookURL != ""),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
		zap.Strings("cors_origins", cfg.CORSOrigins),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "stellacofre-bfa")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Session store ---
	store := cache.New[*service.Session](cfg.SessionTTL)
	defer store.Close()

	// --- Content ---
	catalog, err := content.Load()
	if err != nil {
		logger.Fatal("failed to load landing content", zap.Error(err))
	}

	// --- Event publishers ---
	publishers := notifier.Multi{notifier.NewLogPublisher(logger)}

	var webhook *notifier.Webhook
	if cfg.EventWebhookURL != "" {
		resilienceCfg := resilience.Config{
			MaxRetries:     cfg.MaxRetries,
			InitialBackoff: cfg.InitialBackoff,
			MaxConcurrency: cfg.MaxConcurrency,
		}
		httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
		webhook = notifier.NewWebhook(cfg.EventWebhookURL, httpClient, resilienceCfg, cfg.EventQueueSize, metrics, logger)
		publishers = append(publishers, webhook)
		logger.Info("event webhook enabled", zap.String("url", cfg.EventWebhookURL))
	}
	var publisher port.EventPublisher = publishers

	// --- Services ---
	tokens := service.NewTokenIssuer(cfg.SessionSecret, cfg.SessionTokenTTL)
	sessions := service.NewSessionService(store, publisher, tokens, metrics, logger)

	// --- Router ---
	router := handler.NewRouter(sessions, catalog, metrics, logger, cfg.CORSOrigins)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	// The webhook stops only after srv.Shutdown has returned.
	webhookCtx, stopWebhook := context.WithCancel(context.Background())
	defer stopWebhook()
	if webhook != nil {
		g.Go(func() error {
			return webhook.Run(webhookCtx)
		})
	}

	// --- Graceful shutdown ---
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("server shutting down...")
		defer stopWebhook()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped with error", zap.Error(err))
		return
	}

	logger.Info("server stopped")
}
