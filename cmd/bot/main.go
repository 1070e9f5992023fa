package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/sergiodev3/control-gastos-app/internal/chat/service"
	"github.com/sergiodev3/control-gastos-app/internal/config"
	"github.com/sergiodev3/control-gastos-app/internal/handler"
	"github.com/sergiodev3/control-gastos-app/internal/infra/client"
	"github.com/sergiodev3/control-gastos-app/internal/infra/observability"
	"github.com/sergiodev3/control-gastos-app/internal/infra/resilience"
	"github.com/sergiodev3/control-gastos-app/internal/infra/sessions"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = godotenv.Load()

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.String("api_base_url", cfg.APIBaseURL),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
		zap.Duration("session_ttl", cfg.SessionTTL),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "control-gastos-bot")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Sessions ---
	sessionStore := sessions.New(cfg.SessionTTL)

	// --- Resilience ---
	resilienceCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
	}
	cb := resilience.NewCircuitBreaker("finance-api")

	// --- Clients ---
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	financeClient := client.NewFinanceClient(httpClient, cfg.APIBaseURL, cb, resilienceCfg)
	authClient := client.NewAuthClient(httpClient, cfg.APIBaseURL)

	// --- Services ---
	chatSvc := service.NewChatService(financeClient, authClient, sessionStore, metrics, logger)

	// --- Router ---
	router := handler.NewRouter(chatSvc, metrics, logger)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
