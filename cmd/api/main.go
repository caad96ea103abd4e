package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wellfront-health/intakeq-voice/internal/api/router"
	"github.com/wellfront-health/intakeq-voice/internal/assistant"
	appconfig "github.com/wellfront-health/intakeq-voice/internal/config"
	"github.com/wellfront-health/intakeq-voice/internal/http/handlers"
	"github.com/wellfront-health/intakeq-voice/internal/intakeq"
	"github.com/wellfront-health/intakeq-voice/internal/observability/metrics"
	"github.com/wellfront-health/intakeq-voice/pkg/logging"
)

func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("starting intakeq-voice API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	metricsHandler, voiceMetrics := setupMetrics()

	intakeqClient := intakeq.NewClient(cfg.IntakeQAPIKey, logger,
		intakeq.WithBaseURL(cfg.IntakeQBaseURL),
		intakeq.WithTimeout(cfg.UpstreamTimeout),
	)

	var partnerClient *intakeq.PartnerClient
	if cfg.IntakeQPartnerAPIKey != "" {
		partnerClient = intakeq.NewPartnerClient(cfg.IntakeQPartnerAPIKey, logger,
			intakeq.WithBaseURL(cfg.IntakeQPartnerBaseURL),
			intakeq.WithTimeout(cfg.UpstreamTimeout),
		)
	}

	service := assistant.NewService(assistant.ServiceConfig{
		API:           intakeqClient,
		Logger:        logger,
		Metrics:       voiceMetrics,
		LookaheadDays: cfg.AppointmentLookaheadDays,
	})
	webhookRouter := assistant.NewRouter(assistant.RouterConfig{
		Service:    service,
		Logger:     logger,
		Metrics:    voiceMetrics,
		MaxResults: cfg.MaxVoiceSearchResults,
	})

	vapiHandler := handlers.NewVapiHandler(handlers.VapiHandlerConfig{
		Service: service,
		Router:  webhookRouter,
		Partner: partnerClient,
		Logger:  logger,
	})

	r := router.New(&router.Config{
		Logger:             logger,
		VapiHandler:        vapiHandler,
		MetricsHandler:     metricsHandler,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		WebhookRateLimit:   cfg.WebhookRateLimit,
		WebhookRateBurst:   cfg.WebhookRateBurst,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// setupMetrics builds a private registry with runtime collectors plus
// the voice metric set, and the handler that exports it.
func setupMetrics() (http.Handler, *metrics.VoiceMetrics) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	voiceMetrics := metrics.NewVoiceMetrics(registry)
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{}), voiceMetrics
}
