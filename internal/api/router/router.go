// Package router assembles the HTTP routing tree.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wellfront-health/intakeq-voice/internal/http/handlers"
	httpmiddleware "github.com/wellfront-health/intakeq-voice/internal/http/middleware"
	"github.com/wellfront-health/intakeq-voice/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger         *logging.Logger
	VapiHandler    *handlers.VapiHandler
	MetricsHandler http.Handler

	CORSAllowedOrigins []string

	// WebhookRateLimit throttles the webhook per caller IP; zero
	// disables throttling.
	WebhookRateLimit float64
	WebhookRateBurst int
}

// New creates a new Chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", cfg.VapiHandler.HealthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/api/vapi", func(r chi.Router) {
		r.Get("/clients/search", cfg.VapiHandler.SearchClients)
		r.Get("/clients/by-phone", cfg.VapiHandler.FindClientByPhone)
		r.Route("/clients/{clientID}", func(r chi.Router) {
			r.Get("/profile", cfg.VapiHandler.GetClientProfile)
			r.Get("/summary", cfg.VapiHandler.GetClientSummary)
			r.Get("/appointments", cfg.VapiHandler.GetClientAppointments)
			r.Get("/appointments/upcoming", cfg.VapiHandler.GetUpcomingAppointments)
			r.Get("/appointments/summary", cfg.VapiHandler.GetAppointmentSummary)
			r.Get("/invoices", cfg.VapiHandler.GetClientInvoices)
			r.Get("/invoices/outstanding", cfg.VapiHandler.GetOutstandingInvoices)
			r.Get("/invoices/summary", cfg.VapiHandler.GetInvoiceSummary)
		})
		r.Post("/appointments", cfg.VapiHandler.CreateAppointment)
		r.Get("/practices", cfg.VapiHandler.GetPractices)
		if cfg.WebhookRateLimit > 0 {
			r.With(httpmiddleware.RateLimit(cfg.WebhookRateLimit, cfg.WebhookRateBurst)).
				Post("/webhook", cfg.VapiHandler.HandleWebhook)
		} else {
			r.Post("/webhook", cfg.VapiHandler.HandleWebhook)
		}
	})

	return r
}
