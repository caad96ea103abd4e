package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/wellfront-health/intakeq-voice/internal/assistant"
	"github.com/wellfront-health/intakeq-voice/internal/intakeq"
	"github.com/wellfront-health/intakeq-voice/pkg/logging"
)

// webhookApology is spoken to the caller when an upstream failure
// interrupts a webhook turn. Internals never reach the caller.
const webhookApology = "I'm sorry, I ran into a problem handling that request. Please try again."

const queryDateLayout = "2006-01-02"

// VapiHandler exposes the voice-assistant surface over HTTP: client
// lookup, appointments, invoices, voice summaries and the webhook.
type VapiHandler struct {
	service  *assistant.Service
	router   *assistant.Router
	partner  *intakeq.PartnerClient
	validate *validator.Validate
	logger   *logging.Logger
}

// VapiHandlerConfig configures the VapiHandler. Partner is optional;
// without it the practices endpoint answers 404.
type VapiHandlerConfig struct {
	Service *assistant.Service
	Router  *assistant.Router
	Partner *intakeq.PartnerClient
	Logger  *logging.Logger
}

// NewVapiHandler creates a new VapiHandler.
func NewVapiHandler(cfg VapiHandlerConfig) *VapiHandler {
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	return &VapiHandler{
		service:  cfg.Service,
		router:   cfg.Router,
		partner:  cfg.Partner,
		validate: validator.New(),
		logger:   cfg.Logger,
	}
}

// HealthCheck reports process liveness.
func (h *VapiHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// SearchClients handles GET /api/vapi/clients/search?q=.
func (h *VapiHandler) SearchClients(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	if term == "" {
		h.writeValidation(w, "query parameter q is required")
		return
	}

	results, err := h.service.SearchClients(r.Context(), term)
	if err != nil {
		h.writeServiceError(w, "search clients", err)
		return
	}
	h.writeJSON(w, http.StatusOK, results)
}

// FindClientByPhone handles GET /api/vapi/clients/by-phone?phone=.
// A miss is 404, not an error body from upstream.
func (h *VapiHandler) FindClientByPhone(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("phone")
	if phone == "" {
		h.writeValidation(w, "query parameter phone is required")
		return
	}

	result, err := h.service.FindClientByPhone(r.Context(), phone)
	if err != nil {
		h.writeServiceError(w, "find client by phone", err)
		return
	}
	if result == nil {
		h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "client not found"})
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// GetClientProfile handles GET /api/vapi/clients/{clientID}/profile.
func (h *VapiHandler) GetClientProfile(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientID(w, r)
	if !ok {
		return
	}

	profile, err := h.service.ClientProfile(r.Context(), clientID)
	if err != nil {
		h.writeServiceError(w, "get client profile", err)
		return
	}
	h.writeJSON(w, http.StatusOK, profile)
}

// GetClientSummary handles GET /api/vapi/clients/{clientID}/summary.
func (h *VapiHandler) GetClientSummary(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientID(w, r)
	if !ok {
		return
	}

	text, err := h.service.ClientSummaryText(r.Context(), clientID)
	if err != nil {
		h.writeServiceError(w, "get client summary", err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"summary": text})
}

// GetClientAppointments handles
// GET /api/vapi/clients/{clientID}/appointments?startDate=&endDate=.
func (h *VapiHandler) GetClientAppointments(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientID(w, r)
	if !ok {
		return
	}

	startDate, err := h.queryDate(r, "startDate")
	if err != nil {
		h.writeValidation(w, "startDate must be formatted YYYY-MM-DD")
		return
	}
	endDate, err := h.queryDate(r, "endDate")
	if err != nil {
		h.writeValidation(w, "endDate must be formatted YYYY-MM-DD")
		return
	}

	appointments, err := h.service.ClientAppointments(r.Context(), clientID, startDate, endDate)
	if err != nil {
		h.writeServiceError(w, "get client appointments", err)
		return
	}
	h.writeJSON(w, http.StatusOK, appointments)
}

// GetUpcomingAppointments handles
// GET /api/vapi/clients/{clientID}/appointments/upcoming?daysAhead=.
func (h *VapiHandler) GetUpcomingAppointments(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientID(w, r)
	if !ok {
		return
	}

	appointments, err := h.service.UpcomingAppointments(r.Context(), clientID, h.daysAhead(r))
	if err != nil {
		h.writeServiceError(w, "get upcoming appointments", err)
		return
	}
	h.writeJSON(w, http.StatusOK, appointments)
}

// GetAppointmentSummary handles
// GET /api/vapi/clients/{clientID}/appointments/summary?daysAhead=.
func (h *VapiHandler) GetAppointmentSummary(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientID(w, r)
	if !ok {
		return
	}

	appointments, err := h.service.UpcomingAppointments(r.Context(), clientID, h.daysAhead(r))
	if err != nil {
		h.writeServiceError(w, "get appointment summary", err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{
		"summary": assistant.AppointmentSummaryText(appointments),
	})
}

// CreateAppointment handles POST /api/vapi/appointments.
func (h *VapiHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req assistant.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeValidation(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeValidation(w, err.Error())
		return
	}

	created, err := h.service.CreateAppointment(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, "create appointment", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

// GetClientInvoices handles GET /api/vapi/clients/{clientID}/invoices.
func (h *VapiHandler) GetClientInvoices(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientID(w, r)
	if !ok {
		return
	}

	invoices, err := h.service.ClientInvoices(r.Context(), clientID)
	if err != nil {
		h.writeServiceError(w, "get client invoices", err)
		return
	}
	h.writeJSON(w, http.StatusOK, invoices)
}

// GetOutstandingInvoices handles
// GET /api/vapi/clients/{clientID}/invoices/outstanding.
func (h *VapiHandler) GetOutstandingInvoices(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientID(w, r)
	if !ok {
		return
	}

	invoices, err := h.service.OutstandingInvoices(r.Context(), clientID)
	if err != nil {
		h.writeServiceError(w, "get outstanding invoices", err)
		return
	}
	h.writeJSON(w, http.StatusOK, invoices)
}

// GetInvoiceSummary handles
// GET /api/vapi/clients/{clientID}/invoices/summary. The spoken summary
// covers outstanding invoices only.
func (h *VapiHandler) GetInvoiceSummary(w http.ResponseWriter, r *http.Request) {
	clientID, ok := h.clientID(w, r)
	if !ok {
		return
	}

	invoices, err := h.service.OutstandingInvoices(r.Context(), clientID)
	if err != nil {
		h.writeServiceError(w, "get invoice summary", err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{
		"summary": assistant.InvoiceSummaryText(invoices),
	})
}

// GetPractices handles GET /api/vapi/practices.
func (h *VapiHandler) GetPractices(w http.ResponseWriter, r *http.Request) {
	if h.partner == nil {
		h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "partner API not configured"})
		return
	}

	practices, err := h.partner.GetPractices(r.Context(), 0)
	if err != nil {
		h.logger.Error("list practices failed", "error", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "error listing practices"})
		return
	}
	h.writeJSON(w, http.StatusOK, practices)
}

// HandleWebhook handles POST /api/vapi/webhook. Upstream failures
// degrade to a fixed apology so the caller always hears something.
func (h *VapiHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	var req assistant.WebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeValidation(w, "invalid webhook payload")
		return
	}
	if req.Message == "" {
		h.writeValidation(w, "message is required")
		return
	}

	resp, err := h.router.Handle(r.Context(), req)
	if err != nil {
		h.logger.Error("webhook turn failed", "call_id", req.CallID, "error", err)
		h.writeJSON(w, http.StatusInternalServerError, assistant.WebhookResponse{Message: webhookApology})
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// ----- helpers -----

func (h *VapiHandler) clientID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "clientID"))
	if err != nil || id <= 0 {
		h.writeValidation(w, "clientID must be a positive integer")
		return 0, false
	}
	return id, true
}

func (h *VapiHandler) daysAhead(r *http.Request) int {
	raw := r.URL.Query().Get("daysAhead")
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

func (h *VapiHandler) queryDate(r *http.Request, key string) (time.Time, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(queryDateLayout, raw)
}

func (h *VapiHandler) writeValidation(w http.ResponseWriter, message string) {
	h.writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": assistant.ValidationError(message).Error(),
	})
}

func (h *VapiHandler) writeServiceError(w http.ResponseWriter, op string, err error) {
	h.logger.Error(op+" failed", "error", err)

	var oerr *assistant.OrchestrationError
	if errors.As(err, &oerr) {
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": oerr.Message})
		return
	}
	h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}

func (h *VapiHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}
