package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/wellfront-health/intakeq-voice/internal/observability/metrics"
	"github.com/wellfront-health/intakeq-voice/pkg/logging"
)

// Intent is the routing decision for one webhook turn.
type Intent string

const (
	IntentClientSearch Intent = "client_search"
	IntentAppointment  Intent = "appointment"
	IntentInvoice      Intent = "invoice"
	IntentFallback     Intent = "fallback"
)

// Fixed voice responses. Callers hear these verbatim, so they are
// constants rather than templates.
const (
	fallbackResponse = "I can help you search for clients, manage appointments, or check invoices. What would you like to do?"

	appointmentResponse = "I can help you view or schedule appointments. Please provide the client ID or phone number."

	invoiceResponse = "I can help you check invoice information. Please provide the client ID or phone number."

	emptySearchResponse = "Please provide a name, email, or phone number to search for."

	noMatchesResponse = "No clients found matching your search."
)

const defaultMaxSearchResults = 3

// ClassifyIntent maps a transcript to an Intent by case-insensitive
// keyword matching. Earlier groups win when keywords from several
// groups appear in the same message.
func ClassifyIntent(message string) Intent {
	m := strings.ToLower(message)
	switch {
	case strings.Contains(m, "search") || strings.Contains(m, "find") || strings.Contains(m, "look up"):
		return IntentClientSearch
	case strings.Contains(m, "appointment") || strings.Contains(m, "schedule"):
		return IntentAppointment
	case strings.Contains(m, "invoice") || strings.Contains(m, "bill") || strings.Contains(m, "payment"):
		return IntentInvoice
	default:
		return IntentFallback
	}
}

// ExtractSearchTerm pulls the search term out of a transcript. Text
// after the first "for" or "with" marker wins; without a marker the
// last three words stand in for the term. Short messages are returned
// whole.
func ExtractSearchTerm(message string) string {
	words := strings.Fields(message)
	for i := 0; i < len(words)-1; i++ {
		if strings.EqualFold(words[i], "for") || strings.EqualFold(words[i], "with") {
			return strings.Join(words[i+1:], " ")
		}
	}
	if len(words) > 3 {
		words = words[len(words)-3:]
	}
	return strings.Join(words, " ")
}

// WebhookRequest is one decoded voice-platform webhook call.
type WebhookRequest struct {
	Message     string         `json:"message"`
	CallID      string         `json:"callId"`
	PhoneNumber string         `json:"phoneNumber"`
	Context     map[string]any `json:"context"`
}

// WebhookResponse carries the spoken reply plus the caller's context
// echoed back untouched for multi-turn state.
type WebhookResponse struct {
	Message string         `json:"message"`
	Context map[string]any `json:"context,omitempty"`
}

// Router turns webhook requests into spoken responses. Classification
// and extraction are pure; only the client-search intent reaches
// upstream.
type Router struct {
	service    *Service
	logger     *logging.Logger
	metrics    *metrics.VoiceMetrics
	maxResults int
}

// RouterConfig configures a Router.
type RouterConfig struct {
	Service    *Service
	Logger     *logging.Logger
	Metrics    *metrics.VoiceMetrics
	MaxResults int
}

// NewRouter creates a Router.
func NewRouter(cfg RouterConfig) *Router {
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = defaultMaxSearchResults
	}
	return &Router{
		service:    cfg.Service,
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
		maxResults: cfg.MaxResults,
	}
}

// Handle routes one webhook turn. Only an upstream failure during a
// client search yields an error; every other path resolves to a fixed
// or composed response.
func (r *Router) Handle(ctx context.Context, req WebhookRequest) (WebhookResponse, error) {
	intent := ClassifyIntent(req.Message)
	r.logger.Info("webhook turn",
		"call_id", req.CallID,
		"intent", string(intent),
	)

	var (
		resp WebhookResponse
		err  error
	)
	switch intent {
	case IntentClientSearch:
		resp, err = r.handleClientSearch(ctx, req)
	case IntentAppointment:
		resp = WebhookResponse{Message: appointmentResponse}
	case IntentInvoice:
		resp = WebhookResponse{Message: invoiceResponse}
	default:
		resp = WebhookResponse{Message: fallbackResponse}
	}

	status := "ok"
	if err != nil {
		status = "error"
	}
	r.metrics.ObserveWebhook(string(intent), status)
	if err != nil {
		return WebhookResponse{}, err
	}

	resp.Context = req.Context
	return resp, nil
}

func (r *Router) handleClientSearch(ctx context.Context, req WebhookRequest) (WebhookResponse, error) {
	term := ExtractSearchTerm(req.Message)
	if term == "" {
		return WebhookResponse{Message: emptySearchResponse}, nil
	}

	results, err := r.service.SearchClients(ctx, term)
	if err != nil {
		return WebhookResponse{}, err
	}
	if len(results) == 0 {
		return WebhookResponse{Message: noMatchesResponse}, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d client%s: ", len(results), pluralSuffix(len(results)))

	window := results
	if len(window) > r.maxResults {
		window = window[:r.maxResults]
	}
	for _, res := range window {
		if res.Name == "" {
			continue
		}
		b.WriteString(res.Name)
		b.WriteString(", ")
	}
	return WebhookResponse{Message: strings.TrimRight(b.String(), " ,")}, nil
}
