// Package intakeq provides a REST client for the IntakeQ practice
// management API. Each method wraps one upstream endpoint; callers that
// need composed views live in internal/assistant.
package intakeq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/wellfront-health/intakeq-voice/pkg/logging"
)

const (
	defaultBaseURL = "https://intakeq.com/api/v1"
	defaultTimeout = 15 * time.Second

	authHeader = "X-Auth-Key"
)

// APIError is a non-2xx response from IntakeQ. The message is the raw
// upstream error body so callers see exactly what IntakeQ reported.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body != "" {
		return e.Body
	}
	return fmt.Sprintf("intakeq API returned %d", e.StatusCode)
}

// Client is an IntakeQ v1 API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *logging.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the production endpoint. Tests point this at an
// httptest server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if strings.TrimSpace(baseURL) != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithTimeout overrides the default HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient constructs an IntakeQ API client.
func NewClient(apiKey string, logger *logging.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ClientQuery filters the client search endpoint.
type ClientQuery struct {
	Search           string
	Page             int
	DateCreatedStart time.Time
	DateCreatedEnd   time.Time
	ExternalClientID string
}

// SearchClients searches clients by name, email or phone. IntakeQ's
// search parameter is polymorphic over identifier type.
func (c *Client) SearchClients(ctx context.Context, query ClientQuery) ([]ClientRecord, error) {
	q := url.Values{}
	if query.Search != "" {
		q.Set("search", query.Search)
	}
	if query.Page > 0 {
		q.Set("page", strconv.Itoa(query.Page))
	}
	if !query.DateCreatedStart.IsZero() {
		q.Set("dateCreatedStart", query.DateCreatedStart.Format("2006-01-02"))
	}
	if !query.DateCreatedEnd.IsZero() {
		q.Set("dateCreatedEnd", query.DateCreatedEnd.Format("2006-01-02"))
	}
	if query.ExternalClientID != "" {
		q.Set("externalClientId", query.ExternalClientID)
	}

	var clients []ClientRecord
	if err := c.doJSON(ctx, http.MethodGet, "/clients", q, nil, &clients); err != nil {
		return nil, fmt.Errorf("search clients: %w", err)
	}
	return clients, nil
}

// GetClientProfile fetches the detailed profile for a client.
func (c *Client) GetClientProfile(ctx context.Context, clientID int) (*ClientProfile, error) {
	var profile ClientProfile
	path := fmt.Sprintf("/clients/profile/%d", clientID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &profile); err != nil {
		return nil, fmt.Errorf("get client profile: %w", err)
	}
	return &profile, nil
}

// AppointmentQuery filters the appointment list endpoint.
type AppointmentQuery struct {
	ClientSearch      string
	Status            string
	PractitionerEmail string
	StartDate         time.Time
	EndDate           time.Time
	Page              int
}

// GetAppointments lists appointments matching the query.
func (c *Client) GetAppointments(ctx context.Context, query AppointmentQuery) ([]Appointment, error) {
	q := url.Values{}
	if query.ClientSearch != "" {
		q.Set("client", query.ClientSearch)
	}
	if query.Status != "" {
		q.Set("status", query.Status)
	}
	if query.PractitionerEmail != "" {
		q.Set("practitionerEmail", query.PractitionerEmail)
	}
	if !query.StartDate.IsZero() {
		q.Set("startDate", query.StartDate.Format("2006-01-02"))
	}
	if !query.EndDate.IsZero() {
		q.Set("endDate", query.EndDate.Format("2006-01-02"))
	}
	if query.Page > 0 {
		q.Set("page", strconv.Itoa(query.Page))
	}

	var appointments []Appointment
	if err := c.doJSON(ctx, http.MethodGet, "/appointments", q, nil, &appointments); err != nil {
		return nil, fmt.Errorf("get appointments: %w", err)
	}
	return appointments, nil
}

// CreateAppointment books an appointment.
func (c *Client) CreateAppointment(ctx context.Context, dto CreateAppointmentDTO) (*Appointment, error) {
	var created Appointment
	if err := c.doJSON(ctx, http.MethodPost, "/appointments", nil, dto, &created); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}
	return &created, nil
}

// GetAppointmentSettings fetches bookable services and locations.
func (c *Client) GetAppointmentSettings(ctx context.Context) (*AppointmentSettings, error) {
	var settings AppointmentSettings
	if err := c.doJSON(ctx, http.MethodGet, "/appointments/settings", nil, nil, &settings); err != nil {
		return nil, fmt.Errorf("get appointment settings: %w", err)
	}
	return &settings, nil
}

// GetInvoicesByClient lists all invoices for a client.
func (c *Client) GetInvoicesByClient(ctx context.Context, clientID int) ([]Invoice, error) {
	q := url.Values{}
	q.Set("clientId", strconv.Itoa(clientID))

	var invoices []Invoice
	if err := c.doJSON(ctx, http.MethodGet, "/invoices", q, nil, &invoices); err != nil {
		return nil, fmt.Errorf("get invoices: %w", err)
	}
	return invoices, nil
}

// ListPractitioners lists practitioners for the practice.
func (c *Client) ListPractitioners(ctx context.Context, includeInactive bool) ([]Practitioner, error) {
	q := url.Values{}
	q.Set("includeInactive", strconv.FormatBool(includeInactive))

	var practitioners []Practitioner
	if err := c.doJSON(ctx, http.MethodGet, "/practitioners", q, nil, &practitioners); err != nil {
		return nil, fmt.Errorf("list practitioners: %w", err)
	}
	return practitioners, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set(authHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := string(respBody)
		logMsg := msg
		if len(logMsg) > 300 {
			logMsg = logMsg[:300]
		}
		c.logger.Warn("intakeq API non-2xx response", "status", resp.StatusCode, "path", path, "body", logMsg)
		return &APIError{StatusCode: resp.StatusCode, Body: msg}
	}

	if len(respBody) == 0 || out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
