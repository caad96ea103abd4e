// Package assistant composes IntakeQ data into voice-ready views and
// routes free-text voice transcripts to a small set of intents.
package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/wellfront-health/intakeq-voice/internal/intakeq"
	"github.com/wellfront-health/intakeq-voice/internal/observability/metrics"
	"github.com/wellfront-health/intakeq-voice/pkg/logging"
)

// UpstreamAPI is the slice of the IntakeQ client the service depends
// on. *intakeq.Client satisfies it; tests substitute fakes.
type UpstreamAPI interface {
	SearchClients(ctx context.Context, query intakeq.ClientQuery) ([]intakeq.ClientRecord, error)
	GetClientProfile(ctx context.Context, clientID int) (*intakeq.ClientProfile, error)
	GetAppointments(ctx context.Context, query intakeq.AppointmentQuery) ([]intakeq.Appointment, error)
	CreateAppointment(ctx context.Context, dto intakeq.CreateAppointmentDTO) (*intakeq.Appointment, error)
	GetInvoicesByClient(ctx context.Context, clientID int) ([]intakeq.Invoice, error)
}

const (
	defaultLookaheadDays = 30

	defaultAppointmentStatus = "confirmed"
	defaultReminderType      = "email"
)

// Service aggregates upstream calls into the voice-facing domain types.
// It holds no state between calls; every view is a fresh projection of
// upstream data at call time.
type Service struct {
	api           UpstreamAPI
	logger        *logging.Logger
	metrics       *metrics.VoiceMetrics
	lookaheadDays int
}

// ServiceConfig configures a Service.
type ServiceConfig struct {
	API           UpstreamAPI
	Logger        *logging.Logger
	Metrics       *metrics.VoiceMetrics
	LookaheadDays int
}

// NewService creates a Service.
func NewService(cfg ServiceConfig) *Service {
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.LookaheadDays <= 0 {
		cfg.LookaheadDays = defaultLookaheadDays
	}
	return &Service{
		api:           cfg.API,
		logger:        cfg.Logger,
		metrics:       cfg.Metrics,
		lookaheadDays: cfg.LookaheadDays,
	}
}

// SearchClients searches by name, email or phone and returns voice-ready
// matches in upstream order.
func (s *Service) SearchClients(ctx context.Context, term string) ([]ClientSearchResult, error) {
	start := time.Now()
	clients, err := s.api.SearchClients(ctx, intakeq.ClientQuery{Search: term})
	s.metrics.ObserveUpstream("search_clients", time.Since(start).Seconds(), err)
	if err != nil {
		return nil, orchestrationErr("search_clients", "error searching for clients", err)
	}

	results := make([]ClientSearchResult, 0, len(clients))
	for _, c := range clients {
		results = append(results, ClientSearchResult{
			ClientID:    c.ClientID,
			Name:        c.Name,
			Email:       c.Email,
			Phone:       c.Phone,
			DisplayText: fmt.Sprintf("%s - %s - %s", c.Name, c.Email, c.Phone),
		})
	}
	return results, nil
}

// FindClientByPhone looks up a client using the phone number as an
// opaque search term. When upstream returns several candidates the
// first in upstream order wins; no match yields a nil result, not an
// error.
func (s *Service) FindClientByPhone(ctx context.Context, phoneNumber string) (*ClientSearchResult, error) {
	start := time.Now()
	clients, err := s.api.SearchClients(ctx, intakeq.ClientQuery{Search: phoneNumber})
	s.metrics.ObserveUpstream("search_clients", time.Since(start).Seconds(), err)
	if err != nil {
		return nil, orchestrationErr("find_client_by_phone", "error finding client by phone", err)
	}
	if len(clients) == 0 {
		return nil, nil
	}

	match := clients[0]
	return &ClientSearchResult{
		ClientID:    match.ClientID,
		Name:        match.Name,
		Email:       match.Email,
		Phone:       match.Phone,
		DisplayText: fmt.Sprintf("%s - %s", match.Name, match.Email),
	}, nil
}

// ClientProfile fetches the detailed upstream profile.
func (s *Service) ClientProfile(ctx context.Context, clientID int) (*intakeq.ClientProfile, error) {
	start := time.Now()
	profile, err := s.api.GetClientProfile(ctx, clientID)
	s.metrics.ObserveUpstream("get_client_profile", time.Since(start).Seconds(), err)
	if err != nil {
		return nil, orchestrationErr("get_client_profile", "error retrieving client profile", err)
	}
	return profile, nil
}

// ClientAppointments lists a client's appointments in the given window.
// The upstream appointment search is name-based, so the profile is
// fetched first to resolve the client's name.
func (s *Service) ClientAppointments(ctx context.Context, clientID int, startDate, endDate time.Time) ([]AppointmentInfo, error) {
	profile, err := s.ClientProfile(ctx, clientID)
	if err != nil {
		return nil, orchestrationErr("client_appointments", "error retrieving client appointments", err)
	}

	start := time.Now()
	appointments, err := s.api.GetAppointments(ctx, intakeq.AppointmentQuery{
		ClientSearch: profile.Name,
		StartDate:    startDate,
		EndDate:      endDate,
	})
	s.metrics.ObserveUpstream("get_appointments", time.Since(start).Seconds(), err)
	if err != nil {
		return nil, orchestrationErr("client_appointments", "error retrieving client appointments", err)
	}

	infos := make([]AppointmentInfo, 0, len(appointments))
	for _, a := range appointments {
		infos = append(infos, appointmentInfo(a))
	}
	return infos, nil
}

// UpcomingAppointments lists appointments from now through daysAhead
// days. A non-positive daysAhead uses the configured lookahead window.
func (s *Service) UpcomingAppointments(ctx context.Context, clientID, daysAhead int) ([]AppointmentInfo, error) {
	if daysAhead <= 0 {
		daysAhead = s.lookaheadDays
	}
	now := time.Now()
	return s.ClientAppointments(ctx, clientID, now, now.AddDate(0, 0, daysAhead))
}

// CreateAppointment books an appointment, translating the caller's
// wall-clock start into upstream UTC epoch seconds and applying the
// documented defaults.
func (s *Service) CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (*AppointmentInfo, error) {
	status := req.Status
	if status == "" {
		status = defaultAppointmentStatus
	}
	reminderType := req.ReminderType
	if reminderType == "" {
		reminderType = defaultReminderType
	}
	sendEmail := true
	if req.SendClientEmailNotification != nil {
		sendEmail = *req.SendClientEmailNotification
	}

	dto := intakeq.CreateAppointmentDTO{
		ClientID:                    req.ClientID,
		ServiceID:                   req.ServiceID,
		LocationID:                  req.LocationID,
		PractitionerID:              req.PractitionerID,
		UtcDateTime:                 req.StartDateTime.Unix(),
		Status:                      status,
		ClientNote:                  req.ClientNote,
		PractitionerNote:            req.PractitionerNote,
		SendClientEmailNotification: sendEmail,
		ReminderType:                reminderType,
	}

	start := time.Now()
	created, err := s.api.CreateAppointment(ctx, dto)
	s.metrics.ObserveUpstream("create_appointment", time.Since(start).Seconds(), err)
	if err != nil {
		return nil, orchestrationErr("create_appointment", "error creating appointment", err)
	}

	info := appointmentInfo(*created)
	return &info, nil
}

// ClientInvoices lists all invoices for a client, converting upstream
// epoch-second due/issued dates to calendar timestamps.
func (s *Service) ClientInvoices(ctx context.Context, clientID int) ([]InvoiceInfo, error) {
	start := time.Now()
	invoices, err := s.api.GetInvoicesByClient(ctx, clientID)
	s.metrics.ObserveUpstream("get_invoices", time.Since(start).Seconds(), err)
	if err != nil {
		return nil, orchestrationErr("client_invoices", "error retrieving client invoices", err)
	}

	infos := make([]InvoiceInfo, 0, len(invoices))
	for _, inv := range invoices {
		infos = append(infos, invoiceInfo(inv))
	}
	return infos, nil
}

// OutstandingInvoices lists the client's invoices with a positive
// amount due. The filter runs on already-fetched data; it never issues
// a second upstream call.
func (s *Service) OutstandingInvoices(ctx context.Context, clientID int) ([]InvoiceInfo, error) {
	invoices, err := s.ClientInvoices(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return Outstanding(invoices), nil
}

// ClientSummaryView composes the full voice summary view. The profile
// is mandatory: its failure fails the whole operation. Empty
// appointment or invoice lists are valid states, but a fetch failure
// of either propagates.
func (s *Service) ClientSummaryView(ctx context.Context, clientID int) (*ClientSummary, error) {
	profile, err := s.ClientProfile(ctx, clientID)
	if err != nil {
		return nil, orchestrationErr("client_summary", "error generating client summary", err)
	}

	upcoming, err := s.UpcomingAppointments(ctx, clientID, s.lookaheadDays)
	if err != nil {
		return nil, orchestrationErr("client_summary", "error generating client summary", err)
	}

	outstanding, err := s.OutstandingInvoices(ctx, clientID)
	if err != nil {
		return nil, orchestrationErr("client_summary", "error generating client summary", err)
	}

	summary := &ClientSummary{
		ClientID:             profile.ClientID,
		Name:                 profile.Name,
		Phone:                profile.Phone,
		UpcomingAppointments: upcoming,
		OutstandingInvoices:  outstanding,
	}
	if birth, ok := profile.BirthDate(); ok {
		// Coarse calendar-year difference, not an exact age.
		summary.Age = time.Now().Year() - birth.Year()
		summary.HasAge = true
	}
	return summary, nil
}

// ClientSummaryText composes and renders the voice summary in one call.
func (s *Service) ClientSummaryText(ctx context.Context, clientID int) (string, error) {
	summary, err := s.ClientSummaryView(ctx, clientID)
	if err != nil {
		return "", err
	}
	return summary.VoiceText(), nil
}

func appointmentInfo(a intakeq.Appointment) AppointmentInfo {
	return AppointmentInfo{
		ID:               a.ID,
		ClientName:       a.ClientName,
		StartTime:        a.StartTime(),
		EndTime:          a.EndTime(),
		Status:           a.Status,
		ServiceName:      a.ServiceName,
		PractitionerName: a.PractitionerName,
		LocationName:     a.LocationName,
		DurationMinutes:  a.Duration,
		Price:            a.Price,
	}
}

func invoiceInfo(inv intakeq.Invoice) InvoiceInfo {
	items := make([]InvoiceItemInfo, 0, len(inv.Items))
	for _, item := range inv.Items {
		items = append(items, InvoiceItemInfo{
			Description: item.Description,
			Price:       item.Price,
			Units:       item.Units,
			TotalAmount: item.TotalAmount,
		})
	}
	return InvoiceInfo{
		ID:          inv.ID,
		Number:      inv.Number,
		Status:      inv.Status,
		ClientName:  inv.ClientName,
		ClientEmail: inv.ClientEmail,
		TotalAmount: inv.TotalAmount,
		AmountDue:   inv.AmountDue,
		AmountPaid:  inv.AmountPaid,
		DueDate:     time.Unix(inv.DueDate, 0).UTC(),
		IssuedDate:  time.Unix(inv.IssuedDate, 0).UTC(),
		Currency:    inv.Currency,
		Items:       items,
	}
}
