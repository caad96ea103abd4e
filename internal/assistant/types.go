package assistant

import "time"

// ClientSearchResult is a single match from a client search, shaped for
// voice playback. Produced fresh per search, never cached.
type ClientSearchResult struct {
	ClientID    int    `json:"clientId"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	DisplayText string `json:"displayText"`
}

// AppointmentInfo is the voice-facing projection of an upstream
// appointment record.
type AppointmentInfo struct {
	ID               string    `json:"id"`
	ClientName       string    `json:"clientName"`
	StartTime        time.Time `json:"startTime"`
	EndTime          time.Time `json:"endTime"`
	Status           string    `json:"status"`
	ServiceName      string    `json:"serviceName"`
	PractitionerName string    `json:"practitionerName"`
	LocationName     string    `json:"locationName"`
	DurationMinutes  int       `json:"durationMinutes"`
	Price            float64   `json:"price"`
}

// InvoiceInfo is the voice-facing projection of an upstream invoice.
// Due and issued dates are converted from upstream epoch seconds.
type InvoiceInfo struct {
	ID          string            `json:"id"`
	Number      int               `json:"number"`
	Status      string            `json:"status"`
	ClientName  string            `json:"clientName"`
	ClientEmail string            `json:"clientEmail"`
	TotalAmount float64           `json:"totalAmount"`
	AmountDue   float64           `json:"amountDue"`
	AmountPaid  float64           `json:"amountPaid"`
	DueDate     time.Time         `json:"dueDate"`
	IssuedDate  time.Time         `json:"issuedDate"`
	Currency    string            `json:"currency"`
	Items       []InvoiceItemInfo `json:"items"`
}

// InvoiceItemInfo is a line item owned by exactly one InvoiceInfo.
type InvoiceItemInfo struct {
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Units       float64 `json:"units"`
	TotalAmount float64 `json:"totalAmount"`
}

// CreateAppointmentRequest is the caller-facing booking request. The
// service translates StartDateTime (wall clock, any zone) into the
// upstream wire format, which wants absolute UTC epoch seconds.
type CreateAppointmentRequest struct {
	ClientID         int       `json:"clientId" validate:"required,gt=0"`
	ServiceID        string    `json:"serviceId" validate:"required"`
	LocationID       string    `json:"locationId"`
	PractitionerID   string    `json:"practitionerId" validate:"required"`
	StartDateTime    time.Time `json:"startDateTime" validate:"required"`
	Status           string    `json:"status"`
	ClientNote       string    `json:"clientNote"`
	PractitionerNote string    `json:"practitionerNote"`

	// SendClientEmailNotification defaults to true when omitted; a
	// pointer distinguishes absence from an explicit false.
	SendClientEmailNotification *bool  `json:"sendClientEmailNotification"`
	ReminderType                string `json:"reminderType"`
}

// ClientSummary is the composed voice-ready view of one client: the
// mandatory profile plus optional upcoming appointments and outstanding
// invoices, all fetched at call time.
type ClientSummary struct {
	ClientID             int               `json:"clientId"`
	Name                 string            `json:"name"`
	Age                  int               `json:"age,omitempty"`
	HasAge               bool              `json:"hasAge"`
	Phone                string            `json:"phone,omitempty"`
	UpcomingAppointments []AppointmentInfo `json:"upcomingAppointments"`
	OutstandingInvoices  []InvoiceInfo     `json:"outstandingInvoices"`
}
