package intakeq

import "time"

// IntakeQ serializes with PascalCase field names. Appointment start/end
// times travel as epoch milliseconds, invoice dates as epoch seconds.

// ClientRecord is a record returned by the client search endpoint.
type ClientRecord struct {
	ClientID    int    `json:"ClientId"`
	Name        string `json:"Name"`
	FirstName   string `json:"FirstName"`
	LastName    string `json:"LastName"`
	Email       string `json:"Email"`
	Phone       string `json:"Phone"`
	DateOfBirth *int64 `json:"DateOfBirth"` // epoch milliseconds
}

// ClientProfile is the detailed record from /clients/profile/{id}.
type ClientProfile struct {
	ClientID       int    `json:"ClientId"`
	Name           string `json:"Name"`
	Email          string `json:"Email"`
	Phone          string `json:"Phone"`
	DateOfBirth    *int64 `json:"DateOfBirth"` // epoch milliseconds
	Address        string `json:"Address"`
	City           string `json:"City"`
	StateShort     string `json:"StateShort"`
	PostalCode     string `json:"PostalCode"`
	Gender         string `json:"Gender"`
	PractitionerID string `json:"PractitionerId"`
}

// BirthDate converts the epoch-millisecond DateOfBirth to a UTC time.
// The second return value is false when no birth date is on file.
func (p *ClientProfile) BirthDate() (time.Time, bool) {
	if p.DateOfBirth == nil {
		return time.Time{}, false
	}
	return time.UnixMilli(*p.DateOfBirth).UTC(), true
}

// Appointment is a record from the /appointments endpoints.
type Appointment struct {
	ID               string  `json:"Id"`
	ClientName       string  `json:"ClientName"`
	ClientID         int     `json:"ClientId"`
	StartDate        int64   `json:"StartDate"` // epoch milliseconds
	EndDate          int64   `json:"EndDate"`   // epoch milliseconds
	Status           string  `json:"Status"`
	ServiceName      string  `json:"ServiceName"`
	ServiceID        string  `json:"ServiceId"`
	PractitionerName string  `json:"PractitionerName"`
	PractitionerID   string  `json:"PractitionerId"`
	LocationName     string  `json:"LocationName"`
	LocationID       string  `json:"LocationId"`
	Duration         int     `json:"Duration"` // minutes
	Price            float64 `json:"Price"`
}

// StartTime converts the epoch-millisecond start to a UTC time.
func (a *Appointment) StartTime() time.Time {
	return time.UnixMilli(a.StartDate).UTC()
}

// EndTime converts the epoch-millisecond end to a UTC time.
func (a *Appointment) EndTime() time.Time {
	return time.UnixMilli(a.EndDate).UTC()
}

// CreateAppointmentDTO is the wire shape for POST /appointments.
// UtcDateTime is the appointment start as absolute UTC epoch seconds.
type CreateAppointmentDTO struct {
	ClientID                    int    `json:"ClientId"`
	ServiceID                   string `json:"ServiceId"`
	LocationID                  string `json:"LocationId"`
	PractitionerID              string `json:"PractitionerId"`
	UtcDateTime                 int64  `json:"UtcDateTime"`
	Status                      string `json:"Status"`
	ClientNote                  string `json:"ClientNote,omitempty"`
	PractitionerNote            string `json:"PractitionerNote,omitempty"`
	SendClientEmailNotification bool   `json:"SendClientEmailNotification"`
	ReminderType                string `json:"ReminderType"`
}

// Invoice is a record from GET /invoices.
type Invoice struct {
	ID          string        `json:"Id"`
	Number      int           `json:"Number"`
	Status      string        `json:"Status"`
	ClientName  string        `json:"ClientName"`
	ClientEmail string        `json:"ClientEmail"`
	ClientID    int           `json:"ClientId"`
	TotalAmount float64       `json:"TotalAmount"`
	AmountDue   float64       `json:"AmountDue"`
	AmountPaid  float64       `json:"AmountPaid"`
	DueDate     int64         `json:"DueDate"`    // epoch seconds
	IssuedDate  int64         `json:"IssuedDate"` // epoch seconds
	Currency    string        `json:"Currency"`
	Items       []InvoiceItem `json:"Items"`
}

// InvoiceItem is a single line item on an invoice.
type InvoiceItem struct {
	Description string  `json:"Description"`
	Price       float64 `json:"Price"`
	Units       float64 `json:"Units"`
	TotalAmount float64 `json:"TotalAmount"`
}

// Practitioner is a record from GET /practitioners.
type Practitioner struct {
	ID           string `json:"Id"`
	CompleteName string `json:"CompleteName"`
	FirstName    string `json:"FirstName"`
	LastName     string `json:"LastName"`
	Email        string `json:"Email"`
	Disabled     bool   `json:"Disabled"`
}

// AppointmentSettings describes the bookable services and locations,
// used by callers to resolve IDs before creating appointments.
type AppointmentSettings struct {
	Services  []ServiceSetting  `json:"Services"`
	Locations []LocationSetting `json:"Locations"`
}

// ServiceSetting is a bookable service definition.
type ServiceSetting struct {
	ID       string  `json:"Id"`
	Name     string  `json:"Name"`
	Duration int     `json:"Duration"`
	Price    float64 `json:"Price"`
}

// LocationSetting is a bookable location definition.
type LocationSetting struct {
	ID   string `json:"Id"`
	Name string `json:"Name"`
}

// Practice is a record from the partner API.
type Practice struct {
	ID                 string `json:"Id"`
	Name               string `json:"Name"`
	Email              string `json:"Email"`
	ExternalPracticeID string `json:"ExternalPracticeId"`
}
