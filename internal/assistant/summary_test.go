package assistant

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClientSummaryVoiceText(t *testing.T) {
	apptTime := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		summary ClientSummary
		want    string
	}{
		{
			name:    "name only",
			summary: ClientSummary{Name: "Jane Doe"},
			want:    "Client: Jane Doe",
		},
		{
			name: "full summary",
			summary: ClientSummary{
				Name:   "Jane Doe",
				Age:    34,
				HasAge: true,
				Phone:  "555-0134",
				UpcomingAppointments: []AppointmentInfo{
					{StartTime: apptTime, PractitionerName: "Dr. Smith"},
				},
				OutstandingInvoices: []InvoiceInfo{
					{AmountDue: 120.5},
					{AmountDue: 30},
				},
			},
			want: "Client: Jane Doe, Age: 34, Phone: 555-0134. Next appointment: March 15, 2026 at 2:30 PM with Dr. Smith. Outstanding balance: $150.50",
		},
		{
			name: "earliest appointment wins regardless of order",
			summary: ClientSummary{
				Name: "Jane Doe",
				UpcomingAppointments: []AppointmentInfo{
					{StartTime: apptTime.AddDate(0, 0, 5), PractitionerName: "Dr. Later"},
					{StartTime: apptTime, PractitionerName: "Dr. Smith"},
				},
			},
			want: "Client: Jane Doe. Next appointment: March 15, 2026 at 2:30 PM with Dr. Smith",
		},
		{
			name: "no phone no age",
			summary: ClientSummary{
				Name:                "Jane Doe",
				OutstandingInvoices: []InvoiceInfo{{AmountDue: 42}},
			},
			want: "Client: Jane Doe. Outstanding balance: $42.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.summary.VoiceText())
		})
	}
}

func TestAppointmentSummaryText(t *testing.T) {
	base := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "No appointments found.", AppointmentSummaryText(nil))
	})

	t.Run("single", func(t *testing.T) {
		got := AppointmentSummaryText([]AppointmentInfo{
			{StartTime: base, PractitionerName: "Dr. Smith", ServiceName: "Consultation"},
		})
		assert.Equal(t, "Found 1 appointment: March 15, 2026 at 2:30 PM with Dr. Smith for Consultation.", got)
	})

	t.Run("sorted by start time", func(t *testing.T) {
		input := []AppointmentInfo{
			{StartTime: base.AddDate(0, 0, 1), PractitionerName: "Dr. B", ServiceName: "Followup"},
			{StartTime: base, PractitionerName: "Dr. A", ServiceName: "Consultation"},
		}
		got := AppointmentSummaryText(input)
		assert.Equal(t, "Found 2 appointments: March 15, 2026 at 2:30 PM with Dr. A for Consultation. March 16, 2026 at 2:30 PM with Dr. B for Followup.", got)
		// input order untouched
		assert.Equal(t, "Dr. B", input[0].PractitionerName)
	})
}

func TestInvoiceSummaryText(t *testing.T) {
	due := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "No invoices found.", InvoiceSummaryText(nil))
	})

	t.Run("sorted by due date with header total", func(t *testing.T) {
		got := InvoiceSummaryText([]InvoiceInfo{
			{Number: 102, AmountDue: 75, DueDate: due.AddDate(0, 0, 14)},
			{Number: 101, AmountDue: 120.5, DueDate: due},
		})
		assert.Equal(t, "Found 2 invoices with a total outstanding balance of $195.50. Invoice 101 due April 01, 2026 for $120.50. Invoice 102 due April 15, 2026 for $75.00.", got)
	})

	t.Run("single", func(t *testing.T) {
		got := InvoiceSummaryText([]InvoiceInfo{
			{Number: 7, AmountDue: 10, DueDate: due},
		})
		assert.Equal(t, "Found 1 invoice with a total outstanding balance of $10.00. Invoice 7 due April 01, 2026 for $10.00.", got)
	})
}

func TestOutstanding(t *testing.T) {
	invoices := []InvoiceInfo{
		{Number: 1, AmountDue: 0},
		{Number: 2, AmountDue: 50},
		{Number: 3, AmountDue: -5},
		{Number: 4, AmountDue: 0.01},
	}

	got := Outstanding(invoices)

	assert.Len(t, got, 2)
	assert.Equal(t, 2, got[0].Number)
	assert.Equal(t, 4, got[1].Number)
	// repeated application is stable
	assert.Equal(t, got, Outstanding(got))
}
