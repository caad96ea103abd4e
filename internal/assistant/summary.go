package assistant

import (
	"fmt"
	"sort"
	"strings"
)

// Voice summaries are deterministic text for a channel with no display.
// Formats here are load-bearing: callers and call scripts depend on the
// exact wording, ordering and pluralization.

const voiceDateTimeLayout = "January 02, 2006 at 3:04 PM"
const voiceDateLayout = "January 02, 2006"

// VoiceText renders the client summary as a single spoken sentence.
// Age, phone, next-appointment and balance clauses appear only when
// the underlying data is present.
func (s *ClientSummary) VoiceText() string {
	var b strings.Builder
	b.WriteString("Client: " + s.Name)

	if s.HasAge {
		fmt.Fprintf(&b, ", Age: %d", s.Age)
	}
	if s.Phone != "" {
		b.WriteString(", Phone: " + s.Phone)
	}

	if len(s.UpcomingAppointments) > 0 {
		next := s.UpcomingAppointments[0]
		for _, a := range s.UpcomingAppointments[1:] {
			if a.StartTime.Before(next.StartTime) {
				next = a
			}
		}
		fmt.Fprintf(&b, ". Next appointment: %s with %s",
			next.StartTime.Format(voiceDateTimeLayout), next.PractitionerName)
	}

	if len(s.OutstandingInvoices) > 0 {
		var total float64
		for _, inv := range s.OutstandingInvoices {
			total += inv.AmountDue
		}
		fmt.Fprintf(&b, ". Outstanding balance: %s", formatCurrency(total))
	}

	return b.String()
}

// AppointmentSummaryText renders an appointment list for voice
// playback, earliest start time first. The input slice is not mutated.
func AppointmentSummaryText(appointments []AppointmentInfo) string {
	if len(appointments) == 0 {
		return "No appointments found."
	}

	ordered := make([]AppointmentInfo, len(appointments))
	copy(ordered, appointments)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].StartTime.Before(ordered[j].StartTime)
	})

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d appointment%s: ", len(ordered), pluralSuffix(len(ordered)))
	for _, a := range ordered {
		fmt.Fprintf(&b, "%s with %s for %s. ",
			a.StartTime.Format(voiceDateTimeLayout), a.PractitionerName, a.ServiceName)
	}
	return strings.TrimSpace(b.String())
}

// InvoiceSummaryText renders an invoice list for voice playback,
// earliest due date first. The header total sums AmountDue across all
// passed invoices. The input slice is not mutated.
func InvoiceSummaryText(invoices []InvoiceInfo) string {
	if len(invoices) == 0 {
		return "No invoices found."
	}

	var total float64
	for _, inv := range invoices {
		total += inv.AmountDue
	}

	ordered := make([]InvoiceInfo, len(invoices))
	copy(ordered, invoices)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].DueDate.Before(ordered[j].DueDate)
	})

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d invoice%s with a total outstanding balance of %s. ",
		len(ordered), pluralSuffix(len(ordered)), formatCurrency(total))
	for _, inv := range ordered {
		fmt.Fprintf(&b, "Invoice %d due %s for %s. ",
			inv.Number, inv.DueDate.Format(voiceDateLayout), formatCurrency(inv.AmountDue))
	}
	return strings.TrimSpace(b.String())
}

// Outstanding returns the invoices with a strictly positive amount due.
// Pure and idempotent; never touches the upstream API.
func Outstanding(invoices []InvoiceInfo) []InvoiceInfo {
	outstanding := make([]InvoiceInfo, 0, len(invoices))
	for _, inv := range invoices {
		if inv.AmountDue > 0 {
			outstanding = append(outstanding, inv)
		}
	}
	return outstanding
}

func formatCurrency(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

func pluralSuffix(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
