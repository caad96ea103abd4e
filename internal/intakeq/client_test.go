package intakeq

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSearchClients(t *testing.T) {
	var gotAuth, gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("X-Auth-Key")
		gotQuery = r.URL.RawQuery
		if r.URL.Path != "/clients" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"ClientId": 42, "Name": "Jane Doe", "Email": "jane@example.com", "Phone": "555-0123"},
		})
	}))
	defer ts.Close()

	c := NewClient("key-abc", nil, WithBaseURL(ts.URL))
	clients, err := c.SearchClients(context.Background(), ClientQuery{Search: "jane", Page: 2})
	if err != nil {
		t.Fatalf("SearchClients error: %v", err)
	}
	if gotAuth != "key-abc" {
		t.Errorf("auth header = %q, want key-abc", gotAuth)
	}
	if gotQuery != "page=2&search=jane" {
		t.Errorf("query = %q", gotQuery)
	}
	if len(clients) != 1 || clients[0].ClientID != 42 || clients[0].Name != "Jane Doe" {
		t.Fatalf("unexpected clients: %+v", clients)
	}
}

func TestGetClientProfile(t *testing.T) {
	dob := time.Date(1985, 6, 15, 0, 0, 0, 0, time.UTC).UnixMilli()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/clients/profile/42" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ClientId": 42, "Name": "Jane Doe", "Phone": "555-0123", "DateOfBirth": dob,
		})
	}))
	defer ts.Close()

	c := NewClient("key", nil, WithBaseURL(ts.URL))
	profile, err := c.GetClientProfile(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetClientProfile error: %v", err)
	}
	birth, ok := profile.BirthDate()
	if !ok {
		t.Fatal("expected birth date")
	}
	if birth.Year() != 1985 || birth.Month() != time.June {
		t.Errorf("unexpected birth date: %v", birth)
	}
}

func TestGetAppointmentsQueryBuilding(t *testing.T) {
	var gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode([]map[string]any{})
	}))
	defer ts.Close()

	c := NewClient("key", nil, WithBaseURL(ts.URL))
	_, err := c.GetAppointments(context.Background(), AppointmentQuery{
		ClientSearch: "Jane Doe",
		StartDate:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("GetAppointments error: %v", err)
	}
	if gotQuery != "client=Jane+Doe&endDate=2026-03-31&startDate=2026-03-01" {
		t.Errorf("query = %q", gotQuery)
	}
}

func TestCreateAppointmentPostsDTO(t *testing.T) {
	var gotBody CreateAppointmentDTO
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"Id": "appt_1", "Status": "confirmed"})
	}))
	defer ts.Close()

	c := NewClient("key", nil, WithBaseURL(ts.URL))
	created, err := c.CreateAppointment(context.Background(), CreateAppointmentDTO{
		ClientID:    42,
		ServiceID:   "svc_1",
		UtcDateTime: 1772534400,
		Status:      "confirmed",
	})
	if err != nil {
		t.Fatalf("CreateAppointment error: %v", err)
	}
	if created.ID != "appt_1" {
		t.Errorf("created.ID = %q", created.ID)
	}
	if gotBody.UtcDateTime != 1772534400 || gotBody.ClientID != 42 {
		t.Errorf("unexpected DTO: %+v", gotBody)
	}
}

func TestGetInvoicesByClientEpochFields(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("clientId"); got != "42" {
			t.Errorf("clientId = %q", got)
		}
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{
				"Id": "inv_1", "Number": 1001, "AmountDue": 150.0,
				"DueDate": 1772534400, "IssuedDate": 1770000000, "Currency": "USD",
				"Items": []map[string]any{{"Description": "Consult", "Price": 150.0, "Units": 1, "TotalAmount": 150.0}},
			},
		})
	}))
	defer ts.Close()

	c := NewClient("key", nil, WithBaseURL(ts.URL))
	invoices, err := c.GetInvoicesByClient(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetInvoicesByClient error: %v", err)
	}
	if len(invoices) != 1 || invoices[0].DueDate != 1772534400 {
		t.Fatalf("unexpected invoices: %+v", invoices)
	}
	if len(invoices[0].Items) != 1 || invoices[0].Items[0].Description != "Consult" {
		t.Errorf("unexpected items: %+v", invoices[0].Items)
	}
}

func TestAPIErrorCarriesUpstreamBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"Message":"invalid api key"}`, http.StatusUnauthorized)
	}))
	defer ts.Close()

	c := NewClient("bad-key", nil, WithBaseURL(ts.URL))
	_, err := c.SearchClients(context.Background(), ClientQuery{Search: "jane"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error is not *APIError: %v", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d", apiErr.StatusCode)
	}
	if apiErr.Body == "" || apiErr.Error() != apiErr.Body {
		t.Errorf("Error() should return the raw body, got %q", apiErr.Error())
	}
}

func TestListPractitioners(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("includeInactive"); got != "true" {
			t.Errorf("includeInactive = %q", got)
		}
		_ = json.NewEncoder(w).Encode([]map[string]any{{"Id": "pr_1", "CompleteName": "Dr. Smith"}})
	}))
	defer ts.Close()

	c := NewClient("key", nil, WithBaseURL(ts.URL))
	practitioners, err := c.ListPractitioners(context.Background(), true)
	if err != nil {
		t.Fatalf("ListPractitioners error: %v", err)
	}
	if len(practitioners) != 1 || practitioners[0].CompleteName != "Dr. Smith" {
		t.Fatalf("unexpected practitioners: %+v", practitioners)
	}
}
