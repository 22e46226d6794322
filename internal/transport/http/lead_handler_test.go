package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/domain"
)

func TestParseLeadListFilter(t *testing.T) {
	partnerID := uuid.New()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/leads", nil)
	q := req.URL.Query()
	q.Set("partner_id", partnerID.String())
	q.Set("direction", "made")
	q.Add("status", "Engaged")
	q.Add("status", "Booked Call")
	q.Set("date_from", "2024-01-01")
	q.Set("date_to", "2024-06-30")
	req.URL.RawQuery = q.Encode()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	filter, err := parseLeadListFilter(c)
	if err != nil {
		t.Fatalf("parseLeadListFilter returned error: %v", err)
	}

	if filter.PartnerID == nil || *filter.PartnerID != partnerID {
		t.Fatalf("expected partner id %s, got %v", partnerID, filter.PartnerID)
	}
	if filter.Direction == nil || *filter.Direction != domain.LeadDirectionMade {
		t.Fatalf("expected direction made, got %v", filter.Direction)
	}
	if len(filter.Statuses) != 2 || filter.Statuses[0] != "Engaged" || filter.Statuses[1] != "Booked Call" {
		t.Fatalf("unexpected statuses: %v", filter.Statuses)
	}
	if filter.DateFrom == nil || !filter.DateFrom.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date_from: %v", filter.DateFrom)
	}
	if filter.DateTo == nil || !filter.DateTo.Equal(time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date_to: %v", filter.DateTo)
	}
}

func TestParseLeadListFilterBadInput(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/leads?partner_id=not-a-uuid", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	if _, err := parseLeadListFilter(c); err == nil {
		t.Fatal("expected error for malformed partner_id, got nil")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/leads?date_from=01-02-2024", nil)
	c = e.NewContext(req, httptest.NewRecorder())
	if _, err := parseLeadListFilter(c); err == nil {
		t.Fatal("expected error for malformed date_from, got nil")
	}
}

func TestParseDealListFilter(t *testing.T) {
	leadID := uuid.New()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/deals", nil)
	q := req.URL.Query()
	q.Set("lead_id", leadID.String())
	q.Set("status", "won")
	q.Set("tier", "gold")
	q.Set("is_recurring", "true")
	req.URL.RawQuery = q.Encode()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	filter, err := parseDealListFilter(c)
	if err != nil {
		t.Fatalf("parseDealListFilter returned error: %v", err)
	}

	if filter.LeadID == nil || *filter.LeadID != leadID {
		t.Fatalf("expected lead id %s, got %v", leadID, filter.LeadID)
	}
	if filter.Status == nil || *filter.Status != domain.DealStatusWon {
		t.Fatalf("expected status won, got %v", filter.Status)
	}
	if filter.Tier == nil || *filter.Tier != domain.DealTierGold {
		t.Fatalf("expected tier gold, got %v", filter.Tier)
	}
	if filter.IsRecurring == nil || !*filter.IsRecurring {
		t.Fatalf("expected is_recurring true, got %v", filter.IsRecurring)
	}
}

func TestParseDealListFilterBadRecurringFlag(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/deals?is_recurring=maybe", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	if _, err := parseDealListFilter(c); err == nil {
		t.Fatal("expected error for malformed is_recurring, got nil")
	}
}

func TestParseDateAcceptsBothLayouts(t *testing.T) {
	if _, err := parseDate("2024-03-01"); err != nil {
		t.Fatalf("date-only layout rejected: %v", err)
	}
	if _, err := parseDate("2024-03-01T10:30:00Z"); err != nil {
		t.Fatalf("RFC3339 layout rejected: %v", err)
	}
	if _, err := parseDate("03/01/2024"); err == nil {
		t.Fatal("expected error for unsupported layout, got nil")
	}
}
