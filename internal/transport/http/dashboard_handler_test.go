package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestParseDashboardFilter(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/stats?date_from=2024-01-01&date_to=2024-06-30", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	filter, err := parseDashboardFilter(c)
	if err != nil {
		t.Fatalf("parseDashboardFilter returned error: %v", err)
	}
	if filter.DateFrom == nil || !filter.DateFrom.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date_from: %v", filter.DateFrom)
	}
	if filter.DateTo == nil || !filter.DateTo.Equal(time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date_to: %v", filter.DateTo)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/stats", nil)
	c = e.NewContext(req, httptest.NewRecorder())
	filter, err = parseDashboardFilter(c)
	if err != nil {
		t.Fatalf("empty filter must parse, got %v", err)
	}
	if filter.DateFrom != nil || filter.DateTo != nil {
		t.Fatalf("expected open window, got %+v", filter)
	}
}

func TestParseDashboardFilterBadDate(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/stats?date_from=01-02-2024", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	if _, err := parseDashboardFilter(c); err == nil {
		t.Fatal("expected error for malformed date_from, got nil")
	}
}

func TestIntQueryParam(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/top-partners?limit=25", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	if got := intQueryParam(c, "limit", 0); got != 25 {
		t.Fatalf("expected 25, got %d", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/top-partners?limit=lots", nil)
	c = e.NewContext(req, httptest.NewRecorder())
	if got := intQueryParam(c, "limit", 0); got != 0 {
		t.Fatalf("expected fallback for malformed limit, got %d", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/top-partners", nil)
	c = e.NewContext(req, httptest.NewRecorder())
	if got := intQueryParam(c, "limit", 7); got != 7 {
		t.Fatalf("expected fallback 7, got %d", got)
	}
}
