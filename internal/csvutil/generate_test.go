package csvutil

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/domain"
)

func strPtr(v string) *string { return &v }

func TestGeneratePartnersCSVQuotesEverything(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	partners := []domain.Partner{
		{
			CompanyName: `Quotes "R" Us, Inc`,
			ContactName: strPtr("John Doe"),
			CreatedAt:   created,
		},
	}

	out := GeneratePartnersCSV(partners)
	lines := strings.Split(strings.TrimRight(out, "\r\n"), "\r\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus 1 row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], `"company_name","contact_name"`) {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[1], `"Quotes ""R"" Us, Inc"`) {
		t.Fatalf("embedded quotes not escaped: %q", lines[1])
	}
	// Absent optionals render as quoted empty strings.
	if !strings.Contains(lines[1], `"",""`) {
		t.Fatalf("expected empty optional columns: %q", lines[1])
	}
	if !strings.HasSuffix(lines[1], `"2024-03-01"`) {
		t.Fatalf("expected created_at as date only: %q", lines[1])
	}
}

func TestGeneratePartnersCSVRoundTrip(t *testing.T) {
	created := time.Now()
	partners := []domain.Partner{
		{CompanyName: "Acme Corporation", Email: strPtr("john@acme.com"), CreatedAt: created},
		{CompanyName: "Tech Solutions Inc", Website: strPtr("https://techsolutions.com"), CreatedAt: created},
		{CompanyName: "Commas, Co", Notes: strPtr("line one\nline two"), CreatedAt: created},
	}

	out := GeneratePartnersCSV(partners)
	parsed := ParsePartnersCSV([]byte(out))
	if !parsed.IsValid {
		t.Fatalf("generated CSV should re-import cleanly: %v", parsed.Errors)
	}
	if len(parsed.Rows) != len(partners) {
		t.Fatalf("expected %d rows, got %d", len(partners), len(parsed.Rows))
	}
	for i, p := range partners {
		if parsed.Rows[i].CompanyName != p.CompanyName {
			t.Fatalf("row %d company mismatch: %q != %q", i, parsed.Rows[i].CompanyName, p.CompanyName)
		}
	}
}

func TestGenerateLeadsCSVUnknownPartnerFallback(t *testing.T) {
	leads := []domain.LeadWithPartner{
		{
			Lead: domain.Lead{
				ID:        uuid.New(),
				LeadName:  "Alice Johnson",
				Direction: domain.LeadDirectionMade,
				Status:    domain.LeadStatusEngaged,
				IntroDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			},
			PartnerCompanyName: "",
		},
	}

	out := GenerateLeadsCSV(leads)
	if !strings.Contains(out, `"Unknown"`) {
		t.Fatalf("missing partner name should fall back to Unknown: %q", out)
	}
}

func TestSampleTemplatesParseCleanly(t *testing.T) {
	partners := ParsePartnersCSV([]byte(SamplePartnersCSV()))
	if !partners.IsValid {
		t.Fatalf("partner template should validate: %v", partners.Errors)
	}
	if len(partners.Rows) != 2 {
		t.Fatalf("partner template should have 2 rows, got %d", len(partners.Rows))
	}
	if partners.Rows[0].CompanyName != "Acme Corporation" || partners.Rows[1].CompanyName != "Tech Solutions Inc" {
		t.Fatalf("unexpected template companies: %+v", partners.Rows)
	}

	leads := ParseLeadsCSV([]byte(SampleLeadsCSV()))
	if !leads.IsValid {
		t.Fatalf("lead template should validate: %v", leads.Errors)
	}
	if len(leads.Rows) != 2 {
		t.Fatalf("lead template should have 2 rows, got %d", len(leads.Rows))
	}
	if leads.Rows[0].LeadName != "Alice Johnson" || leads.Rows[1].Direction != "received" {
		t.Fatalf("unexpected template leads: %+v", leads.Rows)
	}
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC)
	if got := ExportFilename("partners", now); got != "partners-2024-03-01.csv" {
		t.Fatalf("unexpected filename %q", got)
	}
	if got := ExportFilename("leads", now); got != "leads-2024-03-01.csv" {
		t.Fatalf("unexpected filename %q", got)
	}
}
