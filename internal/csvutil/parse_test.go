package csvutil

import (
	"strings"
	"testing"
)

func TestParsePartnersCSVHeaderVariants(t *testing.T) {
	csvData := strings.Join([]string{
		"Company Name,CONTACT NAME,Email,phone,Services,Website,location,Notes",
		"Acme Corporation,John Doe,john@acme.com,555-1234,Consulting,https://acme.com,NYC,Key account",
	}, "\n")

	result := ParsePartnersCSV([]byte(csvData))
	if !result.IsValid {
		t.Fatalf("expected valid parse, got %v", result.Errors)
	}
	if len(result.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(result.Rows))
	}
	row := result.Rows[0]
	if row.CompanyName != "Acme Corporation" || row.ContactName != "John Doe" {
		t.Fatalf("header normalization failed: %+v", row)
	}
}

func TestParsePartnersCSVSkipsBlankLines(t *testing.T) {
	csvData := strings.Join([]string{
		"company_name",
		"Acme Corporation",
		"",
		"   ,",
		"Tech Solutions Inc",
	}, "\n")

	result := ParsePartnersCSV([]byte(csvData))
	if !result.IsValid {
		t.Fatalf("expected valid parse, got %v", result.Errors)
	}
	if len(result.Rows) != 2 {
		t.Fatalf("blank lines should be skipped, got %d rows", len(result.Rows))
	}
}

func TestParsePartnersCSVRowNumbering(t *testing.T) {
	csvData := strings.Join([]string{
		"company_name,email",
		"Acme Corporation,john@acme.com",
		",missing",
		"Tech Solutions Inc,bad-email",
	}, "\n")

	result := ParsePartnersCSV([]byte(csvData))
	if result.IsValid {
		t.Fatalf("expected validation errors")
	}
	if len(result.Rows) != 1 {
		t.Fatalf("expected 1 valid row, got %d", len(result.Rows))
	}
	if len(result.Errors) != 3 {
		t.Fatalf("expected 3 errors, got %v", result.Errors)
	}
	// Data rows are numbered from 1, header excluded.
	if result.Errors[0].Row != 2 || result.Errors[1].Row != 2 || result.Errors[2].Row != 3 {
		t.Fatalf("unexpected row numbers: %v", result.Errors)
	}
}

func TestParseLeadsCSVPartitionsRows(t *testing.T) {
	csvData := strings.Join([]string{
		"partner_company_name,lead_name,direction,status,intro_date",
		"Acme Corporation,Alice Johnson,made,Engaged,2024-01-15",
		"Acme Corporation,,made,Engaged,",
		"Tech Solutions Inc,Bob Williams,received,Booked Call,2024-01-20",
	}, "\n")

	result := ParseLeadsCSV([]byte(csvData))
	if result.IsValid {
		t.Fatalf("expected invalid result")
	}
	if len(result.Rows) != 2 {
		t.Fatalf("expected 2 valid rows, got %d", len(result.Rows))
	}
	if len(result.Errors) != 1 || result.Errors[0].Row != 2 || result.Errors[0].Field != "lead_name" {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.Rows[1].LeadName != "Bob Williams" {
		t.Fatalf("rows after a bad one must survive: %+v", result.Rows)
	}
}

func TestParseLeadsCSVShortRecordsPadEmpty(t *testing.T) {
	csvData := "partner_company_name,lead_name,direction,status,notes\n" +
		"Acme Corporation,Alice Johnson,made,Engaged\n"

	result := ParseLeadsCSV([]byte(csvData))
	if !result.IsValid {
		t.Fatalf("short records should pad with empty values, got %v", result.Errors)
	}
	if result.Rows[0].Notes != "" {
		t.Fatalf("expected empty notes, got %q", result.Rows[0].Notes)
	}
}

func TestParseCSVFileLevelFailure(t *testing.T) {
	result := ParsePartnersCSV(nil)
	if result.IsValid {
		t.Fatalf("empty file must be invalid")
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected a single file-level error, got %v", result.Errors)
	}
	ve := result.Errors[0]
	if ve.Row != 0 || ve.Field != "file" || !strings.HasPrefix(ve.Message, "Failed to parse CSV:") {
		t.Fatalf("unexpected file error: %+v", ve)
	}

	// Structurally broken quoting also fails at file level.
	broken := "company_name\n\"unterminated\n"
	result = ParsePartnersCSV([]byte(broken))
	if result.IsValid || len(result.Errors) != 1 || result.Errors[0].Row != 0 {
		t.Fatalf("expected file-level error for broken quoting, got %v", result.Errors)
	}
}

func TestNormalizeHeader(t *testing.T) {
	cases := map[string]string{
		"Company Name":    "company_name",
		" company_name ":  "company_name",
		"COMPANY   NAME":  "company_name",
		"Lead\tName":      "lead_name",
		"intro_date":      "intro_date",
		"Partner Company": "partner_company",
	}
	for input, want := range cases {
		if got := NormalizeHeader(input); got != want {
			t.Fatalf("NormalizeHeader(%q) = %q, want %q", input, got, want)
		}
	}
}
