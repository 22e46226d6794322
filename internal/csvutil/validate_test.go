package csvutil

import (
	"strings"
	"testing"
)

func TestValidatePartnerRowRequiresCompanyName(t *testing.T) {
	errs := ValidatePartnerRow(map[string]string{"company_name": "  "}, 3)
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %v", errs)
	}
	if errs[0].Row != 3 || errs[0].Field != "company_name" || errs[0].Message != "Company name is required" {
		t.Fatalf("unexpected error: %+v", errs[0])
	}
}

func TestValidatePartnerRowOptionalFormats(t *testing.T) {
	row := map[string]string{
		"company_name": "Acme Corporation",
		"email":        "not-an-email",
		"website":      "acme.com",
	}
	errs := ValidatePartnerRow(row, 1)
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %v", errs)
	}
	if errs[0].Field != "email" || errs[0].Message != "Invalid email format" {
		t.Fatalf("unexpected email error: %+v", errs[0])
	}
	if errs[1].Field != "website" || errs[1].Message != "Invalid URL format" {
		t.Fatalf("unexpected website error: %+v", errs[1])
	}

	// Empty optionals are fine.
	if errs := ValidatePartnerRow(map[string]string{"company_name": "Acme"}, 1); len(errs) != 0 {
		t.Fatalf("empty optionals should validate, got %v", errs)
	}
	if errs := ValidatePartnerRow(map[string]string{
		"company_name": "Acme",
		"email":        "john@acme.com",
		"website":      "https://acme.com",
	}, 1); len(errs) != 0 {
		t.Fatalf("valid formats should pass, got %v", errs)
	}
}

func TestValidateLeadRowRequiredFields(t *testing.T) {
	errs := ValidateLeadRow(map[string]string{}, 1)
	if len(errs) != 4 {
		t.Fatalf("expected 4 errors for an empty row, got %v", errs)
	}
	fields := make(map[string]string, len(errs))
	for _, e := range errs {
		fields[e.Field] = e.Message
	}
	if fields["partner_company_name"] != "Partner company name is required" {
		t.Fatalf("missing partner company error: %v", fields)
	}
	if fields["lead_name"] != "Lead name is required" {
		t.Fatalf("missing lead name error: %v", fields)
	}
	if fields["direction"] != "Direction is required" {
		t.Fatalf("missing direction error: %v", fields)
	}
	if fields["status"] != "Status is required" {
		t.Fatalf("missing status error: %v", fields)
	}
}

func TestValidateLeadRowDirectionSingleError(t *testing.T) {
	row := map[string]string{
		"partner_company_name": "Acme",
		"lead_name":            "Alice",
		"direction":            "sideways",
		"status":               "Engaged",
	}
	errs := ValidateLeadRow(row, 2)
	if len(errs) != 1 {
		t.Fatalf("direction should yield exactly one error, got %v", errs)
	}
	if errs[0].Message != `Direction must be either "made" or "received"` {
		t.Fatalf("unexpected message: %q", errs[0].Message)
	}

	// Direction matching is case sensitive.
	row["direction"] = "Made"
	if errs := ValidateLeadRow(row, 2); len(errs) != 1 {
		t.Fatalf("capitalized direction should be rejected, got %v", errs)
	}
	row["direction"] = "received"
	if errs := ValidateLeadRow(row, 2); len(errs) != 0 {
		t.Fatalf("valid direction should pass, got %v", errs)
	}
}

func TestValidateLeadRowIntroDate(t *testing.T) {
	row := map[string]string{
		"partner_company_name": "Acme",
		"lead_name":            "Alice",
		"direction":            "made",
		"status":               "Engaged",
		"intro_date":           "01/15/2024",
	}
	errs := ValidateLeadRow(row, 1)
	if len(errs) != 1 || errs[0].Message != "Invalid date format (use YYYY-MM-DD)" {
		t.Fatalf("expected date format error, got %v", errs)
	}

	row["intro_date"] = "2024-01-15"
	if errs := ValidateLeadRow(row, 1); len(errs) != 0 {
		t.Fatalf("ISO date should pass, got %v", errs)
	}

	row["intro_date"] = ""
	if errs := ValidateLeadRow(row, 1); len(errs) != 0 {
		t.Fatalf("empty intro date should pass, got %v", errs)
	}
}

func TestValidationErrorString(t *testing.T) {
	err := ValidationError{Row: 3, Field: "email", Message: "Invalid email format"}
	if got := err.String(); got != "Row 3: email - Invalid email format" {
		t.Fatalf("unexpected rendering %q", got)
	}
	if !strings.Contains(err.String(), "Row 3") {
		t.Fatalf("rendering should lead with the row number")
	}
}
