package csvutil

import (
	"net/url"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used throughout import and export.
const DateLayout = "2006-01-02"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidatePartnerRow checks a single normalized partner record. rowNumber is
// 1-based and counts data rows only.
func ValidatePartnerRow(row map[string]string, rowNumber int) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(row["company_name"]) == "" {
		errs = append(errs, ValidationError{
			Row:     rowNumber,
			Field:   "company_name",
			Message: "Company name is required",
		})
	}

	if email := strings.TrimSpace(row["email"]); email != "" {
		if !emailPattern.MatchString(email) {
			errs = append(errs, ValidationError{
				Row:     rowNumber,
				Field:   "email",
				Message: "Invalid email format",
			})
		}
	}

	if website := strings.TrimSpace(row["website"]); website != "" {
		if u, err := url.Parse(website); err != nil || !u.IsAbs() || u.Host == "" {
			errs = append(errs, ValidationError{
				Row:     rowNumber,
				Field:   "website",
				Message: "Invalid URL format",
			})
		}
	}

	return errs
}

// ValidateLeadRow checks a single normalized lead record. Direction yields
// at most one error: either missing or invalid, never both.
func ValidateLeadRow(row map[string]string, rowNumber int) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(row["partner_company_name"]) == "" {
		errs = append(errs, ValidationError{
			Row:     rowNumber,
			Field:   "partner_company_name",
			Message: "Partner company name is required",
		})
	}

	if strings.TrimSpace(row["lead_name"]) == "" {
		errs = append(errs, ValidationError{
			Row:     rowNumber,
			Field:   "lead_name",
			Message: "Lead name is required",
		})
	}

	direction := row["direction"]
	if strings.TrimSpace(direction) == "" {
		errs = append(errs, ValidationError{
			Row:     rowNumber,
			Field:   "direction",
			Message: "Direction is required",
		})
	} else if direction != "made" && direction != "received" {
		errs = append(errs, ValidationError{
			Row:     rowNumber,
			Field:   "direction",
			Message: `Direction must be either "made" or "received"`,
		})
	}

	if strings.TrimSpace(row["status"]) == "" {
		errs = append(errs, ValidationError{
			Row:     rowNumber,
			Field:   "status",
			Message: "Status is required",
		})
	}

	if introDate := strings.TrimSpace(row["intro_date"]); introDate != "" {
		if _, err := time.Parse(DateLayout, introDate); err != nil {
			errs = append(errs, ValidationError{
				Row:     rowNumber,
				Field:   "intro_date",
				Message: "Invalid date format (use YYYY-MM-DD)",
			})
		}
	}

	return errs
}
