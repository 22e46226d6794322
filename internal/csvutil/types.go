package csvutil

import "fmt"

// ValidationError points at a single bad field in an imported file. Row 0
// with field "file" means the file itself could not be parsed.
type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) String() string {
	return fmt.Sprintf("Row %d: %s - %s", e.Row, e.Field, e.Message)
}

// PartnerRow is one normalized record from a partners CSV. All values are
// raw strings exactly as they appeared in the file.
type PartnerRow struct {
	CompanyName string `json:"company_name"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Services    string `json:"services"`
	Website     string `json:"website"`
	Location    string `json:"location"`
	Notes       string `json:"notes"`
}

// LeadRow is one normalized record from a leads CSV.
type LeadRow struct {
	PartnerCompanyName  string `json:"partner_company_name"`
	LeadName            string `json:"lead_name"`
	LeadCompany         string `json:"lead_company"`
	Direction           string `json:"direction"`
	Status              string `json:"status"`
	IntroDate           string `json:"intro_date"`
	ContactInfo         string `json:"contact_info"`
	CommunicationMethod string `json:"communication_method"`
	Notes               string `json:"notes"`
}

// PartnerParseResult partitions a partners CSV into valid rows and errors.
// A row lands in exactly one of the two lists.
type PartnerParseResult struct {
	Rows    []PartnerRow      `json:"rows"`
	Errors  []ValidationError `json:"errors"`
	IsValid bool              `json:"is_valid"`
}

// LeadParseResult partitions a leads CSV into valid rows and errors.
type LeadParseResult struct {
	Rows    []LeadRow         `json:"rows"`
	Errors  []ValidationError `json:"errors"`
	IsValid bool              `json:"is_valid"`
}
