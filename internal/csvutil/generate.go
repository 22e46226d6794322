package csvutil

import (
	"fmt"
	"strings"
	"time"

	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/domain"
)

var partnerExportHeader = []string{
	"company_name", "contact_name", "email", "phone",
	"services", "website", "location", "notes", "created_at",
}

var leadExportHeader = []string{
	"partner_company_name", "lead_name", "lead_company", "direction",
	"status", "intro_date", "contact_info", "communication_method",
	"notes", "created_at",
}

// GeneratePartnersCSV renders partners as CSV text with a header row, every
// value quoted, and absent optionals as empty strings.
func GeneratePartnersCSV(partners []domain.Partner) string {
	var b strings.Builder
	writeQuoted(&b, partnerExportHeader)
	for _, p := range partners {
		writeQuoted(&b, []string{
			p.CompanyName,
			orEmpty(p.ContactName),
			orEmpty(p.Email),
			orEmpty(p.Phone),
			orEmpty(p.Services),
			orEmpty(p.Website),
			orEmpty(p.Location),
			orEmpty(p.Notes),
			p.CreatedAt.Format(DateLayout),
		})
	}
	return b.String()
}

// GenerateLeadsCSV renders leads (with their resolved partner names) as CSV
// text in the fixed export column order.
func GenerateLeadsCSV(leads []domain.LeadWithPartner) string {
	var b strings.Builder
	writeQuoted(&b, leadExportHeader)
	for _, l := range leads {
		company := l.PartnerCompanyName
		if company == "" {
			company = "Unknown"
		}
		writeQuoted(&b, []string{
			company,
			l.LeadName,
			orEmpty(l.LeadCompany),
			string(l.Direction),
			l.Status,
			l.IntroDate.Format(DateLayout),
			orEmpty(l.ContactInfo),
			orEmpty(l.CommunicationMethod),
			orEmpty(l.Notes),
			l.CreatedAt.Format(DateLayout),
		})
	}
	return b.String()
}

// SamplePartnersCSV returns the downloadable partners template: the import
// header plus two illustrative rows.
func SamplePartnersCSV() string {
	var b strings.Builder
	writeQuoted(&b, []string{
		"company_name", "contact_name", "email", "phone",
		"services", "website", "location", "notes",
	})
	writeQuoted(&b, []string{
		"Acme Corporation", "John Doe", "john@acme.com", "555-1234",
		"Software Development, Consulting", "https://acme.com",
		"New York, NY", "Great partner for enterprise clients",
	})
	writeQuoted(&b, []string{
		"Tech Solutions Inc", "Jane Smith", "jane@techsolutions.com", "555-5678",
		"IT Services, Cloud Solutions", "https://techsolutions.com",
		"San Francisco, CA", "Specializes in cloud migrations",
	})
	return b.String()
}

// SampleLeadsCSV returns the downloadable leads template: the import header
// plus two illustrative rows.
func SampleLeadsCSV() string {
	var b strings.Builder
	writeQuoted(&b, []string{
		"partner_company_name", "lead_name", "lead_company", "direction",
		"status", "intro_date", "contact_info", "communication_method", "notes",
	})
	writeQuoted(&b, []string{
		"Acme Corporation", "Alice Johnson", "Johnson Enterprises", "made",
		"Engaged", "2024-01-15", "alice@johnsonent.com", "Email",
		"Interested in consulting services",
	})
	writeQuoted(&b, []string{
		"Tech Solutions Inc", "Bob Williams", "Williams Corp", "received",
		"Booked Call", "2024-01-20", "bob@williamscorp.com", "Phone",
		"Looking for IT support",
	})
	return b.String()
}

// ExportFilename builds the dated download name, e.g. partners-2024-03-01.csv.
func ExportFilename(kind string, now time.Time) string {
	return fmt.Sprintf("%s-%s.csv", kind, now.Format(DateLayout))
}

// writeQuoted appends one CSV line with every field quoted, doubling any
// embedded quotes.
func writeQuoted(b *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(field, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteString("\r\n")
}

func orEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
