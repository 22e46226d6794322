package domain

import (
	"time"

	"github.com/google/uuid"
)

type LeadDirection string

const (
	LeadDirectionMade     LeadDirection = "made"
	LeadDirectionReceived LeadDirection = "received"
)

func (d LeadDirection) Valid() bool {
	return d == LeadDirectionMade || d == LeadDirectionReceived
}

// Lead statuses are stored as plain text so the set can grow later, but the
// API only accepts these four values.
const (
	LeadStatusEngaged      = "Engaged"
	LeadStatusBookedCall   = "Booked Call"
	LeadStatusProposalSent = "Proposal Sent"
	LeadStatusClosed       = "Closed"
)

var LeadStatuses = []string{
	LeadStatusEngaged,
	LeadStatusBookedCall,
	LeadStatusProposalSent,
	LeadStatusClosed,
}

func ValidLeadStatus(status string) bool {
	for _, s := range LeadStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Lead struct {
	ID                  uuid.UUID     `db:"id" json:"id"`
	UserID              uuid.UUID     `db:"user_id" json:"user_id"`
	PartnerID           uuid.UUID     `db:"partner_id" json:"partner_id"`
	LeadName            string        `db:"lead_name" json:"lead_name"`
	LeadCompany         *string       `db:"lead_company" json:"lead_company,omitempty"`
	Direction           LeadDirection `db:"direction" json:"direction"`
	Status              string        `db:"status" json:"status"`
	IntroDate           time.Time     `db:"intro_date" json:"intro_date"`
	ContactInfo         *string       `db:"contact_info" json:"contact_info,omitempty"`
	CommunicationMethod *string       `db:"communication_method" json:"communication_method,omitempty"`
	Notes               *string       `db:"notes" json:"notes,omitempty"`
	CreatedAt           time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time     `db:"updated_at" json:"updated_at"`
}

// LeadWithPartner joins the owning partner's company name onto a lead.
type LeadWithPartner struct {
	Lead
	PartnerCompanyName string `db:"partner_company_name" json:"partner_company_name"`
}

type LeadFilter struct {
	PartnerID *uuid.UUID
	Direction *LeadDirection
	Statuses  []string
	DateFrom  *time.Time
	DateTo    *time.Time
}
