package domain

import (
	"time"

	"github.com/google/uuid"
)

// DashboardStats summarizes a user's pipeline. Lead counts honor the intro
// date window; the partner count always covers every partner the user owns.
type DashboardStats struct {
	TotalPartners int64            `json:"total_partners"`
	TotalLeads    int64            `json:"total_leads"`
	LeadsMade     int64            `json:"leads_made"`
	LeadsReceived int64            `json:"leads_received"`
	LeadsByStatus map[string]int64 `json:"leads_by_status"`
}

// TopPartner ranks a partner by how many intros it is attached to.
type TopPartner struct {
	PartnerID   uuid.UUID `db:"partner_id" json:"partner_id"`
	CompanyName string    `db:"company_name" json:"company_name"`
	IntroCount  int64     `db:"intro_count" json:"intro_count"`
}

// DashboardFilter windows dashboard queries by lead intro date.
type DashboardFilter struct {
	DateFrom *time.Time
	DateTo   *time.Time
}
