package domain

import (
	"time"

	"github.com/google/uuid"
)

type DealStatus string

const (
	DealStatusPending DealStatus = "pending"
	DealStatusWon     DealStatus = "won"
	DealStatusLost    DealStatus = "lost"
	DealStatusOnHold  DealStatus = "on_hold"
)

func (s DealStatus) Valid() bool {
	switch s {
	case DealStatusPending, DealStatusWon, DealStatusLost, DealStatusOnHold:
		return true
	}
	return false
}

type DealTier string

const (
	DealTierBronze   DealTier = "bronze"
	DealTierSilver   DealTier = "silver"
	DealTierGold     DealTier = "gold"
	DealTierPlatinum DealTier = "platinum"
)

func (t DealTier) Valid() bool {
	switch t {
	case DealTierBronze, DealTierSilver, DealTierGold, DealTierPlatinum:
		return true
	}
	return false
}

type RecurringFrequency string

const (
	RecurringMonthly   RecurringFrequency = "monthly"
	RecurringQuarterly RecurringFrequency = "quarterly"
	RecurringAnnually  RecurringFrequency = "annually"
)

func (f RecurringFrequency) Valid() bool {
	switch f {
	case RecurringMonthly, RecurringQuarterly, RecurringAnnually:
		return true
	}
	return false
}

type Deal struct {
	ID                 uuid.UUID           `db:"id" json:"id"`
	UserID             uuid.UUID           `db:"user_id" json:"user_id"`
	LeadID             uuid.UUID           `db:"lead_id" json:"lead_id"`
	DealValue          float64             `db:"deal_value" json:"deal_value"`
	CommissionPercent  float64             `db:"commission_percent" json:"commission_percent"`
	IsRecurring        bool                `db:"is_recurring" json:"is_recurring"`
	RecurringFrequency *RecurringFrequency `db:"recurring_frequency" json:"recurring_frequency,omitempty"`
	Tier               *DealTier           `db:"tier" json:"tier,omitempty"`
	Status             DealStatus          `db:"status" json:"status"`
	CloseDate          *time.Time          `db:"close_date" json:"close_date,omitempty"`
	Notes              *string             `db:"notes" json:"notes,omitempty"`
	CreatedAt          time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time           `db:"updated_at" json:"updated_at"`
}

// CommissionAmount derives the commission owed for the deal. It is computed
// on read and never stored.
func (d Deal) CommissionAmount() float64 {
	return d.DealValue * d.CommissionPercent / 100
}

// DealWithLead joins the lead and partner display columns onto a deal.
type DealWithLead struct {
	Deal
	LeadName           string    `db:"lead_name" json:"lead_name"`
	LeadCompany        *string   `db:"lead_company" json:"lead_company,omitempty"`
	PartnerID          uuid.UUID `db:"partner_id" json:"partner_id"`
	PartnerCompanyName string    `db:"partner_company_name" json:"partner_company_name"`
}

type DealFilter struct {
	LeadID      *uuid.UUID
	PartnerID   *uuid.UUID
	Status      *DealStatus
	Tier        *DealTier
	IsRecurring *bool
	DateFrom    *time.Time
	DateTo      *time.Time
}
