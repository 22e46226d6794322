package domain

import (
	"time"

	"github.com/google/uuid"
)

type Partner struct {
	ID          uuid.UUID `db:"id" json:"id"`
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	CompanyName string    `db:"company_name" json:"company_name"`
	ContactName *string   `db:"contact_name" json:"contact_name,omitempty"`
	Email       *string   `db:"email" json:"email,omitempty"`
	Phone       *string   `db:"phone" json:"phone,omitempty"`
	Services    *string   `db:"services" json:"services,omitempty"`
	Website     *string   `db:"website" json:"website,omitempty"`
	Location    *string   `db:"location" json:"location,omitempty"`
	Notes       *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// PartnerWithStats carries the referral count shown on the partners list.
type PartnerWithStats struct {
	Partner
	IntroCount int64 `db:"intro_count" json:"intro_count"`
}
