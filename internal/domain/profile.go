package domain

import (
	"time"

	"github.com/google/uuid"
)

// Profile holds the optional business details a user fills in under account
// settings. A row is created lazily on the first update.
type Profile struct {
	UserID       uuid.UUID `db:"user_id" json:"user_id"`
	FullName     *string   `db:"full_name" json:"full_name,omitempty"`
	BusinessName *string   `db:"business_name" json:"business_name,omitempty"`
	Phone        *string   `db:"phone" json:"phone,omitempty"`
	Address      *string   `db:"address" json:"address,omitempty"`
	City         *string   `db:"city" json:"city,omitempty"`
	State        *string   `db:"state" json:"state,omitempty"`
	ZipCode      *string   `db:"zip_code" json:"zip_code,omitempty"`
	Country      *string   `db:"country" json:"country,omitempty"`
	AvatarURL    *string   `db:"avatar_url" json:"avatar_url,omitempty"`
	Bio          *string   `db:"bio" json:"bio,omitempty"`
	Website      *string   `db:"website" json:"website,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// ProfileUpdate carries the fields a profile upsert may change. Nil fields
// are left untouched.
type ProfileUpdate struct {
	FullName     *string
	BusinessName *string
	Phone        *string
	Address      *string
	City         *string
	State        *string
	ZipCode      *string
	Country      *string
	AvatarURL    *string
	Bio          *string
	Website      *string
}

// DataStats summarizes how much CRM data a user owns. Shown on the account
// settings page next to the destructive actions.
type DataStats struct {
	PartnersCount int64 `json:"partners_count"`
	LeadsCount    int64 `json:"leads_count"`
	DealsCount    int64 `json:"deals_count"`
}
