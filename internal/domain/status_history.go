package domain

import (
	"time"

	"github.com/google/uuid"
)

// StatusHistory is an append-only record of a lead status transition. The
// application never updates or deletes these rows.
type StatusHistory struct {
	ID        uuid.UUID `db:"id" json:"id"`
	LeadID    uuid.UUID `db:"lead_id" json:"lead_id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Status    string    `db:"status" json:"status"`
	Notes     *string   `db:"notes" json:"notes,omitempty"`
	ChangedAt time.Time `db:"changed_at" json:"changed_at"`
}
