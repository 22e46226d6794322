package domain

import (
	"time"

	"github.com/google/uuid"
)

type PasswordReset struct {
	ID        int64      `db:"id" json:"id"`
	UserID    uuid.UUID  `db:"user_id" json:"user_id"`
	OTPHash   []byte     `db:"otp_hash" json:"-"`
	OTPSalt   []byte     `db:"otp_salt" json:"-"`
	ExpiresAt time.Time  `db:"expires_at" json:"expires_at"`
	UsedAt    *time.Time `db:"used_at" json:"used_at,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

func (p *PasswordReset) Usable(now time.Time) bool {
	return p.UsedAt == nil && now.Before(p.ExpiresAt)
}
