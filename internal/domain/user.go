package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	FullName     *string   `db:"full_name" json:"full_name,omitempty"`
	PasswordHash []byte    `db:"password_hash" json:"-"`
	PasswordSalt []byte    `db:"password_salt" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// HasPassword reports whether the account can sign in with email/password.
// Google-only accounts have no stored hash.
func (u *User) HasPassword() bool {
	return len(u.PasswordHash) > 0 && len(u.PasswordSalt) > 0
}
