package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/domain"
	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/repository/ports"
)

const passwordResetColumns = `id, user_id, otp_hash, otp_salt, expires_at, used_at, created_at`

type PasswordResetRepository struct {
	db *sqlx.DB
}

func NewPasswordResetRepo(db *sqlx.DB) *PasswordResetRepository {
	return &PasswordResetRepository{db: db}
}

func (r *PasswordResetRepository) Create(ctx context.Context, userID uuid.UUID, otpHash, otpSalt []byte, expiresAt time.Time) (*domain.PasswordReset, error) {
	const query = `
		INSERT INTO password_reset (user_id, otp_hash, otp_salt, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + passwordResetColumns

	row := r.db.QueryRowxContext(ctx, query, userID, otpHash, otpSalt, expiresAt)
	var reset domain.PasswordReset
	if err := row.StructScan(&reset); err != nil {
		return nil, err
	}
	return &reset, nil
}

func (r *PasswordResetRepository) FindLatestByUser(ctx context.Context, userID uuid.UUID) (*domain.PasswordReset, error) {
	const query = `
		SELECT ` + passwordResetColumns + `
		FROM password_reset
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`
	var reset domain.PasswordReset
	if err := r.db.GetContext(ctx, &reset, query, userID); err != nil {
		return nil, err
	}
	return &reset, nil
}

func (r *PasswordResetRepository) MarkUsed(ctx context.Context, id int64) error {
	const query = `
		UPDATE password_reset
		SET used_at = NOW()
		WHERE id = $1 AND used_at IS NULL
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

var _ ports.PasswordResetRepository = (*PasswordResetRepository)(nil)
