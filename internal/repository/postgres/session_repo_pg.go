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

const sessionColumns = `id, user_id, token, created_at, expires_at, is_active`

type SessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepo(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) CreateSession(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) (*domain.Session, error) {
	const query = `
		INSERT INTO user_session (user_id, token, expires_at, is_active)
		VALUES ($1, $2, $3, TRUE)
		RETURNING ` + sessionColumns

	row := r.db.QueryRowxContext(ctx, query, userID, token, expiresAt)
	var session domain.Session
	if err := row.StructScan(&session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) DeactivateSession(ctx context.Context, token string) error {
	const query = `
		UPDATE user_session
		SET is_active = FALSE
		WHERE token = $1 AND is_active = TRUE
	`
	result, err := r.db.ExecContext(ctx, query, token)
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

func (r *SessionRepository) FindActiveSession(ctx context.Context, token string) (*domain.Session, error) {
	const query = `
		SELECT ` + sessionColumns + `
		FROM user_session
		WHERE token = $1 AND is_active = TRUE AND expires_at > NOW()
	`
	var session domain.Session
	if err := r.db.GetContext(ctx, &session, query, token); err != nil {
		return nil, err
	}
	return &session, nil
}

var _ ports.SessionRepository = (*SessionRepository)(nil)
