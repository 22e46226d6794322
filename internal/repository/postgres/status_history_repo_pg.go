package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/domain"
	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/repository/ports"
)

type StatusHistoryRepository struct {
	db *sqlx.DB
}

func NewStatusHistoryRepo(db *sqlx.DB) *StatusHistoryRepository {
	return &StatusHistoryRepository{db: db}
}

func (r *StatusHistoryRepository) Append(ctx context.Context, userID, leadID uuid.UUID, status string, notes *string) (*domain.StatusHistory, error) {
	const query = `
		INSERT INTO status_history (user_id, lead_id, status, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, lead_id, status, notes, changed_at
	`
	row := r.db.QueryRowxContext(ctx, query, userID, leadID, status, notes)
	var entry domain.StatusHistory
	if err := row.StructScan(&entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *StatusHistoryRepository) ListByLead(ctx context.Context, userID, leadID uuid.UUID) ([]domain.StatusHistory, error) {
	const query = `
		SELECT id, user_id, lead_id, status, notes, changed_at
		FROM status_history
		WHERE lead_id = $1 AND user_id = $2
		ORDER BY changed_at DESC, id DESC
	`
	rows, err := r.db.QueryxContext(ctx, query, leadID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]domain.StatusHistory, 0)
	for rows.Next() {
		var entry domain.StatusHistory
		if err := rows.StructScan(&entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

var _ ports.StatusHistoryRepository = (*StatusHistoryRepository)(nil)
