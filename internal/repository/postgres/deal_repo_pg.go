package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/domain"
	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/repository/ports"
)

const dealColumns = `id, user_id, lead_id, deal_value, commission_percent, is_recurring, recurring_frequency, tier, status, close_date, notes, created_at, updated_at`

const dealWithLeadSelect = `
	SELECT
		d.id, d.user_id, d.lead_id, d.deal_value, d.commission_percent,
		d.is_recurring, d.recurring_frequency, d.tier, d.status, d.close_date,
		d.notes, d.created_at, d.updated_at,
		l.lead_name, l.lead_company,
		p.id AS partner_id,
		p.company_name AS partner_company_name
	FROM deals d
	JOIN leads l ON l.id = d.lead_id
	JOIN partners p ON p.id = l.partner_id
`

type DealRepository struct {
	db *sqlx.DB
}

func NewDealRepo(db *sqlx.DB) *DealRepository {
	return &DealRepository{db: db}
}

func (r *DealRepository) Create(ctx context.Context, userID uuid.UUID, input ports.DealCreate) (*domain.Deal, error) {
	const query = `
		INSERT INTO deals (user_id, lead_id, deal_value, commission_percent, is_recurring, recurring_frequency, tier, status, close_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + dealColumns

	row := r.db.QueryRowxContext(ctx, query,
		userID, input.LeadID, input.DealValue, input.CommissionPercent, input.IsRecurring,
		input.RecurringFrequency, input.Tier, input.Status, input.CloseDate, input.Notes)

	var deal domain.Deal
	if err := row.StructScan(&deal); err != nil {
		return nil, err
	}
	return &deal, nil
}

func (r *DealRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*domain.DealWithLead, error) {
	query := dealWithLeadSelect + `
	WHERE d.id = $1 AND d.user_id = $2
	`
	var deal domain.DealWithLead
	if err := r.db.GetContext(ctx, &deal, query, id, userID); err != nil {
		return nil, err
	}
	return &deal, nil
}

func (r *DealRepository) List(ctx context.Context, userID uuid.UUID, filter domain.DealFilter) ([]domain.DealWithLead, error) {
	var (
		conditions = []string{"d.user_id = $1"}
		params     = []any{userID}
	)

	if filter.LeadID != nil {
		params = append(params, *filter.LeadID)
		conditions = append(conditions, fmt.Sprintf("d.lead_id = $%d", len(params)))
	}
	if filter.PartnerID != nil {
		params = append(params, *filter.PartnerID)
		conditions = append(conditions, fmt.Sprintf("l.partner_id = $%d", len(params)))
	}
	if filter.Status != nil {
		params = append(params, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("d.status = $%d", len(params)))
	}
	if filter.Tier != nil {
		params = append(params, *filter.Tier)
		conditions = append(conditions, fmt.Sprintf("d.tier = $%d", len(params)))
	}
	if filter.IsRecurring != nil {
		params = append(params, *filter.IsRecurring)
		conditions = append(conditions, fmt.Sprintf("d.is_recurring = $%d", len(params)))
	}
	if filter.DateFrom != nil {
		params = append(params, *filter.DateFrom)
		conditions = append(conditions, fmt.Sprintf("d.close_date >= $%d", len(params)))
	}
	if filter.DateTo != nil {
		params = append(params, *filter.DateTo)
		conditions = append(conditions, fmt.Sprintf("d.close_date <= $%d", len(params)))
	}

	query := dealWithLeadSelect + `
	WHERE ` + strings.Join(conditions, " AND ") + `
	ORDER BY d.created_at DESC, d.id DESC
	`

	rows, err := r.db.QueryxContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deals := make([]domain.DealWithLead, 0)
	for rows.Next() {
		var deal domain.DealWithLead
		if err := rows.StructScan(&deal); err != nil {
			return nil, err
		}
		deals = append(deals, deal)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return deals, nil
}

func (r *DealRepository) Update(ctx context.Context, userID, id uuid.UUID, input ports.DealUpdate) (*domain.Deal, error) {
	const query = `
		UPDATE deals
		SET deal_value = COALESCE($3, deal_value),
		    commission_percent = COALESCE($4, commission_percent),
		    is_recurring = COALESCE($5, is_recurring),
		    recurring_frequency = COALESCE($6, recurring_frequency),
		    tier = COALESCE($7, tier),
		    status = COALESCE($8, status),
		    close_date = COALESCE($9, close_date),
		    notes = COALESCE($10, notes),
		    updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + dealColumns

	row := r.db.QueryRowxContext(ctx, query, id, userID,
		input.DealValue, input.CommissionPercent, input.IsRecurring,
		input.RecurringFrequency, input.Tier, input.Status, input.CloseDate, input.Notes)

	var deal domain.Deal
	if err := row.StructScan(&deal); err != nil {
		return nil, err
	}
	return &deal, nil
}

func (r *DealRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	const query = `
		DELETE FROM deals
		WHERE id = $1 AND user_id = $2
	`
	result, err := r.db.ExecContext(ctx, query, id, userID)
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

func (r *DealRepository) DeleteAllByUser(ctx context.Context, userID uuid.UUID) error {
	const query = `
		DELETE FROM deals
		WHERE user_id = $1
	`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

func (r *DealRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	const query = `
		SELECT COUNT(*)
		FROM deals
		WHERE user_id = $1
	`
	var count int64
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, err
	}
	return count, nil
}

var _ ports.DealRepository = (*DealRepository)(nil)
