package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/domain"
	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/repository/ports"
)

const leadColumns = `id, user_id, partner_id, lead_name, lead_company, direction, status, intro_date, contact_info, communication_method, notes, created_at, updated_at`

type LeadRepository struct {
	db *sqlx.DB
}

func NewLeadRepo(db *sqlx.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

func (r *LeadRepository) Create(ctx context.Context, userID uuid.UUID, input ports.LeadCreate) (*domain.Lead, error) {
	const query = `
		INSERT INTO leads (user_id, partner_id, lead_name, lead_company, direction, status, intro_date, contact_info, communication_method, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + leadColumns

	row := r.db.QueryRowxContext(ctx, query,
		userID, input.PartnerID, input.LeadName, input.LeadCompany, input.Direction,
		input.Status, input.IntroDate, input.ContactInfo, input.CommunicationMethod, input.Notes)

	var lead domain.Lead
	if err := row.StructScan(&lead); err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *LeadRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*domain.LeadWithPartner, error) {
	const query = `
		SELECT
			l.id, l.user_id, l.partner_id, l.lead_name, l.lead_company, l.direction,
			l.status, l.intro_date, l.contact_info, l.communication_method, l.notes,
			l.created_at, l.updated_at,
			p.company_name AS partner_company_name
		FROM leads l
		JOIN partners p ON p.id = l.partner_id
		WHERE l.id = $1 AND l.user_id = $2
	`
	var lead domain.LeadWithPartner
	if err := r.db.GetContext(ctx, &lead, query, id, userID); err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *LeadRepository) List(ctx context.Context, userID uuid.UUID, filter domain.LeadFilter) ([]domain.LeadWithPartner, error) {
	var (
		conditions = []string{"l.user_id = $1"}
		params     = []any{userID}
	)

	if filter.PartnerID != nil {
		params = append(params, *filter.PartnerID)
		conditions = append(conditions, fmt.Sprintf("l.partner_id = $%d", len(params)))
	}
	if filter.Direction != nil {
		params = append(params, *filter.Direction)
		conditions = append(conditions, fmt.Sprintf("l.direction = $%d", len(params)))
	}
	if len(filter.Statuses) > 0 {
		params = append(params, pq.StringArray(filter.Statuses))
		conditions = append(conditions, fmt.Sprintf("l.status = ANY($%d)", len(params)))
	}
	if filter.DateFrom != nil {
		params = append(params, *filter.DateFrom)
		conditions = append(conditions, fmt.Sprintf("l.intro_date >= $%d", len(params)))
	}
	if filter.DateTo != nil {
		params = append(params, *filter.DateTo)
		conditions = append(conditions, fmt.Sprintf("l.intro_date <= $%d", len(params)))
	}

	query := `
		SELECT
			l.id, l.user_id, l.partner_id, l.lead_name, l.lead_company, l.direction,
			l.status, l.intro_date, l.contact_info, l.communication_method, l.notes,
			l.created_at, l.updated_at,
			p.company_name AS partner_company_name
		FROM leads l
		JOIN partners p ON p.id = l.partner_id
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY l.intro_date DESC, l.created_at DESC, l.id DESC
	`

	rows, err := r.db.QueryxContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := make([]domain.LeadWithPartner, 0)
	for rows.Next() {
		var lead domain.LeadWithPartner
		if err := rows.StructScan(&lead); err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return leads, nil
}

func (r *LeadRepository) Update(ctx context.Context, userID, id uuid.UUID, input ports.LeadUpdate) (*domain.Lead, error) {
	const query = `
		UPDATE leads
		SET partner_id = COALESCE($3, partner_id),
		    lead_name = COALESCE($4, lead_name),
		    lead_company = COALESCE($5, lead_company),
		    direction = COALESCE($6, direction),
		    status = COALESCE($7, status),
		    intro_date = COALESCE($8, intro_date),
		    contact_info = COALESCE($9, contact_info),
		    communication_method = COALESCE($10, communication_method),
		    notes = COALESCE($11, notes),
		    updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + leadColumns

	row := r.db.QueryRowxContext(ctx, query, id, userID,
		input.PartnerID, input.LeadName, input.LeadCompany, input.Direction,
		input.Status, input.IntroDate, input.ContactInfo, input.CommunicationMethod, input.Notes)

	var lead domain.Lead
	if err := row.StructScan(&lead); err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *LeadRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	const query = `
		DELETE FROM leads
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

func (r *LeadRepository) DeleteAllByUser(ctx context.Context, userID uuid.UUID) error {
	const query = `
		DELETE FROM leads
		WHERE user_id = $1
	`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

func (r *LeadRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	const query = `
		SELECT COUNT(*)
		FROM leads
		WHERE user_id = $1
	`
	var count int64
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, err
	}
	return count, nil
}

var _ ports.LeadRepository = (*LeadRepository)(nil)
