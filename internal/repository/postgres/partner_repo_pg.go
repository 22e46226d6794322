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

const partnerColumns = `id, user_id, company_name, contact_name, email, phone, services, website, location, notes, created_at, updated_at`

type PartnerRepository struct {
	db *sqlx.DB
}

func NewPartnerRepo(db *sqlx.DB) *PartnerRepository {
	return &PartnerRepository{db: db}
}

func (r *PartnerRepository) Create(ctx context.Context, userID uuid.UUID, input ports.PartnerCreate) (*domain.Partner, error) {
	const query = `
		INSERT INTO partners (user_id, company_name, contact_name, email, phone, services, website, location, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + partnerColumns

	row := r.db.QueryRowxContext(ctx, query,
		userID, input.CompanyName, input.ContactName, input.Email, input.Phone,
		input.Services, input.Website, input.Location, input.Notes)

	var partner domain.Partner
	if err := row.StructScan(&partner); err != nil {
		return nil, err
	}
	return &partner, nil
}

// CreateBatch inserts every partner in a single statement so a failure
// inserts none of them.
func (r *PartnerRepository) CreateBatch(ctx context.Context, userID uuid.UUID, inputs []ports.PartnerCreate) ([]domain.Partner, error) {
	if len(inputs) == 0 {
		return []domain.Partner{}, nil
	}

	var (
		values strings.Builder
		params = make([]any, 0, len(inputs)*9)
	)
	for i, input := range inputs {
		if i > 0 {
			values.WriteString(", ")
		}
		base := i * 9
		fmt.Fprintf(&values, "($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9)
		params = append(params,
			userID, input.CompanyName, input.ContactName, input.Email, input.Phone,
			input.Services, input.Website, input.Location, input.Notes)
	}

	query := `
		INSERT INTO partners (user_id, company_name, contact_name, email, phone, services, website, location, notes)
		VALUES ` + values.String() + `
		RETURNING ` + partnerColumns

	rows, err := r.db.QueryxContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	inserted := make([]domain.Partner, 0, len(inputs))
	for rows.Next() {
		var partner domain.Partner
		if err := rows.StructScan(&partner); err != nil {
			return nil, err
		}
		inserted = append(inserted, partner)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return inserted, nil
}

func (r *PartnerRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*domain.Partner, error) {
	const query = `
		SELECT ` + partnerColumns + `
		FROM partners
		WHERE id = $1 AND user_id = $2
	`
	var partner domain.Partner
	if err := r.db.GetContext(ctx, &partner, query, id, userID); err != nil {
		return nil, err
	}
	return &partner, nil
}

func (r *PartnerRepository) List(ctx context.Context, userID uuid.UUID) ([]domain.PartnerWithStats, error) {
	const query = `
		SELECT
			p.id, p.user_id, p.company_name, p.contact_name, p.email, p.phone,
			p.services, p.website, p.location, p.notes, p.created_at, p.updated_at,
			COUNT(l.id) AS intro_count
		FROM partners p
		LEFT JOIN leads l ON l.partner_id = p.id
		WHERE p.user_id = $1
		GROUP BY p.id
		ORDER BY p.company_name ASC, p.id ASC
	`
	rows, err := r.db.QueryxContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	partners := make([]domain.PartnerWithStats, 0)
	for rows.Next() {
		var partner domain.PartnerWithStats
		if err := rows.StructScan(&partner); err != nil {
			return nil, err
		}
		partners = append(partners, partner)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return partners, nil
}

func (r *PartnerRepository) ListNames(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]string, error) {
	const query = `
		SELECT id, company_name
		FROM partners
		WHERE user_id = $1
	`
	rows, err := r.db.QueryxContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make(map[uuid.UUID]string)
	for rows.Next() {
		var (
			id          uuid.UUID
			companyName string
		)
		if err := rows.Scan(&id, &companyName); err != nil {
			return nil, err
		}
		names[id] = companyName
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

func (r *PartnerRepository) Update(ctx context.Context, userID, id uuid.UUID, input ports.PartnerUpdate) (*domain.Partner, error) {
	const query = `
		UPDATE partners
		SET company_name = COALESCE($3, company_name),
		    contact_name = COALESCE($4, contact_name),
		    email = COALESCE($5, email),
		    phone = COALESCE($6, phone),
		    services = COALESCE($7, services),
		    website = COALESCE($8, website),
		    location = COALESCE($9, location),
		    notes = COALESCE($10, notes),
		    updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + partnerColumns

	row := r.db.QueryRowxContext(ctx, query, id, userID,
		input.CompanyName, input.ContactName, input.Email, input.Phone,
		input.Services, input.Website, input.Location, input.Notes)

	var partner domain.Partner
	if err := row.StructScan(&partner); err != nil {
		return nil, err
	}
	return &partner, nil
}

func (r *PartnerRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	const query = `
		DELETE FROM partners
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

func (r *PartnerRepository) DeleteAllByUser(ctx context.Context, userID uuid.UUID) error {
	const query = `
		DELETE FROM partners
		WHERE user_id = $1
	`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

func (r *PartnerRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	const query = `
		SELECT COUNT(*)
		FROM partners
		WHERE user_id = $1
	`
	var count int64
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, err
	}
	return count, nil
}

var _ ports.PartnerRepository = (*PartnerRepository)(nil)
