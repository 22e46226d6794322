package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/domain"
	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/repository/ports"
)

type DashboardRepository struct {
	db *sqlx.DB
}

func NewDashboardRepo(db *sqlx.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// Stats counts partners and leads for the user. The intro date window applies
// to lead counts only; partners are counted unconditionally.
func (r *DashboardRepository) Stats(ctx context.Context, userID uuid.UUID, filter domain.DashboardFilter) (*domain.DashboardStats, error) {
	stats := &domain.DashboardStats{
		LeadsByStatus: make(map[string]int64, len(domain.LeadStatuses)),
	}
	for _, status := range domain.LeadStatuses {
		stats.LeadsByStatus[status] = 0
	}

	const partnersQuery = `
		SELECT COUNT(*)
		FROM partners
		WHERE user_id = $1
	`
	if err := r.db.GetContext(ctx, &stats.TotalPartners, partnersQuery, userID); err != nil {
		return nil, err
	}

	conditions, params := leadWindowConditions(userID, filter)
	query := `
		SELECT l.direction, l.status, COUNT(*) AS count
		FROM leads l
		WHERE ` + strings.Join(conditions, " AND ") + `
		GROUP BY direction, status
	`

	var rows []struct {
		Direction domain.LeadDirection `db:"direction"`
		Status    string               `db:"status"`
		Count     int64                `db:"count"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, params...); err != nil {
		return nil, err
	}

	for _, row := range rows {
		stats.TotalLeads += row.Count
		switch row.Direction {
		case domain.LeadDirectionMade:
			stats.LeadsMade += row.Count
		case domain.LeadDirectionReceived:
			stats.LeadsReceived += row.Count
		}
		stats.LeadsByStatus[row.Status] += row.Count
	}
	return stats, nil
}

// TopPartners ranks the user's partners by intro count within the window.
// Partners without a lead in the window do not appear.
func (r *DashboardRepository) TopPartners(ctx context.Context, userID uuid.UUID, filter domain.DashboardFilter, limit int) ([]domain.TopPartner, error) {
	conditions, params := leadWindowConditions(userID, filter)
	params = append(params, limit)
	query := `
		SELECT p.id AS partner_id, p.company_name, COUNT(l.id) AS intro_count
		FROM leads l
		JOIN partners p ON p.id = l.partner_id
		WHERE ` + strings.Join(conditions, " AND ") + `
		GROUP BY p.id, p.company_name
		ORDER BY intro_count DESC, p.company_name ASC
		LIMIT ` + fmt.Sprintf("$%d", len(params))

	partners := make([]domain.TopPartner, 0)
	if err := r.db.SelectContext(ctx, &partners, query, params...); err != nil {
		return nil, err
	}
	return partners, nil
}

// RecentLeads returns the newest leads in the window by creation time.
func (r *DashboardRepository) RecentLeads(ctx context.Context, userID uuid.UUID, filter domain.DashboardFilter, limit int) ([]domain.LeadWithPartner, error) {
	conditions, params := leadWindowConditions(userID, filter)
	params = append(params, limit)
	query := `
		SELECT
			l.id, l.user_id, l.partner_id, l.lead_name, l.lead_company, l.direction,
			l.status, l.intro_date, l.contact_info, l.communication_method, l.notes,
			l.created_at, l.updated_at,
			p.company_name AS partner_company_name
		FROM leads l
		JOIN partners p ON p.id = l.partner_id
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY l.created_at DESC, l.id DESC
		LIMIT ` + fmt.Sprintf("$%d", len(params))

	leads := make([]domain.LeadWithPartner, 0)
	if err := r.db.SelectContext(ctx, &leads, query, params...); err != nil {
		return nil, err
	}
	return leads, nil
}

func leadWindowConditions(userID uuid.UUID, filter domain.DashboardFilter) ([]string, []any) {
	conditions := []string{"l.user_id = $1"}
	params := []any{userID}
	if filter.DateFrom != nil {
		params = append(params, *filter.DateFrom)
		conditions = append(conditions, fmt.Sprintf("l.intro_date >= $%d", len(params)))
	}
	if filter.DateTo != nil {
		params = append(params, *filter.DateTo)
		conditions = append(conditions, fmt.Sprintf("l.intro_date <= $%d", len(params)))
	}
	return conditions, params
}

var _ ports.DashboardRepository = (*DashboardRepository)(nil)
