package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/domain"
)

type DashboardRepository interface {
	Stats(ctx context.Context, userID uuid.UUID, filter domain.DashboardFilter) (*domain.DashboardStats, error)
	TopPartners(ctx context.Context, userID uuid.UUID, filter domain.DashboardFilter, limit int) ([]domain.TopPartner, error)
	RecentLeads(ctx context.Context, userID uuid.UUID, filter domain.DashboardFilter, limit int) ([]domain.LeadWithPartner, error)
}
