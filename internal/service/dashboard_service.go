package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/domain"
	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/repository/ports"
)

type DashboardServiceConfig struct {
	TopPartnersLimit int
	RecentLeadsLimit int
	MaxLimit         int
}

type DashboardService struct {
	dashboards ports.DashboardRepository
	cfg        DashboardServiceConfig
}

func NewDashboardService(dashboards ports.DashboardRepository, cfg DashboardServiceConfig) *DashboardService {
	if cfg.TopPartnersLimit <= 0 {
		cfg.TopPartnersLimit = 10
	}
	if cfg.RecentLeadsLimit <= 0 {
		cfg.RecentLeadsLimit = 5
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = 50
	}
	return &DashboardService{dashboards: dashboards, cfg: cfg}
}

func (s *DashboardService) Stats(ctx context.Context, userID uuid.UUID, filter domain.DashboardFilter) (*domain.DashboardStats, error) {
	return s.dashboards.Stats(ctx, userID, filter)
}

func (s *DashboardService) TopPartners(ctx context.Context, userID uuid.UUID, filter domain.DashboardFilter, limit int) ([]domain.TopPartner, error) {
	return s.dashboards.TopPartners(ctx, userID, filter, s.clampLimit(limit, s.cfg.TopPartnersLimit))
}

func (s *DashboardService) RecentLeads(ctx context.Context, userID uuid.UUID, filter domain.DashboardFilter, limit int) ([]domain.LeadWithPartner, error) {
	return s.dashboards.RecentLeads(ctx, userID, filter, s.clampLimit(limit, s.cfg.RecentLeadsLimit))
}

// clampLimit substitutes the default for missing limits and caps oversized
// ones so a dashboard request cannot pull the whole table.
func (s *DashboardService) clampLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > s.cfg.MaxLimit {
		return s.cfg.MaxLimit
	}
	return limit
}
