package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/domain"
)

type DealCreate struct {
	LeadID             uuid.UUID
	DealValue          float64
	CommissionPercent  float64
	IsRecurring        bool
	RecurringFrequency *domain.RecurringFrequency
	Tier               *domain.DealTier
	Status             domain.DealStatus
	CloseDate          *time.Time
	Notes              *string
}

type DealUpdate struct {
	DealValue          *float64
	CommissionPercent  *float64
	IsRecurring        *bool
	RecurringFrequency *domain.RecurringFrequency
	Tier               *domain.DealTier
	Status             *domain.DealStatus
	CloseDate          *time.Time
	Notes              *string
}

type DealRepository interface {
	Create(ctx context.Context, userID uuid.UUID, input DealCreate) (*domain.Deal, error)
	FindByID(ctx context.Context, userID, id uuid.UUID) (*domain.DealWithLead, error)
	List(ctx context.Context, userID uuid.UUID, filter domain.DealFilter) ([]domain.DealWithLead, error)
	Update(ctx context.Context, userID, id uuid.UUID, input DealUpdate) (*domain.Deal, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	DeleteAllByUser(ctx context.Context, userID uuid.UUID) error
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}
