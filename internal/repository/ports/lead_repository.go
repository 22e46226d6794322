package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/domain"
)

type LeadCreate struct {
	PartnerID           uuid.UUID
	LeadName            string
	LeadCompany         *string
	Direction           domain.LeadDirection
	Status              string
	IntroDate           time.Time
	ContactInfo         *string
	CommunicationMethod *string
	Notes               *string
}

// LeadUpdate carries the updatable lead columns. Nil means "leave as is";
// Status nil in particular means the update does not touch status and no
// history entry should be written.
type LeadUpdate struct {
	PartnerID           *uuid.UUID
	LeadName            *string
	LeadCompany         *string
	Direction           *domain.LeadDirection
	Status              *string
	IntroDate           *time.Time
	ContactInfo         *string
	CommunicationMethod *string
	Notes               *string
}

type LeadRepository interface {
	Create(ctx context.Context, userID uuid.UUID, input LeadCreate) (*domain.Lead, error)
	FindByID(ctx context.Context, userID, id uuid.UUID) (*domain.LeadWithPartner, error)
	List(ctx context.Context, userID uuid.UUID, filter domain.LeadFilter) ([]domain.LeadWithPartner, error)
	Update(ctx context.Context, userID, id uuid.UUID, input LeadUpdate) (*domain.Lead, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	DeleteAllByUser(ctx context.Context, userID uuid.UUID) error
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}
