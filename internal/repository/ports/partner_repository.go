package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/domain"
)

// PartnerCreate carries the insertable partner columns. Optional fields stay
// nil so the database stores NULL rather than empty strings.
type PartnerCreate struct {
	CompanyName string
	ContactName *string
	Email       *string
	Phone       *string
	Services    *string
	Website     *string
	Location    *string
	Notes       *string
}

type PartnerUpdate struct {
	CompanyName *string
	ContactName *string
	Email       *string
	Phone       *string
	Services    *string
	Website     *string
	Location    *string
	Notes       *string
}

type PartnerRepository interface {
	Create(ctx context.Context, userID uuid.UUID, input PartnerCreate) (*domain.Partner, error)
	// CreateBatch inserts all partners in one statement. It is all-or-nothing:
	// any failure inserts none of them.
	CreateBatch(ctx context.Context, userID uuid.UUID, inputs []PartnerCreate) ([]domain.Partner, error)
	FindByID(ctx context.Context, userID, id uuid.UUID) (*domain.Partner, error)
	List(ctx context.Context, userID uuid.UUID) ([]domain.PartnerWithStats, error)
	// ListNames returns id and company_name for every partner the user owns,
	// for building the import lookup map.
	ListNames(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]string, error)
	Update(ctx context.Context, userID, id uuid.UUID, input PartnerUpdate) (*domain.Partner, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	// DeleteAllByUser removes every partner the user owns; leads and deals
	// cascade at the database level.
	DeleteAllByUser(ctx context.Context, userID uuid.UUID) error
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}
