package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/domain"
)

type ProfileRepository interface {
	FindByUser(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	// Upsert creates the profile row on first update and merges non-nil
	// fields afterwards.
	Upsert(ctx context.Context, userID uuid.UUID, input domain.ProfileUpdate) (*domain.Profile, error)
}
