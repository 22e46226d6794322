package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/domain"
)

type PasswordResetRepository interface {
	Create(ctx context.Context, userID uuid.UUID, otpHash, otpSalt []byte, expiresAt time.Time) (*domain.PasswordReset, error)
	FindLatestByUser(ctx context.Context, userID uuid.UUID) (*domain.PasswordReset, error)
	MarkUsed(ctx context.Context, id int64) error
}
