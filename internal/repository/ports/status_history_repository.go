package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/domain"
)

// StatusHistoryRepository is append-only: entries are inserted and listed,
// never modified.
type StatusHistoryRepository interface {
	Append(ctx context.Context, userID, leadID uuid.UUID, status string, notes *string) (*domain.StatusHistory, error)
	// ListByLead returns entries newest first (changed_at descending).
	ListByLead(ctx context.Context, userID, leadID uuid.UUID) ([]domain.StatusHistory, error)
}
