package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/domain"
	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/repository/ports"
)

// DeleteConfirmation is the exact text a user must type before the account
// is removed.
const DeleteConfirmation = "DELETE"

var ErrDeleteNotConfirmed = errors.New(`type DELETE to confirm account deletion`)

type AccountService struct {
	users    ports.UserRepository
	partners ports.PartnerRepository
	leads    ports.LeadRepository
	deals    ports.DealRepository
}

func NewAccountService(users ports.UserRepository, partners ports.PartnerRepository, leads ports.LeadRepository, deals ports.DealRepository) *AccountService {
	return &AccountService{users: users, partners: partners, leads: leads, deals: deals}
}

func (s *AccountService) Stats(ctx context.Context, userID uuid.UUID) (*domain.DataStats, error) {
	partners, err := s.partners.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	leads, err := s.leads.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	deals, err := s.deals.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &domain.DataStats{
		PartnersCount: partners,
		LeadsCount:    leads,
		DealsCount:    deals,
	}, nil
}

// ClearData wipes every partner, lead, and deal the user owns but keeps the
// account itself. Deleting partners cascades leads, history, and deals; the
// explicit lead and deal deletes catch rows that lost their parent some other
// way.
func (s *AccountService) ClearData(ctx context.Context, userID uuid.UUID) error {
	if err := s.partners.DeleteAllByUser(ctx, userID); err != nil {
		return err
	}
	if err := s.leads.DeleteAllByUser(ctx, userID); err != nil {
		return err
	}
	return s.deals.DeleteAllByUser(ctx, userID)
}

// Delete removes the account and everything it owns. The caller must supply
// the exact confirmation text.
func (s *AccountService) Delete(ctx context.Context, userID uuid.UUID, confirmText string) error {
	if confirmText != DeleteConfirmation {
		return ErrDeleteNotConfirmed
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		if isNotFound(err) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
