package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/domain"
	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/repository/ports"
)

var (
	ErrPartnerNotFound        = errors.New("partner not found")
	ErrPartnerCompanyRequired = errors.New("company name is required")
)

type PartnerService struct {
	partners ports.PartnerRepository
}

func NewPartnerService(partners ports.PartnerRepository) *PartnerService {
	return &PartnerService{partners: partners}
}

func (s *PartnerService) Create(ctx context.Context, userID uuid.UUID, input ports.PartnerCreate) (*domain.Partner, error) {
	input.CompanyName = strings.TrimSpace(input.CompanyName)
	if input.CompanyName == "" {
		return nil, ErrPartnerCompanyRequired
	}
	return s.partners.Create(ctx, userID, input)
}

func (s *PartnerService) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Partner, error) {
	partner, err := s.partners.FindByID(ctx, userID, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrPartnerNotFound
		}
		return nil, err
	}
	return partner, nil
}

func (s *PartnerService) List(ctx context.Context, userID uuid.UUID) ([]domain.PartnerWithStats, error) {
	return s.partners.List(ctx, userID)
}

func (s *PartnerService) Update(ctx context.Context, userID, id uuid.UUID, input ports.PartnerUpdate) (*domain.Partner, error) {
	if input.CompanyName != nil {
		trimmed := strings.TrimSpace(*input.CompanyName)
		if trimmed == "" {
			return nil, ErrPartnerCompanyRequired
		}
		input.CompanyName = &trimmed
	}
	partner, err := s.partners.Update(ctx, userID, id, input)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrPartnerNotFound
		}
		return nil, err
	}
	return partner, nil
}

// Delete removes the partner; its leads, their history, and their deals
// cascade at the database level.
func (s *PartnerService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.partners.Delete(ctx, userID, id); err != nil {
		if isNotFound(err) {
			return ErrPartnerNotFound
		}
		return err
	}
	return nil
}
