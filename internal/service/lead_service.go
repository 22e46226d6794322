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
	ErrLeadNotFound         = errors.New("lead not found")
	ErrLeadNameRequired     = errors.New("lead name is required")
	ErrLeadInvalidDirection = errors.New(`direction must be either "made" or "received"`)
	ErrLeadInvalidStatus    = errors.New("invalid lead status")
)

type LeadService struct {
	leads    ports.LeadRepository
	partners ports.PartnerRepository
	history  ports.StatusHistoryRepository
}

func NewLeadService(leads ports.LeadRepository, partners ports.PartnerRepository, history ports.StatusHistoryRepository) *LeadService {
	return &LeadService{leads: leads, partners: partners, history: history}
}

func (s *LeadService) Create(ctx context.Context, userID uuid.UUID, input ports.LeadCreate) (*domain.Lead, error) {
	input.LeadName = strings.TrimSpace(input.LeadName)
	if input.LeadName == "" {
		return nil, ErrLeadNameRequired
	}
	if !input.Direction.Valid() {
		return nil, ErrLeadInvalidDirection
	}
	if !domain.ValidLeadStatus(input.Status) {
		return nil, ErrLeadInvalidStatus
	}
	if _, err := s.partners.FindByID(ctx, userID, input.PartnerID); err != nil {
		if isNotFound(err) {
			return nil, ErrPartnerNotFound
		}
		return nil, err
	}
	return s.leads.Create(ctx, userID, input)
}

func (s *LeadService) Get(ctx context.Context, userID, id uuid.UUID) (*domain.LeadWithPartner, error) {
	lead, err := s.leads.FindByID(ctx, userID, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrLeadNotFound
		}
		return nil, err
	}
	return lead, nil
}

func (s *LeadService) List(ctx context.Context, userID uuid.UUID, filter domain.LeadFilter) ([]domain.LeadWithPartner, error) {
	for _, status := range filter.Statuses {
		if !domain.ValidLeadStatus(status) {
			return nil, ErrLeadInvalidStatus
		}
	}
	if filter.Direction != nil && !filter.Direction.Valid() {
		return nil, ErrLeadInvalidDirection
	}
	return s.leads.List(ctx, userID, filter)
}

// Update applies the change and, when it moved the lead to a different
// status, appends exactly one history entry. A failed update writes no
// history.
func (s *LeadService) Update(ctx context.Context, userID, id uuid.UUID, input ports.LeadUpdate) (*domain.Lead, error) {
	if input.LeadName != nil {
		trimmed := strings.TrimSpace(*input.LeadName)
		if trimmed == "" {
			return nil, ErrLeadNameRequired
		}
		input.LeadName = &trimmed
	}
	if input.Direction != nil && !input.Direction.Valid() {
		return nil, ErrLeadInvalidDirection
	}
	if input.Status != nil && !domain.ValidLeadStatus(*input.Status) {
		return nil, ErrLeadInvalidStatus
	}
	if input.PartnerID != nil {
		if _, err := s.partners.FindByID(ctx, userID, *input.PartnerID); err != nil {
			if isNotFound(err) {
				return nil, ErrPartnerNotFound
			}
			return nil, err
		}
	}

	previous, err := s.leads.FindByID(ctx, userID, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrLeadNotFound
		}
		return nil, err
	}

	lead, err := s.leads.Update(ctx, userID, id, input)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrLeadNotFound
		}
		return nil, err
	}

	if input.Status != nil && *input.Status != previous.Status {
		// History records the transition only; the payload's notes belong to
		// the lead itself, not the history row.
		if _, err := s.history.Append(ctx, userID, id, *input.Status, nil); err != nil {
			return nil, err
		}
	}

	return lead, nil
}

func (s *LeadService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.leads.Delete(ctx, userID, id); err != nil {
		if isNotFound(err) {
			return ErrLeadNotFound
		}
		return err
	}
	return nil
}

// History returns the lead's status transitions newest first.
func (s *LeadService) History(ctx context.Context, userID, id uuid.UUID) ([]domain.StatusHistory, error) {
	if _, err := s.leads.FindByID(ctx, userID, id); err != nil {
		if isNotFound(err) {
			return nil, ErrLeadNotFound
		}
		return nil, err
	}
	return s.history.ListByLead(ctx, userID, id)
}
