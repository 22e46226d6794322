package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/domain"
	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/repository/ports"
)

var (
	ErrDealNotFound          = errors.New("deal not found")
	ErrDealInvalidStatus     = errors.New("invalid deal status")
	ErrDealInvalidTier       = errors.New("invalid deal tier")
	ErrDealInvalidFrequency  = errors.New("invalid recurring frequency")
	ErrDealNegativeValue     = errors.New("deal value cannot be negative")
	ErrDealInvalidCommission = errors.New("commission percent must be between 0 and 100")
	ErrDealFrequencyRequired = errors.New("recurring deals need a frequency")
)

type DealService struct {
	deals ports.DealRepository
	leads ports.LeadRepository
}

func NewDealService(deals ports.DealRepository, leads ports.LeadRepository) *DealService {
	return &DealService{deals: deals, leads: leads}
}

func (s *DealService) Create(ctx context.Context, userID uuid.UUID, input ports.DealCreate) (*domain.Deal, error) {
	if input.Status == "" {
		input.Status = domain.DealStatusPending
	}
	if err := validateDealFields(input.Status, input.Tier, input.RecurringFrequency, input.DealValue, input.CommissionPercent); err != nil {
		return nil, err
	}
	if input.IsRecurring && input.RecurringFrequency == nil {
		return nil, ErrDealFrequencyRequired
	}
	if _, err := s.leads.FindByID(ctx, userID, input.LeadID); err != nil {
		if isNotFound(err) {
			return nil, ErrLeadNotFound
		}
		return nil, err
	}
	return s.deals.Create(ctx, userID, input)
}

func (s *DealService) Get(ctx context.Context, userID, id uuid.UUID) (*domain.DealWithLead, error) {
	deal, err := s.deals.FindByID(ctx, userID, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrDealNotFound
		}
		return nil, err
	}
	return deal, nil
}

func (s *DealService) List(ctx context.Context, userID uuid.UUID, filter domain.DealFilter) ([]domain.DealWithLead, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, ErrDealInvalidStatus
	}
	if filter.Tier != nil && !filter.Tier.Valid() {
		return nil, ErrDealInvalidTier
	}
	return s.deals.List(ctx, userID, filter)
}

// Update validates the patch against the deal's resulting state, so turning
// on is_recurring without a frequency fails even when the stored deal never
// had one.
func (s *DealService) Update(ctx context.Context, userID, id uuid.UUID, input ports.DealUpdate) (*domain.Deal, error) {
	if input.Status != nil && !input.Status.Valid() {
		return nil, ErrDealInvalidStatus
	}
	if input.Tier != nil && !input.Tier.Valid() {
		return nil, ErrDealInvalidTier
	}
	if input.RecurringFrequency != nil && !input.RecurringFrequency.Valid() {
		return nil, ErrDealInvalidFrequency
	}
	if input.DealValue != nil && *input.DealValue < 0 {
		return nil, ErrDealNegativeValue
	}
	if input.CommissionPercent != nil && (*input.CommissionPercent < 0 || *input.CommissionPercent > 100) {
		return nil, ErrDealInvalidCommission
	}

	if input.IsRecurring != nil || input.RecurringFrequency != nil {
		current, err := s.deals.FindByID(ctx, userID, id)
		if err != nil {
			if isNotFound(err) {
				return nil, ErrDealNotFound
			}
			return nil, err
		}
		recurring := current.IsRecurring
		if input.IsRecurring != nil {
			recurring = *input.IsRecurring
		}
		frequency := current.RecurringFrequency
		if input.RecurringFrequency != nil {
			frequency = input.RecurringFrequency
		}
		if recurring && frequency == nil {
			return nil, ErrDealFrequencyRequired
		}
	}

	deal, err := s.deals.Update(ctx, userID, id, input)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrDealNotFound
		}
		return nil, err
	}
	return deal, nil
}

func (s *DealService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.deals.Delete(ctx, userID, id); err != nil {
		if isNotFound(err) {
			return ErrDealNotFound
		}
		return err
	}
	return nil
}

func validateDealFields(status domain.DealStatus, tier *domain.DealTier, freq *domain.RecurringFrequency, value, commission float64) error {
	if !status.Valid() {
		return ErrDealInvalidStatus
	}
	if tier != nil && !tier.Valid() {
		return ErrDealInvalidTier
	}
	if freq != nil && !freq.Valid() {
		return ErrDealInvalidFrequency
	}
	if value < 0 {
		return ErrDealNegativeValue
	}
	if commission < 0 || commission > 100 {
		return ErrDealInvalidCommission
	}
	return nil
}
