package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/domain"
	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/repository/ports"
)

func TestDealCommissionAmount(t *testing.T) {
	deal := domain.Deal{DealValue: 10000, CommissionPercent: 12.5}
	if got := deal.CommissionAmount(); got != 1250 {
		t.Fatalf("expected commission 1250, got %v", got)
	}

	zero := domain.Deal{DealValue: 5000, CommissionPercent: 0}
	if got := zero.CommissionAmount(); got != 0 {
		t.Fatalf("expected zero commission, got %v", got)
	}
}

func TestDealService_CreateDefaultsToPending(t *testing.T) {
	partners := newMemPartnerRepo()
	leads := newMemLeadRepo()
	deals := &memDealRepo{}
	svc := NewDealService(deals, leads)
	userID := uuid.New()
	lead := seedLead(t, partners, leads, userID)

	deal, err := svc.Create(context.Background(), userID, ports.DealCreate{
		LeadID:            lead.ID,
		DealValue:         10000,
		CommissionPercent: 12.5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deal.Status != domain.DealStatusPending {
		t.Fatalf("expected pending status by default, got %q", deal.Status)
	}
	if deal.CommissionAmount() != 1250 {
		t.Fatalf("expected commission 1250, got %v", deal.CommissionAmount())
	}
}

func TestDealService_CreateValidation(t *testing.T) {
	partners := newMemPartnerRepo()
	leads := newMemLeadRepo()
	svc := NewDealService(&memDealRepo{}, leads)
	userID := uuid.New()
	lead := seedLead(t, partners, leads, userID)

	badTier := domain.DealTier("diamond")
	if _, err := svc.Create(context.Background(), userID, ports.DealCreate{
		LeadID: lead.ID, Tier: &badTier,
	}); !errors.Is(err, ErrDealInvalidTier) {
		t.Fatalf("expected ErrDealInvalidTier, got %v", err)
	}

	if _, err := svc.Create(context.Background(), userID, ports.DealCreate{
		LeadID: lead.ID, IsRecurring: true,
	}); !errors.Is(err, ErrDealFrequencyRequired) {
		t.Fatalf("expected ErrDealFrequencyRequired, got %v", err)
	}

	if _, err := svc.Create(context.Background(), userID, ports.DealCreate{
		LeadID: lead.ID, CommissionPercent: 150,
	}); !errors.Is(err, ErrDealInvalidCommission) {
		t.Fatalf("expected ErrDealInvalidCommission, got %v", err)
	}

	if _, err := svc.Create(context.Background(), userID, ports.DealCreate{
		LeadID: uuid.New(),
	}); !errors.Is(err, ErrLeadNotFound) {
		t.Fatalf("expected ErrLeadNotFound for unknown lead, got %v", err)
	}
}

func TestDealService_UpdateValidation(t *testing.T) {
	partners := newMemPartnerRepo()
	leads := newMemLeadRepo()
	deals := &memDealRepo{}
	svc := NewDealService(deals, leads)
	userID := uuid.New()
	lead := seedLead(t, partners, leads, userID)

	deal, err := svc.Create(context.Background(), userID, ports.DealCreate{LeadID: lead.ID, DealValue: 100, CommissionPercent: 10})
	if err != nil {
		t.Fatalf("seed deal: %v", err)
	}

	badStatus := domain.DealStatus("archived")
	if _, err := svc.Update(context.Background(), userID, deal.ID, ports.DealUpdate{Status: &badStatus}); !errors.Is(err, ErrDealInvalidStatus) {
		t.Fatalf("expected ErrDealInvalidStatus, got %v", err)
	}

	won := domain.DealStatusWon
	updated, err := svc.Update(context.Background(), userID, deal.ID, ports.DealUpdate{Status: &won})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != domain.DealStatusWon {
		t.Fatalf("expected won status, got %q", updated.Status)
	}

	if _, err := svc.Update(context.Background(), userID, uuid.New(), ports.DealUpdate{Status: &won}); !errors.Is(err, ErrDealNotFound) {
		t.Fatalf("expected ErrDealNotFound, got %v", err)
	}
}

func TestDealService_UpdateRecurringNeedsFrequency(t *testing.T) {
	partners := newMemPartnerRepo()
	leads := newMemLeadRepo()
	deals := &memDealRepo{}
	svc := NewDealService(deals, leads)
	userID := uuid.New()
	lead := seedLead(t, partners, leads, userID)

	deal, err := svc.Create(context.Background(), userID, ports.DealCreate{LeadID: lead.ID, DealValue: 100})
	if err != nil {
		t.Fatalf("seed deal: %v", err)
	}

	recurring := true
	if _, err := svc.Update(context.Background(), userID, deal.ID, ports.DealUpdate{IsRecurring: &recurring}); !errors.Is(err, ErrDealFrequencyRequired) {
		t.Fatalf("expected ErrDealFrequencyRequired, got %v", err)
	}

	monthly := domain.RecurringMonthly
	updated, err := svc.Update(context.Background(), userID, deal.ID, ports.DealUpdate{
		IsRecurring:        &recurring,
		RecurringFrequency: &monthly,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated.IsRecurring || updated.RecurringFrequency == nil || *updated.RecurringFrequency != domain.RecurringMonthly {
		t.Fatalf("expected recurring monthly deal, got %+v", updated)
	}

	// Frequency already stored, so flipping the flag alone is now fine.
	notRecurring := false
	if _, err := svc.Update(context.Background(), userID, deal.ID, ports.DealUpdate{IsRecurring: &notRecurring}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
