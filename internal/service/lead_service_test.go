package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/domain"
	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/repository/ports"
)

func seedLead(t *testing.T, partners *memPartnerRepo, leads *memLeadRepo, userID uuid.UUID) *domain.Lead {
	t.Helper()
	partner, err := partners.Create(context.Background(), userID, ports.PartnerCreate{CompanyName: "Acme Corporation"})
	if err != nil {
		t.Fatalf("seed partner: %v", err)
	}
	lead, err := leads.Create(context.Background(), userID, ports.LeadCreate{
		PartnerID: partner.ID,
		LeadName:  "Alice Johnson",
		Direction: domain.LeadDirectionMade,
		Status:    domain.LeadStatusEngaged,
		IntroDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("seed lead: %v", err)
	}
	return lead
}

func TestLeadService_StatusChangeAppendsOneHistoryEntry(t *testing.T) {
	partners := newMemPartnerRepo()
	leads := newMemLeadRepo()
	history := &memHistoryRepo{}
	svc := NewLeadService(leads, partners, history)
	userID := uuid.New()
	lead := seedLead(t, partners, leads, userID)

	status := domain.LeadStatusBookedCall
	notes := "call scheduled for friday"
	updated, err := svc.Update(context.Background(), userID, lead.ID, ports.LeadUpdate{
		Status: &status,
		Notes:  &notes,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != domain.LeadStatusBookedCall {
		t.Fatalf("expected status updated, got %q", updated.Status)
	}
	if len(history.entries) != 1 {
		t.Fatalf("expected exactly 1 history entry, got %d", len(history.entries))
	}
	entry := history.entries[0]
	if entry.LeadID != lead.ID || entry.Status != domain.LeadStatusBookedCall {
		t.Fatalf("history entry mismatch: %+v", entry)
	}
	if entry.Notes != nil {
		t.Fatalf("history entry must not carry the update's notes, got %q", *entry.Notes)
	}
	updatedLead, err := leads.FindByID(context.Background(), userID, lead.ID)
	if err != nil {
		t.Fatalf("reload lead: %v", err)
	}
	if updatedLead.Notes == nil || *updatedLead.Notes != notes {
		t.Fatalf("expected notes stored on the lead itself")
	}
}

func TestLeadService_SameStatusWritesNoHistory(t *testing.T) {
	partners := newMemPartnerRepo()
	leads := newMemLeadRepo()
	history := &memHistoryRepo{}
	svc := NewLeadService(leads, partners, history)
	userID := uuid.New()
	lead := seedLead(t, partners, leads, userID)

	status := domain.LeadStatusEngaged
	if _, err := svc.Update(context.Background(), userID, lead.ID, ports.LeadUpdate{Status: &status}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history.entries) != 0 {
		t.Fatalf("unchanged status must not write history, got %d entries", len(history.entries))
	}
}

func TestLeadService_NotesOnlyUpdateWritesNoHistory(t *testing.T) {
	partners := newMemPartnerRepo()
	leads := newMemLeadRepo()
	history := &memHistoryRepo{}
	svc := NewLeadService(leads, partners, history)
	userID := uuid.New()
	lead := seedLead(t, partners, leads, userID)

	notes := "left a voicemail"
	if _, err := svc.Update(context.Background(), userID, lead.ID, ports.LeadUpdate{Notes: &notes}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history.entries) != 0 {
		t.Fatalf("notes-only update must not write history, got %d entries", len(history.entries))
	}
}

func TestLeadService_FailedUpdateWritesNoHistory(t *testing.T) {
	partners := newMemPartnerRepo()
	leads := newMemLeadRepo()
	history := &memHistoryRepo{}
	svc := NewLeadService(leads, partners, history)
	userID := uuid.New()
	lead := seedLead(t, partners, leads, userID)

	leads.updateErr = errors.New("connection reset")
	status := domain.LeadStatusClosed
	if _, err := svc.Update(context.Background(), userID, lead.ID, ports.LeadUpdate{Status: &status}); err == nil {
		t.Fatalf("expected update error")
	}
	if len(history.entries) != 0 {
		t.Fatalf("failed update must not write history, got %d entries", len(history.entries))
	}
}

func TestLeadService_RejectsUnknownStatus(t *testing.T) {
	partners := newMemPartnerRepo()
	leads := newMemLeadRepo()
	svc := NewLeadService(leads, partners, &memHistoryRepo{})
	userID := uuid.New()
	lead := seedLead(t, partners, leads, userID)

	status := "Ghosted"
	if _, err := svc.Update(context.Background(), userID, lead.ID, ports.LeadUpdate{Status: &status}); !errors.Is(err, ErrLeadInvalidStatus) {
		t.Fatalf("expected ErrLeadInvalidStatus, got %v", err)
	}

	_, err := svc.Create(context.Background(), userID, ports.LeadCreate{
		PartnerID: lead.PartnerID,
		LeadName:  "Bob Williams",
		Direction: domain.LeadDirectionReceived,
		Status:    "Ghosted",
		IntroDate: time.Now(),
	})
	if !errors.Is(err, ErrLeadInvalidStatus) {
		t.Fatalf("expected ErrLeadInvalidStatus on create, got %v", err)
	}
}

func TestLeadService_CreateRequiresOwnedPartner(t *testing.T) {
	partners := newMemPartnerRepo()
	leads := newMemLeadRepo()
	svc := NewLeadService(leads, partners, &memHistoryRepo{})

	_, err := svc.Create(context.Background(), uuid.New(), ports.LeadCreate{
		PartnerID: uuid.New(),
		LeadName:  "Alice Johnson",
		Direction: domain.LeadDirectionMade,
		Status:    domain.LeadStatusEngaged,
		IntroDate: time.Now(),
	})
	if !errors.Is(err, ErrPartnerNotFound) {
		t.Fatalf("expected ErrPartnerNotFound, got %v", err)
	}
}

func TestLeadService_HistoryNewestFirst(t *testing.T) {
	partners := newMemPartnerRepo()
	leads := newMemLeadRepo()
	history := &memHistoryRepo{}
	svc := NewLeadService(leads, partners, history)
	userID := uuid.New()
	lead := seedLead(t, partners, leads, userID)

	for _, status := range []string{domain.LeadStatusBookedCall, domain.LeadStatusProposalSent, domain.LeadStatusClosed} {
		s := status
		if _, err := svc.Update(context.Background(), userID, lead.ID, ports.LeadUpdate{Status: &s}); err != nil {
			t.Fatalf("update to %q: %v", status, err)
		}
	}

	entries, err := svc.History(context.Background(), userID, lead.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 history entries, got %d", len(entries))
	}
	if entries[0].Status != domain.LeadStatusClosed {
		t.Fatalf("expected newest entry first, got %q", entries[0].Status)
	}
}
