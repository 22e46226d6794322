package service

import (
	"context"
	"database/sql"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/domain"
	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/repository/ports"
)

type memPartnerRepo struct {
	partners     []domain.Partner
	createErrFor map[string]error
	batchErr     error
}

func newMemPartnerRepo() *memPartnerRepo {
	return &memPartnerRepo{createErrFor: map[string]error{}}
}

func (r *memPartnerRepo) Create(ctx context.Context, userID uuid.UUID, input ports.PartnerCreate) (*domain.Partner, error) {
	if err := r.createErrFor[input.CompanyName]; err != nil {
		return nil, err
	}
	now := time.Now()
	partner := domain.Partner{
		ID:          uuid.New(),
		UserID:      userID,
		CompanyName: input.CompanyName,
		ContactName: input.ContactName,
		Email:       input.Email,
		Phone:       input.Phone,
		Services:    input.Services,
		Website:     input.Website,
		Location:    input.Location,
		Notes:       input.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.partners = append(r.partners, partner)
	return &partner, nil
}

func (r *memPartnerRepo) CreateBatch(ctx context.Context, userID uuid.UUID, inputs []ports.PartnerCreate) ([]domain.Partner, error) {
	if r.batchErr != nil {
		return nil, r.batchErr
	}
	out := make([]domain.Partner, 0, len(inputs))
	for _, input := range inputs {
		partner, err := r.Create(ctx, userID, input)
		if err != nil {
			return nil, err
		}
		out = append(out, *partner)
	}
	return out, nil
}

func (r *memPartnerRepo) FindByID(ctx context.Context, userID, id uuid.UUID) (*domain.Partner, error) {
	for _, p := range r.partners {
		if p.ID == id && p.UserID == userID {
			found := p
			return &found, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *memPartnerRepo) List(ctx context.Context, userID uuid.UUID) ([]domain.PartnerWithStats, error) {
	out := make([]domain.PartnerWithStats, 0, len(r.partners))
	for _, p := range r.partners {
		if p.UserID == userID {
			out = append(out, domain.PartnerWithStats{Partner: p})
		}
	}
	return out, nil
}

func (r *memPartnerRepo) ListNames(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string)
	for _, p := range r.partners {
		if p.UserID == userID {
			names[p.ID] = p.CompanyName
		}
	}
	return names, nil
}

func (r *memPartnerRepo) Update(ctx context.Context, userID, id uuid.UUID, input ports.PartnerUpdate) (*domain.Partner, error) {
	for i, p := range r.partners {
		if p.ID == id && p.UserID == userID {
			if input.CompanyName != nil {
				r.partners[i].CompanyName = *input.CompanyName
			}
			if input.Notes != nil {
				r.partners[i].Notes = input.Notes
			}
			found := r.partners[i]
			return &found, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *memPartnerRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	for i, p := range r.partners {
		if p.ID == id && p.UserID == userID {
			r.partners = append(r.partners[:i], r.partners[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (r *memPartnerRepo) DeleteAllByUser(ctx context.Context, userID uuid.UUID) error {
	kept := r.partners[:0]
	for _, p := range r.partners {
		if p.UserID != userID {
			kept = append(kept, p)
		}
	}
	r.partners = kept
	return nil
}

func (r *memPartnerRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	for _, p := range r.partners {
		if p.UserID == userID {
			count++
		}
	}
	return count, nil
}

type memLeadRepo struct {
	leads        []domain.LeadWithPartner
	createErrFor map[string]error
	updateErr    error
}

func newMemLeadRepo() *memLeadRepo {
	return &memLeadRepo{createErrFor: map[string]error{}}
}

func (r *memLeadRepo) Create(ctx context.Context, userID uuid.UUID, input ports.LeadCreate) (*domain.Lead, error) {
	if err := r.createErrFor[input.LeadName]; err != nil {
		return nil, err
	}
	now := time.Now()
	lead := domain.Lead{
		ID:                  uuid.New(),
		UserID:              userID,
		PartnerID:           input.PartnerID,
		LeadName:            input.LeadName,
		LeadCompany:         input.LeadCompany,
		Direction:           input.Direction,
		Status:              input.Status,
		IntroDate:           input.IntroDate,
		ContactInfo:         input.ContactInfo,
		CommunicationMethod: input.CommunicationMethod,
		Notes:               input.Notes,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	r.leads = append(r.leads, domain.LeadWithPartner{Lead: lead})
	return &lead, nil
}

func (r *memLeadRepo) FindByID(ctx context.Context, userID, id uuid.UUID) (*domain.LeadWithPartner, error) {
	for _, l := range r.leads {
		if l.ID == id && l.UserID == userID {
			found := l
			return &found, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *memLeadRepo) List(ctx context.Context, userID uuid.UUID, filter domain.LeadFilter) ([]domain.LeadWithPartner, error) {
	out := make([]domain.LeadWithPartner, 0, len(r.leads))
	for _, l := range r.leads {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *memLeadRepo) Update(ctx context.Context, userID, id uuid.UUID, input ports.LeadUpdate) (*domain.Lead, error) {
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	for i, l := range r.leads {
		if l.ID == id && l.UserID == userID {
			if input.Status != nil {
				r.leads[i].Status = *input.Status
			}
			if input.Notes != nil {
				r.leads[i].Notes = input.Notes
			}
			if input.LeadName != nil {
				r.leads[i].LeadName = *input.LeadName
			}
			found := r.leads[i].Lead
			return &found, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *memLeadRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	for i, l := range r.leads {
		if l.ID == id && l.UserID == userID {
			r.leads = append(r.leads[:i], r.leads[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (r *memLeadRepo) DeleteAllByUser(ctx context.Context, userID uuid.UUID) error {
	kept := r.leads[:0]
	for _, l := range r.leads {
		if l.UserID != userID {
			kept = append(kept, l)
		}
	}
	r.leads = kept
	return nil
}

func (r *memLeadRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	for _, l := range r.leads {
		if l.UserID == userID {
			count++
		}
	}
	return count, nil
}

type memHistoryRepo struct {
	entries []domain.StatusHistory
}

func (r *memHistoryRepo) Append(ctx context.Context, userID, leadID uuid.UUID, status string, notes *string) (*domain.StatusHistory, error) {
	entry := domain.StatusHistory{
		ID:        uuid.New(),
		LeadID:    leadID,
		UserID:    userID,
		Status:    status,
		Notes:     notes,
		ChangedAt: time.Now(),
	}
	r.entries = append(r.entries, entry)
	return &entry, nil
}

func (r *memHistoryRepo) ListByLead(ctx context.Context, userID, leadID uuid.UUID) ([]domain.StatusHistory, error) {
	out := make([]domain.StatusHistory, 0)
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].LeadID == leadID && r.entries[i].UserID == userID {
			out = append(out, r.entries[i])
		}
	}
	return out, nil
}

type memDealRepo struct {
	deals []domain.DealWithLead
}

func (r *memDealRepo) Create(ctx context.Context, userID uuid.UUID, input ports.DealCreate) (*domain.Deal, error) {
	now := time.Now()
	deal := domain.Deal{
		ID:                 uuid.New(),
		UserID:             userID,
		LeadID:             input.LeadID,
		DealValue:          input.DealValue,
		CommissionPercent:  input.CommissionPercent,
		IsRecurring:        input.IsRecurring,
		RecurringFrequency: input.RecurringFrequency,
		Tier:               input.Tier,
		Status:             input.Status,
		CloseDate:          input.CloseDate,
		Notes:              input.Notes,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	r.deals = append(r.deals, domain.DealWithLead{Deal: deal})
	return &deal, nil
}

func (r *memDealRepo) FindByID(ctx context.Context, userID, id uuid.UUID) (*domain.DealWithLead, error) {
	for _, d := range r.deals {
		if d.ID == id && d.UserID == userID {
			found := d
			return &found, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *memDealRepo) List(ctx context.Context, userID uuid.UUID, filter domain.DealFilter) ([]domain.DealWithLead, error) {
	out := make([]domain.DealWithLead, 0, len(r.deals))
	for _, d := range r.deals {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *memDealRepo) Update(ctx context.Context, userID, id uuid.UUID, input ports.DealUpdate) (*domain.Deal, error) {
	for i, d := range r.deals {
		if d.ID == id && d.UserID == userID {
			if input.Status != nil {
				r.deals[i].Status = *input.Status
			}
			if input.DealValue != nil {
				r.deals[i].DealValue = *input.DealValue
			}
			if input.CommissionPercent != nil {
				r.deals[i].CommissionPercent = *input.CommissionPercent
			}
			if input.IsRecurring != nil {
				r.deals[i].IsRecurring = *input.IsRecurring
			}
			if input.RecurringFrequency != nil {
				r.deals[i].RecurringFrequency = input.RecurringFrequency
			}
			found := r.deals[i].Deal
			return &found, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *memDealRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	for i, d := range r.deals {
		if d.ID == id && d.UserID == userID {
			r.deals = append(r.deals[:i], r.deals[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (r *memDealRepo) DeleteAllByUser(ctx context.Context, userID uuid.UUID) error {
	kept := r.deals[:0]
	for _, d := range r.deals {
		if d.UserID != userID {
			kept = append(kept, d)
		}
	}
	r.deals = kept
	return nil
}

func (r *memDealRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	for _, d := range r.deals {
		if d.UserID == userID {
			count++
		}
	}
	return count, nil
}

type noopStorage struct {
	uploads []string
}

func (s *noopStorage) Upload(ctx context.Context, bucket, objectName, contentType string, reader io.Reader, size int64) (string, error) {
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return "", err
	}
	s.uploads = append(s.uploads, bucket+"/"+objectName)
	return "https://storage.test/" + bucket + "/" + objectName, nil
}
