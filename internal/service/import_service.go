package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/csvutil"
	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/domain"
	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/repository/ports"
)

var (
	ErrImportEmptyFile        = errors.New("csv file is empty")
	ErrImportTooLarge         = errors.New("csv file exceeds maximum size")
	ErrImportRowLimitExceeded = errors.New("csv exceeds maximum allowed rows")
)

// ImportSummary reports what happened to each row of an accepted file.
type ImportSummary struct {
	Imported int      `json:"success"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors"`
}

type ImportServiceConfig struct {
	ArchiveBucket  string
	ArchiveEnabled bool
	MaxRows        int
	MaxFileBytes   int64
}

type ImportService struct {
	partners ports.PartnerRepository
	leads    ports.LeadRepository
	storage  ports.ObjectStorage
	cfg      ImportServiceConfig
	now      func() time.Time
}

func NewImportService(partners ports.PartnerRepository, leads ports.LeadRepository, storage ports.ObjectStorage, cfg ImportServiceConfig) *ImportService {
	if cfg.MaxRows <= 0 {
		cfg.MaxRows = 5000
	}
	if cfg.MaxFileBytes <= 0 {
		cfg.MaxFileBytes = 10 * 1024 * 1024
	}
	return &ImportService{
		partners: partners,
		leads:    leads,
		storage:  storage,
		cfg:      cfg,
		now:      time.Now,
	}
}

// ImportPartners validates the whole file before touching the database. Any
// validation error rejects the import; an accepted file is inserted as one
// batch, so a database failure imports nothing.
func (s *ImportService) ImportPartners(ctx context.Context, userID uuid.UUID, filename string, contents []byte) (*ImportSummary, []csvutil.ValidationError, error) {
	if err := s.checkFile(contents); err != nil {
		return nil, nil, err
	}

	result := csvutil.ParsePartnersCSV(contents)
	if !result.IsValid {
		return nil, result.Errors, nil
	}
	if len(result.Rows) == 0 {
		return nil, nil, ErrImportEmptyFile
	}
	if len(result.Rows) > s.cfg.MaxRows {
		return nil, nil, ErrImportRowLimitExceeded
	}

	s.archive(ctx, userID, "partners", filename, contents)

	inputs := make([]ports.PartnerCreate, 0, len(result.Rows))
	for _, row := range result.Rows {
		inputs = append(inputs, ports.PartnerCreate{
			CompanyName: row.CompanyName,
			ContactName: stringPtr(row.ContactName),
			Email:       stringPtr(row.Email),
			Phone:       stringPtr(row.Phone),
			Services:    stringPtr(row.Services),
			Website:     stringPtr(row.Website),
			Location:    stringPtr(row.Location),
			Notes:       stringPtr(row.Notes),
		})
	}

	if _, err := s.partners.CreateBatch(ctx, userID, inputs); err != nil {
		return &ImportSummary{
			Imported: 0,
			Failed:   len(inputs),
			Errors:   []string{fmt.Sprintf("Failed to import partners: %v", err)},
		}, nil, nil
	}

	return &ImportSummary{Imported: len(inputs), Failed: 0, Errors: []string{}}, nil, nil
}

// ImportLeads validates the whole file up front, then imports row by row.
// Partner names are matched case-insensitively against the user's existing
// partners; unknown names get a partner created on the fly. A row that fails
// does not stop the rows after it.
func (s *ImportService) ImportLeads(ctx context.Context, userID uuid.UUID, filename string, contents []byte) (*ImportSummary, []csvutil.ValidationError, error) {
	if err := s.checkFile(contents); err != nil {
		return nil, nil, err
	}

	result := csvutil.ParseLeadsCSV(contents)
	if !result.IsValid {
		return nil, result.Errors, nil
	}
	if len(result.Rows) == 0 {
		return nil, nil, ErrImportEmptyFile
	}
	if len(result.Rows) > s.cfg.MaxRows {
		return nil, nil, ErrImportRowLimitExceeded
	}

	s.archive(ctx, userID, "leads", filename, contents)

	names, err := s.partners.ListNames(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	byCompany := make(map[string]uuid.UUID, len(names))
	for id, company := range names {
		byCompany[strings.ToLower(company)] = id
	}

	summary := &ImportSummary{Errors: []string{}}
	for _, row := range result.Rows {
		key := strings.ToLower(row.PartnerCompanyName)
		partnerID, ok := byCompany[key]
		if !ok {
			partner, err := s.partners.Create(ctx, userID, ports.PartnerCreate{
				CompanyName: row.PartnerCompanyName,
			})
			if err != nil {
				summary.Failed++
				summary.Errors = append(summary.Errors,
					fmt.Sprintf("Failed to create partner %q: %v", row.PartnerCompanyName, err))
				continue
			}
			partnerID = partner.ID
			byCompany[key] = partnerID
		}

		introDate := s.now()
		if row.IntroDate != "" {
			// Format already checked during validation.
			if parsed, err := time.Parse(csvutil.DateLayout, row.IntroDate); err == nil {
				introDate = parsed
			}
		}

		_, err := s.leads.Create(ctx, userID, ports.LeadCreate{
			PartnerID:           partnerID,
			LeadName:            row.LeadName,
			LeadCompany:         stringPtr(row.LeadCompany),
			Direction:           domain.LeadDirection(row.Direction),
			Status:              row.Status,
			IntroDate:           introDate,
			ContactInfo:         stringPtr(row.ContactInfo),
			CommunicationMethod: stringPtr(row.CommunicationMethod),
			Notes:               stringPtr(row.Notes),
		})
		if err != nil {
			summary.Failed++
			summary.Errors = append(summary.Errors,
				fmt.Sprintf("Failed to import lead %q: %v", row.LeadName, err))
			continue
		}
		summary.Imported++
	}

	return summary, nil, nil
}

// ExportPartners renders every partner the user owns as a CSV download.
func (s *ImportService) ExportPartners(ctx context.Context, userID uuid.UUID) (string, string, error) {
	withStats, err := s.partners.List(ctx, userID)
	if err != nil {
		return "", "", err
	}
	partners := make([]domain.Partner, 0, len(withStats))
	for _, p := range withStats {
		partners = append(partners, p.Partner)
	}
	return csvutil.ExportFilename("partners", s.now()), csvutil.GeneratePartnersCSV(partners), nil
}

// ExportLeads renders every lead the user owns, with partner names resolved.
func (s *ImportService) ExportLeads(ctx context.Context, userID uuid.UUID) (string, string, error) {
	leads, err := s.leads.List(ctx, userID, domain.LeadFilter{})
	if err != nil {
		return "", "", err
	}
	return csvutil.ExportFilename("leads", s.now()), csvutil.GenerateLeadsCSV(leads), nil
}

func (s *ImportService) checkFile(contents []byte) error {
	if len(contents) == 0 {
		return ErrImportEmptyFile
	}
	if int64(len(contents)) > s.cfg.MaxFileBytes {
		return ErrImportTooLarge
	}
	return nil
}

// archive keeps a copy of the accepted upload for troubleshooting. A failed
// archive never fails the import.
func (s *ImportService) archive(ctx context.Context, userID uuid.UUID, kind, filename string, contents []byte) {
	if !s.cfg.ArchiveEnabled || s.storage == nil || s.cfg.ArchiveBucket == "" {
		return
	}
	objectName := fmt.Sprintf("imports/%s/%s/%s/%s",
		kind, userID.String(), uuid.New().String(), sanitizeUploadName(filename))
	_, err := s.storage.Upload(ctx, s.cfg.ArchiveBucket, objectName, "text/csv",
		bytes.NewReader(contents), int64(len(contents)))
	if err != nil {
		log.Printf("import: archive %s upload failed: %v", kind, err)
	}
}

func sanitizeUploadName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "upload.csv"
	}
	name = filepath.Base(name)
	return strings.ReplaceAll(name, " ", "_")
}
