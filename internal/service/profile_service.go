package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/domain"
	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/media"
	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/repository/ports"
)

var (
	ErrAvatarTooLarge    = errors.New("avatar exceeds maximum size")
	ErrAvatarEmptyUpload = errors.New("avatar upload is empty")
)

type ProfileServiceConfig struct {
	AvatarBucket       string
	AvatarMaxBytes     int64
	AvatarMaxDimension int
}

type ProfileService struct {
	profiles  ports.ProfileRepository
	storage   ports.ObjectStorage
	processor media.Processor
	cfg       ProfileServiceConfig
}

func NewProfileService(profiles ports.ProfileRepository, storage ports.ObjectStorage, processor media.Processor, cfg ProfileServiceConfig) *ProfileService {
	if cfg.AvatarMaxBytes <= 0 {
		cfg.AvatarMaxBytes = 5 * 1024 * 1024
	}
	if cfg.AvatarMaxDimension <= 0 {
		cfg.AvatarMaxDimension = media.DefaultMaxDimension
	}
	return &ProfileService{profiles: profiles, storage: storage, processor: processor, cfg: cfg}
}

// Get never fails for a user without a profile row; it returns an empty
// profile instead. The row is created on the first update.
func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	profile, err := s.profiles.FindByUser(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return &domain.Profile{UserID: userID}, nil
		}
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) Update(ctx context.Context, userID uuid.UUID, input domain.ProfileUpdate) (*domain.Profile, error) {
	return s.profiles.Upsert(ctx, userID, input)
}

// UploadAvatar processes the image, stores it, and saves the resulting URL on
// the profile.
func (s *ProfileService) UploadAvatar(ctx context.Context, userID uuid.UUID, upload media.Upload) (*domain.Profile, error) {
	if upload.Size == 0 {
		return nil, ErrAvatarEmptyUpload
	}
	if upload.Size > s.cfg.AvatarMaxBytes {
		return nil, ErrAvatarTooLarge
	}

	result, err := s.processor.Process(ctx, upload, s.cfg.AvatarMaxDimension)
	if err != nil {
		return nil, err
	}

	objectName := avatarObjectName(userID, result.ContentType)
	url, err := s.storage.Upload(ctx, s.cfg.AvatarBucket, objectName, result.ContentType,
		bytes.NewReader(result.Bytes), int64(len(result.Bytes)))
	if err != nil {
		return nil, err
	}

	return s.profiles.Upsert(ctx, userID, domain.ProfileUpdate{AvatarURL: &url})
}

func avatarObjectName(userID uuid.UUID, contentType string) string {
	ext := ".jpg"
	if contentType == "image/png" {
		ext = ".png"
	}
	return fmt.Sprintf("avatars/%s/%s%s", userID.String(), uuid.New().String(), ext)
}
