package minio

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/partnertrackhq/PartnerTrack_CRM_BackEnd/internal/repository/ports"
)

func NewClient(endpoint, key, secret string, useSSL bool) (*minio.Client, error) {
	return minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(key, secret, ""),
		Secure: useSSL,
	})
}

// Storage uploads objects and resolves their public URLs. When publicURL is
// empty the endpoint itself is used as the URL base.
type Storage struct {
	client    *minio.Client
	endpoint  string
	useSSL    bool
	publicURL string
}

func NewStorage(client *minio.Client, endpoint string, useSSL bool, publicURL string) *Storage {
	return &Storage{
		client:    client,
		endpoint:  endpoint,
		useSSL:    useSSL,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

func (s *Storage) Upload(ctx context.Context, bucket, objectName, contentType string, reader io.Reader, size int64) (string, error) {
	_, err := s.client.PutObject(ctx, bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("minio: put object %s/%s: %w", bucket, objectName, err)
	}
	return s.objectURL(bucket, objectName), nil
}

func (s *Storage) objectURL(bucket, objectName string) string {
	if s.publicURL != "" {
		return fmt.Sprintf("%s/%s/%s", s.publicURL, bucket, objectName)
	}
	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, bucket, objectName)
}

var _ ports.ObjectStorage = (*Storage)(nil)
