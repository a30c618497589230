package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/remy-site/internal/config"
	"github.com/MKhiriev/remy-site/internal/logger"
	"github.com/MKhiriev/remy-site/internal/objectstore"
	"github.com/MKhiriev/remy-site/models"
)

const (
	// MaxUploadSize is the largest image a presigned URL is issued for.
	MaxUploadSize = 30 << 20
	// PresignExpiry bounds how long an upload URL stays usable.
	PresignExpiry = 60 * time.Second

	defaultUploadFolder = "uploads"
	randomKeyBytes      = 12
)

var (
	imageExtensions = map[string]string{
		"image/jpeg": "jpg",
		"image/png":  "png",
		"image/webp": "webp",
		"image/gif":  "gif",
	}

	uploadFolders = map[string]struct{}{
		"hero":    {},
		"gallery": {},
		"uploads": {},
		"reviews": {},
	}

	objectKeyPattern = regexp.MustCompile(`^[a-zA-Z0-9/_\-.]+$`)
)

// uploadService signs browser uploads and removes objects. storage is nil
// when no bucket is configured.
type uploadService struct {
	storage    objectstore.ObjectStorage
	publicBase string
	now        func() time.Time

	logger *logger.Logger
}

func NewUploadService(storage objectstore.ObjectStorage, cfg config.Objects, logger *logger.Logger) UploadService {
	return &uploadService{
		storage:    storage,
		publicBase: strings.TrimRight(strings.TrimSpace(cfg.PublicBaseURL), "/"),
		now:        time.Now,
		logger:     logger,
	}
}

// Presign checks the declared image and returns where to PUT it and where
// it will be served from.
func (s *uploadService) Presign(ctx context.Context, request models.PresignRequest) (models.PresignedUpload, error) {
	if s.storage == nil {
		return models.PresignedUpload{}, ErrObjectStorageDisabled
	}

	ext, ok := imageExtensions[request.ContentType]
	if !ok {
		return models.PresignedUpload{}, ErrUnsupportedImageType
	}

	size, err := strconv.ParseFloat(request.Size.String(), 64)
	if err != nil || math.IsInf(size, 0) || math.IsNaN(size) || size <= 0 {
		return models.PresignedUpload{}, ErrInvalidSize
	}
	if size > MaxUploadSize {
		return models.PresignedUpload{}, ErrFileTooLarge
	}

	folder := request.Folder
	if _, allowed := uploadFolders[folder]; !allowed {
		folder = defaultUploadFolder
	}

	suffix, err := randomHex(randomKeyBytes)
	if err != nil {
		return models.PresignedUpload{}, fmt.Errorf("cannot generate object key: %w", err)
	}
	key := fmt.Sprintf("%s/%d-%s.%s", folder, s.now().UnixMilli(), suffix, ext)

	uploadURL, err := s.storage.PresignPut(ctx, key, request.ContentType, PresignExpiry)
	if err != nil {
		return models.PresignedUpload{}, fmt.Errorf("presign failed: %w", err)
	}

	logger.FromContext(ctx).Info().Str("key", key).Str("content_type", request.ContentType).Msg("upload presigned")
	return models.PresignedUpload{
		UploadURL: uploadURL,
		PublicURL: s.publicBase + "/" + key,
		Key:       key,
	}, nil
}

func (s *uploadService) Delete(ctx context.Context, publicURL string) (string, error) {
	if s.storage == nil {
		return "", ErrObjectStorageDisabled
	}
	if publicURL == "" {
		return "", ErrMissingURL
	}

	key, ok := s.keyFromPublicURL(publicURL)
	if !ok {
		return "", ErrInvalidURL
	}

	if err := s.storage.Delete(ctx, key); err != nil {
		return "", fmt.Errorf("object deletion failed: %w", err)
	}

	return key, nil
}

// keyFromPublicURL returns the object key of a URL served from the public
// base. Keys with "..", or characters outside [A-Za-z0-9/_.-], are refused.
func (s *uploadService) keyFromPublicURL(publicURL string) (string, bool) {
	return objectKey(s.publicBase, publicURL)
}

func objectKey(publicBase, publicURL string) (string, bool) {
	if publicBase == "" {
		return "", false
	}

	prefix := publicBase + "/"
	u := strings.TrimSpace(publicURL)
	if !strings.HasPrefix(u, prefix) {
		return "", false
	}

	key := strings.TrimPrefix(u, prefix)
	if key == "" || strings.Contains(key, "..") || !objectKeyPattern.MatchString(key) {
		return "", false
	}

	return key, true
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
