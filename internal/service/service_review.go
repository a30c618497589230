package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/MKhiriev/remy-site/internal/auth"
	"github.com/MKhiriev/remy-site/internal/config"
	"github.com/MKhiriev/remy-site/internal/logger"
	"github.com/MKhiriev/remy-site/internal/objectstore"
	"github.com/MKhiriev/remy-site/internal/store"
	"github.com/MKhiriev/remy-site/models"
)

// Review limits.
const (
	MaxReviewMessageLength  = 500
	MaxReviewImageURLLength = 600
	MinRating               = 1
	MaxRating               = 5
	ReviewListLimit         = 200
)

type reviewService struct {
	reviewRepository store.ReviewRepository
	// storage may be nil; removed images are then left in the bucket.
	storage    objectstore.ObjectStorage
	publicBase string
	ids        IDGenerator
	now        func() time.Time

	logger *logger.Logger
}

func NewReviewService(
	reviewRepository store.ReviewRepository,
	storage objectstore.ObjectStorage,
	cfg config.Objects,
	ids IDGenerator,
	logger *logger.Logger,
) ReviewService {
	return &reviewService{
		reviewRepository: reviewRepository,
		storage:          storage,
		publicBase:       strings.TrimRight(strings.TrimSpace(cfg.PublicBaseURL), "/"),
		ids:              ids,
		now:              time.Now,
		logger:           logger,
	}
}

func (s *reviewService) ListReviews(ctx context.Context) ([]models.Review, error) {
	reviews, err := s.reviewRepository.ListApprovedReviews(ctx, ReviewListLimit)
	if err != nil {
		return nil, fmt.Errorf("review listing failed: %w", err)
	}
	return reviews, nil
}

func (s *reviewService) FindOwnReview(ctx context.Context, userID string) (models.Review, bool, error) {
	review, err := s.reviewRepository.FindReviewByUserID(ctx, userID)
	if errors.Is(err, store.ErrReviewNotFound) {
		return models.Review{}, false, nil
	}
	if err != nil {
		return models.Review{}, false, fmt.Errorf("review lookup failed: %w", err)
	}
	return review, true, nil
}

// CreateReview posts the author's only review. A second one fails with a
// *ConflictError naming the first.
func (s *reviewService) CreateReview(ctx context.Context, author auth.Identity, input models.ReviewInput) (models.Review, error) {
	log := logger.FromContext(ctx)

	existing, found, err := s.FindOwnReview(ctx, author.Subject)
	if err != nil {
		return models.Review{}, err
	}
	if found {
		return models.Review{}, &ConflictError{Err: ErrReviewAlreadyExists, ID: existing.ID}
	}

	message, rating, imageURL, err := s.validate(input)
	if err != nil {
		return models.Review{}, err
	}

	now := s.now().UTC()
	created, err := s.reviewRepository.CreateReview(ctx, models.Review{
		ID:           s.ids.Generate(),
		UserID:       author.Subject,
		NameSnapshot: author.Name,
		Rating:       rating,
		Message:      message,
		ImageURL:     imageURL,
		Approved:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		log.Err(err).Str("user_id", author.Subject).Msg("review creation failed")
		return models.Review{}, fmt.Errorf("review creation failed: %w", err)
	}

	log.Info().Str("review_id", created.ID).Str("user_id", author.Subject).Msg("review posted")
	return created, nil
}

// UpdateOwnReview rewrites the author's review. Clearing the image removes
// the old object from the bucket.
func (s *reviewService) UpdateOwnReview(ctx context.Context, author auth.Identity, input models.ReviewInput) (models.Review, error) {
	log := logger.FromContext(ctx)

	review, err := s.reviewRepository.FindReviewByUserID(ctx, author.Subject)
	if err != nil {
		return models.Review{}, fmt.Errorf("review lookup failed: %w", err)
	}

	message, rating, imageURL, err := s.validate(input)
	if err != nil {
		return models.Review{}, err
	}

	if imageURL == nil && review.ImageURL != nil {
		s.deleteImage(ctx, *review.ImageURL)
	}

	review.NameSnapshot = author.Name
	review.Message = message
	review.Rating = rating
	review.ImageURL = imageURL
	review.UpdatedAt = s.now().UTC()

	updated, err := s.reviewRepository.UpdateReview(ctx, review)
	if err != nil {
		log.Err(err).Str("review_id", review.ID).Msg("review update failed")
		return models.Review{}, fmt.Errorf("review update failed: %w", err)
	}

	return updated, nil
}

// deleteImage is best effort: a bucket failure never blocks the update.
func (s *reviewService) deleteImage(ctx context.Context, imageURL string) {
	if s.storage == nil {
		return
	}
	key, ok := objectKey(s.publicBase, imageURL)
	if !ok {
		return
	}
	if err := s.storage.Delete(ctx, key); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("key", key).Msg("cannot delete replaced review image")
	}
}

func (s *reviewService) validate(input models.ReviewInput) (string, int, *string, error) {
	message := strings.TrimSpace(input.Message)
	if message == "" || utf8.RuneCountInString(message) > MaxReviewMessageLength {
		return "", 0, nil, ErrInvalidMessage
	}

	rating, ok := parseRating(input.Rating.String())
	if !ok {
		return "", 0, nil, ErrInvalidRating
	}

	imageURL := strings.TrimSpace(input.ImageURL)
	if imageURL == "" {
		return message, rating, nil, nil
	}
	if !s.validImageURL(imageURL) {
		return "", 0, nil, ErrInvalidImageURL
	}

	return message, rating, &imageURL, nil
}

func (s *reviewService) validImageURL(v string) bool {
	if utf8.RuneCountInString(v) > MaxReviewImageURLLength {
		return false
	}
	if s.publicBase != "" && !strings.HasPrefix(v, s.publicBase) {
		return false
	}

	u, err := url.Parse(v)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// parseRating accepts integral numbers in MinRating..MaxRating, so 4 and
// 4.0 pass and 4.5 does not.
func parseRating(raw string) (int, bool) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) || f < MinRating || f > MaxRating {
		return 0, false
	}
	return int(f), true
}
