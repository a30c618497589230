package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/remy-site/internal/logger"
	"github.com/MKhiriev/remy-site/models"
)

// reviewRepository stores guest reviews in "reviews". A unique index on
// user_id keeps one review per account.
type reviewRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewReviewRepository(db *DB, logger *logger.Logger) ReviewRepository {
	logger.Debug().Msg("creating review repository")
	return &reviewRepository{
		db:     db,
		logger: logger,
	}
}

// ListApprovedReviews returns at most limit approved reviews, newest first.
func (r *reviewRepository) ListApprovedReviews(ctx context.Context, limit uint64) ([]models.Review, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectApprovedReviewsQuery(r.db.builder, limit)
	if err != nil {
		log.Err(err).Str("func", "*reviewRepository.ListApprovedReviews").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var reviews []models.Review
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		rows, queryErr := r.db.QueryContext(ctx, query, args...)
		if queryErr != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, queryErr)
		}
		defer rows.Close()

		reviews = make([]models.Review, 0)
		for rows.Next() {
			review, scanErr := scanReview(rows)
			if scanErr != nil {
				return fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
			}
			reviews = append(reviews, review)
		}
		if rowsErr := rows.Err(); rowsErr != nil {
			return fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
		}
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*reviewRepository.ListApprovedReviews").Msg("error listing reviews")
		return nil, err
	}

	return reviews, nil
}

func (r *reviewRepository) FindReviewByUserID(ctx context.Context, userID string) (models.Review, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectReviewByUserIDQuery(r.db.builder, userID)
	if err != nil {
		log.Err(err).Str("func", "*reviewRepository.FindReviewByUserID").Msg("error building query")
		return models.Review{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var review models.Review
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		var scanErr error
		review, scanErr = scanReview(r.db.QueryRowContext(ctx, query, args...))
		return scanErr
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Review{}, ErrReviewNotFound
		}
		log.Err(err).Str("func", "*reviewRepository.FindReviewByUserID").Msg("error scanning review")
		return models.Review{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return review, nil
}

// CreateReview stores a new review. A second review by the same user is
// reported as [ErrReviewAlreadyExists].
func (r *reviewRepository) CreateReview(ctx context.Context, review models.Review) (models.Review, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertReviewQuery(r.db.builder, review)
	if err != nil {
		log.Err(err).Str("func", "*reviewRepository.CreateReview").Msg("error building query")
		return models.Review{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		_, execErr := r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "*reviewRepository.CreateReview").Msg("error inserting review")
		if r.db.errorClassificator.IsUniqueViolation(err) {
			return models.Review{}, ErrReviewAlreadyExists
		}
		return models.Review{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return review, nil
}

// UpdateReview returns [ErrReviewNotFound] when the user has no review.
func (r *reviewRepository) UpdateReview(ctx context.Context, review models.Review) (models.Review, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateReviewQuery(r.db.builder, review)
	if err != nil {
		log.Err(err).Str("func", "*reviewRepository.UpdateReview").Msg("error building query")
		return models.Review{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var affected int64
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		result, execErr := r.db.ExecContext(ctx, query, args...)
		if execErr != nil {
			return execErr
		}
		affected, execErr = result.RowsAffected()
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "*reviewRepository.UpdateReview").Msg("error updating review")
		return models.Review{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return models.Review{}, ErrReviewNotFound
	}

	return review, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReview(row rowScanner) (models.Review, error) {
	var (
		review   models.Review
		imageURL sql.NullString
	)
	err := row.Scan(
		&review.ID,
		&review.UserID,
		&review.NameSnapshot,
		&review.Rating,
		&review.Message,
		&imageURL,
		&review.Approved,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		return models.Review{}, err
	}
	review.ImageURL = stringPtr(imageURL)

	return review, nil
}
