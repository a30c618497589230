package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/remy-site/models"
)

// UserRepository persists accounts.
type UserRepository interface {
	// CreateUser stores user and returns it. A duplicate name yields
	// [ErrNameAlreadyTaken].
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// FindUserByName returns [ErrNoUserWasFound] when no account matches.
	FindUserByName(ctx context.Context, name string) (models.User, error)
	// UpdateUserRole sets the role of the account named user.Name.
	UpdateUserRole(ctx context.Context, user models.User) error
}

// ProductRepository persists the single product edited by admins.
type ProductRepository interface {
	// FindProduct returns [ErrProductNotFound] before the first write.
	FindProduct(ctx context.Context) (models.Product, error)
	CreateProduct(ctx context.Context, product models.Product) (models.Product, error)
	UpdateProduct(ctx context.Context, product models.Product) (models.Product, error)
}

// ReviewRepository persists guest reviews, one per user.
type ReviewRepository interface {
	ListApprovedReviews(ctx context.Context, limit uint64) ([]models.Review, error)
	// FindReviewByUserID returns [ErrReviewNotFound] when the user has none.
	FindReviewByUserID(ctx context.Context, userID string) (models.Review, error)
	// CreateReview yields [ErrReviewAlreadyExists] for a second review.
	CreateReview(ctx context.Context, review models.Review) (models.Review, error)
	// UpdateReview rewrites the review owned by review.UserID.
	UpdateReview(ctx context.Context, review models.Review) (models.Review, error)
}
