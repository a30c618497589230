package service

import (
	"context"

	"github.com/MKhiriev/remy-site/internal/auth"
	"github.com/MKhiriev/remy-site/models"
)

// SessionService turns accounts into session cookies and cookies back into
// identities.
type SessionService interface {
	// Issue returns the Set-Cookie value carrying a fresh token for user.
	Issue(ctx context.Context, user models.User) (string, error)
	// Destroy returns the Set-Cookie value that removes the session.
	Destroy(ctx context.Context) string
	// Identify reads the caller from a raw Cookie header.
	Identify(ctx context.Context, rawCookie string) (auth.Identity, bool)
	// Authorize requires a session of at least minimum.
	Authorize(ctx context.Context, rawCookie string, minimum auth.Role) auth.Decision
}

type AuthService interface {
	RegisterUser(ctx context.Context, credentials models.Credentials) (models.User, error)
	Login(ctx context.Context, credentials models.Credentials) (models.User, error)
	// EnsureAdmin creates an ADMIN account or promotes an existing one.
	// It reports whether the account was created.
	EnsureAdmin(ctx context.Context, credentials models.Credentials) (models.User, bool, error)
}

type ProductService interface {
	// GetProduct returns the product, creating the default one first if
	// needed.
	GetProduct(ctx context.Context) (models.Product, error)
	CreateProduct(ctx context.Context) (models.Product, error)
	UpdateProduct(ctx context.Context, update models.ProductUpdate) (models.Product, error)
}

type ReviewService interface {
	ListReviews(ctx context.Context) ([]models.Review, error)
	// FindOwnReview reports false when the user has not posted yet.
	FindOwnReview(ctx context.Context, userID string) (models.Review, bool, error)
	CreateReview(ctx context.Context, author auth.Identity, input models.ReviewInput) (models.Review, error)
	UpdateOwnReview(ctx context.Context, author auth.Identity, input models.ReviewInput) (models.Review, error)
}

type UploadService interface {
	Presign(ctx context.Context, request models.PresignRequest) (models.PresignedUpload, error)
	// Delete removes the object behind publicURL and returns its key.
	Delete(ctx context.Context, publicURL string) (string, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// IDGenerator produces primary keys for new rows.
type IDGenerator interface {
	Generate() string
}
