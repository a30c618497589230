package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/remy-site/internal/auth"
	"github.com/MKhiriev/remy-site/internal/config"
	"github.com/MKhiriev/remy-site/internal/logger"
	"github.com/MKhiriev/remy-site/internal/service"
	"github.com/MKhiriev/remy-site/models"
)

// ─────────────────────────────────────────────
// Service fakes. Each method field can be overridden per test case.
// ─────────────────────────────────────────────

type fakeSessionService struct {
	issueFn     func(ctx context.Context, user models.User) (string, error)
	identifyFn  func(ctx context.Context, rawCookie string) (auth.Identity, bool)
	authorizeFn func(ctx context.Context, rawCookie string, minimum auth.Role) auth.Decision
}

func (f *fakeSessionService) Issue(ctx context.Context, user models.User) (string, error) {
	if f.issueFn == nil {
		return "session=token-" + user.ID + "; Path=/; HttpOnly; SameSite=Lax; Max-Age=1209600;", nil
	}
	return f.issueFn(ctx, user)
}

func (f *fakeSessionService) Destroy(context.Context) string {
	return "session=; Path=/; HttpOnly; SameSite=Lax; Max-Age=0;"
}

func (f *fakeSessionService) Identify(ctx context.Context, rawCookie string) (auth.Identity, bool) {
	if f.identifyFn == nil {
		return auth.Identity{}, false
	}
	return f.identifyFn(ctx, rawCookie)
}

func (f *fakeSessionService) Authorize(ctx context.Context, rawCookie string, minimum auth.Role) auth.Decision {
	return f.authorizeFn(ctx, rawCookie, minimum)
}

type fakeAuthService struct {
	registerUserFn func(ctx context.Context, credentials models.Credentials) (models.User, error)
	loginFn        func(ctx context.Context, credentials models.Credentials) (models.User, error)
}

func (f *fakeAuthService) RegisterUser(ctx context.Context, credentials models.Credentials) (models.User, error) {
	return f.registerUserFn(ctx, credentials)
}

func (f *fakeAuthService) Login(ctx context.Context, credentials models.Credentials) (models.User, error) {
	return f.loginFn(ctx, credentials)
}

func (f *fakeAuthService) EnsureAdmin(context.Context, models.Credentials) (models.User, bool, error) {
	panic("EnsureAdmin is not served over HTTP")
}

type fakeProductService struct {
	getFn    func(ctx context.Context) (models.Product, error)
	createFn func(ctx context.Context) (models.Product, error)
	updateFn func(ctx context.Context, update models.ProductUpdate) (models.Product, error)
}

func (f *fakeProductService) GetProduct(ctx context.Context) (models.Product, error) {
	return f.getFn(ctx)
}

func (f *fakeProductService) CreateProduct(ctx context.Context) (models.Product, error) {
	return f.createFn(ctx)
}

func (f *fakeProductService) UpdateProduct(ctx context.Context, update models.ProductUpdate) (models.Product, error) {
	return f.updateFn(ctx, update)
}

type fakeReviewService struct {
	listFn   func(ctx context.Context) ([]models.Review, error)
	findFn   func(ctx context.Context, userID string) (models.Review, bool, error)
	createFn func(ctx context.Context, author auth.Identity, input models.ReviewInput) (models.Review, error)
	updateFn func(ctx context.Context, author auth.Identity, input models.ReviewInput) (models.Review, error)
}

func (f *fakeReviewService) ListReviews(ctx context.Context) ([]models.Review, error) {
	return f.listFn(ctx)
}

func (f *fakeReviewService) FindOwnReview(ctx context.Context, userID string) (models.Review, bool, error) {
	return f.findFn(ctx, userID)
}

func (f *fakeReviewService) CreateReview(ctx context.Context, author auth.Identity, input models.ReviewInput) (models.Review, error) {
	return f.createFn(ctx, author, input)
}

func (f *fakeReviewService) UpdateOwnReview(ctx context.Context, author auth.Identity, input models.ReviewInput) (models.Review, error) {
	return f.updateFn(ctx, author, input)
}

type fakeUploadService struct {
	presignFn func(ctx context.Context, request models.PresignRequest) (models.PresignedUpload, error)
	deleteFn  func(ctx context.Context, publicURL string) (string, error)
}

func (f *fakeUploadService) Presign(ctx context.Context, request models.PresignRequest) (models.PresignedUpload, error) {
	return f.presignFn(ctx, request)
}

func (f *fakeUploadService) Delete(ctx context.Context, publicURL string) (string, error) {
	return f.deleteFn(ctx, publicURL)
}

type fakeAppInfoService struct {
	version string
}

func (f *fakeAppInfoService) GetAppVersion(context.Context) string {
	return f.version
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

var (
	testGuest = auth.Identity{Subject: "u1", Name: "remy", Role: auth.RoleUser}
	testAdmin = auth.Identity{Subject: "a1", Name: "boss", Role: auth.RoleAdmin}
)

// sessionsFor returns a SessionService that recognizes the cookies
// "session=guest" and "session=admin".
func sessionsFor() *fakeSessionService {
	identities := map[string]auth.Identity{
		"session=guest": testGuest,
		"session=admin": testAdmin,
	}

	return &fakeSessionService{
		identifyFn: func(_ context.Context, raw string) (auth.Identity, bool) {
			identity, ok := identities[raw]
			return identity, ok
		},
		authorizeFn: func(_ context.Context, raw string, minimum auth.Role) auth.Decision {
			identity, ok := identities[raw]
			switch {
			case !ok:
				return auth.Decision{Status: http.StatusUnauthorized, Reason: auth.ReasonUnauthorized}
			case !identity.Role.Satisfies(minimum):
				return auth.Decision{Status: http.StatusForbidden, Reason: auth.ReasonForbidden}
			default:
				return auth.Decision{Allowed: true, Identity: identity}
			}
		},
	}
}

// newTestServices fills every service with a fake; tests replace the ones
// they exercise.
func newTestServices() *service.Services {
	return &service.Services{
		SessionService: sessionsFor(),
		AuthService:    &fakeAuthService{},
		ProductService: &fakeProductService{},
		ReviewService:  &fakeReviewService{},
		UploadService:  &fakeUploadService{},
		AppInfoService: &fakeAppInfoService{version: "test"},
	}
}

// newTestRouter builds the full route table over services.
func newTestRouter(services *service.Services) http.Handler {
	return NewHandler(services, config.Server{}, logger.Nop()).Init()
}
