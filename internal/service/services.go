package service

import (
	"github.com/MKhiriev/remy-site/internal/auth"
	"github.com/MKhiriev/remy-site/internal/config"
	"github.com/MKhiriev/remy-site/internal/logger"
	"github.com/MKhiriev/remy-site/internal/objectstore"
	"github.com/MKhiriev/remy-site/internal/store"
	"github.com/MKhiriev/remy-site/internal/utils"
)

type Services struct {
	SessionService SessionService
	AuthService    AuthService
	ProductService ProductService
	ReviewService  ReviewService
	UploadService  UploadService
	AppInfoService AppInfoService
}

// NewServices wires every service. objects may be nil when uploads are
// disabled.
func NewServices(
	storages *store.Storages,
	objects objectstore.ObjectStorage,
	codec *auth.Codec,
	cfg config.StructuredConfig,
	logger *logger.Logger,
) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	ids := utils.NewUUIDGenerator()
	cookies := auth.NewCookieManager(cfg.App.SecureCookies)

	return &Services{
		SessionService: NewSessionService(codec, cookies, logger),
		AuthService:    NewAuthService(storages.UserRepository, ids, logger),
		ProductService: NewProductService(storages.ProductRepository, ids, logger),
		ReviewService:  NewReviewService(storages.ReviewRepository, objects, cfg.Storage.Objects, ids, logger),
		UploadService:  NewUploadService(objects, cfg.Storage.Objects, logger),
		AppInfoService: appInfoService,
	}, nil
}
