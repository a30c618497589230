package http

import (
	"net/http"

	"github.com/MKhiriev/remy-site/internal/app"
	"github.com/MKhiriev/remy-site/internal/auth"
	"github.com/MKhiriev/remy-site/internal/metrics"
	"github.com/MKhiriev/remy-site/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Compress(5, "application/json", "text/plain"))
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	router.Get("/api/version", h.getServerVersion)
	router.Method(http.MethodGet, "/metrics", metrics.Handler())

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Post("/api/auth/logout", h.logout)
		r.Get("/api/auth/me", h.me)
		r.Get("/api/product", h.getProduct)
		r.Get("/api/reviews", h.listReviews)
	})

	// any signed-in guest
	router.Group(func(r chi.Router) {
		r.Use(h.requireRole(auth.RoleUser))
		r.Post("/api/reviews", h.createReview)
		r.Put("/api/reviews", h.updateReview)
		r.Post("/api/upload/presign", h.presignUpload)
	})

	// admin only
	router.Group(func(r chi.Router) {
		r.Use(h.requireRole(auth.RoleAdmin))
		r.Post("/api/product", h.createProduct)
		r.Put("/api/product", h.updateProduct)
		r.Delete("/api/upload", h.deleteUpload)
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, app.MsgNotFound, http.StatusNotFound)
	})
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
