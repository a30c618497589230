package http

import (
	"net/http"

	"github.com/MKhiriev/remy-site/internal/auth"
	"github.com/MKhiriev/remy-site/internal/logger"
	"github.com/MKhiriev/remy-site/internal/utils"
)

// requireRole is an HTTP middleware that admits only sessions holding at
// least minimum.
//
// The raw Cookie header is handed to [service.SessionService.Authorize]. A
// denial is written as {"error": reason} with the decision's status: 401
// when no valid session is present, 403 when the role is too low. On
// success the caller is stored in the request context under
// [utils.IdentityCtxKey].
func (h *Handler) requireRole(minimum auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			decision := h.services.SessionService.Authorize(ctx, cookieHeader(r), minimum)
			if !decision.Allowed {
				logger.FromRequest(r).Debug().
					Str("uri", r.RequestURI).
					Int("status", decision.Status).
					Msg("session rejected")
				utils.WriteError(w, decision.Reason, decision.Status)
				return
			}

			next.ServeHTTP(w, r.WithContext(utils.WithIdentity(ctx, decision.Identity)))
		})
	}
}
