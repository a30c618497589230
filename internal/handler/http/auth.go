package http

import (
	"net/http"

	"github.com/MKhiriev/remy-site/internal/logger"
	"github.com/MKhiriev/remy-site/internal/utils"
	"github.com/MKhiriev/remy-site/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var credentials models.Credentials
	if err := decodeJSONBody(w, r, &credentials); err != nil {
		h.writeError(w, r, err)
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, credentials)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	setCookie, err := h.services.SessionService.Issue(ctx, registeredUser)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Set-Cookie", setCookie)
	utils.WriteJSON(w, models.OKResponse{OK: true, ID: registeredUser.ID, Name: registeredUser.Name}, http.StatusOK)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var credentials models.Credentials
	if err := decodeJSONBody(w, r, &credentials); err != nil {
		h.writeError(w, r, err)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, credentials)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	setCookie, err := h.services.SessionService.Issue(ctx, foundUser)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Str("user_id", foundUser.ID).Msg("user logged in")

	w.Header().Set("Set-Cookie", setCookie)
	utils.WriteJSON(w, models.OKResponse{OK: true, ID: foundUser.ID, Name: foundUser.Name, Role: foundUser.Role}, http.StatusOK)
}

// logout always succeeds, with or without a session.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Set-Cookie", h.services.SessionService.Destroy(r.Context()))
	utils.WriteJSON(w, models.OKResponse{OK: true}, http.StatusOK)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := h.services.SessionService.Identify(ctx, cookieHeader(r))
	if !ok {
		utils.WriteJSON(w, models.AnonymousResponse{LoggedIn: false}, http.StatusOK)
		return
	}

	review, found, err := h.services.ReviewService.FindOwnReview(ctx, identity.Subject)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var own *models.Review
	if found {
		own = &review
	}

	defaults := models.NewReviewDefaults(own)
	response := models.MeResponse{LoggedIn: true, User: &identity, Defaults: &defaults}
	if own != nil {
		ownReview := models.NewOwnReview(*own)
		response.Review = &ownReview
	}

	utils.WriteJSON(w, response, http.StatusOK)
}
