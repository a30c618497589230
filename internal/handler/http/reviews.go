package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/remy-site/internal/app"
	"github.com/MKhiriev/remy-site/internal/auth"
	"github.com/MKhiriev/remy-site/internal/utils"
	"github.com/MKhiriev/remy-site/models"
)

type reviewWriter func(ctx context.Context, author auth.Identity, input models.ReviewInput) (models.Review, error)

func (h *Handler) listReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.services.ReviewService.ListReviews(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response := make([]models.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		response = append(response, models.NewReviewResponse(review))
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) createReview(w http.ResponseWriter, r *http.Request) {
	h.writeReview(w, r, h.services.ReviewService.CreateReview)
}

func (h *Handler) updateReview(w http.ResponseWriter, r *http.Request) {
	h.writeReview(w, r, h.services.ReviewService.UpdateOwnReview)
}

// writeReview runs a review write on behalf of the caller stored by
// requireRole.
func (h *Handler) writeReview(w http.ResponseWriter, r *http.Request, write reviewWriter) {
	ctx := r.Context()

	author, ok := utils.IdentityFromContext(ctx)
	if !ok {
		utils.WriteError(w, app.MsgUnauthorized, http.StatusUnauthorized)
		return
	}

	var input models.ReviewInput
	if err := decodeJSONBody(w, r, &input); err != nil {
		h.writeError(w, r, err)
		return
	}

	review, err := write(ctx, author, input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.OKResponse{OK: true, ID: review.ID}, http.StatusOK)
}
