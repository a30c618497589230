package http

import (
	"net/http"

	"github.com/MKhiriev/remy-site/internal/logger"
	"github.com/MKhiriev/remy-site/internal/utils"
	"github.com/MKhiriev/remy-site/models"
)

func (h *Handler) presignUpload(w http.ResponseWriter, r *http.Request) {
	var request models.PresignRequest
	if err := decodeJSONBody(w, r, &request); err != nil {
		h.writeError(w, r, err)
		return
	}

	upload, err := h.services.UploadService.Presign(r.Context(), request)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, upload, http.StatusOK)
}

func (h *Handler) deleteUpload(w http.ResponseWriter, r *http.Request) {
	var request models.DeleteUploadRequest
	if err := decodeJSONBody(w, r, &request); err != nil {
		h.writeError(w, r, err)
		return
	}

	key, err := h.services.UploadService.Delete(r.Context(), request.URL)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().Str("key", key).Msg("upload deleted")
	utils.WriteJSON(w, models.OKResponse{OK: true, Key: key}, http.StatusOK)
}
