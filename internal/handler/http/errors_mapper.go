package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/remy-site/internal/app"
	"github.com/MKhiriev/remy-site/internal/logger"
	"github.com/MKhiriev/remy-site/internal/service"
	"github.com/MKhiriev/remy-site/internal/store"
	"github.com/MKhiriev/remy-site/internal/utils"
)

type errorResponse struct {
	status  int
	message string
}

var errorStatusMap = map[error]errorResponse{
	errInvalidBody: {http.StatusBadRequest, app.MsgInvalidBody},

	service.ErrInvalidName:        {http.StatusBadRequest, app.MsgInvalidName},
	service.ErrInvalidPassword:    {http.StatusBadRequest, app.MsgInvalidPassword},
	service.ErrMissingCredentials: {http.StatusBadRequest, app.MsgMissingCredentials},
	service.ErrInvalidCredentials: {http.StatusUnauthorized, app.MsgInvalidCredentials},

	service.ErrProductAlreadyExists: {http.StatusConflict, app.MsgProductExists},
	service.ErrProductFieldsMissing: {http.StatusBadRequest, app.MsgProductFieldsNeeded},

	service.ErrInvalidMessage:      {http.StatusBadRequest, app.MsgInvalidMessage},
	service.ErrInvalidRating:       {http.StatusBadRequest, app.MsgInvalidRating},
	service.ErrInvalidImageURL:     {http.StatusBadRequest, app.MsgInvalidImageURL},
	service.ErrReviewAlreadyExists: {http.StatusConflict, app.MsgReviewAlreadyExists},

	service.ErrUnsupportedImageType:  {http.StatusBadRequest, app.MsgUnsupportedImageType},
	service.ErrInvalidSize:           {http.StatusBadRequest, app.MsgInvalidSize},
	service.ErrFileTooLarge:          {http.StatusRequestEntityTooLarge, app.MsgFileTooLarge},
	service.ErrMissingURL:            {http.StatusBadRequest, app.MsgMissingURL},
	service.ErrInvalidURL:            {http.StatusBadRequest, app.MsgInvalidURL},
	service.ErrObjectStorageDisabled: {http.StatusServiceUnavailable, app.MsgUploadsDisabled},

	store.ErrNameAlreadyTaken:    {http.StatusConflict, app.MsgNameAlreadyTaken},
	store.ErrReviewNotFound:      {http.StatusNotFound, app.MsgNoReviewToUpdate},
	store.ErrReviewAlreadyExists: {http.StatusConflict, app.MsgReviewAlreadyExists},
	store.ErrProductNotFound:     {http.StatusNotFound, app.MsgNotFound},
}

// statusFromError maps err to the status and public message of the
// response. Unknown errors become 500 without details.
func statusFromError(err error) (int, string) {
	for target, response := range errorStatusMap {
		if errors.Is(err, target) {
			return response.status, response.message
		}
	}
	return http.StatusInternalServerError, app.MsgInternalServerError
}

// writeError answers with {"error": msg}. Conflicts also carry the id of
// the resource already in place.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	status, message := statusFromError(err)

	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	var conflict *service.ConflictError
	if status == http.StatusConflict && errors.As(err, &conflict) {
		utils.WriteConflict(w, message, conflict.ID)
		return
	}

	utils.WriteError(w, message, status)
}
