package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gamenighthq/gamenight/internal/apperr"
	"go.uber.org/zap"
)

func (h *Handler) respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if body == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		h.respondJSON(w, appErr.Status, errorResponse{Error: errorBody{
			Code:    appErr.Code,
			Message: appErr.Message,
		}})
		return
	}

	h.logger.Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err))
	h.respondJSON(w, http.StatusInternalServerError, errorResponse{Error: errorBody{
		Code:    "INTERNAL",
		Message: "internal server error",
	}})
}

func (h *Handler) respondValidationError(w http.ResponseWriter, err error) {
	h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: errorBody{
		Code:    "INVALID_REQUEST",
		Message: err.Error(),
	}})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.respondValidationError(w, err)
		return false
	}

	if err := h.validate.Struct(dst); err != nil {
		h.respondValidationError(w, err)
		return false
	}

	return true
}
