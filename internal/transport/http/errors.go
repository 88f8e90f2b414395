package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	apierrors "salespulse/internal/errors"
)

// errorResponse is the JSON body for failed requests
type errorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps the internal error taxonomy to HTTP status codes. Every
// engine error is recoverable; nothing here terminates the process.
func (h *ReportHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	code := "INTERNAL_ERROR"

	switch apierrors.TypeOf(err) {
	case apierrors.ErrTypeInsufficientData, apierrors.ErrTypeEmptyInput:
		status = http.StatusUnprocessableEntity
		code = string(apierrors.TypeOf(err))
	case apierrors.ErrTypeValidation, apierrors.ErrTypeConfig:
		status = http.StatusBadRequest
		code = string(apierrors.TypeOf(err))
	case apierrors.ErrTypeNotFound:
		status = http.StatusNotFound
		code = string(apierrors.ErrTypeNotFound)
	case apierrors.ErrTypeSerialization, apierrors.ErrTypeStorage:
		status = http.StatusInternalServerError
		code = string(apierrors.TypeOf(err))
	}

	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
	}

	render.Status(r, status)
	render.JSON(w, r, errorResponse{Success: false, Code: code, Message: err.Error()})
}
