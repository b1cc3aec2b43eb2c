package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"adboard/internal/domain"
	"adboard/internal/httputil"
)

// handleError maps engine errors to HTTP responses. Validation failures are
// rendered as the raw field→reasons map so callers can correct their input;
// everything else becomes an RFC 7807 problem document.
func handleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		httputil.RespondJSON(w, http.StatusBadRequest, verr.Violations)
		return
	}

	var httpErr domain.HTTPError
	if errors.As(err, &httpErr) {
		httputil.RespondError(w, httpErr.StatusCode(), err.Error())
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, "resource not found")
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	default:
		logger.Error("unexpected error", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
