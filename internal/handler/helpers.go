package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/stellacofre/stellacofre-bfa-go/internal/domain"

	"go.uber.org/zap"
)

// ============================================================
// Shared helper functions
// ============================================================

type errorResponse struct {
	Error string `json:"error"`
}

// fieldErrorResponse is the 422 body of a form that failed its rules.
type fieldErrorResponse struct {
	Error       string             `json:"error"`
	Message     string             `json:"message,omitempty"`
	Form        string             `json:"form"`
	FieldErrors domain.FieldErrors `json:"fieldErrors"`
}

// overlayErrorResponse is the 409 body of a form intent sent while its
// overlay is hidden.
type overlayErrorResponse struct {
	Error         string         `json:"error"`
	Required      domain.Overlay `json:"required"`
	ActiveOverlay domain.Overlay `json:"activeOverlay"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// decodeJSON reads the request body into dst. An empty body leaves dst
// untouched.
func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	return json.NewDecoder(r.Body).Decode(dst)
}

// handleServiceError maps domain errors to HTTP responses.
func handleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	var fieldValidation *domain.ErrFieldValidation
	var validation *domain.ErrValidation
	var notFound *domain.ErrNotFound
	var unauthorized *domain.ErrUnauthorized
	var overlayInactive *domain.ErrOverlayInactive
	var circuitOpen *domain.ErrCircuitOpen

	switch {
	case errors.As(err, &fieldValidation):
		logger.Debug("form validation failed",
			zap.String("form", fieldValidation.Form),
			zap.Int("fields", len(fieldValidation.Errors)),
		)
		writeJSON(w, http.StatusUnprocessableEntity, fieldErrorResponse{
			Error:       "validation failed",
			Message:     fieldValidation.Message,
			Form:        fieldValidation.Form,
			FieldErrors: fieldValidation.Errors,
		})
	case errors.As(err, &validation):
		logger.Debug("validation error", zap.String("error", err.Error()))
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &notFound):
		logger.Debug("not found", zap.String("error", err.Error()))
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &unauthorized):
		logger.Warn("unauthorized", zap.String("error", err.Error()))
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.As(err, &overlayInactive):
		logger.Debug("overlay inactive",
			zap.String("required", string(overlayInactive.Required)),
			zap.String("active", string(overlayInactive.Active)),
		)
		writeJSON(w, http.StatusConflict, overlayErrorResponse{
			Error:         err.Error(),
			Required:      overlayInactive.Required,
			ActiveOverlay: overlayInactive.Active,
		})
	case errors.As(err, &circuitOpen):
		logger.Error("circuit breaker open", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		logger.Error("unhandled error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
