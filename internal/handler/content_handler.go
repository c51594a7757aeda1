package handler

import (
	"net/http"

	"github.com/stellacofre/stellacofre-bfa-go/internal/domain"
	"github.com/stellacofre/stellacofre-bfa-go/internal/port"
	"github.com/stellacofre/stellacofre-bfa-go/internal/service"
	"github.com/stellacofre/stellacofre-bfa-go/internal/signup"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// 1. Landing page
// ============================================================

func contentHandler(content port.ContentProvider, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/content")
		defer span.End()

		landing, err := content.Landing(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, landing)
	}
}

func walletsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, service.Wallets())
	}
}

// formatHandler applies the signup input masks without touching any
// session, so the client can mask as the user types.
func formatHandler(logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := tracer.Start(r.Context(), "POST /v1/format/{field}")
		defer span.End()

		field := domain.Field(chi.URLParam(r, "field"))

		var req domain.FormatRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		formatted, ok := signup.Format(field, req.Value)
		if !ok {
			handleServiceError(w, &domain.ErrValidation{
				Field:   "field",
				Message: "no formatter for " + string(field),
			}, logger)
			return
		}

		writeJSON(w, http.StatusOK, domain.FormatResponse{Field: field, Formatted: formatted})
	}
}
