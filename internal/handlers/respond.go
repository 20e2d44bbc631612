// internal/handlers/respond.go
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/stocktrackhq/stocktrack-be/internal/core/domain"
)

func respondJSON(w http.ResponseWriter, logger *slog.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func respondError(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	respondJSON(w, logger, status, map[string]string{"error": message})
}

// respondDomainError maps domain errors onto HTTP responses. Validation
// failures carry their per-field messages; sentinel errors map to their
// statuses; anything else is an opaque 500.
func respondDomainError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		respondJSON(w, logger, http.StatusBadRequest, map[string]interface{}{
			"errors": vErr.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrItemNotFound):
		respondError(w, logger, http.StatusNotFound, "Item not found")
	case errors.Is(err, domain.ErrDuplicateItemCode):
		respondError(w, logger, http.StatusConflict, "Item already exists")
	case errors.Is(err, domain.ErrUsernameTaken):
		respondError(w, logger, http.StatusConflict, "Username already taken")
	case errors.Is(err, domain.ErrInvalidCredentials):
		respondError(w, logger, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, domain.ErrNotAuthorized):
		respondError(w, logger, http.StatusForbidden, "Not authorized")
	default:
		respondError(w, logger, http.StatusInternalServerError, "Internal server error")
	}
}
