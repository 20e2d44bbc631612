// internal/handlers/auth.go
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/stocktrackhq/stocktrack-be/internal/core/ports"
	"github.com/stocktrackhq/stocktrack-be/internal/handlers/middleware"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	service ports.AuthService
	logger  *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service ports.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "auth")),
	}
}

// RegisterRequest is the body for POST /api/v1/auth/register
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CredentialsRequest is the body for POST /api/v1/auth/login
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshRequest is the body for POST /api/v1/auth/refresh
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// Register handles POST /api/v1/auth/register. Requires an authenticated
// admin principal.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := middleware.PrincipalFromContext(ctx)
	if !ok {
		respondError(w, h.logger, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.service.Register(ctx, principal, req.Username, req.Password)
	if err != nil {
		h.logger.WarnContext(ctx, "registration failed",
			slog.String("username", req.Username),
			slog.String("error", err.Error()))
		respondDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, map[string]interface{}{
		"id":       user.ID,
		"username": user.Username,
	})
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	pair, err := h.service.Login(ctx, req.Username, req.Password)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, pair)
}

// Refresh handles POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Refresh == "" {
		respondError(w, h.logger, http.StatusBadRequest, "Refresh token is required")
		return
	}

	pair, err := h.service.Refresh(ctx, req.Refresh)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, pair)
}
