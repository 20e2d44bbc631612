// internal/core/services/auth.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/stocktrackhq/stocktrack-be/internal/core/domain"
	"github.com/stocktrackhq/stocktrack-be/internal/core/ports"
)

// AuthService handles account registration and token issuance.
type AuthService struct {
	users  ports.UserRepository
	tokens ports.TokenManager
	logger *slog.Logger
}

var _ ports.AuthService = (*AuthService)(nil)

// NewAuthService creates a new auth service
func NewAuthService(users ports.UserRepository, tokens ports.TokenManager, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		logger: logger.With(slog.String("service", "auth")),
	}
}

// Register creates a new non-admin account. Only admin principals may
// register users; everyone else gets domain.ErrNotAuthorized.
func (s *AuthService) Register(ctx context.Context, principal domain.Principal, username, password string) (*domain.User, error) {
	if !principal.IsAdmin {
		return nil, domain.ErrNotAuthorized
	}

	if err := domain.ValidateCredentials(username, password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.String("username", username),
		slog.String("registered_by", principal.Username))

	return user, nil
}

// EnsureAdmin creates the bootstrap admin account if it does not exist.
// Registration requires an admin principal, so the first admin has to come
// from configuration at startup. Existing accounts are left untouched.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		s.logger.WarnContext(ctx, "admin bootstrap skipped, no credentials configured")
		return nil
	}

	existing, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		IsAdmin:      true,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Save(ctx, user); err != nil {
		// Another instance may have won the race.
		if errors.Is(err, domain.ErrUsernameTaken) {
			return nil
		}
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	s.logger.InfoContext(ctx, "bootstrap admin created",
		slog.String("username", username))

	return nil
}

// Login verifies credentials and issues a token pair. Unknown usernames and
// wrong passwords both collapse into domain.ErrInvalidCredentials so the
// response does not reveal which part failed.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.TokenPair, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		// Burn a comparison anyway to keep timing comparable.
		_ = bcrypt.CompareHashAndPassword(
			[]byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"),
			[]byte(password))
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	pair, err := s.tokens.IssuePair(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in",
		slog.String("username", username))

	return pair, nil
}

// Refresh exchanges a valid refresh token for a fresh pair. The user is
// re-read so revoked accounts and stale claims do not survive a refresh.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	principal, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByUsername(ctx, principal.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrNotAuthorized
	}

	pair, err := s.tokens.IssuePair(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	return pair, nil
}
