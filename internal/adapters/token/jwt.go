// internal/adapters/token/jwt.go
package token

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/stocktrackhq/stocktrack-be/internal/core/domain"
	"github.com/stocktrackhq/stocktrack-be/internal/core/ports"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// Config holds JWT signing configuration
type Config struct {
	Secret     string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// DefaultConfig returns default token configuration
func DefaultConfig() *Config {
	return &Config{
		Issuer:     "stocktrack",
		AccessTTL:  24 * time.Hour,
		RefreshTTL: 7 * 24 * time.Hour,
	}
}

// claims extends registered claims with the principal fields carried in
// every token.
type claims struct {
	jwt.RegisteredClaims
	Username  string `json:"username"`
	IsAdmin   bool   `json:"is_admin"`
	TokenType string `json:"token_type"`
	UserID    int64  `json:"user_id"`
}

// Manager issues and verifies HS256-signed access/refresh token pairs.
type Manager struct {
	config *Config
	logger *slog.Logger
}

var _ ports.TokenManager = (*Manager)(nil)

// NewManager creates a new token manager
func NewManager(config *Config, logger *slog.Logger) (*Manager, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}

	return &Manager{
		config: config,
		logger: logger.With(slog.String("component", "token")),
	}, nil
}

// IssuePair issues a fresh access/refresh pair for a user
func (m *Manager) IssuePair(user *domain.User) (*ports.TokenPair, error) {
	access, err := m.sign(user, tokenTypeAccess, m.config.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refresh, err := m.sign(user, tokenTypeRefresh, m.config.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &ports.TokenPair{Access: access, Refresh: refresh}, nil
}

// VerifyAccess validates an access token and returns its principal
func (m *Manager) VerifyAccess(token string) (*domain.Principal, error) {
	return m.verify(token, tokenTypeAccess)
}

// VerifyRefresh validates a refresh token and returns its principal
func (m *Manager) VerifyRefresh(token string) (*domain.Principal, error) {
	return m.verify(token, tokenTypeRefresh)
}

func (m *Manager) sign(user *domain.User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.config.Issuer,
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Username:  user.Username,
		IsAdmin:   user.IsAdmin,
		TokenType: tokenType,
		UserID:    user.ID,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(m.config.Secret))
}

func (m *Manager) verify(token, wantType string) (*domain.Principal, error) {
	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(m.config.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrNotAuthorized
		}
		return nil, domain.ErrNotAuthorized
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return nil, domain.ErrNotAuthorized
	}

	// A refresh token never grants access, and vice versa.
	if c.TokenType != wantType {
		return nil, domain.ErrNotAuthorized
	}

	return &domain.Principal{
		UserID:   c.UserID,
		Username: c.Username,
		IsAdmin:  c.IsAdmin,
	}, nil
}
