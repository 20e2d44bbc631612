// internal/core/ports/auth_service.go
package ports

import (
	"context"

	"github.com/stocktrackhq/stocktrack-be/internal/core/domain"
)

// TokenPair is an access/refresh token pair issued on login or refresh.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// AuthService is the application service port for account management and
// token issuance.
type AuthService interface {
	// Register creates a new account. The caller's identity is passed in
	// explicitly; only admins may register users.
	Register(ctx context.Context, principal domain.Principal, username, password string) (*domain.User, error)

	// Login verifies credentials and issues a token pair. Unknown usernames
	// and wrong passwords both yield domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (*TokenPair, error)

	// Refresh exchanges a valid refresh token for a fresh pair.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
}

// TokenManager issues and verifies the JWTs behind AuthService. Implemented
// by the token adapter; the authentication middleware uses VerifyAccess to
// resolve the request principal.
type TokenManager interface {
	IssuePair(user *domain.User) (*TokenPair, error)
	VerifyAccess(token string) (*domain.Principal, error)
	VerifyRefresh(token string) (*domain.Principal, error)
}
