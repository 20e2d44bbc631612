// internal/core/ports/user_repository.go
package ports

import (
	"context"

	"github.com/stocktrackhq/stocktrack-be/internal/core/domain"
)

// UserRepository is the persistence port for user accounts. Username
// uniqueness is enforced by the store; Save returns domain.ErrUsernameTaken
// on collision.
type UserRepository interface {
	// Save inserts a new user and fills in its assigned ID.
	Save(ctx context.Context, user *domain.User) error

	// FindByUsername returns (nil, nil) when no user has the given username.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
