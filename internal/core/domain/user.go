// internal/core/domain/user.go
package domain

import (
	"fmt"
	"time"
)

const (
	UsernameMaxLen = 150
	PasswordMinLen = 8
)

// User is an account that can authenticate against the API. Only the bcrypt
// hash of the password is ever stored.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// Principal is the resolved identity of the current caller, produced by the
// authentication middleware and passed explicitly into operations that need
// it. Services never consult ambient session state.
type Principal struct {
	UserID   int64
	Username string
	IsAdmin  bool
}

// ValidateCredentials checks a registration payload, accumulating every
// violated field.
func ValidateCredentials(username, password string) error {
	ve := NewValidationError()

	switch {
	case username == "":
		ve.Add("username", "username is required")
	case len(username) > UsernameMaxLen:
		ve.Add("username", fmt.Sprintf("username must be at most %d characters", UsernameMaxLen))
	case !ValidItemCode(username):
		// Same character set as item codes: letters, digits, underscore.
		ve.Add("username", "username may contain letters, digits and underscores only")
	}

	if password == "" {
		ve.Add("password", "password is required")
	} else if len(password) < PasswordMinLen {
		ve.Add("password", fmt.Sprintf("password must be at least %d characters", PasswordMinLen))
	}

	return ve.OrNil()
}
