package ports

import (
	"context"
	"time"
)

// LoginResult is the credential handed back on a successful login.
type LoginResult struct {
	Token     string
	Role      string
	ExpiresAt time.Time
}

type AuthService interface {
	// Login verifies the username/password pair and issues a signed token.
	// Unknown usernames and wrong passwords produce the same error.
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}
