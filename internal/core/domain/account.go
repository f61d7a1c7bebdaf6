package domain

import (
	"errors"
	"time"
)

// Account models a stored login account. The password hash never leaves the
// process: it is excluded from JSON and only the public view is returned to
// callers.
type Account struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	RoleID       RoleID    `json:"-"`
	Version      int64     `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AccountView is the public projection of an account: id, username, and the
// resolved role name. It is what listing and read operations expose.
type AccountView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

var (
	ErrAccountExists      = errors.New("username already taken")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidInput       = errors.New("username and password are required")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrForbidden          = errors.New("access forbidden")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")
	ErrStoreConflict      = errors.New("account was modified concurrently")
)
