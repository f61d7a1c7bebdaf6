package ports

import (
	"context"

	"github.com/grupp3/accounts-api/internal/core/domain"
)

// UpdateAccountInput carries the optional fields an admin may change on an
// account. Empty fields are left untouched. Role is deliberately absent:
// accounts cannot be reassigned a role through the generic update path.
type UpdateAccountInput struct {
	NewUsername string
	NewPassword string
}

type AccountService interface {
	// Register is open to anonymous callers and assigns the User role.
	Register(ctx context.Context, username, password string) (*domain.AccountView, error)
	// CreateEmployee requires an Admin caller and assigns the Employee role.
	CreateEmployee(ctx context.Context, caller domain.AuthClaims, username, password string) (*domain.AccountView, error)
	// List requires an Admin caller; Admin accounts are never included.
	List(ctx context.Context, caller domain.AuthClaims) ([]domain.AccountView, error)
	GetByID(ctx context.Context, caller domain.AuthClaims, id string) (*domain.AccountView, error)
	Update(ctx context.Context, caller domain.AuthClaims, id string, in UpdateAccountInput) error
	Delete(ctx context.Context, caller domain.AuthClaims, id string) error
}
