package ports

import (
	"context"

	"github.com/grupp3/accounts-api/internal/core/domain"
)

// AccountRepository defines the persistence contract for accounts. The store
// guarantees username uniqueness and per-document atomicity; it reports a
// concurrent modification as domain.ErrStoreConflict.
type AccountRepository interface {
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	// ListExcludingRole returns all accounts whose role differs from the given
	// one, ordered by username. Password hashes are not populated.
	ListExcludingRole(ctx context.Context, role domain.RoleID) ([]domain.Account, error)
	Update(ctx context.Context, account *domain.Account) error
	Delete(ctx context.Context, id string) error
}
