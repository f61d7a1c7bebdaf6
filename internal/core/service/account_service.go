package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/grupp3/accounts-api/internal/core/domain"
	"github.com/grupp3/accounts-api/internal/core/ports"
)

// AccountService orchestrates the account lifecycle: open registration,
// privileged creation, and admin-only list/get/update/delete. Every operation
// except registration re-checks the caller's role before touching the store.
type AccountService struct {
	repo   ports.AccountRepository
	hasher PasswordHasher
	log    zerolog.Logger
}

func NewAccountService(repo ports.AccountRepository, hasher PasswordHasher, log zerolog.Logger) *AccountService {
	return &AccountService{repo: repo, hasher: hasher, log: log}
}

func (s *AccountService) Register(ctx context.Context, username, password string) (*domain.AccountView, error) {
	return s.create(ctx, username, password, domain.DefaultRoleFor(domain.SelfRegistration))
}

func (s *AccountService) CreateEmployee(ctx context.Context, caller domain.AuthClaims, username, password string) (*domain.AccountView, error) {
	if err := domain.RequireRole(caller, domain.RoleAdmin); err != nil {
		return nil, err
	}
	return s.create(ctx, username, password, domain.DefaultRoleFor(domain.PrivilegedCreation))
}

// create persists a new account with the given role. The role always comes
// from the registry mapping for the operation, never from the request payload.
func (s *AccountService) create(ctx context.Context, username, password string, role domain.Role) (*domain.AccountView, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	exists, err := s.repo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrAccountExists
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		Username:     username,
		PasswordHash: hash,
		RoleID:       role.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The store's unique index still catches a concurrent registration that
	// slips past the pre-check; it reports domain.ErrAccountExists too.
	created, err := s.repo.Create(ctx, account)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Str("role", role.Name).Msg("account created")

	return &domain.AccountView{ID: created.ID, Username: created.Username, Role: role.Name}, nil
}

// List returns every non-Admin account. Admin accounts are never exposed
// through listing, even to other admins.
func (s *AccountService) List(ctx context.Context, caller domain.AuthClaims) ([]domain.AccountView, error) {
	if err := domain.RequireRole(caller, domain.RoleAdmin); err != nil {
		return nil, err
	}

	accounts, err := s.repo.ListExcludingRole(ctx, domain.RoleIDAdmin)
	if err != nil {
		return nil, err
	}

	views := make([]domain.AccountView, 0, len(accounts))
	for _, a := range accounts {
		role, err := domain.RoleByID(a.RoleID)
		if err != nil {
			return nil, err
		}
		views = append(views, domain.AccountView{ID: a.ID, Username: a.Username, Role: role.Name})
	}
	return views, nil
}

func (s *AccountService) GetByID(ctx context.Context, caller domain.AuthClaims, id string) (*domain.AccountView, error) {
	if err := domain.RequireRole(caller, domain.RoleAdmin); err != nil {
		return nil, err
	}

	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	role, err := domain.RoleByID(account.RoleID)
	if err != nil {
		return nil, err
	}
	return &domain.AccountView{ID: account.ID, Username: account.Username, Role: role.Name}, nil
}

// Update changes username and/or password of an account. The role cannot be
// changed through this path.
func (s *AccountService) Update(ctx context.Context, caller domain.AuthClaims, id string, in ports.UpdateAccountInput) error {
	if err := domain.RequireRole(caller, domain.RoleAdmin); err != nil {
		return err
	}

	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if in.NewUsername != "" && in.NewUsername != account.Username {
		taken, err := s.repo.ExistsByUsername(ctx, in.NewUsername)
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrAccountExists
		}
		account.Username = in.NewUsername
	}

	if in.NewPassword != "" {
		hash, err := s.hasher.Hash(in.NewPassword)
		if err != nil {
			return err
		}
		account.PasswordHash = hash
	}

	account.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, account); err != nil {
		return err
	}

	s.log.Info().Str("account_id", id).Msg("account updated")
	return nil
}

func (s *AccountService) Delete(ctx context.Context, caller domain.AuthClaims, id string) error {
	if err := domain.RequireRole(caller, domain.RoleAdmin); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("account_id", id).Msg("account deleted")
	return nil
}
