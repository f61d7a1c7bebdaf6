package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/grupp3/accounts-api/internal/core/domain"
	"github.com/grupp3/accounts-api/internal/core/ports"
)

// LoginThrottle abstracts the failed-login counter (Redis).
type LoginThrottle interface {
	Blocked(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}

// AuthService verifies credentials and issues tokens.
type AuthService struct {
	repo     ports.AccountRepository
	hasher   PasswordHasher
	issuer   *TokenIssuer
	throttle LoginThrottle
	log      zerolog.Logger
}

func NewAuthService(
	repo ports.AccountRepository,
	hasher PasswordHasher,
	issuer *TokenIssuer,
	throttle LoginThrottle,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		repo:     repo,
		hasher:   hasher,
		issuer:   issuer,
		throttle: throttle,
		log:      log,
	}
}

// Login verifies the username/password pair and issues a signed token. An
// unknown username and a wrong password return the same error so the response
// cannot be used to probe which usernames exist.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if blocked := s.isBlocked(ctx, username); blocked {
		return nil, domain.ErrTooManyAttempts
	}

	account, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			s.recordFailure(ctx, username)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, account.PasswordHash) {
		s.recordFailure(ctx, username)
		return nil, domain.ErrInvalidCredentials
	}

	role, err := domain.RoleByID(account.RoleID)
	if err != nil {
		return nil, err
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, username); err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("failed to reset login throttle")
		}
	}

	token, expiresAt, err := s.issuer.Issue(domain.AuthClaims{
		AccountID: account.ID,
		Username:  account.Username,
		Role:      role.Name,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", account.Username).Str("role", role.Name).Msg("login succeeded")

	return &ports.LoginResult{Token: token, Role: role.Name, ExpiresAt: expiresAt}, nil
}

// isBlocked consults the throttle, failing open: a Redis outage must never
// lock every user out of login.
func (s *AuthService) isBlocked(ctx context.Context, username string) bool {
	if s.throttle == nil {
		return false
	}
	blocked, err := s.throttle.Blocked(ctx, username)
	if err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("throttle check failed, allowing attempt")
		return false
	}
	return blocked
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, username); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("failed to record login failure")
	}
}
