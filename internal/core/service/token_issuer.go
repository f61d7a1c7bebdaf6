package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/grupp3/accounts-api/internal/core/domain"
)

const defaultTokenTTL = 30 * time.Minute

var (
	// ErrNoSigningSecret is returned at construction time; a service without a
	// signing secret must refuse to start, never fall back to a default key.
	ErrNoSigningSecret = errors.New("token issuer: no signing secret configured")
	ErrInvalidToken    = errors.New("invalid token")
)

// Claims is the JWT payload carried by an issued credential.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer issues and validates HS256-signed bearer tokens. Validation is
// purely local: signature, expiry, issuer, and audience checks never call out.
type TokenIssuer struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

func NewTokenIssuer(secret, issuer, audience string, ttl time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, ErrNoSigningSecret
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenIssuer{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
	}, nil
}

// Issue builds a signed token asserting the given identity.
func (t *TokenIssuer) Issue(identity domain.AuthClaims) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(t.ttl)

	claims := &Claims{
		Username: identity.Username,
		Role:     identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.AccountID,
			Issuer:    t.issuer,
			Audience:  jwt.ClaimStrings{t.audience},
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Validate parses and verifies a token. Every failure mode — bad signature,
// expiry, wrong issuer or audience, unexpected algorithm — collapses to
// ErrInvalidToken.
func (t *TokenIssuer) Validate(token string) (*domain.AuthClaims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (interface{}, error) {
		if tok.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return t.secret, nil
	}, jwt.WithIssuer(t.issuer), jwt.WithAudience(t.audience))
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	return &domain.AuthClaims{
		AccountID: claims.Subject,
		Username:  claims.Username,
		Role:      claims.Role,
	}, nil
}
