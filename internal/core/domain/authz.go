package domain

// AuthClaims is the caller identity asserted by a validated credential.
type AuthClaims struct {
	AccountID string
	Username  string
	Role      string
}

// RequireRole is the authorization guard. The caller's role name must equal
// the required role exactly; there is no hierarchy (Admin is not implicitly
// Employee).
func RequireRole(caller AuthClaims, required string) error {
	if caller.Role != required {
		return ErrForbidden
	}
	return nil
}
