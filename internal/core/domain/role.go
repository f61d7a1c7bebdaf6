package domain

import "errors"

// RoleID is the stable storage identifier of a role. IDs are fixed at 1, 2, 3
// and never reused; authorization compares resolved names, never raw IDs.
type RoleID int

const (
	RoleIDAdmin    RoleID = 1
	RoleIDEmployee RoleID = 2
	RoleIDUser     RoleID = 3
)

const (
	RoleAdmin    = "Admin"
	RoleEmployee = "Employee"
	RoleUser     = "User"
)

// Role pairs a stable id with its human-readable name.
type Role struct {
	ID   RoleID
	Name string
}

var ErrRoleNotFound = errors.New("role not found")

// roles is the closed role set, seeded once and read-only afterwards.
var roles = map[RoleID]Role{
	RoleIDAdmin:    {ID: RoleIDAdmin, Name: RoleAdmin},
	RoleIDEmployee: {ID: RoleIDEmployee, Name: RoleEmployee},
	RoleIDUser:     {ID: RoleIDUser, Name: RoleUser},
}

// RoleByID resolves a role id to its Role.
func RoleByID(id RoleID) (Role, error) {
	role, ok := roles[id]
	if !ok {
		return Role{}, ErrRoleNotFound
	}
	return role, nil
}

// CreationKind selects which default role a newly created account receives.
type CreationKind int

const (
	// SelfRegistration is the open signup path; new accounts become User.
	SelfRegistration CreationKind = iota
	// PrivilegedCreation is the admin-only path; new accounts become Employee.
	PrivilegedCreation
)

// DefaultRoleFor maps a creation kind to the role the new account receives.
// The mapping is fixed here so a request payload can never choose a role.
func DefaultRoleFor(kind CreationKind) Role {
	if kind == PrivilegedCreation {
		return roles[RoleIDEmployee]
	}
	return roles[RoleIDUser]
}
