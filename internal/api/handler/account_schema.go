package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

// Any non-empty username is accepted; only the password carries a minimum
// length at the transport boundary.
type createAccountRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// updateAccountRequest carries optional changes. There is deliberately no
// role field: role reassignment is not possible through this endpoint, and
// unknown payload fields are ignored by binding.
type updateAccountRequest struct {
	NewUsername string `json:"new_username"`
	NewPassword string `json:"new_password" validate:"omitempty,min=6"`
}

type accountResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
