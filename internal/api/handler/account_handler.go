package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/grupp3/accounts-api/internal/api/metrics"
	"github.com/grupp3/accounts-api/internal/core/domain"
	"github.com/grupp3/accounts-api/internal/core/ports"
)

// AccountHandler handles HTTP requests for account management.
type AccountHandler struct {
	service ports.AccountService
}

func NewAccountHandler(service ports.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// Register creates a new account with the User role.
//
// @Summary      Register a new account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        body  body      createAccountRequest  true  "Account credentials"
// @Success      201   {object}  accountResponse
// @Failure      400   {object}  errorResponse
// @Router       /accounts/register [post]
func (h *AccountHandler) Register(c echo.Context) error {
	var req createAccountRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	view, err := h.service.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return accountError(c, err)
	}

	metrics.AccountsCreatedTotal.WithLabelValues(view.Role).Inc()
	return c.JSON(http.StatusCreated, accountResponse{ID: view.ID, Username: view.Username, Role: view.Role})
}

// CreateEmployee creates a new account with the Employee role. Admin only.
//
// @Summary      Create an employee account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAccountRequest  true  "Account credentials"
// @Success      201   {object}  accountResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /accounts/create-employee [post]
func (h *AccountHandler) CreateEmployee(c echo.Context) error {
	caller, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createAccountRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	view, err := h.service.CreateEmployee(c.Request().Context(), caller, req.Username, req.Password)
	if err != nil {
		return accountError(c, err)
	}

	metrics.AccountsCreatedTotal.WithLabelValues(view.Role).Inc()
	return c.JSON(http.StatusCreated, accountResponse{ID: view.ID, Username: view.Username, Role: view.Role})
}

// List returns all non-Admin accounts. Admin only.
//
// @Summary      List accounts
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   accountResponse
// @Failure      403  {object}  errorResponse
// @Router       /accounts [get]
func (h *AccountHandler) List(c echo.Context) error {
	caller, err := ctxClaims(c)
	if err != nil {
		return err
	}

	views, err := h.service.List(c.Request().Context(), caller)
	if err != nil {
		return accountError(c, err)
	}

	resp := make([]accountResponse, 0, len(views))
	for _, v := range views {
		resp = append(resp, accountResponse{ID: v.ID, Username: v.Username, Role: v.Role})
	}
	return c.JSON(http.StatusOK, resp)
}

// GetByID returns a single account. Admin only.
//
// @Summary      Get an account by id
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Account id"
// @Success      200  {object}  accountResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /accounts/{id} [get]
func (h *AccountHandler) GetByID(c echo.Context) error {
	caller, err := ctxClaims(c)
	if err != nil {
		return err
	}

	view, err := h.service.GetByID(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return accountError(c, err)
	}
	return c.JSON(http.StatusOK, accountResponse{ID: view.ID, Username: view.Username, Role: view.Role})
}

// Update changes an account's username and/or password. Admin only.
//
// @Summary      Update an account
// @Tags         accounts
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string                true  "Account id"
// @Param        body  body  updateAccountRequest  true  "Fields to change"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /accounts/{id} [put]
func (h *AccountHandler) Update(c echo.Context) error {
	caller, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateAccountRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	in := ports.UpdateAccountInput{NewUsername: req.NewUsername, NewPassword: req.NewPassword}
	if err := h.service.Update(c.Request().Context(), caller, c.Param("id"), in); err != nil {
		return accountError(c, err)
	}

	metrics.AccountMutationsTotal.WithLabelValues("update").Inc()
	return c.NoContent(http.StatusNoContent)
}

// Delete removes an account. Admin only.
//
// @Summary      Delete an account
// @Tags         accounts
// @Security     BearerAuth
// @Param        id  path  string  true  "Account id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /accounts/{id} [delete]
func (h *AccountHandler) Delete(c echo.Context) error {
	caller, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), caller, c.Param("id")); err != nil {
		return accountError(c, err)
	}

	metrics.AccountMutationsTotal.WithLabelValues("delete").Inc()
	return c.NoContent(http.StatusNoContent)
}

// accountError maps domain errors to deterministic HTTP responses. Anything
// unrecognised falls through to the central error handler.
func accountError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrAccountExists):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "username already taken"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrAccountNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "account not found"})
	case errors.Is(err, domain.ErrForbidden):
		return c.JSON(http.StatusForbidden, errorResponse{Error: "access forbidden"})
	}
	return err
}
