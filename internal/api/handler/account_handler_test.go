package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/grupp3/accounts-api/internal/core/domain"
	"github.com/grupp3/accounts-api/internal/core/ports"
)

type stubAccountService struct {
	registerFn       func(ctx context.Context, username, password string) (*domain.AccountView, error)
	createEmployeeFn func(ctx context.Context, caller domain.AuthClaims, username, password string) (*domain.AccountView, error)
	listFn           func(ctx context.Context, caller domain.AuthClaims) ([]domain.AccountView, error)
	getByIDFn        func(ctx context.Context, caller domain.AuthClaims, id string) (*domain.AccountView, error)
	updateFn         func(ctx context.Context, caller domain.AuthClaims, id string, in ports.UpdateAccountInput) error
	deleteFn         func(ctx context.Context, caller domain.AuthClaims, id string) error
}

func (s *stubAccountService) Register(ctx context.Context, username, password string) (*domain.AccountView, error) {
	return s.registerFn(ctx, username, password)
}

func (s *stubAccountService) CreateEmployee(ctx context.Context, caller domain.AuthClaims, username, password string) (*domain.AccountView, error) {
	return s.createEmployeeFn(ctx, caller, username, password)
}

func (s *stubAccountService) List(ctx context.Context, caller domain.AuthClaims) ([]domain.AccountView, error) {
	return s.listFn(ctx, caller)
}

func (s *stubAccountService) GetByID(ctx context.Context, caller domain.AuthClaims, id string) (*domain.AccountView, error) {
	return s.getByIDFn(ctx, caller, id)
}

func (s *stubAccountService) Update(ctx context.Context, caller domain.AuthClaims, id string, in ports.UpdateAccountInput) error {
	return s.updateFn(ctx, caller, id, in)
}

func (s *stubAccountService) Delete(ctx context.Context, caller domain.AuthClaims, id string) error {
	return s.deleteFn(ctx, caller, id)
}

// adminContext builds an echo context carrying Admin claims, the way the Auth
// middleware would have left them.
func adminContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder) echo.Context {
	c := e.NewContext(req, rec)
	c.Set("account_id", "0")
	c.Set("username", "root")
	c.Set("role", domain.RoleAdmin)
	return c
}

func TestAccountHandler_Register_Created(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		registerFn: func(ctx context.Context, username, password string) (*domain.AccountView, error) {
			if username != "alice" || password != "Secr3t!" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return &domain.AccountView{ID: "1", Username: "alice", Role: domain.RoleUser}, nil
		},
	}
	handler := NewAccountHandler(stub)

	body := strings.NewReader(`{"username":"alice","password":"Secr3t!"}`)
	req := httptest.NewRequest(http.MethodPost, "/accounts/register", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["username"] != "alice" || resp["role"] != domain.RoleUser {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, leaked := resp["password"]; leaked {
		t.Fatalf("response contains a password field")
	}
}

func TestAccountHandler_Register_ShortUsername(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		registerFn: func(ctx context.Context, username, password string) (*domain.AccountView, error) {
			return &domain.AccountView{ID: "1", Username: username, Role: domain.RoleUser}, nil
		},
	}
	handler := NewAccountHandler(stub)

	// any non-empty username is valid, even a single character
	body := strings.NewReader(`{"username":"a","password":"Secr3t!"}`)
	req := httptest.NewRequest(http.MethodPost, "/accounts/register", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestAccountHandler_Register_Duplicate(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		registerFn: func(ctx context.Context, username, password string) (*domain.AccountView, error) {
			return nil, domain.ErrAccountExists
		},
	}
	handler := NewAccountHandler(stub)

	body := strings.NewReader(`{"username":"alice","password":"Other1!"}`)
	req := httptest.NewRequest(http.MethodPost, "/accounts/register", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = handler.Register(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAccountHandler_Register_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		registerFn: func(ctx context.Context, username, password string) (*domain.AccountView, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAccountHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/accounts/register", strings.NewReader("not-json"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = handler.Register(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAccountHandler_CreateEmployee(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		createEmployeeFn: func(ctx context.Context, caller domain.AuthClaims, username, password string) (*domain.AccountView, error) {
			if caller.Role != domain.RoleAdmin {
				t.Fatalf("caller claims not forwarded: %+v", caller)
			}
			return &domain.AccountView{ID: "2", Username: username, Role: domain.RoleEmployee}, nil
		},
	}
	handler := NewAccountHandler(stub)

	body := strings.NewReader(`{"username":"bob","password":"Secr3t!"}`)
	req := httptest.NewRequest(http.MethodPost, "/accounts/create-employee", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := adminContext(e, req, rec)

	if err := handler.CreateEmployee(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestAccountHandler_CreateEmployee_NoClaims(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		createEmployeeFn: func(ctx context.Context, caller domain.AuthClaims, username, password string) (*domain.AccountView, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAccountHandler(stub)

	body := strings.NewReader(`{"username":"bob","password":"Secr3t!"}`)
	req := httptest.NewRequest(http.MethodPost, "/accounts/create-employee", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateEmployee(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAccountHandler_List(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		listFn: func(ctx context.Context, caller domain.AuthClaims) ([]domain.AccountView, error) {
			return []domain.AccountView{
				{ID: "1", Username: "alice", Role: domain.RoleUser},
				{ID: "2", Username: "bob", Role: domain.RoleEmployee},
			}, nil
		},
	}
	handler := NewAccountHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
	rec := httptest.NewRecorder()
	c := adminContext(e, req, rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(resp))
	}
}

func TestAccountHandler_List_Forbidden(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		listFn: func(ctx context.Context, caller domain.AuthClaims) ([]domain.AccountView, error) {
			return nil, domain.ErrForbidden
		},
	}
	handler := NewAccountHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("role", domain.RoleUser)

	_ = handler.List(c)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestAccountHandler_GetByID_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		getByIDFn: func(ctx context.Context, caller domain.AuthClaims, id string) (*domain.AccountView, error) {
			return nil, domain.ErrAccountNotFound
		},
	}
	handler := NewAccountHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/accounts/404", nil)
	rec := httptest.NewRecorder()
	c := adminContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("404")

	_ = handler.GetByID(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAccountHandler_Update_NoContent(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		updateFn: func(ctx context.Context, caller domain.AuthClaims, id string, in ports.UpdateAccountInput) error {
			if id != "1" || in.NewUsername != "alice2" || in.NewPassword != "" {
				t.Fatalf("unexpected args: %s %+v", id, in)
			}
			return nil
		},
	}
	handler := NewAccountHandler(stub)

	body := strings.NewReader(`{"new_username":"alice2"}`)
	req := httptest.NewRequest(http.MethodPut, "/accounts/1", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := adminContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestAccountHandler_Update_DuplicateUsername(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		updateFn: func(ctx context.Context, caller domain.AuthClaims, id string, in ports.UpdateAccountInput) error {
			return domain.ErrAccountExists
		},
	}
	handler := NewAccountHandler(stub)

	body := strings.NewReader(`{"new_username":"bob"}`)
	req := httptest.NewRequest(http.MethodPut, "/accounts/1", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := adminContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	_ = handler.Update(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAccountHandler_Update_StoreConflict(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		updateFn: func(ctx context.Context, caller domain.AuthClaims, id string, in ports.UpdateAccountInput) error {
			return domain.ErrStoreConflict
		},
	}
	handler := NewAccountHandler(stub)

	body := strings.NewReader(`{"new_username":"alice2"}`)
	req := httptest.NewRequest(http.MethodPut, "/accounts/1", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := adminContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	// conflicts are not a client error: the handler hands the raw error
	// to the central error handler instead of writing a 4xx itself
	err := handler.Update(c)
	if err != domain.ErrStoreConflict {
		t.Fatalf("expected ErrStoreConflict to propagate, got %v", err)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("handler wrote a body for a store conflict: %s", rec.Body.String())
	}
}

func TestAccountHandler_Delete_NoContent(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		deleteFn: func(ctx context.Context, caller domain.AuthClaims, id string) error {
			if id != "1" {
				t.Fatalf("unexpected id: %s", id)
			}
			return nil
		},
	}
	handler := NewAccountHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/accounts/1", nil)
	rec := httptest.NewRecorder()
	c := adminContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestAccountHandler_Delete_NotFound(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		deleteFn: func(ctx context.Context, caller domain.AuthClaims, id string) error {
			return domain.ErrAccountNotFound
		},
	}
	handler := NewAccountHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/accounts/404", nil)
	rec := httptest.NewRecorder()
	c := adminContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("404")

	_ = handler.Delete(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
