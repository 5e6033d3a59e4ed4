package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/skillnet/skillnet/internal/api/middleware"
	"github.com/skillnet/skillnet/internal/core/domain"
	clientports "github.com/skillnet/skillnet/internal/core/ports"
	"github.com/skillnet/skillnet/internal/emulator/ports"
	"github.com/skillnet/skillnet/internal/pkg/validation"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in clientports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
	meFn       func(ctx context.Context, actor ports.Actor) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in clientports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Me(ctx context.Context, actor ports.Actor) (*domain.User, error) {
	return s.meFn(ctx, actor)
}

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validation.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withActor(c echo.Context, userID, role string) {
	c.Set(middleware.KeyUserID, userID)
	c.Set(middleware.KeyRole, role)
}

func TestAuthHandler_RegisterClient_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in clientports.RegisterInput) (*domain.User, error) {
			if in.Kind != clientports.AccountClient || in.Name != "Ana" || in.Email != "ana@example.com" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: "u1", Name: in.Name, Email: in.Email, Role: "client", PasswordHash: "hash"}, nil
		},
	}
	handler := NewAuthHandler(stub, "")

	c, rec := newContext(http.MethodPost, "/auth/registerClient",
		`{"name":"Ana","email":"ana@example.com","password":"supersecret"}`)
	if err := handler.RegisterClient(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "u1" || resp["role"] != "client" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, leaked := resp["password_hash"]; leaked {
		t.Fatalf("password hash leaked")
	}
}

func TestAuthHandler_RegisterProvider_SetsKind(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in clientports.RegisterInput) (*domain.User, error) {
			if in.Kind != clientports.AccountProvider {
				t.Fatalf("expected provider kind, got %q", in.Kind)
			}
			return &domain.User{ID: "p1", Role: "provider"}, nil
		},
	}
	handler := NewAuthHandler(stub, "")

	c, rec := newContext(http.MethodPost, "/auth/registerProvider", `{"name":"Juan","category_id":"plumbing"}`)
	if err := handler.RegisterProvider(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_ServiceErrorPropagates(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in clientports.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	handler := NewAuthHandler(stub, "")

	c, _ := newContext(http.MethodPost, "/auth/registerClient", `{"name":"Ana"}`)
	if err := handler.RegisterClient(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in clientports.RegisterInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub, "")

	c, _ := newContext(http.MethodPost, "/auth/registerClient", "not-json")
	err := handler.RegisterClient(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			if email != "juan@example.com" || password != "supersecret" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "token123", &domain.User{ID: "p1", Name: "Juan", Role: "provider"}, nil
		},
	}
	handler := NewAuthHandler(stub, "")

	c, rec := newContext(http.MethodPost, "/auth/login", `{"email":"juan@example.com","password":"supersecret"}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp clientports.LoginResult
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Token != "token123" || resp.User == nil || resp.User.Role != "provider" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub, "")

	c, _ := newContext(http.MethodPost, "/auth/login", `{"email":"juan@example.com","password":"badbadbad"}`)
	if err := handler.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_ValidationBeforeService(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}
	handler := NewAuthHandler(stub, "")

	c, _ := newContext(http.MethodPost, "/auth/login", `{"email":"not-an-email"}`)
	if err := handler.Login(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	stub := &stubAuthService{
		meFn: func(ctx context.Context, actor ports.Actor) (*domain.User, error) {
			if actor.UserID != "p1" || actor.Role != domain.RoleProvider {
				t.Fatalf("unexpected actor: %+v", actor)
			}
			return &domain.User{ID: "p1", Role: "provider"}, nil
		},
	}
	handler := NewAuthHandler(stub, "")

	c, rec := newContext(http.MethodGet, "/auth/me", "")
	withActor(c, "p1", "provider")
	if err := handler.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_Me_MissingClaims(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{}, "")

	c, _ := newContext(http.MethodGet, "/auth/me", "")
	err := handler.Me(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthHandler_OAuthStart(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{}, "https://auth.example.com/authorize?client_id=abc")

	c, rec := newContext(http.MethodGet, "/auth/auth0/start/provider", "")
	c.SetParamNames("kind")
	c.SetParamValues("provider")
	if err := handler.OAuthStart(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	loc := rec.Header().Get(echo.HeaderLocation)
	if !strings.Contains(loc, "kind=provider") || !strings.Contains(loc, "client_id=abc") {
		t.Fatalf("unexpected location %q", loc)
	}

	c, _ = newContext(http.MethodGet, "/auth/auth0/start/admin", "")
	c.SetParamNames("kind")
	c.SetParamValues("admin")
	var he *echo.HTTPError
	if err := handler.OAuthStart(c); !errors.As(err, &he) || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown kind, got %v", err)
	}
}

func TestAuthHandler_OAuthStart_NotConfigured(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{}, "")

	c, _ := newContext(http.MethodGet, "/auth/auth0/start/client", "")
	c.SetParamNames("kind")
	c.SetParamValues("client")

	var he *echo.HTTPError
	if err := handler.OAuthStart(c); !errors.As(err, &he) || he.Code != http.StatusNotImplemented {
		t.Fatalf("expected 501, got %v", err)
	}
}
