package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/skillnet/skillnet/internal/core/domain"
	clientports "github.com/skillnet/skillnet/internal/core/ports"
	"github.com/skillnet/skillnet/internal/emulator/ports"
	"github.com/skillnet/skillnet/internal/infrastructure/db/memory"
)

type fixture struct {
	users        *memory.UserRepository
	categories   *memory.CategoryRepository
	providers    *memory.ProviderRepository
	appointments *memory.AppointmentRepository

	auth      *AuthService
	catalog   *CatalogService
	booking   *AppointmentService
	dashboard *DashboardService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		users:        memory.NewUserRepository(),
		categories:   memory.NewCategoryRepository(),
		providers:    memory.NewProviderRepository(),
		appointments: memory.NewAppointmentRepository(),
	}
	if err := SeedCategories(context.Background(), f.categories, DefaultCategories); err != nil {
		t.Fatalf("seed: %v", err)
	}
	log := zerolog.Nop()
	f.auth = NewAuthService(f.users, f.providers, f.categories, "secret", time.Hour, log)
	f.catalog = NewCatalogService(f.categories, f.providers, log)
	f.booking = NewAppointmentService(f.appointments, f.providers, f.categories, f.users, log)
	f.dashboard = NewDashboardService(f.users, f.categories, f.providers, f.appointments)
	return f
}

func (f *fixture) register(t *testing.T, kind clientports.AccountKind, name, email string) ports.Actor {
	t.Helper()
	in := clientports.RegisterInput{Kind: kind, Name: name, Email: email, Password: "supersecret"}
	if kind == clientports.AccountProvider {
		in.CategoryID = "plumbing"
		in.City = "Guadalajara"
	}
	u, err := f.auth.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("Register %s: %v", email, err)
	}
	return ports.Actor{UserID: u.ID, Role: domain.RoleFromBackend(u.Role)}
}

func TestAuthService_Register_HashesPassword(t *testing.T) {
	f := newFixture(t)

	u, err := f.auth.Register(context.Background(), clientports.RegisterInput{
		Kind: clientports.AccountClient, Name: "Ana", Email: "Ana@Example.com", Password: "supersecret",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if u.Email != "ana@example.com" {
		t.Fatalf("email should be normalised, got %q", u.Email)
	}
	if u.PasswordHash == "supersecret" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("supersecret")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if u.Role != domain.BackendRoleClient {
		t.Fatalf("unexpected role: %s", u.Role)
	}
}

func TestAuthService_Register_ProviderCreatesDirectoryEntry(t *testing.T) {
	f := newFixture(t)
	actor := f.register(t, clientports.AccountProvider, "Juan Pérez", "juan@example.com")

	p, err := f.providers.FindByID(context.Background(), actor.UserID)
	if err != nil {
		t.Fatalf("provider entry missing: %v", err)
	}
	if p.Category.Name != "Plomería" || p.City != "Guadalajara" {
		t.Fatalf("unexpected provider entry: %+v", p)
	}
}

func TestAuthService_Register_Errors(t *testing.T) {
	f := newFixture(t)
	f.register(t, clientports.AccountClient, "Ana", "ana@example.com")

	_, err := f.auth.Register(context.Background(), clientports.RegisterInput{
		Kind: clientports.AccountClient, Name: "Ana", Email: "ana@example.com", Password: "supersecret",
	})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	_, err = f.auth.Register(context.Background(), clientports.RegisterInput{
		Kind: clientports.AccountProvider, Name: "Juan", Email: "juan@example.com", Password: "supersecret", CategoryID: "astrology",
	})
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}

	_, err = f.auth.Register(context.Background(), clientports.RegisterInput{Kind: clientports.AccountClient, Email: "x"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	f := newFixture(t)
	actor := f.register(t, clientports.AccountProvider, "Juan", "juan@example.com")

	token, user, err := f.auth.Login(context.Background(), "juan@example.com", "supersecret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if user.ID != actor.UserID {
		t.Fatalf("unexpected user %s", user.ID)
	}

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) { return []byte("secret"), nil })
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims["sub"] != actor.UserID || claims["role"] != domain.BackendRoleProvider {
		t.Fatalf("unexpected claims: %v", claims)
	}

	for _, tc := range []struct{ email, password string }{
		{"juan@example.com", "wrong-password"},
		{"nobody@example.com", "supersecret"},
		{"", ""},
	} {
		if _, _, err := f.auth.Login(context.Background(), tc.email, tc.password); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("%q: expected ErrInvalidCredentials, got %v", tc.email, err)
		}
	}
}

func TestAuthService_Me(t *testing.T) {
	f := newFixture(t)
	actor := f.register(t, clientports.AccountClient, "Ana", "ana@example.com")

	u, err := f.auth.Me(context.Background(), actor)
	if err != nil || u.Name != "Ana" {
		t.Fatalf("Me: %v %+v", err, u)
	}
	if _, err := f.auth.Me(context.Background(), ports.Actor{UserID: "gone", Role: domain.RoleClient}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for a deleted account, got %v", err)
	}
}

func TestAuthService_EnsureAdminIsIdempotent(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 2; i++ {
		if err := f.auth.EnsureAdmin(context.Background(), "Admin", "admin@skillnet.local", "changeme123"); err != nil {
			t.Fatalf("EnsureAdmin #%d: %v", i+1, err)
		}
	}
	counts, _ := f.users.CountByRole(context.Background())
	if counts[domain.BackendRoleAdmin] != 1 {
		t.Fatalf("expected one admin, got %d", counts[domain.BackendRoleAdmin])
	}
}
