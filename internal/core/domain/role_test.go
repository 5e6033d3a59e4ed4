package domain

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
)

func TestRoleFromBackend(t *testing.T) {
	cases := map[string]Role{
		"provider": RoleProvider,
		"PROVIDER": RoleProvider,
		" admin ":  RoleAdmin,
		"client":   RoleClient,
		"customer": RoleClient,
		"":         RoleClient,
	}
	for in, want := range cases {
		if got := RoleFromBackend(in); got != want {
			t.Errorf("RoleFromBackend(%q): expected %s, got %s", in, want, got)
		}
	}
}

func TestRoleFromProfile_NilIsVisitor(t *testing.T) {
	if got := RoleFromProfile(nil); got != RoleVisitor {
		t.Fatalf("expected visitor, got %s", got)
	}
}

func TestRole_JSON(t *testing.T) {
	b, err := json.Marshal(Session{Role: RoleProvider, Token: "secret"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"role":"provider"}` {
		t.Fatalf("unexpected json: %s", b)
	}
	var r Role
	if err := r.UnmarshalText([]byte("admin")); err != nil || r != RoleAdmin {
		t.Fatalf("expected admin, got %s (%v)", r, err)
	}
	if err := r.UnmarshalText([]byte("root")); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestNewSession(t *testing.T) {
	s := NewSession("tok", &UserProfile{ID: "u1", Role: "provider"})
	if s.Role != RoleProvider || s.User == nil || s.Token != "tok" {
		t.Fatalf("unexpected session: %+v", s)
	}
	if !s.Consistent() {
		t.Fatal("session must be consistent")
	}

	if got := NewSession("", &UserProfile{ID: "u1"}); got.Role != RoleVisitor || got.User != nil {
		t.Fatalf("missing token must yield visitor, got %+v", got)
	}
	if got := NewSession("tok", nil); got.Role != RoleVisitor {
		t.Fatalf("missing profile must yield visitor, got %+v", got)
	}
}

func TestSession_Consistent(t *testing.T) {
	stale := Session{Role: RoleClient, Token: "tok"}
	if stale.Consistent() {
		t.Fatal("role without profile must be inconsistent")
	}
	noToken := Session{Role: RoleAdmin, User: &UserProfile{ID: "a"}}
	if noToken.Consistent() {
		t.Fatal("role without token must be inconsistent")
	}
	if !VisitorSession().Consistent() {
		t.Fatal("visitor is always consistent")
	}
}

func TestSession_CloneDoesNotShareProfile(t *testing.T) {
	s := NewSession("tok", &UserProfile{ID: "u1", Name: "Ana"})
	c := s.Clone()
	c.User.Name = "Changed"
	if s.User.Name != "Ana" {
		t.Fatal("clone must not alias the profile")
	}
}

func TestAPIError_Is(t *testing.T) {
	err := error(&APIError{StatusCode: http.StatusUnauthorized, Method: "GET", Path: "/auth/me"})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatal("401 must match ErrUnauthorized")
	}
	if errors.Is(err, ErrForbidden) {
		t.Fatal("401 must not match ErrForbidden")
	}
	if StatusCode(err) != http.StatusUnauthorized {
		t.Fatalf("unexpected status %d", StatusCode(err))
	}
	if StatusCode(errors.New("boom")) != 0 {
		t.Fatal("plain errors carry no status")
	}
}
