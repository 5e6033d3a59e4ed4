package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillnet/skillnet/internal/core/domain"
	"github.com/skillnet/skillnet/internal/core/ports"
)

type staticToken string

func (t staticToken) Load(context.Context) (string, error) { return string(t), nil }

func newTestClient(t *testing.T, h http.HandlerFunc, token string) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(Options{BaseURL: srv.URL, Tokens: staticToken(token), Logger: zerolog.Nop()})
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNew_RejectsBadURL(t *testing.T) {
	_, err := New(Options{BaseURL: "localhost"})
	assert.Error(t, err)
}

func TestClient_Headers(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/me", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.NotEmpty(t, r.Header.Get(headerRequestID))
		writeJSON(w, http.StatusOK, domain.UserProfile{ID: "u1", Role: "provider"})
	}, "tok-1")

	p, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "provider", p.Role)
}

func TestClient_NoTokenNoAuthorization(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, []domain.Category{{ID: "plumbing", Name: "Plomería"}})
	}, "")

	cats, err := c.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Plomería", cats[0].Name)
}

func TestClient_NonJSONSuccessIsError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>maintenance</html>"))
	}, "tok")

	_, err := c.Categories(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnexpectedContentType)
}

func TestClient_NoContentAcceptedWithoutDecode(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/serviceprovider/p1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}, "tok")

	assert.NoError(t, c.DeleteProvider(context.Background(), "p1"))
}

func TestClient_NonJSONSuccessIsErrorWithoutDecode(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>login</html>"))
	}, "tok")

	assert.ErrorIs(t, c.DeleteProvider(context.Background(), "p1"), domain.ErrUnexpectedContentType)
}

func TestClient_ErrorStatusCarriesMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "invalid status transition"})
	}, "tok")

	_, err := c.UpdateAppointmentStatus(context.Background(), "a1", domain.StatusCompleted)
	var apiErr *domain.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "invalid status transition", apiErr.Message)
	assert.Equal(t, "/appointments/a1", apiErr.Path)
}

func TestClient_UnauthorizedHook(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "token expired"})
	}, "tok")

	var fired atomic.Int32
	c.OnUnauthorized(func() { fired.Add(1) })

	_, err := c.Me(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, int32(1), fired.Load())
}

func TestClient_UpdateAppointmentStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "CONFIRMED", body["status"])
		writeJSON(w, http.StatusOK, domain.Appointment{ID: "a1", Status: domain.StatusConfirmed})
	}, "tok")

	a, err := c.UpdateAppointmentStatus(context.Background(), "a1", domain.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, a.Status)
}

func TestClient_BookedHoursAndSearch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/appointments/booked-hours/p1":
			assert.Equal(t, "2026-10-20", r.URL.Query().Get("date"))
			writeJSON(w, http.StatusOK, BookedHours{ProviderID: "p1", Date: "2026-10-20", Hours: []string{"09:00"}})
		case "/serviceprovider/search":
			assert.Equal(t, "plomería", r.URL.Query().Get("q"))
			writeJSON(w, http.StatusOK, []domain.ServiceProvider{{ID: "p1", Name: "Juan"}})
		default:
			http.NotFound(w, r)
		}
	}, "tok")

	hours, err := c.BookedHours(context.Background(), "p1", "2026-10-20")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00"}, hours)

	ps, err := c.SearchProviders(context.Background(), "plomería")
	require.NoError(t, err)
	require.Len(t, ps, 1)
}

func TestClient_RegisterRoutesByKind(t *testing.T) {
	var paths []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.NotContains(t, body, "kind")
		writeJSON(w, http.StatusCreated, domain.UserProfile{ID: "u1"})
	}, "")

	_, err := c.Register(context.Background(), ports.RegisterInput{Kind: ports.AccountClient, Name: "Ana"})
	require.NoError(t, err)
	_, err = c.Register(context.Background(), ports.RegisterInput{Kind: ports.AccountProvider, Name: "Juan"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/auth/registerClient", "/auth/registerProvider"}, paths)

	_, err = c.Register(context.Background(), ports.RegisterInput{Kind: "robot"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestClient_AuthorizeURL(t *testing.T) {
	c, err := New(Options{BaseURL: "https://api.skillnet.test/v1/", Logger: zerolog.Nop()})
	require.NoError(t, err)

	u, err := c.AuthorizeURL(ports.AccountProvider)
	require.NoError(t, err)
	assert.Equal(t, "https://api.skillnet.test/v1/auth/auth0/start/provider", u)

	_, err = c.AuthorizeURL("admin")
	assert.Error(t, err)
}

func TestClient_RejectedCredentialsSkipUnauthorizedHook(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
	}, "tok")

	var fired atomic.Int32
	c.OnUnauthorized(func() { fired.Add(1) })

	_, err := c.Login(context.Background(), ports.LoginInput{Email: "ana@skillnet.test", Password: "wrong-pass"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = c.RegisterClient(context.Background(), ports.RegisterInput{Kind: ports.AccountClient})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, int32(0), fired.Load())
}
