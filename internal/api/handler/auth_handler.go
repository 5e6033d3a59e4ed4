package handler

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/skillnet/skillnet/internal/api/metrics"
	clientports "github.com/skillnet/skillnet/internal/core/ports"
	"github.com/skillnet/skillnet/internal/emulator/ports"
)

type AuthHandler struct {
	authService   ports.AuthService
	auth0StartURL string
}

// NewAuthHandler builds the auth endpoints. auth0StartURL is the hosted sign-in
// page the OAuth start endpoint redirects to; empty disables it.
func NewAuthHandler(authService ports.AuthService, auth0StartURL string) *AuthHandler {
	return &AuthHandler{authService: authService, auth0StartURL: auth0StartURL}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req clientports.LoginInput
	if err := c.Bind(&req); err != nil {
		return invalidPayload()
	}
	if err := c.Validate(&req); err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, clientports.LoginResult{Token: token, User: user.Profile()})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	user, err := h.authService.Me(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user.Profile())
}

// RegisterClient handles POST /auth/registerClient.
func (h *AuthHandler) RegisterClient(c echo.Context) error {
	return h.register(c, clientports.AccountClient)
}

// RegisterProvider handles POST /auth/registerProvider.
func (h *AuthHandler) RegisterProvider(c echo.Context) error {
	return h.register(c, clientports.AccountProvider)
}

func (h *AuthHandler) register(c echo.Context, kind clientports.AccountKind) error {
	var req clientports.RegisterInput
	if err := c.Bind(&req); err != nil {
		return invalidPayload()
	}
	req.Kind = kind

	user, err := h.authService.Register(c.Request().Context(), req)
	if err != nil {
		return err
	}
	metrics.RegistrationsTotal.WithLabelValues(string(kind)).Inc()

	return c.JSON(http.StatusCreated, user.Profile())
}

// OAuthStart handles GET /auth/auth0/start/:kind by redirecting to the hosted
// sign-in page.
func (h *AuthHandler) OAuthStart(c echo.Context) error {
	kind := clientports.AccountKind(c.Param("kind"))
	if kind != clientports.AccountClient && kind != clientports.AccountProvider {
		return echo.NewHTTPError(http.StatusNotFound, "unknown account kind")
	}
	if h.auth0StartURL == "" {
		return echo.NewHTTPError(http.StatusNotImplemented, "oauth sign-in is not configured")
	}

	u, err := url.Parse(h.auth0StartURL)
	if err != nil {
		return err
	}
	q := u.Query()
	q.Set("kind", string(kind))
	u.RawQuery = q.Encode()

	return c.Redirect(http.StatusFound, u.String())
}
