package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/skillnet/skillnet/internal/core/domain"
	"github.com/skillnet/skillnet/internal/core/ports"
)

// Login exchanges credentials for a token. A 401 here means bad credentials
// and leaves the current session alone.
func (c *Client) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	var out ports.LoginResult
	if err := c.send(ctx, http.MethodPost, "/auth/login", nil, in, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the profile behind the current token.
func (c *Client) Me(ctx context.Context) (*domain.UserProfile, error) {
	var out domain.UserProfile
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register dispatches to the client or provider registration endpoint.
func (c *Client) Register(ctx context.Context, in ports.RegisterInput) (*domain.UserProfile, error) {
	switch in.Kind {
	case ports.AccountClient:
		return c.RegisterClient(ctx, in)
	case ports.AccountProvider:
		return c.RegisterProvider(ctx, in)
	}
	return nil, fmt.Errorf("%w: unknown account kind %q", domain.ErrValidation, in.Kind)
}

func (c *Client) RegisterClient(ctx context.Context, in ports.RegisterInput) (*domain.UserProfile, error) {
	return c.register(ctx, "/auth/registerClient", in)
}

func (c *Client) RegisterProvider(ctx context.Context, in ports.RegisterInput) (*domain.UserProfile, error) {
	return c.register(ctx, "/auth/registerProvider", in)
}

func (c *Client) register(ctx context.Context, path string, in ports.RegisterInput) (*domain.UserProfile, error) {
	var out domain.UserProfile
	if err := c.send(ctx, http.MethodPost, path, nil, in, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// AuthorizeURL is the browser entry point of the OAuth handoff for kind.
func (c *Client) AuthorizeURL(kind ports.AccountKind) (string, error) {
	if kind != ports.AccountClient && kind != ports.AccountProvider {
		return "", fmt.Errorf("%w: unknown account kind %q", domain.ErrValidation, kind)
	}
	return c.endpoint("/auth/auth0/start/"+url.PathEscape(string(kind)), nil), nil
}
