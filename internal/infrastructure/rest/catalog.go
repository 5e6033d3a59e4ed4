package rest

import (
	"context"
	"net/http"
	"net/url"

	"github.com/skillnet/skillnet/internal/core/domain"
)

func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Providers(ctx context.Context) ([]domain.ServiceProvider, error) {
	var out []domain.ServiceProvider
	if err := c.do(ctx, http.MethodGet, "/serviceprovider", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Provider(ctx context.Context, id string) (*domain.ServiceProvider, error) {
	var out domain.ServiceProvider
	if err := c.do(ctx, http.MethodGet, "/serviceprovider/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchProviders matches providers by name or category on the backend.
func (c *Client) SearchProviders(ctx context.Context, query string) ([]domain.ServiceProvider, error) {
	var out []domain.ServiceProvider
	q := url.Values{"q": {query}}
	if err := c.do(ctx, http.MethodGet, "/serviceprovider/search", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateProvider(ctx context.Context, id string, patch domain.ProviderPatch) (*domain.ServiceProvider, error) {
	var out domain.ServiceProvider
	if err := c.do(ctx, http.MethodPatch, "/serviceprovider/"+url.PathEscape(id), nil, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProvider(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/serviceprovider/"+url.PathEscape(id), nil, nil, nil)
}

// Dashboard returns the admin aggregate metrics.
func (c *Client) Dashboard(ctx context.Context) (*domain.DashboardMetrics, error) {
	var out domain.DashboardMetrics
	if err := c.do(ctx, http.MethodGet, "/admin/dashboard", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
