package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/skillnet/skillnet/internal/core/domain"
	"github.com/skillnet/skillnet/internal/emulator/ports"
	"github.com/skillnet/skillnet/internal/pkg/validation"
)

// CatalogService serves categories and the provider directory.
type CatalogService struct {
	categories ports.CategoryRepository
	providers  ports.ProviderRepository
	log        zerolog.Logger
}

func NewCatalogService(categories ports.CategoryRepository, providers ports.ProviderRepository, log zerolog.Logger) *CatalogService {
	return &CatalogService{categories: categories, providers: providers, log: log}
}

func (s *CatalogService) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *CatalogService) Providers(ctx context.Context) ([]domain.ServiceProvider, error) {
	return s.providers.List(ctx)
}

func (s *CatalogService) Provider(ctx context.Context, id string) (*domain.ServiceProvider, error) {
	return s.providers.FindByID(ctx, id)
}

// SearchProviders returns nothing for a blank query.
func (s *CatalogService) SearchProviders(ctx context.Context, query string) ([]domain.ServiceProvider, error) {
	if strings.TrimSpace(query) == "" {
		return []domain.ServiceProvider{}, nil
	}
	return s.providers.Search(ctx, query)
}

// UpdateProvider applies patch. Providers may edit themselves; admins anyone.
func (s *CatalogService) UpdateProvider(ctx context.Context, actor ports.Actor, id string, patch domain.ProviderPatch) (*domain.ServiceProvider, error) {
	if err := canManage(actor, id); err != nil {
		return nil, err
	}
	if err := validation.Struct(patch); err != nil {
		return nil, err
	}
	if patch.Empty() {
		return nil, &domain.ValidationError{Fields: []string{"at least one field is required"}}
	}

	p, err := s.providers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Phone != nil {
		p.Phone = *patch.Phone
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.City != nil {
		p.City = *patch.City
	}
	if patch.HourlyRate != nil {
		p.HourlyRate = *patch.HourlyRate
	}
	if patch.CategoryID != nil {
		c, err := s.categories.FindByID(ctx, *patch.CategoryID)
		if err != nil {
			return nil, err
		}
		p.Category = domain.Ref{ID: c.ID, Name: c.Name}
	}

	if err := s.providers.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update provider: %w", err)
	}
	s.log.Info().Str("provider_id", id).Str("actor_id", actor.UserID).Msg("provider updated")
	return p, nil
}

// DeleteProvider removes a directory entry. Same permissions as UpdateProvider.
func (s *CatalogService) DeleteProvider(ctx context.Context, actor ports.Actor, id string) error {
	if err := canManage(actor, id); err != nil {
		return err
	}
	if err := s.providers.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("provider_id", id).Str("actor_id", actor.UserID).Msg("provider deleted")
	return nil
}

func canManage(actor ports.Actor, providerID string) error {
	switch {
	case actor.Role == domain.RoleAdmin:
		return nil
	case actor.Role == domain.RoleProvider && actor.UserID == providerID:
		return nil
	}
	return domain.ErrForbidden
}
