package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/skillnet/skillnet/internal/core/domain"
)

type CategoryRepository struct {
	mu   sync.RWMutex
	byID map[string]domain.Category
}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{byID: map[string]domain.Category{}}
}

func (r *CategoryRepository) List(_ context.Context) ([]domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Category, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *CategoryRepository) FindByID(_ context.Context, id string) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	return &c, nil
}

func (r *CategoryRepository) Upsert(_ context.Context, c domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[c.ID] = c
	return nil
}

type ProviderRepository struct {
	mu   sync.RWMutex
	byID map[string]domain.ServiceProvider
}

func NewProviderRepository() *ProviderRepository {
	return &ProviderRepository{byID: map[string]domain.ServiceProvider{}}
}

func (r *ProviderRepository) Create(_ context.Context, p *domain.ServiceProvider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[p.ID]; exists {
		return domain.ErrConflict
	}
	r.byID[p.ID] = *p
	return nil
}

func (r *ProviderRepository) FindByID(_ context.Context, id string) (*domain.ServiceProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProviderNotFound
	}
	return &p, nil
}

func (r *ProviderRepository) List(_ context.Context) ([]domain.ServiceProvider, error) {
	return r.filter(func(domain.ServiceProvider) bool { return true }), nil
}

func (r *ProviderRepository) Search(_ context.Context, query string) ([]domain.ServiceProvider, error) {
	return r.filter(func(p domain.ServiceProvider) bool {
		return domain.Matches(query, p.Name) || domain.Matches(query, p.Category.Name) || domain.Matches(query, p.City)
	}), nil
}

func (r *ProviderRepository) Update(_ context.Context, p *domain.ServiceProvider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[p.ID]; !ok {
		return domain.ErrProviderNotFound
	}
	r.byID[p.ID] = *p
	return nil
}

func (r *ProviderRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrProviderNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *ProviderRepository) filter(keep func(domain.ServiceProvider) bool) []domain.ServiceProvider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.ServiceProvider, 0, len(r.byID))
	for _, p := range r.byID {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
