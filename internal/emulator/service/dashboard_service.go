package service

import (
	"context"

	"github.com/skillnet/skillnet/internal/core/domain"
	"github.com/skillnet/skillnet/internal/emulator/ports"
)

// DashboardService aggregates the admin metrics.
type DashboardService struct {
	users        ports.UserRepository
	categories   ports.CategoryRepository
	providers    ports.ProviderRepository
	appointments ports.AppointmentRepository
}

func NewDashboardService(
	users ports.UserRepository,
	categories ports.CategoryRepository,
	providers ports.ProviderRepository,
	appointments ports.AppointmentRepository,
) *DashboardService {
	return &DashboardService{users: users, categories: categories, providers: providers, appointments: appointments}
}

func (s *DashboardService) Metrics(ctx context.Context) (*domain.DashboardMetrics, error) {
	byRole, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	cats, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	directory, err := s.providers.List(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.appointments.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	m := &domain.DashboardMetrics{
		Clients:              byRole[domain.BackendRoleClient],
		Providers:            len(directory),
		Admins:               byRole[domain.BackendRoleAdmin],
		Categories:           len(cats),
		AppointmentsByStatus: make(map[domain.AppointmentStatus]int, len(domain.AllStatuses)),
	}
	for _, n := range byRole {
		m.Users += n
	}
	for _, st := range domain.AllStatuses {
		m.AppointmentsByStatus[st] = byStatus[st]
		m.Appointments += byStatus[st]
	}
	return m, nil
}
