// Package ports declares what the emulator's services need from storage and
// what its HTTP layer needs from the services.
package ports

import (
	"context"
	"time"

	"github.com/skillnet/skillnet/internal/core/domain"
)

// UserRepository persists accounts.
type UserRepository interface {
	// Create fails with domain.ErrUserExists when the email is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	CountByRole(ctx context.Context) (map[string]int, error)
}

// CategoryRepository persists the service categories.
type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	// Upsert inserts or replaces by id; used for seeding.
	Upsert(ctx context.Context, c domain.Category) error
}

// ProviderRepository persists the provider directory. A provider's id is its
// user id.
type ProviderRepository interface {
	Create(ctx context.Context, p *domain.ServiceProvider) error
	FindByID(ctx context.Context, id string) (*domain.ServiceProvider, error)
	List(ctx context.Context) ([]domain.ServiceProvider, error)
	// Search matches name, category name or city, ignoring case and accents.
	Search(ctx context.Context, query string) ([]domain.ServiceProvider, error)
	Update(ctx context.Context, p *domain.ServiceProvider) error
	Delete(ctx context.Context, id string) error
}

// AppointmentFilter scopes a listing. Empty fields do not filter.
type AppointmentFilter struct {
	ClientID   string
	ProviderID string
}

// AppointmentRepository persists appointments.
type AppointmentRepository interface {
	// Create fails with domain.ErrSlotTaken when the provider already has an
	// active appointment at the same date and hour.
	Create(ctx context.Context, a *domain.Appointment) error
	FindByID(ctx context.Context, id string) (*domain.Appointment, error)
	List(ctx context.Context, filter AppointmentFilter) ([]domain.Appointment, error)
	// UpdateStatus moves the appointment from one status to another. It fails
	// with domain.ErrConflict when the stored status is no longer from.
	UpdateStatus(ctx context.Context, id string, from, to domain.AppointmentStatus, at time.Time) (*domain.Appointment, error)
	// BookedHours lists the hours taken by non-cancelled appointments.
	BookedHours(ctx context.Context, providerID, date string) ([]string, error)
	CountByStatus(ctx context.Context) (map[domain.AppointmentStatus]int, error)
}
