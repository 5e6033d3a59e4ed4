package ports

import (
	"context"

	"github.com/skillnet/skillnet/internal/core/domain"
)

// AccountKind selects the registration flow.
type AccountKind string

const (
	AccountClient   AccountKind = "client"
	AccountProvider AccountKind = "provider"
)

// LoginInput is the credential exchange request.
type LoginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginResult is the credential exchange response.
type LoginResult struct {
	Token string              `json:"token"`
	User  *domain.UserProfile `json:"user,omitempty"`
}

// RegisterInput carries a new account. CategoryID is required for providers.
type RegisterInput struct {
	Kind       AccountKind `json:"-"                     validate:"required,oneof=client provider"`
	Name       string      `json:"name"                  validate:"required,min=2"`
	Email      string      `json:"email"                 validate:"required,email"`
	Password   string      `json:"password"              validate:"required,min=8"`
	Phone      string      `json:"phone,omitempty"       validate:"omitempty,min=7,max=20"`
	CategoryID string      `json:"category_id,omitempty" validate:"required_if=Kind provider"`
	City       string      `json:"city,omitempty"`
}

// BookingInput requests a new appointment slot with a provider.
type BookingInput struct {
	ProviderID string `json:"provider_id" validate:"required"`
	CategoryID string `json:"category_id" validate:"required"`
	Date       string `json:"date"        validate:"required,datetime=2006-01-02"`
	Hour       string `json:"hour"        validate:"required,datetime=15:04"`
	Notes      string `json:"notes"       validate:"max=500"`
}

// AuthAPI is the backend's authentication surface.
type AuthAPI interface {
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
	Me(ctx context.Context) (*domain.UserProfile, error)
	Register(ctx context.Context, in RegisterInput) (*domain.UserProfile, error)
}

// AppointmentAPI is the backend's appointment surface.
type AppointmentAPI interface {
	Appointments(ctx context.Context) ([]domain.Appointment, error)
	CreateAppointment(ctx context.Context, in BookingInput) (*domain.Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, id string, status domain.AppointmentStatus) (*domain.Appointment, error)
	BookedHours(ctx context.Context, providerID, date string) ([]string, error)
}

// CatalogAPI is the backend's category and provider directory.
type CatalogAPI interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	Providers(ctx context.Context) ([]domain.ServiceProvider, error)
	Provider(ctx context.Context, id string) (*domain.ServiceProvider, error)
	SearchProviders(ctx context.Context, query string) ([]domain.ServiceProvider, error)
	UpdateProvider(ctx context.Context, id string, patch domain.ProviderPatch) (*domain.ServiceProvider, error)
	DeleteProvider(ctx context.Context, id string) error
}

// AdminAPI serves the aggregate metrics behind the admin dashboard.
type AdminAPI interface {
	Dashboard(ctx context.Context) (*domain.DashboardMetrics, error)
}
