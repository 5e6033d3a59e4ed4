package ports

import (
	"context"

	"github.com/skillnet/skillnet/internal/core/domain"
	clientports "github.com/skillnet/skillnet/internal/core/ports"
)

// Actor is the authenticated caller as asserted by its token.
type Actor struct {
	UserID string
	Role   domain.Role
}

type AuthService interface {
	Register(ctx context.Context, in clientports.RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Me(ctx context.Context, actor Actor) (*domain.User, error)
}

type CatalogService interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	Providers(ctx context.Context) ([]domain.ServiceProvider, error)
	Provider(ctx context.Context, id string) (*domain.ServiceProvider, error)
	SearchProviders(ctx context.Context, query string) ([]domain.ServiceProvider, error)
	UpdateProvider(ctx context.Context, actor Actor, id string, patch domain.ProviderPatch) (*domain.ServiceProvider, error)
	DeleteProvider(ctx context.Context, actor Actor, id string) error
}

type AppointmentService interface {
	List(ctx context.Context, actor Actor) ([]domain.Appointment, error)
	Get(ctx context.Context, actor Actor, id string) (*domain.Appointment, error)
	Create(ctx context.Context, actor Actor, in clientports.BookingInput) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, actor Actor, id string, status domain.AppointmentStatus) (*domain.Appointment, error)
	BookedHours(ctx context.Context, providerID, date string) ([]string, error)
}

type DashboardService interface {
	Metrics(ctx context.Context) (*domain.DashboardMetrics, error)
}
