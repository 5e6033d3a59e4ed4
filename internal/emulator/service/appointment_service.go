package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/skillnet/skillnet/internal/core/domain"
	clientports "github.com/skillnet/skillnet/internal/core/ports"
	"github.com/skillnet/skillnet/internal/emulator/ports"
	"github.com/skillnet/skillnet/internal/pkg/validation"
)

// AppointmentService enforces booking rules and the status machine on the
// server side.
type AppointmentService struct {
	appointments ports.AppointmentRepository
	providers    ports.ProviderRepository
	categories   ports.CategoryRepository
	users        ports.UserRepository
	log          zerolog.Logger
	now          func() time.Time
}

func NewAppointmentService(
	appointments ports.AppointmentRepository,
	providers ports.ProviderRepository,
	categories ports.CategoryRepository,
	users ports.UserRepository,
	log zerolog.Logger,
) *AppointmentService {
	return &AppointmentService{
		appointments: appointments,
		providers:    providers,
		categories:   categories,
		users:        users,
		log:          log,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// List scopes by role: clients and providers see their own, admins see all.
func (s *AppointmentService) List(ctx context.Context, actor ports.Actor) ([]domain.Appointment, error) {
	var filter ports.AppointmentFilter
	switch actor.Role {
	case domain.RoleClient:
		filter.ClientID = actor.UserID
	case domain.RoleProvider:
		filter.ProviderID = actor.UserID
	case domain.RoleAdmin:
	default:
		return nil, domain.ErrUnauthorized
	}
	return s.appointments.List(ctx, filter)
}

// Get hides appointments the caller is not part of.
func (s *AppointmentService) Get(ctx context.Context, actor ports.Actor, id string) (*domain.Appointment, error) {
	a, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin && !a.Involves(actor.UserID) {
		return nil, domain.ErrAppointmentNotFound
	}
	return a, nil
}

// Create books a slot for the calling client.
func (s *AppointmentService) Create(ctx context.Context, actor ports.Actor, in clientports.BookingInput) (*domain.Appointment, error) {
	if actor.Role != domain.RoleClient {
		return nil, fmt.Errorf("%w: only clients can book", domain.ErrForbidden)
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if !domain.IsWorkingHour(in.Hour) {
		return nil, &domain.ValidationError{Fields: []string{"hour must be a working hour slot"}}
	}

	client, err := s.users.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	provider, err := s.providers.FindByID(ctx, in.ProviderID)
	if err != nil {
		return nil, err
	}
	category, err := s.categories.FindByID(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	a := &domain.Appointment{
		ID:        uuid.NewString(),
		Date:      in.Date,
		Hour:      in.Hour,
		Status:    domain.StatusPending,
		Client:    domain.Ref{ID: client.ID, Name: client.Name},
		Provider:  domain.Ref{ID: provider.ID, Name: provider.Name},
		Category:  domain.Ref{ID: category.ID, Name: category.Name},
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.appointments.Create(ctx, a); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("appointment_id", a.ID).
		Str("client_id", client.ID).
		Str("provider_id", provider.ID).
		Msg("appointment created")
	return a, nil
}

// UpdateStatus applies one edge of the status machine on behalf of actor.
func (s *AppointmentService) UpdateStatus(ctx context.Context, actor ports.Actor, id string, status domain.AppointmentStatus) (*domain.Appointment, error) {
	if !status.Valid() {
		return nil, &domain.ValidationError{Fields: []string{fmt.Sprintf("status %q is not a known status", status)}}
	}

	a, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := domain.CheckTransition(actor.Role, a.Status, status); err != nil {
		return nil, err
	}

	updated, err := s.appointments.UpdateStatus(ctx, id, a.Status, status, s.now())
	if errors.Is(err, domain.ErrConflict) {
		return nil, fmt.Errorf("appointment %s changed concurrently: %w", id, err)
	}
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("appointment_id", id).
		Str("from", string(a.Status)).
		Str("to", string(status)).
		Str("role", actor.Role.String()).
		Msg("appointment status changed")
	return updated, nil
}

func (s *AppointmentService) BookedHours(ctx context.Context, providerID, date string) ([]string, error) {
	if _, err := domain.ParseDate(date); err != nil {
		return nil, err
	}
	hours, err := s.appointments.BookedHours(ctx, providerID, date)
	if err != nil {
		return nil, err
	}
	if hours == nil {
		hours = []string{}
	}
	return hours, nil
}
