package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/skillnet/skillnet/internal/core/domain"
	"github.com/skillnet/skillnet/internal/core/ports"
	"github.com/skillnet/skillnet/internal/pkg/validation"
)

// SessionReader exposes the current session to its consumers.
type SessionReader interface {
	Snapshot() domain.Session
}

// AppointmentBoard is the client's projection of the appointment list. It is
// only patched with records the backend has acknowledged.
type AppointmentBoard struct {
	api     ports.AppointmentAPI
	session SessionReader
	log     zerolog.Logger

	mu    sync.RWMutex
	items []domain.Appointment
}

// NewAppointmentBoard returns an empty board.
func NewAppointmentBoard(api ports.AppointmentAPI, session SessionReader, log zerolog.Logger) *AppointmentBoard {
	return &AppointmentBoard{api: api, session: session, log: log}
}

// Load replaces the local list with the backend's.
func (b *AppointmentBoard) Load(ctx context.Context) error {
	if !b.session.Snapshot().Authenticated() {
		return fmt.Errorf("load appointments: %w", domain.ErrNotAuthenticated)
	}
	list, err := b.api.Appointments(ctx)
	if err != nil {
		return fmt.Errorf("load appointments: %w", err)
	}

	b.mu.Lock()
	b.items = append([]domain.Appointment(nil), list...)
	b.mu.Unlock()
	return nil
}

// Items returns a copy of the local list.
func (b *AppointmentBoard) Items() []domain.Appointment {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]domain.Appointment(nil), b.items...)
}

// Get returns the local record for id.
func (b *AppointmentBoard) Get(id string) (domain.Appointment, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, a := range b.items {
		if a.ID == id {
			return a, true
		}
	}
	return domain.Appointment{}, false
}

// Transition requests a status change. Role and graph checks run locally
// first; the local entry changes only after the backend acknowledges, and then
// to whatever status the backend returned. Any failure leaves the list as it was.
func (b *AppointmentBoard) Transition(ctx context.Context, cmd ports.TransitionCommand) (*ports.TransitionResult, error) {
	fail := func(err error) (*ports.TransitionResult, error) {
		return nil, &ports.TransitionError{Command: cmd, Err: err}
	}

	s := b.session.Snapshot()
	if !s.Authenticated() {
		return fail(domain.ErrNotAuthenticated)
	}
	if !cmd.Target.Valid() {
		return fail(fmt.Errorf("%w: unknown status %q", domain.ErrValidation, cmd.Target))
	}
	current, ok := b.Get(cmd.ID)
	if !ok {
		return fail(domain.ErrAppointmentNotFound)
	}
	if err := domain.CheckTransition(s.Role, current.Status, cmd.Target); err != nil {
		return fail(err)
	}

	updated, err := b.api.UpdateAppointmentStatus(ctx, cmd.ID, cmd.Target)
	if err != nil {
		b.log.Warn().Err(err).
			Str("appointment_id", cmd.ID).
			Str("status", string(cmd.Target)).
			Msg("status update rejected")
		return fail(err)
	}
	if updated == nil || !updated.Status.Valid() {
		return fail(errors.New("backend acknowledged without a status"))
	}

	acked := *updated
	if acked.ID == "" {
		// Bare acknowledgement: keep the local record, take the server's status.
		merged := current
		merged.Status = acked.Status
		acked = merged
	}
	if acked.Status != cmd.Target {
		b.log.Warn().
			Str("appointment_id", cmd.ID).
			Str("requested", string(cmd.Target)).
			Str("applied", string(acked.Status)).
			Msg("backend applied a different status")
	}
	b.patch(acked)

	b.log.Info().
		Str("appointment_id", cmd.ID).
		Str("from", string(current.Status)).
		Str("to", string(acked.Status)).
		Msg("appointment status updated")

	return &ports.TransitionResult{Previous: current.Status, Appointment: acked}, nil
}

// patch replaces the entry with the same id. An entry dropped by a concurrent
// Load is not re-added.
func (b *AppointmentBoard) patch(a domain.Appointment) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.items {
		if b.items[i].ID == a.ID {
			b.items[i] = a
			return
		}
	}
}

// Book reserves a slot with a provider. Only clients book.
func (b *AppointmentBoard) Book(ctx context.Context, in ports.BookingInput) (*domain.Appointment, error) {
	if b.session.Snapshot().Role != domain.RoleClient {
		return nil, fmt.Errorf("book appointment: %w: only clients can book", domain.ErrForbidden)
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if !domain.IsWorkingHour(in.Hour) {
		return nil, &domain.ValidationError{Fields: []string{"hour must be a working hour slot"}}
	}

	booked, err := b.api.BookedHours(ctx, in.ProviderID, in.Date)
	if err != nil {
		return nil, fmt.Errorf("book appointment: %w", err)
	}
	for _, h := range booked {
		if h == in.Hour {
			return nil, fmt.Errorf("book appointment: %w", domain.ErrSlotTaken)
		}
	}

	created, err := b.api.CreateAppointment(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("book appointment: %w", err)
	}

	b.mu.Lock()
	b.items = append(b.items, *created)
	b.mu.Unlock()

	b.log.Info().Str("appointment_id", created.ID).Str("provider_id", in.ProviderID).Msg("appointment booked")
	return created, nil
}

// FreeSlots lists the provider's unbooked working hours on date.
func (b *AppointmentBoard) FreeSlots(ctx context.Context, providerID, date string) ([]string, error) {
	if providerID == "" {
		return nil, &domain.ValidationError{Fields: []string{"provider_id is required"}}
	}
	if _, err := domain.ParseDate(date); err != nil {
		return nil, err
	}
	booked, err := b.api.BookedHours(ctx, providerID, date)
	if err != nil {
		return nil, fmt.Errorf("free slots: %w", err)
	}
	return domain.FreeSlots(booked), nil
}
