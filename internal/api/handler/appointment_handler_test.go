package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/skillnet/skillnet/internal/core/domain"
	clientports "github.com/skillnet/skillnet/internal/core/ports"
	"github.com/skillnet/skillnet/internal/emulator/ports"
)

type stubAppointmentService struct {
	updateFn func(ctx context.Context, actor ports.Actor, id string, status domain.AppointmentStatus) (*domain.Appointment, error)
	createFn func(ctx context.Context, actor ports.Actor, in clientports.BookingInput) (*domain.Appointment, error)
	hours    []string
}

func (s *stubAppointmentService) List(ctx context.Context, actor ports.Actor) ([]domain.Appointment, error) {
	return []domain.Appointment{{ID: "a1", Status: domain.StatusPending}}, nil
}

func (s *stubAppointmentService) Get(ctx context.Context, actor ports.Actor, id string) (*domain.Appointment, error) {
	return nil, domain.ErrAppointmentNotFound
}

func (s *stubAppointmentService) Create(ctx context.Context, actor ports.Actor, in clientports.BookingInput) (*domain.Appointment, error) {
	return s.createFn(ctx, actor, in)
}

func (s *stubAppointmentService) UpdateStatus(ctx context.Context, actor ports.Actor, id string, status domain.AppointmentStatus) (*domain.Appointment, error) {
	return s.updateFn(ctx, actor, id, status)
}

func (s *stubAppointmentService) BookedHours(ctx context.Context, providerID, date string) ([]string, error) {
	return s.hours, nil
}

func TestAppointmentHandler_UpdateStatus_Success(t *testing.T) {
	stub := &stubAppointmentService{
		updateFn: func(ctx context.Context, actor ports.Actor, id string, status domain.AppointmentStatus) (*domain.Appointment, error) {
			if actor.Role != domain.RoleProvider || id != "a1" || status != domain.StatusConfirmed {
				t.Fatalf("unexpected call: %+v %s %s", actor, id, status)
			}
			return &domain.Appointment{ID: id, Status: status}, nil
		},
	}
	handler := NewAppointmentHandler(stub)

	c, rec := newContext(http.MethodPut, "/appointments/a1", `{"status":"CONFIRMED"}`)
	c.SetParamNames("id")
	c.SetParamValues("a1")
	withActor(c, "p1", "provider")

	if err := handler.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var a domain.Appointment
	if err := json.Unmarshal(rec.Body.Bytes(), &a); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if a.Status != domain.StatusConfirmed {
		t.Fatalf("expected CONFIRMED, got %s", a.Status)
	}
}

func TestAppointmentHandler_UpdateStatus_Rejected(t *testing.T) {
	stub := &stubAppointmentService{
		updateFn: func(ctx context.Context, actor ports.Actor, id string, status domain.AppointmentStatus) (*domain.Appointment, error) {
			return nil, domain.ErrInvalidTransition
		},
	}
	handler := NewAppointmentHandler(stub)

	c, _ := newContext(http.MethodPut, "/appointments/a1", `{"status":"COMPLETED"}`)
	c.SetParamNames("id")
	c.SetParamValues("a1")
	withActor(c, "p1", "provider")

	if err := handler.UpdateStatus(c); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestAppointmentHandler_Create(t *testing.T) {
	stub := &stubAppointmentService{
		createFn: func(ctx context.Context, actor ports.Actor, in clientports.BookingInput) (*domain.Appointment, error) {
			if actor.UserID != "c1" || in.ProviderID != "p1" || in.Hour != "09:00" {
				t.Fatalf("unexpected call: %+v %+v", actor, in)
			}
			return &domain.Appointment{ID: "a1", Status: domain.StatusPending, Category: domain.Ref{ID: "plumbing"}}, nil
		},
	}
	handler := NewAppointmentHandler(stub)

	c, rec := newContext(http.MethodPost, "/appointments",
		`{"provider_id":"p1","category_id":"plumbing","date":"2026-10-20","hour":"09:00"}`)
	withActor(c, "c1", "client")

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestAppointmentHandler_BookedHours(t *testing.T) {
	handler := NewAppointmentHandler(&stubAppointmentService{hours: []string{"09:00", "11:00"}})

	c, rec := newContext(http.MethodGet, "/appointments/booked-hours/p1?date=2026-10-20", "")
	c.SetParamNames("providerId")
	c.SetParamValues("p1")

	if err := handler.BookedHours(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp bookedHoursResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ProviderID != "p1" || resp.Date != "2026-10-20" || len(resp.Hours) != 2 {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAppointmentHandler_ListRequiresClaims(t *testing.T) {
	handler := NewAppointmentHandler(&stubAppointmentService{})

	c, _ := newContext(http.MethodGet, "/appointments", "")
	if err := handler.List(c); err == nil {
		t.Fatalf("expected error without claims")
	}
}

func TestTransitionResult(t *testing.T) {
	cases := map[string]struct {
		err  error
		want string
	}{
		"applied":     {nil, "applied"},
		"invalid":     {domain.ErrInvalidTransition, "rejected"},
		"not allowed": {domain.ErrTransitionNotAllowed, "rejected"},
		"validation":  {&domain.ValidationError{Fields: []string{"status"}}, "rejected"},
		"store":       {errors.New("boom"), "error"},
	}
	for name, tc := range cases {
		if got := transitionResult(tc.err); got != tc.want {
			t.Errorf("%s: got %q, want %q", name, got, tc.want)
		}
	}
}
