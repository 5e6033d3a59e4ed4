package service

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/skillnet/skillnet/internal/core/domain"
	"github.com/skillnet/skillnet/internal/core/ports"
)

type stubTokenStore struct {
	mu      sync.Mutex
	token   string
	loadErr error
	clears  int
}

func (s *stubTokenStore) Load(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.loadErr
}

func (s *stubTokenStore) Save(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *stubTokenStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.clears++
	return nil
}

func (s *stubTokenStore) current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

type stubAuthAPI struct {
	profile  *domain.UserProfile
	meErr    error
	login    *ports.LoginResult
	loginErr error

	meCalls    atomic.Int32
	loginCalls atomic.Int32
	registered []ports.RegisterInput
	meGate     chan struct{}
}

func (a *stubAuthAPI) Login(_ context.Context, _ ports.LoginInput) (*ports.LoginResult, error) {
	a.loginCalls.Add(1)
	return a.login, a.loginErr
}

func (a *stubAuthAPI) Me(ctx context.Context) (*domain.UserProfile, error) {
	a.meCalls.Add(1)
	if a.meGate != nil {
		select {
		case <-a.meGate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if a.meErr != nil {
		return nil, a.meErr
	}
	if a.profile == nil {
		return nil, nil
	}
	p := *a.profile
	return &p, nil
}

func (a *stubAuthAPI) Register(_ context.Context, in ports.RegisterInput) (*domain.UserProfile, error) {
	a.registered = append(a.registered, in)
	return &domain.UserProfile{ID: "new", Name: in.Name, Email: in.Email, Role: string(in.Kind)}, nil
}

type stubAppointmentAPI struct {
	mu        sync.Mutex
	list      []domain.Appointment
	updateErr error
	// applied overrides the status the backend answers with.
	applied   domain.AppointmentStatus
	booked    []string
	created   []ports.BookingInput
	updates   int
	listCalls int
}

func (s *stubAppointmentAPI) Appointments(_ context.Context) ([]domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	return append([]domain.Appointment(nil), s.list...), nil
}

func (s *stubAppointmentAPI) CreateAppointment(_ context.Context, in ports.BookingInput) (*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = append(s.created, in)
	return &domain.Appointment{
		ID:       "created",
		Date:     in.Date,
		Hour:     in.Hour,
		Status:   domain.StatusPending,
		Provider: domain.Ref{ID: in.ProviderID},
		Category: domain.Ref{ID: in.CategoryID},
	}, nil
}

func (s *stubAppointmentAPI) UpdateAppointmentStatus(_ context.Context, id string, status domain.AppointmentStatus) (*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates++
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	for _, a := range s.list {
		if a.ID == id {
			a.Status = status
			if s.applied != "" {
				a.Status = s.applied
			}
			return &a, nil
		}
	}
	return nil, &domain.APIError{StatusCode: 404, Message: "appointment not found"}
}

func (s *stubAppointmentAPI) BookedHours(_ context.Context, _, _ string) ([]string, error) {
	return s.booked, nil
}

type fixedSession domain.Session

func (f fixedSession) Snapshot() domain.Session {
	return domain.Session(f).Clone()
}

func sessionFor(role domain.Role) fixedSession {
	if role == domain.RoleVisitor {
		return fixedSession(domain.VisitorSession())
	}
	backend := map[domain.Role]string{
		domain.RoleClient:   domain.BackendRoleClient,
		domain.RoleProvider: domain.BackendRoleProvider,
		domain.RoleAdmin:    domain.BackendRoleAdmin,
	}[role]
	return fixedSession(domain.NewSession("tok", &domain.UserProfile{ID: "u1", Name: "User", Role: backend}))
}
