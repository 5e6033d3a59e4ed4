package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/skillnet/skillnet/internal/core/domain"
	"github.com/skillnet/skillnet/internal/core/ports"
	"github.com/skillnet/skillnet/internal/pkg/validation"
)

// SessionPhase tracks resolution of the persisted session.
type SessionPhase int

const (
	// PhaseIdle means Init has not run yet.
	PhaseIdle SessionPhase = iota
	// PhaseLoading means a profile fetch is in flight; role-specific output must wait.
	PhaseLoading
	// PhaseReady means the role reflects the backend (or no token was stored).
	PhaseReady
	// PhaseUnresolved means the profile fetch failed for a reason other than 401.
	// The role stays visitor and the stored token is kept for a later retry.
	PhaseUnresolved
)

func (p SessionPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseUnresolved:
		return "unresolved"
	}
	return "unknown"
}

// SessionManager owns the client session. It is the only writer of the token
// and the derived role; everything else reads snapshots.
type SessionManager struct {
	auth  ports.AuthAPI
	store ports.TokenStore
	log   zerolog.Logger

	mu        sync.RWMutex
	session   domain.Session
	phase     SessionPhase
	lastErr   error
	epoch     uint64
	done      chan struct{}
	settled   bool
	listeners []func(domain.Session)

	refreshes singleflight.Group
}

// NewSessionManager returns a manager holding an empty visitor session.
func NewSessionManager(auth ports.AuthAPI, store ports.TokenStore, log zerolog.Logger) *SessionManager {
	return &SessionManager{
		auth:    auth,
		store:   store,
		log:     log,
		session: domain.VisitorSession(),
		done:    make(chan struct{}),
	}
}

// Init bootstraps the session from storage. A stored token that the backend
// rejects with 401 is not an error: the session simply ends up as visitor.
// Other failures leave the session unresolved and are returned.
func (m *SessionManager) Init(ctx context.Context) error {
	_, err := m.Refresh(ctx)
	if errors.Is(err, domain.ErrUnauthorized) {
		return nil
	}
	return err
}

// Refresh re-fetches the current profile with the stored token. Concurrent
// calls share one request; it is detached from any single caller's
// cancellation, and each caller stops waiting when its own ctx ends.
func (m *SessionManager) Refresh(ctx context.Context) (domain.Session, error) {
	flight := context.WithoutCancel(ctx)
	ch := m.refreshes.DoChan("me", func() (any, error) {
		return m.refresh(flight)
	})

	select {
	case res := <-ch:
		s, _ := res.Val.(domain.Session)
		return s, res.Err
	case <-ctx.Done():
		return domain.VisitorSession(), ctx.Err()
	}
}

func (m *SessionManager) refresh(ctx context.Context) (domain.Session, error) {
	epoch := m.beginLoading()

	token, err := m.store.Load(ctx)
	if err != nil {
		err = fmt.Errorf("load token: %w", err)
		m.settle(epoch, PhaseUnresolved, domain.VisitorSession(), err)
		return domain.VisitorSession(), err
	}
	if token == "" {
		m.settle(epoch, PhaseReady, domain.VisitorSession(), nil)
		return domain.VisitorSession(), nil
	}

	profile, err := m.auth.Me(ctx)
	switch {
	case err == nil:
		s := domain.NewSession(token, profile)
		m.settle(epoch, PhaseReady, s, nil)
		m.log.Debug().Str("role", s.Role.String()).Msg("session resolved")
		return s.Clone(), nil
	case errors.Is(err, domain.ErrUnauthorized):
		m.log.Info().Msg("stored token rejected, tearing down session")
		m.teardown(ctx)
		return domain.VisitorSession(), fmt.Errorf("refresh session: %w", err)
	default:
		err = fmt.Errorf("refresh session: %w", err)
		m.settle(epoch, PhaseUnresolved, domain.Session{Role: domain.RoleVisitor, Token: token}, err)
		m.log.Warn().Err(err).Msg("session left unresolved")
		return domain.VisitorSession(), err
	}
}

// Login exchanges credentials for a token, persists it and adopts the profile.
// Invalid input fails before any network call.
func (m *SessionManager) Login(ctx context.Context, in ports.LoginInput) (domain.Session, error) {
	if err := validation.Struct(in); err != nil {
		return domain.VisitorSession(), err
	}

	res, err := m.auth.Login(ctx, in)
	if err != nil {
		return domain.VisitorSession(), fmt.Errorf("login: %w", err)
	}
	if res == nil || res.Token == "" {
		return domain.VisitorSession(), fmt.Errorf("login: %w: no token issued", domain.ErrInvalidCredentials)
	}

	return m.adopt(ctx, res.Token, res.User)
}

// LoginWithToken completes an external (OAuth) handoff that yielded a token.
func (m *SessionManager) LoginWithToken(ctx context.Context, token string) (domain.Session, error) {
	if token == "" {
		return domain.VisitorSession(), &domain.ValidationError{Fields: []string{"token is required"}}
	}
	return m.adopt(ctx, token, nil)
}

func (m *SessionManager) adopt(ctx context.Context, token string, profile *domain.UserProfile) (domain.Session, error) {
	if err := m.store.Save(ctx, token); err != nil {
		return domain.VisitorSession(), fmt.Errorf("persist token: %w", err)
	}

	if profile == nil {
		var err error
		profile, err = m.auth.Me(ctx)
		if err != nil {
			m.teardown(ctx)
			return domain.VisitorSession(), fmt.Errorf("fetch profile: %w", err)
		}
	}

	s := domain.NewSession(token, profile)
	m.reset(s)
	m.log.Info().Str("role", s.Role.String()).Str("user_id", profile.ID).Msg("logged in")
	return s.Clone(), nil
}

// Register creates an account. It does not log in.
func (m *SessionManager) Register(ctx context.Context, in ports.RegisterInput) (*domain.UserProfile, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	profile, err := m.auth.Register(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("register %s: %w", in.Kind, err)
	}
	return profile, nil
}

// Logout drops the token and profile. The in-memory session becomes visitor
// before the store is touched; calling it again is harmless.
func (m *SessionManager) Logout(ctx context.Context) error {
	m.reset(domain.VisitorSession())
	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("logout: clear token: %w", err)
	}
	return nil
}

// Expire is the forced teardown run when any backend call answers 401.
func (m *SessionManager) Expire() {
	m.teardown(context.Background())
}

func (m *SessionManager) teardown(ctx context.Context) {
	m.reset(domain.VisitorSession())
	if err := m.store.Clear(ctx); err != nil {
		m.log.Error().Err(err).Msg("failed to clear stored token")
	}
}

// Snapshot returns a copy of the current session. A session that violates the
// role invariant is torn down before being returned.
func (m *SessionManager) Snapshot() domain.Session {
	m.mu.RLock()
	s := m.session.Clone()
	m.mu.RUnlock()

	if !s.Consistent() {
		m.log.Warn().Str("role", s.Role.String()).Msg("inconsistent session, reverting to visitor")
		m.teardown(context.Background())
		return domain.VisitorSession()
	}
	return s
}

// Role is shorthand for Snapshot().Role.
func (m *SessionManager) Role() domain.Role {
	return m.Snapshot().Role
}

// Phase reports the resolution phase.
func (m *SessionManager) Phase() SessionPhase {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.phase
}

// LastError returns the failure behind PhaseUnresolved, if any.
func (m *SessionManager) LastError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastErr
}

// Wait blocks until the session is no longer loading or ctx ends. Before
// Init there is nothing to wait for and it returns at once.
func (m *SessionManager) Wait(ctx context.Context) error {
	m.mu.RLock()
	done, phase := m.done, m.phase
	m.mu.RUnlock()
	if phase == PhaseIdle {
		return nil
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Subscribe registers fn to receive every session change.
func (m *SessionManager) Subscribe(fn func(domain.Session)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// beginLoading enters PhaseLoading and returns the epoch a later settle must match.
func (m *SessionManager) beginLoading() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.settled {
		m.done = make(chan struct{})
		m.settled = false
	}
	m.phase = PhaseLoading
	return m.epoch
}

// settle applies the outcome of a fetch started at epoch. Outcomes overtaken by
// a login, logout or expiry are dropped.
func (m *SessionManager) settle(epoch uint64, phase SessionPhase, s domain.Session, err error) {
	m.mu.Lock()
	if epoch != m.epoch {
		m.mu.Unlock()
		return
	}
	m.apply(phase, s, err)
	listeners := m.listeners
	m.mu.Unlock()

	m.notify(listeners, s)
}

// reset installs s unconditionally and invalidates in-flight fetches.
func (m *SessionManager) reset(s domain.Session) {
	m.mu.Lock()
	m.epoch++
	m.apply(PhaseReady, s, nil)
	listeners := m.listeners
	m.mu.Unlock()

	m.notify(listeners, s)
}

// apply must be called with mu held.
func (m *SessionManager) apply(phase SessionPhase, s domain.Session, err error) {
	m.session = s.Clone()
	m.phase = phase
	m.lastErr = err
	if !m.settled {
		close(m.done)
		m.settled = true
	}
}

func (m *SessionManager) notify(listeners []func(domain.Session), s domain.Session) {
	for _, fn := range listeners {
		fn(s.Clone())
	}
}
