package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/skillnet/skillnet/internal/core/domain"
	"github.com/skillnet/skillnet/internal/core/ports"
)

type shortcut struct {
	result   domain.SearchResult
	keywords []string
	roles    []domain.Role
}

var shortcuts = []shortcut{
	{
		result:   domain.SearchResult{Type: domain.ResultProfile, ID: "profile", Title: "My profile", Subtitle: "Account details"},
		keywords: []string{"perfil", "cuenta", "account"},
		roles:    []domain.Role{domain.RoleClient, domain.RoleProvider, domain.RoleAdmin},
	},
	{
		result:   domain.SearchResult{Type: domain.ResultDashboard, ID: "dashboard", Title: "Dashboard", Subtitle: "Overview and metrics"},
		keywords: []string{"panel", "metrics", "metricas"},
		roles:    []domain.Role{domain.RoleProvider, domain.RoleAdmin},
	},
}

// BackendSearchSource gathers hits from the backend directory, the caller's
// appointments and static shortcuts. A failing source contributes nothing.
type BackendSearchSource struct {
	catalog      ports.CatalogAPI
	appointments ports.AppointmentAPI
	session      SessionReader
	log          zerolog.Logger
}

func NewBackendSearchSource(catalog ports.CatalogAPI, appointments ports.AppointmentAPI, session SessionReader, log zerolog.Logger) *BackendSearchSource {
	return &BackendSearchSource{catalog: catalog, appointments: appointments, session: session, log: log}
}

func (s *BackendSearchSource) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	sess := s.session.Snapshot()
	var providers, categories, appointments []domain.SearchResult

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := s.catalog.SearchProviders(gctx, query)
		if err != nil {
			return s.degrade(ctx, "providers", err)
		}
		for _, p := range list {
			providers = append(providers, providerResult(p))
		}
		return nil
	})
	g.Go(func() error {
		list, err := s.catalog.Categories(gctx)
		if err != nil {
			return s.degrade(ctx, "categories", err)
		}
		for _, c := range list {
			if domain.Matches(query, c.Name) || domain.Matches(query, c.Description) {
				categories = append(categories, domain.SearchResult{
					Type: domain.ResultCategory, ID: c.ID, Title: c.Name, Subtitle: c.Description,
				})
			}
		}
		return nil
	})
	if sess.Authenticated() {
		g.Go(func() error {
			list, err := s.appointments.Appointments(gctx)
			if err != nil {
				return s.degrade(ctx, "appointments", err)
			}
			for _, a := range list {
				if appointmentMatches(query, a) {
					appointments = append(appointments, appointmentResult(sess.Role, a))
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]domain.SearchResult, 0, len(providers)+len(categories)+len(appointments)+len(shortcuts))
	out = append(out, providers...)
	out = append(out, categories...)
	out = append(out, shortcutsFor(sess.Role, query)...)
	out = append(out, appointments...)
	return out, nil
}

// degrade logs a source failure and swallows it unless the caller gave up.
func (s *BackendSearchSource) degrade(ctx context.Context, source string, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	s.log.Debug().Err(err).Str("source", source).Msg("search source failed")
	return nil
}

func providerResult(p domain.ServiceProvider) domain.SearchResult {
	sub := p.Category.Name
	if p.City != "" {
		if sub != "" {
			sub += ", "
		}
		sub += p.City
	}
	return domain.SearchResult{
		Type:     domain.ResultProvider,
		ID:       p.ID,
		Title:    p.Name,
		Subtitle: sub,
		Keywords: []string{p.Category.Name},
	}
}

func appointmentMatches(query string, a domain.Appointment) bool {
	for _, text := range []string{a.Client.Name, a.Provider.Name, a.Category.Name, a.Notes} {
		if domain.Matches(query, text) {
			return true
		}
	}
	return false
}

func appointmentResult(role domain.Role, a domain.Appointment) domain.SearchResult {
	counterpart := a.Provider.Name
	if role == domain.RoleProvider {
		counterpart = a.Client.Name
	}
	title := strings.TrimSpace(a.Category.Name)
	if title == "" {
		title = "Appointment"
	}
	if counterpart != "" {
		title = fmt.Sprintf("%s with %s", title, counterpart)
	}
	return domain.SearchResult{
		Type:     domain.ResultAppointment,
		ID:       a.ID,
		Title:    title,
		Subtitle: fmt.Sprintf("%s %s %s", a.Date, a.Hour, a.Status),
	}
}

func shortcutsFor(role domain.Role, query string) []domain.SearchResult {
	var out []domain.SearchResult
	for _, sc := range shortcuts {
		if !hasRole(sc.roles, role) || !shortcutMatches(query, sc) {
			continue
		}
		out = append(out, sc.result)
	}
	return out
}

func shortcutMatches(query string, sc shortcut) bool {
	if domain.Matches(query, sc.result.Title) {
		return true
	}
	for _, k := range sc.keywords {
		if domain.Matches(query, k) {
			return true
		}
	}
	return false
}

func hasRole(roles []domain.Role, role domain.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
