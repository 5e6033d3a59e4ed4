package service

import (
	"net/url"

	"github.com/skillnet/skillnet/internal/core/domain"
)

// Routes the client navigates to.
const (
	RouteHome                 = "/"
	RouteLogin                = "/login"
	RouteRegister             = "/register"
	RouteServices             = "/services"
	RouteProfile              = "/profile"
	RouteClientAppointments   = "/profile/appointments"
	RouteProviderDashboard    = "/dashboard"
	RouteProviderAppointments = "/dashboard/appointments"
	RouteAdminDashboard       = "/admin/dashboard"
	RouteAdminAppointments    = "/admin/appointments"
	RouteAdminProviders       = "/admin/providers"
	RouteSubscription         = "/subscription"
)

// DashboardVariant is the view rendered at RouteProfile.
type DashboardVariant string

const (
	DashboardNone     DashboardVariant = ""
	DashboardClient   DashboardVariant = "client"
	DashboardProvider DashboardVariant = "provider"
	DashboardAdmin    DashboardVariant = "admin"
)

// NavItem is one entry of the role-dependent navigation bar.
type NavItem struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

var navItems = map[domain.Role][]NavItem{
	domain.RoleVisitor: {
		{"Home", RouteHome},
		{"Services", RouteServices},
		{"Log in", RouteLogin},
		{"Sign up", RouteRegister},
	},
	domain.RoleClient: {
		{"Home", RouteHome},
		{"Services", RouteServices},
		{"My appointments", RouteClientAppointments},
		{"Subscription", RouteSubscription},
		{"Profile", RouteProfile},
	},
	domain.RoleProvider: {
		{"Home", RouteHome},
		{"Dashboard", RouteProviderDashboard},
		{"Appointments", RouteProviderAppointments},
		{"Profile", RouteProfile},
	},
	domain.RoleAdmin: {
		{"Home", RouteHome},
		{"Dashboard", RouteAdminDashboard},
		{"Appointments", RouteAdminAppointments},
		{"Providers", RouteAdminProviders},
		{"Profile", RouteProfile},
	},
}

// Navigator resolves role-dependent routes from the current session.
type Navigator struct {
	session SessionReader
}

func NewNavigator(session SessionReader) *Navigator {
	return &Navigator{session: session}
}

// Items returns the navigation entries for the current role.
func (n *Navigator) Items() []NavItem {
	return NavItemsFor(n.session.Snapshot().Role)
}

// Dashboard returns the variant rendered at RouteProfile and, for visitors,
// the route to redirect to instead.
func (n *Navigator) Dashboard() (DashboardVariant, string) {
	v := DashboardFor(n.session.Snapshot().Role)
	if v == DashboardNone {
		return v, RouteLogin
	}
	return v, RouteProfile
}

// ResultRoute returns where selecting r leads for the current role.
func (n *Navigator) ResultRoute(r domain.SearchResult) string {
	return ResultRouteFor(n.session.Snapshot().Role, r)
}

func NavItemsFor(role domain.Role) []NavItem {
	return append([]NavItem(nil), navItems[role]...)
}

func DashboardFor(role domain.Role) DashboardVariant {
	switch role {
	case domain.RoleClient:
		return DashboardClient
	case domain.RoleProvider:
		return DashboardProvider
	case domain.RoleAdmin:
		return DashboardAdmin
	}
	return DashboardNone
}

func ResultRouteFor(role domain.Role, r domain.SearchResult) string {
	switch r.Type {
	case domain.ResultProvider:
		return "/providers/" + url.PathEscape(r.ID)
	case domain.ResultCategory:
		return RouteServices + "?" + url.Values{"category": {r.ID}}.Encode()
	case domain.ResultAppointment:
		switch role {
		case domain.RoleClient:
			return RouteClientAppointments
		case domain.RoleProvider:
			return RouteProviderAppointments
		case domain.RoleAdmin:
			return RouteAdminAppointments
		}
		return RouteLogin
	case domain.ResultProfile:
		if role.Authenticated() {
			return RouteProfile
		}
		return RouteLogin
	case domain.ResultDashboard:
		switch role {
		case domain.RoleAdmin:
			return RouteAdminDashboard
		case domain.RoleProvider:
			return RouteProviderDashboard
		}
		return RouteLogin
	}
	return RouteHome
}
