package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skillnet/skillnet/internal/api/middleware"
	"github.com/skillnet/skillnet/internal/core/domain"
	"github.com/skillnet/skillnet/internal/emulator/ports"
)

// actorFrom extracts the claims injected by the Auth middleware and fails
// fast before any service call when they are missing.
func actorFrom(c echo.Context) (ports.Actor, error) {
	role, _ := c.Get(middleware.KeyRole).(string)
	userID, _ := c.Get(middleware.KeyUserID).(string)
	if role == "" || userID == "" {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return ports.Actor{UserID: userID, Role: domain.RoleFromBackend(role)}, nil
}

func invalidPayload() error {
	return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
}
