package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skillnet/skillnet/internal/emulator/ports"
)

type DashboardHandler struct {
	service ports.DashboardService
}

func NewDashboardHandler(service ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Metrics handles GET /admin/dashboard.
func (h *DashboardHandler) Metrics(c echo.Context) error {
	m, err := h.service.Metrics(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}
