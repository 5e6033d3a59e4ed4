package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/skillnet/skillnet/internal/api/metrics"
	"github.com/skillnet/skillnet/internal/core/domain"
	clientports "github.com/skillnet/skillnet/internal/core/ports"
	"github.com/skillnet/skillnet/internal/emulator/ports"
)

// AppointmentHandler handles HTTP requests for appointment operations.
type AppointmentHandler struct {
	service ports.AppointmentService
}

func NewAppointmentHandler(service ports.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

type statusRequest struct {
	Status domain.AppointmentStatus `json:"status"`
}

type bookedHoursResponse struct {
	ProviderID string   `json:"provider_id"`
	Date       string   `json:"date"`
	Hours      []string `json:"hours"`
}

// List handles GET /appointments, scoped to the caller.
func (h *AppointmentHandler) List(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	items, err := h.service.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *AppointmentHandler) Get(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	a, err := h.service.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

// Create handles POST /appointments.
func (h *AppointmentHandler) Create(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req clientports.BookingInput
	if err := c.Bind(&req); err != nil {
		return invalidPayload()
	}

	a, err := h.service.Create(c.Request().Context(), actor, req)
	if err != nil {
		return err
	}
	metrics.AppointmentsBookedTotal.WithLabelValues(a.Category.ID).Inc()

	return c.JSON(http.StatusCreated, a)
}

// UpdateStatus handles PUT /appointments/:id with a {"status": ...} body.
func (h *AppointmentHandler) UpdateStatus(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return invalidPayload()
	}

	start := time.Now()
	a, err := h.service.UpdateStatus(c.Request().Context(), actor, c.Param("id"), req.Status)
	metrics.TransitionDuration.WithLabelValues(string(req.Status)).Observe(time.Since(start).Seconds())
	metrics.TransitionsTotal.WithLabelValues(string(req.Status), transitionResult(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

// BookedHours handles GET /appointments/booked-hours/:providerId?date=.
func (h *AppointmentHandler) BookedHours(c echo.Context) error {
	providerID := c.Param("providerId")
	date := c.QueryParam("date")

	hours, err := h.service.BookedHours(c.Request().Context(), providerID, date)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookedHoursResponse{ProviderID: providerID, Date: date, Hours: hours})
}

func transitionResult(err error) string {
	switch {
	case err == nil:
		return "applied"
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrTransitionNotAllowed),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrConflict):
		return "rejected"
	default:
		return "error"
	}
}
