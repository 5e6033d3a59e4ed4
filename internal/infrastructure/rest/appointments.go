package rest

import (
	"context"
	"net/http"
	"net/url"

	"github.com/skillnet/skillnet/internal/core/domain"
	"github.com/skillnet/skillnet/internal/core/ports"
)

// BookedHours is the availability document of one provider and day.
type BookedHours struct {
	ProviderID string   `json:"provider_id"`
	Date       string   `json:"date"`
	Hours      []string `json:"hours"`
}

type statusUpdate struct {
	Status domain.AppointmentStatus `json:"status"`
}

// Appointments lists the caller's appointments as scoped by the backend.
func (c *Client) Appointments(ctx context.Context) ([]domain.Appointment, error) {
	var out []domain.Appointment
	if err := c.do(ctx, http.MethodGet, "/appointments", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Appointment(ctx context.Context, id string) (*domain.Appointment, error) {
	var out domain.Appointment
	if err := c.do(ctx, http.MethodGet, "/appointments/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateAppointment(ctx context.Context, in ports.BookingInput) (*domain.Appointment, error) {
	var out domain.Appointment
	if err := c.do(ctx, http.MethodPost, "/appointments", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateAppointmentStatus requests a status change and returns the record the
// backend stored.
func (c *Client) UpdateAppointmentStatus(ctx context.Context, id string, status domain.AppointmentStatus) (*domain.Appointment, error) {
	var out domain.Appointment
	path := "/appointments/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodPut, path, nil, statusUpdate{Status: status}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) BookedHours(ctx context.Context, providerID, date string) ([]string, error) {
	var out BookedHours
	path := "/appointments/booked-hours/" + url.PathEscape(providerID)
	if err := c.do(ctx, http.MethodGet, path, url.Values{"date": {date}}, nil, &out); err != nil {
		return nil, err
	}
	return out.Hours, nil
}
