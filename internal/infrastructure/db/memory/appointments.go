package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/skillnet/skillnet/internal/core/domain"
	"github.com/skillnet/skillnet/internal/emulator/ports"
)

type AppointmentRepository struct {
	mu   sync.RWMutex
	byID map[string]domain.Appointment
}

func NewAppointmentRepository() *AppointmentRepository {
	return &AppointmentRepository{byID: map[string]domain.Appointment{}}
}

func (r *AppointmentRepository) Create(_ context.Context, a *domain.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, other := range r.byID {
		if other.Status != domain.StatusCancel &&
			other.Provider.ID == a.Provider.ID && other.Date == a.Date && other.Hour == a.Hour {
			return domain.ErrSlotTaken
		}
	}
	r.byID[a.ID] = *a
	return nil
}

func (r *AppointmentRepository) FindByID(_ context.Context, id string) (*domain.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAppointmentNotFound
	}
	return &a, nil
}

// List returns matches ordered by date and hour.
func (r *AppointmentRepository) List(_ context.Context, filter ports.AppointmentFilter) ([]domain.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Appointment, 0)
	for _, a := range r.byID {
		if filter.ClientID != "" && a.Client.ID != filter.ClientID {
			continue
		}
		if filter.ProviderID != "" && a.Provider.ID != filter.ProviderID {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		if out[i].Hour != out[j].Hour {
			return out[i].Hour < out[j].Hour
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *AppointmentRepository) UpdateStatus(_ context.Context, id string, from, to domain.AppointmentStatus, at time.Time) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAppointmentNotFound
	}
	if a.Status != from {
		return nil, domain.ErrConflict
	}
	a.Status = to
	a.UpdatedAt = at
	r.byID[id] = a
	return &a, nil
}

func (r *AppointmentRepository) BookedHours(_ context.Context, providerID, date string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	hours := []string{}
	for _, a := range r.byID {
		if a.Provider.ID == providerID && a.Date == date && a.Status != domain.StatusCancel {
			hours = append(hours, a.Hour)
		}
	}
	sort.Strings(hours)
	return hours, nil
}

func (r *AppointmentRepository) CountByStatus(_ context.Context) (map[domain.AppointmentStatus]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := map[domain.AppointmentStatus]int{}
	for _, a := range r.byID {
		counts[a.Status]++
	}
	return counts, nil
}
