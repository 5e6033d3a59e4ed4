// Package metrics defines the emulator's domain metrics. It is the single
// source of truth for metric names, labels, and help strings.
//
// Call Register once per registry before serving traffic.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "skillnet_emulator"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts credential exchanges.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts created accounts.
// Label:
//   - role: "client" or "provider"
var RegistrationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts registered, by role.",
	},
	[]string{"role"},
)

// ── Appointment metrics ───────────────────────────────────────────────────────

// AppointmentsBookedTotal counts created appointments.
// Label:
//   - category: category id of the booked service
var AppointmentsBookedTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appointments_booked_total",
		Help:      "Total number of appointments booked, by category.",
	},
	[]string{"category"},
)

// TransitionsTotal counts status change requests.
// Labels:
//   - status: requested target status (e.g. "CONFIRMED")
//   - result: "applied", "rejected" or "error"
var TransitionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transitions_total",
		Help:      "Total number of appointment status change requests.",
	},
	[]string{"status", "result"},
)

// TransitionDuration measures status change handling end to end.
// Label:
//   - status: requested target status
var TransitionDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "transition_duration_seconds",
		Help:      "Duration of appointment status change handling.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"status"},
)

var collectors = []prometheus.Collector{
	LoginsTotal,
	RegistrationsTotal,
	AppointmentsBookedTotal,
	TransitionsTotal,
	TransitionDuration,
}

// Register adds every metric to reg. Collectors already present are kept.
func Register(reg prometheus.Registerer) error {
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}
