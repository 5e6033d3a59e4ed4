package domain

import (
	"fmt"
	"strings"
	"time"
)

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusPending          AppointmentStatus = "PENDING"
	StatusConfirmed        AppointmentStatus = "CONFIRMED"
	StatusCancel           AppointmentStatus = "CANCEL"
	StatusCompletedPartial AppointmentStatus = "COMPLETED_PARTIAL"
	StatusCompleted        AppointmentStatus = "COMPLETED"
)

// AllStatuses lists every status in lifecycle order.
var AllStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompletedPartial,
	StatusCompleted,
	StatusCancel,
}

// validTransitions defines the allowed state machine transitions.
var validTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:          {StatusConfirmed, StatusCancel},
	StatusConfirmed:        {StatusCompletedPartial, StatusCancel},
	StatusCompletedPartial: {StatusCompleted},
}

type edge struct {
	from, to AppointmentStatus
}

// transitionActors lists who may request each edge.
var transitionActors = map[edge][]Role{
	{StatusPending, StatusConfirmed}:          {RoleProvider},
	{StatusPending, StatusCancel}:             {RoleProvider},
	{StatusConfirmed, StatusCompletedPartial}: {RoleProvider},
	{StatusConfirmed, StatusCancel}:           {RoleProvider},
	{StatusCompletedPartial, StatusCompleted}: {RoleClient, RoleProvider},
}

// ParseAppointmentStatus accepts a status name in any case.
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	status := AppointmentStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", fmt.Errorf("%w: unknown status %q", ErrValidation, s)
	}
	return status, nil
}

// Valid reports whether s is one of the defined statuses.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancel, StatusCompletedPartial, StatusCompleted:
		return true
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func (s AppointmentStatus) IsTerminal() bool {
	return s.Valid() && len(validTransitions[s]) == 0
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// CheckTransition validates that role may move an appointment from one
// status to another. It returns ErrInvalidTransition for edges outside the
// graph and ErrTransitionNotAllowed when the edge exists but the role may not
// request it.
func CheckTransition(role Role, from, to AppointmentStatus) error {
	if !from.CanTransitionTo(to) {
		return fmt.Errorf("%w (from %s to %s)", ErrInvalidTransition, from, to)
	}
	for _, r := range transitionActors[edge{from, to}] {
		if r == role {
			return nil
		}
	}
	return fmt.Errorf("%w: %s cannot move %s to %s", ErrTransitionNotAllowed, role, from, to)
}

// ActionsFor returns the target statuses role may request from s, in graph order.
func (s AppointmentStatus) ActionsFor(role Role) []AppointmentStatus {
	var out []AppointmentStatus
	for _, next := range validTransitions[s] {
		if CheckTransition(role, s, next) == nil {
			out = append(out, next)
		}
	}
	return out
}

// Appointment is the server-owned booking record.
type Appointment struct {
	ID        string            `json:"id" bson:"_id"`
	Date      string            `json:"date" bson:"date"`
	Hour      string            `json:"hour" bson:"hour"`
	Status    AppointmentStatus `json:"status" bson:"status"`
	Client    Ref               `json:"client" bson:"client"`
	Provider  Ref               `json:"provider" bson:"provider"`
	Category  Ref               `json:"category" bson:"category"`
	Notes     string            `json:"notes" bson:"notes"`
	CreatedAt time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time         `json:"updated_at" bson:"updated_at"`
}

// Involves reports whether the user id is the appointment's client or provider.
func (a *Appointment) Involves(userID string) bool {
	return a.Client.ID == userID || a.Provider.ID == userID
}
