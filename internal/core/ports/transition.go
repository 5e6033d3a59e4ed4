package ports

import (
	"context"
	"fmt"

	"github.com/skillnet/skillnet/internal/core/domain"
)

// TransitionCommand asks the backend to move one appointment to Target.
type TransitionCommand struct {
	ID     string                   `json:"id"`
	Target domain.AppointmentStatus `json:"status"`
}

// TransitionResult is what the backend acknowledged.
type TransitionResult struct {
	Previous    domain.AppointmentStatus `json:"previous"`
	Appointment domain.Appointment       `json:"appointment"`
}

// TransitionError reports a command that left the local list untouched.
type TransitionError struct {
	Command TransitionCommand
	Err     error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transition %s to %s: %v", e.Command.ID, e.Command.Target, e.Err)
}

func (e *TransitionError) Unwrap() error {
	return e.Err
}

// Transitioner applies status commands.
type Transitioner interface {
	Transition(ctx context.Context, cmd TransitionCommand) (*TransitionResult, error)
}
