package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/skillnet/skillnet/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// Outcome is the result of one command submitted to Apply.
type Outcome struct {
	Index   int                     `json:"index"`
	Command ports.TransitionCommand `json:"command"`
	Result  *ports.TransitionResult `json:"result,omitempty"`
	Err     error                   `json:"-"`
}

type job struct {
	index int
	cmd   ports.TransitionCommand
	out   chan<- Outcome
}

// Dispatcher routes transition commands to a fixed set of workers using
// consistent hashing on the appointment id, so commands for the same
// appointment run one after another in submission order.
type Dispatcher struct {
	workers []chan job
	target  ports.Transitioner
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, target ports.Transitioner, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan job, numWorkers),
		target:  target,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan job, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Apply submits cmds and waits for every outcome. Outcomes are returned in
// submission order. Start must have been called.
func (d *Dispatcher) Apply(ctx context.Context, cmds []ports.TransitionCommand) ([]Outcome, error) {
	out := make(chan Outcome, len(cmds))
	for i, cmd := range cmds {
		select {
		case d.workers[d.shardIndex(cmd.ID)] <- job{index: i, cmd: cmd, out: out}:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	outcomes := make([]Outcome, len(cmds))
	for range cmds {
		select {
		case o := <-out:
			outcomes[o.Index] = o
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return outcomes, nil
}

// shardIndex maps an appointment id deterministically to a worker index.
func (d *Dispatcher) shardIndex(appointmentID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(appointmentID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan job) {
	for {
		select {
		case <-ctx.Done():
			return
		case j, ok := <-ch:
			if !ok {
				return
			}
			res, err := d.target.Transition(ctx, j.cmd)
			if err != nil {
				d.log.Error().Err(err).
					Str("appointment_id", j.cmd.ID).
					Str("status", string(j.cmd.Target)).
					Int("worker_id", id).
					Msg("transition failed")
			}
			j.out <- Outcome{Index: j.index, Command: j.cmd, Result: res, Err: err}
		}
	}
}
