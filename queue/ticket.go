package queue

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ollapdf/ollapdf"
)

// Ensure Ticket implements ollapdf.Ticket at compile time.
var _ ollapdf.Ticket = (*Ticket)(nil)

// Ticket is the queue's handle for one serialized request. The ID and
// enqueue time are immutable; state transitions are monotonic and happen
// only under the owning queue's lock.
type Ticket struct {
	id         string
	enqueuedAt time.Time
	deadline   time.Time
	req        ollapdf.GenerateRequest

	// ctx bounds the backend call, not the queue wait. It is canceled by
	// Queue.Cancel and Queue.Close.
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	state  ollapdf.TicketState
	result string
	err    error
	done   chan struct{}
}

func newTicket(req ollapdf.GenerateRequest, timeout time.Duration) *Ticket {
	now := time.Now()
	ctx, cancel := context.WithCancel(context.Background())
	return &Ticket{
		id:         uuid.New().String(),
		enqueuedAt: now,
		deadline:   now.Add(timeout),
		req:        req,
		ctx:        ctx,
		cancel:     cancel,
		state:      ollapdf.TicketPending,
		done:       make(chan struct{}),
	}
}

// ID returns the unique ticket identifier.
func (t *Ticket) ID() string { return t.id }

// EnqueuedAt returns the arrival time of the request.
func (t *Ticket) EnqueuedAt() time.Time { return t.enqueuedAt }

// State returns the current lifecycle state.
func (t *Ticket) State() ollapdf.TicketState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Result returns the backend response once the ticket is Done.
func (t *Ticket) Result() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.result
}

// Err returns the failure once the ticket is Failed.
func (t *Ticket) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Done returns a channel closed when the ticket reaches a terminal state.
func (t *Ticket) Done() <-chan struct{} { return t.done }

// Wait blocks until the ticket is terminal or ctx ends. A canceled ctx
// reports ECANCELED, an expired deadline ETIMEOUT. The ticket itself is
// unaffected either way; it stays queued and can still complete.
func (t *Ticket) Wait(ctx context.Context) (string, error) {
	select {
	case <-t.done:
		t.mu.Lock()
		defer t.mu.Unlock()
		return t.result, t.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.Canceled) {
			return "", ollapdf.Errorf(ollapdf.ECANCELED, "stopped waiting for ticket %s", t.id)
		}
		return "", ollapdf.Errorf(ollapdf.ETIMEOUT, "gave up waiting for ticket %s", t.id)
	}
}

// setState records a non-terminal transition.
func (t *Ticket) setState(s ollapdf.TicketState) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.Terminal() {
		return
	}
	t.state = s
}

// complete transitions the ticket to Done with a result.
func (t *Ticket) complete(result string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.Terminal() {
		return
	}
	t.state = ollapdf.TicketDone
	t.result = result
	t.cancel()
	close(t.done)
}

// fail transitions the ticket to Failed with an error.
func (t *Ticket) fail(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.Terminal() {
		return
	}
	t.state = ollapdf.TicketFailed
	t.err = err
	t.cancel()
	close(t.done)
}
