// Package queue serializes concurrent generation requests against a backend
// that can only efficiently serve one generation at a time. It provides
// bounded FIFO admission control, a single execution slot, pending-request
// timeouts and cancellation. All queue state is guarded by one mutex held
// only for O(1) bookkeeping; the backend call itself runs unlocked.
package queue

import (
	"context"
	"sync"
	"time"

	"github.com/ollapdf/ollapdf"
)

// Defaults for queue configuration.
const (
	DefaultCapacity      = 8
	DefaultTimeout       = 60 * time.Second
	DefaultSweepInterval = 250 * time.Millisecond
)

// Ensure Queue implements ollapdf.QueueService at compile time.
var _ ollapdf.QueueService = (*Queue)(nil)

// Config holds queue configuration, fixed for the queue's lifetime.
type Config struct {
	// Capacity bounds pending + running occupancy. Minimum 1.
	Capacity int

	// Timeout is the default maximum time a request may wait in the
	// pending queue before failing with ETIMEOUT.
	Timeout time.Duration

	// SweepInterval controls the background timeout sweep. Timeouts are
	// additionally checked lazily on every enqueue and dispatch.
	SweepInterval time.Duration
}

func (c Config) withDefaults() Config {
	if c.Capacity < 1 {
		c.Capacity = DefaultCapacity
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.SweepInterval <= 0 {
		c.SweepInterval = DefaultSweepInterval
	}
	return c
}

// Queue implements ollapdf.QueueService over a Generator backend.
type Queue struct {
	gen ollapdf.Generator
	cfg Config

	mu        sync.Mutex
	pending   []*Ticket          // FIFO, strict arrival order
	running   *Ticket            // execution slot holder, at most one
	byID      map[string]*Ticket // pending + running, for Cancel/Position
	completed int
	failed    int
	closed    bool

	stopSweep chan struct{}
	sweepDone chan struct{}
}

// New creates a started queue dispatching to gen.
func New(gen ollapdf.Generator, cfg Config) *Queue {
	q := &Queue{
		gen:       gen,
		cfg:       cfg.withDefaults(),
		byID:      make(map[string]*Ticket),
		stopSweep: make(chan struct{}),
		sweepDone: make(chan struct{}),
	}
	go q.sweep()
	return q
}

// Submit performs admission control and enqueues the request.
func (q *Queue) Submit(ctx context.Context, req ollapdf.GenerateRequest) (ollapdf.Ticket, error) {
	if req.Prompt == "" {
		return nil, ollapdf.Errorf(ollapdf.EINVALID, "prompt required")
	}
	if err := ctx.Err(); err != nil {
		return nil, ollapdf.Errorf(ollapdf.ECANCELED, "request canceled before submission")
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = q.cfg.Timeout
	}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil, ollapdf.Errorf(ollapdf.EUNAVAILABLE, "queue closed")
	}

	q.evictExpiredLocked(time.Now())

	// Backpressure: occupancy counts the execution slot plus every waiter.
	occupancy := len(q.pending)
	if q.running != nil {
		occupancy++
	}
	if occupancy >= q.cfg.Capacity {
		q.mu.Unlock()
		return nil, ollapdf.Errorf(ollapdf.EQUEUEFULL, "queue full: %d requests already waiting", occupancy)
	}

	t := newTicket(req, timeout)
	q.pending = append(q.pending, t)
	q.byID[t.id] = t
	q.mu.Unlock()

	q.tryDispatch()
	return t, nil
}

// Cancel aborts a request by ticket ID.
func (q *Queue) Cancel(id string) bool {
	q.mu.Lock()
	t, ok := q.byID[id]
	if !ok {
		q.mu.Unlock()
		return false
	}

	if t == q.running {
		// Best-effort: signal the backend call; the slot is released when
		// the call returns.
		q.mu.Unlock()
		t.cancel()
		return true
	}

	q.removePendingLocked(t)
	q.failLocked(t, ollapdf.Errorf(ollapdf.ECANCELED, "request canceled"))
	q.mu.Unlock()
	return true
}

// Position returns the 0-based wait position of a ticket.
func (q *Queue) Position(id string) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.running != nil && q.running.id == id {
		return 0
	}
	offset := 0
	if q.running != nil {
		offset = 1
	}
	for i, t := range q.pending {
		if t.id == id {
			return i + offset
		}
	}
	return -1
}

// Stats returns a snapshot of queue metrics.
func (q *Queue) Stats() ollapdf.QueueStats {
	q.mu.Lock()
	defer q.mu.Unlock()

	running := 0
	if q.running != nil {
		running = 1
	}
	return ollapdf.QueueStats{
		Pending:   len(q.pending),
		Running:   running,
		Completed: q.completed,
		Failed:    q.failed,
		Capacity:  q.cfg.Capacity,
	}
}

// Close stops the queue. Pending tickets fail with ECANCELED, the running
// call is canceled best-effort, and subsequent submissions are rejected.
func (q *Queue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	pending := q.pending
	q.pending = nil
	running := q.running
	q.mu.Unlock()

	close(q.stopSweep)
	<-q.sweepDone

	q.mu.Lock()
	for _, t := range pending {
		q.failLocked(t, ollapdf.Errorf(ollapdf.ECANCELED, "queue closed"))
	}
	q.mu.Unlock()

	if running != nil {
		running.cancel()
	}
	return nil
}

// tryDispatch pops the queue head into the execution slot and starts the
// backend call. Completion chains the next dispatch, which guarantees
// forward progress while work is pending.
func (q *Queue) tryDispatch() {
	q.mu.Lock()
	if q.closed || q.running != nil {
		q.mu.Unlock()
		return
	}

	now := time.Now()
	q.evictExpiredLocked(now)

	if len(q.pending) == 0 {
		q.mu.Unlock()
		return
	}

	t := q.pending[0]
	q.pending = q.pending[1:]
	q.running = t
	t.setState(ollapdf.TicketRunning)
	q.mu.Unlock()

	go q.invoke(t)
}

// invoke runs the backend call outside the critical section and reports the
// outcome. Slot release is unconditional: a panicking backend is converted
// to a failure rather than leaving the slot busy.
func (q *Queue) invoke(t *Ticket) {
	var result string
	var err error

	func() {
		defer func() {
			if r := recover(); r != nil {
				err = ollapdf.Errorf(ollapdf.EINTERNAL, "backend panic: %v", r)
			}
		}()
		result, err = q.gen.Generate(t.ctx, t.req)
	}()

	if err == nil && t.ctx.Err() != nil {
		// Canceled mid-flight; the completed result is discarded.
		err = ollapdf.Errorf(ollapdf.ECANCELED, "request canceled")
	}

	q.onComplete(t, result, err)
	q.tryDispatch()
}

// onComplete retires the running ticket and releases the execution slot.
func (q *Queue) onComplete(t *Ticket, result string, err error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.running == t {
		q.running = nil
	}
	if err != nil {
		q.failLocked(t, err)
		return
	}
	delete(q.byID, t.id)
	q.completed++
	t.complete(result)
}

// evictExpiredLocked removes pending tickets whose wait exceeded their
// timeout. Called with q.mu held. Running tickets are exempt: execution
// timeout is owned by the backend collaborator.
func (q *Queue) evictExpiredLocked(now time.Time) {
	kept := q.pending[:0]
	for _, t := range q.pending {
		if now.After(t.deadline) {
			q.failLocked(t, ollapdf.Errorf(ollapdf.ETIMEOUT, "timed out after %s in queue", now.Sub(t.enqueuedAt).Round(time.Millisecond)))
			continue
		}
		kept = append(kept, t)
	}
	q.pending = kept
}

// failLocked transitions a ticket to Failed. Called with q.mu held.
func (q *Queue) failLocked(t *Ticket, err error) {
	delete(q.byID, t.id)
	q.failed++
	t.fail(err)
}

// sweep periodically evicts timed-out pending tickets so a waiting request
// times out even when no enqueue or dispatch activity occurs.
func (q *Queue) sweep() {
	defer close(q.sweepDone)

	ticker := time.NewTicker(q.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-q.stopSweep:
			return
		case now := <-ticker.C:
			q.mu.Lock()
			q.evictExpiredLocked(now)
			q.mu.Unlock()
		}
	}
}

// removePendingLocked removes t from the FIFO. Called with q.mu held.
func (q *Queue) removePendingLocked(t *Ticket) {
	for i, p := range q.pending {
		if p == t {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}
