package ollapdf

import (
	"context"
	"time"
)

// TicketState represents the lifecycle state of a queued request.
// Transitions are monotonic: Pending → Running → {Done, Failed}, with
// Pending → Failed possible directly (timeout or cancellation while waiting).
type TicketState int

// Ticket states.
const (
	TicketPending TicketState = iota
	TicketRunning
	TicketDone
	TicketFailed
)

// String returns a human-readable state name.
func (s TicketState) String() string {
	switch s {
	case TicketPending:
		return "pending"
	case TicketRunning:
		return "running"
	case TicketDone:
		return "done"
	case TicketFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions are possible.
func (s TicketState) Terminal() bool {
	return s == TicketDone || s == TicketFailed
}

// Ticket is a handle representing one caller's serialized request for
// backend access. A ticket is created by QueueService.Submit and reaches
// exactly one terminal state; once terminal, exactly one of result or error
// is populated.
type Ticket interface {
	// ID returns the unique, immutable ticket identifier.
	ID() string

	// EnqueuedAt returns the arrival time of the request.
	EnqueuedAt() time.Time

	// State returns the current lifecycle state.
	State() TicketState

	// Result returns the backend response once State is TicketDone.
	Result() string

	// Err returns the failure once State is TicketFailed. The error code
	// is one of ETIMEOUT, ECANCELED, EUNAVAILABLE or EINTERNAL.
	Err() error

	// Done returns a channel closed when the ticket reaches a terminal state.
	Done() <-chan struct{}

	// Wait blocks until the ticket is terminal or ctx expires. The caller's
	// context bounds only the wait, not the ticket itself: on ctx expiry the
	// ticket stays queued and can still complete or be canceled explicitly.
	Wait(ctx context.Context) (string, error)
}

// QueueService serializes concurrent requests against a backend that serves
// one generation at a time. Implementations guarantee strict FIFO dispatch,
// bounded queue depth with immediate EQUEUEFULL rejection, per-request
// pending timeouts, and unconditional execution-slot release.
type QueueService interface {
	// Submit performs admission control and, if accepted, enqueues the
	// request and returns its ticket synchronously. Returns EQUEUEFULL when
	// the queue is at capacity (no ticket created, no side effect) and
	// EUNAVAILABLE after Close.
	Submit(ctx context.Context, req GenerateRequest) (Ticket, error)

	// Cancel aborts a request by ticket ID. A pending ticket is removed from
	// the queue and fails with ECANCELED; a running ticket is signaled
	// best-effort. Returns false if the ticket is unknown or already terminal.
	Cancel(id string) bool

	// Position returns the 0-based queue position of a pending ticket,
	// 0 for the running ticket, and -1 if the ticket is not waiting.
	Position(id string) int

	// Stats returns a snapshot of queue metrics.
	Stats() QueueStats

	// Close stops the queue: pending tickets fail, the running call is
	// canceled best-effort, and subsequent submissions are rejected.
	Close() error
}

// QueueStats is a point-in-time snapshot of queue state for monitoring.
type QueueStats struct {
	Pending   int `json:"pending"`
	Running   int `json:"running"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
	Capacity  int `json:"capacity"`
}
