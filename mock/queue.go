package mock

import (
	"context"
	"time"

	"github.com/ollapdf/ollapdf"
)

var _ ollapdf.QueueService = (*QueueService)(nil)

// QueueService is a mock implementation of ollapdf.QueueService.
type QueueService struct {
	SubmitFn   func(ctx context.Context, req ollapdf.GenerateRequest) (ollapdf.Ticket, error)
	CancelFn   func(id string) bool
	PositionFn func(id string) int
	StatsFn    func() ollapdf.QueueStats
	CloseFn    func() error
}

func (q *QueueService) Submit(ctx context.Context, req ollapdf.GenerateRequest) (ollapdf.Ticket, error) {
	return q.SubmitFn(ctx, req)
}

func (q *QueueService) Cancel(id string) bool {
	return q.CancelFn(id)
}

func (q *QueueService) Position(id string) int {
	return q.PositionFn(id)
}

func (q *QueueService) Stats() ollapdf.QueueStats {
	return q.StatsFn()
}

func (q *QueueService) Close() error {
	return q.CloseFn()
}

var _ ollapdf.Ticket = (*Ticket)(nil)

// Ticket is a mock implementation of ollapdf.Ticket.
type Ticket struct {
	IDFn         func() string
	EnqueuedAtFn func() time.Time
	StateFn      func() ollapdf.TicketState
	ResultFn     func() string
	ErrFn        func() error
	DoneFn       func() <-chan struct{}
	WaitFn       func(ctx context.Context) (string, error)
}

func (t *Ticket) ID() string { return t.IDFn() }

func (t *Ticket) EnqueuedAt() time.Time { return t.EnqueuedAtFn() }

func (t *Ticket) State() ollapdf.TicketState { return t.StateFn() }

func (t *Ticket) Result() string { return t.ResultFn() }

func (t *Ticket) Err() error { return t.ErrFn() }

func (t *Ticket) Done() <-chan struct{} { return t.DoneFn() }

func (t *Ticket) Wait(ctx context.Context) (string, error) {
	return t.WaitFn(ctx)
}
