package slog

import (
	"context"
	"log/slog"

	"github.com/ollapdf/ollapdf"
)

// Ensure LoggingQueue implements ollapdf.QueueService.
var _ ollapdf.QueueService = (*LoggingQueue)(nil)

// LoggingQueue wraps a QueueService with logging of admissions, rejections
// and cancellations.
type LoggingQueue struct {
	next   ollapdf.QueueService
	logger *slog.Logger
}

// NewLoggingQueue creates a new LoggingQueue.
func NewLoggingQueue(next ollapdf.QueueService, logger *slog.Logger) *LoggingQueue {
	return &LoggingQueue{next: next, logger: logger}
}

// Submit delegates to the wrapped queue and logs the admission decision.
func (q *LoggingQueue) Submit(ctx context.Context, req ollapdf.GenerateRequest) (ollapdf.Ticket, error) {
	ticket, err := q.next.Submit(ctx, req)
	if err != nil {
		stats := q.next.Stats()
		q.logger.Warn("request rejected",
			"code", ollapdf.ErrorCode(err),
			"error", ollapdf.ErrorMessage(err),
			"pending", stats.Pending,
			"capacity", stats.Capacity,
		)
		return nil, err
	}

	q.logger.Info("request enqueued",
		"ticket_id", ticket.ID(),
		"position", q.next.Position(ticket.ID()),
	)
	return ticket, nil
}

// Cancel delegates to the wrapped queue and logs the result.
func (q *LoggingQueue) Cancel(id string) bool {
	ok := q.next.Cancel(id)
	q.logger.Info("cancel requested", "ticket_id", id, "found", ok)
	return ok
}

// Position delegates to the wrapped queue.
func (q *LoggingQueue) Position(id string) int {
	return q.next.Position(id)
}

// Stats delegates to the wrapped queue.
func (q *LoggingQueue) Stats() ollapdf.QueueStats {
	return q.next.Stats()
}

// Close delegates to the wrapped queue and logs shutdown.
func (q *LoggingQueue) Close() error {
	stats := q.next.Stats()
	q.logger.Info("queue closing", "pending", stats.Pending, "running", stats.Running)
	return q.next.Close()
}
