// Package slog provides logging decorators for ollapdf services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/ollapdf/ollapdf"
)

// Ensure LoggingAnswerer implements ollapdf.Answerer.
var _ ollapdf.Answerer = (*LoggingAnswerer)(nil)

// LoggingAnswerer wraps an Answerer with structured logging of questions,
// outcomes and latency.
type LoggingAnswerer struct {
	next   ollapdf.Answerer
	logger *slog.Logger
}

// NewLoggingAnswerer creates a new LoggingAnswerer.
func NewLoggingAnswerer(next ollapdf.Answerer, logger *slog.Logger) *LoggingAnswerer {
	return &LoggingAnswerer{next: next, logger: logger}
}

// Ask delegates to the wrapped Answerer and logs the outcome.
func (a *LoggingAnswerer) Ask(ctx context.Context, question string) (*ollapdf.Answer, error) {
	begin := time.Now()
	answer, err := a.next.Ask(ctx, question)
	if err != nil {
		a.logger.Error("question failed",
			"question", question,
			"code", ollapdf.ErrorCode(err),
			"error", ollapdf.ErrorMessage(err),
			"duration", time.Since(begin),
		)
		return nil, err
	}

	a.logger.Info("question answered",
		"question", question,
		"ticket_id", answer.TicketID,
		"sources", len(answer.Sources),
		"duration", time.Since(begin),
	)
	return answer, nil
}
