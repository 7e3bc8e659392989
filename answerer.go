package ollapdf

import "context"

// Answer is the result of a question answered over the indexed documents.
type Answer struct {
	// Text is the generated answer.
	Text string `json:"text"`

	// Sources are the retrieved chunks the answer was grounded on.
	Sources []SearchResult `json:"sources,omitempty"`

	// TicketID identifies the queue ticket that served the request.
	TicketID string `json:"ticketId,omitempty"`
}

// Answerer provides natural language question answering over the indexed
// documents.
type Answerer interface {
	// Ask retrieves relevant passages and generates an answer.
	// Returns ENOTFOUND if no documents have been indexed yet.
	Ask(ctx context.Context, question string) (*Answer, error)
}
