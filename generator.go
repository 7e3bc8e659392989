package ollapdf

import (
	"context"
	"time"
)

// GenerateRequest is the payload handed to the backend for one generation.
// The queue treats it as opaque; it is assembled by the Answerer from the
// retrieved context and the user's question.
type GenerateRequest struct {
	// System is the system instruction, including the formatted context.
	System string `json:"system"`

	// Prompt is the user's question.
	Prompt string `json:"prompt"`

	// Temperature controls output randomness.
	Temperature float32 `json:"temperature"`

	// Timeout optionally overrides the queue's default pending timeout.
	// Zero means use the default.
	Timeout time.Duration `json:"timeout,omitempty"`
}

// Generator is the backend-invocation collaborator wrapping the LLM call.
// The queue calls Generate exactly once per running ticket.
type Generator interface {
	// Generate produces a completion for the request. Implementations honor
	// ctx cancellation; failures are reported as EUNAVAILABLE (backend not
	// reachable) or EINTERNAL (backend returned an unusable response).
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// Embedder converts text into a numeric vector representation.
type Embedder interface {
	// Embed returns the embedding vector for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch returns one embedding per input text, in input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// ModelLister reports the models available on a backend.
type ModelLister interface {
	ListModels(ctx context.Context) ([]string, error)
}
