// Package rag implements retrieval-augmented question answering over the
// indexed documents.
package rag

import (
	"context"
	"fmt"

	"github.com/ollapdf/ollapdf"
)

const (
	// DefaultTopK is the number of chunks retrieved per question.
	DefaultTopK = 4

	// DefaultTemperature keeps answers close to the retrieved context.
	DefaultTemperature = 0.1

	// systemPrompt instructs the model to answer from the retrieved
	// context only. The context block is appended below it.
	systemPrompt = "You are an assistant for question-answering tasks. " +
		"Use the provided context to answer the question. " +
		"If you don't know the answer, just say that you don't know. " +
		"Use three sentences maximum and keep the answer concise."
)

// Ensure Answerer implements ollapdf.Answerer at compile time.
var _ ollapdf.Answerer = (*Answerer)(nil)

// Answerer answers questions by retrieving relevant chunks and submitting
// a generation request to the queue. Retrieval happens before submission
// so a rejected request costs no backend work.
type Answerer struct {
	embedder ollapdf.Embedder
	search   ollapdf.SearchService
	queue    ollapdf.QueueService

	topK        int
	temperature float32
}

// Option configures an Answerer.
type Option func(*Answerer)

// WithTopK overrides the number of chunks retrieved per question.
func WithTopK(k int) Option {
	return func(a *Answerer) {
		a.topK = k
	}
}

// WithTemperature overrides the generation temperature.
func WithTemperature(t float32) Option {
	return func(a *Answerer) {
		a.temperature = t
	}
}

// NewAnswerer creates a new Answerer.
func NewAnswerer(embedder ollapdf.Embedder, search ollapdf.SearchService,
	queue ollapdf.QueueService, opts ...Option) *Answerer {
	a := &Answerer{
		embedder:    embedder,
		search:      search,
		queue:       queue,
		topK:        DefaultTopK,
		temperature: DefaultTemperature,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Ask retrieves relevant passages and generates an answer, blocking until
// the queued request completes or ctx expires.
func (a *Answerer) Ask(ctx context.Context, question string) (*ollapdf.Answer, error) {
	ticket, sources, err := a.Submit(ctx, question)
	if err != nil {
		return nil, err
	}

	text, err := ticket.Wait(ctx)
	if err != nil {
		return nil, err
	}

	return &ollapdf.Answer{
		Text:     text,
		Sources:  sources,
		TicketID: ticket.ID(),
	}, nil
}

// Submit retrieves relevant passages and enqueues a generation request
// without waiting for the result. Callers poll or wait on the returned
// ticket.
func (a *Answerer) Submit(ctx context.Context, question string) (ollapdf.Ticket, []ollapdf.SearchResult, error) {
	if question == "" {
		return nil, nil, ollapdf.Errorf(ollapdf.EINVALID, "question required")
	}

	embedding, err := a.embedder.Embed(ctx, question)
	if err != nil {
		return nil, nil, err
	}

	sources, err := a.search.Search(ctx, embedding, ollapdf.SearchOptions{Limit: a.topK})
	if err != nil {
		return nil, nil, err
	}
	if len(sources) == 0 {
		return nil, nil, ollapdf.Errorf(ollapdf.ENOTFOUND, "no indexed documents match the question")
	}

	system := fmt.Sprintf("%s\n\nContext:\n\n%s", systemPrompt, ollapdf.FormatChunks(sources))

	ticket, err := a.queue.Submit(ctx, ollapdf.GenerateRequest{
		System:      system,
		Prompt:      question,
		Temperature: a.temperature,
	})
	if err != nil {
		return nil, nil, err
	}

	return ticket, sources, nil
}
