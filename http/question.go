package http

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/ollapdf/ollapdf"
)

// questionRegistry tracks submitted questions by ticket ID so their state
// can be polled after submission. Entries survive ticket completion.
type questionRegistry struct {
	mu      sync.Mutex
	entries map[string]*questionEntry
}

type questionEntry struct {
	question string
	ticket   ollapdf.Ticket
	sources  []ollapdf.SearchResult
}

func newQuestionRegistry() *questionRegistry {
	return &questionRegistry{entries: make(map[string]*questionEntry)}
}

func (r *questionRegistry) add(e *questionEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[e.ticket.ID()] = e
}

func (r *questionRegistry) get(id string) (*questionEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	return e, ok
}

type askRequest struct {
	Question string `json:"question"`
}

// questionResponse is the poll representation of a submitted question.
type questionResponse struct {
	ID       string                 `json:"id"`
	Question string                 `json:"question"`
	State    string                 `json:"state"`
	Position int                    `json:"position"`
	Answer   string                 `json:"answer,omitempty"`
	Error    string                 `json:"error,omitempty"`
	Sources  []ollapdf.SearchResult `json:"sources,omitempty"`
}

func (s *Server) questionResponse(e *questionEntry) questionResponse {
	resp := questionResponse{
		ID:       e.ticket.ID(),
		Question: e.question,
		State:    e.ticket.State().String(),
		Position: s.QueueService.Position(e.ticket.ID()),
	}
	switch e.ticket.State() {
	case ollapdf.TicketDone:
		resp.Answer = e.ticket.Result()
		resp.Sources = e.sources
	case ollapdf.TicketFailed:
		resp.Error = ollapdf.ErrorMessage(e.ticket.Err())
	}
	return resp
}

// handleAsk answers a question synchronously, blocking until the queued
// request completes or the client disconnects.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, ollapdf.Errorf(ollapdf.EINVALID, "invalid JSON body"))
		return
	}

	answer, err := s.AnswerService.Ask(r.Context(), req.Question)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, answer)
}

// handleSubmitQuestion enqueues a question and returns a pollable ticket.
func (s *Server) handleSubmitQuestion(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, ollapdf.Errorf(ollapdf.EINVALID, "invalid JSON body"))
		return
	}

	ticket, sources, err := s.Submitter.Submit(r.Context(), req.Question)
	if err != nil {
		writeError(w, err)
		return
	}

	entry := &questionEntry{question: req.Question, ticket: ticket, sources: sources}
	s.questions.add(entry)

	writeJSON(w, http.StatusAccepted, s.questionResponse(entry))
}

// handleGetQuestion reports the current state of a submitted question.
func (s *Server) handleGetQuestion(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.questions.get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, ollapdf.Errorf(ollapdf.ENOTFOUND, "question not found"))
		return
	}

	writeJSON(w, http.StatusOK, s.questionResponse(entry))
}

// handleCancelQuestion aborts a pending or running question.
func (s *Server) handleCancelQuestion(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	entry, ok := s.questions.get(id)
	if !ok {
		writeError(w, ollapdf.Errorf(ollapdf.ENOTFOUND, "question not found"))
		return
	}

	if entry.ticket.State().Terminal() {
		writeError(w, ollapdf.Errorf(ollapdf.ECONFLICT, "question already finished"))
		return
	}

	s.QueueService.Cancel(id)
	w.WriteHeader(http.StatusNoContent)
}

// handleQueueStats reports queue occupancy and lifetime counters.
func (s *Server) handleQueueStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.QueueService.Stats())
}

// handleListModels reports the models available on the backend.
func (s *Server) handleListModels(w http.ResponseWriter, r *http.Request) {
	models, err := s.ModelLister.ListModels(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]string{"models": models})
}
