// Package http provides the HTTP API for asking questions, tracking queued
// requests and inspecting queue state.
package http

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ollapdf/ollapdf"
)

// DefaultAddr is the default listen address.
const DefaultAddr = ":8080"

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 5 * time.Second

// QuestionSubmitter enqueues a question without waiting for the answer.
type QuestionSubmitter interface {
	Submit(ctx context.Context, question string) (ollapdf.Ticket, []ollapdf.SearchResult, error)
}

// Server serves the HTTP API.
type Server struct {
	server *http.Server
	router chi.Router

	AnswerService ollapdf.Answerer
	Submitter     QuestionSubmitter
	QueueService  ollapdf.QueueService
	ModelLister   ollapdf.ModelLister

	questions *questionRegistry
}

// Option configures a Server.
type Option func(*Server)

// WithRateLimit enables per-client request throttling at rps requests
// per second with the given burst.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Server) {
		s.router.Use(newClientLimiter(rps, burst).middleware)
	}
}

// NewServer creates a new Server listening on addr.
func NewServer(addr string, opts ...Option) *Server {
	if addr == "" {
		addr = DefaultAddr
	}

	s := &Server{
		router:    chi.NewRouter(),
		questions: newQuestionRegistry(),
	}
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)

	for _, opt := range opts {
		opt(s)
	}

	s.router.Get("/healthz", s.handleHealth)
	s.router.Route("/api", func(r chi.Router) {
		r.Post("/ask", s.handleAsk)
		r.Post("/questions", s.handleSubmitQuestion)
		r.Get("/questions/{id}", s.handleGetQuestion)
		r.Delete("/questions/{id}", s.handleCancelQuestion)
		r.Get("/queue", s.handleQueueStats)
		r.Get("/models", s.handleListModels)
	})

	s.server = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	return s
}

// Open starts listening. It blocks until the listener fails or Close is
// called.
func (s *Server) Open() error {
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close gracefully shuts the server down.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// ServeHTTP implements http.Handler, mainly for tests.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// URL returns the base URL of the server.
func (s *Server) URL() string {
	host, port, err := net.SplitHostPort(s.server.Addr)
	if err != nil {
		return "http://" + s.server.Addr
	}
	if host == "" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps an application error to an HTTP status and JSON body.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(ollapdf.ErrorCode(err)), map[string]string{
		"error": ollapdf.ErrorMessage(err),
	})
}

// statusFor maps application error codes to HTTP status codes.
func statusFor(code string) int {
	switch code {
	case ollapdf.EINVALID:
		return http.StatusBadRequest
	case ollapdf.ENOTFOUND:
		return http.StatusNotFound
	case ollapdf.ECONFLICT, ollapdf.ECANCELED:
		return http.StatusConflict
	case ollapdf.EQUEUEFULL:
		return http.StatusTooManyRequests
	case ollapdf.ETIMEOUT:
		return http.StatusGatewayTimeout
	case ollapdf.EUNAVAILABLE:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
