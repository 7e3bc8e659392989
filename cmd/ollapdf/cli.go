package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/ollapdf/ollapdf"
	"github.com/ollapdf/ollapdf/ingest"
	"github.com/ollapdf/ollapdf/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	DB        *sqlite.DB
	Documents ollapdf.DocumentService
	Chunks    ollapdf.ChunkService
	Search    ollapdf.SearchService
	Embedder  ollapdf.Embedder
	Models    ollapdf.ModelLister
	Ingester  *ingest.Ingester
	Queue     ollapdf.QueueService
	Answerer  ollapdf.Answerer
	Submitter QuestionSubmitter
}

// QuestionSubmitter enqueues a question without waiting for the answer.
type QuestionSubmitter interface {
	Submit(ctx context.Context, question string) (ollapdf.Ticket, []ollapdf.SearchResult, error)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose    bool          `short:"v" help:"Enable debug logging"`
	LLMTimeout time.Duration `name:"llm-timeout" default:"5m" help:"Per-request backend timeout"`

	Index  IndexCmd  `cmd:"" help:"Index a PDF file or directory"`
	Ask    AskCmd    `cmd:"" help:"Ask a question about the indexed documents"`
	Serve  ServeCmd  `cmd:"" help:"Run the HTTP API server"`
	Docs   DocsCmd   `cmd:"" help:"List indexed documents"`
	Delete DeleteCmd `cmd:"" help:"Delete an indexed document"`
	Models ModelsCmd `cmd:"" help:"List models available on the Ollama server"`
	Status StatusCmd `cmd:"" help:"Show queue status of a running server"`
}

// IndexCmd is the "index" subcommand.
type IndexCmd struct {
	Path         string `arg:"" optional:"" env:"OLLAPDF_DATA" help:"PDF file or directory to index (or set OLLAPDF_DATA)"`
	ChunkSize    int    `default:"1000" help:"Chunk size in characters"`
	ChunkOverlap int    `default:"200" help:"Overlap between consecutive chunks"`
	Concurrency  int    `short:"c" default:"4" help:"Concurrent file limit"`

	EmbedRPS float64 `name:"embed-rps" default:"0" help:"Embedding requests per second (0 disables throttling)"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string        `arg:"" help:"Question to ask about the indexed documents"`
	Backend  string        `default:"ollama" enum:"ollama,gemini" help:"Generation backend"`
	Timeout  time.Duration `default:"5m" help:"Maximum time to wait for the answer"`
	Sources  bool          `short:"s" help:"Show the retrieved source passages"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr         string        `default:":8080" help:"Listen address"`
	Backend      string        `default:"ollama" enum:"ollama,gemini" help:"Generation backend"`
	Capacity     int           `default:"8" help:"Queue capacity (pending + running)"`
	QueueTimeout time.Duration `default:"1m" help:"Maximum pending wait before timeout"`
	RateLimit    float64       `default:"0" help:"Per-client requests per second (0 disables)"`
}

// DocsCmd is the "docs" subcommand.
type DocsCmd struct {
	Full bool `help:"Show full document content"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID string `arg:"" help:"Document ID"`
}

// ModelsCmd is the "models" subcommand.
type ModelsCmd struct{}

// StatusCmd is the "status" subcommand.
type StatusCmd struct {
	Server string `default:"http://localhost:8080" help:"Server base URL"`
}
