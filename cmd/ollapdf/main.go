package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"google.golang.org/genai"

	"github.com/ollapdf/ollapdf"
	"github.com/ollapdf/ollapdf/gemini"
	"github.com/ollapdf/ollapdf/ingest"
	"github.com/ollapdf/ollapdf/ollama"
	"github.com/ollapdf/ollapdf/pdf"
	"github.com/ollapdf/ollapdf/queue"
	"github.com/ollapdf/ollapdf/rag"
	ollaslog "github.com/ollapdf/ollapdf/slog"
	"github.com/ollapdf/ollapdf/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("ollapdf"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'ollapdf --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = newLogger(stderr, cli.Verbose)

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set OLLAPDF_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	deps.DB = m.DB
	deps.Documents = sqlite.NewDocumentService(m.DB)
	chunks := sqlite.NewChunkService(m.DB)
	deps.Chunks = chunks
	deps.Search = chunks

	client := ollama.NewClient(
		ollama.WithHost(ollamaHost()),
		ollama.WithModel(envOr("OLLAMA_MODEL", ollama.DefaultModel)),
		ollama.WithEmbedModel(envOr("OLLAPDF_EMBED_MODEL", ollama.DefaultEmbedModel)),
		ollama.WithTimeout(cli.LLMTimeout),
	)
	deps.Embedder = client
	deps.Models = client

	// Wire command-specific dependencies based on command
	if cmd == "index" {
		deps.Ingester = ingest.NewIngester(
			pdf.NewExtractor(), client, deps.Documents, deps.Chunks,
			ingest.WithChunking(cli.Index.ChunkSize, cli.Index.ChunkOverlap),
			ingest.WithConcurrency(cli.Index.Concurrency),
			ingest.WithEmbedLimit(cli.Index.EmbedRPS),
		)
	}

	if cmd == "ask" || cmd == "serve" {
		gen, err := m.generator(ctx, cli, cmd, client, stderr)
		if err != nil {
			return err
		}

		cfg := queue.Config{}
		if cmd == "serve" {
			cfg.Capacity = cli.Serve.Capacity
			cfg.Timeout = cli.Serve.QueueTimeout
		}
		deps.Queue = ollaslog.NewLoggingQueue(queue.New(gen, cfg), deps.Logger)

		answerer := rag.NewAnswerer(client, deps.Search, deps.Queue)
		deps.Answerer = ollaslog.NewLoggingAnswerer(answerer, deps.Logger)
		deps.Submitter = answerer
	}

	return kongCtx.Run(deps)
}

// generator selects the generation backend for ask and serve.
func (m *Main) generator(ctx context.Context, cli *CLI, cmd string, client *ollama.Client, stderr io.Writer) (ollapdf.Generator, error) {
	backend := cli.Ask.Backend
	if cmd == "serve" {
		backend = cli.Serve.Backend
	}

	if backend != "gemini" {
		return client, nil
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	return gemini.NewGenerator(genaiClient), nil
}

// newLogger builds the CLI logger. Logs go to stderr so command output
// stays pipeable; non-verbose runs only show warnings.
func newLogger(stderr io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

func defaultDBPath() string {
	if path := os.Getenv("OLLAPDF_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "ollapdf.db"
	}
	dir := filepath.Join(home, ".ollapdf")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "ollapdf.db")
}

func ollamaHost() string {
	return envOr("OLLAMA_HOST", ollama.DefaultHost)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
