// Package ollama provides Ollama-based implementations of ollapdf.Generator
// and ollapdf.Embedder using the local Ollama HTTP API.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ollapdf/ollapdf"
)

const (
	// DefaultHost is the default Ollama server address.
	DefaultHost = "http://localhost:11434"

	// DefaultModel is the default chat model.
	DefaultModel = "llama2"

	// DefaultEmbedModel is the default embedding model.
	DefaultEmbedModel = "nomic-embed-text"

	// DefaultTimeout bounds a single generation request. Local models on
	// modest hardware can take minutes for long contexts.
	DefaultTimeout = 300 * time.Second
)

// Ensure interfaces are implemented at compile time.
var (
	_ ollapdf.Generator   = (*Client)(nil)
	_ ollapdf.Embedder    = (*Client)(nil)
	_ ollapdf.ModelLister = (*Client)(nil)
)

// Client talks to a local Ollama server.
type Client struct {
	host       string
	model      string
	embedModel string
	timeout    time.Duration
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHost sets the Ollama server address.
// Defaults to DefaultHost if not specified.
func WithHost(host string) Option {
	return func(c *Client) {
		c.host = strings.TrimRight(host, "/")
	}
}

// WithModel sets the chat model.
func WithModel(model string) Option {
	return func(c *Client) {
		c.model = model
	}
}

// WithEmbedModel sets the embedding model.
func WithEmbedModel(model string) Option {
	return func(c *Client) {
		c.embedModel = model
	}
}

// WithTimeout sets the per-request timeout.
// Defaults to DefaultTimeout (300s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client. Useful for testing.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new Ollama client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		host:       DefaultHost,
		model:      DefaultModel,
		embedModel: DefaultEmbedModel,
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}

	return c
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string         `json:"model"`
	Messages []chatMessage  `json:"messages"`
	Stream   bool           `json:"stream"`
	Options  map[string]any `json:"options,omitempty"`

	// KeepAlive asks the server to keep the model loaded between requests
	// so queued requests don't each pay the model load cost.
	KeepAlive string `json:"keep_alive,omitempty"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
	Error   string      `json:"error"`
}

// Generate produces a completion via POST /api/chat.
func (c *Client) Generate(ctx context.Context, req ollapdf.GenerateRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var messages []chatMessage
	if req.System != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.System})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.Prompt})

	body := chatRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   false,
		Options: map[string]any{
			"temperature": req.Temperature,
			"num_predict": -1,
		},
		KeepAlive: "5m",
	}

	var resp chatResponse
	if err := c.post(ctx, "/api/chat", body, &resp); err != nil {
		return "", err
	}
	if resp.Error != "" {
		return "", ollapdf.Errorf(ollapdf.EINTERNAL, "ollama: %s", resp.Error)
	}
	if resp.Message.Content == "" {
		return "", ollapdf.Errorf(ollapdf.EINTERNAL, "ollama returned an empty response")
	}

	return resp.Message.Content, nil
}

type embedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
	Error      string      `json:"error"`
}

// Embed returns the embedding vector for a single text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch returns one embedding per input text via POST /api/embed.
func (c *Client) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, ollapdf.Errorf(ollapdf.EINVALID, "no texts to embed")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var resp embedResponse
	if err := c.post(ctx, "/api/embed", embedRequest{Model: c.embedModel, Input: texts}, &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, ollapdf.Errorf(ollapdf.EINTERNAL, "ollama: %s", resp.Error)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, ollapdf.Errorf(ollapdf.EINTERNAL,
			"ollama returned %d embeddings for %d inputs", len(resp.Embeddings), len(texts))
	}

	return resp.Embeddings, nil
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// ListModels returns the models available on the server via GET /api/tags.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.host+"/api/tags", nil)
	if err != nil {
		return nil, err
	}

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, ollapdf.Errorf(ollapdf.EUNAVAILABLE, "ollama server not reachable at %s", c.host)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, ollapdf.Errorf(ollapdf.EUNAVAILABLE, "ollama returned HTTP %d", httpResp.StatusCode)
	}

	var resp tagsResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, ollapdf.Errorf(ollapdf.EINTERNAL, "failed to decode ollama response: %s", err)
	}

	names := make([]string, 0, len(resp.Models))
	for _, m := range resp.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

// post sends a JSON request and decodes the JSON response.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ollapdf.Errorf(ollapdf.EUNAVAILABLE, "ollama server not reachable at %s", c.host)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return ollapdf.Errorf(ollapdf.EINTERNAL, "failed to read ollama response: %s", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
			return ollapdf.Errorf(ollapdf.EINTERNAL, "ollama: %s", apiErr.Error)
		}
		return ollapdf.Errorf(ollapdf.EUNAVAILABLE, "ollama returned HTTP %d", resp.StatusCode)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return ollapdf.Errorf(ollapdf.EINTERNAL, "failed to decode ollama response: %s", err)
	}

	return nil
}
