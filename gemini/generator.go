// Package gemini provides a Gemini-based implementation of ollapdf.Generator
// as an alternative to the local Ollama backend.
package gemini

import (
	"context"

	"github.com/ollapdf/ollapdf"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used for generation.
const DefaultModel = "gemini-2.5-flash"

// Ensure Generator implements ollapdf.Generator at compile time.
var _ ollapdf.Generator = (*Generator)(nil)

// Generator implements ollapdf.Generator using Google Gemini.
type Generator struct {
	client *genai.Client
	model  string
}

// Option configures a Generator.
type Option func(*Generator)

// WithModel overrides the model used for generation.
func WithModel(model string) Option {
	return func(g *Generator) {
		g.model = model
	}
}

// NewGenerator creates a new Generator.
func NewGenerator(client *genai.Client, opts ...Option) *Generator {
	g := &Generator{client: client, model: DefaultModel}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate produces a completion for the request.
func (g *Generator) Generate(ctx context.Context, req ollapdf.GenerateRequest) (string, error) {
	if req.Prompt == "" {
		return "", ollapdf.Errorf(ollapdf.EINVALID, "prompt required")
	}

	config := BuildConfig(req.System, req.Temperature)

	result, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: req.Prompt}},
		}},
		config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", ollapdf.Errorf(ollapdf.EINTERNAL, "gemini returned nil result")
	}

	text := result.Text()
	if text == "" {
		return "", ollapdf.Errorf(ollapdf.EINTERNAL, "gemini returned an empty response")
	}

	return text, nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig(system string, temperature float32) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		Temperature: &temperature,
	}
	if system != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}
	return config
}
