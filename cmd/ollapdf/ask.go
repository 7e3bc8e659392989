package main

import (
	"context"
	"fmt"

	"github.com/ollapdf/ollapdf"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	ctx, cancel := context.WithTimeout(deps.Ctx, c.Timeout)
	defer cancel()

	answer, err := deps.Answerer.Ask(ctx, c.Question)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ollapdf.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, answer.Text)

	if c.Sources {
		fmt.Fprintln(deps.Stdout)
		fmt.Fprintln(deps.Stdout, "Sources:")
		for _, src := range answer.Sources {
			source := src.Chunk.Metadata.SourceFile
			if source == "" {
				source = src.Chunk.DocumentID
			}
			fmt.Fprintf(deps.Stdout, "  %s (page %d, score %.2f)\n",
				source, src.Chunk.Metadata.Page, src.Score)
		}
	}

	return nil
}
