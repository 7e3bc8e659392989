package main

import (
	"fmt"

	"github.com/ollapdf/ollapdf"
)

// Run executes the models command.
func (c *ModelsCmd) Run(deps *Dependencies) error {
	models, err := deps.Models.ListModels(deps.Ctx)
	if err != nil {
		if ollapdf.ErrorCode(err) == ollapdf.EUNAVAILABLE {
			fmt.Fprintln(deps.Stderr, "Hint: Is the Ollama server running? Set OLLAMA_HOST if it listens elsewhere.")
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", ollapdf.ErrorMessage(err))
		return err
	}

	if len(models) == 0 {
		fmt.Fprintln(deps.Stdout, "no models installed. Use 'ollama pull <model>' to add one.")
		return nil
	}

	for _, model := range models {
		fmt.Fprintln(deps.Stdout, model)
	}
	return nil
}
