package main

import (
	"fmt"

	"github.com/ollapdf/ollapdf"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if err := deps.Documents.DeleteDocument(deps.Ctx, c.ID); err != nil {
		if ollapdf.ErrorCode(err) == ollapdf.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: document %q not found. Use 'ollapdf docs' to see indexed documents.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", ollapdf.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "deleted %s\n", c.ID)
	return nil
}
