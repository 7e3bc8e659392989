package main

import (
	"fmt"

	"github.com/ollapdf/ollapdf"
)

// Run executes the docs command.
func (c *DocsCmd) Run(deps *Dependencies) error {
	docs, err := deps.Documents.FindDocuments(deps.Ctx, ollapdf.DocumentFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ollapdf.ErrorMessage(err))
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintln(deps.Stdout, "no documents indexed. Use 'ollapdf index <path>' to add some.")
		return nil
	}

	for _, doc := range docs {
		fmt.Fprintf(deps.Stdout, "%s  %s (%d pages, indexed %s)\n",
			doc.ID, doc.FilePath, doc.Pages, doc.IndexedAt.Format("2006-01-02 15:04"))
		if c.Full {
			fmt.Fprintln(deps.Stdout, doc.Content)
			fmt.Fprintln(deps.Stdout)
		}
	}

	return nil
}
