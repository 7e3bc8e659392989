package main

import (
	"fmt"
	"os"

	"github.com/ollapdf/ollapdf"
)

// Run executes the index command.
func (c *IndexCmd) Run(deps *Dependencies) error {
	if c.Path == "" {
		fmt.Fprintln(deps.Stderr, "error: no path given. Pass a path or set OLLAPDF_DATA.")
		return ollapdf.Errorf(ollapdf.EINVALID, "path required")
	}

	info, err := os.Stat(c.Path)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: cannot access %q\n", c.Path)
		return ollapdf.Errorf(ollapdf.ENOTFOUND, "path %q not found", c.Path)
	}

	if info.IsDir() {
		results, err := deps.Ingester.IngestDir(deps.Ctx, c.Path)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", ollapdf.ErrorMessage(err))
			return err
		}

		indexed, skipped := 0, 0
		for _, r := range results {
			if r.Skipped {
				skipped++
				fmt.Fprintf(deps.Stdout, "skipped %s (unchanged)\n", r.Path)
				continue
			}
			indexed++
			fmt.Fprintf(deps.Stdout, "indexed %s (%d chunks)\n", r.Path, r.Chunks)
		}
		fmt.Fprintf(deps.Stdout, "%d indexed, %d skipped\n", indexed, skipped)
		return nil
	}

	result, err := deps.Ingester.IngestFile(deps.Ctx, c.Path)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ollapdf.ErrorMessage(err))
		return err
	}

	if result.Skipped {
		fmt.Fprintf(deps.Stdout, "skipped %s (unchanged)\n", result.Path)
		return nil
	}
	fmt.Fprintf(deps.Stdout, "indexed %s (%d chunks)\n", result.Path, result.Chunks)
	return nil
}
