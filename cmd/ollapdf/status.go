package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/ollapdf/ollapdf"
)

// Run executes the status command. It queries a running server's queue
// endpoint rather than the local process, since the queue lives in the
// server.
func (c *StatusCmd) Run(deps *Dependencies) error {
	url := strings.TrimRight(c.Server, "/") + "/api/queue"

	req, err := http.NewRequestWithContext(deps.Ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: server not reachable at %s. Is 'ollapdf serve' running?\n", c.Server)
		return ollapdf.Errorf(ollapdf.EUNAVAILABLE, "server not reachable at %s", c.Server)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ollapdf.Errorf(ollapdf.EINTERNAL, "server returned HTTP %d", resp.StatusCode)
	}

	var stats ollapdf.QueueStats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "pending:   %d\n", stats.Pending)
	fmt.Fprintf(deps.Stdout, "running:   %d\n", stats.Running)
	fmt.Fprintf(deps.Stdout, "completed: %d\n", stats.Completed)
	fmt.Fprintf(deps.Stdout, "failed:    %d\n", stats.Failed)
	fmt.Fprintf(deps.Stdout, "capacity:  %d\n", stats.Capacity)
	return nil
}
