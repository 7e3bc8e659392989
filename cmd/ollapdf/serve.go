package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	ollahttp "github.com/ollapdf/ollapdf/http"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	var opts []ollahttp.Option
	if c.RateLimit > 0 {
		opts = append(opts, ollahttp.WithRateLimit(c.RateLimit, 1))
	}

	server := ollahttp.NewServer(c.Addr, opts...)
	server.AnswerService = deps.Answerer
	server.Submitter = deps.Submitter
	server.QueueService = deps.Queue
	server.ModelLister = deps.Models

	errc := make(chan error, 1)
	go func() {
		errc <- server.Open()
	}()

	deps.Logger.Info("server started", "addr", c.Addr, "capacity", c.Capacity)
	fmt.Fprintf(deps.Stdout, "listening on %s\n", c.Addr)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errc:
		return err
	case sig := <-sigc:
		deps.Logger.Info("shutting down", "signal", sig.String())
	}

	if err := server.Close(); err != nil {
		return err
	}
	return deps.Queue.Close()
}
