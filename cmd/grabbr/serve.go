package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fwojciec/grabbr"
	"github.com/fwojciec/grabbr/server"
)

// shutdownTimeout bounds how long in-flight requests may run after the
// context is canceled.
const shutdownTimeout = 10 * time.Second

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	s := server.NewServer(deps.Extractor, deps.Decks, deps.Logger)
	s.Source = deps.Source
	s.Mode = deps.Config.Mode
	s.Options = grabbr.DefaultOptions().With(deps.Config.Options)

	srv := &http.Server{
		Addr:              c.Addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	fmt.Fprintf(deps.Stdout, "Listening on http://%s\n", c.Addr)

	select {
	case err := <-errc:
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	case <-deps.Ctx.Done():
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
