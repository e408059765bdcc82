package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/sync/errgroup"
)

// Run starts the event router and the HTTP server and blocks until ctx is
// cancelled, then shuts the server down gracefully.
func (a *App) Run(ctx context.Context) error {
	logger := a.Observability.Provider.Logger
	httpCfg := a.Config.HTTP

	srv := &http.Server{
		Addr:         httpCfg.Address,
		Handler:      a.Handler(),
		ReadTimeout:  httpCfg.ReadTimeout,
		WriteTimeout: httpCfg.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.EventRouter.Run(gctx); err != nil {
			return fmt.Errorf("event router stopped: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		select {
		case <-a.EventRouter.Running():
		case <-gctx.Done():
			return nil
		}
		logger.InfoContext(gctx, "HTTP server listening", "address", httpCfg.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("HTTP shutdown: %w", err)
		}
		return a.EventRouter.Close()
	})

	return g.Wait()
}
