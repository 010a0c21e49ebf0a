// Package api hosts the HTTP surface: the chi router under routes, the
// middleware chain, and the serving loop.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/seedkitapp/seedkit-backend/pkg/logger"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

// Serve runs the HTTP server until ctx is canceled, then drains in-flight
// requests before returning. http.ErrServerClosed is a clean stop, not an
// error.
func Serve(ctx context.Context, addr string, handler http.Handler, logg *logger.Logger) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		serveErr <- err
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(ctx, "http server did not drain cleanly", err)
		return err
	}

	logg.Info(ctx, "http server stopped")
	return <-serveErr
}
