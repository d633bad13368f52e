// webutil/server.go

package webutil

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// DefaultShutdownTimeout bounds how long Serve waits for in-flight
// requests once the context is canceled.
const DefaultShutdownTimeout = 10 * time.Second

// WithShutdownSignals returns a context that is canceled when the process
// receives SIGINT or SIGTERM. The returned cancel function also cleans up
// the signal handler.
func WithShutdownSignals(parent context.Context, logger *zap.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigCh:
			if logger != nil {
				logger.Info("shutdown signal received", zap.Any("signal", sig))
			}
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

// Serve runs an HTTP server on addr and blocks until the context is
// canceled or the server encounters a terminal error. On cancellation it
// shuts down gracefully, waiting up to DefaultShutdownTimeout for
// in-flight requests.
func Serve(ctx context.Context, addr string, handler http.Handler, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
		if logger != nil {
			logger.Info("shutting down", zap.String("addr", addr))
		}
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		// Ignore the ErrServerClosed that ListenAndServe returns after Shutdown.
		<-errCh
		return nil
	}
}
