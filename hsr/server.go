package hsr

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

// Route binds a ServeMux pattern to a handler.
type Route struct {
	// Method is the upper-case HTTP method.
	Method string
	// Path is the path template the route was declared with.
	Path string
	// Pattern is the path part of the ServeMux pattern, for example
	// "/pets/{petID}".
	Pattern string
	Handler http.HandlerFunc
}

// NewMux registers every route on a new ServeMux. Requests matching a path
// but not a method are answered 405 by the mux itself.
func NewMux(routes []Route) *http.ServeMux {
	mux := http.NewServeMux()
	for _, r := range routes {
		mux.HandleFunc(r.Method+" "+r.Pattern, r.Handler)
	}
	return mux
}

// Default server timeouts.
const (
	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultShutdownTimeout   = 5 * time.Second
)

// ServerConfig configures Serve.
type ServerConfig struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
	// Listener is used instead of listening on Addr when set.
	Listener net.Listener
}

// Serve runs handler until ctx is cancelled, then shuts the server down
// gracefully.
func Serve(ctx context.Context, cfg ServerConfig, handler http.Handler) error {
	if cfg.ReadHeaderTimeout <= 0 {
		cfg.ReadHeaderTimeout = DefaultReadHeaderTimeout
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}

	ln := cfg.Listener
	if ln == nil {
		var err error
		ln, err = net.Listen("tcp", cfg.Addr)
		if err != nil {
			return fmt.Errorf("hsr: listen on %s: %w", cfg.Addr, err)
		}
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("hsr: shutdown: %w", err)
	}
	return nil
}
