package proxy

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/etimsclient/internal/logging"
	"github.com/dmitrijs2005/etimsclient/internal/proxy/config"
)

type App struct {
	config *config.Config
	logger logging.Logger
	target *url.URL
}

func NewApp(cfg *config.Config, logger logging.Logger) (*App, error) {
	target, err := url.Parse(cfg.TargetURL)
	if err != nil {
		return nil, fmt.Errorf("parse target url: %w", err)
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("target url %q must be absolute", cfg.TargetURL)
	}
	return &App{config: cfg, logger: logger.With("module", "proxy"), target: target}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		sig := <-stop
		app.logger.Info(context.Background(), "Signal received", "signal", sig)
		signal.Stop(stop)
		cancelFunc()
	}()
}

// Run listens on the configured address until a termination signal arrives
// or ctx is cancelled.
func (app *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	app.initSignalHandler(cancel)

	ln, err := net.Listen("tcp", app.config.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", app.config.ListenAddr, err)
	}
	return app.Serve(ctx, ln)
}

// Serve runs the proxy on ln and shuts it down gracefully once ctx is done.
func (app *App) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           NewHandler(app.target, app.logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "Starting proxy", "addr", ln.Addr().String(), "target", app.target.String())
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

	app.logger.Info(context.Background(), "Shutting down proxy")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
