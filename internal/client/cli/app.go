package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/etimsclient/internal/client/api"
	"github.com/dmitrijs2005/etimsclient/internal/client/config"
	"github.com/dmitrijs2005/etimsclient/internal/client/services"
	"github.com/dmitrijs2005/etimsclient/internal/client/session"
	"github.com/dmitrijs2005/etimsclient/internal/client/storage"
	"github.com/dmitrijs2005/etimsclient/internal/logging"
)

type Mode string

const (
	ModeUnknown Mode = ""
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// connectivity is the part of the API client the app uses to find and
// watch the server.
type connectivity interface {
	FindWorkingURL(ctx context.Context, candidates []string) (string, error)
	Ping(ctx context.Context) bool
	BaseURL() string
}

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB

	conn     connectivity
	auth     services.AuthService
	invoices services.InvoiceService
	devices  services.DeviceService
	syncs    services.SyncService
	admin    services.AdminService

	reader *bufio.Reader
	out    io.Writer

	mu   sync.RWMutex
	mode Mode
}

// NewApp opens the local database and builds the service graph.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := storage.OpenDatabase(ctx, c.DBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	store := storage.NewSQLiteStore(db)
	client := api.New(session.New(store), api.Options{
		BaseURL:      c.BaseURL,
		Timeout:      c.RequestTimeout,
		ProbeTimeout: c.ProbeTimeout,
		Retry:        api.RetryPolicy{Attempts: c.RetryAttempts, BaseDelay: c.RetryBaseDelay},
		Logger:       logger,
	})

	return &App{
		config:   c,
		logger:   logger,
		db:       db,
		conn:     client,
		auth:     services.NewAuthService(client),
		invoices: services.NewInvoiceService(client),
		devices:  services.NewDeviceService(client),
		syncs:    services.NewSyncService(client, store, logger),
		admin:    services.NewAdminService(client),
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}, nil
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) CurrentMode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(ctx, fmt.Sprintf("Switched to %s mode", mode), "server", a.conn.BaseURL())
	}
}

func (a *App) isLoggedIn() bool {
	return a.auth.Status(context.Background()).Authenticated
}

// checkOnline probes the server once and records the resulting mode.
func (a *App) checkOnline(ctx context.Context) {
	timeout := a.config.ProbeTimeout
	if timeout <= 0 {
		timeout = api.DefaultProbeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if a.conn.Ping(ctx) {
		a.setMode(ctx, ModeOnline)
	} else {
		a.setMode(ctx, ModeOffline)
	}
}

// StartOnlineStatusWatcher probes the server every interval until ctx is
// cancelled.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) getStatus() string {
	s := ""
	if a.isLoggedIn() {
		s = "logged in "
	}
	if mode := a.CurrentMode(); mode != ModeUnknown {
		s += string(mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root runs the REPL on stdin until the user exits or input ends.
func (a *App) Root(ctx context.Context) {
	a.logger.Info(ctx, "Welcome to the eTIMS CLI (type 'help' for commands)")

	a.checkOnline(ctx)
	if a.config.OnlineCheckInterval > 0 {
		go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}
