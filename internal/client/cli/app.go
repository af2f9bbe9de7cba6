package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/quotedesk/internal/client/client"
	"github.com/dmitrijs2005/quotedesk/internal/client/config"
	"github.com/dmitrijs2005/quotedesk/internal/client/recovery"
	"github.com/dmitrijs2005/quotedesk/internal/client/router"
	"github.com/dmitrijs2005/quotedesk/internal/client/services"
	"github.com/dmitrijs2005/quotedesk/internal/client/session"
	"github.com/dmitrijs2005/quotedesk/internal/logging"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// pingTimeout bounds a single liveness probe.
const pingTimeout = 3 * time.Second

type App struct {
	config          *config.Config
	logger          logging.Logger
	db              *sql.DB
	authService     services.AuthService
	recoveryService services.RecoveryService
	gate            *session.Gate
	router          *router.Router
	clock           recovery.Clock
	reader          *bufio.Reader

	baseCtx context.Context

	mu   sync.Mutex
	mode Mode
	flow *recovery.Flow
}

// NewApp opens the local session store, builds the API client and wires
// the services, the session gate and the router.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.SessionDBPath)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	apiClient, err := client.NewQuoteDeskClient(c.APIBaseURL, c.RequestTimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	as := services.NewAuthService(apiClient, db, logger)
	rs := services.NewRecoveryService(apiClient, logger)

	app, err := newApp(c, logger, as, rs, recovery.SystemClock, bufio.NewReader(os.Stdin))
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	app.db = db
	return app, nil
}

func newApp(c *config.Config, logger logging.Logger, as services.AuthService, rs services.RecoveryService,
	clock recovery.Clock, reader *bufio.Reader) (*App, error) {
	r, err := router.New("/login", router.DefaultRoutes()...)
	if err != nil {
		return nil, err
	}

	a := &App{
		config:          c,
		logger:          logger,
		authService:     as,
		recoveryService: rs,
		gate:            session.NewGate(as, as, logger),
		router:          r,
		clock:           clock,
		reader:          reader,
		baseCtx:         context.Background(),
	}
	r.OnChange(a.show)
	a.gate.Watch(func(session.Session) { a.recheck() })
	return a, nil
}

// Run restores the session, starts the liveness watcher, opens startPath
// and blocks in the REPL until the user exits or ctx is done.
func (a *App) Run(ctx context.Context, startPath string) {
	defer a.shutdown(ctx)
	a.baseCtx = ctx

	if err := a.gate.Init(ctx); err != nil {
		log.Printf("could not restore session: %v", err)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartOnlineStatusWatcher(watchCtx, a.config.OnlineCheckInterval)

	printlnFn("Welcome to QuoteDesk CLI (type 'help' for commands)")
	a.router.Navigate(startPath)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) shutdown(ctx context.Context) {
	a.closeFlow()
	if err := a.authService.Close(ctx); err != nil {
		a.logger.Warn(ctx, "api client close failed", "error", err)
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn(ctx, "session store close failed", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.gate.Current().Authenticated
}

func (a *App) getMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

// setMode records the connectivity mode and reports whether it changed.
func (a *App) setMode(mode Mode) bool {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		log.Printf("Switched to %s mode\n", mode)
	}
	return changed
}

func (a *App) getStatus() string {
	s := ""
	if email := a.gate.Current().Email(); email != "" {
		s = email + " "
	}
	if m := a.getMode(); m != "" {
		s = s + string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s) ", s)
	}
	return s + a.router.Current().Path
}

// StartOnlineStatusWatcher pings the API every interval and switches the
// mode. On every switch to online the stored session is checked, so a
// credential revoked while offline is noticed.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
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

func (a *App) checkOnline(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := a.authService.Ping(pingCtx)
	cancel()

	if err != nil {
		a.setMode(ModeOffline)
		return
	}
	if a.setMode(ModeOnline) && a.isLoggedIn() {
		a.verifySession(ctx)
	}
}

// verifySession asks the API about the current credential and expires the
// session when it is no longer accepted. It reports whether the session
// is still valid; transport errors leave it untouched.
func (a *App) verifySession(ctx context.Context) bool {
	err := a.authService.CheckSession(ctx)
	switch {
	case err == nil:
		return true
	case errors.Is(err, services.ErrSessionLost):
		printlnFn("Your session has expired. Please sign in again.")
		a.gate.Expire(ctx, err.Error())
		return false
	default:
		log.Printf("session check failed: %v", err)
		return true
	}
}
