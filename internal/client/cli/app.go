package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/authkeeper/internal/client/client"
	"github.com/dmitrijs2005/authkeeper/internal/client/config"
	"github.com/dmitrijs2005/authkeeper/internal/client/i18n"
	"github.com/dmitrijs2005/authkeeper/internal/client/notify"
	"github.com/dmitrijs2005/authkeeper/internal/client/services"
	"github.com/dmitrijs2005/authkeeper/internal/client/session"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
)

type App struct {
	config      *config.Config
	authService services.AuthService
	log         logging.Logger
	closeStore  func() error
	userName    string
	reader      *bufio.Reader
}

// NewApp wires the logger, the session store, the HTTP client and the
// AuthService from c. A session persisted by an earlier run is picked up, so
// the user stays logged in across restarts.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log, err := logging.New(c.LogBackend, c.LogLevel, os.Stderr)
	if err != nil {
		return nil, err
	}

	store, closeStore, err := session.Open(ctx, session.Options{
		Backend:        c.StoreBackend,
		Path:           c.StorePath,
		RedisAddr:      c.RedisAddr,
		RedisNamespace: c.RedisNamespace,
		SealPassphrase: c.SealPassphrase,
	})
	if err != nil {
		log.Error(ctx, "error opening session store", "backend", c.StoreBackend, "error", err)
		return nil, err
	}

	apiClient, err := client.NewHTTPClient(c.BaseURL, c.RequestTimeout)
	if err != nil {
		_ = closeStore()
		return nil, err
	}

	as := services.NewAuthService(apiClient, store, notify.NewConsoleNotifier(os.Stdout), i18n.New(c.Locale), log)

	app := &App{
		config:      c,
		authService: as,
		log:         log,
		closeStore:  closeStore,
		reader:      bufio.NewReader(os.Stdin),
	}
	app.restoreSession(ctx)
	return app, nil
}

func (a *App) restoreSession(ctx context.Context) {
	s, err := a.authService.CurrentSession(ctx)
	if err != nil {
		if !errors.Is(err, services.ErrNotLoggedIn) {
			a.log.Warn(ctx, "error reading stored session", "error", err)
		}
		return
	}
	a.userName = displayName(s)
}

func (a *App) Run(ctx context.Context) {
	defer a.close(ctx)
	a.Root(ctx)
}

func (a *App) close(ctx context.Context) {
	if err := a.authService.Close(ctx); err != nil {
		a.log.Warn(ctx, "error closing client", "error", err)
	}
	if a.closeStore != nil {
		if err := a.closeStore(); err != nil {
			a.log.Warn(ctx, "error closing session store", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func displayName(s *services.Session) string {
	switch {
	case s.Profile.UserName != "":
		return s.Profile.UserName
	case s.Profile.UniqueName != "":
		return s.Profile.UniqueName
	case s.Profile.Email != "":
		return s.Profile.Email
	default:
		return fmt.Sprintf("user %s", s.Profile.ID)
	}
}
