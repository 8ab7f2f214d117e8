package devserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrijs2005/authkeeper/internal/logging"
)

// AppConfig configures the standalone development backend. Every field is
// read from DEVBACKEND_* environment variables.
type AppConfig struct {
	Addr       string        `env:"DEVBACKEND_ADDR" envDefault:":8080"`
	Secret     string        `env:"DEVBACKEND_SECRET" envDefault:"dev-secret"`
	TokenTTL   time.Duration `env:"DEVBACKEND_TOKEN_TTL" envDefault:"1h"`
	LogBackend string        `env:"DEVBACKEND_LOG_BACKEND" envDefault:"zap"`
	LogLevel   string        `env:"DEVBACKEND_LOG_LEVEL" envDefault:"info"`
	// SeedUser, when set as "name:password:email", creates a verified account.
	SeedUser string `env:"DEVBACKEND_SEED_USER"`
}

// LoadAppConfig parses AppConfig from the environment.
func LoadAppConfig() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

type App struct {
	config *AppConfig
	logger logging.Logger
	server *Server
}

func NewApp(c *AppConfig) (*App, error) {
	logger, err := logging.New(c.LogBackend, c.LogLevel, os.Stdout)
	if err != nil {
		return nil, err
	}

	s := New(Config{Secret: []byte(c.Secret), TokenTTL: c.TokenTTL}, logger)
	if c.SeedUser != "" {
		if err := seed(s, c.SeedUser); err != nil {
			return nil, err
		}
	}

	return &App{config: c, logger: logger, server: s}, nil
}

func seed(s *Server, entry string) error {
	parts := strings.SplitN(entry, ":", 3)
	if len(parts) != 3 {
		return fmt.Errorf("seed user %q: want name:password:email", entry)
	}
	return s.SeedUser(User{UserName: parts[0], Email: parts[2], Verified: true}, parts[1])
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until a termination signal arrives or ctx is cancelled.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	listen, err := net.Listen("tcp", app.config.Addr)
	if err != nil {
		return err
	}
	return app.serve(ctx, listen)
}

func (app *App) serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{Handler: app.server.Handler(), ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		app.logger.Info(ctx, "Stopping dev backend...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	app.logger.Info(ctx, "Starting dev backend", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
