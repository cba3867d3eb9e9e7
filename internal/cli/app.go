// Package cli is the terminal front end: the signup/login greeting and the
// item menu, both reading answers from a Prompter and printing through Output.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ethan-wit/moving-items/internal/auth"
	"github.com/ethan-wit/moving-items/internal/config"
	"github.com/ethan-wit/moving-items/internal/metrics"
	"github.com/ethan-wit/moving-items/internal/service"
	"github.com/ethan-wit/moving-items/internal/storage/sqlite"
)

// App wires configuration, storage, and services into one terminal session.
type App struct {
	cfg     *config.Config
	prompt  *Prompter
	out     *Output
	metrics *metrics.Recorder
	logger  *slog.Logger
}

// NewApp creates an App reading answers from in and writing to out.
func NewApp(cfg *config.Config, in io.Reader, out io.Writer, recorder *metrics.Recorder, logger *slog.Logger) *App {
	return &App{
		cfg:     cfg,
		prompt:  NewPrompter(in, out),
		out:     NewOutput(out),
		metrics: recorder,
		logger:  logger,
	}
}

// Run authenticates the operator and then serves the menu until log off.
// A returned error means the session failed; declining to log in after
// signup is not an error.
func (a *App) Run(ctx context.Context) error {
	if a.cfg.MetricsTextfile != "" {
		defer func() {
			if err := a.metrics.WriteTextfile(a.cfg.MetricsTextfile); err != nil {
				a.logger.Error("Failed to write metrics", "path", a.cfg.MetricsTextfile, "error", err)
			}
		}()
	}

	session, err := a.authenticate(ctx)
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}

	store, err := sqlite.New(a.cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open item store: %w", err)
	}

	inv := service.NewInventoryService(store, session, a.metrics, a.logger)
	return NewMenu(inv, a.prompt, a.out).Run(ctx)
}

// authenticate runs the greeting on its own store connection, which is
// closed before any item is touched.
func (a *App) authenticate(ctx context.Context) (*auth.Session, error) {
	store, err := sqlite.New(a.cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open user store: %w", err)
	}
	defer store.Close()

	if version, err := store.SchemaVersion(); err == nil {
		a.logger.Debug("Storage initialized", "database", a.cfg.DBPath, "schema_version", version)
	}

	hasher, err := auth.NewHasher(a.cfg.Hasher)
	if err != nil {
		return nil, err
	}

	authSvc := service.NewAuthService(auth.NewPasswordAuthenticator(store, hasher), a.metrics, a.logger)
	return NewGreeter(authSvc, a.prompt, a.out).Greet(ctx)
}
