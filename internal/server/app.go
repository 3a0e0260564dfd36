// Package server initializes and runs the FishFarmer server.
// It opens the configured storage backend, runs migrations, connects the
// text generator, starts the HTTP server and shuts everything down on
// SIGINT/SIGTERM.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/fishfarmer/internal/logging"
	"github.com/dmitrijs2005/fishfarmer/internal/server/config"
	"github.com/dmitrijs2005/fishfarmer/internal/server/llm"
	"github.com/dmitrijs2005/fishfarmer/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/fishfarmer/internal/server/services"

	hs "github.com/dmitrijs2005/fishfarmer/internal/server/http"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	repos  repomanager.RepositoryManager
	server *hs.Server
}

// NewApp wires the application from c. Logs go to w, or stdout when w is nil.
func NewApp(ctx context.Context, c *config.Config, w io.Writer) (*App, error) {
	if w == nil {
		w = os.Stdout
	}
	logger, err := logging.New(c.LogBackend, c.LogLevel, w)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	repos, err := repomanager.New(c, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}
	if err := repos.RunMigrations(ctx); err != nil {
		repos.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	// A nil Generator makes the advisor endpoints fail; everything else works.
	var generator services.Generator
	client, err := llm.NewGeminiClient(ctx, llm.Options{
		APIKey:        c.GeminiAPIKey,
		Model:         c.GeminiModel,
		Timeout:       c.LLMTimeout,
		RatePerSecond: c.LLMRatePerSecond,
		Burst:         c.LLMBurst,
	}, logger)
	switch {
	case err == nil:
		generator = client
	case errors.Is(err, llm.ErrNoAPIKey):
		logger.Warn(ctx, "GEMINI_API_KEY is not set, advisor endpoints are disabled")
	default:
		repos.Close()
		return nil, err
	}

	prefs := services.NewPreferenceService(repos.Preferences(), logger)
	svc := hs.Services{
		Accounts:    services.NewAccountService(repos.Accounts(), c.BcryptCost, logger),
		Preferences: prefs,
		Advisor:     services.NewAdvisorService(prefs, generator, logger),
	}

	srv, err := hs.NewServer(hs.Config{Addr: c.HTTPAddr, FrontendDir: c.FrontendDir}, svc, logger)
	if err != nil {
		repos.Close()
		return nil, err
	}

	return &App{config: c, logger: logger, repos: repos, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) error {
	if err := app.server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return err
	}
	return nil
}

// Run serves until ctx is cancelled, a signal arrives or the listener fails.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "addr", app.config.HTTPAddr, "storage", app.config.StorageBackend)

	app.initSignalHandler(cancelFunc)

	var (
		wg       sync.WaitGroup
		serveErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		serveErr = app.startHTTPServer(ctx, cancelFunc)
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "http shutdown error", "error", err.Error())
	}

	wg.Wait()

	if err := app.repos.Close(); err != nil {
		app.logger.Error(shutdownCtx, "storage close error", "error", err.Error())
	}
	app.logger.Info(shutdownCtx, "Stopped")

	if z, ok := app.logger.(interface{ Sync() error }); ok {
		_ = z.Sync()
	}

	return serveErr
}
