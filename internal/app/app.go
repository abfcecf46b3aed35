// Package app initializes and runs the main application service.
// It configures logging, storage, authentication, and routing,
// and handles graceful shutdown.
package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/patric-chuzhbe/tinylinks/internal/auth"
	"github.com/patric-chuzhbe/tinylinks/internal/config"
	"github.com/patric-chuzhbe/tinylinks/internal/linkstore"
	"github.com/patric-chuzhbe/tinylinks/internal/logger"
	"github.com/patric-chuzhbe/tinylinks/internal/router"
	"github.com/patric-chuzhbe/tinylinks/internal/userdirectory"
)

const shutdownTimeout = 10 * time.Second

// App encapsulates the configuration, the in-memory tables and the HTTP
// handler needed to run the URL shortener service.
type App struct {
	cfg         *config.Config
	users       *userdirectory.Directory
	links       *linkstore.Store
	httpHandler http.Handler
}

// New initializes a new instance of App by:
// - loading configuration
// - initializing logger
// - creating the user directory and the short link store
// - setting up the router and middleware
func New(options ...config.Option) (*App, error) {
	app := &App{}

	var err error
	app.cfg, err = config.New(options...)
	if err != nil {
		return nil, err
	}

	if err = logger.Init(app.cfg.LogLevel); err != nil {
		return nil, err
	}

	app.users = userdirectory.New()
	app.links = linkstore.New(app.users)

	app.httpHandler = router.New(
		app.users,
		app.links,
		auth.New(
			app.users,
			app.cfg.AuthCookieName,
			[]byte(app.cfg.AuthSecretKey),
		),
		app.cfg.ShortURLBase,
	)

	return app, nil
}

// Run starts the HTTP server with graceful shutdown support.
// It listens for system signals and cleans up resources upon termination.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Log.Infow("server running", "RunAddr", a.cfg.RunAddr)

	server := &http.Server{
		Addr:    a.cfg.RunAddr,
		Handler: a.httpHandler,
	}

	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Log.Infoln("Received shutdown signal, exiting...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}

		return nil

	case err := <-serverErrCh:
		return fmt.Errorf("server error: %w", err)
	}
}

// Close finalizes resources used by App such as logging.
func (a *App) Close() {
	if err := logger.Sync(); err != nil {
		fmt.Println("Logger sync error:", err)
	}
}
