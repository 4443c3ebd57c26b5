// Package server initializes and runs the backend: it opens the database,
// applies migrations, wires the services and serves the HTTP API with
// graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/ch4-lumia/lumia-backend/internal/logging"
	"github.com/ch4-lumia/lumia-backend/internal/server/auth"
	"github.com/ch4-lumia/lumia-backend/internal/server/config"
	"github.com/ch4-lumia/lumia-backend/internal/server/httpapi"
	"github.com/ch4-lumia/lumia-backend/internal/server/repositories/repomanager"
	"github.com/ch4-lumia/lumia-backend/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	router      http.Handler
}

func NewApp(cfg *config.Config, logger logging.Logger) (*App, error) {
	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()

	key := auth.DeriveKey(cfg.SecretKey)
	if !key.Strong() {
		logger.Warn(context.Background(), "signing key shorter than recommended minimum",
			"bytes", len(key), "min", auth.MinKeyLen)
	}
	codec := auth.NewCodec(key, cfg.AccessTokenValidityDuration, cfg.RefreshTokenValidityDuration)

	svc := httpapi.Services{
		Users:    services.NewUserService(db, rm, codec, cfg),
		Settings: services.NewSettingsService(db, rm),
		Messages: services.NewMessageService(db, rm, cfg),
		Answers:  services.NewAnswerService(db, rm),
	}

	return &App{
		config:      cfg,
		logger:      logger,
		db:          db,
		repomanager: rm,
		router:      httpapi.NewRouter(logger, codec, svc),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	srv := &http.Server{
		Addr:    app.config.EndpointAddrHTTP,
		Handler: app.router,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "starting http server", "addr", app.config.EndpointAddrHTTP)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	return app.db.Close()
}
