// Package server wires the task tracker server together: configuration,
// PostgreSQL and migrations, startup seeding, the task event broker, token
// issuing and the HTTP API. It also handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/dmitrijs2005/tasktracker/internal/server/auth"
	"github.com/dmitrijs2005/tasktracker/internal/server/config"
	"github.com/dmitrijs2005/tasktracker/internal/server/events"
	"github.com/dmitrijs2005/tasktracker/internal/server/httpapi"
	"github.com/dmitrijs2005/tasktracker/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/tasktracker/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	broker events.Broker
	server *httpapi.Server
}

// openDB is replaced in tests.
var openDB = repomanager.Open

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stdout, "json", c.LogLevel)

	codec, err := auth.NewCodec(c.AccessSecret, c.RefreshSecret, c.AccessTokenValidityDuration, c.RefreshTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("token codec: %w", err)
	}

	db, err := openDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	if c.SeedEnabled {
		if err := services.NewSeeder(db, rm, logger).Run(ctx, c.SeedAdminEmail, c.SeedAdminName); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	broker, err := newBroker(ctx, c, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	us := services.NewUserService(db, rm, auth.NewIssuer(codec))
	ts := services.NewTaskService(db, rm, broker, logger)

	router := httpapi.NewRouter(httpapi.Deps{
		Users:      us,
		Tasks:      ts,
		Health:     db,
		Feed:       broker,
		Verifier:   codec,
		Logger:     logger,
		CORSOrigin: c.CORSOrigin,
	})

	return &App{
		config: c,
		logger: logger,
		db:     db,
		broker: broker,
		server: httpapi.NewServer(c.HTTPAddr, router, logger),
	}, nil
}

func newBroker(ctx context.Context, c *config.Config, logger logging.Logger) (events.Broker, error) {
	if c.RedisAddr == "" {
		return events.NewMemoryBroker(64), nil
	}
	b, err := events.NewRedisBroker(ctx, c.RedisAddr, events.DefaultChannel, logger)
	if err != nil {
		return nil, fmt.Errorf("event broker: %w", err)
	}
	return b, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until SIGINT/SIGTERM/SIGQUIT or ctx cancellation, then releases
// the broker and the database.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.logger.Info(context.Background(), "Stopping app...")
	return app.close()
}

func (app *App) close() error {
	return errors.Join(app.broker.Close(), app.db.Close())
}
