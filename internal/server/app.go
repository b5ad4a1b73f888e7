// Package server initializes and runs the meetingd server: it loads the
// store, wires the account, meeting and participant services and serves them
// over gRPC until the process is signalled.
package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dmitrijs2005/meetingd/internal/common"
	"github.com/dmitrijs2005/meetingd/internal/filex"
	"github.com/dmitrijs2005/meetingd/internal/logging"
	"github.com/dmitrijs2005/meetingd/internal/server/config"
	"github.com/dmitrijs2005/meetingd/internal/server/endpoints"
	"github.com/dmitrijs2005/meetingd/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/meetingd/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/meetingd/internal/server/services"
	"github.com/dmitrijs2005/meetingd/internal/server/telemetry"
	"github.com/samber/lo"

	gs "github.com/dmitrijs2005/meetingd/internal/server/grpc"
)

type App struct {
	config            *config.Config
	logger            logging.Logger
	repos             repomanager.RepositoryManager
	sessionDB         *badger.DB
	allocator         *endpoints.Allocator
	accountService    *services.AccountService
	meetingService    *services.MeetingService
	tracker           *services.ParticipantTracker
	shutdownTelemetry telemetry.ShutdownFunc
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(c.LogLevel, c.LogFormat)
	return newApp(ctx, c, logger)
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	app := &App{config: c, logger: logger}

	shutdown, err := telemetry.Setup(ctx, common.ServiceName, c.OTLPEndpoint, c.OTLPInsecure)
	if err != nil {
		logger.Warn(ctx, "tracing disabled", "error", err)
	}
	app.shutdownTelemetry = shutdown

	if err := app.openStore(ctx); err != nil {
		app.close(ctx)
		return nil, err
	}

	nodes := lo.Map(c.MediaNodes, func(n config.MediaNode, _ int) endpoints.Node {
		return endpoints.Node{Host: n.Host, Port: n.Port, Region: n.Region, Capacity: n.Capacity}
	})
	app.allocator, err = endpoints.NewAllocator(nodes, logger)
	if err != nil {
		app.close(ctx)
		return nil, fmt.Errorf("media nodes: %w", err)
	}

	app.accountService = services.NewAccountService(app.repos, c, logger)
	app.tracker = services.NewParticipantTracker(app.repos, app.allocator, c, logger)
	app.meetingService = services.NewMeetingService(app.repos, app.tracker, c, logger)

	return app, nil
}

// openStore selects the repository backend: PostgreSQL when a DSN is
// configured, process memory otherwise. Sessions may live in Badger instead.
func (app *App) openStore(ctx context.Context) error {
	var opts []repomanager.Option

	if app.config.SessionBackend == config.SessionBackendBadger {
		dir, err := filex.EnsureDir(app.config.BadgerPath)
		if err != nil {
			return fmt.Errorf("badger dir: %w", err)
		}
		db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
		if err != nil {
			return fmt.Errorf("badger init error: %w", err)
		}
		app.sessionDB = db
		opts = append(opts, repomanager.WithSessionRepository(sessions.NewBadgerRepository(db)))
		app.logger.Info(ctx, "Sessions stored in badger", "path", dir)
	}

	if app.config.DatabaseDSN == "" {
		app.repos = repomanager.NewMemoryRepositoryManager(opts...)
		app.logger.Info(ctx, "Using in-memory store")
		return nil
	}

	db, err := repomanager.OpenPostgres(ctx, app.config.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	repos := repomanager.NewPostgresRepositoryManager(db, opts...)
	app.repos = repos

	if err := repos.RunMigrations(ctx); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	app.logger.Info(ctx, "Using postgres store")
	return nil
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

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) error {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.accountService, app.meetingService, app.tracker)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return err
	}
	return nil
}

// Run serves until ctx is cancelled or the process receives a termination
// signal, then releases the store.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup
	var runErr error

	wg.Add(1)
	go func() {
		defer wg.Done()
		runErr = app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	app.close(shutdownCtx)

	app.logger.Info(shutdownCtx, "App stopped")
	return runErr
}

func (app *App) close(ctx context.Context) {
	var errs []error
	if app.repos != nil {
		errs = append(errs, app.repos.Close())
	}
	if app.sessionDB != nil {
		errs = append(errs, app.sessionDB.Close())
	}
	if app.shutdownTelemetry != nil {
		errs = append(errs, app.shutdownTelemetry(ctx))
	}
	if err := errors.Join(errs...); err != nil {
		app.logger.Warn(ctx, "shutdown error", "error", err)
	}
}
