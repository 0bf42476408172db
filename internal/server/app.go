// Package server wires configuration, storage, services and transports into
// a runnable application and manages its lifecycle.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/server/auth"
	"github.com/dmitrijs2005/todokeeper/internal/server/config"
	"github.com/dmitrijs2005/todokeeper/internal/server/httpx"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/todokeeper/internal/server/services"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/todokeeper/internal/server/grpc"
)

var (
	openDB               = repomanager.Open
	newRepositoryManager = repomanager.NewPostgresRepositoryManager
	newRedisRateLimiter  = httpx.NewRedisRateLimiter
)

var logOutput io.Writer = os.Stdout

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	router  *httpx.Router
	grpcSrv *gs.GRPCServer
}

// NewApp connects to the database, applies migrations and builds the
// services and transports. The caller must Run the app to release them.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.NewJSONLogger(logOutput, level)

	db, err := openDB(ctx, c.DatabaseDSN, c.StoreTimeout)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := newRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db migrations error: %w", err)
	}

	issuer := auth.NewIssuer(c.SecretKey, c.TokenValidityDuration)
	hasher := auth.NewBcryptHasher(c.PasswordHashCost, c.HashWorkers)

	us := services.NewUserService(db, rm, issuer, hasher, c, logger)
	ts := services.NewTodoService(db, rm, c, logger)

	var limiter httpx.RateLimiter
	if c.RedisAddr != "" {
		limiter, err = newRedisRateLimiter(ctx, c.RedisAddr, c.RedisPassword, c.RedisDB, logger)
		if err != nil {
			logger.Warn(ctx, "redis rate limiter unavailable, using in-memory limiter", "error", err)
			limiter = nil
		}
	}

	router := httpx.NewRouter(logger, us, ts, limiter, db.PingContext)
	grpcSrv := gs.NewGRPCServer(c.EndpointAddrGRPC, logger, db.PingContext)

	return &App{
		config:  c,
		logger:  logger,
		db:      db,
		router:  router,
		grpcSrv: grpcSrv,
	}, nil
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

// Run serves HTTP and gRPC until ctx is cancelled, a signal arrives or either
// server fails, then releases the database and the rate limiter.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	defer func() {
		app.router.Close()
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "db close error", "error", err)
		}
	}()

	grp, ctx := errgroup.WithContext(ctx)

	listener, err := listen(ctx, app.config.EndpointAddrHTTP)
	if err != nil {
		return fmt.Errorf("http listen: %w", err)
	}
	app.logger.Info(ctx, "Starting HTTP server", "address", listener.Addr().String())
	serveHTTP(ctx, grp, app.router, listener, shutdownTimeout)

	grp.Go(func() error {
		return app.grpcSrv.Run(ctx)
	})

	err = grp.Wait()
	if err != nil {
		app.logger.Error(ctx, "server stopped with error", "error", err)
	} else {
		app.logger.Info(ctx, "App stopped")
	}
	return err
}
