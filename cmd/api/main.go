package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	httptransport "github.com/libenaigi/CUHIRE/internal/api/http"
	"github.com/libenaigi/CUHIRE/internal/api/http/handlers"
	"github.com/libenaigi/CUHIRE/internal/auth"
	"github.com/libenaigi/CUHIRE/internal/config"
	"github.com/libenaigi/CUHIRE/internal/events"
	"github.com/libenaigi/CUHIRE/internal/observability"
	"github.com/libenaigi/CUHIRE/internal/persistence"
	"github.com/libenaigi/CUHIRE/internal/repository"
	"github.com/libenaigi/CUHIRE/internal/service"
	"github.com/libenaigi/CUHIRE/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	var (
		userRepo repository.UserRepository
		jobRepo  repository.JobRepository
	)
	if pg.Enabled() {
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		userRepo = repository.NewUserRepository(pg.PoolHandle())
		jobRepo = repository.NewJobRepository(pg.PoolHandle())
	} else {
		userRepo = repository.NewMemoryUserRepository()
		jobRepo = repository.NewMemoryJobRepository()
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	dispatcher := events.NewInMemoryDispatcher()
	var forwarder service.EventForwarder
	var relay *worker.EventRelay
	if redis.Enabled() {
		relay = worker.NewEventRelay(redis, cfg.Redis.EventsChannel, cfg.Redis.EventBuffer, logger)
		relay.Start(ctx)
		forwarder = relay
	}
	service.NewNotificationService(dispatcher, forwarder, logger).RegisterHandlers()

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret)
	authService := service.NewAuthService(service.AuthDependencies{
		UserRepo:   userRepo,
		Hasher:     auth.NewHasher(cfg.Auth.BcryptCost),
		Tokens:     tokens,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	jobService := service.NewJobService(service.JobDependencies{
		JobRepo:    jobRepo,
		UserRepo:   userRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo, logger)

	metrics := observability.NewMetrics()
	postgresDep := handlers.Dependency{Name: "postgres", Disabled: "in-memory"}
	if pg.Enabled() {
		postgresDep.Pinger = pg
	}
	redisDep := handlers.Dependency{Name: "redis", Disabled: "disabled"}
	if redis.Enabled() {
		redisDep.Pinger = redis
	}

	app := httptransport.NewApp(
		httptransport.MiddlewareConfig{
			Logger:         logger,
			Metrics:        metrics,
			Timeout:        cfg.App.RequestTimeout(),
			AllowedOrigins: cfg.CORS.AllowedOrigins,
		},
		httptransport.RouteConfig{
			Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, metrics, postgresDep, redisDep),
			Auth:           handlers.NewAuthHandler(authService),
			Users:          handlers.NewUsersHandler(),
			Jobs:           handlers.NewJobsHandler(jobService),
			AuthMiddleware: authMiddleware,
		},
	)

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.App.Addr()), zap.String("env", cfg.App.Env))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.Shutdown(); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	cancel()
	if relay != nil {
		<-relay.Done()
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
