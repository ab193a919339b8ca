package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/Jindonglee/resume-board/internal/auth"
	"github.com/Jindonglee/resume-board/internal/config"
	"github.com/Jindonglee/resume-board/internal/event"
	handlerhttp "github.com/Jindonglee/resume-board/internal/handler/http"
	postgresrepo "github.com/Jindonglee/resume-board/internal/repository/postgres"
	redisrepo "github.com/Jindonglee/resume-board/internal/repository/redis"
	"github.com/Jindonglee/resume-board/internal/service"
	"github.com/Jindonglee/resume-board/pkg/database"
	"github.com/Jindonglee/resume-board/pkg/health"
	pkgkafka "github.com/Jindonglee/resume-board/pkg/kafka"
)

// App wires together all components of the service and owns their
// lifecycles.
type App struct {
	cfg      *config.Config
	logger   *slog.Logger
	server   *http.Server
	pool     *pgxpool.Pool
	redis    *redis.Client
	producer *pkgkafka.Producer
}

// New builds the full dependency graph from configuration.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	pgCfg := database.DefaultPostgresConfig()
	pgCfg.Host = cfg.Postgres.Host
	pgCfg.Port = cfg.Postgres.Port
	pgCfg.User = cfg.Postgres.User
	pgCfg.Password = cfg.Postgres.Password
	pgCfg.DBName = cfg.Postgres.DBName
	pgCfg.SSLMode = cfg.Postgres.SSLMode

	pool, err := database.NewPostgresPool(ctx, &pgCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	redisClient, err := database.NewRedisClient(ctx, database.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	kafkaProducer := pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.Kafka.Brokers), logger)

	tokens, err := auth.NewTokenManager(
		cfg.AccessTokenSecret,
		cfg.RefreshTokenSecret,
		cfg.AccessTokenExpiry,
		cfg.RefreshTokenExpiry,
	)
	if err != nil {
		pool.Close()
		_ = redisClient.Close()
		return nil, fmt.Errorf("create token manager: %w", err)
	}

	userRepo := postgresrepo.NewUserRepository(pool)
	postRepo := postgresrepo.NewPostRepository(pool)
	sessionStore := redisrepo.NewSessionStore(redisClient)

	producer := event.NewProducer(kafkaProducer, logger)

	userService := service.NewUserService(userRepo, sessionStore, tokens, producer, logger)
	postService := service.NewPostService(postRepo, producer, logger)

	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthHandler.Register("redis", func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	})
	healthHandler.Register("kafka", func(ctx context.Context) error {
		return kafkaProducer.Ping(ctx)
	})

	router := handlerhttp.NewRouter(handlerhttp.RouterConfig{
		UserHandler: handlerhttp.NewUserHandler(userService),
		PostHandler: handlerhttp.NewPostHandler(postService),
		AuthGate:    handlerhttp.NewAuthGate(tokens, userRepo, sessionStore, logger),
		Health:      healthHandler,
		Logger:      logger,
		LoginRPS:    cfg.LoginRateLimit,
		LoginBurst:  cfg.LoginRateBurst,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:      cfg,
		logger:   logger,
		server:   server,
		pool:     pool,
		redis:    redisClient,
		producer: kafkaProducer,
	}, nil
}

// Run starts the HTTP server and blocks until it stops.
func (a *App) Run() error {
	a.logger.Info("http server starting", slog.String("addr", a.server.Addr))
	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and closes all backing connections.
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown", slog.String("error", err.Error()))
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close", slog.String("error", err.Error()))
	}

	if err := a.redis.Close(); err != nil {
		a.logger.Error("redis close", slog.String("error", err.Error()))
	}

	a.pool.Close()

	a.logger.Info("shutdown complete")
	return nil
}
