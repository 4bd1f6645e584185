package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db"
	"github.com/gokatarajesh/trivia-api/internal/db/postgres"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	"github.com/gokatarajesh/trivia-api/internal/db/sqlite"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/server"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

// Application is the context built once at startup and shared by every request:
// store connection, optional Redis client, logger and HTTP server.
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool   *pgxpool.Pool
	sqlite *sql.DB
	redis  *redis.Client
	http   *http.Server
}

// queryLayer is implemented by both postgres.Queries and sqlite.Queries.
type queryLayer interface {
	ListCategoriesByID(ctx context.Context) ([]db.Category, error)
	ListCategoriesByType(ctx context.Context) ([]db.Category, error)
	ListQuestions(ctx context.Context) ([]db.Question, error)
	GetQuestion(ctx context.Context, id int32) (db.Question, error)
	InsertQuestion(ctx context.Context, arg db.InsertQuestionParams) (int32, error)
	DeleteQuestion(ctx context.Context, id int32) error
	SearchQuestions(ctx context.Context, term string) ([]db.Question, error)
	ListQuestionsByCategory(ctx context.Context, category int32) ([]db.Question, error)
	ListQuestionsExcluding(ctx context.Context, exclude []int32) ([]db.Question, error)
	ListQuestionsByCategoryExcluding(ctx context.Context, category int32, exclude []int32) ([]db.Question, error)
}

// New bootstraps logger, store, optional Redis cache and the HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env, cfg.LogLevel)
	logger.Info().Str("driver", cfg.Database.Driver).Msg("starting application bootstrap")

	a := &Application{cfg: cfg, logger: logger}

	var (
		q      queryLayer
		pinger server.Pinger
	)
	switch cfg.Database.Driver {
	case config.DriverSQLite:
		conn, err := sqlite.Open(cfg.Database.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		a.sqlite = conn
		if cfg.Database.AutoMigrate {
			if err := db.Migrate(ctx, conn, config.DriverSQLite, db.CommandUp, logger); err != nil {
				_ = conn.Close()
				return nil, err
			}
		}
		q = sqlite.New(conn)
		pinger = sqlPinger{conn}
	default:
		poolCfg, err := pgxpool.ParseConfig(cfg.Database.PostgresDSN())
		if err != nil {
			return nil, fmt.Errorf("parse postgres dsn: %w", err)
		}
		poolCfg.MaxConns = int32(cfg.Database.MaxConns)

		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		a.pool = pool
		if cfg.Database.AutoMigrate {
			sqlDB := stdlib.OpenDBFromPool(pool)
			err := db.Migrate(ctx, sqlDB, config.DriverPostgres, db.CommandUp, logger)
			_ = sqlDB.Close()
			if err != nil {
				pool.Close()
				return nil, err
			}
		}
		q = postgres.New(pool)
		pinger = pool
	}

	var cache trivia.CategoryCache
	if cfg.Redis.Addr != "" {
		a.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		cache = trivia.NewCache(a.redis, cfg.Redis.CategoryTTL)
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("category cache enabled")
	} else {
		logger.Warn().Msg("REDIS_ADDR not set; category cache disabled")
	}

	svc := trivia.NewService(
		repository.NewQuestionRepository(q),
		repository.NewCategoryRepository(q),
		trivia.ServiceOptions{Cache: cache},
	)
	handlers := trivia.NewHTTPHandlers(svc, logger)

	a.http = server.NewHTTPServer(cfg, logger, pinger, a.redis, handlers)
	return a, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var runErr error
	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		runErr = fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}
	a.close()

	a.logger.Info().Msg("shutdown complete")
	return runErr
}

func (a *Application) close() {
	if a.pool != nil {
		a.pool.Close()
	}
	if a.sqlite != nil {
		if err := a.sqlite.Close(); err != nil {
			a.logger.Error().Err(err).Msg("sqlite close error")
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error().Err(err).Msg("redis shutdown error")
		}
	}
}

type sqlPinger struct {
	db *sql.DB
}

func (p sqlPinger) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}
