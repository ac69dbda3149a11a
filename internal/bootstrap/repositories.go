package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/zephyr/internal/config"
	"github.com/osse101/zephyr/internal/database"
	"github.com/osse101/zephyr/internal/database/memory"
	"github.com/osse101/zephyr/internal/database/postgres"
	"github.com/osse101/zephyr/internal/database/redis"
	"github.com/osse101/zephyr/internal/database/sqlite"
	"github.com/osse101/zephyr/internal/repository"
)

// Backend is the opened progression store selected by STORE_BACKEND.
// Pool is set only for postgres, where it also backs the cooldown table.
type Backend struct {
	Name string
	Repo repository.StateRepository
	Pool *pgxpool.Pool
}

// PoolOptions maps the DB_* settings onto the postgres pool
func PoolOptions(cfg *config.Config) database.PoolOptions {
	return database.PoolOptions{
		ConnString:      cfg.GetDBConnString(),
		MaxConns:        cfg.DBMaxConns,
		MaxConnIdleTime: cfg.DBMaxConnIdleTime,
		MaxConnLifetime: cfg.DBMaxConnLifetime,
	}
}

// OpenBackend connects the configured backend and applies its migrations.
func OpenBackend(ctx context.Context, cfg *config.Config) (*Backend, error) {
	b := &Backend{Name: cfg.StoreBackend}

	switch cfg.StoreBackend {
	case config.BackendPostgres:
		pool, err := database.NewPool(ctx, PoolOptions(cfg))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDB, err)
		}
		migrator, err := database.NewPostgresMigrator(pool)
		if err == nil {
			err = migrator.Up(ctx)
		}
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
		}
		slog.Info(LogMsgMigrationsApplied, "backend", cfg.StoreBackend)
		b.Pool = pool
		b.Repo = postgres.NewStateRepository(pool)

	case config.BackendSQLite:
		repo, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenSQLite, err)
		}
		b.Repo = repo

	case config.BackendRedis:
		client, err := redis.NewClient(ctx, redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectRedis, err)
		}
		b.Repo = redis.NewStateRepository(client, "")

	case config.BackendMemory:
		b.Repo = memory.NewStateRepository()

	default:
		return nil, fmt.Errorf(ErrMsgUnknownBackend, cfg.StoreBackend)
	}

	slog.Info(LogMsgBackendOpened, "backend", b.Name)
	return b, nil
}

// Close releases the repository, then the postgres pool it shares with the cooldown table
func (b *Backend) Close() error {
	var err error
	if b.Repo != nil {
		err = b.Repo.Close()
	}
	if b.Pool != nil {
		b.Pool.Close()
	}
	return err
}
