package builder

import (
	"context"
	"fmt"
	"time"

	"github.com/futig/docqa-backend/internal/config"
	"github.com/futig/docqa-backend/internal/pkg/logger"
	pkgRetry "github.com/futig/docqa-backend/internal/pkg/retry"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// The database container often starts after the service.
var dbConnectRetry = pkgRetry.RetryConfig{
	Attempts:  5,
	Delay:     time.Second,
	MaxDelay:  10 * time.Second,
	DelayType: pkgRetry.DelayTypeBackoff,
	Timeout:   time.Minute,
}

// setupDatabase creates a connection pool and waits until the database answers
func setupDatabase(ctx context.Context, cfg *config.Config, log *zap.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.DBMaxConns)
	poolConfig.MinConns = int32(cfg.DBMinConns)
	poolConfig.MaxConnLifetime = cfg.DBMaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.DBMaxConnIdleTime
	poolConfig.HealthCheckPeriod = cfg.DBHealthCheckPeriod

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	err = pkgRetry.Do(ctx, dbConnectRetry, nil,
		func(attempt uint, err error) {
			log.Warn("database is not reachable yet",
				zap.Uint("attempt", attempt),
				logger.ErrorText(err),
			)
		},
		func(ctx context.Context) error {
			return pool.Ping(ctx)
		},
	)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	log.Info("database connection pool established",
		zap.Int32("max_conns", poolConfig.MaxConns),
		zap.Int32("min_conns", poolConfig.MinConns),
		zap.Duration("max_conn_lifetime", poolConfig.MaxConnLifetime),
		zap.Duration("max_conn_idle_time", poolConfig.MaxConnIdleTime),
		zap.Duration("health_check_period", poolConfig.HealthCheckPeriod),
	)

	return pool, nil
}
