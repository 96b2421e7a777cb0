package postgres

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	"courier-agent/internal/pkg/config"
	"courier-agent/pkg/logger"
	retrierconfig "courier-agent/pkg/retrier"
	"courier-agent/pkg/retrier/backoff_adapter"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	applicationName = "courier-agent"

	// агент делает по одному запросу на триггер, большой пул ему не нужен
	maxConns          = 2
	minConns          = 0
	maxConnLifetime   = 30 * time.Minute
	maxConnIdleTime   = 5 * time.Minute
	healthCheckPeriod = time.Minute

	initialInterval = 2 * time.Second
	maxInterval     = 15 * time.Second
	maxElapsedTime  = time.Minute
	randomization   = 0.5
	multiplier      = 2
)

// NewConnPool открывает пул к общей базе сессий и ждет, пока она станет доступна.
func NewConnPool(ctx context.Context, log logger.Logger, cfg *config.Database) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(newDsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("session database config: %w", err)
	}
	poolCfg.MaxConns = maxConns
	poolCfg.MinConns = minConns
	poolCfg.MaxConnLifetime = maxConnLifetime
	poolCfg.MaxConnIdleTime = maxConnIdleTime
	poolCfg.HealthCheckPeriod = healthCheckPeriod

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("session database pool: %w", err)
	}

	dbLog := log.With(
		logger.NewField("host", cfg.Host),
		logger.NewField("port", cfg.Port),
		logger.NewField("db", cfg.DBName),
	)

	if err := pingDatabase(ctx, dbLog, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("session database connection: %w", err)
	}

	return pool, nil
}

// newDsn экранирует учетные данные: пароль может содержать @, / и %.
func newDsn(cfg *config.Database) string {
	query := url.Values{}
	query.Set("application_name", applicationName)
	if cfg.SSLMode != "" {
		query.Set("sslmode", cfg.SSLMode)
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, cfg.Port),
		Path:     "/" + cfg.DBName,
		RawQuery: query.Encode(),
	}
	return dsn.String()
}

func pingDatabase(ctx context.Context, log logger.Logger, pool *pgxpool.Pool) error {
	retrier := backoff_adapter.New(retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
	})

	var attempt uint64
	err := retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		log.Info("pinging session database", logger.NewField("attempt", attempt))

		return pool.Ping(ctx)
	})
	if err != nil {
		log.Error("session database is unreachable",
			logger.NewField("error", err),
			logger.NewField("attempts", attempt),
		)
		return fmt.Errorf("ping session database: %w", err)
	}

	log.Info("session database connection established", logger.NewField("attempts", attempt))
	return nil
}
