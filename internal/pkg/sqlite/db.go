package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"courier-agent/internal/pkg/config"
	"courier-agent/pkg/logger"
	retrierconfig "courier-agent/pkg/retrier"
	"courier-agent/pkg/retrier/backoff_adapter"
	_ "modernc.org/sqlite"
)

const (
	driverName = "sqlite"

	// файл сессии пишет только один процесс, больше одного соединения не нужно
	maxOpenConns = 1

	initialInterval = 100 * time.Millisecond
	maxInterval     = 2 * time.Second
	maxElapsedTime  = 10 * time.Second
	randomization   = 0.5
	multiplier      = 2
)

// Open открывает файл сессии. WAL и busy_timeout задаются через DSN,
// чтобы применялись к каждому новому соединению.
func Open(ctx context.Context, log logger.Logger, cfg *config.SessionStore) (*sql.DB, error) {
	db, err := sql.Open(driverName, newDsn(cfg.SQLitePath))
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", cfg.SQLitePath, err)
	}
	db.SetMaxOpenConns(maxOpenConns)

	dbLog := log.With(
		logger.NewField("path", cfg.SQLitePath),
	)

	err = pingDatabase(ctx, dbLog, db)
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("sqlite connection: %w (failed to close: %w)", err, closeErr)
		}
		return nil, fmt.Errorf("sqlite connection: %w", err)
	}

	return db, nil
}

func newDsn(path string) string {
	return fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
}

func pingDatabase(ctx context.Context, log logger.Logger, db *sql.DB) error {
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
		return db.PingContext(ctx)
	})
	if err != nil {
		log.With(
			logger.NewField("error", err),
			logger.NewField("attempts", attempt),
		).Error("SQLite open failed after retries")
		return fmt.Errorf("failed to ping sqlite: %w", err)
	}

	log.With(
		logger.NewField("attempts", attempt),
	).Info("SQLite session file opened")
	return nil
}
