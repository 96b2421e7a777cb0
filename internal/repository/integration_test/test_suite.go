package integration_test

import (
	"context"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"courier-agent/internal/pkg/config"
	"courier-agent/internal/pkg/postgres"
	"courier-agent/internal/repository/migrations"
	"courier-agent/pkg/logger/zap_adapter"
	"courier-agent/pkg/querier"
	"courier-agent/pkg/tx"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
)

var (
	poolInstance    *pgxpool.Pool
	querierInstance *querier.Querier
	querierOnce     sync.Once
)

func initPool() {
	querierOnce.Do(func() {
		// godotenv.Load(.env.test) не вызываем так как Makefile подгружает их
		cfg := &config.Database{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
		}

		ctx := context.Background()

		zapLogger, err := zap_adapter.NewZapAdapter("info")
		if err != nil {
			log.Fatalf("failed to initialize logger: %v", err)
		}
		defer func() {
			if err := zapLogger.Sync(); err != nil {
				log.Printf("failed to sync logger: %v", err)
			}
		}()

		pool, err := postgres.NewConnPool(ctx, zapLogger, cfg)
		if err != nil {
			panic(err)
		}

		db := stdlib.OpenDBFromPool(pool)
		if _, err := migrations.Up(ctx, db, migrations.DialectPostgres); err != nil {
			panic(err)
		}

		poolInstance = pool
		querierInstance = querier.New(pool)
	})
}

func GetQuerier() *querier.Querier {
	initPool()
	return querierInstance
}

func GetTxManager() *tx.Manager {
	initPool()
	return tx.New(poolInstance)
}

func SetupDB(t *testing.T, setupSql string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if setupSql == "" {
		return
	}

	_, err := GetQuerier().Exec(ctx, setupSql)

	require.NoError(t, err)
}

func TeardownDB(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := GetQuerier().Exec(ctx, `TRUNCATE TABLE session_records;`)
	require.NoError(t, err)
}
